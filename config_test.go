package holdings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holdings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())

	assert.True(t, c.CashMoney().Equal(M(132.43, USD)))
	assert.Equal(t, "QQQ", c.Stocks["QQQ"])
	assert.Equal(t, "ethereum", c.Crypto["ETH"])
	assert.Equal(t, "binancecoin", c.Crypto["BNB"])

	source, id, ok := c.Symbols().Lookup("SOL")
	assert.True(t, ok)
	assert.Equal(t, SourceCrypto, source)
	assert.Equal(t, "solana", id)
}

func TestLoadConfig_Missing(t *testing.T) {
	c, err := LoadConfig(filepath.Join(t.TempDir(), "holdings.yaml"))
	assert.True(t, IsNotExist(err))
	assert.Equal(t, DefaultConfig(), c)
}

func TestLoadConfig_Override(t *testing.T) {
	path := writeConfig(t, `
input: mine.csv
cash: 1000.5
equity_source: alpaca
cache_ttl: 1h
png: ""
stocks:
  MSFT: MSFT
`)
	c, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mine.csv", c.Input)
	assert.Equal(t, 1000.5, c.Cash)
	assert.Equal(t, EquityAlpaca, c.EquitySource)
	assert.Equal(t, time.Hour, c.CacheTTL)
	assert.Empty(t, c.PNG)
	assert.Equal(t, "portfolio.html", c.HTML, "unset fields keep their default")

	assert.Equal(t, map[string]string{"MSFT": "MSFT"}, c.Stocks, "tables are replaced")
	assert.Equal(t, DefaultConfig().Crypto, c.Crypto)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"malformed":       "input: [",
		"unknown source":  "equity_source: yahoo",
		"negative ttl":    "cache_ttl: -1m",
		"empty input":     `input: ""`,
		"bad duration":    "cache_ttl: soon",
		"cash not number": "cash: lots",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			assert.Error(t, err)
			assert.False(t, IsNotExist(err))
		})
	}
}

func TestConfig_Encode(t *testing.T) {
	c := DefaultConfig()
	content, err := c.Encode()
	require.NoError(t, err)

	got, err := LoadConfig(writeConfig(t, string(content)))
	require.NoError(t, err)
	assert.Equal(t, c, got)
}
