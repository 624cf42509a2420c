package holdings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of a valuation run.
type Config struct {
	Input string `yaml:"input"` // holdings spreadsheet (.xlsx or .csv)
	Sheet string `yaml:"sheet"` // workbook sheet, first one if empty

	// Artifacts, an empty path disables the artifact.
	HTML string `yaml:"html"`
	CSV  string `yaml:"csv"`
	PNG  string `yaml:"png"`

	Cash float64 `yaml:"cash"` // uninvested cash in USD

	EquitySource string        `yaml:"equity_source"` // "eodhd" or "alpaca"
	CacheTTL     time.Duration `yaml:"cache_ttl"`     // 0 disables the HTTP cache

	Stocks map[string]string `yaml:"stocks"` // symbol -> equity identifier
	Crypto map[string]string `yaml:"crypto"` // symbol -> CoinGecko id
}

// Equity source names.
const (
	EquityEODHD  = "eodhd"
	EquityAlpaca = "alpaca"
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Input:        "portfolio.xlsx",
		HTML:         "portfolio.html",
		CSV:          "portfolio.csv",
		PNG:          "allocation.png",
		Cash:         132.43,
		EquitySource: EquityEODHD,
		CacheTTL:     10 * time.Minute,
		Stocks: map[string]string{
			"TSLA": "TSLA", "NVDA": "NVDA", "AMD": "AMD", "TSM": "TSM", "AAPL": "AAPL",
			"NIO": "NIO", "VGT": "VGT", "FIG": "FIG", "VOO": "VOO", "VTI": "VTI",
			"IBM": "IBM", "CENN": "CENN", "QQQ": "QQQ",
		},
		Crypto: map[string]string{
			"ETH": "ethereum", "ADA": "cardano", "FIL": "filecoin", "SOL": "solana",
			"DOGE": "dogecoin", "TAO": "bittensor", "ATH": "ath", "COMP": "compound",
			"IOTA": "iota", "VET": "vechain", "CELR": "celer-network", "XTZ": "tezos",
			"ZEC": "zcash", "LUNC": "terra-luna", "LOOKS": "looksrare", "TRUMP": "trumpcoin",
			"BNB": "binancecoin",
		},
	}
}

// LoadConfig reads a YAML configuration on top of DefaultConfig.
//
// Fields missing from the file keep their default value; symbol tables in the
// file replace the default tables. A missing file is reported with an error
// wrapping fs.ErrNotExist and the defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	content, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := c.decode(content); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid config %q: %w", path, err)
	}
	return c, nil
}

// IsNotExist reports whether err is a missing config file.
func IsNotExist(err error) bool { return errors.Is(err, fs.ErrNotExist) }

func (c *Config) decode(content []byte) error {
	// tables are replaced, not merged, so they are reset before decoding when present.
	var probe struct {
		Stocks map[string]string `yaml:"stocks"`
		Crypto map[string]string `yaml:"crypto"`
	}
	if err := yaml.Unmarshal(content, &probe); err != nil {
		return err
	}
	if probe.Stocks != nil {
		c.Stocks = nil
	}
	if probe.Crypto != nil {
		c.Crypto = nil
	}
	if err := yaml.Unmarshal(content, c); err != nil {
		return err
	}
	return c.Validate()
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input is required")
	}
	switch c.EquitySource {
	case EquityEODHD, EquityAlpaca:
	default:
		return fmt.Errorf("unknown equity_source %q, want %q or %q", c.EquitySource, EquityEODHD, EquityAlpaca)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative: %v", c.CacheTTL)
	}
	return nil
}

// CashMoney returns the configured cash amount.
func (c Config) CashMoney() Money { return M(c.Cash, USD) }

// Symbols returns the lookup tables.
func (c Config) Symbols() Symbols { return Symbols{Stocks: c.Stocks, Crypto: c.Crypto} }

// Encode returns the configuration as YAML.
func (c Config) Encode() ([]byte, error) { return yaml.Marshal(c) }
