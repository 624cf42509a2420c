package cmd

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/etnz/holdings"
	"github.com/google/subcommands"
)

type symbolsCmd struct{}

func (*symbolsCmd) Name() string     { return "symbols" }
func (*symbolsCmd) Synopsis() string { return "list the symbols whose price is fetched" }
func (*symbolsCmd) Usage() string {
	return `hold symbols

  Prints the stock and crypto lookup tables: the spreadsheet symbol and the
  identifier used to fetch its price.
`
}

func (c *symbolsCmd) SetFlags(f *flag.FlagSet) {}

func (c *symbolsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	conf, err := loadConfig(newLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(symbolsMarkdown(conf))
	return subcommands.ExitSuccess
}

// symbolsMarkdown renders both lookup tables sorted by symbol.
func symbolsMarkdown(conf holdings.Config) string {
	var b strings.Builder
	table := func(title, source string, m map[string]string) {
		fmt.Fprintf(&b, "## %s\n\n| Symbol | %s |\n|:---|:---|\n", title, source)
		for _, s := range slices.Sorted(maps.Keys(m)) {
			fmt.Fprintf(&b, "| %s | %s |\n", s, m[s])
		}
		b.WriteString("\n")
	}
	table("Stocks", conf.EquitySource, conf.Stocks)
	table("Crypto", "coingecko", conf.Crypto)
	return b.String()
}
