package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// quoteCmd holds the flags for the 'quote' subcommand.
type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "fetch the latest price of symbols" }
func (*quoteCmd) Usage() string {
	return `hold quote <symbol>...

  Resolves each symbol through the stock and crypto lookup tables and prints
  its latest price. Stocks are fetched one by one, crypto assets in a single
  request. Symbols in neither table are reported and skipped.

  The exit status is 1 if any symbol has no price.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one symbol is required")
		return subcommands.ExitUsageError
	}
	log := newLogger()
	conf, err := loadConfig(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	symbols := conf.Symbols()
	for _, s := range f.Args() {
		if _, _, ok := symbols.Lookup(s); !ok {
			fmt.Fprintf(os.Stderr, "%s: unknown symbol, add it to the stocks or crypto table\n", s)
			status = subcommands.ExitFailure
		}
	}

	for _, q := range newFetcher(conf, log).Fetch(ctx, f.Args()) {
		fmt.Println(q)
		if !q.Price.IsSet() {
			status = subcommands.ExitFailure
		}
	}
	return status
}
