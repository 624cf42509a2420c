package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/holdings"
	"github.com/google/subcommands"
)

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct {
	input string
	sheet string
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "check the spreadsheet for inconsistent values" }
func (*checkCmd) Usage() string {
	return `hold check [-i <file>] [-sheet <name>]

  Reads the holdings spreadsheet as it is, without fetching prices, and
  reports positions whose market value exceeds three times the invested
  amount, or whose market value disagrees with price × quantity.

  Warnings are advisory: the exit status is 0 when the spreadsheet can be
  read.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Holdings spreadsheet (.xlsx or .csv), the configured one by default.")
	f.StringVar(&c.sheet, "sheet", "", "Workbook sheet to read, the configured one by default.")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := newLogger()
	conf, err := loadConfig(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.input != "" {
		conf.Input = c.input
	}
	if c.sheet != "" {
		conf.Sheet = c.sheet
	}

	rows, err := holdings.Load(conf.Input, conf.Sheet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading holdings: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(warningsMarkdown(conf.Input, holdings.Review(rows)))
	return subcommands.ExitSuccess
}

// warningsMarkdown lists the warnings found in 'input'.
func warningsMarkdown(input string, warnings []holdings.Warning) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Consistency check of %s\n\n", input)
	if len(warnings) == 0 {
		b.WriteString("No inconsistency found.\n")
		return b.String()
	}
	for _, w := range warnings {
		fmt.Fprintf(&b, "- %s\n", w)
	}
	return b.String()
}
