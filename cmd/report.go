package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	input   string
	sheet   string
	cash    float64
	offline bool
	html    string
	csv     string
	png     string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "value the portfolio at the latest prices and write reports" }
func (*reportCmd) Usage() string {
	return `hold report [-i <file>] [-sheet <name>] [-cash <amount>] [-offline] [-html <file>] [-csv <file>] [-png <file>]

  Loads the holdings spreadsheet, updates prices of known stocks and crypto
  assets, recomputes market values and P/L, replaces the cash row, ranks
  holdings by weight and prints the table, the totals and the consistency
  warnings.

  The HTML, CSV and PNG reports are written when their path is not empty.
  Flags override the configuration file.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Holdings spreadsheet (.xlsx or .csv).")
	f.StringVar(&c.sheet, "sheet", "", "Workbook sheet to read, the first one by default.")
	f.Float64Var(&c.cash, "cash", 0, "Uninvested cash in USD.")
	f.BoolVar(&c.offline, "offline", false, "Do not fetch prices, keep the prices of the spreadsheet.")
	f.StringVar(&c.html, "html", "", "HTML report path, empty to disable.")
	f.StringVar(&c.csv, "csv", "", "CSV report path, empty to disable.")
	f.StringVar(&c.png, "png", "", "Allocation chart path, empty to disable.")
}

// apply overrides 'conf' with the flags set on the command line.
func (c *reportCmd) apply(f *flag.FlagSet, conf *holdings.Config) {
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "i":
			conf.Input = c.input
		case "sheet":
			conf.Sheet = c.sheet
		case "cash":
			conf.Cash = c.cash
		case "html":
			conf.HTML = c.html
		case "csv":
			conf.CSV = c.csv
		case "png":
			conf.PNG = c.png
		}
	})
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := newLogger()
	conf, err := loadConfig(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	c.apply(f, &conf)
	if err := conf.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return subcommands.ExitUsageError
	}

	rows, err := holdings.Load(conf.Input, conf.Sheet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading holdings: %v\n", err)
		return subcommands.ExitFailure
	}

	v := holdings.Valuation{Cash: conf.CashMoney(), Log: log}
	if !c.offline {
		v.Fetcher = newFetcher(conf, log)
	}
	report := renderer.NewReport(v.Run(ctx, rows))

	if isTerminal() {
		if err := renderer.Console(os.Stdout, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error printing report: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.Summary(report))
		if err := renderer.Bars(os.Stdout, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error printing allocation: %v\n", err)
			return subcommands.ExitFailure
		}
	} else {
		fmt.Print(renderer.Markdown(report))
	}

	written, err := writeArtifacts(conf, report)
	for _, path := range written {
		fmt.Printf("Saved %s\n", path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
