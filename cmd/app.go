// Package cmd implements the hold command line application.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/holdings"
	"github.com/etnz/holdings/alpaca"
	"github.com/etnz/holdings/coingecko"
	"github.com/etnz/holdings/eodhd"
	"github.com/etnz/holdings/renderer"
	"github.com/etnz/holdings/webcache"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "portfolio")
	c.Register(&checkCmd{}, "portfolio")

	c.Register(&quoteCmd{}, "prices")
	c.Register(&symbolsCmd{}, "prices")

	c.Register(&configCmd{}, "settings")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "holdings.yaml", "Path to the YAML configuration file. Built-in defaults are used if it does not exist.")
var verbose = flag.Bool("v", false, "Log debug messages (HTTP requests, cache hits, fetched prices).")

const eodhdAPIKeyEnv = "EODHD_API_KEY"

var eodhdAPIFlag = flag.String("eodhd-api-key", "", "EODHD API key to use for fetching prices from EODHD.com.\n If missing it will read for the environment variable \""+eodhdAPIKeyEnv+"\". You can get one at https://eodhd.com/")

// eodhdAPIKey returns the EODHD API key from the flag or the environment.
func eodhdAPIKey() string {
	if *eodhdAPIFlag != "" {
		return *eodhdAPIFlag
	}
	return os.Getenv(eodhdAPIKeyEnv)
}

// newLogger returns the application logger. It writes on stderr so that
// stdout only carries the report.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// loadConfig reads the configuration file, a missing file yields the
// defaults.
func loadConfig(log logrus.FieldLogger) (holdings.Config, error) {
	conf, err := holdings.LoadConfig(*configFile)
	if holdings.IsNotExist(err) {
		log.WithField("config", *configFile).Warn("config file does not exist, using built-in defaults")
		return conf, nil
	}
	return conf, err
}

// newFetcher returns the price fetcher configured by 'conf'.
func newFetcher(conf holdings.Config, log logrus.FieldLogger) *holdings.Fetcher {
	f := &holdings.Fetcher{Symbols: conf.Symbols(), Currency: holdings.USD, Log: log}

	switch conf.EquitySource {
	case holdings.EquityAlpaca:
		// the SDK falls back on APCA_API_KEY_ID and APCA_API_SECRET_KEY.
		f.Equity = alpaca.NewProvider("", "")
	default:
		key := eodhdAPIKey()
		if key == "" {
			log.Warn("EODHD API key is not set, use -eodhd-api-key or " + eodhdAPIKeyEnv + ": stock prices will not be updated")
			break
		}
		f.Equity = eodhd.New(key, newEquityClient(conf, log))
	}

	crypto := webcache.NewClient(webcache.Options{Timeout: coingecko.Timeout, TTL: conf.CacheTTL, Log: log})
	f.Crypto = coingecko.New(holdings.USD, crypto)
	return f
}

// newEquityClient returns the http client of the EODHD source. Requests are
// sequential, so each one is bounded to keep a stalled quote from blocking
// the run.
func newEquityClient(conf holdings.Config, log logrus.FieldLogger) *http.Client {
	return webcache.NewClient(webcache.Options{Timeout: eodhd.Timeout, TTL: conf.CacheTTL, Log: log})
}

// isTerminal reports whether stdout is a terminal.
func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printMarkdown prints markdown rendered for the terminal, or as is when
// stdout is not a terminal.
func printMarkdown(md string) {
	if isTerminal() {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
		if err == nil {
			if out, err := r.Render(md); err == nil {
				fmt.Print(out)
				return
			}
		}
	}
	fmt.Print(md)
}

// artifact is an output file of the report.
type artifact struct {
	path  string
	write func(io.Writer, *renderer.Report) error
}

// writeArtifacts writes the html, csv and png files whose path is set and
// returns the paths written.
func writeArtifacts(conf holdings.Config, r *renderer.Report) ([]string, error) {
	var written []string
	for _, a := range []artifact{
		{conf.HTML, renderer.HTML},
		{conf.CSV, renderer.CSV},
		{conf.PNG, renderer.Chart},
	} {
		if strings.TrimSpace(a.path) == "" {
			continue
		}
		if err := writeFile(a.path, r, a.write); err != nil {
			return written, err
		}
		written = append(written, a.path)
	}
	return written, nil
}

func writeFile(path string, r *renderer.Report, write func(io.Writer, *renderer.Report) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("cannot close %q: %w", path, cerr)
		}
	}()
	if err := write(f, r); err != nil {
		return fmt.Errorf("cannot write %q: %w", path, err)
	}
	return nil
}
