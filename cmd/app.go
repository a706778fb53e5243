// Package cmd implements the CLI application to manage and rebalance a
// portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/randomstrangerpassenger/rebalance"
	"github.com/randomstrangerpassenger/rebalance/cache"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&initCmd{}, "portfolio")
	c.Register(&addStockCmd{}, "portfolio")
	c.Register(&fetchCmd{}, "portfolio")

	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&dividendCmd{}, "transactions")

	c.Register(&stateCmd{}, "reports")
	c.Register(&sectorsCmd{}, "reports")
	c.Register(&rebalanceCmd{}, "reports")
	c.Register(&riskCmd{}, "reports")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "rebalance.jsonl", "Path to the ledger file containing the portfolio (JSONL format)")
var configFile = flag.String("config", "rebalance.toml", "Path to the optional configuration file")
var verbose = flag.Bool("v", false, "Verbose logging")

// newLogger builds the CLI logger. Warnings only, unless -v.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// LoadPortfolio reads the portfolio from the app ledger file.
func LoadPortfolio() (*rebalance.Portfolio, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("ledger %q does not exist, run 'init' first", *ledgerFile)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return rebalance.DecodeLedger(f)
}

// appendLedger appends ledger lines through the given writer function.
func appendLedger(write func(f *os.File) error) subcommands.ExitStatus {
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := write(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// newEngine builds the engine with a fresh session cache registry.
func newEngine(log zerolog.Logger) *rebalance.Engine {
	registry := cache.NewRegistry(log)
	registry.InvalidateAll(cache.ReasonPortfolioLoaded)
	return rebalance.NewEngine(registry, log)
}
