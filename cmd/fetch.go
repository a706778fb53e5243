package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/randomstrangerpassenger/rebalance"
	"github.com/randomstrangerpassenger/rebalance/quote"
)

// fetchCmd updates current prices from the quote service.
type fetchCmd struct {
	rate bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "update current prices from the quote service" }
func (*fetchCmd) Usage() string {
	return `rebal fetch [-rate]

  Fetches the latest market price for every stock with a ticker and appends
  the updates to the ledger. With -rate, also prints the current won/dollar
  exchange rate for the config file.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.rate, "rate", false, "Also fetch the KRW per USD exchange rate")
}

func (c *fetchCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	q := quote.NewClient(newLogger())
	status := subcommands.ExitSuccess
	for _, s := range p.Stocks {
		if s.Ticker == "" {
			continue
		}
		price, err := q.LatestPrice(s.Ticker)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not fetch %q: %v\n", s.Ticker, err)
			status = subcommands.ExitFailure
			continue
		}
		updated := rebalance.M(price, s.CurrentPrice.Currency())
		if st := appendLedger(func(f *os.File) error {
			return rebalance.EncodePriceUpdate(f, s.ID, updated)
		}); st != subcommands.ExitSuccess {
			return st
		}
		fmt.Printf("%s: %s\n", s.Ticker, updated)
	}

	if c.rate {
		rate, err := q.LatestKRWPerUSD()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not fetch exchange rate: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("KRW per USD: %s\n", rate)
	}
	return status
}
