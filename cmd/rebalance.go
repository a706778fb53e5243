package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/randomstrangerpassenger/rebalance"
)

// rebalanceCmd runs one of the rebalancing strategies and prints the
// recommendations.
type rebalanceCmd struct {
	strategy string
	amount   string
}

func (*rebalanceCmd) Name() string     { return "rebalance" }
func (*rebalanceCmd) Synopsis() string { return "buy/sell recommendations toward target ratios" }
func (*rebalanceCmd) Usage() string {
	return `rebal rebalance -strategy <add|sell|simple-ratio> [-amount <cash>]

  add           allocate new cash to underweight stocks first
  sell          sell excess and buy shortfall within the portfolio
  simple-ratio  split new cash by target ratio, ignoring holdings
`
}

func (c *rebalanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.strategy, "strategy", "add", "Rebalancing strategy (add, sell, simple-ratio)")
	f.StringVar(&c.amount, "amount", "0", "Additional investment (add and simple-ratio strategies)")
}

func (c *rebalanceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	s, err := newSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	state, err := s.state(ctx, p)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	investment := rebalance.ParseMoney(c.amount, s.cfg.Currency)
	var strategy rebalance.Strategy
	switch c.strategy {
	case "add":
		strategy = rebalance.NewAddStrategy(state.Stocks, investment)
	case "sell":
		strategy = rebalance.NewSellStrategy(state.Stocks, s.cfg.Currency)
	case "simple-ratio":
		strategy = rebalance.NewSimpleRatioStrategy(state.Stocks, investment)
	default:
		fmt.Fprintf(os.Stderr, "Unknown strategy %q\n", c.strategy)
		return subcommands.ExitUsageError
	}

	engine := rebalance.NewEngine(nil, newLogger())
	results := engine.CalculateRebalancing(strategy)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if c.strategy == "sell" {
		fmt.Fprintln(w, "ID\tNAME\tADJUSTMENT")
		for _, r := range results {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.StockID, r.Name, r.Adjustment.String())
		}
	} else {
		fmt.Fprintln(w, "ID\tNAME\tBUY AMOUNT\tBUY QTY\tSHARE")
		for _, r := range results {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.StockID, r.Name, r.FinalBuyAmount, r.FinalBuyQuantity, r.BuyRatio)
		}
	}
	w.Flush()
	return subcommands.ExitSuccess
}
