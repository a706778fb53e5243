package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/randomstrangerpassenger/rebalance"
	"github.com/randomstrangerpassenger/rebalance/offload"
)

// session wires one CLI invocation: config, engine, and the offload
// calculator serving it.
type session struct {
	cfg  Config
	calc offload.Calculator
}

func newSession() (*session, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger()
	engine := newEngine(log)
	calc := offload.New(engine, offload.Options{InProcess: !cfg.Offload}, log)
	return &session{cfg: cfg, calc: calc}, nil
}

// state runs one calculation pass over the portfolio, bounded by the
// configured caller-side timeout.
func (s *session) state(ctx context.Context, p *rebalance.Portfolio) (rebalance.State, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout())
	defer cancel()
	return s.calc.CalculatePortfolioState(ctx, rebalance.StateRequest{
		Stocks:       p.Stocks,
		ExchangeRate: s.cfg.Rate(),
		Currency:     s.cfg.Currency,
	})
}

func (s *session) Close() { _ = s.calc.Close() }

// stateCmd prints the calculated portfolio state.
type stateCmd struct{}

func (*stateCmd) Name() string     { return "state" }
func (*stateCmd) Synopsis() string { return "calculated metrics for every stock" }
func (*stateCmd) Usage() string {
	return `rebal state

  Calculates and displays quantity, average cost, current value, and
  profit/loss for every stock, with the portfolio total.
`
}
func (*stateCmd) SetFlags(*flag.FlagSet) {}

func (c *stateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQTY\tAVG\tVALUE\tP/L\tRATE\tDIV")
	for _, cs := range state.Stocks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			cs.ID, cs.Stock.Name, cs.Quantity, cs.AvgBuyPrice,
			cs.CurrentAmount, cs.ProfitLoss, cs.ProfitLossRate, cs.TotalDividends)
	}
	fmt.Fprintf(w, "\tTOTAL\t\t\t%s\t\t\t\n", state.CurrentTotal)
	w.Flush()
	return subcommands.ExitSuccess
}
