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

// riskCmd prints drift and concentration warnings.
type riskCmd struct {
	tolerance float64
}

func (*riskCmd) Name() string     { return "risk" }
func (*riskCmd) Synopsis() string { return "drift and concentration warnings" }
func (*riskCmd) Usage() string {
	return `rebal risk [-tolerance <percent>]

  Flags stocks drifting from their target ratio beyond the tolerance, any
  stock above 30% of the portfolio, and any sector above 40%.
`
}

func (c *riskCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.tolerance, "tolerance", 0, "Drift tolerance in percent points; 0 uses the configured value")
}

func (c *riskCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	sectors, err := s.calc.CalculateSectorAnalysis(ctx, state.Stocks, s.cfg.Currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tolerance := c.tolerance
	if tolerance == 0 {
		tolerance = s.cfg.Tolerance
	}

	needs := rebalance.AnalyzeRebalancingNeeds(state.Stocks, state.CurrentTotal, rebalance.P(tolerance))
	warnings := rebalance.AnalyzeRiskWarnings(state.Stocks, state.CurrentTotal, sectors)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if len(needs) == 0 && len(warnings) == 0 {
		fmt.Println("No rebalancing needs or risk warnings.")
		return subcommands.ExitSuccess
	}
	if len(needs) > 0 {
		fmt.Fprintln(w, "STOCK\tCURRENT\tTARGET\tDEVIATION")
		for _, n := range needs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", n.Name, n.CurrentRatio, n.TargetRatio, n.Deviation)
		}
		fmt.Fprintln(w)
	}
	for _, warning := range warnings {
		fmt.Fprintf(w, "%s\t%s\t%s (limit %s)\n", warning.Kind, warning.Label, warning.Share, warning.Limit)
	}
	w.Flush()
	return subcommands.ExitSuccess
}
