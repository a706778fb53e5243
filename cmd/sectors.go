package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
)

// sectorsCmd prints the per-sector breakdown.
type sectorsCmd struct{}

func (*sectorsCmd) Name() string     { return "sectors" }
func (*sectorsCmd) Synopsis() string { return "per-sector value breakdown" }
func (*sectorsCmd) Usage() string {
	return `rebal sectors

  Groups the portfolio by sector and displays each sector's value and share,
  largest first.
`
}
func (*sectorsCmd) SetFlags(*flag.FlagSet) {}

func (c *sectorsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SECTOR\tVALUE\tSHARE")
	for _, sector := range sectors {
		fmt.Fprintf(w, "%s\t%s\t%s\n", sector.Sector, sector.TotalValue, sector.Percentage)
	}
	w.Flush()
	return subcommands.ExitSuccess
}
