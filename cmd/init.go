package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/randomstrangerpassenger/rebalance"
)

// initCmd creates a new ledger file.
type initCmd struct {
	name     string
	currency string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create a new portfolio ledger" }
func (*initCmd) Usage() string {
	return `rebal init [-name <name>] [-currency <KRW|USD>]

  Creates the ledger file for a new portfolio.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "My Portfolio", "Portfolio name")
	f.StringVar(&c.currency, "currency", rebalance.KRW, "Reporting currency (KRW or USD)")
}

func (c *initCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.currency != rebalance.KRW && c.currency != rebalance.USD {
		fmt.Fprintf(os.Stderr, "Unsupported currency %q\n", c.currency)
		return subcommands.ExitUsageError
	}
	if _, err := os.Stat(*ledgerFile); err == nil {
		fmt.Fprintf(os.Stderr, "Ledger %q already exists\n", *ledgerFile)
		return subcommands.ExitFailure
	}
	status := appendLedger(func(f *os.File) error {
		return rebalance.EncodeInit(f, c.name, c.currency)
	})
	if status == subcommands.ExitSuccess {
		fmt.Printf("Created portfolio %q in %s\n", c.name, *ledgerFile)
	}
	return status
}
