package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/randomstrangerpassenger/rebalance"
)

// txCmd holds the flags shared by the buy, sell, and dividend subcommands.
type txCmd struct {
	kind     rebalance.TxType
	stock    string
	date     string
	quantity string
	price    string
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.stock, "stock", "", "Stock id the transaction belongs to")
	f.StringVar(&c.date, "date", rebalance.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.quantity, "quantity", "", "Share count (for dividends: units received)")
	f.StringVar(&c.price, "price", "", "Price per share (for dividends: amount per unit)")
}

func (c *txCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.stock == "" {
		fmt.Fprintln(os.Stderr, "-stock is required")
		return subcommands.ExitUsageError
	}
	p, err := LoadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	s := p.Stock(c.stock)
	if s == nil {
		fmt.Fprintf(os.Stderr, "Stock %q not declared in ledger\n", c.stock)
		return subcommands.ExitFailure
	}
	date, err := rebalance.ParseDate(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	tx := rebalance.Transaction{
		ID:       uuid.NewString(),
		Type:     c.kind,
		Date:     date,
		Quantity: rebalance.ParseQuantity(c.quantity),
		Price:    rebalance.ParseMoney(c.price, s.CurrentPrice.Currency()),
	}
	if !tx.Valid() {
		fmt.Fprintf(os.Stderr, "A %s needs a strictly positive quantity and price\n", c.kind)
		return subcommands.ExitUsageError
	}
	status := appendLedger(func(f *os.File) error {
		return rebalance.EncodeTransaction(f, c.stock, tx)
	})
	if status == subcommands.ExitSuccess {
		fmt.Printf("Recorded %s of %s × %s for %q\n", c.kind, tx.Quantity, tx.Price, c.stock)
	}
	return status
}

type buyCmd struct{ txCmd }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a buy transaction" }
func (*buyCmd) Usage() string {
	return `rebal buy -stock <id> -quantity <n> -price <p> [-date <date>]
`
}
func (c *buyCmd) SetFlags(f *flag.FlagSet) { c.kind = rebalance.TxBuy; c.txCmd.SetFlags(f) }

type sellCmd struct{ txCmd }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sell transaction" }
func (*sellCmd) Usage() string {
	return `rebal sell -stock <id> -quantity <n> -price <p> [-date <date>]
`
}
func (c *sellCmd) SetFlags(f *flag.FlagSet) { c.kind = rebalance.TxSell; c.txCmd.SetFlags(f) }

type dividendCmd struct{ txCmd }

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a dividend payment" }
func (*dividendCmd) Usage() string {
	return `rebal dividend -stock <id> -quantity <n> -price <p> [-date <date>]

  The received amount is quantity × price.
`
}
func (c *dividendCmd) SetFlags(f *flag.FlagSet) { c.kind = rebalance.TxDividend; c.txCmd.SetFlags(f) }
