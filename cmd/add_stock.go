package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/randomstrangerpassenger/rebalance"
)

// addStockCmd declares a new stock in the ledger.
type addStockCmd struct {
	id       string
	name     string
	ticker   string
	sector   string
	ratio    string
	currency string
	price    string
	fixedBuy string
}

func (*addStockCmd) Name() string     { return "add-stock" }
func (*addStockCmd) Synopsis() string { return "declare a new stock in the portfolio" }
func (*addStockCmd) Usage() string {
	return `rebal add-stock -id <id> [-name <name>] [-ticker <symbol>] [-sector <sector>] [-ratio <percent>] [-currency <KRW|USD>] [-price <price>] [-fixed-buy <amount>]

  Declares a stock so transactions can be recorded against it.
`
}

func (c *addStockCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Stock id (unique in the portfolio)")
	f.StringVar(&c.name, "name", "", "Display name")
	f.StringVar(&c.ticker, "ticker", "", "Quote symbol (e.g. 005930.KS, AAPL)")
	f.StringVar(&c.sector, "sector", "", "Sector label")
	f.StringVar(&c.ratio, "ratio", "0", "Target ratio in percent")
	f.StringVar(&c.currency, "currency", "", "Stock currency; defaults to the portfolio currency")
	f.StringVar(&c.price, "price", "0", "Current price per share")
	f.StringVar(&c.fixedBuy, "fixed-buy", "", "Fixed buy amount for add-rebalancing; empty disables")
}

func (c *addStockCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "-id is required")
		return subcommands.ExitUsageError
	}
	p, err := LoadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if p.Stock(c.id) != nil {
		fmt.Fprintf(os.Stderr, "Stock %q already declared\n", c.id)
		return subcommands.ExitFailure
	}
	cur := c.currency
	if cur == "" {
		cur = p.Currency
	}
	stock := &rebalance.Stock{
		ID:           c.id,
		Name:         c.name,
		Ticker:       c.ticker,
		Sector:       c.sector,
		TargetRatio:  rebalance.ParsePercent(c.ratio),
		CurrentPrice: rebalance.ParseMoney(c.price, cur),
	}
	if c.fixedBuy != "" {
		stock.FixedBuyEnabled = true
		stock.FixedBuyAmount = rebalance.ParseMoney(c.fixedBuy, cur)
	}
	status := appendLedger(func(f *os.File) error {
		return rebalance.EncodeDeclaration(f, stock)
	})
	if status == subcommands.ExitSuccess {
		fmt.Printf("Declared stock %q\n", c.id)
	}
	return status
}
