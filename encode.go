package rebalance

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// The ledger file is JSONL: one command per line, append-only. Rewriting the
// file through EncodeLedger normalizes it back to declarations followed by
// transactions.

// CommandType is a typed string identifying ledger file commands.
type CommandType string

const (
	CmdInit        CommandType = "init"
	CmdDeclare     CommandType = "declare"
	CmdBuy         CommandType = "buy"
	CmdSell        CommandType = "sell"
	CmdDividend    CommandType = "dividend"
	CmdUpdatePrice CommandType = "update-price"
	CmdSetManual   CommandType = "set-manual"
)

// ledgerLine is a decoding superset of every command's fields. Numeric
// fields that fail to parse decode to zero; they never fail the load.
type ledgerLine struct {
	Command         CommandType `json:"command"`
	Name            string      `json:"name"`
	Currency        string      `json:"currency"`
	ID              string      `json:"id"`
	Stock           string      `json:"stock"`
	Ticker          string      `json:"ticker"`
	Sector          string      `json:"sector"`
	TargetRatio     Percent     `json:"targetRatio"`
	Date            Date        `json:"date"`
	Quantity        Quantity    `json:"quantity"`
	Price           Quantity    `json:"price"`
	Amount          Quantity    `json:"amount"`
	FixedBuyEnabled bool        `json:"isFixedBuyEnabled"`
	FixedBuyAmount  Quantity    `json:"fixedBuyAmount"`
}

// DecodeLedger reads a JSONL stream of commands and replays it into a
// Portfolio, with each stock's transactions sorted by date.
func DecodeLedger(r io.Reader) (*Portfolio, error) {
	p := &Portfolio{Currency: KRW}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var line ledgerLine
		if err := json.Unmarshal(lineBytes, &line); err != nil {
			return nil, fmt.Errorf("could not decode ledger line %q: %w", string(lineBytes), err)
		}
		if err := p.apply(line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	for _, s := range p.Stocks {
		SortTransactions(s.Transactions)
	}
	return p, nil
}

// apply replays one command onto the portfolio.
func (p *Portfolio) apply(line ledgerLine) error {
	switch line.Command {
	case CmdInit:
		p.Name = line.Name
		if line.Currency != "" {
			p.Currency = line.Currency
		}
		return nil

	case CmdDeclare:
		if line.ID == "" {
			return fmt.Errorf("declare command without a stock id")
		}
		cur := line.Currency
		if cur == "" {
			cur = p.Currency
		}
		p.Stocks = append(p.Stocks, &Stock{
			ID:              line.ID,
			Name:            line.Name,
			Ticker:          line.Ticker,
			Sector:          line.Sector,
			TargetRatio:     line.TargetRatio,
			CurrentPrice:    M(line.Price.value, cur),
			FixedBuyEnabled: line.FixedBuyEnabled,
			FixedBuyAmount:  M(line.FixedBuyAmount.value, cur),
		})
		return nil

	case CmdBuy, CmdSell, CmdDividend:
		s := p.Stock(line.Stock)
		if s == nil {
			return fmt.Errorf("stock %q not declared in ledger", line.Stock)
		}
		s.Transactions = append(s.Transactions, Transaction{
			ID:       line.ID,
			Type:     TxType(line.Command),
			Date:     line.Date,
			Quantity: line.Quantity,
			Price:    M(line.Price.value, s.CurrentPrice.Currency()),
		})
		return nil

	case CmdUpdatePrice:
		s := p.Stock(line.Stock)
		if s == nil {
			return fmt.Errorf("stock %q not declared in ledger", line.Stock)
		}
		s.CurrentPrice = M(line.Price.value, s.CurrentPrice.Currency())
		return nil

	case CmdSetManual:
		s := p.Stock(line.Stock)
		if s == nil {
			return fmt.Errorf("stock %q not declared in ledger", line.Stock)
		}
		amount := M(line.Amount.value, s.CurrentPrice.Currency())
		s.ManualAmount = &amount
		return nil

	default:
		return fmt.Errorf("unsupported ledger command %q", line.Command)
	}
}

func writeLine(w io.Writer, marshaler json.Marshaler) error {
	raw, err := marshaler.MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// EncodeInit writes the portfolio header line.
func EncodeInit(w io.Writer, name, currency string) error {
	var jw jsonObjectWriter
	jw.Append("command", CmdInit)
	jw.Optional("name", name)
	jw.Append("currency", currency)
	return writeLine(w, &jw)
}

// EncodeDeclaration writes one stock declaration line.
func EncodeDeclaration(w io.Writer, s *Stock) error {
	var jw jsonObjectWriter
	jw.Append("command", CmdDeclare)
	jw.Append("id", s.ID)
	jw.Optional("name", s.Name)
	jw.Optional("ticker", s.Ticker)
	jw.Optional("sector", s.Sector)
	jw.Append("targetRatio", s.TargetRatio)
	jw.Append("currency", s.CurrentPrice.Currency())
	jw.Append("price", Quantity{value: s.CurrentPrice.value})
	if s.FixedBuyEnabled {
		jw.Append("isFixedBuyEnabled", true)
		jw.Append("fixedBuyAmount", Quantity{value: s.FixedBuyAmount.value})
	}
	return writeLine(w, &jw)
}

// EncodeTransaction writes one buy/sell/dividend line for a stock.
func EncodeTransaction(w io.Writer, stockID string, tx Transaction) error {
	var jw jsonObjectWriter
	jw.Append("command", CommandType(tx.Type))
	jw.Append("stock", stockID)
	jw.Optional("id", tx.ID)
	jw.Append("date", tx.Date)
	jw.Append("quantity", tx.Quantity)
	jw.Append("price", Quantity{value: tx.Price.value})
	return writeLine(w, &jw)
}

// EncodePriceUpdate appends a current-price change for a stock.
func EncodePriceUpdate(w io.Writer, stockID string, price Money) error {
	var jw jsonObjectWriter
	jw.Append("command", CmdUpdatePrice)
	jw.Append("stock", stockID)
	jw.Append("price", Quantity{value: price.value})
	return writeLine(w, &jw)
}

// EncodeManualAmount appends a manual current-amount override for a stock.
func EncodeManualAmount(w io.Writer, stockID string, amount Money) error {
	var jw jsonObjectWriter
	jw.Append("command", CmdSetManual)
	jw.Append("stock", stockID)
	jw.Append("amount", Quantity{value: amount.value})
	return writeLine(w, &jw)
}

// EncodeLedger rewrites the whole portfolio as a normalized ledger:
// the header, every declaration, then every transaction in date order.
func EncodeLedger(w io.Writer, p *Portfolio) error {
	if err := EncodeInit(w, p.Name, p.Currency); err != nil {
		return err
	}
	for _, s := range p.Stocks {
		if err := EncodeDeclaration(w, s); err != nil {
			return err
		}
	}
	for _, s := range p.Stocks {
		if s.ManualAmount != nil {
			if err := EncodeManualAmount(w, s.ID, *s.ManualAmount); err != nil {
				return err
			}
		}
		for _, tx := range s.Transactions {
			if err := EncodeTransaction(w, s.ID, tx); err != nil {
				return err
			}
		}
	}
	return nil
}
