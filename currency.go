package rebalance

import "github.com/shopspring/decimal"

// Converter converts monetary amounts between won and dollars using a single
// session exchange rate. The rate is fixed at construction; internal state is
// not exposed.
type Converter struct {
	krwPerUSD decimal.Decimal
}

// NewConverter returns a converter for the given exchange rate, expressed as
// won per dollar. A zero or negative rate disables conversion: converted
// amounts come back zero.
func NewConverter(rate Quantity) *Converter {
	return &Converter{krwPerUSD: rate.value}
}

// Rate returns the won-per-dollar rate the converter was built with.
func (c *Converter) Rate() Quantity { return Quantity{value: c.krwPerUSD} }

// ToKRW returns the amount expressed in won.
func (c *Converter) ToKRW(m Money) Money {
	if m.cur == KRW {
		return m
	}
	if !c.krwPerUSD.IsPositive() {
		return Money{cur: KRW}
	}
	return Money{value: m.value.Mul(c.krwPerUSD), cur: KRW}
}

// ToUSD returns the amount expressed in dollars.
func (c *Converter) ToUSD(m Money) Money {
	if m.cur == USD {
		return m
	}
	if !c.krwPerUSD.IsPositive() {
		return Money{cur: USD}
	}
	return Money{value: m.value.Div(c.krwPerUSD), cur: USD}
}

// In returns the amount expressed in the given currency. Unknown currencies
// come back unchanged.
func (c *Converter) In(m Money, currency string) Money {
	switch currency {
	case KRW:
		return c.ToKRW(m)
	case USD:
		return c.ToUSD(m)
	default:
		return m
	}
}
