package rebalance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent represents a ratio expressed in percent points (e.g. 25 for 25%).
// Target ratios, allocation weights, and profit rates all use this type so
// that allocation arithmetic stays exact.
type Percent struct {
	value decimal.Decimal
}

func P[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Percent {
	return Percent{value: newDecimal(value)}
}

// ParsePercent parses a percentage from its textual decimal form, yielding
// zero percent for unparsable input.
func ParsePercent(s string) Percent { return Percent{value: parseDecimal(s)} }

// RatioOf returns part/whole expressed in percent points, or zero percent
// when the whole is zero.
func RatioOf(part, whole Money) Percent {
	if whole.value.IsZero() {
		return Percent{}
	}
	return Percent{value: part.value.Mul(hundred).Div(whole.value)}
}

func (p Percent) Equal(q Percent) bool       { return p.value.Equal(q.value) }
func (p Percent) LessThan(q Percent) bool    { return p.value.LessThan(q.value) }
func (p Percent) GreaterThan(q Percent) bool { return p.value.GreaterThan(q.value) }
func (p Percent) Add(q Percent) Percent      { return Percent{value: p.value.Add(q.value)} }
func (p Percent) Sub(q Percent) Percent      { return Percent{value: p.value.Sub(q.value)} }
func (p Percent) Abs() Percent               { return Percent{value: p.value.Abs()} }
func (p Percent) IsZero() bool               { return p.value.IsZero() }
func (p Percent) IsPositive() bool           { return p.value.IsPositive() }
func (p Percent) IsNegative() bool           { return p.value.IsNegative() }

// Of returns p percent of the given amount, exactly.
func (p Percent) Of(m Money) Money {
	return Money{value: m.value.Mul(p.value).Div(hundred), cur: m.cur}
}

// Weight returns p normalized against a total, as a unitless fraction
// (e.g. 60 against a total of 150 yields 0.4). The total is expressed in
// percent points as well; a zero total yields a zero weight.
func (p Percent) Weight(total Percent) Quantity {
	if total.value.IsZero() {
		return Quantity{}
	}
	return Quantity{value: p.value.Div(total.value)}
}

// String formats the percentage with two fraction digits.
func (p Percent) String() string {
	return fmt.Sprintf("%s%%", p.value.StringFixed(2))
}

// MarshalJSON implements the json.Marshaler interface for Percent.
func (p Percent) MarshalJSON() ([]byte, error) {
	return p.value.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Percent.
// A field that cannot be parsed yields zero percent.
func (p *Percent) UnmarshalJSON(decimalBytes []byte) error {
	if err := p.value.UnmarshalJSON(decimalBytes); err != nil {
		p.value = decimal.Zero
	}
	return nil
}
