package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits stored for money
const AmountScale = 2

// Amount is a monetary value that always renders with two decimals, as a
// JSON string ("1500.00")
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func (a Amount) String() string {
	return a.StringFixed(AmountScale)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}
