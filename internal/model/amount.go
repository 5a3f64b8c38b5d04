package model

import (
	"github.com/shopspring/decimal"
)

// Amount is a purchase amount that may be absent. Stored records written
// by other clients can hold "" or null, which both read as absent.
type Amount struct {
	decimal.NullDecimal
}

// NewAmount returns a present amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{decimal.NewNullDecimal(d)}
}

// UnmarshalJSON accepts a number, a numeric string, "" or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `""`, "null":
		*a = Amount{}
		return nil
	}
	return a.NullDecimal.UnmarshalJSON(data)
}

// String returns the decimal text, or "" when absent.
func (a Amount) String() string {
	if !a.Valid {
		return ""
	}
	return a.Decimal.String()
}

// Equal reports whether both amounts are absent or hold the same value.
func (a Amount) Equal(b Amount) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}

// GreaterThan reports whether the amount is present and above d.
func (a Amount) GreaterThan(d decimal.Decimal) bool {
	return a.Valid && a.Decimal.GreaterThan(d)
}
