package entity

import (
	"github.com/shopspring/decimal"
)

// Money is an integer amount in minor units with the divisor that scales it
// back to currency units, as returned by the receipts API.
type Money struct {
	Amount       int64  `json:"amount"`
	Divisor      int64  `json:"divisor"`
	CurrencyCode string `json:"currency_code,omitempty"`
}

// Present reports whether m carries a non-zero amount.
// Receipt fields that are missing or zero are treated the same way.
func (m *Money) Present() bool {
	return m != nil && m.Amount != 0
}

// Raw returns the minor-unit amount, or 0 for a nil Money
func (m *Money) Raw() int64 {
	if m == nil {
		return 0
	}
	return m.Amount
}

// Decimal converts m to currency units using its own divisor.
// A missing or zero divisor leaves the amount unscaled. Ordering of amounts
// with the same divisor is preserved exactly.
func (m *Money) Decimal() decimal.Decimal {
	if m == nil {
		return decimal.Zero
	}
	d := decimal.NewFromInt(m.Amount)
	if m.Divisor == 0 {
		return d
	}
	return d.Div(decimal.NewFromInt(m.Divisor))
}

// ScaledBy converts m to currency units with a fixed scale instead of its divisor
func (m *Money) ScaledBy(scale int64) decimal.Decimal {
	if m == nil {
		return decimal.Zero
	}
	if scale == 0 {
		return decimal.NewFromInt(m.Amount)
	}
	return decimal.NewFromInt(m.Amount).Div(decimal.NewFromInt(scale))
}
