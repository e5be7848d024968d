package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoneyDecimal(t *testing.T) {
	tests := []struct {
		name  string
		money *Money
		want  string
	}{
		{"nil", nil, "0"},
		{"cents", &Money{Amount: 10050, Divisor: 100}, "100.5"},
		{"three decimals", &Money{Amount: 1234, Divisor: 1000}, "1.234"},
		{"no divisor", &Money{Amount: 42}, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, decimal.RequireFromString(tt.want).Equal(tt.money.Decimal()), "got %s", tt.money.Decimal())
		})
	}
}

func TestMoneyDecimalPreservesOrder(t *testing.T) {
	a := &Money{Amount: 999, Divisor: 100}
	b := &Money{Amount: 1000, Divisor: 100}
	assert.True(t, a.Decimal().LessThan(b.Decimal()))
}

func TestMoneyPresent(t *testing.T) {
	var missing *Money
	assert.False(t, missing.Present())
	assert.False(t, (&Money{Amount: 0, Divisor: 100}).Present())
	assert.True(t, (&Money{Amount: 1, Divisor: 100}).Present())
	assert.Equal(t, int64(0), missing.Raw())
}

func TestReceiptTotalQuantity(t *testing.T) {
	r := ShopReceipt{Transactions: []Transaction{{Quantity: 2}, {Quantity: 3}}}
	assert.Equal(t, 5, r.TotalQuantity())
	assert.Equal(t, 0, (&ShopReceipt{}).TotalQuantity())
}
