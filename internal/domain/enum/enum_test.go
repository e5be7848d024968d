package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReceiptStatus(t *testing.T) {
	tests := []struct {
		in   string
		want ReceiptStatus
	}{
		{"Completed", ReceiptStatusCompleted},
		{"Fully Refunded", ReceiptStatusFullyRefunded},
		{" Completed ", ReceiptStatus(" completed ")},
		{"ALL", ReceiptStatusAll},
		{"Shipped", ReceiptStatus("shipped")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseReceiptStatus(tt.in))
		})
	}
}

func TestReceiptStatusLabelAndJSON(t *testing.T) {
	assert.Equal(t, "Fully Refunded", ReceiptStatusFullyRefunded.Label())

	var s ReceiptStatus
	require.NoError(t, json.Unmarshal([]byte(`"Canceled"`), &s))
	assert.Equal(t, ReceiptStatusCanceled, s)
	assert.False(t, s.IsAll())
}

func TestParseOrderSortField(t *testing.T) {
	assert.Equal(t, OrderSortCustomer, ParseOrderSortField("shopReceipt.name"))
	assert.Equal(t, OrderSortNetProfit, ParseOrderSortField("netProfit"))
	assert.Equal(t, OrderSortReceiptID, ParseOrderSortField("orderNumber"))
}
