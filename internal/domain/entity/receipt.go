package entity

import (
	"strconv"
	"time"
)

// Transaction is a single line item of a receipt
type Transaction struct {
	TransactionID  int64  `json:"transaction_id"`
	Title          string `json:"title"`
	SKU            string `json:"sku"`
	Quantity       int    `json:"quantity"`
	Price          *Money `json:"price,omitempty"`
	ListingID      int64  `json:"listing_id"`
	ProductID      int64  `json:"product_id"`
	ListingImageID int64  `json:"listing_image_id"`
	SellerUserID   int64  `json:"seller_user_id"`
}

// ShopReceipt is one marketplace order as returned by the receipts API.
// It is never modified after it has been decoded.
type ShopReceipt struct {
	ReceiptID         int64         `json:"receipt_id"`
	Name              string        `json:"name"`
	BuyerEmail        string        `json:"buyer_email"`
	Status            string        `json:"status"`
	CreatedTimestamp  int64         `json:"created_timestamp"`
	TotalPrice        *Money        `json:"total_price,omitempty"`
	Subtotal          *Money        `json:"subtotal,omitempty"`
	DiscountAmt       *Money        `json:"discount_amt,omitempty"`
	TotalShippingCost *Money        `json:"total_shipping_cost,omitempty"`
	TotalTaxCost      *Money        `json:"total_tax_cost,omitempty"`
	Grandtotal        *Money        `json:"grandtotal,omitempty"`
	Transactions      []Transaction `json:"transactions"`
}

// CreatedAt returns the creation time of the receipt
func (r *ShopReceipt) CreatedAt() time.Time {
	return time.UnixMilli(r.CreatedTimestamp * 1000)
}

// ReceiptIDString returns the receipt id as text, used for searching
func (r *ShopReceipt) ReceiptIDString() string {
	return strconv.FormatInt(r.ReceiptID, 10)
}

// TotalQuantity sums the quantity across all line items
func (r *ShopReceipt) TotalQuantity() int {
	total := 0
	for _, t := range r.Transactions {
		total += t.Quantity
	}
	return total
}

// ReceiptsPage is the envelope of the receipts endpoint
type ReceiptsPage struct {
	Count   int           `json:"count"`
	Results []ShopReceipt `json:"results"`
}
