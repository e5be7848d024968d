package entity

import "time"

// FinanceSheet is the profit and loss breakdown derived from one receipt.
// All monetary fields are in currency units and default to 0.
type FinanceSheet struct {
	FirstName  string    `json:"first_name"`
	MiddleName string    `json:"middle_name"`
	LastName   string    `json:"last_name"`
	OrderDate  string    `json:"order_date"`
	OrderTime  time.Time `json:"order_time"`

	ItemPrice         float64 `json:"item_price"`
	Discount          float64 `json:"discount"`
	SubTotal          float64 `json:"sub_total"`
	TotalShippingCost float64 `json:"total_shipping_cost"`
	Tax               float64 `json:"tax"`
	Total             float64 `json:"total"`

	TransactionFees float64 `json:"transaction_fees"`
	TFVAT           float64 `json:"tf_vat"`
	ProcessingFees  float64 `json:"processing_fees"`
	PFVAT           float64 `json:"pf_vat"`
	ListingFee      float64 `json:"listing_fee"`
	LFVAT           float64 `json:"lf_vat"`
	ShippingFee     float64 `json:"shipping_fee"`
	SFVAT           float64 `json:"sf_vat"`

	NetProfit     float64 `json:"net_profit"`
	TotalQuantity int     `json:"total_quantity"`
	AvatarURL     string  `json:"avatar_url"`

	ShopReceipt *ShopReceipt `json:"shop_receipt"`
}

// Costs returns the sum of every marketplace fee and its VAT
func (f *FinanceSheet) Costs() float64 {
	return f.TransactionFees + f.TFVAT +
		f.ProcessingFees + f.PFVAT +
		f.ListingFee + f.LFVAT +
		f.ShippingFee + f.SFVAT
}

// ReceiptID returns the id of the originating receipt, or 0
func (f *FinanceSheet) ReceiptID() int64 {
	if f.ShopReceipt == nil {
		return 0
	}
	return f.ShopReceipt.ReceiptID
}

// Status returns the marketplace status of the originating receipt
func (f *FinanceSheet) Status() string {
	if f.ShopReceipt == nil {
		return ""
	}
	return f.ShopReceipt.Status
}

// UserFinanceSheets groups the finance sheets derived for one seller
type UserFinanceSheets struct {
	User ShopUser       `json:"user"`
	Data []FinanceSheet `json:"data"`
}

// OrderRow is a finance sheet flattened together with the seller it belongs to
type OrderRow struct {
	FinanceSheet
	User ShopUser `json:"user"`
}
