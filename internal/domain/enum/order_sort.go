package enum

// OrderSortField is a sortable column of the orders table
type OrderSortField string

const (
	OrderSortReceiptID OrderSortField = "receipt_id"
	OrderSortCustomer  OrderSortField = "customer"
	OrderSortDate      OrderSortField = "created_timestamp"
	OrderSortSubTotal  OrderSortField = "sub_total"
	OrderSortNetProfit OrderSortField = "net_profit"
	OrderSortQuantity  OrderSortField = "total_quantity"
	OrderSortStatus    OrderSortField = "status"
	OrderSortTotal     OrderSortField = "total"
)

// ParseOrderSortField accepts the column ids used by the dashboard table,
// including the dotted "shopReceipt.*" ones. Unknown values fall back to
// sorting by receipt id.
func ParseOrderSortField(s string) OrderSortField {
	switch s {
	case "customer", "name", "shopReceipt.name":
		return OrderSortCustomer
	case "created_timestamp", "date", "shopReceipt.created_timestamp":
		return OrderSortDate
	case "sub_total", "subTotal":
		return OrderSortSubTotal
	case "net_profit", "netProfit":
		return OrderSortNetProfit
	case "total_quantity", "totalQuantity":
		return OrderSortQuantity
	case "status", "shopReceipt.status":
		return OrderSortStatus
	case "total":
		return OrderSortTotal
	default:
		return OrderSortReceiptID
	}
}
