package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/shopdash-api/internal/application/service"
	"github.com/sangkips/shopdash-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shopdash-api/internal/presentation/http/dto/response"
)

// OrderHandler handles the orders table and its export
type OrderHandler struct {
	orderService  *service.OrderService
	exportService *service.ExportService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, exportService *service.ExportService) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		exportService: exportService,
	}
}

// List handles listing orders
// @Summary List orders
// @Description Sorted, filtered and paginated finance sheets
// @Tags orders
// @Produce json
// @Param search query string false "Receipt id or customer name"
// @Param status query []string false "Receipt status, repeatable"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "asc or desc"
// @Param page query int false "0-based page"
// @Param per_page query int false "5, 10 or 25"
// @Success 200 {object} response.APIResponse
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var query request.OrderListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params, err := query.ToFilterParams()
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Orders retrieved successfully", result)
}

// Get handles getting a single order by receipt id
func (h *OrderHandler) Get(c *gin.Context) {
	receiptID, err := int64Param(c, "receipt_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), receiptID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Images handles the thumbnail URLs of an order's line items
func (h *OrderHandler) Images(c *gin.Context) {
	receiptID, err := int64Param(c, "receipt_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	urls, err := h.orderService.ProductImageURLs(c.Request.Context(), receiptID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order images retrieved successfully", urls)
}

// Export handles downloading the filtered orders as XLSX
func (h *OrderHandler) Export(c *gin.Context) {
	var query request.OrderListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params, err := query.ToFilterParams()
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.exportService.ExportOrdersXLSX(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("finance-sheets-%s.xlsx", time.Now().UTC().Format("20060102"))
	response.XLSX(c, filename, data)
}
