package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sangkips/shopdash-api/internal/domain/entity"
	"github.com/sangkips/shopdash-api/internal/domain/repository"
)

const financeSheetName = "Finance Sheets"

var financeSheetHeaders = []string{
	"Receipt ID",
	"Order Date",
	"Customer",
	"Status",
	"Quantity",
	"Item Price",
	"Discount",
	"Sub Total",
	"Shipping",
	"Tax",
	"Total",
	"Transaction Fees",
	"TF VAT",
	"Processing Fees",
	"PF VAT",
	"Listing Fee",
	"LF VAT",
	"Shipping Fee",
	"SF VAT",
	"Net Profit",
}

// ExportService writes filtered finance sheets to an XLSX workbook
type ExportService struct {
	orders *OrderService
	logger *slog.Logger
}

// NewExportService creates a new export service
func NewExportService(orders *OrderService, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{orders: orders, logger: logger}
}

// ExportOrdersXLSX returns the orders matching params as XLSX bytes, in table
// order and without pagination.
func (s *ExportService) ExportOrdersXLSX(ctx context.Context, params *repository.OrderFilterParams) ([]byte, error) {
	start := time.Now()

	rows, err := s.orders.FilterOrders(ctx, params)
	if err != nil {
		return nil, err
	}

	buf, err := WriteFinanceSheetsXLSX(rows)
	if err != nil {
		return nil, err
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf, nil
}

// WriteFinanceSheetsXLSX renders one worksheet row per order
func WriteFinanceSheetsXLSX(rows []entity.OrderRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// rename the default sheet instead of leaving an empty "Sheet1" behind
	if err := f.SetSheetName(f.GetSheetName(0), financeSheetName); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	if err := f.SetSheetRow(financeSheetName, "A1", &financeSheetHeaders); err != nil {
		return nil, fmt.Errorf("xlsx header: %w", err)
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			receiptOf(r).ReceiptID,
			r.OrderDate,
			customerName(r.FinanceSheet),
			r.Status(),
			r.TotalQuantity,
			r.ItemPrice,
			r.Discount,
			r.SubTotal,
			r.TotalShippingCost,
			r.Tax,
			r.Total,
			r.TransactionFees,
			r.TFVAT,
			r.ProcessingFees,
			r.PFVAT,
			r.ListingFee,
			r.LFVAT,
			r.ShippingFee,
			r.SFVAT,
			r.NetProfit,
		}
		if err := f.SetSheetRow(financeSheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(financeSheetName, "A", "B", 14)
	_ = f.SetColWidth(financeSheetName, "C", "C", 28)
	_ = f.SetColWidth(financeSheetName, "D", "D", 18)
	_ = f.SetColWidth(financeSheetName, "E", "T", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func customerName(s entity.FinanceSheet) string {
	return strings.Join(strings.Fields(s.FirstName+" "+s.MiddleName+" "+s.LastName), " ")
}
