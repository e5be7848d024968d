package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sangkips/shopdash-api/internal/domain/entity"
	"github.com/sangkips/shopdash-api/internal/domain/enum"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	receipts *ReceiptService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(receipts *ReceiptService) *DashboardService {
	return &DashboardService{receipts: receipts}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalRevenue    float64           `json:"total_revenue"`
	TotalSales      int               `json:"total_sales"`
	TotalProfit     float64           `json:"total_profit"`
	MonthlySeries   []MonthlyPoint    `json:"monthly_series"`
	StatusAnalytics []StatusAnalytics `json:"status_analytics"`
}

// MonthlyPoint represents one month of the overview chart
type MonthlyPoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Sales   int     `json:"sales"`
	Profit  float64 `json:"profit"`
}

// StatusAnalytics is one card of the status breakdown
type StatusAnalytics struct {
	Status  enum.ReceiptStatus `json:"status"`
	Label   string             `json:"label"`
	Count   int                `json:"count"`
	Percent float64            `json:"percent"`
	Amount  float64            `json:"amount"`
}

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	rows, err := s.receipts.FetchOrderRows(ctx)
	if err != nil {
		return nil, err
	}
	return BuildDashboardStats(rows), nil
}

// BuildDashboardStats aggregates the overview figures from order rows.
// Revenue uses each receipt's own grand total divisor; profit sums the
// derived net profit. Months appear in the order they are first seen.
func BuildDashboardStats(rows []entity.OrderRow) *DashboardStats {
	revenue := decimal.Zero
	profit := decimal.Zero

	type monthAcc struct {
		revenue decimal.Decimal
		profit  decimal.Decimal
		sales   int
	}
	months := make(map[string]*monthAcc)
	var monthOrder []string

	for _, r := range rows {
		grand := receiptOf(r).Grandtotal.Decimal()
		net := decimal.NewFromFloat(r.NetProfit)
		revenue = revenue.Add(grand)
		profit = profit.Add(net)

		key := r.OrderTime.Format("Jan")
		acc, ok := months[key]
		if !ok {
			acc = &monthAcc{revenue: decimal.Zero, profit: decimal.Zero}
			months[key] = acc
			monthOrder = append(monthOrder, key)
		}
		acc.revenue = acc.revenue.Add(grand)
		acc.profit = acc.profit.Add(net)
		acc.sales++
	}

	series := make([]MonthlyPoint, 0, len(monthOrder))
	for _, key := range monthOrder {
		acc := months[key]
		series = append(series, MonthlyPoint{
			Month:   key,
			Revenue: acc.revenue.InexactFloat64(),
			Sales:   acc.sales,
			Profit:  acc.profit.InexactFloat64(),
		})
	}

	return &DashboardStats{
		TotalRevenue:    revenue.InexactFloat64(),
		TotalSales:      len(rows),
		TotalProfit:     profit.InexactFloat64(),
		MonthlySeries:   series,
		StatusAnalytics: buildStatusAnalytics(rows),
	}
}

func buildStatusAnalytics(rows []entity.OrderRow) []StatusAnalytics {
	counts := make(map[enum.ReceiptStatus]int)
	amounts := make(map[enum.ReceiptStatus]decimal.Decimal)
	total := decimal.Zero

	for _, r := range rows {
		status := enum.ParseReceiptStatus(r.Status())
		amount := decimal.NewFromFloat(r.Total)
		counts[status]++
		amounts[status] = amounts[status].Add(amount)
		total = total.Add(amount)
	}

	analytics := make([]StatusAnalytics, 0, len(enum.KnownReceiptStatuses))
	for _, status := range enum.KnownReceiptStatuses {
		count, amount := counts[status], amounts[status]
		if status.IsAll() {
			count, amount = len(rows), total
		}
		analytics = append(analytics, StatusAnalytics{
			Status:  status,
			Label:   status.Label(),
			Count:   count,
			Percent: percentOf(count, len(rows)),
			Amount:  amount.InexactFloat64(),
		})
	}
	return analytics
}

func percentOf(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
