package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sangkips/shopdash-api/internal/domain/entity"
	"github.com/sangkips/shopdash-api/internal/domain/enum"
	"github.com/sangkips/shopdash-api/internal/domain/repository"
	"github.com/sangkips/shopdash-api/pkg/apperror"
	"github.com/sangkips/shopdash-api/pkg/pagination"
	"github.com/sangkips/shopdash-api/pkg/tablequery"
)

// Listing image sizes offered by the receipts API
const (
	ImageSizeSmall = "75x75"
	ImageSizeLarge = "170x135"
)

// OrderService answers table queries over the derived finance sheets
type OrderService struct {
	receipts    *ReceiptService
	imageSize   string
	concurrency int
	logger      *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(receipts *ReceiptService, imageSize string, logger *slog.Logger) *OrderService {
	if imageSize != ImageSizeLarge {
		imageSize = ImageSizeSmall
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderService{
		receipts:    receipts,
		imageSize:   imageSize,
		concurrency: receipts.concurrency,
		logger:      logger,
	}
}

// StatusCount is the number of orders behind one status tab
type StatusCount struct {
	Status enum.ReceiptStatus `json:"status"`
	Label  string             `json:"label"`
	Count  int                `json:"count"`
}

// OrderListResult is one page of the orders table
type OrderListResult struct {
	Items        []entity.OrderRow      `json:"items"`
	Pagination   *pagination.Pagination `json:"pagination"`
	EmptyRows    int                    `json:"empty_rows"`
	NotFound     bool                   `json:"not_found"`
	DateError    bool                   `json:"date_error"`
	CanReset     bool                   `json:"can_reset"`
	StatusCounts []StatusCount          `json:"status_counts"`
}

// ListOrders fetches, sorts, filters and paginates the orders table
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*OrderListResult, error) {
	rows, err := s.receipts.FetchOrderRows(ctx)
	if err != nil {
		return nil, err
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	filtered := QueryOrders(rows, params)
	page := pagination.Paginate(filtered, params.Pagination)

	return &OrderListResult{
		Items:        page.Items,
		Pagination:   page.Pagination,
		EmptyRows:    page.EmptyRows,
		NotFound:     len(filtered) == 0,
		DateError:    params.DateError(),
		CanReset:     params.CanReset(),
		StatusCounts: CountStatuses(rows),
	}, nil
}

// FilterOrders returns every order matching params, sorted but not paginated
func (s *OrderService) FilterOrders(ctx context.Context, params *repository.OrderFilterParams) ([]entity.OrderRow, error) {
	rows, err := s.receipts.FetchOrderRows(ctx)
	if err != nil {
		return nil, err
	}
	return QueryOrders(rows, params), nil
}

// GetOrder returns the order with the given receipt id
func (s *OrderService) GetOrder(ctx context.Context, receiptID int64) (*entity.OrderRow, error) {
	rows, err := s.receipts.FetchOrderRows(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].ReceiptID() == receiptID {
			return &rows[i], nil
		}
	}
	return nil, apperror.NewNotFoundError("Order")
}

// ProductImageURLs maps each line item of an order to a thumbnail URL.
// Line items whose image cannot be fetched are left out.
func (s *OrderService) ProductImageURLs(ctx context.Context, receiptID int64) (map[int64]string, error) {
	order, err := s.GetOrder(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	transactions := order.ShopReceipt.Transactions
	source := s.receipts.Source()

	urls := make([]string, len(transactions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, t := range transactions {
		g.Go(func() error {
			img, err := source.GetListingImage(gctx, t.SellerUserID, t.ListingID, t.ListingImageID)
			if err != nil {
				s.logger.Warn("orders.image.fetch_failed",
					"receipt_id", receiptID,
					"transaction_id", t.TransactionID,
					"error", err,
				)
				return nil
			}
			urls[i] = s.pickImageURL(img)
			return nil
		})
	}
	_ = g.Wait()

	result := make(map[int64]string, len(transactions))
	for i, t := range transactions {
		if urls[i] != "" {
			result[t.TransactionID] = urls[i]
		}
	}
	return result, nil
}

func (s *OrderService) pickImageURL(img *entity.ListingImage) string {
	if img == nil {
		return ""
	}
	preferred, fallback := img.URL75x75, img.URL170x135
	if s.imageSize == ImageSizeLarge {
		preferred, fallback = fallback, preferred
	}
	if preferred != "" {
		return preferred
	}
	return fallback
}

// QueryOrders sorts rows by the requested column and applies the search,
// status and date predicates.
func QueryOrders(rows []entity.OrderRow, params *repository.OrderFilterParams) []entity.OrderRow {
	return tablequery.Apply(rows,
		OrderComparator(params.SortBy, params.SortOrder),
		searchPredicate(params.Search),
		statusPredicate(params.Statuses),
		datePredicate(params),
	)
}

// OrderComparator returns the comparator of a sortable orders column
func OrderComparator(field enum.OrderSortField, dir tablequery.Direction) tablequery.Comparator[entity.OrderRow] {
	var c tablequery.Comparator[entity.OrderRow]
	switch field {
	case enum.OrderSortCustomer:
		c = tablequery.By(func(r entity.OrderRow) string { return receiptOf(r).Name })
	case enum.OrderSortDate:
		c = tablequery.By(func(r entity.OrderRow) int64 { return receiptOf(r).CreatedTimestamp })
	case enum.OrderSortSubTotal:
		c = tablequery.By(func(r entity.OrderRow) float64 { return r.SubTotal })
	case enum.OrderSortNetProfit:
		c = tablequery.By(func(r entity.OrderRow) float64 { return r.NetProfit })
	case enum.OrderSortQuantity:
		c = tablequery.By(func(r entity.OrderRow) int { return r.TotalQuantity })
	case enum.OrderSortStatus:
		c = tablequery.By(func(r entity.OrderRow) string { return strings.ToLower(r.Status()) })
	case enum.OrderSortTotal:
		c = tablequery.By(func(r entity.OrderRow) float64 { return r.Total })
	default:
		c = tablequery.By(func(r entity.OrderRow) int64 { return r.ReceiptID() })
	}
	return tablequery.Directed(c, dir)
}

// CountStatuses returns the tab counts: every order for "all", then the
// orders of each known status.
func CountStatuses(rows []entity.OrderRow) []StatusCount {
	byStatus := make(map[enum.ReceiptStatus]int)
	for _, r := range rows {
		byStatus[enum.ParseReceiptStatus(r.Status())]++
	}

	counts := make([]StatusCount, 0, len(enum.KnownReceiptStatuses))
	for _, status := range enum.KnownReceiptStatuses {
		n := byStatus[status]
		if status.IsAll() {
			n = len(rows)
		}
		counts = append(counts, StatusCount{Status: status, Label: status.Label(), Count: n})
	}
	return counts
}

func searchPredicate(search string) tablequery.Predicate[entity.OrderRow] {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil
	}
	return func(r entity.OrderRow) bool {
		return tablequery.ContainsFold(search, receiptOf(r).ReceiptIDString(), r.FirstName, r.LastName)
	}
}

func statusPredicate(statuses []enum.ReceiptStatus) tablequery.Predicate[entity.OrderRow] {
	if len(statuses) == 0 {
		return nil
	}
	for _, s := range statuses {
		if s.IsAll() {
			return nil
		}
	}
	return func(r entity.OrderRow) bool {
		status := enum.ParseReceiptStatus(r.Status())
		for _, s := range statuses {
			if s == status {
				return true
			}
		}
		return false
	}
}

// datePredicate keeps orders placed on any calendar day from start to end.
// The order's day is taken in the display timezone, the bounds as given.
func datePredicate(params *repository.OrderFilterParams) tablequery.Predicate[entity.OrderRow] {
	if params.StartDate == nil || params.EndDate == nil || params.DateError() {
		return nil
	}
	from, to := dayKey(*params.StartDate), dayKey(*params.EndDate)
	return func(r entity.OrderRow) bool {
		day := dayKey(r.OrderTime)
		return day >= from && day <= to
	}
}

func dayKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

var emptyReceipt = &entity.ShopReceipt{}

func receiptOf(r entity.OrderRow) *entity.ShopReceipt {
	if r.ShopReceipt == nil {
		return emptyReceipt
	}
	return r.ShopReceipt
}
