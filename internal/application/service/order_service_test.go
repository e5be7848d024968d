package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/shopdash-api/internal/application/finance"
	"github.com/sangkips/shopdash-api/internal/domain/entity"
	"github.com/sangkips/shopdash-api/internal/domain/enum"
	"github.com/sangkips/shopdash-api/internal/domain/repository"
	"github.com/sangkips/shopdash-api/pkg/apperror"
	"github.com/sangkips/shopdash-api/pkg/pagination"
	"github.com/sangkips/shopdash-api/pkg/tablequery"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestQueryOrders(t *testing.T) {
	rows := sampleRows()

	tests := []struct {
		name   string
		params repository.OrderFilterParams
		want   []int64
	}{
		{
			name:   "no filters sorts by receipt id",
			params: repository.OrderFilterParams{},
			want:   []int64{101, 102, 103, 104},
		},
		{
			name:   "all status is a no-op",
			params: repository.OrderFilterParams{Statuses: []enum.ReceiptStatus{enum.ReceiptStatusAll}},
			want:   []int64{101, 102, 103, 104},
		},
		{
			name:   "status ignores case",
			params: repository.OrderFilterParams{Statuses: []enum.ReceiptStatus{enum.ReceiptStatusCompleted}},
			want:   []int64{101, 104},
		},
		{
			name: "several statuses",
			params: repository.OrderFilterParams{Statuses: []enum.ReceiptStatus{
				enum.ReceiptStatusPaid, enum.ReceiptStatusCanceled,
			}},
			want: []int64{102, 103},
		},
		{
			name:   "name search is case-insensitive",
			params: repository.OrderFilterParams{Search: "DOE"},
			want:   []int64{101, 104},
		},
		{
			name:   "search matches lower-case names",
			params: repository.OrderFilterParams{Search: "Alice"},
			want:   []int64{103},
		},
		{
			name:   "search matches receipt id",
			params: repository.OrderFilterParams{Search: "102"},
			want:   []int64{102},
		},
		{
			name:   "middle name is not searched",
			params: repository.OrderFilterParams{Search: "mary"},
			want:   []int64{},
		},
		{
			name: "date range is inclusive by day",
			params: repository.OrderFilterParams{
				StartDate: datePtr(day(2024, time.January, 20)),
				EndDate:   datePtr(day(2024, time.February, 1)),
			},
			want: []int64{102, 103},
		},
		{
			name: "inverted date range excludes nothing",
			params: repository.OrderFilterParams{
				StartDate: datePtr(day(2024, time.March, 1)),
				EndDate:   datePtr(day(2024, time.January, 1)),
			},
			want: []int64{101, 102, 103, 104},
		},
		{
			name:   "a single bound does not filter",
			params: repository.OrderFilterParams{StartDate: datePtr(day(2024, time.February, 1))},
			want:   []int64{101, 102, 103, 104},
		},
		{
			name: "predicates are combined",
			params: repository.OrderFilterParams{
				Search:    "doe",
				Statuses:  []enum.ReceiptStatus{enum.ReceiptStatusCompleted},
				StartDate: datePtr(day(2024, time.February, 1)),
				EndDate:   datePtr(day(2024, time.February, 28)),
			},
			want: []int64{104},
		},
		{
			name:   "sub total descending keeps ties in input order",
			params: repository.OrderFilterParams{SortBy: enum.OrderSortSubTotal, SortOrder: tablequery.Desc},
			want:   []int64{102, 104, 103, 101},
		},
		{
			name:   "customer ascending",
			params: repository.OrderFilterParams{SortBy: enum.OrderSortCustomer},
			want:   []int64{104, 101, 102, 103},
		},
		{
			name:   "date descending",
			params: repository.OrderFilterParams{SortBy: enum.OrderSortDate, SortOrder: tablequery.Desc},
			want:   []int64{104, 103, 102, 101},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QueryOrders(rows, &tt.params)
			assert.Equal(t, tt.want, receiptIDs(got))
		})
	}
}

func TestQueryOrdersDoesNotMutateInput(t *testing.T) {
	rows := sampleRows()
	QueryOrders(rows, &repository.OrderFilterParams{SortBy: enum.OrderSortTotal, SortOrder: tablequery.Desc})
	assert.Equal(t, []int64{101, 102, 103, 104}, receiptIDs(rows))
}

func TestQueryOrdersStatusIsExactCaseInsensitive(t *testing.T) {
	deriver := finance.NewDeriver(finance.DefaultFeePolicy())
	rows := FlattenOrderRows([]entity.UserFinanceSheets{{
		User: entity.ShopUser{ShopID: 1, UserID: 2},
		Data: deriver.Derive([]entity.ShopReceipt{
			receipt(1, "Ann One", "COMPLETED", day(2024, time.January, 1), 100),
			receipt(2, "Ben Two", " Completed ", day(2024, time.January, 2), 100),
		}),
	}})

	got := QueryOrders(rows, &repository.OrderFilterParams{Statuses: []enum.ReceiptStatus{enum.ReceiptStatusCompleted}})
	assert.Equal(t, []int64{1}, receiptIDs(got))
}

func TestCountStatuses(t *testing.T) {
	counts := CountStatuses(sampleRows())
	byStatus := make(map[enum.ReceiptStatus]int)
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}

	assert.Equal(t, enum.ReceiptStatusAll, counts[0].Status)
	assert.Equal(t, 4, byStatus[enum.ReceiptStatusAll])
	assert.Equal(t, 2, byStatus[enum.ReceiptStatusCompleted])
	assert.Equal(t, 1, byStatus[enum.ReceiptStatusPaid])
	assert.Equal(t, 1, byStatus[enum.ReceiptStatusCanceled])
	assert.Equal(t, 0, byStatus[enum.ReceiptStatusFullyRefunded])
}

func newOrderTestService(imageSize string) (*OrderService, *stubSource) {
	src := &stubSource{
		users: []entity.ShopUser{{ShopID: 1, UserID: 2}},
		receipts: map[int64][]entity.ShopReceipt{
			2: {
				receipt(1, "Ann One", "Paid", day(2024, 1, 1), 100),
				receipt(2, "Ben Two", "Paid", day(2024, 1, 2), 100),
				receipt(3, "Cat Three", "Completed", day(2024, 1, 3), 100),
				receipt(4, "Dan Four", "Completed", day(2024, 1, 4), 100),
				receipt(5, "Eve Five", "Completed", day(2024, 1, 5), 100),
				receipt(6, "Fay Six", "Completed", day(2024, 1, 6), 100),
				receipt(7, "Gus Seven", "Completed", day(2024, 1, 7), 100),
			},
		},
	}
	return NewOrderService(newReceiptService(src), imageSize, nil), src
}

func TestListOrdersPaginates(t *testing.T) {
	svc, _ := newOrderTestService("")

	result, err := svc.ListOrders(context.Background(), &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 5},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{6, 7}, receiptIDs(result.Items))
	assert.Equal(t, 3, result.EmptyRows)
	assert.Equal(t, int64(7), result.Pagination.Total)
	assert.Equal(t, 2, result.Pagination.TotalPages)
	assert.False(t, result.NotFound)
	assert.False(t, result.CanReset)
	assert.Equal(t, 7, result.StatusCounts[0].Count)
}

func TestListOrdersNotFound(t *testing.T) {
	t.Run("filtered out", func(t *testing.T) {
		svc, _ := newOrderTestService("")

		result, err := svc.ListOrders(context.Background(), &repository.OrderFilterParams{Search: "zzz"})
		require.NoError(t, err)

		assert.Empty(t, result.Items)
		assert.True(t, result.NotFound)
		assert.True(t, result.CanReset)
		assert.Equal(t, pagination.DefaultPerPage, result.EmptyRows)
		// tab counts ignore the active filters
		assert.Equal(t, 7, result.StatusCounts[0].Count)
	})

	t.Run("no orders at all", func(t *testing.T) {
		src := &stubSource{users: []entity.ShopUser{{ShopID: 1, UserID: 2}}}
		svc := NewOrderService(newReceiptService(src), "", nil)

		result, err := svc.ListOrders(context.Background(), &repository.OrderFilterParams{})
		require.NoError(t, err)

		assert.Empty(t, result.Items)
		assert.True(t, result.NotFound)
		assert.False(t, result.CanReset)
		assert.Equal(t, pagination.DefaultPerPage, result.EmptyRows)
	})
}

func TestGetOrder(t *testing.T) {
	svc, _ := newOrderTestService("")

	order, err := svc.GetOrder(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Cat", order.FirstName)
	assert.Equal(t, int64(2), order.User.UserID)

	_, err = svc.GetOrder(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestProductImageURLs(t *testing.T) {
	tests := []struct {
		name      string
		imageSize string
		image     *entity.ListingImage
		want      map[int64]string
	}{
		{
			name:      "small preferred",
			imageSize: ImageSizeSmall,
			image:     &entity.ListingImage{URL75x75: "s.jpg", URL170x135: "l.jpg"},
			want:      map[int64]string{10: "s.jpg"},
		},
		{
			name:      "large preferred",
			imageSize: ImageSizeLarge,
			image:     &entity.ListingImage{URL75x75: "s.jpg", URL170x135: "l.jpg"},
			want:      map[int64]string{10: "l.jpg"},
		},
		{
			name:      "falls back to the other size",
			imageSize: ImageSizeSmall,
			image:     &entity.ListingImage{URL170x135: "l.jpg"},
			want:      map[int64]string{10: "l.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, src := newOrderTestService(tt.imageSize)
			src.images = map[int64]*entity.ListingImage{1: tt.image}

			urls, err := svc.ProductImageURLs(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, urls)
		})
	}
}

func TestProductImageURLsSkipsFailedImages(t *testing.T) {
	svc, src := newOrderTestService("")
	src.images = map[int64]*entity.ListingImage{}

	urls, err := svc.ProductImageURLs(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, urls)
	assert.Equal(t, 1, src.imageCalls)
}
