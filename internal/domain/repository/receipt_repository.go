package repository

import (
	"context"
	"time"

	"github.com/sangkips/shopdash-api/internal/domain/entity"
	"github.com/sangkips/shopdash-api/internal/domain/enum"
	"github.com/sangkips/shopdash-api/pkg/pagination"
	"github.com/sangkips/shopdash-api/pkg/tablequery"
)

// ReceiptSource fetches raw marketplace data. Implementations never
// transform what they return.
type ReceiptSource interface {
	ListUsers(ctx context.Context) ([]entity.ShopUser, error)
	ListReceipts(ctx context.Context, user entity.ShopUser) ([]entity.ShopReceipt, error)
	GetShop(ctx context.Context, shopID int64) (*entity.Shop, error)
	GetLoginLink(ctx context.Context) (string, error)
	DeleteUser(ctx context.Context, userID int64) error
	GetListingImage(ctx context.Context, sellerUserID, listingID, listingImageID int64) (*entity.ListingImage, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Statuses   []enum.ReceiptStatus
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     enum.OrderSortField
	SortOrder  tablequery.Direction
}

// DateError reports an inverted date range. An inverted range disables
// date filtering instead of excluding every row.
func (p *OrderFilterParams) DateError() bool {
	return p.StartDate != nil && p.EndDate != nil && p.StartDate.After(*p.EndDate)
}

// CanReset reports whether any filter narrows the result
func (p *OrderFilterParams) CanReset() bool {
	if p.Search != "" {
		return true
	}
	for _, s := range p.Statuses {
		if !s.IsAll() {
			return true
		}
	}
	return p.StartDate != nil && p.EndDate != nil
}
