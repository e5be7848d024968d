package etsy

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/sangkips/shopdash-api/internal/domain/entity"
	"github.com/sangkips/shopdash-api/internal/domain/repository"
)

//go:embed fixtures/receipts.json
var receiptsFixture []byte

// MockUser is the single seller served by the mock source
var MockUser = entity.ShopUser{ShopID: 1, UserID: 2}

// MockSource serves a fixed set of receipts for local development
type MockSource struct {
	mu       sync.Mutex
	users    []entity.ShopUser
	receipts []entity.ShopReceipt
}

var _ repository.ReceiptSource = (*MockSource)(nil)

// NewMockSource loads the bundled receipts fixture
func NewMockSource() (*MockSource, error) {
	var page entity.ReceiptsPage
	if err := json.Unmarshal(receiptsFixture, &page); err != nil {
		return nil, fmt.Errorf("decode receipts fixture: %w", err)
	}
	return &MockSource{
		users:    []entity.ShopUser{MockUser},
		receipts: page.Results,
	}, nil
}

func (m *MockSource) ListUsers(ctx context.Context) ([]entity.ShopUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.users), nil
}

func (m *MockSource) ListReceipts(ctx context.Context, user entity.ShopUser) ([]entity.ShopReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.Contains(m.users, user) {
		return []entity.ShopReceipt{}, nil
	}
	return slices.Clone(m.receipts), nil
}

func (m *MockSource) GetShop(ctx context.Context, shopID int64) (*entity.Shop, error) {
	return &entity.Shop{
		ShopID: shopID,
		Name:   fmt.Sprintf("Mock Shop %d", shopID),
		Icon:   "/assets/icons/shop.svg",
		URL:    fmt.Sprintf("https://www.etsy.com/shop/mock%d", shopID),
	}, nil
}

func (m *MockSource) GetLoginLink(ctx context.Context) (string, error) {
	return "https://www.etsy.com/oauth/connect?client_id=mock", nil
}

func (m *MockSource) DeleteUser(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = slices.DeleteFunc(m.users, func(u entity.ShopUser) bool {
		return u.UserID == userID
	})
	return nil
}

func (m *MockSource) GetListingImage(ctx context.Context, sellerUserID, listingID, listingImageID int64) (*entity.ListingImage, error) {
	return &entity.ListingImage{
		ListingImageID: listingImageID,
		URL75x75:       fmt.Sprintf("/assets/images/listings/%d_75x75.jpg", listingID),
		URL170x135:     fmt.Sprintf("/assets/images/listings/%d_170x135.jpg", listingID),
	}, nil
}
