package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sangkips/shopdash-api/internal/application/finance"
	"github.com/sangkips/shopdash-api/internal/domain/entity"
	"github.com/sangkips/shopdash-api/internal/domain/repository"
)

var errUpstream = errors.New("upstream down")

// stubSource is an in-memory ReceiptSource for service tests
type stubSource struct {
	mu         sync.Mutex
	users      []entity.ShopUser
	receipts   map[int64][]entity.ShopReceipt
	delays     map[int64]time.Duration
	failUser   int64
	images     map[int64]*entity.ListingImage
	deleted    []int64
	usersErr   error
	imageCalls int
}

var _ repository.ReceiptSource = (*stubSource)(nil)

func (s *stubSource) ListUsers(ctx context.Context) ([]entity.ShopUser, error) {
	if s.usersErr != nil {
		return nil, s.usersErr
	}
	return s.users, nil
}

func (s *stubSource) ListReceipts(ctx context.Context, user entity.ShopUser) ([]entity.ShopReceipt, error) {
	if d := s.delays[user.UserID]; d > 0 {
		time.Sleep(d)
	}
	if user.UserID == s.failUser {
		return nil, errUpstream
	}
	return s.receipts[user.UserID], nil
}

func (s *stubSource) GetShop(ctx context.Context, shopID int64) (*entity.Shop, error) {
	return &entity.Shop{ShopID: shopID, Name: "shop"}, nil
}

func (s *stubSource) GetLoginLink(ctx context.Context) (string, error) {
	return "https://example.test/connect", nil
}

func (s *stubSource) DeleteUser(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, userID)
	return nil
}

func (s *stubSource) GetListingImage(ctx context.Context, sellerUserID, listingID, listingImageID int64) (*entity.ListingImage, error) {
	s.mu.Lock()
	s.imageCalls++
	s.mu.Unlock()
	img, ok := s.images[listingImageID]
	if !ok {
		return nil, errUpstream
	}
	return img, nil
}

func money(amount int64) *entity.Money {
	return &entity.Money{Amount: amount, Divisor: 100}
}

// receipt builds a receipt created at noon UTC on the given day
func receipt(id int64, name, status string, day time.Time, subtotal int64) entity.ShopReceipt {
	return entity.ShopReceipt{
		ReceiptID:        id,
		Name:             name,
		Status:           status,
		CreatedTimestamp: day.Add(12 * time.Hour).Unix(),
		Subtotal:         money(subtotal),
		Grandtotal:       money(subtotal),
		Transactions: []entity.Transaction{
			{TransactionID: id * 10, Quantity: 1, SellerUserID: 2, ListingID: id, ListingImageID: id},
		},
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newReceiptService(src *stubSource) *ReceiptService {
	return NewReceiptService(src, finance.NewDeriver(finance.DefaultFeePolicy()), 4, nil)
}

func sampleRows() []entity.OrderRow {
	receipts := []entity.ShopReceipt{
		receipt(101, "Jane Mary Doe", "Completed", day(2024, time.January, 5), 1000),
		receipt(102, "John Smith", "Paid", day(2024, time.January, 20), 3000),
		receipt(103, "alice jones", "Canceled", day(2024, time.February, 1), 2000),
		receipt(104, "Bob Doe", "completed", day(2024, time.February, 10), 3000),
	}
	deriver := finance.NewDeriver(finance.DefaultFeePolicy())
	return FlattenOrderRows([]entity.UserFinanceSheets{
		{User: entity.ShopUser{ShopID: 1, UserID: 2}, Data: deriver.Derive(receipts)},
	})
}

func receiptIDs(rows []entity.OrderRow) []int64 {
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.ReceiptID()
	}
	return ids
}
