package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/shopdash-api/internal/domain/entity"
	"github.com/sangkips/shopdash-api/pkg/apperror"
)

func TestFetchFinanceSheetsPreservesUserOrder(t *testing.T) {
	src := &stubSource{
		users: []entity.ShopUser{{ShopID: 1, UserID: 1}, {ShopID: 2, UserID: 2}, {ShopID: 3, UserID: 3}},
		receipts: map[int64][]entity.ShopReceipt{
			1: {receipt(11, "A", "Paid", day(2024, 1, 1), 100)},
			2: {receipt(21, "B", "Paid", day(2024, 1, 1), 100), receipt(22, "C", "Paid", day(2024, 1, 2), 100)},
			3: {},
		},
		// the first user answers last
		delays: map[int64]time.Duration{1: 30 * time.Millisecond},
	}

	groups, err := newReceiptService(src).FetchFinanceSheets(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, int64(1), groups[0].User.UserID)
	assert.Equal(t, int64(2), groups[1].User.UserID)
	assert.Equal(t, int64(3), groups[2].User.UserID)
	assert.Len(t, groups[1].Data, 2)
	assert.Empty(t, groups[2].Data)

	rows := FlattenOrderRows(groups)
	assert.Equal(t, []int64{11, 21, 22}, receiptIDs(rows))
	assert.Equal(t, int64(2), rows[2].User.UserID)
}

func TestFetchFinanceSheetsNoUsers(t *testing.T) {
	_, err := newReceiptService(&stubSource{}).FetchFinanceSheets(context.Background())
	assert.ErrorIs(t, err, apperror.ErrNoUsers)
}

func TestFetchFinanceSheetsFailsOnAnyUser(t *testing.T) {
	src := &stubSource{
		users:    []entity.ShopUser{{ShopID: 1, UserID: 1}, {ShopID: 2, UserID: 2}},
		receipts: map[int64][]entity.ShopReceipt{1: {receipt(11, "A", "Paid", day(2024, 1, 1), 100)}},
		failUser: 2,
	}

	_, err := newReceiptService(src).FetchFinanceSheets(context.Background())
	assert.ErrorIs(t, err, errUpstream)
}

func TestFetchFinanceSheetsUserListError(t *testing.T) {
	src := &stubSource{usersErr: errUpstream}
	_, err := newReceiptService(src).FetchOrderRows(context.Background())
	assert.ErrorIs(t, err, errUpstream)
}
