package service

import (
	"context"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/sangkips/shopdash-api/internal/domain/entity"
	"github.com/sangkips/shopdash-api/internal/domain/repository"
	"github.com/sangkips/shopdash-api/pkg/apperror"
)

// ShopService manages the sellers connected to the dashboard
type ShopService struct {
	source      repository.ReceiptSource
	concurrency int
	logger      *slog.Logger
}

// NewShopService creates a new shop service
func NewShopService(source repository.ReceiptSource, concurrency int, logger *slog.Logger) *ShopService {
	if concurrency < 1 {
		concurrency = defaultFetchConcurrency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ShopService{source: source, concurrency: concurrency, logger: logger}
}

// ListShops returns the shop of every connected seller, in user-list order,
// each annotated with the seller's user id.
func (s *ShopService) ListShops(ctx context.Context) ([]entity.Shop, error) {
	users, err := s.source.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	shops := make([]entity.Shop, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, user := range users {
		g.Go(func() error {
			shop, err := s.source.GetShop(gctx, user.ShopID)
			if err != nil {
				return err
			}
			shop.UserID = user.UserID
			shops[i] = *shop
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return shops, nil
}

// LoginLink returns the URL that connects a new seller account
func (s *ShopService) LoginLink(ctx context.Context) (string, error) {
	return s.source.GetLoginLink(ctx)
}

// DisconnectUser removes a seller from the upstream user list
func (s *ShopService) DisconnectUser(ctx context.Context, userID int64) error {
	users, err := s.source.ListUsers(ctx)
	if err != nil {
		return err
	}
	known := slices.ContainsFunc(users, func(u entity.ShopUser) bool {
		return u.UserID == userID
	})
	if !known {
		return apperror.NewNotFoundError("Seller")
	}

	if err := s.source.DeleteUser(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("shops.user.disconnected", "user_id", userID)
	return nil
}
