package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sangkips/shopdash-api/internal/application/finance"
	"github.com/sangkips/shopdash-api/internal/domain/entity"
	"github.com/sangkips/shopdash-api/internal/domain/repository"
	"github.com/sangkips/shopdash-api/pkg/apperror"
)

const defaultFetchConcurrency = 4

// ReceiptService fetches every seller's receipts and derives their finance sheets
type ReceiptService struct {
	source      repository.ReceiptSource
	deriver     *finance.Deriver
	concurrency int
	logger      *slog.Logger
}

// NewReceiptService creates a new receipt service. concurrency bounds the
// number of in-flight per-seller fetches.
func NewReceiptService(source repository.ReceiptSource, deriver *finance.Deriver, concurrency int, logger *slog.Logger) *ReceiptService {
	if concurrency < 1 {
		concurrency = defaultFetchConcurrency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReceiptService{
		source:      source,
		deriver:     deriver,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Source returns the underlying receipt source
func (s *ReceiptService) Source() repository.ReceiptSource {
	return s.source
}

// FetchFinanceSheets fetches the receipts of every seller and derives one
// finance sheet per receipt. The result follows the order of the user list
// regardless of which fetch finishes first. Any failed fetch fails the call.
func (s *ReceiptService) FetchFinanceSheets(ctx context.Context) ([]entity.UserFinanceSheets, error) {
	start := time.Now()

	users, err := s.source.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperror.ErrNoUsers
	}

	results := make([]entity.UserFinanceSheets, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, user := range users {
		g.Go(func() error {
			receipts, err := s.source.ListReceipts(gctx, user)
			if err != nil {
				return err
			}
			results[i] = entity.UserFinanceSheets{
				User: user,
				Data: s.deriver.Derive(receipts),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("receipts.fetch.failed", "users", len(users), "error", err)
		return nil, err
	}

	s.logger.Debug("receipts.fetch.completed",
		"users", len(users),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return results, nil
}

// FetchOrderRows returns every finance sheet flattened into table rows,
// sellers in user-list order and receipts in upstream order.
func (s *ReceiptService) FetchOrderRows(ctx context.Context) ([]entity.OrderRow, error) {
	groups, err := s.FetchFinanceSheets(ctx)
	if err != nil {
		return nil, err
	}
	return FlattenOrderRows(groups), nil
}

// FlattenOrderRows joins each finance sheet with the seller it belongs to
func FlattenOrderRows(groups []entity.UserFinanceSheets) []entity.OrderRow {
	n := 0
	for _, g := range groups {
		n += len(g.Data)
	}
	rows := make([]entity.OrderRow, 0, n)
	for _, g := range groups {
		for _, sheet := range g.Data {
			rows = append(rows, entity.OrderRow{FinanceSheet: sheet, User: g.User})
		}
	}
	return rows
}
