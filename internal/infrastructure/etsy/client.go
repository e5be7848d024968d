// Package etsy implements the receipt source against the marketplace
// receipts API and against a bundled fixture.
package etsy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/sangkips/shopdash-api/internal/config"
	"github.com/sangkips/shopdash-api/internal/domain/entity"
	"github.com/sangkips/shopdash-api/internal/domain/repository"
	"github.com/sangkips/shopdash-api/pkg/apperror"
)

// Client reads receipts, shops and images from the receipts API
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxBytes   int64
	logger     *slog.Logger
}

// DefaultMaxResponseBytes is used when the configured cap is not positive
const DefaultMaxResponseBytes int64 = 10 << 20

var _ repository.ReceiptSource = (*Client)(nil)

// NewClient creates a client for cfg.BaseURL. When cfg.Token is set every
// request carries it as a bearer token.
func NewClient(cfg config.UpstreamConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	maxBytes := cfg.MaxResponseBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxResponseBytes
	}

	httpClient := &http.Client{Timeout: timeout}
	if cfg.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.Token,
			TokenType:   "Bearer",
		}))
		httpClient.Timeout = timeout
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		maxBytes:   maxBytes,
		logger:     logger,
	}
}

func (c *Client) ListUsers(ctx context.Context) ([]entity.ShopUser, error) {
	var users []entity.ShopUser
	if err := c.getJSON(ctx, "users", "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) ListReceipts(ctx context.Context, user entity.ShopUser) ([]entity.ShopReceipt, error) {
	var page entity.ReceiptsPage
	path := fmt.Sprintf("/users/%d/shops/%d/receipts", user.UserID, user.ShopID)
	if err := c.getJSON(ctx, "receipts", path, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		return []entity.ShopReceipt{}, nil
	}
	return page.Results, nil
}

func (c *Client) GetShop(ctx context.Context, shopID int64) (*entity.Shop, error) {
	var shop entity.Shop
	if err := c.getJSON(ctx, "shop", fmt.Sprintf("/shops/%d", shopID), &shop); err != nil {
		return nil, err
	}
	return &shop, nil
}

func (c *Client) GetLoginLink(ctx context.Context) (string, error) {
	raw, err := c.get(ctx, "login link", "/genLink")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// DeleteUser removes a seller upstream. The receipts API exposes this as a GET.
func (c *Client) DeleteUser(ctx context.Context, userID int64) error {
	_, err := c.get(ctx, "user deletion", fmt.Sprintf("/users/%d/delete", userID))
	return err
}

func (c *Client) GetListingImage(ctx context.Context, sellerUserID, listingID, listingImageID int64) (*entity.ListingImage, error) {
	var img entity.ListingImage
	path := fmt.Sprintf("/users/%d/listings/%d/images/%d", sellerUserID, listingID, listingImageID)
	if err := c.getJSON(ctx, "listing image", path, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	raw, err := c.get(ctx, op, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperror.NewUpstreamError(op, fmt.Errorf("decode json: %w", err))
	}
	return nil
}

func (c *Client) get(ctx context.Context, op, path string) ([]byte, error) {
	reqID := uuid.New().String()
	start := time.Now()
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperror.NewUpstreamError(op, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("etsy.http.send_error", "req_id", reqID, "url", url, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, apperror.NewUpstreamError(op, err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			c.logger.Warn("etsy.http.response_body_close_error", "req_id", reqID, "error", err)
		}
	}(resp.Body)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, apperror.NewUpstreamError(op, fmt.Errorf("read body: %w", err))
	}
	if int64(len(raw)) > c.maxBytes {
		c.logger.Warn("etsy.http.response_too_large", "req_id", reqID, "url", url, "limit_bytes", c.maxBytes)
		return nil, apperror.NewUpstreamError(op, fmt.Errorf("response body exceeds %d bytes", c.maxBytes))
	}

	c.logger.Debug("etsy.http.response",
		"req_id", reqID,
		"url", url,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return nil, apperror.NewUpstreamError(op, fmt.Errorf("non-2xx status: %d", resp.StatusCode))
	}
	return raw, nil
}
