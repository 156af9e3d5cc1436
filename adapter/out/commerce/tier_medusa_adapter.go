// Package commerce implements the commerce platform adapter against a
// Medusa-style admin API.
package commerce

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tier_server/core/domain"
	"tier_server/pkg/httputil"
	"tier_server/pkg/logger"
	"tier_server/pkg/money"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker"
)

// Adapter implements out.CommercePort over the platform's admin HTTP API.
// All calls go through a shared circuit breaker so a dying platform trips
// fast instead of timing out 500 times in a row during a bulk run.
type Adapter struct {
	baseURL    string
	apiKey     string
	pageSize   int
	maxRetries int
	client     *http.Client
	cb         *gobreaker.CircuitBreaker
	log        *logger.Logger
}

// Config holds adapter configuration.
type Config struct {
	BaseURL    string
	APIKey     string
	PageSize   int
	MaxRetries int
	// Timeout overrides the per-request timeout. Zero keeps the shared
	// commerce client's default.
	Timeout time.Duration
}

// NewAdapter creates the commerce adapter.
func NewAdapter(cfg Config) *Adapter {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	cbSettings := gobreaker.Settings{
		Name:        "commerce-admin-api",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
	}
	log := logger.WithField("component", "commerce")
	cbSettings.OnStateChange = func(name string, from, to gobreaker.State) {
		log.WithFields(map[string]any{"from": from.String(), "to": to.String()}).
			Warn("circuit breaker state changed")
	}

	client := httputil.CommerceClient()
	if cfg.Timeout > 0 {
		clientCfg := httputil.CommerceClientConfig()
		clientCfg.ResponseTimeout = cfg.Timeout
		client = httputil.NewClient(clientCfg)
	}

	return &Adapter{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		pageSize:   cfg.PageSize,
		maxRetries: cfg.MaxRetries,
		client:     client,
		cb:         gobreaker.NewCircuitBreaker(cbSettings),
		log:        log,
	}
}

// Wire types. Amounts cross the platform boundary as decimal dollars, the
// same unit the metadata write uses; money.Cents handles the conversion.

type apiPrice struct {
	ID           string      `json:"id,omitempty"`
	CurrencyCode string      `json:"currency_code"`
	Amount       money.Cents `json:"amount"`
	Title        string      `json:"title,omitempty"`
}

type apiVariant struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type apiProduct struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	CategoryID string         `json:"category_id"`
	Metadata   map[string]any `json:"metadata"`
	Variants   []apiVariant   `json:"variants"`
}

type productListResponse struct {
	Products []apiProduct `json:"products"`
	Count    int          `json:"count"`
	Offset   int          `json:"offset"`
	Limit    int          `json:"limit"`
}

type apiRegion struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currency_code"`
}

type regionListResponse struct {
	Regions []apiRegion `json:"regions"`
}

// ListProducts pages through the full catalog.
func (a *Adapter) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	offset := 0

	for {
		page, err := a.listProductPage(ctx, offset)
		if err != nil {
			return nil, err
		}
		for _, p := range page.Products {
			products = append(products, toDomainProduct(p))
		}
		offset += len(page.Products)
		if len(page.Products) == 0 || offset >= page.Count {
			break
		}
	}

	a.log.WithField("count", len(products)).Debug("listed products")
	return products, nil
}

func (a *Adapter) listProductPage(ctx context.Context, offset int) (*productListResponse, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(a.pageSize))
	query.Set("offset", strconv.Itoa(offset))
	query.Set("expand", "variants")

	var page productListResponse
	if err := a.get(ctx, "/admin/products?"+query.Encode(), &page); err != nil {
		return nil, fmt.Errorf("list products at offset %d: %w", offset, err)
	}
	return &page, nil
}

// ListRegions returns all selling regions.
func (a *Adapter) ListRegions(ctx context.Context) ([]domain.Region, error) {
	var resp regionListResponse
	if err := a.get(ctx, "/admin/regions", &resp); err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}

	regions := make([]domain.Region, 0, len(resp.Regions))
	for _, r := range resp.Regions {
		regions = append(regions, domain.Region{
			ID:           r.ID,
			Name:         r.Name,
			CurrencyCode: r.CurrencyCode,
		})
	}
	return regions, nil
}

// UpdateProductMetadata writes the product's metadata. The product update
// replaces the metadata object wholesale, so callers must send the full
// merged map, not just the keys they changed.
func (a *Adapter) UpdateProductMetadata(ctx context.Context, productID string, metadata map[string]any) error {
	body := map[string]any{"metadata": metadata}
	if err := a.post(ctx, "/admin/products/"+productID, body, nil); err != nil {
		return fmt.Errorf("update product %s: %w", productID, err)
	}
	return nil
}

// ReplaceVariantPrices swaps the variant's full price set in one variant
// update call. The platform applies the prices array as a whole, so a failed
// call leaves the old set in place.
func (a *Adapter) ReplaceVariantPrices(ctx context.Context, variantID string, prices []domain.Price) error {
	wire := make([]apiPrice, 0, len(prices))
	for _, p := range prices {
		wire = append(wire, apiPrice{
			CurrencyCode: p.CurrencyCode,
			Amount:       p.Amount,
			Title:        p.Title,
		})
	}

	body := map[string]any{"prices": wire}
	if err := a.post(ctx, "/admin/variants/"+variantID, body, nil); err != nil {
		return fmt.Errorf("replace prices for variant %s: %w", variantID, err)
	}
	return nil
}

// get issues a GET with retries on transient failures.
func (a *Adapter) get(ctx context.Context, path string, out any) error {
	var lastErr error
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 250 * time.Millisecond):
			}
		}
		lastErr = a.do(ctx, http.MethodGet, path, nil, out)
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

// post issues a single POST. Writes are never retried; the caller records
// the failure per product instead.
func (a *Adapter) post(ctx context.Context, path string, body, out any) error {
	return a.do(ctx, http.MethodPost, path, body, out)
}

func (a *Adapter) do(ctx context.Context, method, path string, body, out any) error {
	result, err := a.cb.Execute(func() (interface{}, error) {
		var reader io.Reader
		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("encode request: %w", err)
			}
			reader = bytes.NewReader(data)
		}

		req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := httputil.DoWithContext(ctx, a.client, req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &statusError{Status: resp.StatusCode, Body: truncate(data, 512)}
		}
		return data, nil
	})
	if err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(result.([]byte), out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// statusError is a non-2xx admin API response.
type statusError struct {
	Status int
	Body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("admin api status %d: %s", e.Status, e.Body)
}

func isRetryable(err error) bool {
	if statusErr, ok := err.(*statusError); ok {
		return statusErr.Status >= 500 || statusErr.Status == http.StatusTooManyRequests
	}
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return false
	}
	// Network-level failures are worth one more try.
	return true
}

func truncate(data []byte, max int) string {
	if len(data) > max {
		data = data[:max]
	}
	return string(data)
}

func toDomainProduct(p apiProduct) domain.Product {
	product := domain.Product{
		ID:         p.ID,
		Title:      p.Title,
		CategoryID: p.CategoryID,
		Metadata:   p.Metadata,
	}
	for _, v := range p.Variants {
		product.Variants = append(product.Variants, domain.ProductVariant{
			ID:        v.ID,
			ProductID: p.ID,
			Title:     v.Title,
		})
	}
	return product
}
