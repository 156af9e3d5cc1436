package commerce

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"tier_server/core/domain"
	"tier_server/pkg/httputil"
	"tier_server/pkg/money"

	"github.com/goccy/go-json"
)

func newTestAdapter(serverURL string) *Adapter {
	return NewAdapter(Config{
		BaseURL:    serverURL,
		APIKey:     "test-key",
		PageSize:   2,
		MaxRetries: 2,
	})
}

func TestListProductsPaginates(t *testing.T) {
	catalog := []apiProduct{
		{ID: "prod_1", Title: "Classic Navy Business Suit"},
		{ID: "prod_2", Title: "White Dress Shirt"},
		{ID: "prod_3", Title: "Black Cummerbund", Variants: []apiVariant{{ID: "variant_1", Title: "One Size"}}},
	}

	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/products" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		authHeader = r.Header.Get("Authorization")

		offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
		if err != nil {
			t.Fatalf("bad offset %q", r.URL.Query().Get("offset"))
		}
		end := offset + 2
		if end > len(catalog) {
			end = len(catalog)
		}
		json.NewEncoder(w).Encode(productListResponse{
			Products: catalog[offset:end],
			Count:    len(catalog),
			Offset:   offset,
			Limit:    2,
		})
	}))
	defer server.Close()

	products, err := newTestAdapter(server.URL).ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("got %d products, want 3", len(products))
	}
	if authHeader != "Bearer test-key" {
		t.Errorf("Authorization = %q", authHeader)
	}
	if len(products[2].Variants) != 1 || products[2].Variants[0].ProductID != "prod_3" {
		t.Errorf("variant mapping wrong: %+v", products[2].Variants)
	}
}

func TestListProductsRetriesTransientFailure(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(productListResponse{
			Products: []apiProduct{{ID: "prod_1", Title: "Wool Overcoat"}},
			Count:    1,
		})
	}))
	defer server.Close()

	products, err := newTestAdapter(server.URL).ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if len(products) != 1 {
		t.Fatalf("got %d products", len(products))
	}
}

func TestUpdateProductMetadataPayload(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	err := newTestAdapter(server.URL).UpdateProductMetadata(context.Background(), "prod_9", map[string]any{
		domain.MetaKeyTier: "SUIT_STANDARD",
	})
	if err != nil {
		t.Fatalf("UpdateProductMetadata: %v", err)
	}
	if gotPath != "/admin/products/prod_9" {
		t.Errorf("path = %s", gotPath)
	}
	meta, _ := gotBody["metadata"].(map[string]any)
	if meta[domain.MetaKeyTier] != "SUIT_STANDARD" {
		t.Errorf("metadata payload = %v", gotBody)
	}
}

func TestUpdateProductMetadataNotRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := newTestAdapter(server.URL).UpdateProductMetadata(context.Background(), "prod_1", map[string]any{})
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("write retried %d times", attempts)
	}
}

func TestReplaceVariantPricesPayload(t *testing.T) {
	var gotPath string
	var rawBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		rawBody = string(data)
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	prices := []domain.Price{
		{VariantID: "variant_1", CurrencyCode: "usd", Amount: money.Cents(22999), Title: "SUIT_STANDARD - USD"},
		{VariantID: "variant_1", CurrencyCode: "eur", Amount: money.Cents(22999), Title: "SUIT_STANDARD - EUR"},
	}
	err := newTestAdapter(server.URL).ReplaceVariantPrices(context.Background(), "variant_1", prices)
	if err != nil {
		t.Fatalf("ReplaceVariantPrices: %v", err)
	}
	if gotPath != "/admin/variants/variant_1" {
		t.Errorf("path = %s", gotPath)
	}

	var gotBody struct {
		Prices []apiPrice `json:"prices"`
	}
	if err := json.Unmarshal([]byte(rawBody), &gotBody); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(gotBody.Prices) != 2 {
		t.Fatalf("got %d prices", len(gotBody.Prices))
	}
	if gotBody.Prices[0].Amount != money.Cents(22999) || gotBody.Prices[0].CurrencyCode != "usd" {
		t.Errorf("price payload = %+v", gotBody.Prices[0])
	}
	// The amount must cross the wire in decimal dollars, the same unit the
	// metadata write uses.
	if !strings.Contains(rawBody, `"amount":229.99`) {
		t.Errorf("amount not sent as decimal dollars: %s", rawBody)
	}
}

func TestPriceAndMetadataShareWireUnit(t *testing.T) {
	bodies := make(map[string]string)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		bodies[r.URL.Path] = string(data)
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	if err := adapter.UpdateProductMetadata(context.Background(), "prod_1", map[string]any{
		domain.MetaKeyTierPrice: money.Cents(22999),
	}); err != nil {
		t.Fatalf("UpdateProductMetadata: %v", err)
	}
	if err := adapter.ReplaceVariantPrices(context.Background(), "variant_1", []domain.Price{
		{VariantID: "variant_1", CurrencyCode: "usd", Amount: money.Cents(22999)},
	}); err != nil {
		t.Fatalf("ReplaceVariantPrices: %v", err)
	}

	for path, body := range bodies {
		if !strings.Contains(body, "229.99") {
			t.Errorf("%s body does not carry decimal dollars: %s", path, body)
		}
		if strings.Contains(body, "22999") {
			t.Errorf("%s body carries minor units: %s", path, body)
		}
	}
}

func TestNewAdapterTimeout(t *testing.T) {
	custom := NewAdapter(Config{Timeout: 5 * time.Second})
	if custom.client.Timeout != 5*time.Second {
		t.Errorf("client timeout = %v, want 5s", custom.client.Timeout)
	}

	shared := NewAdapter(Config{})
	if shared.client != httputil.CommerceClient() {
		t.Error("zero timeout must keep the shared commerce client")
	}
}
