package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tier_server/core/domain"
	"tier_server/core/port/in"
	"tier_server/core/service/pricing"
	"tier_server/infra/middleware"
	"tier_server/pkg/apperr"
	"tier_server/pkg/metrics"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
)

type fakeMappingService struct {
	previewReport *domain.PreviewReport
	previewLimit  int
	applyReport   *domain.BatchReport
	applyErr      error
	applyOpts     in.ApplyOptions
	runs          map[string]*domain.BatchReport
}

func (f *fakeMappingService) Preview(ctx context.Context, limit int) (*domain.PreviewReport, error) {
	f.previewLimit = limit
	return f.previewReport, nil
}

func (f *fakeMappingService) Apply(ctx context.Context, opts in.ApplyOptions) (*domain.BatchReport, error) {
	f.applyOpts = opts
	if f.applyErr != nil {
		return nil, f.applyErr
	}
	return f.applyReport, nil
}

func (f *fakeMappingService) Runs(ctx context.Context, limit int) ([]*domain.BatchReport, error) {
	var out []*domain.BatchReport
	for _, r := range f.runs {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeMappingService) Run(ctx context.Context, id string) (*domain.BatchReport, error) {
	if r, ok := f.runs[id]; ok {
		return r, nil
	}
	return nil, apperr.NotFound("run")
}

func newTestApp(svc in.MappingService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler := NewMappingHandler(svc, pricing.DefaultRegistry(), metrics.NewBatchMetrics(10), 20)
	handler.Register(app.Group("/admin"))
	return app
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("decode body %q: %v", data, err)
	}
}

func TestPreviewEndpoint(t *testing.T) {
	svc := &fakeMappingService{
		previewReport: &domain.PreviewReport{
			TotalProducts:    2,
			TierDistribution: map[string]int{"SUIT_STANDARD": 2},
		},
	}
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/admin/map-products-to-tiers?limit=5", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if svc.previewLimit != 5 {
		t.Errorf("limit passed = %d, want 5", svc.previewLimit)
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			TotalProducts int `json:"total_products"`
		} `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	decodeBody(t, resp, &body)
	if !body.Success || body.Data.TotalProducts != 2 || body.Meta.Total != 2 {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestPreviewRejectsBadLimit(t *testing.T) {
	app := newTestApp(&fakeMappingService{previewReport: &domain.PreviewReport{}})

	req := httptest.NewRequest(http.MethodGet, "/admin/map-products-to-tiers?limit=abc", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestApplyEndpointPassesOptions(t *testing.T) {
	svc := &fakeMappingService{
		applyReport: &domain.BatchReport{ID: "run-1", Mode: domain.RunModeApply, UpdatedCount: 3},
	}
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/admin/map-products-to-tiers",
		strings.NewReader(`{"rewrite_prices":true}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !svc.applyOpts.RewritePrices {
		t.Error("RewritePrices not passed to service")
	}

	var body struct {
		Data struct {
			ID      string `json:"id"`
			Updated int    `json:"updated"`
		} `json:"data"`
	}
	decodeBody(t, resp, &body)
	if body.Data.ID != "run-1" || body.Data.Updated != 3 {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestApplyConflictWhenRunInProgress(t *testing.T) {
	svc := &fakeMappingService{applyErr: apperr.ApplyInProgress()}
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/admin/map-products-to-tiers", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, resp, &body)
	if body.Error.Code != apperr.CodeApplyInProgress {
		t.Errorf("error code = %s", body.Error.Code)
	}
}

func TestListTiersEndpoint(t *testing.T) {
	app := newTestApp(&fakeMappingService{})

	req := httptest.NewRequest(http.MethodGet, "/admin/pricing-tiers", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body struct {
		Data []domain.TierDefinition `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	decodeBody(t, resp, &body)
	want := pricing.DefaultRegistry().Len()
	if len(body.Data) != want || body.Meta.Total != want {
		t.Errorf("got %d tiers with meta %d, want %d", len(body.Data), body.Meta.Total, want)
	}
}

func TestGetRunNotFound(t *testing.T) {
	app := newTestApp(&fakeMappingService{runs: map[string]*domain.BatchReport{}})

	req := httptest.NewRequest(http.MethodGet, "/admin/tier-runs/nope", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGetRunFound(t *testing.T) {
	app := newTestApp(&fakeMappingService{runs: map[string]*domain.BatchReport{
		"run-7": {ID: "run-7", Mode: domain.RunModeApply},
	}})

	req := httptest.NewRequest(http.MethodGet, "/admin/tier-runs/run-7", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
