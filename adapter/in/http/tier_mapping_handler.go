// Package http implements the admin HTTP surface.
package http

import (
	"strconv"

	"tier_server/core/domain"
	"tier_server/core/port/in"
	"tier_server/pkg/apperr"
	"tier_server/pkg/metrics"
	"tier_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MappingHandler handles tier mapping requests.
type MappingHandler struct {
	mappings      in.MappingService
	registry      *domain.Registry
	metrics       *metrics.BatchMetrics
	previewSample int
}

// NewMappingHandler creates a new mapping handler.
func NewMappingHandler(mappings in.MappingService, registry *domain.Registry, batchMetrics *metrics.BatchMetrics, previewSample int) *MappingHandler {
	if previewSample <= 0 {
		previewSample = 20
	}
	return &MappingHandler{
		mappings:      mappings,
		registry:      registry,
		metrics:       batchMetrics,
		previewSample: previewSample,
	}
}

// Register registers mapping routes under the admin group.
func (h *MappingHandler) Register(admin fiber.Router) {
	admin.Get("/map-products-to-tiers", h.Preview)
	admin.Post("/map-products-to-tiers", h.Apply)
	admin.Get("/pricing-tiers", h.ListTiers)
	admin.Get("/tier-runs", h.ListRuns)
	admin.Get("/tier-runs/:id", h.GetRun)
	admin.Get("/tier-stats", h.Stats)
}

// Preview returns the proposed tier assignment for the whole catalog without
// writing anything.
func (h *MappingHandler) Preview(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(h.previewSample)))
	if err != nil || limit < 0 {
		return apperr.BadRequest("limit must be a non-negative integer")
	}

	report, err := h.mappings.Preview(c.Context(), limit)
	if err != nil {
		return err
	}
	return response.OKWithMeta(c, report, &response.Meta{
		Total: report.TotalProducts,
		Limit: limit,
	})
}

type applyRequest struct {
	RewritePrices bool `json:"rewrite_prices"`
}

// Apply runs the bulk update. The run report is returned whole; partial
// failures show up as error outcomes, not as a failed request.
func (h *MappingHandler) Apply(c *fiber.Ctx) error {
	var req applyRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperr.BadRequest("invalid request body")
		}
	}

	report, err := h.mappings.Apply(c.Context(), in.ApplyOptions{
		RewritePrices: req.RewritePrices,
	})
	if err != nil {
		return err
	}
	return response.OK(c, report)
}

// ListTiers returns the full tier table.
func (h *MappingHandler) ListTiers(c *fiber.Ctx) error {
	return response.OKWithMeta(c, h.registry.Definitions(), &response.Meta{
		Total: h.registry.Len(),
	})
}

// ListRuns returns recent run reports, newest first.
func (h *MappingHandler) ListRuns(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 0 {
		return apperr.BadRequest("limit must be a non-negative integer")
	}

	runs, err := h.mappings.Runs(c.Context(), limit)
	if err != nil {
		return err
	}
	return response.OKWithMeta(c, runs, &response.Meta{Total: len(runs)})
}

// GetRun returns one run report.
func (h *MappingHandler) GetRun(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperr.BadRequest("run id is required")
	}

	run, err := h.mappings.Run(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, run)
}

// Stats returns in-process bulk run statistics.
func (h *MappingHandler) Stats(c *fiber.Ctx) error {
	return response.OK(c, h.metrics.Stats())
}
