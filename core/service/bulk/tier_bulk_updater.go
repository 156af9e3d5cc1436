// Package bulk orchestrates catalog-wide tier assignment: classify every
// product, then write tier metadata and optionally variant prices back to the
// commerce platform.
package bulk

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"tier_server/core/domain"
	"tier_server/core/port/in"
	"tier_server/core/port/out"
	"tier_server/core/service/classifier"
	"tier_server/pkg/apperr"
	"tier_server/pkg/logger"
	"tier_server/pkg/metrics"

	"github.com/google/uuid"
)

// Service implements in.MappingService. A single instance serves the whole
// process; the applying flag keeps concurrent apply runs out.
type Service struct {
	commerce   out.CommercePort
	runs       out.RunRepository
	suggester  out.TierSuggester
	classifier *classifier.Classifier
	registry   *domain.Registry
	metrics    *metrics.BatchMetrics
	log        *logger.Logger

	applying atomic.Bool
}

// NewService wires the bulk updater. suggester may be nil; AI suggestions are
// then omitted from previews. runs may not be nil.
func NewService(
	commerce out.CommercePort,
	runs out.RunRepository,
	suggester out.TierSuggester,
	cls *classifier.Classifier,
	registry *domain.Registry,
	batchMetrics *metrics.BatchMetrics,
) *Service {
	return &Service{
		commerce:   commerce,
		runs:       runs,
		suggester:  suggester,
		classifier: cls,
		registry:   registry,
		metrics:    batchMetrics,
		log:        logger.WithField("component", "bulk"),
	}
}

// assign classifies one product and resolves the tier definition. The second
// return value is the classification; err is an apperr with the reason when
// no definition could be resolved.
func (s *Service) assign(p domain.Product) (domain.TierDefinition, domain.Classification, error) {
	cls := s.classifier.Classify(p.Title, p.CategoryID)
	if cls.TierName == "" {
		return domain.TierDefinition{}, cls, apperr.Unclassified(p.Title)
	}
	def, ok := s.registry.Lookup(cls.TierName)
	if !ok {
		// Startup validation makes this unreachable unless the rule set and
		// registry were swapped independently at runtime.
		return domain.TierDefinition{}, cls, apperr.ClassificationGap(cls.TierName)
	}
	return def, cls, nil
}

// Preview classifies the full catalog without writing anything to the
// platform. The run summary still lands in run history so previews are
// auditable alongside applies.
func (s *Service) Preview(ctx context.Context, limit int) (*domain.PreviewReport, error) {
	started := time.Now().UTC()
	products, err := s.commerce.ListProducts(ctx)
	if err != nil {
		return nil, apperr.ListingFailure("products", err)
	}

	report := &domain.PreviewReport{
		TotalProducts:    len(products),
		TierDistribution: make(map[string]int),
	}

	for _, p := range products {
		def, _, err := s.assign(p)
		if err != nil {
			report.Unmapped = append(report.Unmapped, p.Title)
			if !apperr.IsCode(err, apperr.CodeUnclassified) {
				s.log.WithError(err).WithField("product_id", p.ID).Error("tier resolution failed")
				continue
			}
			if limit > 0 && len(report.Mappings) >= limit {
				continue
			}
			mapping := domain.PreviewMapping{
				ProductID:       p.ID,
				ProductTitle:    p.Title,
				CurrentMetadata: p.Metadata,
			}
			if s.suggester != nil {
				mapping.AISuggestion = s.suggest(ctx, p.Title)
			}
			report.Mappings = append(report.Mappings, mapping)
			continue
		}

		report.TierDistribution[def.Name]++
		if limit > 0 && len(report.Mappings) >= limit {
			continue
		}
		report.Mappings = append(report.Mappings, domain.PreviewMapping{
			ProductID:       p.ID,
			ProductTitle:    p.Title,
			CurrentMetadata: p.Metadata,
			SuggestedTier:   def.Name,
			TierPrice:       def.Price,
			StripePriceID:   def.StripePriceID,
		})
	}

	run := &domain.BatchReport{
		ID:               uuid.NewString(),
		Mode:             domain.RunModePreview,
		StartedAt:        started,
		FinishedAt:       time.Now().UTC(),
		TotalProducts:    report.TotalProducts,
		UpdatedCount:     report.TotalProducts - len(report.Unmapped),
		ErrorCount:       len(report.Unmapped),
		TierDistribution: report.TierDistribution,
	}
	if err := s.runs.SaveRun(ctx, run); err != nil {
		s.log.WithError(err).WithField("run_id", run.ID).Warn("failed to persist preview run")
	}

	s.log.WithFields(map[string]any{
		"run_id":   run.ID,
		"total":    report.TotalProducts,
		"unmapped": len(report.Unmapped),
	}).Info("preview complete")
	return report, nil
}

// suggest asks the external suggester for a tier, constrained to registry
// names. Failures degrade to no suggestion; previews never fail on the
// suggester.
func (s *Service) suggest(ctx context.Context, productTitle string) string {
	suggestion, err := s.suggester.SuggestTier(ctx, productTitle, s.registry.Names())
	if err != nil {
		s.log.WithError(err).WithField("product", productTitle).Debug("tier suggestion unavailable")
		return ""
	}
	if _, ok := s.registry.Lookup(suggestion); !ok {
		return ""
	}
	return suggestion
}

// Apply classifies every product and writes the results back. Per-product
// failures are recorded and skipped; only a failed catalog or region listing
// aborts the run.
func (s *Service) Apply(ctx context.Context, opts in.ApplyOptions) (*domain.BatchReport, error) {
	if !s.applying.CompareAndSwap(false, true) {
		return nil, apperr.ApplyInProgress()
	}
	defer s.applying.Store(false)

	started := time.Now().UTC()
	report := &domain.BatchReport{
		ID:               uuid.NewString(),
		Mode:             domain.RunModeApply,
		StartedAt:        started,
		TierDistribution: make(map[string]int),
	}

	// 1. List the catalog; a listing failure is fatal for the whole run.
	products, err := s.commerce.ListProducts(ctx)
	if err != nil {
		return nil, apperr.ListingFailure("products", err)
	}
	report.TotalProducts = len(products)

	// 2. Regions are only needed when rewriting prices.
	var regions []domain.Region
	if opts.RewritePrices {
		regions, err = s.commerce.ListRegions(ctx)
		if err != nil {
			return nil, apperr.ListingFailure("regions", err)
		}
	}

	// 3. Process products sequentially; one product's failure never stops
	// the others.
	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outcome := s.applyOne(ctx, p, regions, opts)
		report.Outcomes = append(report.Outcomes, outcome)
		if outcome.Failed() {
			report.ErrorCount++
			continue
		}
		report.UpdatedCount++
		report.TierDistribution[outcome.TierName]++
	}

	report.FinishedAt = time.Now().UTC()
	s.metrics.RecordRun(report.FinishedAt.Sub(started), report.TotalProducts, report.ErrorCount)

	// 4. Run history is best effort audit; the report is already complete.
	if err := s.runs.SaveRun(ctx, report); err != nil {
		s.log.WithError(err).WithField("run_id", report.ID).Warn("failed to persist run report")
	}

	s.log.WithFields(map[string]any{
		"run_id":  report.ID,
		"total":   report.TotalProducts,
		"updated": report.UpdatedCount,
		"errors":  report.ErrorCount,
	}).WithDuration(report.FinishedAt.Sub(started)).Info("apply complete")
	return report, nil
}

// applyOne updates a single product. Every failure path returns an error
// outcome instead of an error so the caller keeps iterating.
func (s *Service) applyOne(ctx context.Context, p domain.Product, regions []domain.Region, opts in.ApplyOptions) domain.UpdateOutcome {
	outcome := domain.UpdateOutcome{ProductID: p.ID, ProductTitle: p.Title}

	def, _, err := s.assign(p)
	if err != nil {
		return s.failed(outcome, err)
	}

	// The platform replaces the metadata object wholesale, so the write
	// carries every existing key with the tier keys overlaid.
	meta := make(map[string]any, len(p.Metadata)+3)
	for k, v := range p.Metadata {
		meta[k] = v
	}
	meta[domain.MetaKeyTier] = def.Name
	meta[domain.MetaKeyTierPrice] = def.Price
	meta[domain.MetaKeyStripePriceID] = def.StripePriceID
	if err := s.commerce.UpdateProductMetadata(ctx, p.ID, meta); err != nil {
		return s.failed(outcome, apperr.PersistenceFailure("update metadata for "+p.ID, err))
	}

	if opts.RewritePrices {
		for _, variant := range p.Variants {
			prices := tierPrices(def, variant.ID, regions)
			if err := s.commerce.ReplaceVariantPrices(ctx, variant.ID, prices); err != nil {
				return s.failed(outcome, apperr.PersistenceFailure("replace prices for variant "+variant.ID, err))
			}
		}
	}

	outcome.TierName = def.Name
	outcome.Price = def.Price
	outcome.StripePriceID = def.StripePriceID
	return outcome
}

func (s *Service) failed(outcome domain.UpdateOutcome, err error) domain.UpdateOutcome {
	if appErr := apperr.AsAppError(err); appErr != nil {
		outcome.ErrorCode = appErr.Code
	}
	outcome.Error = err.Error()
	s.log.WithError(err).WithField("product_id", outcome.ProductID).Warn("product skipped")
	return outcome
}

// tierPrices builds the replacement price set for one variant: one price per
// region at the tier amount.
func tierPrices(def domain.TierDefinition, variantID string, regions []domain.Region) []domain.Price {
	prices := make([]domain.Price, 0, len(regions))
	for _, region := range regions {
		prices = append(prices, domain.Price{
			VariantID:    variantID,
			CurrencyCode: region.CurrencyCode,
			Amount:       def.Price,
			Title:        def.Name + " - " + strings.ToUpper(region.CurrencyCode),
		})
	}
	return prices
}

// Runs returns the most recent persisted run reports.
func (s *Service) Runs(ctx context.Context, limit int) ([]*domain.BatchReport, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.runs.ListRuns(ctx, limit)
}

// Run returns one persisted run report.
func (s *Service) Run(ctx context.Context, id string) (*domain.BatchReport, error) {
	return s.runs.GetRun(ctx, id)
}
