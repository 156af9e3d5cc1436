package bootstrap

import (
	"context"

	"tier_server/config"
	"tier_server/core/port/in"
	"tier_server/pkg/logger"
)

// RunApply executes one bulk apply run and returns. Used by the apply mode
// so the update can run from cron without keeping the HTTP server up.
func RunApply(ctx context.Context, cfg *config.Config, rewritePrices bool) error {
	logger.Init(logger.Config{
		Level:   logger.ParseLevel(cfg.LogLevel),
		Service: "tier-engine",
	})

	deps, cleanup, err := NewDependencies(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := deps.MappingService.Apply(ctx, in.ApplyOptions{
		RewritePrices: rewritePrices,
	})
	if err != nil {
		return err
	}

	logger.WithFields(map[string]any{
		"run_id":  report.ID,
		"total":   report.TotalProducts,
		"updated": report.UpdatedCount,
		"errors":  report.ErrorCount,
	}).Info("one-shot apply finished")
	return nil
}
