package bootstrap

import (
	"context"
	"time"

	"tier_server/adapter/out/commerce"
	"tier_server/adapter/out/persistence"
	"tier_server/adapter/out/suggest"
	"tier_server/config"
	"tier_server/core/domain"
	"tier_server/core/port/in"
	"tier_server/core/port/out"
	"tier_server/core/service/bulk"
	"tier_server/core/service/classifier"
	"tier_server/core/service/pricing"
	"tier_server/infra/database"
	"tier_server/pkg/cache"
	"tier_server/pkg/logger"
	"tier_server/pkg/metrics"
	"tier_server/pkg/ratelimit"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Dependencies holds every wired component of the engine.
type Dependencies struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client

	Registry   *domain.Registry
	RuleSet    *classifier.RuleSet
	Classifier *classifier.Classifier

	Commerce  out.CommercePort
	RunRepo   out.RunRepository
	Suggester out.TierSuggester

	Metrics *metrics.BatchMetrics
	Limiter *ratelimit.SlidingWindowLimiter

	MappingService in.MappingService
}

// NewDependencies wires the full dependency graph. The returned cleanup
// closes every connection it opened.
func NewDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	deps := &Dependencies{Config: cfg}
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// Tier table and rule set; a gap between them is a deploy blocker.
	deps.Registry = pricing.DefaultRegistry()
	deps.RuleSet = classifier.DefaultRuleSet()
	if err := deps.RuleSet.Validate(deps.Registry); err != nil {
		return nil, nil, err
	}
	deps.Classifier = classifier.New(deps.RuleSet, cfg.LegacyDefaultTier)
	if cfg.LegacyDefaultTier {
		logger.Warn("legacy catch-all tier enabled, unmatched products map to %s", domain.LegacyDefaultTier)
	}

	deps.Metrics = metrics.NewBatchMetrics(100)

	// Run history: Postgres when configured, in-memory otherwise.
	if cfg.DatabaseURL != "" {
		db, err := database.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		deps.DB = db
		cleanups = append(cleanups, func() { db.Close() })

		runAdapter := persistence.NewRunAdapter(db)
		migrateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := runAdapter.Migrate(migrateCtx); err != nil {
			cleanup()
			return nil, nil, err
		}
		deps.RunRepo = runAdapter
	} else {
		logger.Warn("DATABASE_URL empty, run history is in-memory only")
		deps.RunRepo = persistence.NewMemoryRunStore()
	}

	// Redis: region cache and rate limiting. Optional; the engine works
	// without it, just slower and unthrottled.
	var redisCache *cache.RedisCache
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedis(cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, region cache and rate limiting disabled")
		} else {
			deps.Redis = redisClient
			cleanups = append(cleanups, func() { redisClient.Close() })
			redisCache = cache.NewRedisCache(redisClient)
			deps.Limiter = ratelimit.NewSlidingWindowLimiter(redisClient, ratelimit.DefaultConfig())
		}
	}

	// Commerce platform adapter, with region caching when Redis is up.
	platformAdapter := commerce.NewAdapter(commerce.Config{
		BaseURL:    cfg.CommerceBaseURL,
		APIKey:     cfg.CommerceAPIKey,
		PageSize:   cfg.CommercePageSize,
		MaxRetries: cfg.CommerceMaxRetries,
		Timeout:    cfg.CommerceTimeout,
	})
	deps.Commerce = platformAdapter
	if redisCache != nil {
		deps.Commerce = commerce.NewCachedPort(platformAdapter, redisCache, cfg.RegionCacheTTL)
	}

	// AI suggester is preview-only and entirely optional.
	if cfg.OpenAIAPIKey != "" {
		deps.Suggester = suggest.NewOpenAISuggester(
			cfg.OpenAIAPIKey,
			cfg.LLMModel,
			time.Duration(cfg.LLMTimeoutSec)*time.Second,
		)
	}

	deps.MappingService = bulk.NewService(
		deps.Commerce,
		deps.RunRepo,
		deps.Suggester,
		deps.Classifier,
		deps.Registry,
		deps.Metrics,
	)

	return deps, cleanup, nil
}
