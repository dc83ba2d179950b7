package question

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type categoryRefresher interface {
	RefreshCategories(ctx context.Context) ([]Category, error)
}

// CacheWarmer keeps the category cache populated so list requests rarely reach Postgres.
type CacheWarmer struct {
	svc      categoryRefresher
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
}

func NewCacheWarmer(svc categoryRefresher, interval time.Duration, logger zerolog.Logger) *CacheWarmer {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheWarmer{
		svc:      svc,
		interval: interval,
		timeout:  4 * time.Second,
		logger:   logger.With().Str("component", "category_cache_warmer").Logger(),
	}
}

// Run refreshes once immediately and then on every tick until ctx is cancelled.
func (w *CacheWarmer) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.warm(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("category cache warmer stopping")
			return ctx.Err()
		case <-ticker.C:
			w.warm(ctx)
		}
	}
}

func (w *CacheWarmer) warm(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	categories, err := w.svc.RefreshCategories(ctx)
	if err != nil {
		w.logger.Warn().Err(err).Msg("category refresh failed")
		return
	}
	w.logger.Debug().Int("categories", len(categories)).Msg("category cache refreshed")
}
