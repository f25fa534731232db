package worker

// Background goroutine that periodically re-attempts order notifications
// stuck in notify_status='error' with a next_retry_at in the past. Uses the
// circuit breaker state to avoid hammering a downed WhatsApp API.

import (
	"context"
	"time"

	"tenaypos/internal/infra"
	"tenaypos/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	OrderRepo repository.OrderRepository
	Notify    *NotifyWorker
	CB        *infra.CircuitBreaker
}

// StartRetryCron launches a background goroutine that ticks every 30s and
// re-runs failed notifications. It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// A tripped breaker means the API is down; wait for the next tick
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	orders, err := cfg.OrderRepo.ListNotifyRetries(ctx, time.Now(), retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(orders) == 0 {
		return
	}

	log.Info().Int("count", len(orders)).Msg("retry_cron: re-attempting order notifications")

	for i := range orders {
		// The breaker may trip mid-batch
		if cfg.CB.State() == infra.CBOpen {
			log.Debug().Msg("retry_cron: circuit breaker opened mid-batch, stopping")
			return
		}
		cfg.Notify.Notify(ctx, &orders[i])
	}
}
