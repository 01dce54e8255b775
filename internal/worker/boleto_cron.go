package worker

// boleto_cron.go
// Background goroutine that periodically scans for unpaid boletos due within
// the lookahead window and enqueues a reminder email for each. A Redis SETNX
// key per boleto and day keeps restarts from double-notifying.

import (
	"context"
	"time"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	boletoTickInterval = 1 * time.Hour
	boletoLookahead    = 3 // days
	boletoDedupTTL     = 26 * time.Hour
)

// BoletoCronConfig holds the dependencies for the reminder goroutine.
type BoletoCronConfig struct {
	BoletoRepo repository.BoletoRepository
	Dispatcher *Dispatcher
	RDB        *redis.Client
}

// StartBoletoCron launches the reminder loop. One immediate pass at startup,
// then one per tick. Respects the context for graceful shutdown.
func StartBoletoCron(ctx context.Context, cfg BoletoCronConfig) {
	go func() {
		ticker := time.NewTicker(boletoTickInterval)
		defer ticker.Stop()

		log.Info().Msg("boleto_cron: started")
		processDueBoletos(ctx, cfg)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("boleto_cron: shutting down")
				return
			case <-ticker.C:
				processDueBoletos(ctx, cfg)
			}
		}
	}()
}

func processDueBoletos(ctx context.Context, cfg BoletoCronConfig) {
	cutoff := time.Now().AddDate(0, 0, boletoLookahead).Format("2006-01-02")
	boletos, err := cfg.BoletoRepo.ListDueUnpaid(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("boleto_cron: failed to query due boletos")
		return
	}
	if len(boletos) == 0 {
		return
	}

	today := time.Now().Format("2006-01-02")
	for i := range boletos {
		b := &boletos[i]

		dedupKey := "boleto_reminder:" + b.ID.String() + ":" + today
		ok, err := cfg.RDB.SetNX(ctx, dedupKey, 1, boletoDedupTTL).Result()
		if err != nil {
			log.Error().Err(err).Msg("boleto_cron: dedup check failed")
			continue
		}
		if !ok {
			continue // already notified today
		}

		payload := EmailJobPayload{
			Kind:        "boleto_due",
			Description: b.Description,
			DueDate:     b.DueDate,
			Amount:      b.Amount.StringFixed(2),
		}
		if err := cfg.Dispatcher.EnqueueEmail(ctx, payload); err != nil {
			log.Error().Err(err).Str("boleto_id", b.ID.String()).Msg("boleto_cron: enqueue failed")
			// Drop the dedup key so the next tick retries
			_ = cfg.RDB.Del(ctx, dedupKey).Err()
			continue
		}
		log.Info().
			Str("boleto_id", b.ID.String()).
			Str("due_date", b.DueDate).
			Msg("boleto_cron: reminder enqueued")
	}
}
