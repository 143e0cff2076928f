package worker

// reconcile_cron.go — partial-write detector.
// Checkout commits the bill and its stock debits in one transaction, so under
// normal operation every bill item has a matching "sale" stock movement. This
// cron sweeps recent bills for items missing that movement (e.g. after a
// migration or manual DB surgery) and logs them loudly so accounting can
// reconcile inventory by hand.

import (
	"context"
	"time"

	"sareepos/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	reconcileInterval = 5 * time.Minute
	reconcileLookback = 24 * time.Hour
	reconcileBatch    = 50
)

// StartReconcileCron runs the partial-write sweep until ctx is cancelled.
func StartReconcileCron(ctx context.Context, bills repository.BillRepository) {
	go func() {
		ticker := time.NewTicker(reconcileInterval)
		defer ticker.Stop()

		log.Info().
			Dur("interval", reconcileInterval).
			Msg("reconcile: cron started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reconcile: cron stopped")
				return
			case <-ticker.C:
				sweep(ctx, bills)
			}
		}
	}()
}

func sweep(ctx context.Context, bills repository.BillRepository) {
	since := time.Now().Add(-reconcileLookback)
	suspect, err := bills.ListMissingStockDebits(ctx, since, reconcileBatch)
	if err != nil {
		log.Error().Err(err).Msg("reconcile: sweep query failed")
		return
	}
	if len(suspect) == 0 {
		return
	}

	for _, b := range suspect {
		// Reload with items so the log names the affected SKUs.
		full, err := bills.FindByID(ctx, b.ID)
		if err != nil {
			log.Error().Err(err).Str("bill_id", b.ID.String()).Msg("reconcile: reload bill failed")
			continue
		}
		skus := make([]string, 0, len(full.Items))
		for _, item := range full.Items {
			skus = append(skus, item.SKU)
		}
		log.Error().
			Str("bill_id", b.ID.String()).
			Int("bill_number", full.BillNumber).
			Strs("skus", skus).
			Msg("reconcile: bill has items without sale stock movements — manual reconciliation required")
	}
}
