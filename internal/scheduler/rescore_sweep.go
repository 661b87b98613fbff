package scheduler

import (
	"context"
	"time"

	"clinic_portal_backend/internal/leads/service"
	"clinic_portal_backend/platform/logger"
)

const defaultRescoreSweepInterval = 6 * time.Hour

// Backfiller is implemented by the lead scoring service.
type Backfiller interface {
	Backfill(ctx context.Context, opts service.BackfillOptions) (service.BackfillResult, error)
}

// RescoreSweep periodically queues rescoring for every stored score that was
// produced by an older scoring config.
type RescoreSweep struct {
	backfiller Backfiller
	log        *logger.Logger
	interval   time.Duration
	pageSize   int
}

func NewRescoreSweep(backfiller Backfiller, log *logger.Logger, interval time.Duration, pageSize int) *RescoreSweep {
	if interval <= 0 {
		interval = defaultRescoreSweepInterval
	}
	return &RescoreSweep{
		backfiller: backfiller,
		log:        log,
		interval:   interval,
		pageSize:   pageSize,
	}
}

func (s *RescoreSweep) Run(ctx context.Context) {
	if s == nil || s.backfiller == nil {
		return
	}

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *RescoreSweep) sweep(ctx context.Context) {
	result, err := s.backfiller.Backfill(ctx, service.BackfillOptions{PageSize: s.pageSize})
	if err != nil {
		s.log.Warn("rescore sweep failed", "error", err, "queued", result.Queued)
		return
	}

	if result.Queued > 0 {
		s.log.Info("rescore sweep queued stale lead scores", "queued", result.Queued)
	}
}
