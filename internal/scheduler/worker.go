package scheduler

import (
	"context"
	"fmt"

	"clinic_portal_backend/internal/leads/transport"
	"clinic_portal_backend/platform/apperr"
	"clinic_portal_backend/platform/config"
	"clinic_portal_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Rescorer is implemented by the lead scoring service.
type Rescorer interface {
	Rescore(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) (transport.LeadScoreResponse, error)
}

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	rescorer Rescorer
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, rescorer Rescorer, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		rescorer: rescorer,
		log:      log,
	}

	mux.HandleFunc(TaskLeadScoreRescore, w.handleLeadScoreRescore)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleLeadScoreRescore treats a score that is gone or already rescored as
// done. A malformed payload is never retried.
func (w *Worker) handleLeadScoreRescore(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadScoreRescorePayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	leadScoreID, err := uuid.Parse(payload.LeadScoreID)
	if err != nil {
		return fmt.Errorf("%w: leadScoreId: %v", asynq.SkipRetry, err)
	}

	tenantID, err := uuid.Parse(payload.TenantID)
	if err != nil {
		return fmt.Errorf("%w: tenantId: %v", asynq.SkipRetry, err)
	}

	result, err := w.rescorer.Rescore(ctx, tenantID, leadScoreID)
	switch {
	case apperr.Is(err, apperr.KindConflict):
		w.log.Info("lead score already rescored", "leadScoreId", leadScoreID, "tenantId", tenantID)
		return nil
	case apperr.Is(err, apperr.KindNotFound):
		w.log.Warn("lead score to rescore not found", "leadScoreId", leadScoreID, "tenantId", tenantID)
		return nil
	case err != nil:
		return err
	}

	w.log.Debug("lead score rescored", "leadScoreId", leadScoreID, "newLeadScoreId", result.ID)
	return nil
}
