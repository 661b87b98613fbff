package service

import (
	"context"
	"fmt"

	"clinic_portal_backend/internal/leads/repository"
	"clinic_portal_backend/platform/apperr"
)

// BackfillOptions controls a pass over stored scores after a config change.
type BackfillOptions struct {
	PageSize int
	// Inline rescoring runs in this process instead of queueing tasks.
	Inline bool
	// Limit stops after this many rows; zero means no limit.
	Limit int
}

type BackfillResult struct {
	Scanned  int
	Queued   int
	Rescored int
	Skipped  int
}

// Backfill walks every score not produced by the current config version and
// either queues or performs a rescore for each of them.
func (s *Service) Backfill(ctx context.Context, opts BackfillOptions) (BackfillResult, error) {
	if !opts.Inline && s.queue == nil {
		return BackfillResult{}, apperr.Unavailable(msgRescoreUnavailable)
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultBackfillPage
	}

	var (
		result BackfillResult
		cursor *repository.RescoreCursor
	)
	version := s.engine.Config().Version
	for {
		page, err := s.repo.ListForRescore(ctx, repository.ListForRescoreParams{
			ExcludeVersion: version,
			After:          cursor,
			Limit:          pageSize,
		})
		if err != nil {
			return result, s.mapRepoError(err, "service.Backfill")
		}

		for _, row := range page {
			if opts.Limit > 0 && result.Scanned >= opts.Limit {
				return result, nil
			}
			result.Scanned++

			if opts.Inline {
				if _, err := s.Rescore(ctx, row.OrganizationID, row.ID); err != nil {
					if apperr.Is(err, apperr.KindConflict) {
						result.Skipped++
						continue
					}
					return result, err
				}
				result.Rescored++
				continue
			}

			if err := s.queue.EnqueueRescore(ctx, row.ID, row.OrganizationID); err != nil {
				return result, fmt.Errorf("enqueue rescore %s: %w", row.ID, err)
			}
			result.Queued++
		}

		if len(page) < pageSize {
			return result, nil
		}
		last := page[len(page)-1]
		cursor = &repository.RescoreCursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
}
