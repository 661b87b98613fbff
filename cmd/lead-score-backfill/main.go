// Command lead-score-backfill rescores every stored lead score that was
// produced by an older scoring config. By default each score is queued for
// the scheduler; -inline rescores in this process instead.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"clinic_portal_backend/internal/events"
	"clinic_portal_backend/internal/leads"
	"clinic_portal_backend/internal/leads/service"
	"clinic_portal_backend/internal/scheduler"
	"clinic_portal_backend/platform/config"
	"clinic_portal_backend/platform/db"
	"clinic_portal_backend/platform/logger"
	"clinic_portal_backend/platform/validator"
)

func main() {
	inline := flag.Bool("inline", false, "rescore in this process instead of queueing tasks")
	pageSize := flag.Int("page-size", 200, "rows read per page")
	limit := flag.Int("limit", 0, "stop after this many rows (0 = all)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting lead score backfill", "inline", *inline, "pageSize", *pageSize, "limit", *limit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)
	defer eventBus.Wait()

	leadsModule, err := leads.NewModule(pool, eventBus, validator.New(), cfg, log)
	if err != nil {
		log.Error("failed to initialize leads module", "error", err)
		panic("failed to initialize leads module: " + err.Error())
	}
	defer func() { _ = leadsModule.Close() }()

	if !*inline {
		client, err := scheduler.NewClient(cfg)
		if err != nil {
			log.Error("failed to initialize rescore client; use -inline without redis", "error", err)
			panic("failed to initialize rescore client: " + err.Error())
		}
		defer func() { _ = client.Close() }()
		leadsModule.SetRescoreQueue(client)
	}

	result, err := leadsModule.Service().Backfill(ctx, service.BackfillOptions{
		PageSize: *pageSize,
		Inline:   *inline,
		Limit:    *limit,
	})
	if err != nil {
		log.Error("lead score backfill stopped", "error", err,
			"scanned", result.Scanned, "queued", result.Queued, "rescored", result.Rescored, "skipped", result.Skipped)
		os.Exit(1)
	}

	log.Info("lead score backfill completed",
		"configVersion", leadsModule.Service().Engine().Config().Version,
		"scanned", result.Scanned,
		"queued", result.Queued,
		"rescored", result.Rescored,
		"skipped", result.Skipped,
	)
}
