// Package leads wires the lead scoring bounded context: engine, storage,
// cache, service and HTTP routes.
package leads

import (
	"context"
	"fmt"

	"clinic_portal_backend/internal/events"
	apphttp "clinic_portal_backend/internal/http"
	"clinic_portal_backend/internal/leads/cache"
	"clinic_portal_backend/internal/leads/handler"
	"clinic_portal_backend/internal/leads/repository"
	"clinic_portal_backend/internal/leads/scoring"
	"clinic_portal_backend/internal/leads/service"
	"clinic_portal_backend/internal/leads/transport"
	"clinic_portal_backend/platform/config"
	"clinic_portal_backend/platform/logger"
	"clinic_portal_backend/platform/phone"
	"clinic_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// ModuleConfig is the configuration the leads module reads.
type ModuleConfig interface {
	config.ScoringConfig
	config.RedisConfig
}

// Module is the lead scoring bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	redis   *redis.Client
}

// NewModule loads the scoring tables, builds the service and subscribes the
// hot-lead handler. The result cache is enabled when Redis is configured.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator, cfg ModuleConfig, log *logger.Logger) (*Module, error) {
	scoringCfg, err := scoring.LoadConfigFile(cfg.GetScoringConfigPath())
	if err != nil {
		return nil, err
	}
	if err := transport.RegisterValidations(val); err != nil {
		return nil, fmt.Errorf("register lead score validations: %w", err)
	}

	defaultLocale := scoring.ParseLocale(cfg.GetScoringDefaultLocale())
	engine := scoring.NewEngine(scoringCfg, scoring.WithLocale(defaultLocale))
	svc := service.New(engine, repository.New(pool), eventBus, phone.NewNormalizer(cfg.GetPhoneDefaultRegion()), log)

	m := &Module{
		handler: handler.New(svc, val, defaultLocale),
		service: svc,
	}

	if cfg.IsRedisEnabled() {
		client, err := cache.NewClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("lead score cache: %w", err)
		}
		svc.SetCache(cache.New(client, cfg.GetScoringCacheTTL()))
		m.redis = client
	} else {
		log.Warn("REDIS_URL not configured; lead score cache disabled")
	}

	eventBus.Subscribe(events.LeadScored{}.EventName(), hotLeadHandler(log))

	log.Info("lead scoring ready",
		"configVersion", scoringCfg.Version,
		"defaultLocale", string(defaultLocale),
		"cache", m.redis != nil,
	)
	return m, nil
}

// hotLeadHandler flags hot leads for the sales team.
func hotLeadHandler(log *logger.Logger) events.HandlerFunc {
	return func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.LeadScored)
		if !ok || e.Category != string(scoring.CategoryHot) {
			return nil
		}
		log.WithContext(ctx).HotLeadDetected(e.TenantID.String(), e.LeadScoreID.String(), e.TotalScore, e.Priority, e.EstimatedValue)
		return nil
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the lead scoring service for the scheduler and backfill.
func (m *Module) Service() *service.Service {
	return m.service
}

// SetRescoreQueue enables asynchronous rescoring.
func (m *Module) SetRescoreQueue(q service.RescoreQueue) {
	m.service.SetRescoreQueue(q)
}

// Close releases the cache connection.
func (m *Module) Close() error {
	if m.redis == nil {
		return nil
	}
	return m.redis.Close()
}

// RegisterRoutes mounts lead scoring routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/lead-scores"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
