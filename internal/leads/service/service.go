// Package service runs the scoring engine on behalf of API callers: it builds
// profiles, consults the result cache, stores every result and announces it
// on the event bus.
package service

import (
	"context"
	"errors"
	"strings"

	"clinic_portal_backend/internal/events"
	"clinic_portal_backend/internal/leads/cache"
	"clinic_portal_backend/internal/leads/profile"
	"clinic_portal_backend/internal/leads/repository"
	"clinic_portal_backend/internal/leads/scoring"
	"clinic_portal_backend/internal/leads/transport"
	"clinic_portal_backend/platform/apperr"
	"clinic_portal_backend/platform/logger"
	"clinic_portal_backend/platform/phone"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultListLimit      = 50
	defaultBatchWorkers   = 8
	defaultBackfillPage   = 200
	msgLeadScoreNotFound  = "lead score not found"
	msgRescoreUnavailable = "background rescoring is not configured"
)

// Repository is the persistence the service needs.
type Repository interface {
	Create(ctx context.Context, params repository.CreateLeadScoreParams) (repository.LeadScore, error)
	GetByID(ctx context.Context, id uuid.UUID, organizationID uuid.UUID) (repository.LeadScore, error)
	ListByCustomer(ctx context.Context, organizationID uuid.UUID, customerID uuid.UUID, limit int) ([]repository.LeadScore, error)
	ListByCategory(ctx context.Context, organizationID uuid.UUID, category scoring.Category, limit int) ([]repository.LeadScore, error)
	ListForRescore(ctx context.Context, params repository.ListForRescoreParams) ([]repository.LeadScore, error)
}

// ResultCache is an optional cache of engine output.
type ResultCache interface {
	Get(ctx context.Context, key string) (scoring.LeadScore, bool, error)
	Set(ctx context.Context, key string, score scoring.LeadScore) error
}

// RescoreQueue hands rescoring to the background worker.
type RescoreQueue interface {
	EnqueueRescore(ctx context.Context, leadScoreID uuid.UUID, tenantID uuid.UUID) error
}

type Service struct {
	engine       *scoring.Engine
	builder      *profile.Builder
	repo         Repository
	bus          events.Bus
	phones       *phone.Normalizer
	log          *logger.Logger
	cache        ResultCache
	queue        RescoreQueue
	batchWorkers int
}

func New(engine *scoring.Engine, repo Repository, bus events.Bus, phones *phone.Normalizer, log *logger.Logger) *Service {
	return &Service{
		engine:       engine,
		builder:      profile.NewBuilder(engine.Config().Profile),
		repo:         repo,
		bus:          bus,
		phones:       phones,
		log:          log,
		batchWorkers: defaultBatchWorkers,
	}
}

// SetCache enables result caching. A nil cache disables it.
func (s *Service) SetCache(c ResultCache) {
	s.cache = c
}

// SetRescoreQueue enables asynchronous rescoring.
func (s *Service) SetRescoreQueue(q RescoreQueue) {
	s.queue = q
}

// Engine returns the engine for the default locale.
func (s *Service) Engine() *scoring.Engine {
	return s.engine
}

type scoreInput struct {
	tenantID       uuid.UUID
	customerID     *uuid.UUID
	phone          string
	locale         scoring.Locale
	profile        scoring.CustomerProfile
	rescoredFromID *uuid.UUID
}

// ScoreProfile scores a caller-built profile.
func (s *Service) ScoreProfile(ctx context.Context, tenantID uuid.UUID, locale scoring.Locale, req transport.ScoreProfileRequest) (transport.LeadScoreResponse, error) {
	return s.score(ctx, scoreInput{
		tenantID:   tenantID,
		customerID: req.CustomerID,
		phone:      req.Phone,
		locale:     locale,
		profile:    toCustomerProfile(req.Profile),
	})
}

// ScoreAnalysis builds the profile from raw analysis and engagement records
// before scoring it.
func (s *Service) ScoreAnalysis(ctx context.Context, tenantID uuid.UUID, locale scoring.Locale, req transport.ScoreAnalysisRequest) (transport.LeadScoreResponse, error) {
	built := s.builder.Build(toAnalysisData(req.Analysis), toEngagementData(req.Engagement))
	return s.score(ctx, scoreInput{
		tenantID:   tenantID,
		customerID: req.CustomerID,
		phone:      req.Phone,
		locale:     locale,
		profile:    built,
	})
}

// ScoreBatch scores every item concurrently. Results keep request order; the
// first failure aborts the batch.
func (s *Service) ScoreBatch(ctx context.Context, tenantID uuid.UUID, locale scoring.Locale, req transport.BatchScoreRequest) (transport.LeadScoreListResponse, error) {
	if len(req.Items) == 0 {
		return transport.LeadScoreListResponse{}, apperr.Validation("batch must contain at least one item")
	}

	items := make([]transport.LeadScoreResponse, len(req.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchWorkers)
	for i, item := range req.Items {
		g.Go(func() error {
			result, err := s.ScoreProfile(gctx, tenantID, locale, item)
			if err != nil {
				return err
			}
			items[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return transport.LeadScoreListResponse{}, err
	}
	return transport.LeadScoreListResponse{Items: items}, nil
}

func (s *Service) GetByID(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) (transport.LeadScoreResponse, error) {
	stored, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return transport.LeadScoreResponse{}, s.mapRepoError(err, "service.GetByID")
	}
	return toLeadScoreResponse(stored), nil
}

func (s *Service) ListByCustomer(ctx context.Context, tenantID uuid.UUID, customerID uuid.UUID, limit int) (transport.LeadScoreListResponse, error) {
	rows, err := s.repo.ListByCustomer(ctx, tenantID, customerID, normalizeLimit(limit))
	if err != nil {
		return transport.LeadScoreListResponse{}, s.mapRepoError(err, "service.ListByCustomer")
	}
	return toLeadScoreList(rows), nil
}

// ListHotLeads returns the tenant's current hot leads, highest score first.
func (s *Service) ListHotLeads(ctx context.Context, tenantID uuid.UUID, limit int) (transport.LeadScoreListResponse, error) {
	rows, err := s.repo.ListByCategory(ctx, tenantID, scoring.CategoryHot, normalizeLimit(limit))
	if err != nil {
		return transport.LeadScoreListResponse{}, s.mapRepoError(err, "service.ListHotLeads")
	}
	return toLeadScoreList(rows), nil
}

// Rescore recomputes a stored score from its stored profile with the current
// config and stores the result as a new record pointing back at the old one.
func (s *Service) Rescore(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) (transport.LeadScoreResponse, error) {
	stored, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return transport.LeadScoreResponse{}, s.mapRepoError(err, "service.Rescore")
	}

	return s.score(ctx, scoreInput{
		tenantID:       tenantID,
		customerID:     stored.CustomerID,
		phone:          derefString(stored.CustomerPhone),
		locale:         scoring.ParseLocale(stored.Locale),
		profile:        stored.Profile,
		rescoredFromID: &stored.ID,
	})
}

// RequestRescore queues a rescore for the background worker.
func (s *Service) RequestRescore(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) (transport.RescoreAcceptedResponse, error) {
	if s.queue == nil {
		return transport.RescoreAcceptedResponse{}, apperr.Unavailable(msgRescoreUnavailable)
	}
	if _, err := s.repo.GetByID(ctx, id, tenantID); err != nil {
		return transport.RescoreAcceptedResponse{}, s.mapRepoError(err, "service.RequestRescore")
	}
	if err := s.queue.EnqueueRescore(ctx, id, tenantID); err != nil {
		return transport.RescoreAcceptedResponse{}, apperr.Wrap(apperr.KindUnavailable, "failed to queue rescore", err)
	}
	return transport.RescoreAcceptedResponse{LeadScoreID: id, Status: "queued"}, nil
}

func (s *Service) score(ctx context.Context, in scoreInput) (transport.LeadScoreResponse, error) {
	engine := s.engine.ForLocale(in.locale)
	version := engine.Config().Version

	result, cached := s.lookup(ctx, engine, in.profile)
	if !cached {
		result = engine.Calculate(in.profile)
		s.store(ctx, engine, in.profile, result)
	}

	params := repository.CreateLeadScoreParams{
		OrganizationID: in.tenantID,
		CustomerID:     in.customerID,
		CustomerPhone:  s.normalizePhone(in.phone),
		Score:          result,
		Profile:        in.profile,
		Locale:         string(engine.Locale()),
		ConfigVersion:  version,
		RescoredFromID: in.rescoredFromID,
	}
	stored, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.LeadScoreResponse{}, s.mapRepoError(err, "service.score")
	}

	s.bus.Publish(ctx, events.LeadScored{
		BaseEvent:      events.NewBaseEvent(),
		TenantID:       in.tenantID,
		LeadScoreID:    stored.ID,
		CustomerID:     stored.CustomerID,
		CustomerPhone:  derefString(stored.CustomerPhone),
		TotalScore:     result.TotalScore,
		Category:       string(result.Category),
		Priority:       string(result.Recommendations.Priority),
		EstimatedValue: result.Recommendations.EstimatedValue,
		ConfigVersion:  version,
		Rescored:       in.rescoredFromID != nil,
	})

	s.log.WithContext(ctx).LeadScored(in.tenantID.String(), stored.ID.String(), result.TotalScore, string(result.Category), result.Confidence, version, cached)

	return toLeadScoreResponse(stored), nil
}

// lookup and store never fail the request: cache errors are logged and the
// engine result is used.
func (s *Service) lookup(ctx context.Context, engine *scoring.Engine, p scoring.CustomerProfile) (scoring.LeadScore, bool) {
	if s.cache == nil {
		return scoring.LeadScore{}, false
	}
	key, err := cache.Key(engine.Config().Version, engine.Locale(), p)
	if err != nil {
		s.log.CacheError("key", err)
		return scoring.LeadScore{}, false
	}
	result, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.CacheError("get", err)
		return scoring.LeadScore{}, false
	}
	return result, ok
}

func (s *Service) store(ctx context.Context, engine *scoring.Engine, p scoring.CustomerProfile, result scoring.LeadScore) {
	if s.cache == nil {
		return
	}
	key, err := cache.Key(engine.Config().Version, engine.Locale(), p)
	if err != nil {
		s.log.CacheError("key", err)
		return
	}
	if err := s.cache.Set(ctx, key, result); err != nil {
		s.log.CacheError("set", err)
	}
}

func (s *Service) normalizePhone(raw string) *string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	normalized := s.phones.NormalizeE164(raw)
	return &normalized
}

func (s *Service) mapRepoError(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound(msgLeadScoreNotFound).WithOp(op)
	case errors.Is(err, repository.ErrAlreadyRescored):
		return apperr.Conflict("lead score was already rescored").WithOp(op)
	case apperr.GetKind(err) != apperr.KindUnknown:
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		s.log.DatabaseError(op, err)
		return apperr.Wrap(apperr.KindInternal, "failed to access lead scores", err).WithOp(op)
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
