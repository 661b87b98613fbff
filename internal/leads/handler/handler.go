package handler

import (
	"context"
	"net/http"
	"strconv"

	"clinic_portal_backend/internal/leads/scoring"
	"clinic_portal_backend/internal/leads/transport"
	"clinic_portal_backend/platform/httpkit"
	"clinic_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// LeadScoreService is implemented by service.Service.
type LeadScoreService interface {
	ScoreProfile(ctx context.Context, tenantID uuid.UUID, locale scoring.Locale, req transport.ScoreProfileRequest) (transport.LeadScoreResponse, error)
	ScoreAnalysis(ctx context.Context, tenantID uuid.UUID, locale scoring.Locale, req transport.ScoreAnalysisRequest) (transport.LeadScoreResponse, error)
	ScoreBatch(ctx context.Context, tenantID uuid.UUID, locale scoring.Locale, req transport.BatchScoreRequest) (transport.LeadScoreListResponse, error)
	GetByID(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) (transport.LeadScoreResponse, error)
	ListByCustomer(ctx context.Context, tenantID uuid.UUID, customerID uuid.UUID, limit int) (transport.LeadScoreListResponse, error)
	ListHotLeads(ctx context.Context, tenantID uuid.UUID, limit int) (transport.LeadScoreListResponse, error)
	Rescore(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) (transport.LeadScoreResponse, error)
	RequestRescore(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) (transport.RescoreAcceptedResponse, error)
}

type Handler struct {
	svc           LeadScoreService
	val           *validator.Validator
	defaultLocale scoring.Locale
}

func New(svc LeadScoreService, val *validator.Validator, defaultLocale scoring.Locale) *Handler {
	return &Handler{svc: svc, val: val, defaultLocale: defaultLocale}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.ScoreProfile)
	rg.POST("/from-analysis", h.ScoreAnalysis)
	rg.POST("/batch", h.ScoreBatch)
	rg.GET("/hot", h.ListHotLeads)
	rg.GET("/customers/:customerId", h.ListByCustomer)
	rg.GET("/:id", h.GetByID)
	rg.POST("/:id/rescore", h.Rescore)
}

func (h *Handler) ScoreProfile(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.ScoreProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.ScoreProfile(c.Request.Context(), identity.TenantID(), h.locale(c), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

func (h *Handler) ScoreAnalysis(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.ScoreAnalysisRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.ScoreAnalysis(c.Request.Context(), identity.TenantID(), h.locale(c), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

func (h *Handler) ScoreBatch(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.BatchScoreRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.ScoreBatch(c.Request.Context(), identity.TenantID(), h.locale(c), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

func (h *Handler) GetByID(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), identity.TenantID(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) ListByCustomer(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	customerID, ok := parseUUIDParam(c, "customerId")
	if !ok {
		return
	}
	query, ok := h.bindListQuery(c)
	if !ok {
		return
	}

	result, err := h.svc.ListByCustomer(c.Request.Context(), identity.TenantID(), customerID, query.Limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) ListHotLeads(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	query, ok := h.bindListQuery(c)
	if !ok {
		return
	}

	result, err := h.svc.ListHotLeads(c.Request.Context(), identity.TenantID(), query.Limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Rescore recomputes a stored score with the current config. With
// ?async=true the work is queued and the reply is 202.
func (h *Handler) Rescore(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	async, _ := strconv.ParseBool(c.Query("async"))
	if async {
		accepted, err := h.svc.RequestRescore(c.Request.Context(), identity.TenantID(), id)
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.JSON(c, http.StatusAccepted, accepted)
		return
	}

	result, err := h.svc.Rescore(c.Request.Context(), identity.TenantID(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// locale prefers an explicit ?locale= over Accept-Language.
func (h *Handler) locale(c *gin.Context) scoring.Locale {
	if value := c.Query("locale"); value != "" {
		return scoring.ParseLocale(value)
	}
	if header := c.GetHeader("Accept-Language"); header != "" {
		return scoring.ResolveLocale(header)
	}
	return h.defaultLocale
}

func (h *Handler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return false
	}
	return true
}

func (h *Handler) bindListQuery(c *gin.Context) (transport.ListLeadScoresQuery, bool) {
	var query transport.ListLeadScoresQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return query, false
	}
	if err := h.val.Struct(query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return query, false
	}
	return query, true
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return uuid.UUID{}, false
	}
	return id, true
}
