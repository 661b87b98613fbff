package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clinic_portal_backend/internal/leads/scoring"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("lead score not found")
	// ErrAlreadyRescored means another score already supersedes the source row.
	ErrAlreadyRescored = errors.New("lead score already rescored")
)

const uniqueViolation = "23505"

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// LeadScore is one stored scoring result together with the profile it was
// computed from, so it can be recomputed after a config change.
type LeadScore struct {
	ID              uuid.UUID
	OrganizationID  uuid.UUID
	CustomerID      *uuid.UUID
	CustomerPhone   *string
	TotalScore      int
	Category        scoring.Category
	Confidence      int
	Breakdown       scoring.Breakdown
	Reasoning       []string
	Recommendations scoring.Recommendations
	Profile         scoring.CustomerProfile
	Locale          string
	ConfigVersion   string
	RescoredFromID  *uuid.UUID
	CreatedAt       time.Time
}

type CreateLeadScoreParams struct {
	OrganizationID uuid.UUID
	CustomerID     *uuid.UUID
	CustomerPhone  *string
	Score          scoring.LeadScore
	Profile        scoring.CustomerProfile
	Locale         string
	ConfigVersion  string
	RescoredFromID *uuid.UUID
}

// RescoreCursor is the keyset position of the last row of a page.
type RescoreCursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

type ListForRescoreParams struct {
	// ExcludeVersion skips rows already scored with this config version.
	ExcludeVersion string
	After          *RescoreCursor
	Limit          int
}

const leadScoreColumns = `
	id, organization_id, customer_id, customer_phone, total_score, category, confidence,
	breakdown, reasoning, recommendations, profile, locale, config_version, rescored_from_id, created_at`

func (r *Repository) Create(ctx context.Context, params CreateLeadScoreParams) (LeadScore, error) {
	breakdown, err := json.Marshal(params.Score.Breakdown)
	if err != nil {
		return LeadScore{}, fmt.Errorf("encode breakdown: %w", err)
	}
	reasoning, err := json.Marshal(params.Score.Reasoning)
	if err != nil {
		return LeadScore{}, fmt.Errorf("encode reasoning: %w", err)
	}
	recommendations, err := json.Marshal(params.Score.Recommendations)
	if err != nil {
		return LeadScore{}, fmt.Errorf("encode recommendations: %w", err)
	}
	profile, err := json.Marshal(params.Profile)
	if err != nil {
		return LeadScore{}, fmt.Errorf("encode profile: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO lead_scores (
			organization_id, customer_id, customer_phone, total_score, category, confidence,
			breakdown, reasoning, recommendations, profile, locale, config_version, rescored_from_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING`+leadScoreColumns,
		params.OrganizationID, params.CustomerID, params.CustomerPhone,
		params.Score.TotalScore, string(params.Score.Category), params.Score.Confidence,
		breakdown, reasoning, recommendations, profile,
		params.Locale, params.ConfigVersion, params.RescoredFromID,
	)
	score, err := scanLeadScore(row)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && params.RescoredFromID != nil {
		return LeadScore{}, ErrAlreadyRescored
	}
	return score, err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID, organizationID uuid.UUID) (LeadScore, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT`+leadScoreColumns+`
		FROM lead_scores
		WHERE id = $1 AND organization_id = $2
	`, id, organizationID)

	score, err := scanLeadScore(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return LeadScore{}, ErrNotFound
	}
	return score, err
}

// ListByCustomer returns a customer's scores, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, organizationID uuid.UUID, customerID uuid.UUID, limit int) ([]LeadScore, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+leadScoreColumns+`
		FROM lead_scores
		WHERE organization_id = $1 AND customer_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`, organizationID, customerID, limit)
	if err != nil {
		return nil, err
	}
	return collectLeadScores(rows)
}

// ListByCategory returns the current (not superseded) scores in a category,
// best first.
func (r *Repository) ListByCategory(ctx context.Context, organizationID uuid.UUID, category scoring.Category, limit int) ([]LeadScore, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+leadScoreColumns+`
		FROM lead_scores ls
		WHERE ls.organization_id = $1 AND ls.category = $2
		  AND NOT EXISTS (SELECT 1 FROM lead_scores r WHERE r.rescored_from_id = ls.id)
		ORDER BY ls.total_score DESC, ls.created_at DESC
		LIMIT $3
	`, organizationID, string(category), limit)
	if err != nil {
		return nil, err
	}
	return collectLeadScores(rows)
}

// ListForRescore pages through every tenant's current scores in keyset order.
func (r *Repository) ListForRescore(ctx context.Context, params ListForRescoreParams) ([]LeadScore, error) {
	var afterTime *time.Time
	var afterID *uuid.UUID
	if params.After != nil {
		afterTime = &params.After.CreatedAt
		afterID = &params.After.ID
	}

	rows, err := r.pool.Query(ctx, `
		SELECT`+leadScoreColumns+`
		FROM lead_scores ls
		WHERE ls.config_version <> $1
		  AND NOT EXISTS (SELECT 1 FROM lead_scores r WHERE r.rescored_from_id = ls.id)
		  AND ($2::timestamptz IS NULL OR (ls.created_at, ls.id) > ($2::timestamptz, $3::uuid))
		ORDER BY ls.created_at ASC, ls.id ASC
		LIMIT $4
	`, params.ExcludeVersion, afterTime, afterID, params.Limit)
	if err != nil {
		return nil, err
	}
	return collectLeadScores(rows)
}

func collectLeadScores(rows pgx.Rows) ([]LeadScore, error) {
	defer rows.Close()

	items := make([]LeadScore, 0)
	for rows.Next() {
		item, err := scanLeadScore(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanLeadScore(row pgx.Row) (LeadScore, error) {
	var (
		score                                         LeadScore
		category                                      string
		breakdown, reasoning, recommendations, profile []byte
	)
	if err := row.Scan(
		&score.ID,
		&score.OrganizationID,
		&score.CustomerID,
		&score.CustomerPhone,
		&score.TotalScore,
		&category,
		&score.Confidence,
		&breakdown,
		&reasoning,
		&recommendations,
		&profile,
		&score.Locale,
		&score.ConfigVersion,
		&score.RescoredFromID,
		&score.CreatedAt,
	); err != nil {
		return LeadScore{}, err
	}
	score.Category = scoring.Category(category)

	if err := decodeJSON(breakdown, &score.Breakdown, "breakdown"); err != nil {
		return LeadScore{}, err
	}
	if err := decodeJSON(reasoning, &score.Reasoning, "reasoning"); err != nil {
		return LeadScore{}, err
	}
	if err := decodeJSON(recommendations, &score.Recommendations, "recommendations"); err != nil {
		return LeadScore{}, err
	}
	if err := decodeJSON(profile, &score.Profile, "profile"); err != nil {
		return LeadScore{}, err
	}
	return score, nil
}

func decodeJSON(data []byte, target any, field string) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s: %w", field, err)
	}
	return nil
}
