package transport

import (
	"time"

	"clinic_portal_backend/internal/leads/scoring"

	"github.com/google/uuid"
)

// =============================================================================
// Request DTOs
// =============================================================================

type SkinConditionRequest struct {
	OverallScore float64  `json:"overallScore" validate:"min=0,max=100"`
	SkinAge      float64  `json:"skinAge" validate:"min=0,max=150"`
	Concerns     []string `json:"concerns" validate:"max=50,dive,min=1,max=100"`
	UrgentIssues int      `json:"urgentIssues" validate:"min=0,max=1000"`
}

type EngagementLevelRequest struct {
	QuestionsAsked      int     `json:"questionsAsked" validate:"min=0"`
	TimeSpentInAnalysis float64 `json:"timeSpentInAnalysis" validate:"min=0"`
	FollowUpInterest    bool    `json:"followUpInterest"`
	PriceInquiries      int     `json:"priceInquiries" validate:"min=0"`
	PackageInterest     *bool   `json:"packageInterest,omitempty"`
}

type BudgetIndicatorsRequest struct {
	PriceRange          string   `json:"priceRange" validate:"omitempty,price_range"`
	TreatmentPreference []string `json:"treatmentPreference" validate:"max=50,dive,min=1,max=100"`
	PackageInterest     bool     `json:"packageInterest"`
}

type DemographicsRequest struct {
	Location   *string `json:"location,omitempty" validate:"omitempty,max=200"`
	Occupation *string `json:"occupation,omitempty" validate:"omitempty,max=200"`
	Lifestyle  *string `json:"lifestyle,omitempty" validate:"omitempty,lifestyle"`
}

// CustomerProfileRequest is a caller-built profile, scored as given.
type CustomerProfileRequest struct {
	Age              int                     `json:"age" validate:"min=0,max=150"`
	SkinCondition    SkinConditionRequest    `json:"skinCondition"`
	EngagementLevel  EngagementLevelRequest  `json:"engagementLevel"`
	BudgetIndicators BudgetIndicatorsRequest `json:"budgetIndicators"`
	Demographics     DemographicsRequest     `json:"demographics"`
}

type ScoreProfileRequest struct {
	CustomerID *uuid.UUID             `json:"customerId,omitempty"`
	Phone      string                 `json:"phone,omitempty" validate:"omitempty,min=5,max=30"`
	Profile    CustomerProfileRequest `json:"profile"`
}

type CustomerInfoRequest struct {
	Age          *int     `json:"age,omitempty" validate:"omitempty,min=0,max=150"`
	SkinConcerns []string `json:"skinConcerns" validate:"max=50,dive,min=1,max=100"`
}

type TreatmentRecommendationRequest struct {
	Type    string `json:"type" validate:"required,max=100"`
	Urgency string `json:"urgency" validate:"max=20"`
	Price   string `json:"price" validate:"max=100"`
}

// AnalysisRequest is the raw skin-analysis record.
type AnalysisRequest struct {
	OverallScore    *float64                         `json:"overallScore,omitempty" validate:"omitempty,min=0,max=100"`
	SkinAge         *float64                         `json:"skinAge,omitempty" validate:"omitempty,min=0,max=150"`
	CustomerInfo    *CustomerInfoRequest             `json:"customerInfo,omitempty"`
	Recommendations []TreatmentRecommendationRequest `json:"recommendations" validate:"max=50,dive"`
}

// EngagementRequest is the raw CRM engagement record. Missing fields take defaults.
type EngagementRequest struct {
	QuestionsAsked      *int                 `json:"questionsAsked,omitempty" validate:"omitempty,min=0"`
	TimeSpentInAnalysis *float64             `json:"timeSpentInAnalysis,omitempty" validate:"omitempty,min=0"`
	FollowUpInterest    *bool                `json:"followUpInterest,omitempty"`
	PriceInquiries      *int                 `json:"priceInquiries,omitempty" validate:"omitempty,min=0"`
	PackageInterest     *bool                `json:"packageInterest,omitempty"`
	Demographics        *DemographicsRequest `json:"demographics,omitempty"`
}

type ScoreAnalysisRequest struct {
	CustomerID *uuid.UUID        `json:"customerId,omitempty"`
	Phone      string            `json:"phone,omitempty" validate:"omitempty,min=5,max=30"`
	Analysis   AnalysisRequest   `json:"analysis"`
	Engagement EngagementRequest `json:"engagement"`
}

type BatchScoreRequest struct {
	Items []ScoreProfileRequest `json:"items" validate:"required,min=1,max=100,dive"`
}

type ListLeadScoresQuery struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=200"`
}

// =============================================================================
// Response DTOs
// =============================================================================

// LeadScoreResponse is the engine result plus its stored metadata. The
// embedded LeadScore fields appear at the top level of the JSON body.
type LeadScoreResponse struct {
	ID            uuid.UUID  `json:"id"`
	CustomerID    *uuid.UUID `json:"customerId,omitempty"`
	CustomerPhone string     `json:"customerPhone,omitempty"`
	scoring.LeadScore
	Locale         string     `json:"locale"`
	ConfigVersion  string     `json:"configVersion"`
	RescoredFromID *uuid.UUID `json:"rescoredFromId,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type LeadScoreListResponse struct {
	Items []LeadScoreResponse `json:"items"`
}

type RescoreAcceptedResponse struct {
	LeadScoreID uuid.UUID `json:"leadScoreId"`
	Status      string    `json:"status"`
}
