// Package profile adapts raw skin-analysis and engagement records into the
// canonical scoring.CustomerProfile.
package profile

import (
	"regexp"
	"strconv"
	"strings"

	"clinic_portal_backend/internal/leads/scoring"
)

// AnalysisData is the skin-analysis record as delivered by the analysis
// subsystem. Pointer fields distinguish "not measured" from zero.
type AnalysisData struct {
	OverallScore    *float64                  `json:"overallScore"`
	SkinAge         *float64                  `json:"skinAge"`
	CustomerInfo    *CustomerInfo             `json:"customerInfo"`
	Recommendations []TreatmentRecommendation `json:"recommendations"`
}

type CustomerInfo struct {
	Age          *int     `json:"age"`
	SkinConcerns []string `json:"skinConcerns"`
}

// TreatmentRecommendation is one treatment suggested by the analysis.
// Price is free text such as "20,000-30,000".
type TreatmentRecommendation struct {
	Type    string `json:"type"`
	Urgency string `json:"urgency"`
	Price   string `json:"price"`
}

// EngagementData is the CRM engagement record for the same session.
type EngagementData struct {
	QuestionsAsked      *int                  `json:"questionsAsked"`
	TimeSpentInAnalysis *float64              `json:"timeSpentInAnalysis"`
	FollowUpInterest    *bool                 `json:"followUpInterest"`
	PriceInquiries      *int                  `json:"priceInquiries"`
	PackageInterest     *bool                 `json:"packageInterest"`
	Demographics        *scoring.Demographics `json:"demographics"`
}

// Builder applies a fixed set of defaults when building profiles.
type Builder struct {
	defaults scoring.ProfileDefaults
}

func NewBuilder(defaults scoring.ProfileDefaults) *Builder {
	return &Builder{defaults: defaults}
}

var defaultBuilder = NewBuilder(scoring.DefaultConfig().Profile)

// CreateCustomerProfile builds a profile with the default fallbacks.
func CreateCustomerProfile(analysis AnalysisData, engagement EngagementData) scoring.CustomerProfile {
	return defaultBuilder.Build(analysis, engagement)
}

// Build maps the raw records into a CustomerProfile. It never fails; every
// missing value takes its documented default.
func (b *Builder) Build(analysis AnalysisData, engagement EngagementData) scoring.CustomerProfile {
	d := b.defaults

	age := d.Age
	var customerAge *int
	concerns := []string{}
	if info := analysis.CustomerInfo; info != nil {
		if info.Age != nil {
			age = *info.Age
			customerAge = info.Age
		}
		if info.SkinConcerns != nil {
			concerns = append(concerns, info.SkinConcerns...)
		}
	}

	skinAge := d.SkinAge
	switch {
	case analysis.SkinAge != nil:
		skinAge = *analysis.SkinAge
	case customerAge != nil:
		skinAge = float64(*customerAge)
	}

	preferences := make([]string, 0, len(analysis.Recommendations))
	urgent := 0
	for _, rec := range analysis.Recommendations {
		preferences = append(preferences, rec.Type)
		if rec.Urgency == d.UrgentLevel {
			urgent++
		}
	}

	profile := scoring.CustomerProfile{
		Age: age,
		SkinCondition: scoring.SkinCondition{
			OverallScore: valueOr(analysis.OverallScore, d.OverallScore),
			SkinAge:      skinAge,
			Concerns:     concerns,
			UrgentIssues: urgent,
		},
		EngagementLevel: scoring.EngagementLevel{
			QuestionsAsked:      valueOr(engagement.QuestionsAsked, 0),
			TimeSpentInAnalysis: valueOr(engagement.TimeSpentInAnalysis, d.TimeSpentMinutes),
			FollowUpInterest:    valueOr(engagement.FollowUpInterest, false),
			PriceInquiries:      valueOr(engagement.PriceInquiries, 0),
			PackageInterest:     boolPtr(valueOr(engagement.PackageInterest, false)),
		},
		BudgetIndicators: scoring.BudgetIndicators{
			PriceRange:          b.EstimateBudgetRange(analysis.Recommendations),
			TreatmentPreference: preferences,
			PackageInterest:     valueOr(engagement.PackageInterest, false),
		},
	}
	if engagement.Demographics != nil {
		profile.Demographics = *engagement.Demographics
	}
	return profile
}

// EstimateBudgetRange averages the midpoints of every recommendation's
// price range and maps the average onto a tier. Unparsable prices count as
// the fallback range.
func (b *Builder) EstimateBudgetRange(recs []TreatmentRecommendation) scoring.PriceRange {
	d := b.defaults
	if len(recs) == 0 {
		return d.DefaultPriceRange
	}

	total := 0.0
	for _, rec := range recs {
		low, high, ok := ParsePriceRange(rec.Price)
		if !ok {
			low, high = d.FallbackPriceMin, d.FallbackPriceMax
		}
		total += (low + high) / 2
	}
	average := total / float64(len(recs))

	switch {
	case average >= d.LuxuryFrom:
		return scoring.PriceRangeLuxury
	case average >= d.PremiumFrom:
		return scoring.PriceRangePremium
	case average >= d.MidFrom:
		return scoring.PriceRangeMid
	default:
		return scoring.PriceRangeBudget
	}
}

// EstimateBudgetRange estimates a tier with the default thresholds.
func EstimateBudgetRange(recs []TreatmentRecommendation) scoring.PriceRange {
	return defaultBuilder.EstimateBudgetRange(recs)
}

var priceRangePattern = regexp.MustCompile(`(\d[\d,]*)\s*-\s*(\d[\d,]*)`)

// ParsePriceRange extracts "min-max" from a price string such as
// "฿20,000 - 30,000". Thousands separators are ignored.
func ParsePriceRange(s string) (min float64, max float64, ok bool) {
	m := priceRangePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	low, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, 0, false
	}
	high, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
	if err != nil {
		return 0, 0, false
	}
	return low, high, true
}

func valueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}

func boolPtr(v bool) *bool { return &v }
