// Package scoring implements the clinic lead scoring engine: four capped
// sub-scores (skin need, engagement, budget, timing) summed into a 0-100
// lead score, classified hot/warm/cold and turned into sales recommendations.
//
// The engine is a pure function over in-memory values. It performs no I/O,
// reads no clock and keeps no mutable state, so one Engine may be shared by
// any number of goroutines.
package scoring

import "math"

// Engine scores customer profiles against a fixed Config.
type Engine struct {
	cfg    Config
	locale Locale
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLocale selects the message catalog for reasoning and actions.
func WithLocale(locale Locale) Option {
	return func(e *Engine) {
		if _, ok := catalogs[locale]; ok {
			e.locale = locale
		}
	}
}

// NewEngine creates an engine for cfg. cfg is expected to have passed Validate.
func NewEngine(cfg Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, locale: DefaultLocale}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine(DefaultConfig())

// CalculateLeadScore scores profile with the default configuration.
func CalculateLeadScore(profile CustomerProfile) LeadScore {
	return defaultEngine.Calculate(profile)
}

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Locale returns the engine's message locale.
func (e *Engine) Locale() Locale {
	return e.locale
}

// ForLocale returns an engine sharing this configuration that renders copy in locale.
func (e *Engine) ForLocale(locale Locale) *Engine {
	if locale == e.locale {
		return e
	}
	return NewEngine(e.cfg, WithLocale(locale))
}

// Calculate scores profile. Identical input always yields identical output.
func (e *Engine) Calculate(profile CustomerProfile) LeadScore {
	breakdown := Breakdown{
		SkinNeedScore:   e.scoreSkinNeed(profile.SkinCondition),
		EngagementScore: e.scoreEngagement(profile.EngagementLevel),
		BudgetScore:     e.scoreBudget(profile.BudgetIndicators),
		TimingScore:     e.scoreTiming(profile.EngagementLevel),
	}

	total := e.totalScore(breakdown)

	return LeadScore{
		TotalScore:      total,
		Category:        e.Classify(total),
		Confidence:      e.confidence(profile),
		Reasoning:       e.reasoning(breakdown, profile),
		Recommendations: e.recommendations(total, profile),
		Breakdown:       breakdown,
	}
}

// totalScore sums the already rounded sub-scores. There is no second rounding.
func (e *Engine) totalScore(b Breakdown) int {
	return int(clampFloat(float64(b.Total()), 0, math.Floor(e.cfg.MaxTotalScore)))
}

// Classify maps a total score to its category, hot first.
func (e *Engine) Classify(total int) Category {
	switch {
	case total >= e.cfg.Categories.Hot:
		return CategoryHot
	case total >= e.cfg.Categories.Warm:
		return CategoryWarm
	default:
		return CategoryCold
	}
}

// confidence measures how complete the input profile is, not how reliable
// the score is. Each populated signal earns a flat bonus.
func (e *Engine) confidence(profile CustomerProfile) int {
	cfg := e.cfg.Confidence

	confidence := 0
	if profile.Age > 0 {
		confidence += cfg.AgePoints
	}
	if profile.SkinCondition.OverallScore > 0 {
		confidence += cfg.OverallScorePoints
	}
	if profile.EngagementLevel.TimeSpentInAnalysis > 0 {
		confidence += cfg.TimeSpentPoints
	}
	if profile.BudgetIndicators.PriceRange != "" {
		confidence += cfg.PriceRangePoints
	}
	if len(profile.SkinCondition.Concerns) > 0 {
		confidence += cfg.ConcernsPoints
	}
	if profile.EngagementLevel.QuestionsAsked > 0 {
		confidence += cfg.QuestionsPoints
	}

	return min(cfg.Max, max(0, confidence))
}
