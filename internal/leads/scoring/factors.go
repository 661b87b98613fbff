package scoring

import "math"

// scoreSkinNeed converts skin-condition severity into treatment urgency.
// Lower overall skin health means a higher need.
func (e *Engine) scoreSkinNeed(skin SkinCondition) int {
	cfg := e.cfg.SkinNeed

	need := math.Max(0, cfg.HealthyScore-skin.OverallScore)
	score := need * cfg.BasePoints / cfg.HealthyScore

	ageDifference := math.Max(0, skin.SkinAge-cfg.BaselineSkinAge)
	score += math.Min(cfg.MaxAgePoints, ageDifference*cfg.PointsPerAgeYear)

	score += math.Min(cfg.MaxUrgentPoints, float64(max(0, skin.UrgentIssues))*cfg.PointsPerUrgentIssue)

	return e.subScore(score)
}

// scoreEngagement converts in-session behaviour into an intent score.
// Each term is capped on its own before summation.
func (e *Engine) scoreEngagement(engagement EngagementLevel) int {
	cfg := e.cfg.Engagement

	score := math.Min(cfg.MaxQuestionPoints, float64(max(0, engagement.QuestionsAsked))*cfg.PointsPerQuestion)
	score += math.Min(cfg.MaxTimePoints, math.Max(0, engagement.TimeSpentInAnalysis)*cfg.PointsPerMinute)
	if engagement.FollowUpInterest {
		score += cfg.FollowUpPoints
	}
	score += math.Min(cfg.MaxPriceInquiryPoints, float64(max(0, engagement.PriceInquiries))*cfg.PointsPerPriceInquiry)

	return e.subScore(score)
}

// scoreBudget converts the price tier and package interest into ability to pay.
func (e *Engine) scoreBudget(budget BudgetIndicators) int {
	cfg := e.cfg.Budget

	score, ok := cfg.TierPoints[budget.PriceRange]
	if !ok {
		score = cfg.DefaultPoints
	}
	if budget.PackageInterest {
		score += cfg.PackagePoints
	}
	if len(budget.TreatmentPreference) > cfg.PreferenceThreshold {
		score += cfg.PreferencePoints
	}

	return e.subScore(score)
}

// scoreTiming infers readiness to buy. No stated timeline exists, so this is
// the most heuristic factor: session length, follow-up interest and pricing
// questions stand in for it.
func (e *Engine) scoreTiming(engagement EngagementLevel) int {
	cfg := e.cfg.Timing

	score := cfg.BasePoints
	switch {
	case engagement.TimeSpentInAnalysis > cfg.LongSessionMinutes:
		score += cfg.LongSessionPoints
	case engagement.TimeSpentInAnalysis > cfg.MediumSessionMinutes:
		score += cfg.MediumSessionPoints
	}
	if engagement.FollowUpInterest {
		score += cfg.FollowUpPoints
	}
	if engagement.PriceInquiries > cfg.PriceInquiryThreshold {
		score += cfg.PriceInquiryPoints
	}

	return e.subScore(score)
}

// subScore rounds half away from zero, then clamps to [0, MaxSubScore].
func (e *Engine) subScore(value float64) int {
	return int(clampFloat(math.Round(value), 0, math.Floor(e.cfg.MaxSubScore)))
}

func clampFloat(value float64, min float64, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
