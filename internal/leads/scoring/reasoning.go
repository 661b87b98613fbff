package scoring

// reasoning always starts with the skin-need, engagement and budget
// statements, in that order, followed by the conditional ones.
func (e *Engine) reasoning(b Breakdown, profile CustomerProfile) []string {
	cfg := e.cfg.Reasoning
	maxScore := int(e.cfg.MaxSubScore)

	reasons := make([]string, 0, 5)
	reasons = append(reasons,
		e.locale.text(e.graded(b.SkinNeedScore, MsgSkinUrgent, MsgSkinModerate, MsgSkinPreventive), b.SkinNeedScore, maxScore),
		e.locale.text(e.graded(b.EngagementScore, MsgEngagementHigh, MsgEngagementGood, MsgEngagementNurture), b.EngagementScore, maxScore),
		e.locale.text(e.graded(b.BudgetScore, MsgBudgetHigh, MsgBudgetModerate, MsgBudgetLimited), b.BudgetScore, maxScore),
	)

	if profile.SkinCondition.UrgentIssues > cfg.UrgentIssuesThreshold {
		reasons = append(reasons, e.locale.text(MsgMultipleUrgent, profile.SkinCondition.UrgentIssues))
	}
	if profile.EngagementLevel.PriceInquiries > cfg.PriceInquiryThreshold {
		reasons = append(reasons, e.locale.text(MsgPricingInterest, profile.EngagementLevel.PriceInquiries))
	}

	return reasons
}

func (e *Engine) graded(score int, strong, moderate, weak MessageKey) MessageKey {
	switch {
	case score >= e.cfg.Reasoning.StrongThreshold:
		return strong
	case score >= e.cfg.Reasoning.ModerateThreshold:
		return moderate
	default:
		return weak
	}
}
