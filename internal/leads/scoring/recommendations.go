package scoring

// PriorityFor returns the follow-up priority paired with a category.
func PriorityFor(category Category) Priority {
	switch category {
	case CategoryHot:
		return PriorityImmediate
	case CategoryWarm:
		return PriorityFollowUp
	default:
		return PriorityNurture
	}
}

// tier returns the recommendation tier for a total score. It reuses Classify
// so that category and priority can never disagree.
func (e *Engine) tier(total int) (Priority, TierConfig) {
	priority := PriorityFor(e.Classify(total))
	switch priority {
	case PriorityImmediate:
		return priority, e.cfg.Recommendations.Immediate
	case PriorityFollowUp:
		return priority, e.cfg.Recommendations.FollowUp
	default:
		return priority, e.cfg.Recommendations.Nurture
	}
}

func (e *Engine) recommendations(total int, profile CustomerProfile) Recommendations {
	priority, tier := e.tier(total)

	actions := make([]string, 0, len(tier.Actions))
	for _, key := range tier.Actions {
		actions = append(actions, e.locale.text(key))
	}

	return Recommendations{
		Priority:           priority,
		SuggestedActions:   actions,
		ExpectedConversion: tier.ExpectedConversion,
		EstimatedValue:     estimatedValue(tier, profile.BudgetIndicators.PriceRange),
	}
}

// estimatedValue looks the price range up again rather than reusing the
// budget sub-score, so package and preference bonuses never move the value.
func estimatedValue(tier TierConfig, priceRange PriceRange) int {
	if value, ok := tier.Values[priceRange]; ok {
		return value
	}
	return tier.DefaultValue
}
