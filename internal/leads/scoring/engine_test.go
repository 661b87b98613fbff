package scoring

import (
	"reflect"
	"testing"
)

// Sub-scores are rounded one by one (half away from zero) and the total is
// their plain sum; every expectation below follows that convention.

func boolPtr(v bool) *bool { return &v }

func defaultProfile() CustomerProfile {
	return CustomerProfile{
		Age: 25,
		SkinCondition: SkinCondition{
			OverallScore: 70,
			SkinAge:      25,
			Concerns:     []string{},
			UrgentIssues: 0,
		},
		EngagementLevel: EngagementLevel{
			QuestionsAsked:      0,
			TimeSpentInAnalysis: 5,
			FollowUpInterest:    false,
			PriceInquiries:      0,
			PackageInterest:     boolPtr(false),
		},
		BudgetIndicators: BudgetIndicators{
			PriceRange:          PriceRangeMid,
			TreatmentPreference: []string{},
			PackageInterest:     false,
		},
	}
}

func hotProfile() CustomerProfile {
	return CustomerProfile{
		Age: 38,
		SkinCondition: SkinCondition{
			OverallScore: 30,
			SkinAge:      45,
			Concerns:     []string{"melasma", "wrinkles"},
			UrgentIssues: 4,
		},
		EngagementLevel: EngagementLevel{
			QuestionsAsked:      5,
			TimeSpentInAnalysis: 20,
			FollowUpInterest:    true,
			PriceInquiries:      4,
		},
		BudgetIndicators: BudgetIndicators{
			PriceRange:          PriceRangeLuxury,
			TreatmentPreference: []string{"a", "b", "c"},
			PackageInterest:     true,
		},
	}
}

func warmProfile() CustomerProfile {
	return CustomerProfile{
		Age: 31,
		SkinCondition: SkinCondition{
			OverallScore: 50,
			SkinAge:      35,
			Concerns:     []string{"acne"},
			UrgentIssues: 1,
		},
		EngagementLevel: EngagementLevel{
			QuestionsAsked:      3,
			TimeSpentInAnalysis: 10,
			FollowUpInterest:    true,
			PriceInquiries:      2,
		},
		BudgetIndicators: BudgetIndicators{
			PriceRange: PriceRangePremium,
		},
	}
}

func TestCalculateLeadScore_DefaultProfile(t *testing.T) {
	result := CalculateLeadScore(defaultProfile())

	want := Breakdown{SkinNeedScore: 5, EngagementScore: 3, BudgetScore: 15, TimingScore: 10}
	if result.Breakdown != want {
		t.Fatalf("expected breakdown %+v, got %+v", want, result.Breakdown)
	}
	if result.TotalScore != 33 {
		t.Fatalf("expected total 33, got %d", result.TotalScore)
	}
	if result.Category != CategoryCold {
		t.Fatalf("expected cold, got %s", result.Category)
	}
	if result.Confidence != 70 {
		t.Fatalf("expected confidence 70, got %d", result.Confidence)
	}
	if result.Recommendations.Priority != PriorityNurture {
		t.Fatalf("expected nurture priority, got %s", result.Recommendations.Priority)
	}
	if result.Recommendations.ExpectedConversion != 15 || result.Recommendations.EstimatedValue != 10000 {
		t.Fatalf("expected 15%%/10000, got %d%%/%d", result.Recommendations.ExpectedConversion, result.Recommendations.EstimatedValue)
	}
	if len(result.Reasoning) != 3 {
		t.Fatalf("expected 3 reasoning statements, got %d: %v", len(result.Reasoning), result.Reasoning)
	}
}

func TestCalculateLeadScore_HotLead(t *testing.T) {
	result := CalculateLeadScore(hotProfile())

	want := Breakdown{SkinNeedScore: 21, EngagementScore: 25, BudgetScore: 25, TimingScore: 25}
	if result.Breakdown != want {
		t.Fatalf("expected breakdown %+v, got %+v", want, result.Breakdown)
	}
	if result.TotalScore != 96 {
		t.Fatalf("expected total 96, got %d", result.TotalScore)
	}
	if result.Category != CategoryHot {
		t.Fatalf("expected hot, got %s", result.Category)
	}
	rec := result.Recommendations
	if rec.Priority != PriorityImmediate {
		t.Fatalf("expected immediate, got %s", rec.Priority)
	}
	if rec.ExpectedConversion != 70 {
		t.Fatalf("expected conversion 70, got %d", rec.ExpectedConversion)
	}
	if rec.EstimatedValue != 80000 {
		t.Fatalf("expected value 80000, got %d", rec.EstimatedValue)
	}
	if len(rec.SuggestedActions) != 4 {
		t.Fatalf("expected 4 actions, got %d", len(rec.SuggestedActions))
	}
	if result.Confidence != 100 {
		t.Fatalf("expected confidence 100, got %d", result.Confidence)
	}
	if len(result.Reasoning) != 5 {
		t.Fatalf("expected 5 reasoning statements, got %d: %v", len(result.Reasoning), result.Reasoning)
	}
}

func TestCalculate_WarmLead(t *testing.T) {
	result := NewEngine(DefaultConfig(), WithLocale(LocaleEnglish)).Calculate(warmProfile())

	want := Breakdown{SkinNeedScore: 15, EngagementScore: 18, BudgetScore: 20, TimingScore: 20}
	if result.Breakdown != want {
		t.Fatalf("expected breakdown %+v, got %+v", want, result.Breakdown)
	}
	if result.TotalScore != 73 || result.Category != CategoryWarm {
		t.Fatalf("expected 73/warm, got %d/%s", result.TotalScore, result.Category)
	}
	rec := result.Recommendations
	if rec.Priority != PriorityFollowUp || rec.ExpectedConversion != 40 || rec.EstimatedValue != 35000 {
		t.Fatalf("unexpected recommendations %+v", rec)
	}

	wantReasons := []string{
		"Moderate treatment need: treatment is recommended (need score 15/25)",
		"Good level of interest (engagement score 18/25)",
		"High budget potential (budget score 20/25)",
	}
	if !reflect.DeepEqual(result.Reasoning, wantReasons) {
		t.Fatalf("expected reasoning %q, got %q", wantReasons, result.Reasoning)
	}

	wantActions := []string{
		"Follow up within 24 hours",
		"Send additional treatment information",
		"Invite to a workshop or webinar",
		"Offer a consultation via chat or phone",
	}
	if !reflect.DeepEqual(rec.SuggestedActions, wantActions) {
		t.Fatalf("expected actions %q, got %q", wantActions, rec.SuggestedActions)
	}
}

func TestCalculate_ReasoningOrderAndConditionals(t *testing.T) {
	engine := NewEngine(DefaultConfig(), WithLocale(LocaleEnglish))
	result := engine.Calculate(hotProfile())

	want := []string{
		"Urgent treatment need: skin analysis shows significant concerns (need score 21/25)",
		"Very high interest with deep interaction (engagement score 25/25)",
		"High budget potential (budget score 25/25)",
		"Multiple urgent issues (4) need fast treatment",
		"Asked about pricing in detail (4 inquiries), signalling purchase readiness",
	}
	if !reflect.DeepEqual(result.Reasoning, want) {
		t.Fatalf("expected reasoning %q, got %q", want, result.Reasoning)
	}

	// Thresholds are strict: exactly two urgent issues or inquiries add nothing.
	profile := hotProfile()
	profile.SkinCondition.UrgentIssues = 2
	profile.EngagementLevel.PriceInquiries = 2
	result = engine.Calculate(profile)
	if len(result.Reasoning) != 3 {
		t.Fatalf("expected only base statements, got %q", result.Reasoning)
	}
}

func TestCalculate_ConfidenceFloorAndCeiling(t *testing.T) {
	empty := CustomerProfile{}
	if got := CalculateLeadScore(empty).Confidence; got != 0 {
		t.Fatalf("expected confidence 0 for empty profile, got %d", got)
	}

	full := hotProfile()
	if got := CalculateLeadScore(full).Confidence; got != 100 {
		t.Fatalf("expected confidence 100 for full profile, got %d", got)
	}

	// An unrecognised tier still counts as a populated price range.
	partial := CustomerProfile{BudgetIndicators: BudgetIndicators{PriceRange: "platinum"}}
	if got := CalculateLeadScore(partial).Confidence; got != 15 {
		t.Fatalf("expected confidence 15, got %d", got)
	}
}

func TestCalculate_EstimatedValueIgnoresBudgetBonuses(t *testing.T) {
	cases := []struct {
		name       string
		priceRange PriceRange
		want       int
	}{
		{"luxury", PriceRangeLuxury, 80000},
		{"premium", PriceRangePremium, 50000},
		{"mid", PriceRangeMid, 25000},
		{"budget", PriceRangeBudget, 15000},
		{"unknown", PriceRange("gold"), 15000},
	}

	for _, tc := range cases {
		profile := hotProfile()
		profile.BudgetIndicators.PriceRange = tc.priceRange
		result := CalculateLeadScore(profile)
		if result.Category != CategoryHot {
			t.Fatalf("%s: expected hot lead, got %s (%d)", tc.name, result.Category, result.TotalScore)
		}
		if result.Recommendations.EstimatedValue != tc.want {
			t.Errorf("%s: expected value %d, got %d", tc.name, tc.want, result.Recommendations.EstimatedValue)
		}
	}

	cold := CustomerProfile{
		SkinCondition:    SkinCondition{OverallScore: 100, SkinAge: 25},
		BudgetIndicators: BudgetIndicators{PriceRange: PriceRangeLuxury},
	}
	result := CalculateLeadScore(cold)
	if result.Category != CategoryCold || result.Recommendations.EstimatedValue != 10000 {
		t.Fatalf("expected cold lead with flat 10000, got %s/%d", result.Category, result.Recommendations.EstimatedValue)
	}
}

func TestBudgetScore_UnknownTierFallsBackToBudgetPoints(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	cases := []struct {
		budget BudgetIndicators
		want   int
	}{
		{BudgetIndicators{PriceRange: PriceRangeLuxury}, 25},
		{BudgetIndicators{PriceRange: PriceRangePremium}, 20},
		{BudgetIndicators{PriceRange: PriceRangeMid}, 15},
		{BudgetIndicators{PriceRange: PriceRangeBudget}, 10},
		{BudgetIndicators{PriceRange: ""}, 10},
		{BudgetIndicators{PriceRange: "vip"}, 10},
		{BudgetIndicators{PriceRange: PriceRangeMid, PackageInterest: true}, 18},
		{BudgetIndicators{PriceRange: PriceRangeMid, TreatmentPreference: []string{"a", "b"}}, 15},
		{BudgetIndicators{PriceRange: PriceRangeMid, TreatmentPreference: []string{"a", "b", "c"}}, 17},
		{BudgetIndicators{PriceRange: PriceRangePremium, PackageInterest: true, TreatmentPreference: []string{"a", "b", "c"}}, 25},
	}

	for _, tc := range cases {
		if got := engine.scoreBudget(tc.budget); got != tc.want {
			t.Errorf("scoreBudget(%+v) = %d, want %d", tc.budget, got, tc.want)
		}
	}
}

func TestTimingScore_SessionBandsAreExclusive(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	cases := []struct {
		engagement EngagementLevel
		want       int
	}{
		{EngagementLevel{TimeSpentInAnalysis: 8}, 10},
		{EngagementLevel{TimeSpentInAnalysis: 8.5}, 15},
		{EngagementLevel{TimeSpentInAnalysis: 15}, 15},
		{EngagementLevel{TimeSpentInAnalysis: 16}, 18},
		{EngagementLevel{TimeSpentInAnalysis: 16, FollowUpInterest: true}, 23},
		{EngagementLevel{PriceInquiries: 3}, 17},
		{EngagementLevel{TimeSpentInAnalysis: 30, FollowUpInterest: true, PriceInquiries: 3}, 25},
	}

	for _, tc := range cases {
		if got := engine.scoreTiming(tc.engagement); got != tc.want {
			t.Errorf("scoreTiming(%+v) = %d, want %d", tc.engagement, got, tc.want)
		}
	}
}

func TestSubScores_StayWithinBounds(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	extremes := []CustomerProfile{
		{},
		hotProfile(),
		{
			SkinCondition:   SkinCondition{OverallScore: -50, SkinAge: 200, UrgentIssues: 1000},
			EngagementLevel: EngagementLevel{QuestionsAsked: 1000, TimeSpentInAnalysis: 1e6, FollowUpInterest: true, PriceInquiries: 1000},
			BudgetIndicators: BudgetIndicators{
				PriceRange:          PriceRangeLuxury,
				PackageInterest:     true,
				TreatmentPreference: []string{"a", "b", "c", "d"},
			},
		},
		{
			Age:             -4,
			SkinCondition:   SkinCondition{OverallScore: 400, SkinAge: -10, UrgentIssues: -3},
			EngagementLevel: EngagementLevel{QuestionsAsked: -2, TimeSpentInAnalysis: -9, PriceInquiries: -1},
		},
	}

	for i, profile := range extremes {
		result := engine.Calculate(profile)
		for name, score := range map[string]int{
			"skinNeed":   result.Breakdown.SkinNeedScore,
			"engagement": result.Breakdown.EngagementScore,
			"budget":     result.Breakdown.BudgetScore,
			"timing":     result.Breakdown.TimingScore,
		} {
			if score < 0 || score > 25 {
				t.Errorf("profile %d: %s score %d out of [0,25]", i, name, score)
			}
		}
		if result.TotalScore < 0 || result.TotalScore > 100 {
			t.Errorf("profile %d: total %d out of [0,100]", i, result.TotalScore)
		}
		if result.Confidence < 0 || result.Confidence > 100 {
			t.Errorf("profile %d: confidence %d out of [0,100]", i, result.Confidence)
		}
	}
}

func TestSubScores_AreMonotonic(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	prevSkin := -1
	for urgent := 0; urgent <= 6; urgent++ {
		skin := SkinCondition{OverallScore: 60, SkinAge: 30, UrgentIssues: urgent}
		got := engine.scoreSkinNeed(skin)
		if got < prevSkin {
			t.Fatalf("skin need decreased at urgentIssues=%d: %d < %d", urgent, got, prevSkin)
		}
		prevSkin = got
	}

	prevEngagement, prevTiming := -1, -1
	for step := 0; step <= 40; step++ {
		engagement := EngagementLevel{
			QuestionsAsked:      step / 4,
			TimeSpentInAnalysis: float64(step),
			PriceInquiries:      step / 5,
		}
		gotEngagement := engine.scoreEngagement(engagement)
		gotTiming := engine.scoreTiming(engagement)
		if gotEngagement < prevEngagement {
			t.Fatalf("engagement decreased at step %d: %d < %d", step, gotEngagement, prevEngagement)
		}
		if gotTiming < prevTiming {
			t.Fatalf("timing decreased at step %d: %d < %d", step, gotTiming, prevTiming)
		}
		prevEngagement, prevTiming = gotEngagement, gotTiming
	}

	prevBudget := -1
	for _, tier := range []PriceRange{PriceRangeBudget, PriceRangeMid, PriceRangePremium, PriceRangeLuxury} {
		got := engine.scoreBudget(BudgetIndicators{PriceRange: tier})
		if got < prevBudget {
			t.Fatalf("budget decreased at tier %s: %d < %d", tier, got, prevBudget)
		}
		prevBudget = got
	}
}

func TestClassify_ThresholdsAndPriorityAlignment(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	cases := []struct {
		total    int
		category Category
		priority Priority
	}{
		{100, CategoryHot, PriorityImmediate},
		{75, CategoryHot, PriorityImmediate},
		{74, CategoryWarm, PriorityFollowUp},
		{50, CategoryWarm, PriorityFollowUp},
		{49, CategoryCold, PriorityNurture},
		{0, CategoryCold, PriorityNurture},
	}

	for _, tc := range cases {
		category := engine.Classify(tc.total)
		if category != tc.category {
			t.Errorf("Classify(%d) = %s, want %s", tc.total, category, tc.category)
		}
		priority, _ := engine.tier(tc.total)
		if priority != tc.priority {
			t.Errorf("tier(%d) = %s, want %s", tc.total, priority, tc.priority)
		}
		if PriorityFor(category) != priority {
			t.Errorf("category %s and priority %s disagree", category, priority)
		}
	}
}

func TestCalculate_IsDeterministic(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	for _, profile := range []CustomerProfile{defaultProfile(), warmProfile(), hotProfile()} {
		first := engine.Calculate(profile)
		second := engine.Calculate(profile)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("expected identical results, got %+v and %+v", first, second)
		}
	}
}

func TestCalculate_ReadsThresholdsFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Categories.Hot = 30
	cfg.Categories.Warm = 20
	cfg.Recommendations.Immediate.ExpectedConversion = 90

	result := NewEngine(cfg).Calculate(defaultProfile())
	if result.Category != CategoryHot {
		t.Fatalf("expected hot with lowered thresholds, got %s", result.Category)
	}
	if result.Recommendations.ExpectedConversion != 90 {
		t.Fatalf("expected conversion 90 from config, got %d", result.Recommendations.ExpectedConversion)
	}
}

func TestEngine_IsSafeForConcurrentUse(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	want := engine.Calculate(hotProfile())

	done := make(chan LeadScore, 16)
	for i := 0; i < cap(done); i++ {
		go func() {
			done <- engine.Calculate(hotProfile())
		}()
	}
	for i := 0; i < cap(done); i++ {
		if got := <-done; !reflect.DeepEqual(got, want) {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
	}
}
