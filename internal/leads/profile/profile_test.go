package profile

import (
	"reflect"
	"testing"

	"clinic_portal_backend/internal/leads/scoring"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestParsePriceRange(t *testing.T) {
	cases := []struct {
		in       string
		min, max float64
		ok       bool
	}{
		{"20,000-30,000", 20000, 30000, true},
		{"฿1,500 - 3,000 บาท", 1500, 3000, true},
		{"50000-90000", 50000, 90000, true},
		{"1,000,000-2,000,000", 1000000, 2000000, true},
		{"contact us", 0, 0, false},
		{"", 0, 0, false},
		{"20,000", 0, 0, false},
	}

	for _, tc := range cases {
		min, max, ok := ParsePriceRange(tc.in)
		if ok != tc.ok || min != tc.min || max != tc.max {
			t.Errorf("ParsePriceRange(%q) = (%v, %v, %v), want (%v, %v, %v)", tc.in, min, max, ok, tc.min, tc.max, tc.ok)
		}
	}
}

func TestEstimateBudgetRange(t *testing.T) {
	cases := []struct {
		name   string
		prices []string
		want   scoring.PriceRange
	}{
		{"empty list defaults to mid", nil, scoring.PriceRangeMid},
		{"premium midpoint", []string{"20,000-30,000"}, scoring.PriceRangePremium},
		{"unparsable falls back to 12500", []string{"contact us"}, scoring.PriceRangeMid},
		{"luxury boundary inclusive", []string{"40,000-60,000"}, scoring.PriceRangeLuxury},
		{"premium boundary inclusive", []string{"10,000-30,000"}, scoring.PriceRangePremium},
		{"budget below mid", []string{"2,000-4,000"}, scoring.PriceRangeBudget},
		{"averages every entry", []string{"2,000-4,000", "90,000-110,000"}, scoring.PriceRangeLuxury},
		{"fallback joins the average", []string{"1,000-3,000", "ask staff"}, scoring.PriceRangeBudget},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recs := make([]TreatmentRecommendation, 0, len(tc.prices))
			for _, p := range tc.prices {
				recs = append(recs, TreatmentRecommendation{Type: "laser", Price: p})
			}
			if got := EstimateBudgetRange(recs); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestCreateCustomerProfile_Defaults(t *testing.T) {
	profile := CreateCustomerProfile(AnalysisData{}, EngagementData{})

	if profile.Age != 25 {
		t.Fatalf("expected age 25, got %d", profile.Age)
	}
	if profile.SkinCondition.OverallScore != 70 || profile.SkinCondition.SkinAge != 25 {
		t.Fatalf("expected overall 70 / skin age 25, got %v / %v", profile.SkinCondition.OverallScore, profile.SkinCondition.SkinAge)
	}
	if profile.SkinCondition.Concerns == nil || len(profile.SkinCondition.Concerns) != 0 {
		t.Fatalf("expected empty concerns, got %v", profile.SkinCondition.Concerns)
	}
	e := profile.EngagementLevel
	if e.QuestionsAsked != 0 || e.TimeSpentInAnalysis != 5 || e.FollowUpInterest || e.PriceInquiries != 0 {
		t.Fatalf("unexpected engagement defaults %+v", e)
	}
	if e.PackageInterest == nil || *e.PackageInterest {
		t.Fatalf("expected packageInterest false, got %v", e.PackageInterest)
	}
	if profile.BudgetIndicators.PriceRange != scoring.PriceRangeMid {
		t.Fatalf("expected mid price range, got %s", profile.BudgetIndicators.PriceRange)
	}

	// Scored as-is, the default profile is the reference cold lead.
	result := scoring.CalculateLeadScore(profile)
	if result.TotalScore != 33 || result.Category != scoring.CategoryCold {
		t.Fatalf("expected 33/cold, got %d/%s", result.TotalScore, result.Category)
	}
}

func TestCreateCustomerProfile_MapsRecords(t *testing.T) {
	lifestyle := scoring.LifestyleActive
	location := "Bangkok"
	analysis := AnalysisData{
		OverallScore: floatPtr(42),
		CustomerInfo: &CustomerInfo{Age: intPtr(34), SkinConcerns: []string{"melasma", "pores"}},
		Recommendations: []TreatmentRecommendation{
			{Type: "laser", Urgency: "high", Price: "20,000-30,000"},
			{Type: "peel", Urgency: "medium", Price: "5,000-7,000"},
			{Type: "filler", Urgency: "high", Price: "call"},
		},
	}
	followUp := true
	engagement := EngagementData{
		QuestionsAsked:      intPtr(4),
		TimeSpentInAnalysis: floatPtr(12),
		FollowUpInterest:    &followUp,
		PriceInquiries:      intPtr(3),
		PackageInterest:     &followUp,
		Demographics:        &scoring.Demographics{Location: &location, Lifestyle: &lifestyle},
	}

	profile := CreateCustomerProfile(analysis, engagement)

	if profile.Age != 34 {
		t.Fatalf("expected age 34, got %d", profile.Age)
	}
	if profile.SkinCondition.SkinAge != 34 {
		t.Fatalf("expected skin age to fall back to customer age, got %v", profile.SkinCondition.SkinAge)
	}
	if profile.SkinCondition.UrgentIssues != 2 {
		t.Fatalf("expected 2 urgent issues, got %d", profile.SkinCondition.UrgentIssues)
	}
	wantPrefs := []string{"laser", "peel", "filler"}
	if !reflect.DeepEqual(profile.BudgetIndicators.TreatmentPreference, wantPrefs) {
		t.Fatalf("expected preferences %v, got %v", wantPrefs, profile.BudgetIndicators.TreatmentPreference)
	}
	// (25000 + 6000 + 12500) / 3 = 14500
	if profile.BudgetIndicators.PriceRange != scoring.PriceRangeMid {
		t.Fatalf("expected mid, got %s", profile.BudgetIndicators.PriceRange)
	}
	if !profile.BudgetIndicators.PackageInterest || !profile.EngagementLevel.FollowUpInterest {
		t.Fatalf("expected pass-through booleans, got %+v", profile)
	}
	if profile.Demographics.Location == nil || *profile.Demographics.Location != "Bangkok" {
		t.Fatalf("expected demographics pass-through, got %+v", profile.Demographics)
	}
}

func TestCreateCustomerProfile_ExplicitSkinAgeWins(t *testing.T) {
	analysis := AnalysisData{
		SkinAge:      floatPtr(41),
		CustomerInfo: &CustomerInfo{Age: intPtr(30)},
	}
	profile := CreateCustomerProfile(analysis, EngagementData{})
	if profile.SkinCondition.SkinAge != 41 {
		t.Fatalf("expected skin age 41, got %v", profile.SkinCondition.SkinAge)
	}
}

func TestCreateCustomerProfile_IsIdempotent(t *testing.T) {
	analysis := AnalysisData{
		OverallScore:    floatPtr(55),
		Recommendations: []TreatmentRecommendation{{Type: "laser", Urgency: "high", Price: "30,000-45,000"}},
	}
	engagement := EngagementData{QuestionsAsked: intPtr(2)}

	first := CreateCustomerProfile(analysis, engagement)
	second := CreateCustomerProfile(analysis, engagement)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical profiles, got %+v and %+v", first, second)
	}
	if !reflect.DeepEqual(scoring.CalculateLeadScore(first), scoring.CalculateLeadScore(second)) {
		t.Fatalf("expected identical scores")
	}
}

func TestBuilder_UsesConfiguredDefaults(t *testing.T) {
	defaults := scoring.DefaultConfig().Profile
	defaults.Age = 30
	defaults.DefaultPriceRange = scoring.PriceRangePremium

	profile := NewBuilder(defaults).Build(AnalysisData{}, EngagementData{})
	if profile.Age != 30 {
		t.Fatalf("expected configured age 30, got %d", profile.Age)
	}
	if profile.BudgetIndicators.PriceRange != scoring.PriceRangePremium {
		t.Fatalf("expected configured price range, got %s", profile.BudgetIndicators.PriceRange)
	}
}
