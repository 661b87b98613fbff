package scoring

// PriceRange is the stated or inferred spending tier of a customer.
type PriceRange string

const (
	PriceRangeBudget  PriceRange = "budget"
	PriceRangeMid     PriceRange = "mid"
	PriceRangePremium PriceRange = "premium"
	PriceRangeLuxury  PriceRange = "luxury"
)

// Valid reports whether r is one of the four known tiers.
func (r PriceRange) Valid() bool {
	switch r {
	case PriceRangeBudget, PriceRangeMid, PriceRangePremium, PriceRangeLuxury:
		return true
	}
	return false
}

type Lifestyle string

const (
	LifestyleActive       Lifestyle = "active"
	LifestyleProfessional Lifestyle = "professional"
	LifestyleSocial       Lifestyle = "social"
	LifestylePrivate      Lifestyle = "private"
)

func (l Lifestyle) Valid() bool {
	switch l {
	case LifestyleActive, LifestyleProfessional, LifestyleSocial, LifestylePrivate:
		return true
	}
	return false
}

// Category is the hot/warm/cold bucket derived from the total score.
type Category string

const (
	CategoryHot  Category = "hot"
	CategoryWarm Category = "warm"
	CategoryCold Category = "cold"
)

// Priority is the follow-up urgency recommended to sales staff.
// It always moves together with Category.
type Priority string

const (
	PriorityImmediate Priority = "immediate"
	PriorityFollowUp  Priority = "follow_up"
	PriorityNurture   Priority = "nurture"
)

// CustomerProfile is the fully populated input of a scoring call.
// Missing values are defaulted by the profile builder before they get here.
type CustomerProfile struct {
	Age              int              `json:"age"`
	SkinCondition    SkinCondition    `json:"skinCondition"`
	EngagementLevel  EngagementLevel  `json:"engagementLevel"`
	BudgetIndicators BudgetIndicators `json:"budgetIndicators"`
	Demographics     Demographics     `json:"demographics"`
}

type SkinCondition struct {
	// OverallScore is 0-100, higher is healthier.
	OverallScore float64  `json:"overallScore"`
	SkinAge      float64  `json:"skinAge"`
	Concerns     []string `json:"concerns"`
	UrgentIssues int      `json:"urgentIssues"`
}

type EngagementLevel struct {
	QuestionsAsked int `json:"questionsAsked"`
	// TimeSpentInAnalysis is measured in minutes.
	TimeSpentInAnalysis float64 `json:"timeSpentInAnalysis"`
	FollowUpInterest    bool    `json:"followUpInterest"`
	PriceInquiries      int     `json:"priceInquiries"`
	PackageInterest     *bool   `json:"packageInterest,omitempty"`
}

type BudgetIndicators struct {
	PriceRange          PriceRange `json:"priceRange"`
	TreatmentPreference []string   `json:"treatmentPreference"`
	PackageInterest     bool       `json:"packageInterest"`
}

type Demographics struct {
	Location   *string    `json:"location,omitempty"`
	Occupation *string    `json:"occupation,omitempty"`
	Lifestyle  *Lifestyle `json:"lifestyle,omitempty"`
}

// Breakdown holds the four 0-25 sub-scores.
type Breakdown struct {
	SkinNeedScore   int `json:"skinNeedScore"`
	EngagementScore int `json:"engagementScore"`
	BudgetScore     int `json:"budgetScore"`
	TimingScore     int `json:"timingScore"`
}

// Total returns the unclamped sum of the sub-scores.
func (b Breakdown) Total() int {
	return b.SkinNeedScore + b.EngagementScore + b.BudgetScore + b.TimingScore
}

type Recommendations struct {
	Priority           Priority `json:"priority"`
	SuggestedActions   []string `json:"suggestedActions"`
	ExpectedConversion int      `json:"expectedConversion"`
	EstimatedValue     int      `json:"estimatedValue"`
}

// LeadScore is the output of a scoring call. A new value is built on every call.
type LeadScore struct {
	TotalScore      int             `json:"totalScore"`
	Category        Category        `json:"category"`
	Confidence      int             `json:"confidence"`
	Reasoning       []string        `json:"reasoning"`
	Recommendations Recommendations `json:"recommendations"`
	Breakdown       Breakdown       `json:"breakdown"`
}
