package scoring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultVersion identifies the default point tables. Bump it whenever a
// default changes so cached and stored results can be told apart.
const DefaultVersion = "clinic-2026-v1"

// Config is the single source of every tunable number the engine uses.
// Scorers read only from here; there are no inline point tables.
type Config struct {
	Version       string  `yaml:"version"`
	MaxSubScore   float64 `yaml:"maxSubScore"`
	MaxTotalScore float64 `yaml:"maxTotalScore"`

	SkinNeed        SkinNeedConfig       `yaml:"skinNeed"`
	Engagement      EngagementConfig     `yaml:"engagement"`
	Budget          BudgetConfig         `yaml:"budget"`
	Timing          TimingConfig         `yaml:"timing"`
	Categories      CategoryThresholds   `yaml:"categories"`
	Confidence      ConfidenceConfig     `yaml:"confidence"`
	Recommendations RecommendationConfig `yaml:"recommendations"`
	Reasoning       ReasoningConfig      `yaml:"reasoning"`
	Profile         ProfileDefaults      `yaml:"profile"`
}

// SkinNeedConfig converts skin-condition severity into treatment need.
type SkinNeedConfig struct {
	HealthyScore         float64 `yaml:"healthyScore"`   // overallScore of perfectly healthy skin
	BasePoints           float64 `yaml:"basePoints"`     // points at overallScore 0
	BaselineSkinAge      float64 `yaml:"baselineSkinAge"`
	PointsPerAgeYear     float64 `yaml:"pointsPerAgeYear"`
	MaxAgePoints         float64 `yaml:"maxAgePoints"`
	PointsPerUrgentIssue float64 `yaml:"pointsPerUrgentIssue"`
	MaxUrgentPoints      float64 `yaml:"maxUrgentPoints"`
}

type EngagementConfig struct {
	PointsPerQuestion     float64 `yaml:"pointsPerQuestion"`
	MaxQuestionPoints     float64 `yaml:"maxQuestionPoints"`
	PointsPerMinute       float64 `yaml:"pointsPerMinute"`
	MaxTimePoints         float64 `yaml:"maxTimePoints"`
	FollowUpPoints        float64 `yaml:"followUpPoints"`
	PointsPerPriceInquiry float64 `yaml:"pointsPerPriceInquiry"`
	MaxPriceInquiryPoints float64 `yaml:"maxPriceInquiryPoints"`
}

type BudgetConfig struct {
	TierPoints map[PriceRange]float64 `yaml:"tierPoints"`
	// DefaultPoints applies to unknown or missing price ranges.
	DefaultPoints       float64 `yaml:"defaultPoints"`
	PackagePoints       float64 `yaml:"packagePoints"`
	PreferenceThreshold int     `yaml:"preferenceThreshold"` // bonus applies above this many preferences
	PreferencePoints    float64 `yaml:"preferencePoints"`
}

// TimingConfig infers readiness to buy from engagement proxies only.
type TimingConfig struct {
	BasePoints            float64 `yaml:"basePoints"`
	LongSessionMinutes    float64 `yaml:"longSessionMinutes"`
	LongSessionPoints     float64 `yaml:"longSessionPoints"`
	MediumSessionMinutes  float64 `yaml:"mediumSessionMinutes"`
	MediumSessionPoints   float64 `yaml:"mediumSessionPoints"`
	FollowUpPoints        float64 `yaml:"followUpPoints"`
	PriceInquiryThreshold int     `yaml:"priceInquiryThreshold"`
	PriceInquiryPoints    float64 `yaml:"priceInquiryPoints"`
}

// CategoryThresholds are inclusive lower bounds, evaluated hot first.
type CategoryThresholds struct {
	Hot  int `yaml:"hot"`
	Warm int `yaml:"warm"`
}

type ConfidenceConfig struct {
	AgePoints          int `yaml:"agePoints"`
	OverallScorePoints int `yaml:"overallScorePoints"`
	TimeSpentPoints    int `yaml:"timeSpentPoints"`
	PriceRangePoints   int `yaml:"priceRangePoints"`
	ConcernsPoints     int `yaml:"concernsPoints"`
	QuestionsPoints    int `yaml:"questionsPoints"`
	Max                int `yaml:"max"`
}

type RecommendationConfig struct {
	Immediate TierConfig `yaml:"immediate"`
	FollowUp  TierConfig `yaml:"followUp"`
	Nurture   TierConfig `yaml:"nurture"`
}

// TierConfig describes one priority tier. Actions are message keys.
type TierConfig struct {
	ExpectedConversion int                `yaml:"expectedConversion"`
	Values             map[PriceRange]int `yaml:"values"`
	DefaultValue       int                `yaml:"defaultValue"`
	Actions            []MessageKey       `yaml:"actions"`
}

type ReasoningConfig struct {
	StrongThreshold       int `yaml:"strongThreshold"`
	ModerateThreshold     int `yaml:"moderateThreshold"`
	UrgentIssuesThreshold int `yaml:"urgentIssuesThreshold"`
	PriceInquiryThreshold int `yaml:"priceInquiryThreshold"`
}

// ProfileDefaults are the fallbacks the profile builder applies to raw records.
type ProfileDefaults struct {
	Age               int        `yaml:"age"`
	OverallScore      float64    `yaml:"overallScore"`
	SkinAge           float64    `yaml:"skinAge"`
	TimeSpentMinutes  float64    `yaml:"timeSpentMinutes"`
	UrgentLevel       string     `yaml:"urgentLevel"`
	FallbackPriceMin  float64    `yaml:"fallbackPriceMin"`
	FallbackPriceMax  float64    `yaml:"fallbackPriceMax"`
	LuxuryFrom        float64    `yaml:"luxuryFrom"`
	PremiumFrom       float64    `yaml:"premiumFrom"`
	MidFrom           float64    `yaml:"midFrom"`
	DefaultPriceRange PriceRange `yaml:"defaultPriceRange"`
}

// DefaultConfig returns the reference point tables.
func DefaultConfig() Config {
	return Config{
		Version:       DefaultVersion,
		MaxSubScore:   25,
		MaxTotalScore: 100,
		SkinNeed: SkinNeedConfig{
			HealthyScore:         100,
			BasePoints:           15,
			BaselineSkinAge:      25,
			PointsPerAgeYear:     0.5,
			MaxAgePoints:         5,
			PointsPerUrgentIssue: 2,
			MaxUrgentPoints:      5,
		},
		Engagement: EngagementConfig{
			PointsPerQuestion:     2,
			MaxQuestionPoints:     8,
			PointsPerMinute:       0.5,
			MaxTimePoints:         8,
			FollowUpPoints:        5,
			PointsPerPriceInquiry: 1,
			MaxPriceInquiryPoints: 4,
		},
		Budget: BudgetConfig{
			TierPoints: map[PriceRange]float64{
				PriceRangeLuxury:  25,
				PriceRangePremium: 20,
				PriceRangeMid:     15,
				PriceRangeBudget:  10,
			},
			DefaultPoints:       10,
			PackagePoints:       3,
			PreferenceThreshold: 2,
			PreferencePoints:    2,
		},
		Timing: TimingConfig{
			BasePoints:            10,
			LongSessionMinutes:    15,
			LongSessionPoints:     8,
			MediumSessionMinutes:  8,
			MediumSessionPoints:   5,
			FollowUpPoints:        5,
			PriceInquiryThreshold: 2,
			PriceInquiryPoints:    7,
		},
		Categories: CategoryThresholds{Hot: 75, Warm: 50},
		Confidence: ConfidenceConfig{
			AgePoints:          15,
			OverallScorePoints: 20,
			TimeSpentPoints:    20,
			PriceRangePoints:   15,
			ConcernsPoints:     15,
			QuestionsPoints:    15,
			Max:                100,
		},
		Recommendations: RecommendationConfig{
			Immediate: TierConfig{
				ExpectedConversion: 70,
				Values: map[PriceRange]int{
					PriceRangeLuxury:  80000,
					PriceRangePremium: 50000,
					PriceRangeMid:     25000,
				},
				DefaultValue: 15000,
				Actions: []MessageKey{
					MsgActionCallWithinTwoHours,
					MsgActionLimitedTimeOffer,
					MsgActionSameDayConsultation,
					MsgActionFullQuotation,
				},
			},
			FollowUp: TierConfig{
				ExpectedConversion: 40,
				Values: map[PriceRange]int{
					PriceRangeLuxury:  60000,
					PriceRangePremium: 35000,
					PriceRangeMid:     18000,
				},
				DefaultValue: 12000,
				Actions: []MessageKey{
					MsgActionFollowUpWithinDay,
					MsgActionSendTreatmentInfo,
					MsgActionInviteWorkshop,
					MsgActionOfferRemoteConsult,
				},
			},
			Nurture: TierConfig{
				ExpectedConversion: 15,
				DefaultValue:       10000,
				Actions: []MessageKey{
					MsgActionNurtureCampaign,
					MsgActionSkincareContent,
					MsgActionInviteEvents,
					MsgActionRecheckLater,
				},
			},
		},
		Reasoning: ReasoningConfig{
			StrongThreshold:       20,
			ModerateThreshold:     15,
			UrgentIssuesThreshold: 2,
			PriceInquiryThreshold: 2,
		},
		Profile: ProfileDefaults{
			Age:               25,
			OverallScore:      70,
			SkinAge:           25,
			TimeSpentMinutes:  5,
			UrgentLevel:       "high",
			FallbackPriceMin:  10000,
			FallbackPriceMax:  15000,
			LuxuryFrom:        50000,
			PremiumFrom:       20000,
			MidFrom:           10000,
			DefaultPriceRange: PriceRangeMid,
		},
	}
}

// LoadConfigFile layers a YAML override file on top of DefaultConfig.
// Keys absent from the file keep their default values.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read scoring config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse scoring config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configs the engine cannot score with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Version) == "" {
		errs = append(errs, errors.New("version is required"))
	}
	if c.MaxSubScore <= 0 {
		errs = append(errs, errors.New("maxSubScore must be positive"))
	}
	if c.MaxTotalScore <= 0 {
		errs = append(errs, errors.New("maxTotalScore must be positive"))
	}
	if c.Categories.Warm >= c.Categories.Hot {
		errs = append(errs, fmt.Errorf("categories.warm (%d) must be below categories.hot (%d)", c.Categories.Warm, c.Categories.Hot))
	}
	if c.SkinNeed.HealthyScore <= 0 {
		errs = append(errs, errors.New("skinNeed.healthyScore must be positive"))
	}
	if c.Confidence.Max <= 0 {
		errs = append(errs, errors.New("confidence.max must be positive"))
	}
	if c.Reasoning.ModerateThreshold > c.Reasoning.StrongThreshold {
		errs = append(errs, errors.New("reasoning.moderateThreshold must not exceed reasoning.strongThreshold"))
	}
	if c.Profile.FallbackPriceMin > c.Profile.FallbackPriceMax {
		errs = append(errs, errors.New("profile.fallbackPriceMin must not exceed profile.fallbackPriceMax"))
	}
	if !c.Profile.DefaultPriceRange.Valid() {
		errs = append(errs, fmt.Errorf("profile.defaultPriceRange %q is not a known tier", c.Profile.DefaultPriceRange))
	}
	for tier, points := range c.Budget.TierPoints {
		if !tier.Valid() {
			errs = append(errs, fmt.Errorf("budget.tierPoints has unknown tier %q", tier))
		}
		if points < 0 {
			errs = append(errs, fmt.Errorf("budget.tierPoints[%s] must not be negative", tier))
		}
	}
	tiers := []struct {
		name string
		cfg  TierConfig
	}{
		{"immediate", c.Recommendations.Immediate},
		{"followUp", c.Recommendations.FollowUp},
		{"nurture", c.Recommendations.Nurture},
	}
	for _, tier := range tiers {
		if tier.cfg.ExpectedConversion < 0 || tier.cfg.ExpectedConversion > 100 {
			errs = append(errs, fmt.Errorf("recommendations.%s.expectedConversion must be within 0-100", tier.name))
		}
		for _, key := range tier.cfg.Actions {
			if !key.known() {
				errs = append(errs, fmt.Errorf("recommendations.%s.actions has unknown message key %q", tier.name, key))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid scoring config: %w", errors.Join(errs...))
	}
	return nil
}
