package service

import (
	"clinic_portal_backend/internal/leads/profile"
	"clinic_portal_backend/internal/leads/repository"
	"clinic_portal_backend/internal/leads/scoring"
	"clinic_portal_backend/internal/leads/transport"
	"clinic_portal_backend/platform/sanitize"
)

func toCustomerProfile(req transport.CustomerProfileRequest) scoring.CustomerProfile {
	return scoring.CustomerProfile{
		Age: req.Age,
		SkinCondition: scoring.SkinCondition{
			OverallScore: req.SkinCondition.OverallScore,
			SkinAge:      req.SkinCondition.SkinAge,
			Concerns:     nonNil(sanitize.Texts(req.SkinCondition.Concerns)),
			UrgentIssues: req.SkinCondition.UrgentIssues,
		},
		EngagementLevel: scoring.EngagementLevel{
			QuestionsAsked:      req.EngagementLevel.QuestionsAsked,
			TimeSpentInAnalysis: req.EngagementLevel.TimeSpentInAnalysis,
			FollowUpInterest:    req.EngagementLevel.FollowUpInterest,
			PriceInquiries:      req.EngagementLevel.PriceInquiries,
			PackageInterest:     req.EngagementLevel.PackageInterest,
		},
		BudgetIndicators: scoring.BudgetIndicators{
			PriceRange:          scoring.PriceRange(req.BudgetIndicators.PriceRange),
			TreatmentPreference: nonNil(sanitize.Texts(req.BudgetIndicators.TreatmentPreference)),
			PackageInterest:     req.BudgetIndicators.PackageInterest,
		},
		Demographics: toDemographics(&req.Demographics),
	}
}

func toDemographics(req *transport.DemographicsRequest) scoring.Demographics {
	if req == nil {
		return scoring.Demographics{}
	}
	d := scoring.Demographics{Location: sanitize.TextPtr(req.Location), Occupation: sanitize.TextPtr(req.Occupation)}
	if req.Lifestyle != nil {
		lifestyle := scoring.Lifestyle(*req.Lifestyle)
		d.Lifestyle = &lifestyle
	}
	return d
}

func toAnalysisData(req transport.AnalysisRequest) profile.AnalysisData {
	data := profile.AnalysisData{
		OverallScore:    req.OverallScore,
		SkinAge:         req.SkinAge,
		Recommendations: make([]profile.TreatmentRecommendation, 0, len(req.Recommendations)),
	}
	if req.CustomerInfo != nil {
		data.CustomerInfo = &profile.CustomerInfo{
			Age:          req.CustomerInfo.Age,
			SkinConcerns: sanitize.Texts(req.CustomerInfo.SkinConcerns),
		}
	}
	for _, rec := range req.Recommendations {
		data.Recommendations = append(data.Recommendations, profile.TreatmentRecommendation{
			Type:    rec.Type,
			Urgency: rec.Urgency,
			Price:   rec.Price,
		})
	}
	return data
}

func toEngagementData(req transport.EngagementRequest) profile.EngagementData {
	data := profile.EngagementData{
		QuestionsAsked:      req.QuestionsAsked,
		TimeSpentInAnalysis: req.TimeSpentInAnalysis,
		FollowUpInterest:    req.FollowUpInterest,
		PriceInquiries:      req.PriceInquiries,
		PackageInterest:     req.PackageInterest,
	}
	if req.Demographics != nil {
		d := toDemographics(req.Demographics)
		data.Demographics = &d
	}
	return data
}

func toLeadScoreResponse(row repository.LeadScore) transport.LeadScoreResponse {
	return transport.LeadScoreResponse{
		ID:            row.ID,
		CustomerID:    row.CustomerID,
		CustomerPhone: derefString(row.CustomerPhone),
		LeadScore: scoring.LeadScore{
			TotalScore:      row.TotalScore,
			Category:        row.Category,
			Confidence:      row.Confidence,
			Reasoning:       row.Reasoning,
			Recommendations: row.Recommendations,
			Breakdown:       row.Breakdown,
		},
		Locale:         row.Locale,
		ConfigVersion:  row.ConfigVersion,
		RescoredFromID: row.RescoredFromID,
		CreatedAt:      row.CreatedAt,
	}
}

func toLeadScoreList(rows []repository.LeadScore) transport.LeadScoreListResponse {
	items := make([]transport.LeadScoreResponse, len(rows))
	for i, row := range rows {
		items[i] = toLeadScoreResponse(row)
	}
	return transport.LeadScoreListResponse{Items: items}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
