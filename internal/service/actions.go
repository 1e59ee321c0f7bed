package service

import (
	"context"
	"sort"

	"github.com/incident-desk/backend/internal/fieldmap"
	"github.com/incident-desk/backend/internal/model"
	"github.com/incident-desk/backend/internal/registry"
)

// Action names exposed under /functions/<name>.
const (
	ActionAutomateIncidentResponse    = "automateIncidentResponse"
	ActionGeneratePostIncidentReview  = "generatePostIncidentReview"
	ActionGenerateArticleFromIncident = "generateArticleFromIncident"
	ActionSuggestKnowledgeArticles    = "suggestKnowledgeArticles"
	ActionGeneratePredictions         = "generatePredictions"
)

// ActionFunc - named action 실행 함수. 결과는 JSON 응답 바디로 그대로 쓰인다.
type ActionFunc func(ctx context.Context, req model.FunctionRequest, userID string) (any, error)

// Action looks up a named action.
func (s *AssistService) Action(name string) (ActionFunc, bool) {
	actions := map[string]ActionFunc{
		ActionAutomateIncidentResponse: func(ctx context.Context, req model.FunctionRequest, userID string) (any, error) {
			return s.AutomateIncidentResponse(ctx, req, userID)
		},
		ActionGeneratePostIncidentReview: func(ctx context.Context, req model.FunctionRequest, userID string) (any, error) {
			return s.GeneratePostIncidentReview(ctx, req, userID)
		},
		ActionGenerateArticleFromIncident: func(ctx context.Context, req model.FunctionRequest, userID string) (any, error) {
			return s.GenerateArticleFromIncident(ctx, req, userID)
		},
		ActionSuggestKnowledgeArticles: func(ctx context.Context, req model.FunctionRequest, _ string) (any, error) {
			return s.SuggestKnowledgeArticles(ctx, req)
		},
		ActionGeneratePredictions: func(ctx context.Context, _ model.FunctionRequest, userID string) (any, error) {
			return s.GeneratePredictions(ctx, userID)
		},
	}
	fn, ok := actions[name]
	return fn, ok
}

// ActionNames returns the registered action names in sorted order.
func ActionNames() []string {
	names := []string{
		ActionAutomateIncidentResponse,
		ActionGeneratePostIncidentReview,
		ActionGenerateArticleFromIncident,
		ActionSuggestKnowledgeArticles,
		ActionGeneratePredictions,
	}
	sort.Strings(names)
	return names
}

// AutomateIncidentResponse persists a completed IncidentAutomation holding
// the response plan.
func (s *AssistService) AutomateIncidentResponse(ctx context.Context, req model.FunctionRequest, userID string) (map[string]any, error) {
	inc, err := s.loadIncident(ctx, req)
	if err != nil {
		return nil, err
	}
	plan := s.ResponsePlan(ctx, inc)

	rec, err := s.store.Create(ctx, s.table(registry.KindIncidentAutomation), model.Document{
		"incidentId":       inc.ID,
		"automationType":   ActionAutomateIncidentResponse,
		"status":           "completed",
		"executedAt":       fieldmap.FormatTime(s.now()),
		"result":           plan.Payload,
		"generationSource": plan.Source,
	})
	if err != nil {
		return nil, err
	}
	s.audit(ctx, inc.ID, ActionAutomateIncidentResponse, userID, plan.Source, rec.ID)
	return wire(rec), nil
}

func (s *AssistService) GeneratePostIncidentReview(ctx context.Context, req model.FunctionRequest, userID string) (map[string]any, error) {
	inc, err := s.loadIncident(ctx, req)
	if err != nil {
		return nil, err
	}
	review := s.ReviewDraft(ctx, inc)
	p := review.Payload

	rec, err := s.store.Create(ctx, s.table(registry.KindPostIncidentReview), model.Document{
		"incidentId":        inc.ID,
		"executiveSummary":  p.ExecutiveSummary,
		"rootCauseAnalysis": p.RootCauseAnalysis,
		"timeline":          p.Timeline,
		"impactAssessment":  p.ImpactAssessment,
		"keyLearnings":      p.KeyLearnings,
		"followUpActions":   p.FollowUpActions,
		"confidenceScore":   p.ConfidenceScore,
		"generationSource":  review.Source,
	})
	if err != nil {
		return nil, err
	}
	s.audit(ctx, inc.ID, ActionGeneratePostIncidentReview, userID, review.Source, rec.ID)
	return wire(rec), nil
}

// GenerateArticleFromIncident persists a published article. The author comes
// from the request body, not from the resolved user.
func (s *AssistService) GenerateArticleFromIncident(ctx context.Context, req model.FunctionRequest, userID string) (map[string]any, error) {
	inc, err := s.loadIncident(ctx, req)
	if err != nil {
		return nil, err
	}
	article := s.ArticleDraft(ctx, inc)
	p := article.Payload

	rec, err := s.store.Create(ctx, s.table(registry.KindKnowledgeBaseArticle), model.Document{
		"title":            p.Title,
		"summary":          p.Summary,
		"content":          p.Content,
		"category":         p.Category,
		"status":           "published",
		"author":           req.Author,
		"tags":             p.Tags,
		"relatedSystems":   p.RelatedSystems,
		"generationSource": article.Source,
	})
	if err != nil {
		return nil, err
	}
	s.audit(ctx, inc.ID, ActionGenerateArticleFromIncident, userID, article.Source, rec.ID)
	return wire(rec), nil
}

// SuggestKnowledgeArticles keeps the recently updated articles whose related
// systems share at least one entry with the incident's affected systems.
func (s *AssistService) SuggestKnowledgeArticles(ctx context.Context, req model.FunctionRequest) ([]map[string]any, error) {
	inc, err := s.loadIncident(ctx, req)
	if err != nil {
		return nil, err
	}
	systems := make(map[string]struct{})
	for _, sys := range fieldmap.Strings(inc.Data["affectedSystems"]) {
		systems[sys] = struct{}{}
	}

	articles, err := s.store.List(ctx, s.table(registry.KindKnowledgeBaseArticle), model.ListQuery{
		Sort:  &model.SortOrder{Field: model.FieldUpdatedAt, Descending: true},
		Limit: recentWindow,
	})
	if err != nil {
		return nil, err
	}

	matched := make([]map[string]any, 0, len(articles))
	for _, a := range articles {
		for _, sys := range fieldmap.Strings(a.Data["relatedSystems"]) {
			if _, ok := systems[sys]; ok {
				matched = append(matched, wire(a))
				break
			}
		}
	}
	return matched, nil
}

// GeneratePredictions creates one PredictiveAlert for each of the newest
// incidents, at most three. Provider calls run sequentially.
func (s *AssistService) GeneratePredictions(ctx context.Context, userID string) ([]map[string]any, error) {
	incidents, err := s.store.List(ctx, s.table(registry.KindIncident), model.ListQuery{
		Sort:  &model.SortOrder{Field: model.FieldCreatedAt, Descending: true},
		Limit: recentWindow,
	})
	if err != nil {
		return nil, err
	}
	if len(incidents) > predictionBatch {
		incidents = incidents[:predictionBatch]
	}

	created := make([]map[string]any, 0, len(incidents))
	for _, inc := range incidents {
		pred := s.PredictionDraft(ctx, inc)
		p := pred.Payload

		rec, err := s.store.Create(ctx, s.table(registry.KindPredictiveAlert), model.Document{
			"predictedIssue":      p.PredictedIssue,
			"description":         p.Description,
			"severity":            p.Severity,
			"likelihood":          p.Likelihood,
			"confidenceScore":     p.ConfidenceScore,
			"predictedTimeframe":  p.PredictedTimeframe,
			"contributingFactors": p.ContributingFactors,
			"preventativeActions": p.PreventativeActions,
			"affectedSystems":     p.AffectedSystems,
			"status":              "active",
			"generationSource":    pred.Source,
		})
		if err != nil {
			return nil, err
		}
		s.audit(ctx, inc.ID, ActionGeneratePredictions, userID, pred.Source, rec.ID)
		created = append(created, wire(rec))
	}
	return created, nil
}
