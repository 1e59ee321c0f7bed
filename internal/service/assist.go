package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/incident-desk/backend/internal/client"
	"github.com/incident-desk/backend/internal/db"
	"github.com/incident-desk/backend/internal/fieldmap"
	"github.com/incident-desk/backend/internal/model"
	"github.com/incident-desk/backend/internal/registry"
	tmpl "github.com/incident-desk/backend/internal/template"
)

const (
	recentWindow    = 10
	predictionBatch = 3
	systemActor     = "system"
)

// Completer - completion provider (client.CompletionClient)
type Completer interface {
	Complete(ctx context.Context, req client.CompletionRequest) (string, error)
}

// AssistService - AI passthrough와 named action("functions") 처리
// completer가 nil이면 provider 미설정 상태로 동작한다.
type AssistService struct {
	store     RecordStore
	registry  *registry.Registry
	completer Completer
	now       func() time.Time
}

func NewAssistService(store RecordStore, reg *registry.Registry, completer Completer) *AssistService {
	return &AssistService{
		store:     store,
		registry:  reg,
		completer: completer,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// InvokeLLM forwards a prompt as-is. Provider errors are returned unchanged.
func (s *AssistService) InvokeLLM(ctx context.Context, req model.InvokeLLMRequest) (string, error) {
	if s.completer == nil {
		return "", ErrProviderNotConfigured
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return "", validationError("Missing prompt")
	}
	return s.completer.Complete(ctx, client.CompletionRequest{
		System: req.System,
		Prompt: req.Prompt,
	})
}

// ============================================================================
// Generation: provider 결과 또는 fallback
// ============================================================================

// completeJSON asks the provider for a JSON object about the incident.
// ok is false when the provider is absent, fails, or returns nothing usable.
func (s *AssistService) completeJSON(ctx context.Context, mode promptMode, inc model.Record) (map[string]any, bool) {
	if s.completer == nil {
		return nil, false
	}
	prompt, err := incidentPrompt(inc)
	if err != nil {
		log.Printf("[Assist] failed to build %s prompt for incident %s: %v", mode, inc.ID, err)
		return nil, false
	}
	raw, err := s.completer.Complete(ctx, client.CompletionRequest{
		System: systemPrompts[mode],
		Prompt: prompt,
		JSON:   true,
	})
	if err != nil {
		log.Printf("[Assist] %s generation failed for incident %s, using fallback: %v", mode, inc.ID, err)
		return nil, false
	}
	obj, ok := parseObject(raw)
	if !ok {
		log.Printf("[Assist] %s generation for incident %s returned no JSON object, using fallback", mode, inc.ID)
		return nil, false
	}
	return obj, true
}

func (s *AssistService) ResponsePlan(ctx context.Context, inc model.Record) model.Generation[model.ResponsePlan] {
	data := tmpl.IncidentDataFromRecord(inc)
	obj, ok := s.completeJSON(ctx, modeResponse, inc)
	if !ok {
		return model.Fallback(model.ResponsePlan{
			Summary:          tmpl.Render(tmpl.ResponseSummary, &data),
			ImmediateActions: []string{"Assess impact", "Engage owners", "Update status"},
			CommsPlan:        []string{"Send initial comms", "Provide updates every 30 minutes"},
			Owners:           []string{},
		})
	}
	summary, _ := pickString(obj, "summary")
	actions, _ := pickStrings(obj, "immediate_actions", "immediateActions")
	comms, _ := pickStrings(obj, "comms_plan", "commsPlan")
	owners, _ := pickStrings(obj, "owners")
	return model.Generated(model.ResponsePlan{
		Summary:          summary,
		ImmediateActions: orEmpty(actions),
		CommsPlan:        orEmpty(comms),
		Owners:           orEmpty(owners),
	})
}

func (s *AssistService) ReviewDraft(ctx context.Context, inc model.Record) model.Generation[model.ReviewDraft] {
	data := tmpl.IncidentDataFromRecord(inc)
	obj, ok := s.completeJSON(ctx, modeReview, inc)
	if !ok {
		rca := "TBD"
		confidence := 0.5
		return model.Fallback(model.ReviewDraft{
			ExecutiveSummary:  tmpl.Render(tmpl.ReviewSummary, &data),
			RootCauseAnalysis: &rca,
			KeyLearnings:      []string{},
			FollowUpActions:   []string{},
			ConfidenceScore:   &confidence,
		})
	}
	summary, _ := pickString(obj, "executive_summary", "executiveSummary")
	learnings, _ := pickStrings(obj, "key_learnings", "keyLearnings")
	followUps, _ := pickStrings(obj, "follow_up_actions", "followUpActions")
	timeline := obj["timeline"]
	return model.Generated(model.ReviewDraft{
		ExecutiveSummary:  summary,
		RootCauseAnalysis: pickStringPtr(obj, "root_cause_analysis", "rootCauseAnalysis"),
		Timeline:          timeline,
		ImpactAssessment:  pickStringPtr(obj, "impact_assessment", "impactAssessment"),
		KeyLearnings:      orEmpty(learnings),
		FollowUpActions:   orEmpty(followUps),
		ConfidenceScore:   pickNumberPtr(obj, "confidence_score", "confidenceScore"),
	})
}

func (s *AssistService) ArticleDraft(ctx context.Context, inc model.Record) model.Generation[model.ArticleDraft] {
	data := tmpl.IncidentDataFromRecord(inc)
	fallbackTitle := tmpl.Render(tmpl.ArticleTitle, &data)
	obj, ok := s.completeJSON(ctx, modeArticle, inc)
	if !ok {
		summary := tmpl.ArticleSummary
		return model.Fallback(model.ArticleDraft{
			Title:          fallbackTitle,
			Summary:        &summary,
			Content:        data.Description,
			Category:       "general",
			Tags:           []string{},
			RelatedSystems: orEmpty(data.AffectedSystems),
		})
	}
	title, ok := pickString(obj, "title")
	if !ok {
		title = fallbackTitle
	}
	content, _ := pickString(obj, "content")
	category, ok := pickString(obj, "category")
	if !ok {
		category = "general"
	}
	tags, _ := pickStrings(obj, "tags")
	related, _ := pickStrings(obj, "related_systems", "relatedSystems")
	return model.Generated(model.ArticleDraft{
		Title:          title,
		Summary:        pickStringPtr(obj, "summary"),
		Content:        content,
		Category:       category,
		Tags:           orEmpty(tags),
		RelatedSystems: orEmpty(related),
	})
}

// PredictionDraft builds the rule-based estimate for an incident and
// overlays any fields the provider returned.
func (s *AssistService) PredictionDraft(ctx context.Context, inc model.Record) model.Generation[model.PredictionDraft] {
	base := basePrediction(inc)
	obj, ok := s.completeJSON(ctx, modePrediction, inc)
	if !ok {
		return model.Fallback(base)
	}

	draft := base
	if v, ok := pickString(obj, "predicted_issue", "predictedIssue"); ok {
		draft.PredictedIssue = v
	}
	if v := pickStringPtr(obj, "description"); v != nil {
		draft.Description = v
	}
	if v, ok := pickString(obj, "severity"); ok {
		draft.Severity = v
	}
	if v, ok := pickNumber(obj, "likelihood"); ok {
		draft.Likelihood = v
	}
	if v := pickNumberPtr(obj, "confidence_score", "confidenceScore"); v != nil {
		draft.ConfidenceScore = v
	}
	if v := pickStringPtr(obj, "predicted_timeframe", "predictedTimeframe"); v != nil {
		draft.PredictedTimeframe = v
	}
	if v, ok := pickStrings(obj, "contributing_factors", "contributingFactors"); ok {
		draft.ContributingFactors = v
	}
	if v, ok := pickStrings(obj, "preventative_actions", "preventativeActions"); ok {
		draft.PreventativeActions = v
	}
	if v, ok := pickStrings(obj, "affected_systems", "affectedSystems"); ok {
		draft.AffectedSystems = v
	}
	return model.Generated(draft)
}

func basePrediction(inc model.Record) model.PredictionDraft {
	data := tmpl.IncidentDataFromRecord(inc)
	description := data.Description
	if description == "" {
		description = tmpl.PredictionSummary
	}
	confidence := 0.5
	timeframe := "24-72 hours"
	return model.PredictionDraft{
		PredictedIssue:      tmpl.Render(tmpl.PredictionIssue, &data),
		Description:         &description,
		Severity:            data.Severity,
		Likelihood:          severityLikelihood(data.Severity),
		ConfidenceScore:     &confidence,
		PredictedTimeframe:  &timeframe,
		ContributingFactors: []string{},
		PreventativeActions: []string{"Review monitoring", "Validate rollback plans"},
		AffectedSystems:     orEmpty(data.AffectedSystems),
	}
}

func severityLikelihood(severity string) float64 {
	switch severity {
	case "P1":
		return 0.7
	case "P2":
		return 0.5
	default:
		return 0.3
	}
}

// ============================================================================
// 공통 헬퍼
// ============================================================================

func (s *AssistService) loadIncident(ctx context.Context, req model.FunctionRequest) (model.Record, error) {
	id := strings.TrimSpace(req.Incident())
	if id == "" {
		return model.Record{}, validationError("Missing incident_id")
	}
	inc, err := s.store.Get(ctx, s.table(registry.KindIncident), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return model.Record{}, notFoundError("Incident not found")
		}
		return model.Record{}, err
	}
	return inc, nil
}

func (s *AssistService) table(kind registry.Kind) string {
	return s.registry.MustKind(kind).Table
}

// audit appends an AuditLog entry. Failures are logged and swallowed.
func (s *AssistService) audit(ctx context.Context, incidentID, action, userID string, source model.GenerationSource, recordID string) {
	actor := userID
	if actor == "" {
		actor = systemActor
	}
	doc := model.Document{
		"incidentId": incidentID,
		"actionType": action,
		"actor":      actor,
		"details": map[string]any{
			"generation_source": string(source),
			"record_id":         recordID,
		},
	}
	if _, err := s.store.Create(ctx, s.table(registry.KindAuditLog), doc); err != nil {
		log.Printf("[Assist] failed to write audit log for %s (incident %s): %v", action, incidentID, err)
	}
}

func wire(rec model.Record) map[string]any {
	return fieldmap.RecordToWire(rec)
}
