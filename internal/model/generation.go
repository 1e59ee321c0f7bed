package model

// GenerationSource - 파생 레코드 payload가 어떤 경로로 만들어졌는지
type GenerationSource string

const (
	SourceGenerated GenerationSource = "generated"
	SourceFallback  GenerationSource = "fallback"
)

// Generation is either a provider-generated payload or the deterministic
// fallback substituted when the provider is absent, errors, or returns
// something unparsable.
type Generation[T any] struct {
	Payload T
	Source  GenerationSource
}

func Generated[T any](payload T) Generation[T] {
	return Generation[T]{Payload: payload, Source: SourceGenerated}
}

func Fallback[T any](payload T) Generation[T] {
	return Generation[T]{Payload: payload, Source: SourceFallback}
}

func (g Generation[T]) IsFallback() bool {
	return g.Source == SourceFallback
}

// ResponsePlan - automateIncidentResponse 결과
type ResponsePlan struct {
	Summary          string   `json:"summary"`
	ImmediateActions []string `json:"immediate_actions"`
	CommsPlan        []string `json:"comms_plan"`
	Owners           []string `json:"owners"`
}

// ReviewDraft - generatePostIncidentReview 결과
type ReviewDraft struct {
	ExecutiveSummary  string   `json:"executive_summary"`
	RootCauseAnalysis *string  `json:"root_cause_analysis"`
	Timeline          any      `json:"timeline"`
	ImpactAssessment  *string  `json:"impact_assessment"`
	KeyLearnings      []string `json:"key_learnings"`
	FollowUpActions   []string `json:"follow_up_actions"`
	ConfidenceScore   *float64 `json:"confidence_score"`
}

// ArticleDraft - generateArticleFromIncident 결과
type ArticleDraft struct {
	Title          string   `json:"title"`
	Summary        *string  `json:"summary"`
	Content        string   `json:"content"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	RelatedSystems []string `json:"related_systems"`
}

// PredictionDraft - generatePredictions 결과 (incident 1건당 1개)
type PredictionDraft struct {
	PredictedIssue      string   `json:"predicted_issue"`
	Description         *string  `json:"description"`
	Severity            string   `json:"severity"`
	Likelihood          float64  `json:"likelihood"`
	ConfidenceScore     *float64 `json:"confidence_score"`
	PredictedTimeframe  *string  `json:"predicted_timeframe"`
	ContributingFactors []string `json:"contributing_factors"`
	PreventativeActions []string `json:"preventative_actions"`
	AffectedSystems     []string `json:"affected_systems"`
}
