package registry

import "github.com/incident-desk/backend/internal/fieldmap"

func field(storage string, wire ...string) fieldmap.Field {
	return fieldmap.Field{Storage: storage, Wire: wire}
}

func withDefault(f fieldmap.Field, def any) fieldmap.Field {
	f.Default = def
	return f
}

func coerced(f fieldmap.Field, c fieldmap.Coerce) fieldmap.Field {
	f.Coerce = c
	return f
}

// Default returns the registry holding the seven incident-desk entity kinds.
func Default() *Registry {
	return New(
		&Entity{
			Kind:  KindIncident,
			Alias: "incidents",
			Table: "incidents",
			Ops:   allOperations,
			Fields: []fieldmap.Field{
				field("title", "title"),
				field("description", "description"),
				field("severity", "severity"),
				withDefault(field("status", "status"), "analyzing"),
				field("source", "source"),
				field("logs", "logs"),
				field("affectedSystems", "affected_systems", "affectedSystems"),
				field("tags", "tags"),
				field("aiAnalysis", "ai_analysis", "aiAnalysis"),
				field("createdBy", "created_by", "createdBy"),
			},
			Filters:      map[string]string{"id": "id", "status": "status", "severity": "severity"},
			CreatorField: "createdBy",
		},
		&Entity{
			Kind:  KindDecision,
			Alias: "decisions",
			Table: "decisions",
			Ops:   allOperations,
			Fields: []fieldmap.Field{
				field("incidentId", "incident_id", "incidentId"),
				field("recommendationAction", "recommendation_action", "recommendationAction"),
				field("decision", "decision"),
				field("decisionReason", "decision_reason", "decisionReason"),
				field("decidedBy", "decided_by", "decidedBy"),
				coerced(field("decidedAt", "decided_at", "decidedAt"), fieldmap.CoerceTime),
			},
			Filters: map[string]string{"id": "id", "incident_id": "incidentId"},
		},
		&Entity{
			Kind:  KindPredictiveAlert,
			Alias: "predictions",
			Table: "predictive_alerts",
			Ops:   allOperations,
			Fields: []fieldmap.Field{
				field("predictedIssue", "predicted_issue", "predictedIssue"),
				field("description", "description"),
				field("severity", "severity"),
				coerced(field("likelihood", "likelihood"), fieldmap.CoerceNumber),
				coerced(field("confidenceScore", "confidence_score", "confidenceScore"), fieldmap.CoerceNullableNumber),
				field("predictedTimeframe", "predicted_timeframe", "predictedTimeframe"),
				field("affectedSystems", "affected_systems", "affectedSystems"),
				field("contributingFactors", "contributing_factors", "contributingFactors"),
				field("preventativeActions", "preventative_actions", "preventativeActions"),
				withDefault(field("status", "status"), "active"),
			},
			Filters: map[string]string{"id": "id", "status": "status"},
		},
		&Entity{
			Kind:  KindKnowledgeBaseArticle,
			Alias: "articles",
			Table: "knowledge_base_articles",
			Ops:   allOperations,
			Fields: []fieldmap.Field{
				field("title", "title"),
				field("summary", "summary"),
				field("content", "content"),
				withDefault(field("category", "category"), "general"),
				withDefault(field("status", "status"), "draft"),
				field("author", "author"),
				field("tags", "tags"),
				field("relatedSystems", "related_systems", "relatedSystems"),
			},
			Filters: map[string]string{"id": "id", "status": "status", "category": "category"},
		},
		&Entity{
			Kind:  KindPostIncidentReview,
			Alias: "reviews",
			Table: "post_incident_reviews",
			Ops:   allOperations,
			Fields: []fieldmap.Field{
				field("incidentId", "incident_id", "incidentId"),
				field("executiveSummary", "executive_summary", "executiveSummary"),
				field("rootCauseAnalysis", "root_cause_analysis", "rootCauseAnalysis"),
				field("timeline", "timeline"),
				field("impactAssessment", "impact_assessment", "impactAssessment"),
				field("keyLearnings", "key_learnings", "keyLearnings"),
				field("followUpActions", "follow_up_actions", "followUpActions"),
				coerced(field("confidenceScore", "confidence_score", "confidenceScore"), fieldmap.CoerceNullableNumber),
			},
			Filters: map[string]string{"id": "id", "incident_id": "incidentId"},
		},
		&Entity{
			Kind:  KindAuditLog,
			Alias: "audit-logs",
			Table: "audit_logs",
			Ops:   allOperations,
			Fields: []fieldmap.Field{
				field("incidentId", "incident_id", "incidentId"),
				field("actionType", "action_type", "actionType"),
				field("actor", "actor"),
				field("details", "details"),
			},
			Filters: map[string]string{"id": "id", "incident_id": "incidentId"},
		},
		&Entity{
			Kind:  KindIncidentAutomation,
			Alias: "automations",
			Table: "incident_automations",
			Ops:   allOperations,
			Fields: []fieldmap.Field{
				field("incidentId", "incident_id", "incidentId"),
				field("automationType", "automation_type", "automationType"),
				withDefault(field("status", "status"), "queued"),
				coerced(field("executedAt", "executed_at", "executedAt"), fieldmap.CoerceTime),
				field("result", "result"),
			},
			Filters: map[string]string{"id": "id", "incident_id": "incidentId"},
		},
	)
}
