// Package template renders incident text templates used by fallback payloads.
//
// 지원하는 변수 형식:
//
//	{{incident.id}}, {{incident.title}}, {{incident.severity}},
//	{{incident.status}}, {{incident.description}}, {{incident.created_at}},
//	{{incident.affected_systems}}
package template

import (
	"strings"
	"time"

	"github.com/incident-desk/backend/internal/fieldmap"
	"github.com/incident-desk/backend/internal/model"
)

// Fallback 문구 템플릿
const (
	ResponseSummary   = "Auto-response plan for {{incident.title}}"
	ReviewSummary     = "Review for {{incident.title}}"
	ArticleTitle      = "KB: {{incident.title}}"
	PredictionIssue   = "Follow-on risk from {{incident.title}}"
	ArticleSummary    = "Auto-generated knowledge base article."
	PredictionSummary = "Potential recurrence or downstream impact."
)

// IncidentData - 템플릿 렌더링에 사용할 Incident 데이터
type IncidentData struct {
	ID              string
	Title           string
	Severity        string
	Status          string
	Description     string
	CreatedAt       time.Time
	AffectedSystems []string
}

// IncidentDataFromRecord - 저장된 Incident 레코드에서 IncidentData 생성
func IncidentDataFromRecord(rec model.Record) IncidentData {
	return IncidentData{
		ID:              rec.ID,
		Title:           rec.String("title"),
		Severity:        rec.String("severity"),
		Status:          rec.String("status"),
		Description:     rec.String("description"),
		CreatedAt:       rec.CreatedAt,
		AffectedSystems: fieldmap.Strings(rec.Data["affectedSystems"]),
	}
}

// Render - 템플릿의 변수를 실제 값으로 치환
//
// incident가 nil이면 모든 변수는 빈 문자열로 치환됩니다.
func Render(text string, incident *IncidentData) string {
	if incident == nil {
		incident = &IncidentData{}
	}
	createdAt := ""
	if !incident.CreatedAt.IsZero() {
		createdAt = incident.CreatedAt.Format(time.RFC3339)
	}
	return strings.NewReplacer(
		"{{incident.id}}", incident.ID,
		"{{incident.title}}", incident.Title,
		"{{incident.severity}}", incident.Severity,
		"{{incident.status}}", incident.Status,
		"{{incident.description}}", incident.Description,
		"{{incident.created_at}}", createdAt,
		"{{incident.affected_systems}}", strings.Join(incident.AffectedSystems, ", "),
	).Replace(text)
}
