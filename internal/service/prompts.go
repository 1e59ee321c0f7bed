package service

import (
	"encoding/json"
	"strings"

	"github.com/incident-desk/backend/internal/fieldmap"
	"github.com/incident-desk/backend/internal/model"
)

type promptMode string

const (
	modeResponse   promptMode = "response"
	modeReview     promptMode = "pir"
	modeArticle    promptMode = "article"
	modePrediction promptMode = "prediction"
)

var systemPrompts = map[promptMode]string{
	modeResponse: "You are an incident commander copilot. Create a concise incident response plan as JSON with keys: " +
		"summary, immediate_actions (array), comms_plan (array), owners (array).",
	modeReview: "You are a post-incident review assistant. Produce JSON with keys: " +
		"executive_summary, root_cause_analysis, timeline, impact_assessment, key_learnings (array), " +
		"follow_up_actions (array), confidence_score (0-1).",
	modeArticle: "You are a knowledge base writer. Produce JSON with keys: " +
		"title, summary, content, category, tags (array), related_systems (array).",
	modePrediction: "You are a reliability engineer. Produce JSON with keys: " +
		"predicted_issue, description, severity, likelihood (0-1), confidence_score (0-1), predicted_timeframe, " +
		"contributing_factors (array), preventative_actions (array), affected_systems (array).",
}

// incidentPrompt - provider에 전달하는 incident 요약 (storage 필드 이름 그대로)
func incidentPrompt(inc model.Record) (string, error) {
	base := map[string]any{
		"title":           inc.Data["title"],
		"severity":        inc.Data["severity"],
		"status":          inc.Data["status"],
		"description":     inc.Data["description"],
		"affectedSystems": inc.Data["affectedSystems"],
		"logs":            inc.Data["logs"],
		"aiAnalysis":      inc.Data["aiAnalysis"],
	}
	raw, err := json.Marshal(base)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// parseObject accepts a JSON object, optionally wrapped in a ``` fence.
func parseObject(raw string) (map[string]any, bool) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}
	if text == "" {
		return nil, false
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(text), &out); err != nil || out == nil {
		return nil, false
	}
	return out, true
}

// 아래 pick 함수들은 snake_case 키를 먼저, camelCase 키를 다음으로 본다.

func pickString(m map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

func pickStringPtr(m map[string]any, keys ...string) *string {
	if s, ok := pickString(m, keys...); ok {
		return &s
	}
	return nil
}

func pickStrings(m map[string]any, keys ...string) ([]string, bool) {
	for _, key := range keys {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		if list := fieldmap.Strings(v); list != nil {
			return list, true
		}
	}
	return nil, false
}

func pickNumber(m map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		if n, ok := fieldmap.Number(m[key]); ok {
			return n, true
		}
	}
	return 0, false
}

func pickNumberPtr(m map[string]any, keys ...string) *float64 {
	if n, ok := pickNumber(m, keys...); ok {
		return &n
	}
	return nil
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
