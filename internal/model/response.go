package model

// ErrorResponse - 모든 에러 응답 바디
// Detail은 500 응답에서 원인 메시지를 그대로 전달할 때만 채운다.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type PingResponse struct {
	Message string `json:"message"`
}

// InvokeLLMRequest - POST /ai/invoke-llm 요청
type InvokeLLMRequest struct {
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
}

// InvokeLLMResponse - POST /ai/invoke-llm 응답
type InvokeLLMResponse struct {
	Text string `json:"text"`
}

// FunctionRequest - POST /functions/<name> 요청 바디
// incident_id 외에 incidentId 표기도 받는다.
type FunctionRequest struct {
	IncidentID       string  `json:"incident_id"`
	IncidentIDCompat string  `json:"incidentId"`
	Author           *string `json:"author"`
}

// Incident returns the incident id regardless of which key spelling was used.
func (r FunctionRequest) Incident() string {
	if r.IncidentID != "" {
		return r.IncidentID
	}
	return r.IncidentIDCompat
}
