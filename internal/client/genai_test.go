package client

import (
	"context"
	"testing"

	"github.com/incident-desk/backend/internal/config"
	"google.golang.org/genai"
)

func TestNewCompletionClientWithoutKey(t *testing.T) {
	c, err := NewCompletionClient(context.Background(), config.AIConfig{Model: "m"})
	if err != nil || c != nil {
		t.Fatalf("expected nil client without key, got %v, %v", c, err)
	}
}

func TestGenerateConfig(t *testing.T) {
	cfg := generateConfig(CompletionRequest{Prompt: "p", System: "be brief", JSON: true})
	if cfg.Temperature == nil || *cfg.Temperature != Temperature {
		t.Fatalf("temperature = %v", cfg.Temperature)
	}
	if cfg.SystemInstruction == nil || cfg.SystemInstruction.Parts[0].Text != "be brief" {
		t.Fatalf("system instruction missing")
	}
	if cfg.ResponseMIMEType != "application/json" {
		t.Fatalf("mime type = %q", cfg.ResponseMIMEType)
	}

	cfg = generateConfig(CompletionRequest{Prompt: "p"})
	if cfg.SystemInstruction != nil || cfg.ResponseMIMEType != "" {
		t.Fatalf("plain request should not set system or mime type")
	}
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		name string
		res  *genai.GenerateContentResponse
		want string
	}{
		{name: "nil", res: nil, want: ""},
		{name: "no-candidates", res: &genai.GenerateContentResponse{}, want: ""},
		{
			name: "joined-parts",
			res: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{Text: "{\"a\":"}, {Text: "1}"}}},
			}}},
			want: "{\"a\":1}",
		},
		{
			name: "skips-thoughts",
			res: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{Text: "thinking", Thought: true}, {Text: "answer"}}},
			}}},
			want: "answer",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := responseText(tt.res); got != tt.want {
				t.Fatalf("responseText = %q, want %q", got, tt.want)
			}
		})
	}
}
