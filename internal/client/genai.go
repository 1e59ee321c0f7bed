// 텍스트 생성 provider(Gemini) 클라이언트
//
// 환경변수:
//   - AI_API_KEY: 비어 있으면 클라이언트를 만들지 않는다 (nil 반환)
//   - AI_MODEL (default: gemini-2.0-flash)

package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/incident-desk/backend/internal/config"
	"google.golang.org/genai"
)

// Temperature is fixed for every completion request.
const Temperature float32 = 0.2

// CompletionRequest - 단일 턴 completion 요청
type CompletionRequest struct {
	System string
	Prompt string
	// JSON이면 application/json 응답을 요청
	JSON bool
}

type CompletionClient struct {
	client *genai.Client
	model  string
}

// NewCompletionClient returns (nil, nil) when no credential is configured.
func NewCompletionClient(ctx context.Context, cfg config.AIConfig) (*CompletionClient, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	model := cfg.Model
	if model == "" {
		model = config.DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &CompletionClient{client: client, model: model}, nil
}

func (c *CompletionClient) Model() string {
	return c.model
}

// Complete sends one non-streaming request and returns the first candidate's
// text, or "" when the provider returned no content.
func (c *CompletionClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	res, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), generateConfig(req))
	if err != nil {
		return "", err
	}
	return responseText(res), nil
}

func generateConfig(req CompletionRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(Temperature),
	}
	if strings.TrimSpace(req.System) != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}
	return cfg
}

func responseText(res *genai.GenerateContentResponse) string {
	if res == nil || len(res.Candidates) == 0 {
		return ""
	}
	cand := res.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
