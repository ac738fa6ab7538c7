package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/postpilothq/postpilot/pilot/domain"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider is the adapter for the Google Gemini API.
type GeminiProvider struct {
	apiKey string
	model  string
}

func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiProvider{apiKey: apiKey, model: model}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) newClient(ctx context.Context) (*genai.Client, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("gemini provider has no API key")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

func (p *GeminiProvider) GeneratePost(ctx context.Context, topic, language string, tone domain.Tone) (string, error) {
	client, err := p.newClient(ctx)
	if err != nil {
		return "", &domain.GenerationError{Provider: p.Name(), Err: err}
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(singlePostSystemPrompt, ""),
	}
	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: buildSinglePrompt(topic, language, tone)}},
	}}

	result, err := p.generateContentWithRetry(ctx, client, contents, cfg)
	if err != nil {
		return "", &domain.GenerationError{Provider: p.Name(), Err: err}
	}
	if result == nil || len(result.Candidates) == 0 {
		return "", &domain.MalformedResponseError{Provider: p.Name(), Reason: "no candidates in response"}
	}

	var fullText string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			fullText += part.Text
		}
	}
	return sanitizeCandidate(p.Name(), fullText)
}

func (p *GeminiProvider) GenerateCandidates(ctx context.Context, topics []string, language string, tone domain.Tone, count int) ([]string, error) {
	client, err := p.newClient(ctx)
	if err != nil {
		return nil, &domain.GenerationError{Provider: p.Name(), Err: err}
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(batchSystemPrompt, ""),
		ResponseMIMEType:  "application/json",
		ResponseJsonSchema: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"posts": {
					Type:        "array",
					Items:       &genai.Schema{Type: "string"},
					Description: "The candidate posts, in order.",
				},
			},
			Required: []string{"posts"},
		},
	}
	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: buildBatchPrompt(topics, language, tone, count)}},
	}}

	result, err := p.generateContentWithRetry(ctx, client, contents, cfg)
	if err != nil {
		return nil, &domain.GenerationError{Provider: p.Name(), Err: err}
	}

	var payload struct {
		Posts []string `json:"posts"`
	}
	if err := json.Unmarshal([]byte(result.Text()), &payload); err != nil {
		return nil, &domain.MalformedResponseError{Provider: p.Name(), Reason: "response is not the expected JSON shape"}
	}

	var candidates []string
	for _, raw := range payload.Posts {
		post, err := sanitizeCandidate(p.Name(), raw)
		if err != nil {
			logrus.WithError(err).Debug("[GEMINI] Dropping candidate that breaks the output contract")
			continue
		}
		candidates = append(candidates, post)
		if len(candidates) == count {
			break
		}
	}
	if len(candidates) == 0 {
		return nil, &domain.MalformedResponseError{Provider: p.Name(), Reason: "no usable candidates in response"}
	}
	return candidates, nil
}

func (p *GeminiProvider) generateContentWithRetry(ctx context.Context, client *genai.Client, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	for i := 0; i < 3; i++ {
		result, err := client.Models.GenerateContent(ctx, p.model, contents, cfg)
		if err == nil {
			return result, nil
		}
		if strings.Contains(err.Error(), "503") {
			time.Sleep(time.Duration(1<<uint(i)) * time.Second)
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("max retries exceeded")
}
