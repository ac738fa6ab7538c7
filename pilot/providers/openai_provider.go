package providers

import (
	"context"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/postpilothq/postpilot/pilot/domain"
	"github.com/sirupsen/logrus"
)

const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider is the adapter for the OpenAI API.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIProvider{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) GeneratePost(ctx context.Context, topic, language string, tone domain.Tone) (string, error) {
	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(singlePostSystemPrompt),
			openai.UserMessage(buildSinglePrompt(topic, language, tone)),
		},
	})
	if err != nil {
		return "", &domain.GenerationError{Provider: p.Name(), Err: err}
	}
	if len(completion.Choices) == 0 {
		return "", &domain.MalformedResponseError{Provider: p.Name(), Reason: "no choices in response"}
	}
	return sanitizeCandidate(p.Name(), completion.Choices[0].Message.Content)
}

func (p *OpenAIProvider) GenerateCandidates(ctx context.Context, topics []string, language string, tone domain.Tone, count int) ([]string, error) {
	prompt := buildBatchPrompt(topics, language, tone, count) +
		"\n\nReturn each post on its own line, separated by a blank line. No numbering."

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(batchSystemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return nil, &domain.GenerationError{Provider: p.Name(), Err: err}
	}
	if len(completion.Choices) == 0 {
		return nil, &domain.MalformedResponseError{Provider: p.Name(), Reason: "no choices in response"}
	}

	var candidates []string
	for _, block := range strings.Split(completion.Choices[0].Message.Content, "\n\n") {
		post, err := sanitizeCandidate(p.Name(), block)
		if err != nil {
			logrus.WithError(err).Debug("[OPENAI] Dropping candidate that breaks the output contract")
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
