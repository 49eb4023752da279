package ai

import (
	"context"
	"strings"

	"github.com/planestic/ud-assistant/internal/config"
	"github.com/planestic/ud-assistant/internal/logger"
	"github.com/planestic/ud-assistant/internal/promptbuild"
	"github.com/sashabaranov/go-openai"
)

const (
	deepseekDefaultBaseURL = "https://api.deepseek.com/v1"
	deepseekDefaultModel   = "deepseek-chat"
)

// DeepSeekProvider talks to an OpenAI-compatible chat completions endpoint.
type DeepSeekProvider struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewDeepSeekProvider creates a DeepSeek provider. A missing API key is only
// logged; calls are still attempted and fail with an HTTP error.
func NewDeepSeekProvider(cfg config.ProviderConfig) (*DeepSeekProvider, error) {
	if cfg.APIKey == "" {
		logger.Warn("[AI] DeepSeek API key is not configured (set DEEPSEEK_API_KEY)")
	}
	if cfg.Model == "" {
		cfg.Model = deepseekDefaultModel
	}

	baseURL := strings.TrimRight(cfg.APIURL, "/")
	baseURL = strings.TrimSuffix(baseURL, "/chat/completions")
	if baseURL == "" {
		baseURL = deepseekDefaultBaseURL
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = baseURL
	oc.HTTPClient = httpClient(cfg)

	logger.Info("[AI] DeepSeek provider: url=%s model=%s temperature=%.2f max_tokens=%d", baseURL, cfg.Model, cfg.Temperature, cfg.MaxTokens)

	return &DeepSeekProvider{
		client:      openai.NewClientWithConfig(oc),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

func (p *DeepSeekProvider) Name() string {
	return "deepseek"
}

func (p *DeepSeekProvider) Model() string {
	return p.model
}

// Complete sends the system and user message and returns the first choice.
func (p *DeepSeekProvider) Complete(ctx context.Context, prompt promptbuild.PromptPair) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if prompt.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: prompt.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt.User,
	})

	maxTokens := p.maxTokens
	if maxTokens <= 0 {
		maxTokens = 500
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: p.temperature,
	}

	logger.Info("[AI] Sending request to DeepSeek")
	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", wrap(p.Name(), err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		logger.Warn("[AI] Unexpected DeepSeek response: %d choices", len(resp.Choices))
		return "", wrap(p.Name(), ErrUnexpectedShape)
	}
	return resp.Choices[0].Message.Content, nil
}
