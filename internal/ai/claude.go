package ai

import (
	"context"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"
	"github.com/planestic/ud-assistant/internal/config"
	"github.com/planestic/ud-assistant/internal/logger"
	"github.com/planestic/ud-assistant/internal/promptbuild"
)

const claudeDefaultModel = "claude-3-5-haiku-latest"

// ClaudeProvider answers through the Anthropic messages API.
type ClaudeProvider struct {
	client      *anthropic.Client
	model       string
	temperature float32
	maxTokens   int
}

func NewClaudeProvider(cfg config.ProviderConfig) (*ClaudeProvider, error) {
	if cfg.APIKey == "" {
		logger.Warn("[AI] Anthropic API key is not configured (set ANTHROPIC_API_KEY)")
	}
	if cfg.Model == "" {
		cfg.Model = claudeDefaultModel
	}

	opts := []anthropic.ClientOption{
		anthropic.WithHTTPClient(httpClient(cfg)),
	}
	if base := strings.TrimRight(cfg.APIURL, "/"); base != "" {
		opts = append(opts, anthropic.WithBaseURL(base))
	}

	logger.Info("[AI] Claude provider: model=%s max_tokens=%d", cfg.Model, cfg.MaxTokens)
	return &ClaudeProvider{
		client:      anthropic.NewClient(cfg.APIKey, opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

func (p *ClaudeProvider) Name() string {
	return "claude"
}

func (p *ClaudeProvider) Model() string {
	return p.model
}

func (p *ClaudeProvider) Complete(ctx context.Context, prompt promptbuild.PromptPair) (string, error) {
	maxTokens := p.maxTokens
	if maxTokens <= 0 {
		maxTokens = 500
	}
	temperature := p.temperature

	req := anthropic.MessagesRequest{
		Model:       anthropic.Model(p.model),
		System:      prompt.System,
		Messages:    []anthropic.Message{anthropic.NewUserTextMessage(prompt.User)},
		MaxTokens:   maxTokens,
		Temperature: &temperature,
	}

	logger.Info("[AI] Sending request to Claude")
	resp, err := p.client.CreateMessages(ctx, req)
	if err != nil {
		return "", wrap(p.Name(), err)
	}

	var parts []string
	for _, c := range resp.Content {
		if c.Type == anthropic.MessagesContentTypeText && c.Text != nil {
			parts = append(parts, *c.Text)
		}
	}
	answer := strings.TrimSpace(strings.Join(parts, ""))
	if answer == "" {
		logger.Warn("[AI] Unexpected Claude response: %d content blocks", len(resp.Content))
		return "", wrap(p.Name(), ErrUnexpectedShape)
	}
	return answer, nil
}
