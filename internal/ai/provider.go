package ai

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/planestic/ud-assistant/internal/config"
	"github.com/planestic/ud-assistant/internal/promptbuild"
)

const defaultTimeout = 30 * time.Second

// Provider sends a prompt to a downstream model and returns its answer.
type Provider interface {
	Name() string
	Model() string
	Complete(ctx context.Context, prompt promptbuild.PromptPair) (string, error)
}

// Factory builds a Provider from its configuration section.
type Factory func(cfg config.ProviderConfig) (Provider, error)

var factories = map[string]Factory{
	"deepseek": func(cfg config.ProviderConfig) (Provider, error) { return NewDeepSeekProvider(cfg) },
	"llama":    func(cfg config.ProviderConfig) (Provider, error) { return NewLlamaProvider(cfg) },
	"claude":   func(cfg config.ProviderConfig) (Provider, error) { return NewClaudeProvider(cfg) },
}

// BotTypes lists the supported bot types.
func BotTypes() []string {
	types := make([]string, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// New builds the provider selected by botType. An unsupported type is an
// error.
func New(botType string, bots config.BotConfigs) (Provider, error) {
	botType = strings.ToLower(strings.TrimSpace(botType))
	factory, ok := factories[botType]
	if !ok {
		return nil, fmt.Errorf("unsupported bot type %q (supported: %s)", botType, strings.Join(BotTypes(), ", "))
	}
	cfg, _ := bots.Provider(botType)
	return factory(cfg)
}

func timeoutOf(cfg config.ProviderConfig) time.Duration {
	if cfg.TimeoutSeconds > 0 {
		return time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return defaultTimeout
}

func httpClient(cfg config.ProviderConfig) *http.Client {
	return &http.Client{Timeout: timeoutOf(cfg)}
}
