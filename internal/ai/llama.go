package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/planestic/ud-assistant/internal/config"
	"github.com/planestic/ud-assistant/internal/logger"
	"github.com/planestic/ud-assistant/internal/promptbuild"
)

const llamaDefaultURL = "http://localhost:11434/api/generate"

// LlamaProvider calls a single-prompt generate endpoint that answers
// {"model", "prompt"} with {"response"}.
type LlamaProvider struct {
	apiURL string
	model  string
	client *http.Client
}

func NewLlamaProvider(cfg config.ProviderConfig) (*LlamaProvider, error) {
	apiURL := strings.TrimSpace(cfg.APIURL)
	if apiURL == "" {
		apiURL = llamaDefaultURL
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("llama model is required")
	}

	logger.Info("[AI] Llama provider: url=%s model=%s", apiURL, cfg.Model)
	return &LlamaProvider{
		apiURL: apiURL,
		model:  cfg.Model,
		client: httpClient(cfg),
	}, nil
}

func (p *LlamaProvider) Name() string {
	return "llama"
}

func (p *LlamaProvider) Model() string {
	return p.model
}

type llamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// Complete sends the prompt as one text. A system message, when present, is
// prepended to the user message.
func (p *LlamaProvider) Complete(ctx context.Context, prompt promptbuild.PromptPair) (string, error) {
	text := prompt.User
	if prompt.System != "" {
		text = prompt.System + "\n\n" + prompt.User
	}

	body, err := json.Marshal(llamaRequest{Model: p.model, Prompt: text})
	if err != nil {
		return "", wrap(p.Name(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", wrap(p.Name(), err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Info("[AI] Sending request to Llama: %s", p.apiURL)
	resp, err := p.client.Do(req)
	if err != nil {
		return "", wrap(p.Name(), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", wrap(p.Name(), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := strings.TrimSpace(string(data))
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return "", wrap(p.Name(), &httpStatusError{StatusCode: resp.StatusCode, Body: snippet})
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", wrap(p.Name(), err)
	}
	raw, ok := payload["response"]
	if !ok {
		logger.Warn("[AI] Unexpected Llama response: %s", truncateBody(data))
		return "", wrap(p.Name(), ErrUnexpectedShape)
	}
	var answer string
	if err := json.Unmarshal(raw, &answer); err != nil {
		return "", wrap(p.Name(), fmt.Errorf("%w: response is not a string", ErrUnexpectedShape))
	}
	return answer, nil
}

func truncateBody(b []byte) string {
	s := string(b)
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
