package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/planestic/ud-assistant/internal/config"
	"github.com/planestic/ud-assistant/internal/logger"
)

const tavilyDefaultBaseURL = "https://api.tavily.com"

type TavilyEngine struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewTavilyEngine builds the Tavily client once for the process lifetime.
// A missing API key is reported here rather than on the first search.
func NewTavilyEngine(cfg config.WebSearchConfig) (Engine, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		logger.Error("[Search] Failed to initialize Tavily client: %v", ErrMissingAPIKey)
		return nil, ErrMissingAPIKey
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = tavilyDefaultBaseURL
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	logger.Info("[Search] Tavily client initialized (%s)", baseURL)
	return &TavilyEngine{
		name:    "tavily",
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (e *TavilyEngine) Name() string {
	return e.name
}

type tavilyRequest struct {
	Query             string   `json:"query"`
	SearchDepth       string   `json:"search_depth,omitempty"`
	MaxResults        int      `json:"max_results,omitempty"`
	ChunksPerSource   int      `json:"chunks_per_source,omitempty"`
	IncludeRawContent bool     `json:"include_raw_content"`
	IncludeDomains    []string `json:"include_domains"`
	Topic             string   `json:"topic,omitempty"`
	TimeRange         string   `json:"time_range,omitempty"`
	Days              int      `json:"days,omitempty"`
	Country           string   `json:"country,omitempty"`
	StartDate         string   `json:"start_date,omitempty"`
	EndDate           string   `json:"end_date,omitempty"`
}

type tavilyResponse struct {
	Query        string   `json:"query"`
	Results      []Result `json:"results"`
	ResponseTime float64  `json:"response_time"`
}

func (e *TavilyEngine) Search(ctx context.Context, sr Request) (*Response, error) {
	startTime := time.Now()

	searchURL := fmt.Sprintf("%s/search", e.baseURL)

	jsonBody, err := json.Marshal(tavilyRequest{
		Query:             sr.Query,
		SearchDepth:       sr.SearchDepth,
		MaxResults:        sr.MaxResults,
		ChunksPerSource:   sr.ChunksPerSource,
		IncludeRawContent: sr.IncludeRawContent,
		IncludeDomains:    sr.IncludeDomains,
		Topic:             sr.Topic,
		TimeRange:         sr.TimeRange,
		Days:              sr.Days,
		Country:           sr.Country,
		StartDate:         sr.StartDate,
		EndDate:           sr.EndDate,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, searchURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("User-Agent", "ud-assistant/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, body)
	}

	var apiResponse tavilyResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return nil, &ProviderError{
			Kind:       KindUnclassified,
			StatusCode: resp.StatusCode,
			Detail:     "failed to parse response",
			Err:        err,
		}
	}

	return &Response{
		Query:        sr.Query,
		Results:      apiResponse.Results,
		ResponseTime: apiResponse.ResponseTime,
		Engine:       e.name,
		Duration:     time.Since(startTime),
	}, nil
}

// statusError converts a non-200 reply into a ProviderError. Tavily reports
// details as {"detail": {"error": "..."}}; older deployments use a plain
// string.
func statusError(code int, body []byte) error {
	detail := extractDetail(body)
	perr := &ProviderError{
		Kind:       kindForStatus(code),
		StatusCode: code,
		Detail:     detail,
	}

	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		perr.Err = ErrInvalidAPIKey
	case code == http.StatusTooManyRequests || code == 432 || code == 433:
		perr.Err = ErrUsageLimit
	case strings.Contains(strings.ToLower(detail), "query is too long"):
		perr.Kind = KindFatal
		perr.Err = ErrQueryTooLong
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		perr.Err = ErrBadRequest
	}
	return perr
}

func extractDetail(body []byte) string {
	var structured struct {
		Detail struct {
			Error string `json:"error"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(body, &structured); err == nil && structured.Detail.Error != "" {
		return structured.Detail.Error
	}
	var plain struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &plain); err == nil && plain.Detail != "" {
		return plain.Detail
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
