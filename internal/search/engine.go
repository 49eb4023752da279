package search

import (
	"context"

	"github.com/planestic/ud-assistant/internal/config"
)

type Engine interface {
	Name() string
	Search(ctx context.Context, req Request) (*Response, error)
}

type EngineFactory func(cfg config.WebSearchConfig) (Engine, error)

// Request is the provider-neutral form of one search call. Empty optional
// fields are left out of the wire request.
type Request struct {
	Query             string
	SearchDepth       string
	MaxResults        int
	ChunksPerSource   int
	IncludeRawContent bool
	IncludeDomains    []string
	Topic             string
	TimeRange         string
	Days              int
	Country           string
	StartDate         string
	EndDate           string
}

// NewRequest combines the static search configuration with the per-query
// time parameters. Days is only sent for news searches and country only for
// general (or unspecified) ones.
func NewRequest(query string, cfg config.WebSearchConfig, tp TimeParams) Request {
	req := Request{
		Query:             query,
		SearchDepth:       cfg.SearchDepth,
		MaxResults:        cfg.MaxResults,
		ChunksPerSource:   cfg.ChunksPerSource,
		IncludeRawContent: true,
		IncludeDomains:    append([]string(nil), cfg.IncludeDomains...),
		Topic:             tp.Topic,
		TimeRange:         tp.TimeRange,
		StartDate:         tp.StartDate,
		EndDate:           tp.EndDate,
	}
	if req.IncludeDomains == nil {
		req.IncludeDomains = []string{}
	}
	if tp.Topic == TopicNews && tp.Days > 0 {
		req.Days = tp.Days
	}
	if tp.Topic == "" || tp.Topic == TopicGeneral {
		req.Country = cfg.Country
	}
	return req
}
