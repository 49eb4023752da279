package search

import (
	"strings"
	"unicode/utf8"

	"github.com/planestic/ud-assistant/internal/config"
	"github.com/planestic/ud-assistant/internal/logger"
)

// MaxQueryRunes is the longest query sent to the provider.
const MaxQueryRunes = 400

const (
	TopicGeneral = "general"
	TopicNews    = "news"
)

// recencyMarkers are matched as lower-case substrings of the query.
var recencyMarkers = []string{
	"hoy", "ayer", "esta semana", "este mes",
	"reciente", "recientes",
	"últimas", "ultimas", "último", "ultimo",
	"actual", "actualidad",
	"noticias", "novedades",
	"2024", "2025", "2026",
	"tendencias", "comunicado",
	"boletín", "boletin",
}

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Clean trims the query, flattens line breaks and caps it at MaxQueryRunes.
func Clean(query string) string {
	q := strings.TrimSpace(newlineReplacer.Replace(strings.TrimSpace(query)))
	if utf8.RuneCountInString(q) <= MaxQueryRunes {
		return q
	}
	runes := []rune(q)
	logger.Warn("[Search] Query truncated from %d to %d characters", len(runes), MaxQueryRunes)
	return strings.TrimSpace(string(runes[:MaxQueryRunes]))
}

// DetectsRecency reports whether the query asks for recent information.
func DetectsRecency(query string) bool {
	q := strings.ToLower(query)
	for _, marker := range recencyMarkers {
		if strings.Contains(q, marker) {
			return true
		}
	}
	return false
}

// TimeParams holds the per-query topic and time window.
type TimeParams struct {
	Topic     string
	TimeRange string
	Days      int
	StartDate string
	EndDate   string
}

// ResolveTopicAndTime decides topic and time window for one query. Filters
// pinned in the configuration are kept as they are; otherwise a query that
// asks for recent information is searched as news from the last week.
func ResolveTopicAndTime(cfg config.WebSearchConfig, query string) TimeParams {
	recent := DetectsRecency(query)

	if cfg.HasExplicitTimeFilter() {
		tp := TimeParams{
			Topic:     cfg.Topic,
			TimeRange: cfg.TimeRange,
			Days:      cfg.Days,
			StartDate: cfg.StartDate,
			EndDate:   cfg.EndDate,
		}
		if tp.Topic == "" {
			tp.Topic = TopicGeneral
			if recent {
				tp.Topic = TopicNews
			}
		}
		return tp
	}

	if recent {
		return TimeParams{Topic: TopicNews, TimeRange: "week"}
	}

	topic := cfg.Topic
	if topic == "" {
		topic = TopicGeneral
	}
	return TimeParams{Topic: topic}
}
