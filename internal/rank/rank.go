package rank

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/planestic/ud-assistant/internal/config"
	"github.com/planestic/ud-assistant/internal/logger"
	"github.com/planestic/ud-assistant/internal/search"
)

const (
	ModeBasic    = "basic"
	ModeExtended = "extended"

	maxBulletinPoints = 10
)

var bulletinPattern = regexp.MustCompile(`(?:boletin|bulletin|comunicado)[-_/]*(?:no?[-_.]*)?(\d+)`)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FilterValid drops results with neither content nor raw content.
func FilterValid(results []search.Result) []search.Result {
	valid := make([]search.Result, 0, len(results))
	for _, r := range results {
		if r.Valid() {
			valid = append(valid, r)
			continue
		}
		logger.Debug("[Rank] Ignoring result without content: %s", r.URL)
	}
	logger.Info("[Rank] Valid results: %d/%d", len(valid), len(results))
	return valid
}

type Ranker struct {
	domain    string
	intent    []string
	freshness []string
	roles     []string
	extended  bool
	now       func() time.Time
}

type Option func(*Ranker)

// WithClock fixes the reference time used for recency scoring.
func WithClock(now func() time.Time) Option {
	return func(r *Ranker) {
		if now != nil {
			r.now = now
		}
	}
}

func NewRanker(org config.OrgConfig, mode string, opts ...Option) *Ranker {
	r := &Ranker{
		domain:    strings.ToLower(strings.TrimSpace(org.Domain)),
		intent:    normalizeAll(org.IntentKeywords),
		freshness: normalizeAll(org.FreshnessWords),
		roles:     normalizeAll(org.RoleWords),
		extended:  mode != ModeBasic,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Score is the domain and intent score of a result for query.
func (r *Ranker) Score(res search.Result, query string) int {
	title := Normalize(res.Title)
	link := Normalize(res.URL)
	qn := Normalize(query)

	s := 0
	if r.onDomain(res.URL) {
		s += 5
	}
	for _, k := range r.intent {
		if strings.Contains(qn, k) && (strings.Contains(title, k) || strings.Contains(link, k)) {
			s += 5
			break
		}
	}
	if strings.TrimSpace(title) != "" {
		s++
	}
	return s
}

// ScoreExtended adds recency, bulletin number, freshness and role signals
// to Score.
func (r *Ranker) ScoreExtended(res search.Result, query string) int {
	s := r.Score(res, query)
	s += r.recencyPoints(res.PublishedDate)
	s += bulletinPoints(res.URL)

	title := Normalize(res.Title)
	if containsAny(title, r.freshness) {
		s += 4
	}
	if containsAny(title, r.roles) {
		s += 2
	}
	return s
}

// Rank orders results by descending score. Ties keep their input order.
func (r *Ranker) Rank(results []search.Result, query string) []search.Result {
	type scored struct {
		res   search.Result
		score int
	}
	items := make([]scored, len(results))
	for i, res := range results {
		score := r.Score(res, query)
		if r.extended {
			score = r.ScoreExtended(res, query)
		}
		items[i] = scored{res: res, score: score}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})

	ranked := make([]search.Result, len(items))
	for i, it := range items {
		ranked[i] = it.res
		logger.Trace("[Rank] #%d score=%d %s", i+1, it.score, it.res.URL)
	}
	return ranked
}

func (r *Ranker) onDomain(raw string) bool {
	if r.domain == "" {
		return false
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return strings.Contains(strings.ToLower(raw), r.domain)
	}
	host := strings.ToLower(u.Hostname())
	return host == r.domain || strings.HasSuffix(host, "."+r.domain)
}

func (r *Ranker) recencyPoints(published string) int {
	t, ok := parseDate(published)
	if !ok {
		return 0
	}
	days := r.now().UTC().Sub(t).Hours() / 24
	switch {
	case days < 0:
		return 0
	case days <= 7:
		return 12
	case days <= 30:
		return 9
	case days <= 180:
		return 5
	case days <= 365:
		return 2
	default:
		return 0
	}
}

// parseDate reads an ISO-8601 date. Timestamps without a zone are UTC.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func bulletinPoints(raw string) int {
	path := raw
	if u, err := url.Parse(raw); err == nil {
		path = u.Path
	}
	m := bulletinPattern.FindStringSubmatch(Normalize(path))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0
	}
	return min(n, maxBulletinPoints)
}
