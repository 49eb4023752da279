package rank

import (
	"github.com/planestic/ud-assistant/internal/config"
	"github.com/planestic/ud-assistant/internal/logger"
)

type rewriteRule struct {
	keywords []string
	suffix   string
}

// Rewriter biases search queries toward the organization by appending the
// suffix of the first rule whose keywords occur in the query.
type Rewriter struct {
	rules []rewriteRule
}

func NewRewriter(org config.OrgConfig) *Rewriter {
	rules := make([]rewriteRule, 0, len(org.RewriteRules))
	for _, r := range org.RewriteRules {
		if r.Suffix == "" {
			continue
		}
		rules = append(rules, rewriteRule{keywords: normalizeAll(r.Keywords), suffix: r.Suffix})
	}
	return &Rewriter{rules: rules}
}

// Rewrite returns a new query with at most one suffix appended. A nil query
// is returned unchanged.
func (rw *Rewriter) Rewrite(query *string) *string {
	if query == nil {
		return nil
	}
	out := rw.RewriteString(*query)
	return &out
}

func (rw *Rewriter) RewriteString(query string) string {
	qn := Normalize(query)
	for _, r := range rw.rules {
		if containsAny(qn, r.keywords) {
			logger.Debug("[Rank] Query rewritten with %q", r.suffix)
			return query + " " + r.suffix
		}
	}
	return query
}
