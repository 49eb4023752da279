// Package contextpack packs ranked search results into a bounded context
// string for the answer model.
package contextpack

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/planestic/ud-assistant/internal/config"
	"github.com/planestic/ud-assistant/internal/search"
)

const (
	DefaultEllipsis = "..."

	untitled = "Sin título"
	noURL    = "Sin URL"
)

// Packer greedily packs results in order until MaxLength runes are used.
// The first result that does not fit is truncated when more than MinTail
// runes of its body still fit after holding back Reserve runes; packing
// stops there. TopBudget, when set, caps the truncated body of the
// first-ranked result.
type Packer struct {
	MaxLength int
	TopBudget int
	MinTail   int
	// Reserve is at least 2, the newlines around a truncated body.
	Reserve  int
	Ellipsis string
}

// Simple is the preset for chat models with a larger window.
func Simple() Packer {
	return Packer{MaxLength: 5000, TopBudget: 3000, MinTail: 0, Reserve: 2, Ellipsis: DefaultEllipsis}
}

// Optimized is the preset for the single-prompt Llama endpoint.
func Optimized() Packer {
	return Packer{MaxLength: 3000, MinTail: 100, Reserve: 20, Ellipsis: DefaultEllipsis}
}

// ForBot returns the preset of botType with the non-zero overrides in cfg
// applied.
func ForBot(botType string, cfg config.ContextConfig) Packer {
	p := Simple()
	if botType == "llama" {
		p = Optimized()
	}
	if cfg.MaxLength > 0 {
		p.MaxLength = cfg.MaxLength
	}
	if cfg.TopBudget > 0 {
		p.TopBudget = cfg.TopBudget
	}
	if cfg.MinTail > 0 {
		p.MinTail = cfg.MinTail
	}
	return p
}

// Header is the source attribution line of a block.
func Header(r search.Result) string {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		title = untitled
	}
	link := strings.TrimSpace(r.URL)
	if link == "" {
		link = noURL
	}
	return fmt.Sprintf("[%s](%s)", title, link)
}

// Pack returns the packed context and the results that contributed to it.
func (p Packer) Pack(results []search.Result) (string, []search.Result) {
	if len(results) == 0 || p.MaxLength <= 0 {
		return "", nil
	}
	minTail := max(p.MinTail, 0)
	reserve := max(p.Reserve, 2)

	var (
		b    strings.Builder
		used int
		kept []search.Result
	)

	for i, r := range results {
		body := r.Body()
		if body == "" {
			continue
		}
		header := Header(r)

		sep := 0
		if len(kept) > 0 {
			sep = 1
		}

		cost := sep + utf8.RuneCountInString(header) + 1 + utf8.RuneCountInString(body) + 1
		if used+cost <= p.MaxLength {
			writeBlock(&b, sep, header, body)
			used += cost
			kept = append(kept, r)
			continue
		}

		remaining := p.MaxLength - used - sep - utf8.RuneCountInString(header) - reserve
		if i == 0 && p.TopBudget > 0 && used < p.TopBudget {
			remaining = min(remaining, p.TopBudget-used)
		}
		if remaining > minTail {
			writeBlock(&b, sep, header, truncateRunes(body, remaining)+p.Ellipsis)
			kept = append(kept, r)
		}
		break
	}

	return b.String(), kept
}

func writeBlock(b *strings.Builder, sep int, header, body string) {
	if sep > 0 {
		b.WriteString("\n")
	}
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
