// Package smalltalk answers greetings, farewells and thanks without a search.
package smalltalk

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"sync"
	"unicode"
)

type Intent int

const (
	IntentNone Intent = iota
	IntentGreeting
	IntentFarewell
	IntentGratitude
)

func (i Intent) String() string {
	switch i {
	case IntentGreeting:
		return "greeting"
	case IntentFarewell:
		return "farewell"
	case IntentGratitude:
		return "gratitude"
	default:
		return "none"
	}
}

// Patterns are matched at the start of the lower-cased message.
var greetingPatterns = compile(
	`\bh[oó]+l+a+\b`,
	`\bbueno?s?\s*d[íi]+a+s*\b`,
	`\bbuena?s?\s*ta+r+d+[eé]+s*\b`,
	`\bbuena?s?\s*no+ch+[eé]+s*\b`,
	`\bqu[eé]+\s*t[aá]+l+\b`,
	`\bsalu+d+o+s*\b`,
	`\bhe+y+\b`,
	`\bqu[eé]+\s*ond+a+\b`,
	`\bsalu+d+o+s*\s*c+o+r+d+i+a+les*\b`,
)

var farewellPatterns = compile(
	`\bad[ií]+o+s*\b`,
	`\bha+sta+\s*lue+go+\b`,
	`\bnos\s*vemos\b`,
	`\bha+sta+\s*pronto+\b`,
	`\bha+sta+\s*la+\s*pr[oó]+xima\b`,
	`\bc+hao+\b`,
	`\bhasta\s*despu[eé]+s+\b`,
	`\bhasta\s*ma[nñ]ana\b`,
)

var gratitudePatterns = compile(
	`\bgr+a+c+i+a+s*\b`,
	`\bmuchas?\s*gr+a+c+i+a+s*\b`,
	`\bte\s*agrade+z+co\b`,
	`\bmil\s*gracias\b`,
	`\bmuchas?\s*gracias\b`,
	`\bagrade+ci+miento+s\b`,
	`\bmuy\s*agradecido\b`,
)

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`^` + p)
	}
	return out
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// Detect returns the intent of a message. Greetings win over farewells and
// farewells over thanks.
func Detect(query string) Intent {
	q := strings.TrimSpace(strings.Map(foldSpace, strings.ToLower(query)))
	switch {
	case matchAny(greetingPatterns, q):
		return IntentGreeting
	case matchAny(farewellPatterns, q):
		return IntentFarewell
	case matchAny(gratitudePatterns, q):
		return IntentGratitude
	default:
		return IntentNone
	}
}

// Responder picks canned replies. It is safe for concurrent use.
type Responder struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// foldSpace maps Unicode space separators such as NBSP to an ASCII space,
// since RE2 \s only matches ASCII whitespace.
func foldSpace(r rune) rune {
	if unicode.Is(unicode.Zs, r) {
		return ' '
	}
	return r
}

// NewResponder uses src for reply selection; nil seeds from the runtime.
func NewResponder(src rand.Source) *Responder {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Responder{rnd: rand.New(src)}
}

// Reply returns a canned reply for query, or false when query is not small
// talk.
func (r *Responder) Reply(query string) (string, bool) {
	pool := Messages(Detect(query))
	if len(pool) == 0 {
		return "", false
	}
	r.mu.Lock()
	i := r.rnd.IntN(len(pool))
	r.mu.Unlock()
	return pool[i], true
}

// Messages returns the reply pool of an intent.
func Messages(intent Intent) []string {
	switch intent {
	case IntentGreeting:
		return greetingMessages
	case IntentFarewell:
		return farewellMessages
	case IntentGratitude:
		return gratitudeMessages
	default:
		return nil
	}
}
