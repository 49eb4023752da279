package rank

import (
	"testing"
	"time"

	"github.com/planestic/ud-assistant/internal/config"
	"github.com/planestic/ud-assistant/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestRanker(mode string) *Ranker {
	return NewRanker(config.DefaultOrganization(), mode, WithClock(func() time.Time { return fixedNow }))
}

func TestNormalizeStripsAccents(t *testing.T) {
	assert.Equal(t, "ingenieria electronica", Normalize("Ingeniería Electrónica"))
	assert.Equal(t, "calendario academico", Normalize("CALENDARIO ACADÉMICO"))
	assert.Equal(t, "nino", Normalize("niño"))
}

func TestFilterValid(t *testing.T) {
	in := []search.Result{
		{Title: "a", Content: "x"},
		{Title: "b"},
		{Title: "c", RawContent: "y"},
		{Title: "d", Content: "   "},
	}
	out := FilterValid(in)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Title)
	assert.Equal(t, "c", out[1].Title)
}

func TestRankPlacesOrganizationDomainFirst(t *testing.T) {
	results := []search.Result{
		{Title: "Other", URL: "https://other.com"},
		{Title: "UD Page", URL: "https://udistrital.edu.co/x"},
	}
	for _, mode := range []string{ModeBasic, ModeExtended} {
		ranked := newTestRanker(mode).Rank(results, "cualquier cosa")
		assert.Equal(t, "UD Page", ranked[0].Title, mode)
	}
}

func TestScoreBasic(t *testing.T) {
	r := newTestRanker(ModeBasic)

	onDomain := search.Result{Title: "Rectoría", URL: "https://www.udistrital.edu.co/rectoria"}
	assert.Equal(t, 11, r.Score(onDomain, "¿Quién es el rector?"))
	assert.Equal(t, 6, r.Score(onDomain, "horarios de biblioteca"))

	offDomain := search.Result{Title: "El rector de otra universidad", URL: "https://other.edu.co/"}
	assert.Equal(t, 6, r.Score(offDomain, "rector"))

	assert.Equal(t, 0, r.Score(search.Result{URL: "https://example.com"}, "rector"))
	assert.Equal(t, 0, r.Score(search.Result{URL: "https://notudistrital.edu.com.co"}, ""))
}

func TestScoreExtendedRecency(t *testing.T) {
	r := newTestRanker(ModeExtended)
	base := search.Result{URL: "https://example.com/page"}

	cases := []struct {
		date string
		want int
	}{
		{"2025-06-12", 12},
		{"2025-06-01T10:00:00", 9},
		{"2025-03-01T10:00:00Z", 5},
		{"2024-09-01", 2},
		{"2022-01-01", 0},
		{"2030-06-01", 0},
		{"2025-06-16T08:00:00Z", 0},
		{"ayer", 0},
		{"", 0},
	}
	for _, tc := range cases {
		res := base
		res.PublishedDate = tc.date
		assert.Equal(t, tc.want, r.ScoreExtended(res, "x"), tc.date)
	}
}

func TestScoreExtendedIgnoresFutureDates(t *testing.T) {
	r := NewRanker(config.DefaultOrganization(), ModeExtended, WithClock(func() time.Time {
		return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	}))
	undated := search.Result{URL: "https://example.com/page"}
	future := undated
	future.PublishedDate = "2030-06-01"

	assert.Equal(t, r.ScoreExtended(undated, "x"), r.ScoreExtended(future, "x"))
}

func TestScoreExtendedBulletinAndTitleWords(t *testing.T) {
	r := newTestRanker(ModeExtended)

	assert.Equal(t, 7, r.ScoreExtended(search.Result{URL: "https://example.com/boletin-7"}, "x"))
	assert.Equal(t, 10, r.ScoreExtended(search.Result{URL: "https://example.com/noticias/boletin_no_125"}, "x"))
	assert.Equal(t, 0, r.ScoreExtended(search.Result{URL: "https://example.com/boletin"}, "x"))

	// +1 title, +4 freshness ("comunicado"), +2 role ("universidad distrital")
	res := search.Result{Title: "Comunicado de la Universidad Distrital", URL: "https://example.com/"}
	assert.Equal(t, 7, r.ScoreExtended(res, "x"))
}

func TestRankIsStableOnTies(t *testing.T) {
	results := []search.Result{
		{Title: "first", URL: "https://a.com"},
		{Title: "second", URL: "https://b.com"},
		{Title: "third", URL: "https://c.com"},
	}
	ranked := newTestRanker(ModeBasic).Rank(results, "q")
	assert.Equal(t, results, ranked)
}

func TestRankEndToEndRectorQuery(t *testing.T) {
	results := []search.Result{
		{Title: "Rector de la Universidad Nacional", URL: "https://unal.edu.co/rector", Content: "a"},
		{Title: "Rector UD", URL: "https://www.udistrital.edu.co/rector", Content: "b"},
	}
	ranked := newTestRanker(ModeExtended).Rank(results, "¿Quién es el rector?")
	require.Len(t, ranked, 2)
	assert.Equal(t, "Rector UD", ranked[0].Title)
}

func TestRewriterFirstRuleWins(t *testing.T) {
	rw := NewRewriter(config.DefaultOrganization())

	assert.Equal(t,
		"¿Quién es el rector? rector site:udistrital.edu.co Universidad Distrital",
		rw.RewriteString("¿Quién es el rector?"))
	assert.Equal(t,
		"Calendario Académico 2025 calendario académico site:udistrital.edu.co Universidad Distrital",
		rw.RewriteString("Calendario Académico 2025"))
	assert.Equal(t,
		"Ingenierías y sedes programas facultades carreras site:udistrital.edu.co Universidad Distrital",
		rw.RewriteString("Ingenierías y sedes"))
	assert.Equal(t, "horario de la biblioteca", rw.RewriteString("horario de la biblioteca"))

	assert.Nil(t, rw.Rewrite(nil))
	q := "admisiones"
	got := rw.Rewrite(&q)
	require.NotNil(t, got)
	assert.Equal(t, "admisiones admisiones site:udistrital.edu.co Universidad Distrital", *got)
	assert.Equal(t, "admisiones", q)
}
