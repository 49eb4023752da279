// Package assistant answers questions about the organization from web
// search results.
package assistant

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/planestic/ud-assistant/internal/ai"
	"github.com/planestic/ud-assistant/internal/config"
	"github.com/planestic/ud-assistant/internal/contextpack"
	"github.com/planestic/ud-assistant/internal/logger"
	"github.com/planestic/ud-assistant/internal/promptbuild"
	"github.com/planestic/ud-assistant/internal/rank"
	"github.com/planestic/ud-assistant/internal/router"
	"github.com/planestic/ud-assistant/internal/search"
	"github.com/planestic/ud-assistant/internal/smalltalk"
)

const (
	NoResultsMessage = "Lo siento, no pude encontrar información relevante en la web para responder tu consulta."
	PanicMessage     = "Lo siento, ocurrió un error al procesar tu solicitud."
)

// Assistant runs the search, rank, pack and answer pipeline. All fields are
// set at construction and read-only afterwards.
type Assistant struct {
	botType   string
	search    config.WebSearchConfig
	rewriter  *rank.Rewriter
	searcher  *search.Orchestrator
	ranker    *rank.Ranker
	packer    contextpack.Packer
	prompts   *promptbuild.Builder
	style     promptbuild.Style
	provider  ai.Provider
	smalltalk *smalltalk.Responder

	served   atomic.Int64
	degraded atomic.Int64
}

type options struct {
	searchOpts []search.OrchestratorOption
	rankOpts   []rank.Option
	responder  *smalltalk.Responder
}

type Option func(*options)

// WithSearchOptions configures the retry orchestrator.
func WithSearchOptions(opts ...search.OrchestratorOption) Option {
	return func(o *options) { o.searchOpts = append(o.searchOpts, opts...) }
}

// WithRankOptions configures the ranker.
func WithRankOptions(opts ...rank.Option) Option {
	return func(o *options) { o.rankOpts = append(o.rankOpts, opts...) }
}

// WithResponder replaces the small talk responder.
func WithResponder(r *smalltalk.Responder) Option {
	return func(o *options) { o.responder = r }
}

// New wires an assistant. engine may be nil, in which case every search
// yields no results.
func New(cfg *config.Config, engine search.Engine, provider ai.Provider, opts ...Option) *Assistant {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.responder == nil {
		o.responder = smalltalk.NewResponder(nil)
	}

	return &Assistant{
		botType:   cfg.BotType,
		search:    cfg.WebSearch,
		rewriter:  rank.NewRewriter(cfg.Organization),
		searcher:  search.OrchestratorFromConfig(engine, cfg.WebSearch, o.searchOpts...),
		ranker:    rank.NewRanker(cfg.Organization, cfg.Ranking.Mode, o.rankOpts...),
		packer:    contextpack.ForBot(cfg.BotType, cfg.Context),
		prompts:   promptbuild.NewBuilder(cfg.Organization),
		style:     promptbuild.StyleForBot(cfg.BotType),
		provider:  provider,
		smalltalk: o.responder,
	}
}

// FromConfig builds the search engine and the model provider named in cfg.
// A search engine that cannot be created is logged and searches return no
// results; an unsupported bot type is an error.
func FromConfig(cfg *config.Config, opts ...Option) (*Assistant, error) {
	provider, err := ai.New(cfg.BotType, cfg.BotConfig)
	if err != nil {
		return nil, err
	}

	engine, err := search.NewRegistry().CreateEngine(cfg.WebSearch.Provider, cfg.WebSearch)
	if err != nil {
		logger.Error("[Assistant] Web search disabled: %v", err)
		engine = nil
	}

	return New(cfg, engine, provider, opts...), nil
}

// Answer is the outcome of one question.
type Answer struct {
	RequestID string
	Query     string
	Text      string
	Intent    smalltalk.Intent
	Sources   []search.Result
	Degraded  bool
	Duration  time.Duration
}

// GetAnswer returns the reply to query. It never fails: errors and panics
// become apologetic messages.
func (a *Assistant) GetAnswer(ctx context.Context, query string) string {
	return a.Ask(ctx, query).Text
}

// Ask is GetAnswer with the sources and request metadata.
func (a *Assistant) Ask(ctx context.Context, query string) (ans Answer) {
	start := time.Now()
	ans = Answer{RequestID: uuid.NewString(), Query: query}

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("[Assistant] [%s] panic: %v\n%s", ans.RequestID, rec, debug.Stack())
			ans.Text = PanicMessage
			ans.Sources = nil
			ans.Degraded = true
		}
		ans.Duration = time.Since(start)
		a.served.Add(1)
		if ans.Degraded {
			a.degraded.Add(1)
		}
		logger.Info("[Assistant] [%s] answered in %s (degraded=%t)", ans.RequestID, ans.Duration.Round(time.Millisecond), ans.Degraded)
	}()

	if reply, ok := a.smalltalk.Reply(query); ok {
		ans.Intent = smalltalk.Detect(query)
		ans.Text = reply
		logger.Debug("[Assistant] [%s] small talk: %s", ans.RequestID, ans.Intent)
		return ans
	}

	packed, _, used, outcome := a.retrieve(ctx, ans.RequestID, query)
	if len(used) == 0 {
		ans.Degraded = true
		if outcome.ConnectionFailed() {
			ans.Text = ai.FallbackMessage(ai.FailureConnection)
			return ans
		}
		logger.Warn("[Assistant] [%s] No web results for %q", ans.RequestID, query)
		ans.Text = NoResultsMessage
		return ans
	}
	ans.Sources = used

	prompt, err := a.prompts.BuildFor(a.style, packed, query)
	if err != nil {
		logger.Error("[Assistant] [%s] %v", ans.RequestID, err)
		ans.Degraded = true
		ans.Text = ai.FallbackMessage(ai.FailureUnknown)
		return ans
	}

	text, err := a.provider.Complete(ctx, prompt)
	if err != nil {
		kind := ai.Classify(err)
		logger.Error("[Assistant] [%s] %s call failed (%s): %v", ans.RequestID, a.provider.Name(), kind, err)
		ans.Degraded = true
		ans.Text = ai.FallbackMessage(kind)
		return ans
	}
	ans.Text = text
	return ans
}

// Context returns the packed context and ranked sources for query without
// calling the model.
func (a *Assistant) Context(ctx context.Context, query string) (string, []search.Result, search.Outcome) {
	packed, ranked, _, outcome := a.retrieve(ctx, uuid.NewString(), query)
	return packed, ranked, outcome
}

// retrieve returns the packed context, every ranked result and the subset
// of ranked results the packer kept.
func (a *Assistant) retrieve(ctx context.Context, requestID, query string) (packed string, ranked, used []search.Result, outcome search.Outcome) {
	effective := a.rewriter.RewriteString(query)
	logger.Info("[Assistant] [%s] Searching for %q", requestID, effective)

	outcome = a.searcher.Search(ctx, effective, a.search)
	valid := rank.FilterValid(outcome.Results)
	if len(valid) == 0 {
		return "", nil, nil, outcome
	}

	ranked = a.ranker.Rank(valid, query)
	packed, used = a.packer.Pack(ranked)
	logger.Info("[Assistant] [%s] Context prepared (len=%d chars, sources=%d/%d)", requestID, len(packed), len(used), len(ranked))
	return packed, ranked, used, outcome
}

// HandleMessage answers a chat platform message.
func (a *Assistant) HandleMessage(ctx context.Context, msg router.Message) (router.Response, error) {
	if msg.Text == "" {
		return router.Response{}, nil
	}
	return router.Response{Text: a.GetAnswer(ctx, msg.Text)}, nil
}

// Info describes the running configuration.
type Info struct {
	BotType  string `json:"bot_type"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Engine   string `json:"search_engine"`
	Served   int64  `json:"served"`
	Degraded int64  `json:"degraded"`
}

func (a *Assistant) Info() Info {
	info := Info{
		BotType:  a.botType,
		Served:   a.served.Load(),
		Degraded: a.degraded.Load(),
	}
	if a.provider != nil {
		info.Provider = a.provider.Name()
		info.Model = a.provider.Model()
	}
	if e := a.searcher.Engine(); e != nil {
		info.Engine = e.Name()
	}
	return info
}

func (i Info) String() string {
	return fmt.Sprintf("bot=%s model=%s search=%s", i.BotType, i.Model, i.Engine)
}
