package search

import (
	"context"
	"time"

	"github.com/planestic/ud-assistant/internal/config"
	"github.com/planestic/ud-assistant/internal/logger"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseWait    = time.Second
)

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Outcome is the result of an orchestrated search. Results is empty on any
// failure; Kind and Err describe the last failed attempt.
type Outcome struct {
	Query    string
	Results  []Result
	Attempts int
	Kind     ErrorKind
	Err      error
}

// ConnectionFailed reports whether every attempt failed for a transient
// reason, as opposed to the provider answering with nothing.
func (o Outcome) ConnectionFailed() bool {
	return o.Err != nil && o.Kind == KindTransient
}

// Orchestrator runs searches against one engine with the retry policy for
// each ErrorKind.
type Orchestrator struct {
	engine      Engine
	maxAttempts int
	baseWait    time.Duration
	sleep       Sleeper
}

type OrchestratorOption func(*Orchestrator)

func WithMaxAttempts(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

func WithBaseWait(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if d >= 0 {
			o.baseWait = d
		}
	}
}

// WithSleeper replaces the timer-based wait between attempts.
func WithSleeper(s Sleeper) OrchestratorOption {
	return func(o *Orchestrator) {
		if s != nil {
			o.sleep = s
		}
	}
}

func NewOrchestrator(engine Engine, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		engine:      engine,
		maxAttempts: DefaultMaxAttempts,
		baseWait:    DefaultBaseWait,
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// OrchestratorFromConfig applies the attempt count and base wait of cfg.
func OrchestratorFromConfig(engine Engine, cfg config.WebSearchConfig, opts ...OrchestratorOption) *Orchestrator {
	base := []OrchestratorOption{
		WithMaxAttempts(cfg.MaxAttempts),
	}
	if cfg.BaseWaitMillis > 0 {
		base = append(base, WithBaseWait(time.Duration(cfg.BaseWaitMillis)*time.Millisecond))
	}
	return NewOrchestrator(engine, append(base, opts...)...)
}

func (o *Orchestrator) Engine() Engine {
	return o.engine
}

// backoff returns the wait before the attempt following attempt (0-based).
func (o *Orchestrator) backoff(kind ErrorKind, attempt int) time.Duration {
	switch kind {
	case KindTransient:
		return o.baseWait*time.Duration(1<<attempt) + time.Duration(attempt)*100*time.Millisecond
	default:
		return o.baseWait * time.Duration(attempt+1)
	}
}

// Search cleans the query, resolves its time window and calls the engine.
// It never returns an error; failures are reported through the Outcome.
func (o *Orchestrator) Search(ctx context.Context, query string, cfg config.WebSearchConfig) Outcome {
	q := Clean(query)
	out := Outcome{Query: q, Results: []Result{}}
	if q == "" {
		logger.Error("[Search] Empty query after cleaning")
		return out
	}
	if o.engine == nil {
		logger.Error("[Search] No search engine configured")
		out.Kind = KindFatal
		out.Err = ErrMissingAPIKey
		return out
	}

	tp := ResolveTopicAndTime(cfg, q)
	req := NewRequest(q, cfg, tp)
	logger.Debug("[Search] topic=%s time_range=%s days=%d", tp.Topic, tp.TimeRange, req.Days)

	for attempt := 0; attempt < o.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			out.Kind = KindFatal
			out.Err = err
			return out
		}

		out.Attempts = attempt + 1
		logger.Debug("[Search] Attempt %d for %q", attempt+1, truncate(q, 50))

		resp, err := o.engine.Search(ctx, req)
		if err == nil {
			out.Kind = KindNone
			out.Err = nil
			if resp != nil && resp.Results != nil {
				out.Results = resp.Results
			}
			var responseTime float64
			if resp != nil {
				responseTime = resp.ResponseTime
			}
			logger.Info("[Search] %d results in %.2fs for %q", len(out.Results), responseTime, truncate(q, 30))
			return out
		}

		kind := Classify(err)
		out.Kind = kind
		out.Err = err

		if kind == KindFatal {
			logger.Error("[Search] Search failed, not retrying: %v", err)
			return out
		}
		if attempt == o.maxAttempts-1 {
			logger.Error("[Search] Search failed after %d attempts: %v", o.maxAttempts, err)
			return out
		}

		wait := o.backoff(kind, attempt)
		if IsTimeout(err) {
			logger.Warn("[Search] Timed out on attempt %d, retrying in %s: %v", attempt+1, wait, err)
		} else {
			logger.Warn("[Search] %s error on attempt %d, retrying in %s: %v", kind, attempt+1, wait, err)
		}
		if err := o.sleep(ctx, wait); err != nil {
			out.Kind = KindFatal
			out.Err = err
			return out
		}
	}

	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
