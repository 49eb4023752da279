package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"testing"
	"time"

	"github.com/planestic/ud-assistant/internal/config"
	"github.com/planestic/ud-assistant/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedEngine struct {
	errs     []error
	results  []Result
	calls    int
	requests []Request
}

func (e *scriptedEngine) Name() string { return "scripted" }

func (e *scriptedEngine) Search(ctx context.Context, req Request) (*Response, error) {
	e.requests = append(e.requests, req)
	i := e.calls
	e.calls++
	if i < len(e.errs) && e.errs[i] != nil {
		return nil, e.errs[i]
	}
	return &Response{Query: req.Query, Results: e.results}, nil
}

type recordingSleeper struct {
	waits []time.Duration
}

func (s *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	s.waits = append(s.waits, d)
	return nil
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func newTestOrchestrator(engine Engine, s *recordingSleeper) *Orchestrator {
	return NewOrchestrator(engine, WithBaseWait(time.Second), WithSleeper(s.sleep))
}

func TestOrchestratorFatalCallsOnce(t *testing.T) {
	engine := &scriptedEngine{errs: []error{&ProviderError{Kind: KindFatal, StatusCode: 401, Err: ErrInvalidAPIKey}}}
	s := &recordingSleeper{}

	out := newTestOrchestrator(engine, s).Search(context.Background(), "rector", config.WebSearchConfig{})

	assert.Equal(t, 1, engine.calls)
	assert.Empty(t, out.Results)
	assert.Equal(t, KindFatal, out.Kind)
	assert.False(t, out.ConnectionFailed())
	assert.Empty(t, s.waits)
}

func TestOrchestratorTransientThenSuccess(t *testing.T) {
	engine := &scriptedEngine{
		errs:    []error{timeoutErr{}, timeoutErr{}},
		results: []Result{{Title: "ok", URL: "https://udistrital.edu.co", Content: "x"}},
	}
	s := &recordingSleeper{}

	out := newTestOrchestrator(engine, s).Search(context.Background(), "rector", config.WebSearchConfig{})

	assert.Equal(t, 3, engine.calls)
	assert.Equal(t, 3, out.Attempts)
	require.Len(t, out.Results, 1)
	assert.NoError(t, out.Err)
	assert.Equal(t, []time.Duration{time.Second, 2*time.Second + 100*time.Millisecond}, s.waits)
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, IsTimeout(timeoutErr{}))
	assert.True(t, IsTimeout(fmt.Errorf("search: %w", context.DeadlineExceeded)))
	assert.False(t, IsTimeout(context.Canceled))
	assert.False(t, IsTimeout(errors.New("boom")))
}

func TestOrchestratorLogsTimeoutRetries(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	engine := &scriptedEngine{errs: []error{timeoutErr{}, errors.New("boom")}}
	newTestOrchestrator(engine, &recordingSleeper{}).Search(context.Background(), "rector", config.WebSearchConfig{})

	out := buf.String()
	assert.Contains(t, out, "Timed out on attempt 1")
	assert.NotContains(t, out, "Timed out on attempt 2")
}

func TestOrchestratorUnclassifiedBackoff(t *testing.T) {
	bad := &ProviderError{Kind: KindUnclassified, Detail: "failed to parse response"}
	engine := &scriptedEngine{errs: []error{bad, bad, bad}}
	s := &recordingSleeper{}

	out := newTestOrchestrator(engine, s).Search(context.Background(), "rector", config.WebSearchConfig{})

	assert.Equal(t, 3, engine.calls)
	assert.Empty(t, out.Results)
	assert.Equal(t, KindUnclassified, out.Kind)
	assert.False(t, out.ConnectionFailed())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, s.waits)
}

func TestOrchestratorTransientExhaustedReportsConnectionFailure(t *testing.T) {
	engine := &scriptedEngine{errs: []error{timeoutErr{}, timeoutErr{}, timeoutErr{}}}
	s := &recordingSleeper{}

	out := newTestOrchestrator(engine, s).Search(context.Background(), "rector", config.WebSearchConfig{})

	assert.Equal(t, 3, engine.calls)
	assert.Empty(t, out.Results)
	assert.True(t, out.ConnectionFailed())
	assert.Len(t, s.waits, 2)
}

func TestOrchestratorEmptyQueryShortCircuits(t *testing.T) {
	engine := &scriptedEngine{}
	out := NewOrchestrator(engine).Search(context.Background(), "  \n ", config.WebSearchConfig{})
	assert.Zero(t, engine.calls)
	assert.Empty(t, out.Results)
	assert.NoError(t, out.Err)
}

func TestOrchestratorSendsCleanedRecencyRequest(t *testing.T) {
	engine := &scriptedEngine{}
	cfg := config.WebSearchConfig{Country: "colombia", Days: 0}
	NewOrchestrator(engine).Search(context.Background(), "noticias\nde hoy", cfg)

	require.Len(t, engine.requests, 1)
	req := engine.requests[0]
	assert.Equal(t, "noticias de hoy", req.Query)
	assert.Equal(t, TopicNews, req.Topic)
	assert.Equal(t, "week", req.TimeRange)
	assert.Empty(t, req.Country)
}

func TestOrchestratorStopsOnCancelledContext(t *testing.T) {
	engine := &scriptedEngine{errs: []error{timeoutErr{}, timeoutErr{}, timeoutErr{}}}
	ctx, cancel := context.WithCancel(context.Background())
	o := NewOrchestrator(engine, WithSleeper(func(context.Context, time.Duration) error {
		cancel()
		return context.Canceled
	}))

	out := o.Search(ctx, "rector", config.WebSearchConfig{})
	assert.Equal(t, 1, engine.calls)
	assert.Empty(t, out.Results)
	assert.True(t, errors.Is(out.Err, context.Canceled))
}

func TestOrchestratorFromConfig(t *testing.T) {
	o := OrchestratorFromConfig(&scriptedEngine{}, config.WebSearchConfig{MaxAttempts: 5, BaseWaitMillis: 10})
	assert.Equal(t, 5, o.maxAttempts)
	assert.Equal(t, 10*time.Millisecond, o.baseWait)
}
