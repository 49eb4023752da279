package router

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlatform struct {
	handler func(Message)
	mu      sync.Mutex
	sent    []Response
	started bool
	stopped bool
	done    chan struct{}
}

func newFakePlatform(expected int) *fakePlatform {
	return &fakePlatform{done: make(chan struct{}, expected)}
}

func (f *fakePlatform) Name() string                         { return "fake" }
func (f *fakePlatform) SetMessageHandler(h func(msg Message)) { f.handler = h }
func (f *fakePlatform) Start(ctx context.Context) error       { f.started = true; return nil }
func (f *fakePlatform) Stop() error                          { f.stopped = true; return nil }

func (f *fakePlatform) Send(ctx context.Context, channelID string, resp Response) error {
	f.mu.Lock()
	f.sent = append(f.sent, resp)
	f.mu.Unlock()
	f.done <- struct{}{}
	return nil
}

func TestRouterDispatchesAndReplies(t *testing.T) {
	p := newFakePlatform(3)
	r := New(func(ctx context.Context, msg Message) (Response, error) {
		return Response{Text: "re: " + msg.Text}, nil
	}, WithWorkers(2))
	r.Register(p)
	require.NoError(t, r.Start(context.Background()))
	assert.True(t, p.started)

	for _, text := range []string{"a", "b", "c"} {
		p.handler(Message{ID: "m-" + text, Platform: "fake", ChannelID: "1", Text: text})
	}
	for i := 0; i < 3; i++ {
		select {
		case <-p.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for reply %d", i)
		}
	}
	r.Stop()
	assert.True(t, p.stopped)

	p.mu.Lock()
	defer p.mu.Unlock()
	require.Len(t, p.sent, 3)
	texts := map[string]string{}
	for _, resp := range p.sent {
		texts[resp.Text] = resp.ThreadID
	}
	assert.Equal(t, "m-a", texts["re: a"])
	assert.Equal(t, "m-c", texts["re: c"])
}

func TestRouterSkipsEmptyReplies(t *testing.T) {
	p := newFakePlatform(1)
	handled := make(chan struct{}, 1)
	r := New(func(ctx context.Context, msg Message) (Response, error) {
		handled <- struct{}{}
		return Response{}, nil
	})
	r.Register(p)
	require.NoError(t, r.Start(context.Background()))

	p.handler(Message{ID: "1", Text: "x"})
	select {
	case <-handled:
	case <-time.After(2 * time.Second):
		t.Fatal("handler not called")
	}
	r.Stop()
	assert.Empty(t, p.sent)
	assert.Equal(t, []string{"fake"}, r.Platforms())
}
