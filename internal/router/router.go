// Package router connects chat platforms to a message handler.
package router

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/planestic/ud-assistant/internal/logger"
)

// Message is an incoming message from a platform.
type Message struct {
	ID        string
	Platform  string
	ChannelID string
	UserID    string
	Username  string
	Text      string
	ThreadID  string
	Metadata  map[string]string
}

// Response is the reply sent back to the platform.
type Response struct {
	Text     string
	ThreadID string
	Metadata map[string]string
}

// Platform is a chat service the router listens on.
type Platform interface {
	Name() string
	SetMessageHandler(handler func(msg Message))
	Start(ctx context.Context) error
	Stop() error
	Send(ctx context.Context, channelID string, resp Response) error
}

// Handler answers one message.
type Handler func(ctx context.Context, msg Message) (Response, error)

const (
	DefaultWorkers = 8
	replyTimeout   = 2 * time.Minute
)

// Router dispatches platform messages onto a bounded worker pool.
type Router struct {
	handler   Handler
	workers   int
	platforms map[string]Platform
	pool      *ants.Pool
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.RWMutex
}

type Option func(*Router)

// WithWorkers bounds the number of messages handled at once.
func WithWorkers(n int) Option {
	return func(r *Router) {
		if n > 0 {
			r.workers = n
		}
	}
}

func New(handler Handler, opts ...Option) *Router {
	r := &Router{
		handler:   handler,
		workers:   DefaultWorkers,
		platforms: make(map[string]Platform),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a platform. Platforms must be registered before Start.
func (r *Router) Register(p Platform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.platforms[p.Name()] = p
	p.SetMessageHandler(func(msg Message) {
		r.dispatch(p, msg)
	})
}

// Platforms returns the registered platform names.
func (r *Router) Platforms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.platforms))
	for name := range r.platforms {
		names = append(names, name)
	}
	return names
}

// Start creates the worker pool and starts every registered platform.
func (r *Router) Start(ctx context.Context) error {
	pool, err := ants.NewPool(r.workers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	r.pool = pool
	r.ctx, r.cancel = context.WithCancel(ctx)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for name, p := range r.platforms {
		if err := p.Start(r.ctx); err != nil {
			return fmt.Errorf("start %s: %w", name, err)
		}
		logger.Info("[Router] Platform started: %s", name)
	}
	return nil
}

// Stop stops every platform and waits for in-flight messages.
func (r *Router) Stop() {
	r.mu.RLock()
	for name, p := range r.platforms {
		if err := p.Stop(); err != nil {
			logger.Warn("[Router] Failed to stop %s: %v", name, err)
		}
	}
	r.mu.RUnlock()

	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
	if r.pool != nil {
		r.pool.Release()
	}
}

func (r *Router) dispatch(p Platform, msg Message) {
	if r.pool == nil {
		logger.Warn("[Router] Message from %s dropped: router not started", p.Name())
		return
	}
	r.wg.Add(1)
	err := r.pool.Submit(func() {
		defer r.wg.Done()
		r.handle(p, msg)
	})
	if err != nil {
		r.wg.Done()
		if errors.Is(err, ants.ErrPoolClosed) {
			return
		}
		logger.Error("[Router] Failed to queue message from %s: %v", p.Name(), err)
	}
}

func (r *Router) handle(p Platform, msg Message) {
	ctx, cancel := context.WithTimeout(r.ctx, replyTimeout)
	defer cancel()

	logger.Debug("[Router] %s/%s from %s: %q", msg.Platform, msg.ChannelID, msg.Username, msg.Text)

	resp, err := r.handler(ctx, msg)
	if err != nil {
		logger.Error("[Router] Handler error for %s message %s: %v", msg.Platform, msg.ID, err)
		return
	}
	if resp.Text == "" {
		return
	}
	if resp.ThreadID == "" {
		resp.ThreadID = msg.ID
	}
	if err := p.Send(ctx, msg.ChannelID, resp); err != nil {
		logger.Error("[Router] Failed to send reply on %s: %v", p.Name(), err)
	}
}
