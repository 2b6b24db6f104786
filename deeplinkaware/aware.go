// Package deeplinkaware connects a deeplink.Router to a host application's
// lifecycle: the link the application was launched with is held until the
// application is ready, and links delivered while it runs are routed as
// they arrive.
package deeplinkaware

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/vitalvas/deeplinks/deeplink"
)

// Option configures an Aware.
type Option func(*Aware)

// WithLogger sets the logger used for unparsable and unhandled links.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Aware) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// Aware routes launch and runtime links through a router. Routing is
// serialized, so handlers never run concurrently. A link submitted while
// another one is being routed, including from inside a handler, is queued
// and routed right after it by the goroutine already routing.
type Aware struct {
	router *deeplink.Router
	logger *zap.Logger

	mu       sync.Mutex
	initial  string
	started  bool
	queue    []string
	draining bool
}

// New returns an Aware for router.
func New(router *deeplink.Router, opts ...Option) *Aware {
	a := &Aware{
		router: router,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetInitial records the launch link. Blank values are ignored. After Start
// the link is routed like one passed to Notify.
func (a *Aware) SetInitial(raw string) {
	if strings.TrimSpace(raw) == "" {
		return
	}

	a.mu.Lock()
	if !a.started {
		a.initial = raw
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()

	a.Notify(raw)
}

// Start marks the application ready and routes the deferred launch link,
// if any. Only the first call has an effect; it reports whether a handler
// was selected for the link.
func (a *Aware) Start() bool {
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return false
	}
	a.started = true
	raw := a.initial
	a.initial = ""
	a.mu.Unlock()

	if raw == "" {
		return false
	}

	a.logger.Debug("routing launch link", zap.String("uri", raw))
	return a.submit(raw)
}

// Notify routes a link received while the application runs and reports
// whether a handler was selected for it. Links that do not parse as
// absolute URIs are logged and dropped. A link queued behind one that is
// being routed reports false; its outcome is logged.
func (a *Aware) Notify(raw string) bool {
	return a.submit(raw)
}

// submit queues raw and drains the queue unless another call is already
// draining it. The lock is never held while routing.
func (a *Aware) submit(raw string) bool {
	a.mu.Lock()
	a.queue = append(a.queue, raw)
	if a.draining {
		a.mu.Unlock()
		a.logger.Debug("deep link queued", zap.String("uri", raw))
		return false
	}
	a.draining = true

	var handled bool
	for first := true; len(a.queue) > 0; first = false {
		next := a.queue[0]
		a.queue = a.queue[1:]
		a.mu.Unlock()

		ok := a.process(next)
		if first {
			handled = ok
		}

		a.mu.Lock()
	}
	a.queue = nil
	a.draining = false
	a.mu.Unlock()

	return handled
}

func (a *Aware) process(raw string) bool {
	handled, err := a.router.ProcessDeepLinkString(raw)
	if err != nil {
		a.logger.Warn("invalid deep link", zap.String("uri", raw), zap.Error(err))
		return false
	}
	if !handled {
		a.logger.Debug("deep link not handled", zap.String("uri", raw))
	}
	return handled
}

// Run starts a and then routes every link received on links until the
// channel is closed or ctx is done. It returns ctx.Err() when cancelled and
// nil when the channel closes.
func (a *Aware) Run(ctx context.Context, links <-chan string) error {
	a.Start()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok := <-links:
			if !ok {
				return nil
			}
			a.Notify(raw)
		}
	}
}
