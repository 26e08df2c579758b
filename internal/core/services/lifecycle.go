package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/linkcard/internal/core/domain"
	"github.com/custodia-labs/linkcard/internal/core/ports/driven"
	"github.com/custodia-labs/linkcard/internal/core/ports/driving"
	"github.com/custodia-labs/linkcard/internal/logger"
)

// Ensure Controller and its helpers implement the interfaces.
var (
	_ driving.PreviewController = (*Controller)(nil)
	_ driving.PreviewSession    = (*FetchSession)(nil)
	_ driving.PreviewHandle     = (*Handle)(nil)
)

// ControllerOptions configure a Controller.
type ControllerOptions struct {
	// EnableAnimation calls Animator before each accepted result is stored.
	EnableAnimation bool

	// Animator is the layout transition hint. Optional.
	Animator driven.LayoutAnimator

	// Metrics records lifecycle events. Optional.
	Metrics driven.PreviewMetrics

	// OnFetched is notified with every accepted fetch result. Optional.
	// It is not called for adopted precomputed data.
	OnFetched func(domain.PreviewData)

	// OnAccepted is like OnFetched but also receives the session's request.
	// Optional; called before OnFetched.
	OnAccepted func(req domain.PreviewRequest, data domain.PreviewData)
}

// FetchSession tracks one in-flight fetch and whether its result still matters.
type FetchSession struct {
	id        string
	req       domain.PreviewRequest
	startedAt time.Time
	fetcher   driven.PreviewFetcher
	metrics   driven.PreviewMetrics

	cancelled atomic.Bool
	resolved  atomic.Bool
}

func newFetchSession(req domain.PreviewRequest, fetcher driven.PreviewFetcher, metrics driven.PreviewMetrics) *FetchSession {
	return &FetchSession{
		id:        uuid.New().String(),
		req:       req,
		startedAt: time.Now(),
		fetcher:   fetcher,
		metrics:   metrics,
	}
}

// ID returns the session identifier.
func (s *FetchSession) ID() string {
	return s.id
}

// Request returns the inputs the session was started for.
func (s *FetchSession) Request() domain.PreviewRequest {
	return s.req
}

// StartedAt returns when the session was created.
func (s *FetchSession) StartedAt() time.Time {
	return s.startedAt
}

// Fetch invokes the fetch collaborator with the session's text and timeout.
func (s *FetchSession) Fetch(ctx context.Context) domain.PreviewData {
	start := time.Now()
	data := s.fetcher.Fetch(ctx, s.req.Text, s.req.RequestTimeout)
	s.metrics.FetchDuration(time.Since(start))
	return data
}

// Cancel marks the session stale. Only the first call has an effect.
func (s *FetchSession) Cancel() {
	if s.cancelled.CompareAndSwap(false, true) {
		logger.Debug("Session %s cancelled", s.id)
	}
}

// Cancelled reports whether the session has been cancelled.
func (s *FetchSession) Cancelled() bool {
	return s.cancelled.Load()
}

// Handle is the cancel handle of a background fetch started by Start or Update.
type Handle struct {
	session *FetchSession
	done    chan struct{}
}

func closedHandle() *Handle {
	h := &Handle{done: make(chan struct{})}
	close(h.done)
	return h
}

// Cancel suppresses the effect of the running fetch. The fetch itself keeps running.
func (h *Handle) Cancel() {
	if h.session != nil {
		h.session.Cancel()
	}
}

// Done is closed once the result has been accepted or discarded.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Session returns the session behind the handle, or nil when no fetch was needed.
func (h *Handle) Session() *FetchSession {
	return h.session
}

// Controller owns the fetch lifecycle of a single preview card.
//
// At most one session is live at a time. Every new request cancels the live
// session before anything else happens, and a cancelled session's result is
// dropped when it resolves.
type Controller struct {
	fetcher driven.PreviewFetcher
	opts    ControllerOptions

	// subMu serialises Update and Close so handle swaps stay ordered.
	subMu  sync.Mutex
	handle *Handle

	mu     sync.Mutex
	state  *StateStore
	live   *FetchSession
	last   *domain.PreviewRequest
	closed bool
}

// NewController creates a controller that fetches through fetcher.
func NewController(fetcher driven.PreviewFetcher, opts ControllerOptions) *Controller {
	if opts.Metrics == nil {
		opts.Metrics = nopMetrics{}
	}
	return &Controller{
		fetcher: fetcher,
		opts:    opts,
		state:   NewStateStore(),
	}
}

// Begin applies req and returns the session to fetch, or nil when no fetch
// is needed. The caller runs Fetch and passes the result to Resolve.
func (c *Controller) Begin(req domain.PreviewRequest) driving.PreviewSession {
	if s := c.begin(req); s != nil {
		return s
	}
	return nil
}

func (c *Controller) begin(req domain.PreviewRequest) *FetchSession {
	req = req.WithDefaults()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.cancelLiveLocked()
	c.last = &req

	if req.Precomputed != nil {
		data := *req.Precomputed
		c.state.store(&data)
		c.opts.Metrics.PrecomputedAdopted()
		logger.Debug("Adopted precomputed preview for %q", req.Text)
		return nil
	}

	// Stale content must not linger across inputs.
	c.state.store(nil)

	s := newFetchSession(req, c.fetcher, c.opts.Metrics)
	c.live = s
	c.opts.Metrics.SessionStarted()
	logger.Debug("Session %s started for %q (timeout %s)", s.id, req.Text, req.RequestTimeout)
	return s
}

// Resolve hands a session's result back to the controller.
// It returns true when the result was accepted into state.
func (c *Controller) Resolve(session driving.PreviewSession, data domain.PreviewData) bool {
	s, ok := session.(*FetchSession)
	if !ok || s == nil {
		return false
	}
	return c.resolve(s, data)
}

func (c *Controller) resolve(s *FetchSession, data domain.PreviewData) bool {
	if !s.resolved.CompareAndSwap(false, true) {
		return false
	}

	c.mu.Lock()
	if s.Cancelled() || c.closed {
		c.mu.Unlock()
		c.opts.Metrics.SessionDiscarded()
		logger.Debug("Session %s discarded", s.id)
		return false
	}

	if c.opts.EnableAnimation && c.opts.Animator != nil {
		c.opts.Animator.Animate()
	}

	accepted := data
	c.state.store(&accepted)
	if c.live == s {
		c.live = nil
	}
	onAccepted, onFetched := c.opts.OnAccepted, c.opts.OnFetched
	c.mu.Unlock()

	c.opts.Metrics.SessionAccepted()
	logger.Debug("Session %s accepted after %s (title=%q, link=%q)", s.id, time.Since(s.StartedAt()).Round(time.Millisecond), data.Title, data.Link)

	if onAccepted != nil {
		onAccepted(s.req, data)
	}
	if onFetched != nil {
		onFetched(data)
	}
	return true
}

// Start begins a lifecycle for req and runs the fetch in the background.
// The returned handle's Cancel only suppresses the result.
func (c *Controller) Start(ctx context.Context, req domain.PreviewRequest) *Handle {
	s := c.begin(req)
	if s == nil {
		return closedHandle()
	}

	h := &Handle{session: s, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		data := s.Fetch(ctx)
		c.resolve(s, data)
	}()
	return h
}

// Update restarts the lifecycle when req differs by value from the last
// request. The previous handle is cancelled before the new one starts.
func (c *Controller) Update(ctx context.Context, req domain.PreviewRequest) driving.PreviewHandle {
	return c.update(ctx, req)
}

func (c *Controller) update(ctx context.Context, req domain.PreviewRequest) *Handle {
	req = req.WithDefaults()

	c.subMu.Lock()
	defer c.subMu.Unlock()

	c.mu.Lock()
	unchanged := !c.closed && c.handle != nil && c.last != nil && c.last.Equal(req)
	c.mu.Unlock()
	if unchanged {
		return c.handle
	}

	if c.handle != nil {
		c.handle.Cancel()
	}
	c.handle = c.Start(ctx, req)
	return c.handle
}

// State returns the currently accepted preview, or nil.
func (c *Controller) State() *domain.PreviewData {
	return c.state.Load()
}

// Live returns the session whose result is still awaited, or nil.
func (c *Controller) Live() *FetchSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live
}

// Close tears the controller down. Outstanding results are discarded when
// they arrive. Close is safe to call more than once.
func (c *Controller) Close() {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.cancelLiveLocked()
}

// cancelLiveLocked cancels the live session (caller must hold mu).
func (c *Controller) cancelLiveLocked() {
	if c.live != nil {
		c.live.Cancel()
		c.live = nil
	}
}

// nopMetrics is used when no metrics sink is configured.
type nopMetrics struct{}

func (nopMetrics) SessionStarted()             {}
func (nopMetrics) SessionAccepted()            {}
func (nopMetrics) SessionDiscarded()           {}
func (nopMetrics) PrecomputedAdopted()         {}
func (nopMetrics) FetchDuration(time.Duration) {}
