package driving

import (
	"context"

	"github.com/custodia-labs/linkcard/internal/core/domain"
)

// PreviewSession is one fetch lifecycle run.
// A session is created by PreviewController.Begin and never reused.
type PreviewSession interface {
	// ID uniquely identifies the session.
	ID() string

	// Request returns the inputs the session was started for.
	Request() domain.PreviewRequest

	// Fetch invokes the fetch collaborator for the session's inputs.
	// It blocks until the collaborator returns and never fails.
	Fetch(ctx context.Context) domain.PreviewData

	// Cancel marks the session stale. It does not interrupt Fetch.
	Cancel()

	// Cancelled reports whether the session has been cancelled.
	Cancelled() bool
}

// PreviewHandle is returned by PreviewController.Update.
type PreviewHandle interface {
	// Cancel suppresses the effect of the running fetch, if any.
	Cancel()

	// Done is closed once the session's result has been accepted or discarded.
	Done() <-chan struct{}
}

// PreviewController owns the fetch lifecycle of a single card.
type PreviewController interface {
	// Begin cancels the live session and applies req.
	// It returns the new session to fetch, or nil when no fetch is needed
	// (precomputed data was adopted or the controller is closed).
	Begin(req domain.PreviewRequest) PreviewSession

	// Resolve hands a session's result back. It returns true if the result
	// was accepted and false if the session was stale.
	Resolve(session PreviewSession, data domain.PreviewData) bool

	// Update restarts the lifecycle when req differs from the last request
	// and runs the fetch in the background.
	Update(ctx context.Context, req domain.PreviewRequest) PreviewHandle

	// State returns the currently accepted preview, or nil.
	State() *domain.PreviewData

	// Close tears the controller down. Pending results are discarded.
	Close()
}

// ControllerOptions customise a controller created by PreviewService.
type ControllerOptions struct {
	// Animate is called right before an accepted result is shown.
	// Only used when animation is enabled in settings.
	Animate func()

	// OnFetched is notified with every accepted fetch result.
	OnFetched func(domain.PreviewData)
}

// PreviewService resolves and renders link previews.
type PreviewService interface {
	// Resolve runs one lifecycle to completion and returns the accepted
	// preview. Precomputed data is returned without fetching.
	Resolve(ctx context.Context, req domain.PreviewRequest) (*domain.PreviewData, error)

	// NewController creates a lifecycle controller wired to the
	// configured fetcher, metrics and history.
	NewController(opts ControllerOptions) PreviewController

	// Policy returns the configured render policy.
	Policy() domain.RenderPolicy
}
