package render

import (
	"sync"

	"github.com/custodia-labs/linkcard/internal/core/domain"
)

// Renderer renders a card repeatedly and reuses work between calls.
//
// The tree is cached per state pointer: rendering the same *PreviewData
// again returns the same tree. The built-in press handler is only rebuilt
// when the link changes.
type Renderer struct {
	mu   sync.Mutex
	opts Options

	cached    bool
	lastState *domain.PreviewData
	lastTree  *Node

	pressLink   string
	press       func()
	pressBuilds int
}

// NewRenderer creates a renderer with the given options.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// SetOptions replaces the options and drops the cached tree.
func (r *Renderer) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts = opts
	r.cached = false
	r.lastTree = nil
	r.press = nil
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts
}

// Render returns the tree for state.
func (r *Renderer) Render(state *domain.PreviewData) *Node {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached && state == r.lastState {
		return r.lastTree
	}

	link := ""
	if state != nil {
		link = state.Link
	}
	if r.press == nil || link != r.pressLink {
		r.pressLink = link
		r.press = openLink(link, r.opts.Opener)
		r.pressBuilds++
	}

	r.lastState = state
	r.lastTree = build(state, r.opts, r.press)
	r.cached = true
	return r.lastTree
}

// Press taps the last rendered tree. It does nothing when that tree is
// empty or has no press action, so Disabled and OnPress are honoured.
func (r *Renderer) Press() {
	r.mu.Lock()
	tree := r.lastTree
	r.mu.Unlock()

	if tree.IsEmpty() || tree.OnPress == nil {
		return
	}
	tree.OnPress()
}

// NopAnimator is a driven.LayoutAnimator that does nothing.
type NopAnimator struct{}

// Animate does nothing.
func (NopAnimator) Animate() {}
