// Package preview provides the link input and preview card view for the TUI.
package preview

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/components/card"
	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/linkcard/internal/core/domain"
	"github.com/custodia-labs/linkcard/internal/core/ports/driven"
	"github.com/custodia-labs/linkcard/internal/core/ports/driving"
	"github.com/custodia-labs/linkcard/internal/core/render"
)

// Debounce is how long typing must pause before a fetch starts.
const Debounce = 300 * time.Millisecond

// Highlight animation timing.
const (
	highlightFrames   = 3
	highlightInterval = 120 * time.Millisecond
)

// View represents the preview view with input, card and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.LinkInput
	card      *card.Card
	statusbar *status.Bar

	previewService  driving.PreviewService
	settingsService driving.SettingsService
	controller      driving.PreviewController
	renderer        *render.Renderer
	opener          *recordingOpener
	ctx             context.Context

	timeout  time.Duration
	editSeq  int
	animated bool
	pending  driving.PreviewSession // Fetch still in flight, or nil
	lastReq  domain.PreviewRequest

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new preview view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	previewService driving.PreviewService,
	settingsService driving.SettingsService,
	opener driven.URLOpener,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:          s,
		keymap:          km,
		input:           input.NewLinkInput(s),
		card:            card.New(s),
		statusbar:       status.NewBar(s, km),
		previewService:  previewService,
		settingsService: settingsService,
		opener:          &recordingOpener{next: opener},
		ctx:             context.Background(),
		width:           80,
		height:          24,
	}

	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil && settings != nil {
			v.timeout = settings.Preview.RequestTimeout
		}
	}

	policy := previewService.Policy()
	v.renderer = render.NewRenderer(render.Options{Policy: policy, Opener: v.opener})
	v.statusbar.SetPolicy(policy.String())
	v.controller = v.newController()
	return v
}

func (v *View) newController() driving.PreviewController {
	return v.previewService.NewController(driving.ControllerOptions{
		Animate: v.animate,
	})
}

// animate runs inside Update, while the controller resolves a result.
func (v *View) animate() {
	v.animated = true
	v.card.SetHighlight(true)
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the preview view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.InputSettled:
		if msg.Seq != v.editSeq {
			return v, nil
		}
		return v, v.begin(domain.PreviewRequest{Text: v.input.Value(), RequestTimeout: v.timeout})

	case messages.PreviewFetched:
		return v, v.handleFetched(msg)

	case messages.AnimationFrame:
		if msg.Remaining <= 0 {
			v.card.SetHighlight(false)
			return v, nil
		}
		return v, animationTick(msg.Remaining - 1)

	case messages.PolicyChanged:
		if msg.Err != nil {
			v.setError(msg.Err)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd, _ = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.History):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHistory}
		}

	case keymap.Matches(key, v.keymap.Fetch):
		v.editSeq++
		return v, v.begin(domain.PreviewRequest{Text: v.input.Value(), RequestTimeout: v.timeout})

	case keymap.Matches(key, v.keymap.Open):
		return v, v.press()

	case keymap.Matches(key, v.keymap.Policy):
		return v, v.togglePolicy()

	case keymap.Matches(key, v.keymap.Clear), msg.Type == tea.KeyEsc:
		v.input.Reset()
		v.editSeq++
		return v, v.begin(domain.PreviewRequest{RequestTimeout: v.timeout})
	}

	var cmd tea.Cmd
	var changed bool
	v.input, cmd, changed = v.input.Update(msg)
	if !changed {
		return v, cmd
	}

	v.editSeq++
	seq := v.editSeq
	settle := tea.Tick(Debounce, func(time.Time) tea.Msg {
		return messages.InputSettled{Seq: seq}
	})
	return v, tea.Batch(cmd, settle)
}

// begin restarts the lifecycle and returns the command running the fetch.
func (v *View) begin(req domain.PreviewRequest) tea.Cmd {
	v.err = nil
	session := v.controller.Begin(req)
	v.pending = session
	v.lastReq = req
	if session == nil {
		v.syncStatus()
		return nil
	}

	if strings.TrimSpace(req.Text) == "" {
		v.statusbar.Clear()
	} else {
		v.statusbar.SetState(status.StateFetching)
	}

	ctx := v.ctx
	return func() tea.Msg {
		return messages.PreviewFetched{Session: session, Data: session.Fetch(ctx)}
	}
}

// Show adopts an already fetched preview for text. No fetch happens.
func (v *View) Show(text string, data domain.PreviewData) {
	v.input.SetValue(text)
	v.editSeq++
	v.begin(domain.PreviewRequest{Text: text, RequestTimeout: v.timeout, Precomputed: &data})
}

func (v *View) handleFetched(msg messages.PreviewFetched) tea.Cmd {
	v.animated = false
	if msg.Session == v.pending {
		v.pending = nil
	}
	if !v.controller.Resolve(msg.Session, msg.Data) {
		return nil
	}
	v.syncStatus()
	if v.animated {
		return animationTick(highlightFrames)
	}
	return nil
}

func animationTick(remaining int) tea.Cmd {
	return tea.Tick(highlightInterval, func(time.Time) tea.Msg {
		return messages.AnimationFrame{Remaining: remaining}
	})
}

// press runs the card's tap action.
func (v *View) press() tea.Cmd {
	node := v.renderer.Render(v.controller.State())
	if node.IsEmpty() || node.OnPress == nil {
		return nil
	}

	v.opener.last = ""
	node.OnPress()
	link := v.opener.last
	if link == "" {
		return nil
	}
	v.statusbar.SetState(status.StateOpened)
	v.statusbar.SetMessage(link)
	return func() tea.Msg {
		return messages.LinkOpened{Link: link}
	}
}

func (v *View) togglePolicy() tea.Cmd {
	next := domain.PolicyLoose
	if v.Policy() == domain.PolicyLoose {
		next = domain.PolicyStrict
	}
	v.SetPolicy(next)

	if v.settingsService == nil {
		return nil
	}
	settings := v.settingsService
	return func() tea.Msg {
		return messages.PolicyChanged{Policy: next, Err: settings.SetPolicy(next)}
	}
}

// SetPolicy switches the render policy without persisting it.
func (v *View) SetPolicy(policy domain.RenderPolicy) {
	opts := v.renderer.Options()
	if opts.Policy == policy {
		return
	}
	opts.Policy = policy
	v.renderer.SetOptions(opts)
	v.statusbar.SetPolicy(policy.String())
	v.syncStatus()
}

// Policy returns the render policy in use.
func (v *View) Policy() domain.RenderPolicy {
	return v.renderer.Options().Policy
}

// ApplySettings picks up changed settings. The controller is replaced when
// the animation setting changes; the shown preview is carried over. A fetch
// still in flight is restarted when the controller or the timeout changes,
// and the returned command runs it.
func (v *View) ApplySettings(settings *domain.AppSettings, animationChanged bool) tea.Cmd {
	timeoutChanged := settings.Preview.RequestTimeout != v.timeout
	v.timeout = settings.Preview.RequestTimeout
	v.SetPolicy(settings.Preview.Policy)

	fetching := v.pending != nil
	if animationChanged {
		state := v.controller.State()
		v.controller.Close()
		v.controller = v.newController()
		v.pending = nil
		if state != nil && !fetching {
			v.begin(domain.PreviewRequest{
				Text:           v.lastReq.Text,
				RequestTimeout: v.timeout,
				Precomputed:    state,
			})
			return nil
		}
	}

	if fetching && (animationChanged || timeoutChanged) {
		return v.begin(domain.PreviewRequest{Text: v.lastReq.Text, RequestTimeout: v.timeout})
	}
	return nil
}

// Fetching reports whether a fetch is in flight.
func (v *View) Fetching() bool {
	return v.pending != nil
}

func (v *View) syncStatus() {
	if v.err != nil {
		return
	}
	state := v.controller.State()
	switch {
	case state == nil && strings.TrimSpace(v.input.Value()) == "":
		v.statusbar.Clear()
	case state == nil:
		v.statusbar.SetState(status.StateFetching)
	case render.Visible(state, v.Policy()):
		v.statusbar.SetState(status.StateShown)
	default:
		v.statusbar.SetState(status.StateHidden)
	}
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the preview view.
func (v *View) View() string {
	title := v.styles.Title.Render("linkcard")
	body := v.card.View(v.renderer.Render(v.controller.State()))
	if body == "" {
		body = v.styles.Muted.Render(v.placeholder())
	}

	// Fill space between content and status bar
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", v.input.View(), "", body)
	gap := v.height - lipgloss.Height(content) - 1
	if gap < 1 {
		gap = 1
	}
	return content + strings.Repeat("\n", gap) + v.statusbar.View()
}

func (v *View) placeholder() string {
	switch {
	case strings.TrimSpace(v.input.Value()) == "":
		return "Type or paste text with a link."
	case v.controller.State() == nil:
		return "Fetching preview..."
	default:
		return "Nothing to preview."
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.card.SetWidth(width - 2)
	v.statusbar.SetWidth(width)
}

// Close releases the controller. Pending fetches are discarded.
func (v *View) Close() {
	v.pending = nil
	v.controller.Close()
}

// State returns the accepted preview, or nil.
func (v *View) State() *domain.PreviewData {
	return v.controller.State()
}

// Text returns the current input text.
func (v *View) Text() string {
	return v.input.Value()
}

// SetText replaces the input text without starting a fetch.
func (v *View) SetText(text string) {
	v.input.SetValue(text)
}

// Ready returns whether the view has received dimensions.
func (v *View) Ready() bool {
	return v.ready
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Highlighted reports whether the card is animating in.
func (v *View) Highlighted() bool {
	return v.card.Highlighted()
}

// StatusState returns the status bar state.
func (v *View) StatusState() status.State {
	return v.statusbar.State()
}

// recordingOpener remembers the last link it was asked to open.
type recordingOpener struct {
	next driven.URLOpener
	last string
}

func (o *recordingOpener) Open(link string) {
	o.last = link
	if o.next != nil {
		o.next.Open(link)
	}
}
