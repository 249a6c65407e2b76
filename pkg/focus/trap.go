package focus

import (
	"log/slog"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Config controls a Trap.
type Config struct {
	CloseOnEscape       bool
	CloseOnOutsideClick bool

	// InitialFocus and ReturnFocus override the default targets. Both are
	// ignored when not attached at the time they are needed.
	InitialFocus *Element
	ReturnFocus  *Element

	// Accessible name bindings copied onto the container.
	LabelledBy  string
	DescribedBy string

	// OnClose is invoked for Escape and outside clicks. The trap never
	// deactivates itself; the caller decides what closing means.
	OnClose func()
}

// DefaultConfig returns the defaults: Escape closes, outside clicks don't.
func DefaultConfig() Config {
	return Config{CloseOnEscape: true}
}

// Option configures a Trap.
type Option func(*Config)

func WithCloseOnEscape(close bool) Option {
	return func(c *Config) {
		c.CloseOnEscape = close
	}
}

func WithCloseOnOutsideClick(close bool) Option {
	return func(c *Config) {
		c.CloseOnOutsideClick = close
	}
}

func WithInitialFocus(el *Element) Option {
	return func(c *Config) {
		c.InitialFocus = el
	}
}

func WithReturnFocus(el *Element) Option {
	return func(c *Config) {
		c.ReturnFocus = el
	}
}

// WithLabels sets the aria-labelledby and aria-describedby bindings.
func WithLabels(labelledBy, describedBy string) Option {
	return func(c *Config) {
		c.LabelledBy = labelledBy
		c.DescribedBy = describedBy
	}
}

func WithOnClose(fn func()) Option {
	return func(c *Config) {
		c.OnClose = fn
	}
}

var trapIDs atomic.Uint64

// Trap confines Tab navigation to a container while active, closes on
// Escape or outside clicks, and hands focus back when deactivated.
//
// A Trap has two states. Activate captures the element focused beforehand,
// attaches one key listener and one pointer listener to the document, and
// assigns initial focus. Deactivate detaches both listeners and returns a
// command whose RestoreMsg must be applied on a later turn of the event loop.
type Trap struct {
	id  uint64
	doc *Document
	cfg Config

	active    bool
	closed    bool
	overlay   *Element
	container *Element
	previous  *Element
	gen       uint64

	listeners scope
}

// NewTrap creates an inactive trap bound to doc.
func NewTrap(doc *Document, opts ...Option) *Trap {
	t := &Trap{
		id:  trapIDs.Add(1),
		doc: doc,
		cfg: DefaultConfig(),
	}
	t.Configure(opts...)
	return t
}

// Configure applies options. It may be called while active; the new values
// take effect for the next event.
func (t *Trap) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(&t.cfg)
	}
	if t.active {
		t.applyLabels()
	}
}

// SetCloseOnEscape toggles Escape handling, e.g. while an operation is in flight.
func (t *Trap) SetCloseOnEscape(close bool) {
	t.cfg.CloseOnEscape = close
}

func (t *Trap) Config() Config {
	return t.cfg
}

// Active reports whether the trap is open.
func (t *Trap) Active() bool {
	return t.active
}

func (t *Trap) Container() *Element {
	return t.container
}

// Previous returns the element captured on activation, if any.
func (t *Trap) Previous() *Element {
	return t.previous
}

// SetOpen reconciles the trap with the caller's open flag. Re-asserting the
// current state is a no-op apart from refreshing the element references.
func (t *Trap) SetOpen(open bool, overlay, container *Element) tea.Cmd {
	if open {
		t.Activate(overlay, container)
		return nil
	}
	return t.Deactivate()
}

// Activate opens the trap over container. overlay is the backdrop whose
// clicks count as outside clicks; it may be nil.
func (t *Trap) Activate(overlay, container *Element) {
	if t.closed || container == nil {
		return
	}
	if t.active {
		t.overlay, t.container = overlay, container
		return
	}

	t.active = true
	t.gen++
	t.overlay, t.container = overlay, container
	t.previous = t.doc.Active()

	t.listeners.add(t.doc.AddKeyListener(t.handleKey))
	t.listeners.add(t.doc.AddPointerListener(t.handlePointer))
	t.applyLabels()

	target, err := ResolveInitialFocus(t.doc, t.cfg.InitialFocus, container)
	if err != nil {
		slog.Debug("focus: initial focus fallback", "trap", t.id, "err", err)
	}
	t.doc.Focus(target)

	slog.Debug("focus: trap activated", "trap", t.id, "container", container.ID,
		"previous", t.previous.ID, "initial", target.ID)
}

// Deactivate closes the trap. Listeners are removed immediately; focus is
// restored when the returned command's message is applied.
func (t *Trap) Deactivate() tea.Cmd {
	if !t.active {
		return nil
	}
	t.listeners.run()
	t.active = false
	t.gen++
	gen := t.gen

	slog.Debug("focus: trap deactivated", "trap", t.id)
	return func() tea.Msg {
		return RestoreMsg{trap: t, gen: gen}
	}
}

// Close tears the trap down for good: listeners are removed and any pending
// restoration is cancelled.
func (t *Trap) Close() {
	t.listeners.run()
	t.active = false
	t.closed = true
	t.gen++
	t.previous = nil
	t.overlay, t.container = nil, nil
}

func (t *Trap) applyLabels() {
	if t.container == nil {
		return
	}
	if t.cfg.LabelledBy != "" {
		t.container.SetAttr("aria-labelledby", t.cfg.LabelledBy)
	}
	if t.cfg.DescribedBy != "" {
		t.container.SetAttr("aria-describedby", t.cfg.DescribedBy)
	}
}

func (t *Trap) requestClose(cause string) {
	if t.cfg.OnClose == nil {
		return
	}
	slog.Debug("focus: close requested", "trap", t.id, "cause", cause)
	t.cfg.OnClose()
}

func (t *Trap) handleKey(ev *KeyEvent) {
	switch {
	case key.Matches(ev.Msg, escapeKey):
		if t.cfg.CloseOnEscape {
			t.requestClose("escape")
		}
	case key.Matches(ev.Msg, tabKey, shiftTabKey):
		t.handleTab(ev, key.Matches(ev.Msg, shiftTabKey))
	}
}

func (t *Trap) handleTab(ev *KeyEvent, backward bool) {
	set := Focusables(t.container)
	if len(set) == 0 {
		// Nothing to move to; keep focus on the container.
		ev.PreventDefault()
		return
	}

	first, last := set[0], set[len(set)-1]
	active := t.doc.Active()
	switch {
	case !backward && active == last:
		ev.PreventDefault()
		t.doc.Focus(first)
	case backward && active == first:
		ev.PreventDefault()
		t.doc.Focus(last)
	case indexOf(set, active) < 0:
		// Focus is on the container or escaped it; pull it back in.
		ev.PreventDefault()
		if backward {
			t.doc.Focus(last)
		} else {
			t.doc.Focus(first)
		}
	}
}

func (t *Trap) handlePointer(ev *PointerEvent) {
	if t.overlay == nil || ev.Target != t.overlay {
		return
	}
	if t.cfg.CloseOnOutsideClick {
		t.requestClose("outside click")
	}
}

func (t *Trap) restore(gen uint64) bool {
	if t.closed || t.active || gen != t.gen {
		slog.Debug("focus: stale restore ignored", "trap", t.id)
		return false
	}
	target, err := ResolveReturnFocus(t.doc, t.cfg.ReturnFocus, t.previous)
	t.previous = nil
	t.overlay, t.container = nil, nil
	if err != nil {
		slog.Debug("focus: return focus fallback", "trap", t.id, "err", err)
	}
	if target == nil {
		return false
	}
	slog.Debug("focus: restored", "trap", t.id, "target", target.ID)
	return t.doc.Focus(target)
}

// RestoreMsg carries a deferred focus restoration. The host's Update must
// call Apply when it receives one.
type RestoreMsg struct {
	trap *Trap
	gen  uint64
}

// Apply restores focus unless the trap has since been reopened, deactivated
// again or closed. It reports whether focus moved.
func (m RestoreMsg) Apply() bool {
	if m.trap == nil {
		return false
	}
	return m.trap.restore(m.gen)
}

// scope collects teardown funcs and runs them exactly once, newest first.
type scope struct {
	fns []func()
}

func (s *scope) add(fn func()) {
	s.fns = append(s.fns, fn)
}

func (s *scope) run() {
	for i := len(s.fns) - 1; i >= 0; i-- {
		s.fns[i]()
	}
	s.fns = nil
}
