package focus

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	tabKey      = key.NewBinding(key.WithKeys("tab"))
	shiftTabKey = key.NewBinding(key.WithKeys("shift+tab"))
	escapeKey   = key.NewBinding(key.WithKeys("esc"))
)

// KeyEvent is delivered to document key listeners.
type KeyEvent struct {
	Msg       tea.KeyMsg
	prevented bool
}

// PreventDefault stops the document's default handling (Tab navigation).
func (e *KeyEvent) PreventDefault() {
	e.prevented = true
}

func (e *KeyEvent) DefaultPrevented() bool {
	return e.prevented
}

// PointerEvent is delivered to document pointer listeners.
type PointerEvent struct {
	Target    *Element
	prevented bool
}

// PreventDefault stops the click from moving focus to its target.
func (e *PointerEvent) PreventDefault() {
	e.prevented = true
}

func (e *PointerEvent) DefaultPrevented() bool {
	return e.prevented
}

type listener[E any] struct {
	fn      func(E)
	removed bool
}

// Document is the element tree a UI renders from and the single owner of
// keyboard focus. It is not safe for concurrent use; all calls are expected
// to come from the event loop.
type Document struct {
	body   *Element
	active *Element

	keyListeners     []*listener[*KeyEvent]
	pointerListeners []*listener[*PointerEvent]
}

// NewDocument creates a document with an empty body.
func NewDocument() *Document {
	return &Document{body: NewElement("body", KindGeneric)}
}

func (d *Document) Body() *Element {
	return d.body
}

// Contains reports whether el is attached to this document.
func (d *Document) Contains(el *Element) bool {
	return el != nil && el.Root() == d.body
}

// Active returns the focused element. When the focused element has been
// detached (or nothing is focused) the body is returned.
func (d *Document) Active() *Element {
	if d.active != nil && d.Contains(d.active) {
		return d.active
	}
	return d.body
}

// Focus moves focus to el. Detached elements are refused.
func (d *Document) Focus(el *Element) bool {
	if !d.Contains(el) {
		return false
	}
	d.active = el
	return true
}

// Blur clears focus back to the body.
func (d *Document) Blur() {
	d.active = nil
}

// AddKeyListener registers fn for every dispatched key. The returned func
// removes it and is safe to call more than once.
func (d *Document) AddKeyListener(fn func(*KeyEvent)) (remove func()) {
	l := &listener[*KeyEvent]{fn: fn}
	d.keyListeners = append(d.keyListeners, l)
	return func() {
		if l.removed {
			return
		}
		l.removed = true
		d.keyListeners = without(d.keyListeners, l)
	}
}

// AddPointerListener registers fn for every dispatched click.
func (d *Document) AddPointerListener(fn func(*PointerEvent)) (remove func()) {
	l := &listener[*PointerEvent]{fn: fn}
	d.pointerListeners = append(d.pointerListeners, l)
	return func() {
		if l.removed {
			return
		}
		l.removed = true
		d.pointerListeners = without(d.pointerListeners, l)
	}
}

// ListenerCount returns the number of attached key and pointer listeners.
func (d *Document) ListenerCount() int {
	return len(d.keyListeners) + len(d.pointerListeners)
}

// DispatchKey runs key listeners in registration order and then applies the
// default action unless a listener prevented it. The default action for Tab
// and Shift+Tab is sequential navigation over the whole document.
func (d *Document) DispatchKey(msg tea.KeyMsg) *KeyEvent {
	ev := &KeyEvent{Msg: msg}
	for _, l := range snapshot(d.keyListeners) {
		if !l.removed {
			l.fn(ev)
		}
	}
	if ev.prevented {
		return ev
	}
	switch {
	case key.Matches(msg, tabKey):
		d.MoveFocus(false)
	case key.Matches(msg, shiftTabKey):
		d.MoveFocus(true)
	}
	return ev
}

// DispatchClick runs pointer listeners and then focuses the target if it is
// focusable and no listener prevented it.
func (d *Document) DispatchClick(target *Element) *PointerEvent {
	ev := &PointerEvent{Target: target}
	for _, l := range snapshot(d.pointerListeners) {
		if !l.removed {
			l.fn(ev)
		}
	}
	if !ev.prevented && IsFocusable(target) {
		d.Focus(target)
	}
	return ev
}

// MoveFocus performs default sequential navigation: the next (or previous)
// focusable element after the active one in document order, wrapping at the
// ends. It reports whether focus moved.
func (d *Document) MoveFocus(backward bool) bool {
	seq := Focusables(d.body)
	if len(seq) == 0 {
		return false
	}
	active := d.Active()
	if i := indexOf(seq, active); i >= 0 {
		if backward {
			return d.Focus(seq[(i-1+len(seq))%len(seq)])
		}
		return d.Focus(seq[(i+1)%len(seq)])
	}

	// Active element is not itself focusable: continue from its position in
	// the tree.
	order := make(map[*Element]int)
	n := 0
	d.body.Walk(func(el *Element) bool {
		order[el] = n
		n++
		return true
	})
	pos, ok := order[active]
	if !ok {
		pos = -1
	}
	if backward {
		for i := len(seq) - 1; i >= 0; i-- {
			if ok && order[seq[i]] < pos {
				return d.Focus(seq[i])
			}
		}
		return d.Focus(seq[len(seq)-1])
	}
	for _, el := range seq {
		if order[el] > pos {
			return d.Focus(el)
		}
	}
	return d.Focus(seq[0])
}

func snapshot[T any](ls []*T) []*T {
	out := make([]*T, len(ls))
	copy(out, ls)
	return out
}

func without[T any](ls []*T, target *T) []*T {
	out := ls[:0:0]
	for _, l := range ls {
		if l != target {
			out = append(out, l)
		}
	}
	return out
}
