package focus

import (
	"fmt"
	"strings"
)

// Kind identifies what an element is for the purpose of focus navigation.
type Kind int

const (
	KindGeneric Kind = iota
	KindLink
	KindButton
	KindInput
	KindSelect
	KindTextarea
)

func (k Kind) String() string {
	switch k {
	case KindLink:
		return "link"
	case KindButton:
		return "button"
	case KindInput:
		return "input"
	case KindSelect:
		return "select"
	case KindTextarea:
		return "textarea"
	default:
		return "generic"
	}
}

// Element is a node in a Document's tree. Elements are created detached and
// become part of a document once appended under its body.
type Element struct {
	ID    string
	Kind  Kind
	Label string

	href        string
	disabled    bool
	tabIndex    int
	hasTabIndex bool
	attrs       map[string]string

	parent   *Element
	children []*Element
}

// ElementOption configures an Element at construction time.
type ElementOption func(*Element)

// WithHref sets the link target.
func WithHref(href string) ElementOption {
	return func(e *Element) {
		e.href = href
	}
}

// WithDisabled marks a form control as disabled.
func WithDisabled(disabled bool) ElementOption {
	return func(e *Element) {
		e.disabled = disabled
	}
}

// WithTabIndex sets an explicit tab index.
func WithTabIndex(index int) ElementOption {
	return func(e *Element) {
		e.tabIndex = index
		e.hasTabIndex = true
	}
}

// WithLabel sets the human readable label.
func WithLabel(label string) ElementOption {
	return func(e *Element) {
		e.Label = label
	}
}

// WithAttr sets an arbitrary attribute (role, aria-*, data-*).
func WithAttr(key, value string) ElementOption {
	return func(e *Element) {
		e.SetAttr(key, value)
	}
}

// NewElement creates a detached element.
func NewElement(id string, kind Kind, opts ...ElementOption) *Element {
	e := &Element{ID: id, Kind: kind}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Append adds children at the end, detaching each from its previous parent.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c == nil || c == e {
			continue
		}
		c.Remove()
		c.parent = e
		e.children = append(e.children, c)
	}
	return e
}

// ReplaceChildren detaches all current children and appends the given ones.
// Elements present in both sets keep their identity.
func (e *Element) ReplaceChildren(children ...*Element) {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
	e.Append(children...)
}

// Remove detaches the element (and its subtree) from its parent.
func (e *Element) Remove() {
	p := e.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// Root returns the top-most ancestor (the element itself when detached).
func (e *Element) Root() *Element {
	r := e
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	if e == nil {
		return false
	}
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Walk visits descendants of e in document order (pre-order, e excluded).
// Returning false from fn stops the walk.
func (e *Element) Walk(fn func(*Element) bool) {
	if e == nil {
		return
	}
	e.walk(fn)
}

func (e *Element) walk(fn func(*Element) bool) bool {
	for _, c := range e.children {
		if !fn(c) || !c.walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first descendant with the given ID.
func (e *Element) Find(id string) *Element {
	var found *Element
	e.Walk(func(n *Element) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

func (e *Element) Href() string {
	return e.href
}

func (e *Element) Disabled() bool {
	return e.disabled
}

func (e *Element) SetDisabled(disabled bool) {
	e.disabled = disabled
}

// TabIndex returns the explicit tab index and whether one was set.
func (e *Element) TabIndex() (int, bool) {
	return e.tabIndex, e.hasTabIndex
}

func (e *Element) SetTabIndex(index int) {
	e.tabIndex = index
	e.hasTabIndex = true
}

func (e *Element) Attr(key string) string {
	return e.attrs[key]
}

func (e *Element) SetAttr(key, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[key] = value
}

func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if e.ID != "" {
		sb.WriteString("#" + e.ID)
	}
	if e.disabled {
		sb.WriteString("[disabled]")
	}
	if e.hasTabIndex {
		sb.WriteString(fmt.Sprintf("[tabindex=%d]", e.tabIndex))
	}
	return sb.String()
}
