package modal

import (
	"fmt"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/focusguard/pkg/focus"
	"github.com/marcus/focusguard/pkg/mouse"
)

// ActionCancel is returned when the dialog asks to be dismissed (Escape or a
// backdrop click). The caller decides what dismissal means.
const ActionCancel = "cancel"

// Hit region IDs registered by Render.
const (
	RegionBackdrop = "modal-backdrop"
	RegionDialog   = "modal-dialog"
)

const defaultWidth = 50

// Variant selects the frame color.
type Variant int

const (
	VariantDefault Variant = iota
	VariantDanger
	VariantWarning
	VariantInfo
)

// Option configures a Modal.
type Option func(*Modal)

// WithWidth sets the total dialog width including the frame.
func WithWidth(w int) Option {
	return func(m *Modal) {
		if w > 0 {
			m.width = w
		}
	}
}

func WithVariant(v Variant) Option {
	return func(m *Modal) {
		m.variant = v
	}
}

// WithHints shows or hides the keyboard hint line.
func WithHints(show bool) Option {
	return func(m *Modal) {
		m.showHints = show
	}
}

// WithPrimaryAction sets the action returned for Enter inside an input.
func WithPrimaryAction(actionID string) Option {
	return func(m *Modal) {
		m.primaryAction = actionID
	}
}

// WithCloseOnBackdropClick makes backdrop clicks return ActionCancel.
func WithCloseOnBackdropClick(close bool) Option {
	return func(m *Modal) {
		m.closeOnBackdrop = close
	}
}

// WithCloseOnEscape controls whether Escape returns ActionCancel (default true).
func WithCloseOnEscape(close bool) Option {
	return func(m *Modal) {
		m.closeOnEscape = close
	}
}

// WithInitialFocus focuses the control with the given ID on open instead of
// the first one.
func WithInitialFocus(id string) Option {
	return func(m *Modal) {
		m.initialFocusID = id
	}
}

// WithReturnFocus sends focus to el on close instead of back to whatever was
// focused before the dialog opened.
func WithReturnFocus(el *focus.Element) Option {
	return func(m *Modal) {
		m.returnFocus = el
	}
}

// WithDescription adds a line under the title that the dialog is described by.
func WithDescription(text string) Option {
	return func(m *Modal) {
		m.description = text
	}
}

var modalIDs atomic.Uint64

// Modal is a declarative dialog. It renders nothing while closed. While open
// it owns a focus.Trap over its container element.
type Modal struct {
	title           string
	description     string
	width           int
	variant         Variant
	showHints       bool
	primaryAction   string
	closeOnBackdrop bool
	closeOnEscape   bool
	initialFocusID  string
	returnFocus     *focus.Element
	sections        []Section

	id        string
	overlay   *focus.Element
	container *focus.Element
	titleEl   *focus.Element
	descEl    *focus.Element

	doc     *focus.Document
	trap    *focus.Trap
	open    bool
	hoverID string
	pending string
}

// New creates a closed modal.
func New(title string, opts ...Option) *Modal {
	m := &Modal{
		title:         title,
		width:         defaultWidth,
		showHints:     true,
		closeOnEscape: true,
		id:            fmt.Sprintf("modal-%d", modalIDs.Add(1)),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.overlay = focus.NewElement(m.id+"-backdrop", focus.KindGeneric)
	m.container = focus.NewElement(m.id, focus.KindGeneric,
		focus.WithTabIndex(-1),
		focus.WithAttr("role", "dialog"),
		focus.WithAttr("aria-modal", "true"),
	)
	m.titleEl = focus.NewElement(m.id+"-title", focus.KindGeneric, focus.WithLabel(title))
	if m.description != "" {
		m.descEl = focus.NewElement(m.id+"-desc", focus.KindGeneric, focus.WithLabel(m.description))
	}
	m.overlay.Append(m.container)
	return m
}

// AddSection appends a section and returns the modal for chaining.
func (m *Modal) AddSection(s Section) *Modal {
	m.sections = append(m.sections, s)
	return m
}

// Reset clears transient hover and action state.
func (m *Modal) Reset() {
	m.hoverID = ""
	m.pending = ""
}

func (m *Modal) IsOpen() bool {
	return m.open
}

// Container returns the dialog element (role=dialog).
func (m *Modal) Container() *focus.Element {
	return m.container
}

// Backdrop returns the overlay element behind the dialog.
func (m *Modal) Backdrop() *focus.Element {
	return m.overlay
}

// SetOpen mounts the dialog into doc and traps focus in it, or unmounts it.
// Closing returns the command that restores focus; the caller must return it
// from Update and apply the resulting focus.RestoreMsg.
func (m *Modal) SetOpen(doc *focus.Document, open bool) tea.Cmd {
	if !open {
		if !m.open {
			return nil
		}
		cmd := m.trap.Deactivate()
		m.overlay.Remove()
		m.open = false
		m.Reset()
		return cmd
	}
	if m.open {
		m.trap.SetOpen(true, m.overlay, m.container)
		return nil
	}

	if m.trap == nil || m.doc != doc {
		if m.trap != nil {
			m.trap.Close()
		}
		m.doc = doc
		m.trap = focus.NewTrap(doc, focus.WithOnClose(m.requestClose))
	}
	m.sync()
	labelledBy, describedBy := m.titleEl.ID, ""
	if m.descEl != nil {
		describedBy = m.descEl.ID
	}
	var initial *focus.Element
	if m.initialFocusID != "" {
		initial = m.container.Find(m.initialFocusID)
	}
	m.trap.Configure(
		focus.WithCloseOnEscape(m.closeOnEscape),
		focus.WithCloseOnOutsideClick(m.closeOnBackdrop),
		focus.WithInitialFocus(initial),
		focus.WithReturnFocus(m.returnFocus),
		focus.WithLabels(labelledBy, describedBy),
	)

	doc.Body().Append(m.overlay)
	m.open = true
	m.trap.Activate(m.overlay, m.container)
	return nil
}

// Destroy tears the dialog down without restoring focus, e.g. when the host
// is quitting or replacing the dialog while it is open.
func (m *Modal) Destroy() {
	if m.trap != nil {
		m.trap.Close()
		m.trap = nil
	}
	m.overlay.Remove()
	m.open = false
	m.doc = nil
	m.Reset()
}

// SetCloseOnEscape toggles Escape handling while open, e.g. to keep a
// dialog up while its operation is in flight.
func (m *Modal) SetCloseOnEscape(close bool) {
	m.closeOnEscape = close
	if m.trap != nil {
		m.trap.SetCloseOnEscape(close)
	}
}

// SetButtonDisabled enables or disables a button by action ID. It reports
// whether the button was found.
func (m *Modal) SetButtonDisabled(id string, disabled bool) bool {
	for _, s := range m.sections {
		if b, ok := unwrap(s).(*buttonsSection); ok {
			for _, el := range b.elements {
				if el.ID == id {
					el.SetDisabled(disabled)
					return true
				}
			}
		}
	}
	return false
}

// Focus moves focus to the control with the given ID.
func (m *Modal) Focus(id string) bool {
	if !m.open {
		return false
	}
	m.sync()
	return m.doc.Focus(m.container.Find(id))
}

// FocusedID returns the ID of the focused control, or "" when focus is not
// on a control inside the dialog.
func (m *Modal) FocusedID() string {
	if !m.open {
		return ""
	}
	active := m.doc.Active()
	if active == m.container || !m.container.Contains(active) {
		return ""
	}
	return active.ID
}

// Semantics describes the accessible dialog exposed while open.
type Semantics struct {
	Role        string
	Modal       bool
	LabelledBy  string
	DescribedBy string
}

// Semantics returns the dialog's accessibility attributes. ok is false while
// closed, when nothing is rendered.
func (m *Modal) Semantics() (s Semantics, ok bool) {
	if !m.open {
		return Semantics{}, false
	}
	return Semantics{
		Role:        m.container.Attr("role"),
		Modal:       m.container.Attr("aria-modal") == "true",
		LabelledBy:  m.container.Attr("aria-labelledby"),
		DescribedBy: m.container.Attr("aria-describedby"),
	}, true
}

func (m *Modal) requestClose() {
	m.pending = ActionCancel
}

func (m *Modal) takePending() string {
	a := m.pending
	m.pending = ""
	return a
}

// sync rebuilds the container's children from the visible sections so the
// focus trap always sees the current controls.
func (m *Modal) sync() {
	children := []*focus.Element{m.titleEl}
	if m.descEl != nil {
		children = append(children, m.descEl)
	}
	for _, s := range m.sections {
		if !isVisible(s) {
			continue
		}
		if mt, ok := s.(Mounter); ok {
			children = append(children, mt.Elements()...)
		}
	}
	m.container.ReplaceChildren(children...)
}

// owner returns the visible section that contains el.
func (m *Modal) owner(el *focus.Element) Section {
	for _, s := range m.sections {
		if !isVisible(s) {
			continue
		}
		if mt, ok := s.(Mounter); ok {
			for _, e := range mt.Elements() {
				if e.Contains(el) {
					return s
				}
			}
		}
	}
	return nil
}

// HandleKey routes a key press. Every key is dispatched to the document first
// so the focus trap sees Tab, Shift+Tab and Escape; other keys then go to
// the section owning focus. The returned action is a button ID, the primary
// action, ActionCancel, or "".
func (m *Modal) HandleKey(msg tea.KeyMsg) (string, tea.Cmd) {
	if !m.open {
		return "", nil
	}
	m.sync()
	m.pending = ""

	m.doc.DispatchKey(msg)
	if a := m.takePending(); a != "" {
		return a, nil
	}
	switch msg.String() {
	case "tab", "shift+tab", "esc":
		return "", nil
	}

	focusID := m.FocusedID()
	owner := m.owner(m.doc.Active())
	if owner != nil {
		action, cmd := owner.Update(msg, focusID)
		if action != "" || cmd != nil {
			return action, cmd
		}
		if _, isInput := unwrap(owner).(*inputSection); isInput && msg.String() == "enter" {
			return m.primaryAction, nil
		}
		return "", nil
	}

	for _, s := range m.sections {
		if _, mounts := s.(Mounter); mounts || !isVisible(s) {
			continue
		}
		if action, cmd := s.Update(msg, focusID); action != "" || cmd != nil {
			return action, cmd
		}
	}
	return "", nil
}

// HandleMouse routes a mouse event through handler's hit regions. Clicks are
// dispatched to the document so a backdrop click reaches the focus trap.
func (m *Modal) HandleMouse(msg tea.MouseMsg, handler *mouse.Handler) (string, tea.Cmd) {
	if !m.open || handler == nil {
		return "", nil
	}
	m.sync()
	m.pending = ""

	a := handler.HandleMouse(msg)
	var target *focus.Element
	if a.Region != nil {
		target, _ = a.Region.Data.(*focus.Element)
	}

	switch a.Type {
	case mouse.ActionHover:
		m.hoverID = ""
		if focus.IsFocusable(target) {
			m.hoverID = target.ID
		}
	case mouse.ActionClick, mouse.ActionDoubleClick:
		if target == nil {
			return "", nil
		}
		m.doc.DispatchClick(target)
		if act := m.takePending(); act != "" {
			return act, nil
		}
		if target.Kind == focus.KindButton && !target.Disabled() {
			return target.ID, nil
		}
		if owner := m.owner(target); owner != nil {
			if c, ok := unwrap(owner).(*checkboxSection); ok {
				c.toggle()
			}
		}
	}
	return "", nil
}

type placed struct {
	el         *focus.Element
	x, y, w, h int
}

// Render draws the dialog box sized to fit the screen and registers hit
// regions on handler: backdrop, dialog, then each control. It returns "" and
// clears handler while closed.
func (m *Modal) Render(screenW, screenH int, handler *mouse.Handler) string {
	if handler != nil {
		handler.Clear()
	}
	if !m.open {
		return ""
	}
	m.sync()

	width := m.width
	if screenW > 0 && width > screenW {
		width = screenW
	}
	contentWidth := max(width-4, 10)
	focusID := m.FocusedID()

	var parts []string
	var controls []placed
	y := 0
	add := func(content string) {
		parts = append(parts, content)
		y += lipgloss.Height(content)
	}

	add(ModalTitle.Render(m.title))
	if m.description != "" {
		add(MutedText.Width(contentWidth).Render(m.description))
	}
	add("")

	for _, s := range m.sections {
		if !isVisible(s) {
			continue
		}
		rs := s.Render(contentWidth, focusID, m.hoverID)
		for _, fi := range rs.Focusables {
			controls = append(controls, placed{
				el: m.container.Find(fi.ID),
				x:  fi.OffsetX, y: y + fi.OffsetY,
				w: fi.Width, h: max(fi.Height, 1),
			})
		}
		add(rs.Content)
	}

	if m.showHints {
		add("")
		add(MutedText.Render(m.hints()))
	}

	box := frameStyle(m.variant).Width(width - 2).Render(strings.Join(parts, "\n"))

	if handler != nil {
		boxW, boxH := lipgloss.Width(box), lipgloss.Height(box)
		x0, y0 := center(screenW, boxW), center(screenH, boxH)
		handler.HitMap.AddRect(RegionBackdrop, 0, 0, screenW, screenH, m.overlay)
		handler.HitMap.AddRect(RegionDialog, x0, y0, boxW, boxH, m.container)
		for _, c := range controls {
			if c.el == nil {
				continue
			}
			// Frame is one cell of border plus one of padding on the left,
			// one row of border on top.
			handler.HitMap.AddRect(c.el.ID, x0+2+c.x, y0+1+c.y, c.w, c.h, c.el)
		}
	}
	return box
}

func (m *Modal) hints() string {
	h := "tab/shift+tab move  enter select"
	if m.closeOnEscape {
		h += "  esc close"
	}
	return h
}

func center(screen, size int) int {
	return max((screen-size)/2, 0)
}
