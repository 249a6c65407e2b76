package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/focusguard/pkg/focus"
)

// FocusableInfo locates a control inside a rendered section. Offsets are
// relative to the section's first line.
type FocusableInfo struct {
	ID      string
	OffsetX int
	OffsetY int
	Width   int
	Height  int
}

// RenderedSection is a section's output plus where its controls landed.
type RenderedSection struct {
	Content    string
	Focusables []FocusableInfo
}

// Section is one block of dialog content.
type Section interface {
	Render(contentWidth int, focusID, hoverID string) RenderedSection
	Update(msg tea.Msg, focusID string) (string, tea.Cmd)
}

// Mounter is implemented by sections that contribute elements to the
// dialog's focus tree.
type Mounter interface {
	Elements() []*focus.Element
}

type conditional interface {
	visible() bool
}

func isVisible(s Section) bool {
	if c, ok := s.(conditional); ok {
		return c.visible()
	}
	return true
}

// unwrap strips When wrappers.
func unwrap(s Section) Section {
	for {
		w, ok := s.(*whenSection)
		if !ok {
			return s
		}
		s = w.inner
	}
}

// Text

type textSection struct {
	text string
}

// Text renders static text wrapped to the dialog width.
func Text(s string) Section {
	return &textSection{text: s}
}

func (s *textSection) Render(contentWidth int, _, _ string) RenderedSection {
	return RenderedSection{Content: Body.Width(contentWidth).Render(s.text)}
}

func (s *textSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

// Spacer

type spacerSection struct{}

func Spacer() Section {
	return spacerSection{}
}

func (spacerSection) Render(int, string, string) RenderedSection {
	return RenderedSection{Content: ""}
}

func (spacerSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

// Markdown

type markdownSection struct {
	source   string
	width    int
	rendered string
}

// Markdown renders source with glamour. Output is cached per width.
func Markdown(source string) Section {
	return &markdownSection{source: source}
}

func (s *markdownSection) Render(contentWidth int, _, _ string) RenderedSection {
	if s.width != contentWidth || s.rendered == "" {
		s.width = contentWidth
		s.rendered = renderMarkdown(s.source, contentWidth)
	}
	return RenderedSection{Content: s.rendered}
}

func (s *markdownSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

func renderMarkdown(source string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.DarkStyleConfig),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return source
	}
	out, err := r.Render(source)
	if err != nil {
		return source
	}
	return strings.Trim(out, "\n")
}

// Buttons

// ButtonDef describes one button in a Buttons row.
type ButtonDef struct {
	Label    string
	ID       string
	danger   bool
	primary  bool
	disabled bool
}

// ButtonOption configures a ButtonDef.
type ButtonOption func(*ButtonDef)

func BtnDanger() ButtonOption {
	return func(b *ButtonDef) { b.danger = true }
}

// BtnPrimary renders the button bold while unfocused.
func BtnPrimary() ButtonOption {
	return func(b *ButtonDef) { b.primary = true }
}

func BtnDisabled() ButtonOption {
	return func(b *ButtonDef) { b.disabled = true }
}

// Btn defines a button. id is returned as the action when it is pressed.
func Btn(label, id string, opts ...ButtonOption) ButtonDef {
	b := ButtonDef{Label: label, ID: id}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

type buttonsSection struct {
	defs     []ButtonDef
	elements []*focus.Element
}

// Buttons renders a row of buttons separated by two spaces.
func Buttons(btns ...ButtonDef) Section {
	s := &buttonsSection{defs: btns}
	for _, b := range btns {
		s.elements = append(s.elements, focus.NewElement(b.ID, focus.KindButton,
			focus.WithLabel(b.Label),
			focus.WithDisabled(b.disabled),
		))
	}
	return s
}

func (s *buttonsSection) Elements() []*focus.Element {
	return s.elements
}

func (s *buttonsSection) Render(_ int, focusID, hoverID string) RenderedSection {
	var parts []string
	var focusables []FocusableInfo
	x := 0
	for i, b := range s.defs {
		el := s.elements[i]
		style := buttonStyle(b, el.Disabled(), b.ID == focusID, b.ID == hoverID)
		rendered := style.Render(b.Label)
		w := lipgloss.Width(rendered)
		focusables = append(focusables, FocusableInfo{ID: b.ID, OffsetX: x, Width: w, Height: 1})
		parts = append(parts, rendered)
		x += w + 2
	}
	return RenderedSection{
		Content:    strings.Join(parts, "  "),
		Focusables: focusables,
	}
}

func buttonStyle(b ButtonDef, disabled, focused, hovered bool) lipgloss.Style {
	switch {
	case disabled:
		return ButtonDisabled
	case b.danger && focused:
		return ButtonDangerFocused
	case b.danger && hovered:
		return ButtonDangerHover
	case b.danger:
		return ButtonDanger
	case focused:
		return ButtonFocused
	case hovered:
		return ButtonHover
	case b.primary:
		return Button.Bold(true)
	default:
		return Button
	}
}

func (s *buttonsSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}
	switch keyMsg.String() {
	case "enter", " ":
		for _, el := range s.elements {
			if el.ID == focusID && !el.Disabled() {
				return el.ID, nil
			}
		}
	}
	return "", nil
}

// Checkbox

type checkboxSection struct {
	id      string
	label   string
	checked *bool
	el      *focus.Element
}

// Checkbox renders a toggle bound to checked.
func Checkbox(id, label string, checked *bool) Section {
	return &checkboxSection{
		id:      id,
		label:   label,
		checked: checked,
		el:      focus.NewElement(id, focus.KindInput, focus.WithLabel(label), focus.WithAttr("type", "checkbox")),
	}
}

func (s *checkboxSection) Elements() []*focus.Element {
	return []*focus.Element{s.el}
}

func (s *checkboxSection) toggle() {
	if s.checked != nil {
		*s.checked = !*s.checked
	}
}

func (s *checkboxSection) Render(_ int, focusID, hoverID string) RenderedSection {
	box := "[ ]"
	if s.checked != nil && *s.checked {
		box = "[x]"
	}
	style := Body
	if focusID == s.id {
		style = FieldFocused
	} else if hoverID == s.id {
		style = ListItemSelected
	}
	line := style.Render(box + " " + s.label)
	return RenderedSection{
		Content:    line,
		Focusables: []FocusableInfo{{ID: s.id, Width: lipgloss.Width(line), Height: 1}},
	}
}

func (s *checkboxSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id {
		return "", nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case " ", "enter":
			s.toggle()
		}
	}
	return "", nil
}

// Input

// InputOption configures an Input section.
type InputOption func(*inputSection)

// WithInputLabel shows label above the field.
func WithInputLabel(label string) InputOption {
	return func(s *inputSection) { s.label = label }
}

// WithSubmitAction makes Enter in this field return action instead of the
// dialog's primary action.
func WithSubmitAction(action string) InputOption {
	return func(s *inputSection) { s.submitAction = action }
}

type inputSection struct {
	id           string
	label        string
	submitAction string
	model        *textinput.Model
	el           *focus.Element
}

// Input wraps a bubbles textinput.
func Input(id string, model *textinput.Model, opts ...InputOption) Section {
	s := &inputSection{id: id, model: model}
	for _, opt := range opts {
		opt(s)
	}
	s.el = focus.NewElement(id, focus.KindInput, focus.WithLabel(s.label))
	return s
}

func (s *inputSection) Elements() []*focus.Element {
	return []*focus.Element{s.el}
}

func (s *inputSection) Render(contentWidth int, focusID, _ string) RenderedSection {
	focused := focusID == s.id
	syncFocus(focused, s.model.Focused(), s.model.Focus, s.model.Blur)
	s.model.Width = max(contentWidth-2-lipgloss.Width(s.model.Prompt), 1)

	var lines []string
	offsetY := 0
	if s.label != "" {
		lines = append(lines, labelStyle(focused).Render(s.label))
		offsetY = 1
	}
	lines = append(lines, s.model.View())
	return RenderedSection{
		Content:    strings.Join(lines, "\n"),
		Focusables: []FocusableInfo{{ID: s.id, OffsetY: offsetY, Width: contentWidth, Height: 1}},
	}
}

func (s *inputSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id {
		return "", nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		return s.submitAction, nil
	}
	syncFocus(true, s.model.Focused(), s.model.Focus, s.model.Blur)
	var cmd tea.Cmd
	*s.model, cmd = s.model.Update(msg)
	return "", cmd
}

// Textarea

// TextareaOption configures a Textarea section.
type TextareaOption func(*textareaSection)

func WithTextareaLabel(label string) TextareaOption {
	return func(s *textareaSection) { s.label = label }
}

type textareaSection struct {
	id     string
	label  string
	height int
	model  *textarea.Model
	el     *focus.Element
}

// Textarea wraps a bubbles textarea shown height lines tall.
func Textarea(id string, model *textarea.Model, height int, opts ...TextareaOption) Section {
	s := &textareaSection{id: id, model: model, height: max(height, 1)}
	for _, opt := range opts {
		opt(s)
	}
	s.el = focus.NewElement(id, focus.KindTextarea, focus.WithLabel(s.label))
	return s
}

func (s *textareaSection) Elements() []*focus.Element {
	return []*focus.Element{s.el}
}

func (s *textareaSection) Render(contentWidth int, focusID, _ string) RenderedSection {
	focused := focusID == s.id
	syncFocus(focused, s.model.Focused(), s.model.Focus, s.model.Blur)
	s.model.SetWidth(contentWidth)
	s.model.SetHeight(s.height)

	var lines []string
	offsetY := 0
	if s.label != "" {
		lines = append(lines, labelStyle(focused).Render(s.label))
		offsetY = 1
	}
	lines = append(lines, s.model.View())
	return RenderedSection{
		Content:    strings.Join(lines, "\n"),
		Focusables: []FocusableInfo{{ID: s.id, OffsetY: offsetY, Width: contentWidth, Height: s.height}},
	}
}

func (s *textareaSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id {
		return "", nil
	}
	syncFocus(true, s.model.Focused(), s.model.Focus, s.model.Blur)
	var cmd tea.Cmd
	*s.model, cmd = s.model.Update(msg)
	return "", cmd
}

func labelStyle(focused bool) lipgloss.Style {
	if focused {
		return FieldFocused
	}
	return FieldLabel
}

// syncFocus mirrors the dialog's focus onto a bubbles component.
func syncFocus(want, has bool, focusFn func() tea.Cmd, blurFn func()) {
	switch {
	case want && !has:
		focusFn()
	case !want && has:
		blurFn()
	}
}

// When

type whenSection struct {
	cond  func() bool
	inner Section
}

// When shows section only while cond returns true. Hidden sections leave
// the focus tree.
func When(cond func() bool, section Section) Section {
	return &whenSection{cond: cond, inner: section}
}

func (s *whenSection) visible() bool {
	return s.cond == nil || s.cond()
}

func (s *whenSection) Elements() []*focus.Element {
	if mt, ok := s.inner.(Mounter); ok {
		return mt.Elements()
	}
	return nil
}

func (s *whenSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	return s.inner.Render(contentWidth, focusID, hoverID)
}

func (s *whenSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	return s.inner.Update(msg, focusID)
}

// Custom

type customSection struct {
	render func(contentWidth int, focusID, hoverID string) RenderedSection
	update func(msg tea.Msg, focusID string) (string, tea.Cmd)
}

// Custom builds a section from functions. update may be nil. Custom
// sections contribute no focusable elements.
func Custom(
	render func(contentWidth int, focusID, hoverID string) RenderedSection,
	update func(msg tea.Msg, focusID string) (string, tea.Cmd),
) Section {
	return &customSection{render: render, update: update}
}

func (s *customSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	rs := s.render(contentWidth, focusID, hoverID)
	rs.Focusables = nil
	return rs
}

func (s *customSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if s.update == nil {
		return "", nil
	}
	return s.update(msg, focusID)
}
