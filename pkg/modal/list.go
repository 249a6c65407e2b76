package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/focusguard/pkg/focus"
)

// ListItem is one row of a List section.
type ListItem struct {
	ID    string
	Label string
	Data  any
}

// ListOption configures a List section.
type ListOption func(*listSection)

type listSection struct {
	id           string
	items        []ListItem
	selectedIdx  *int
	maxVisible   int
	scrollOffset int
	el           *focus.Element
}

// List renders a scrollable single-select list. The list is one stop in the
// Tab order; arrows move the selection inside it. selectedIdx may be nil.
func List(id string, items []ListItem, selectedIdx *int, opts ...ListOption) Section {
	s := &listSection{
		id:          id,
		items:       items,
		selectedIdx: selectedIdx,
		maxVisible:  5,
		el:          focus.NewElement(id, focus.KindGeneric, focus.WithTabIndex(0), focus.WithAttr("role", "listbox")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithMaxVisible caps the number of rows shown at once.
func WithMaxVisible(n int) ListOption {
	return func(s *listSection) {
		if n > 0 {
			s.maxVisible = n
		}
	}
}

func (s *listSection) Elements() []*focus.Element {
	return []*focus.Element{s.el}
}

func (s *listSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	if len(s.items) == 0 {
		return RenderedSection{
			Content:    MutedText.Render("(no items)"),
			Focusables: []FocusableInfo{{ID: s.id, Width: contentWidth, Height: 1}},
		}
	}

	visible := min(s.maxVisible, len(s.items))
	selected := 0
	if s.selectedIdx != nil {
		selected = *s.selectedIdx
	}
	if selected < s.scrollOffset {
		s.scrollOffset = selected
	} else if selected >= s.scrollOffset+visible {
		s.scrollOffset = selected - visible + 1
	}
	s.scrollOffset = clamp(s.scrollOffset, 0, max(0, len(s.items)-visible))

	focused := focusID == s.id
	var lines []string
	if s.scrollOffset > 0 {
		lines = append(lines, MutedText.Render("↑ more above"))
	}
	for i := s.scrollOffset; i < s.scrollOffset+visible && i < len(s.items); i++ {
		item := s.items[i]
		isSelected := s.selectedIdx != nil && *s.selectedIdx == i

		style := ListItemNormal
		switch {
		case isSelected && focused:
			style = ListItemFocused
		case isSelected, item.ID == hoverID:
			style = ListItemSelected
		}
		cursor := "  "
		if isSelected {
			cursor = ListCursor.Render("> ")
		}
		lines = append(lines, cursor+style.Render(item.Label))
	}
	if s.scrollOffset+visible < len(s.items) {
		lines = append(lines, MutedText.Render("↓ more below"))
	}

	return RenderedSection{
		Content:    strings.Join(lines, "\n"),
		Focusables: []FocusableInfo{{ID: s.id, Width: contentWidth, Height: len(lines)}},
	}
}

func (s *listSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id || s.selectedIdx == nil || len(s.items) == 0 {
		return "", nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if *s.selectedIdx > 0 {
			*s.selectedIdx--
		}
	case "down", "j":
		if *s.selectedIdx < len(s.items)-1 {
			*s.selectedIdx++
		}
	case "home":
		*s.selectedIdx = 0
	case "end":
		*s.selectedIdx = len(s.items) - 1
	case "enter":
		if *s.selectedIdx >= 0 && *s.selectedIdx < len(s.items) {
			return s.items[*s.selectedIdx].ID, nil
		}
	}
	return "", nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
