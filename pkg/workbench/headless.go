package workbench

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/focusguard/pkg/modal"
)

// maxSettleSteps bounds Settle so a command that keeps producing messages
// cannot spin forever.
const maxSettleSteps = 256

// ErrUnsettled is returned by Settle when commands keep producing messages.
var ErrUnsettled = errors.New("workbench: commands did not settle")

// Settle runs cmd outside a tea.Program, feeding every message it produces
// back into Update until no commands remain. Quit is ignored.
func (m *Model) Settle(cmd tea.Cmd) error {
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps >= maxSettleSteps {
			return ErrUnsettled
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
	return nil
}

// Press sends each key through Update and settles the result.
func (m *Model) Press(keys ...string) error {
	for _, k := range keys {
		_, cmd := m.Update(ParseKey(k))
		if err := m.Settle(cmd); err != nil {
			return err
		}
	}
	return nil
}

// ParseKey turns a key name as printed by tea.KeyMsg.String back into a
// message. Unknown names are sent as typed runes.
func ParseKey(s string) tea.KeyMsg {
	switch strings.ToLower(s) {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc", "escape":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+j":
		return tea.KeyMsg{Type: tea.KeyCtrlJ}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// Dialog returns the open dialog, or nil.
func (m *Model) Dialog() *modal.Modal {
	return m.dialog
}
