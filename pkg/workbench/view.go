package workbench

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/focusguard/internal/models"
	"github.com/marcus/focusguard/pkg/modal"
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(modal.Primary)
	rowStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	rowFocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("237")).Bold(true)
	partnerStyle    = lipgloss.NewStyle().Foreground(modal.TextMuted)
	messageStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	errorStyle      = lipgloss.NewStyle().Foreground(modal.Error)
)

var statusStyles = map[models.Status]lipgloss.Style{
	models.StatusActive:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
	models.StatusOnHold:    lipgloss.NewStyle().Foreground(modal.Warning),
	models.StatusCompleted: lipgloss.NewStyle().Foreground(modal.Info),
	models.StatusArchived:  lipgloss.NewStyle().Foreground(modal.Muted),
}

// Screen rows above the list: title and filter line.
const headerLines = 2

// listHeight returns how many project rows fit between header and footer.
func (m *Model) listHeight() int {
	return max(m.Height-headerLines-3, 1)
}

// View renders the page and, when a dialog is open, composites it on top.
func (m *Model) View() string {
	page := m.renderPage()
	if m.dialog == nil {
		m.dialogMouse.Clear()
		return page
	}
	box := m.dialog.Render(m.Width, m.Height, m.dialogMouse)
	return modal.Overlay(page, box, m.Width, m.Height)
}

func (m *Model) renderPage() string {
	m.pageMouse.Clear()
	width := max(m.Width, 20)

	var lines []string
	title := titleStyle.Render("focusguard")
	count := partnerStyle.Render(fmt.Sprintf("  %d of %d projects", len(m.visible), len(m.all)))
	lines = append(lines, title+count)

	switch {
	case m.filtering:
		lines = append(lines, m.filter.View())
	case m.filter.Value() != "":
		lines = append(lines, partnerStyle.Render("/ "+m.filter.Value()+"  (esc to clear)"))
	default:
		lines = append(lines, "")
	}

	height := m.listHeight()
	cur := m.cursor()
	if cur < 0 {
		cur = clamp(m.lastCursor, 0, max(len(m.rows)-1, 0))
	}
	if cur < m.offset {
		m.offset = cur
	} else if cur >= m.offset+height {
		m.offset = cur - height + 1
	}
	m.offset = clamp(m.offset, 0, max(len(m.rows)-height, 0))

	if len(m.visible) == 0 {
		lines = append(lines, partnerStyle.Render("  no projects"))
	}
	for i := m.offset; i < len(m.visible) && i < m.offset+height; i++ {
		y := len(lines)
		lines = append(lines, m.renderRow(i, width))
		m.pageMouse.HitMap.AddRect(m.rows[i].ID, 0, y, width, 1, m.rows[i])
	}
	for len(lines) < headerLines+height {
		lines = append(lines, "")
	}

	lines = append(lines, "")
	switch {
	case m.messageErr:
		lines = append(lines, errorStyle.Render(ansi.Truncate(m.message, width, "…")))
	case m.message != "":
		lines = append(lines, messageStyle.Render(ansi.Truncate(m.message, width, "…")))
	default:
		lines = append(lines, "")
	}
	lines = append(lines, m.help.View(m.keys))

	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(i, width int) string {
	p := m.visible[i]
	focused := m.doc.Active() == m.rows[i]

	marker := "  "
	if focused {
		marker = "> "
	}
	status := statusStyles[p.Status].Render(fmt.Sprintf("%-10s", p.Status.Label()))
	nameWidth := max(width-2-10-2-lipgloss.Width(p.Partner)-2, 10)
	name := ansi.Truncate(p.Name, nameWidth, "…")
	name += strings.Repeat(" ", max(nameWidth-lipgloss.Width(name), 0))

	style := rowStyle
	if focused {
		style = rowFocusedStyle
	}
	line := style.Render(marker+name) + "  " + status + "  " + partnerStyle.Render(p.Partner)
	return ansi.Truncate(line, width, "")
}
