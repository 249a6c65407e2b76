package workbench

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/marcus/focusguard/internal/models"
	"github.com/marcus/focusguard/internal/workflow"
	"github.com/marcus/focusguard/pkg/modal"
)

// Dialog action and field IDs
const (
	actionCancel = "cancel"
	actionClose  = "close"
	actionDelete = "delete"
	actionApply  = "apply"
	actionCreate = "create"

	fieldTarget  = "status-target"
	fieldReason  = "status-reason"
	fieldName    = "project-name"
	fieldPartner = "project-partner"
)

// dialogWidth returns the configured dialog width clamped to the screen.
func (m *Model) dialogWidth() int {
	w := m.cfg.DialogWidth
	if m.Width > 0 && w > m.Width-4 {
		w = m.Width - 4
	}
	return max(w, 30)
}

// errorSection shows the last failure of the open dialog's operation.
func (m *Model) errorSection() modal.Section {
	return modal.When(
		func() bool { return m.dialogErr != "" },
		modal.Custom(func(contentWidth int, _, _ string) modal.RenderedSection {
			return modal.RenderedSection{Content: modal.ErrorText.Width(contentWidth).Render(m.dialogErr)}
		}, nil),
	)
}

func (m *Model) commonOptions() []modal.Option {
	return []modal.Option{
		modal.WithWidth(m.dialogWidth()),
		modal.WithCloseOnEscape(m.cfg.CloseOnEscape),
		modal.WithCloseOnBackdropClick(m.cfg.CloseOnOutsideClick),
	}
}

func (m *Model) createDeleteModal(p *models.Project) *modal.Modal {
	opts := append(m.commonOptions(),
		modal.WithVariant(modal.VariantDanger),
		modal.WithDescription(fmt.Sprintf("%q and its status history will be removed.", p.Name)),
		modal.WithInitialFocus(actionCancel),
	)
	return modal.New("Delete project?", opts...).
		AddSection(modal.Spacer()).
		AddSection(m.errorSection()).
		AddSection(modal.Buttons(
			modal.Btn(" Delete ", actionDelete, modal.BtnDanger()),
			modal.Btn(" Cancel ", actionCancel),
		))
}

func (m *Model) createStatusModal(p *models.Project) *modal.Modal {
	m.statusTargets = workflow.GetTransitionsFrom(p.Status)
	m.statusIdx = 0
	m.reason = newReasonInput()

	items := make([]modal.ListItem, len(m.statusTargets))
	for i, s := range m.statusTargets {
		items[i] = modal.ListItem{
			ID:    string(s),
			Label: fmt.Sprintf("%s (%s)", s.Label(), workflow.TransitionName(p.Status, s)),
			Data:  s,
		}
	}
	from := p.Status

	opts := append(m.commonOptions(),
		modal.WithDescription(fmt.Sprintf("%s is %s.", p.Name, strings.ToLower(from.Label()))),
	)
	return modal.New("Change status", opts...).
		AddSection(modal.List(fieldTarget, items, &m.statusIdx, modal.WithMaxVisible(4))).
		AddSection(modal.Spacer()).
		AddSection(modal.Custom(func(int, string, string) modal.RenderedSection {
			label := "Reason (optional)"
			if m.sm.RequiresReason(from, m.selectedTarget()) {
				label = "Reason (required)"
			}
			return modal.RenderedSection{Content: modal.FieldLabel.Render(label)}
		}, nil)).
		AddSection(modal.Textarea(fieldReason, &m.reason, 3)).
		AddSection(m.errorSection()).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			modal.Btn(" Apply ", actionApply, modal.BtnPrimary()),
			modal.Btn(" Cancel ", actionCancel),
		))
}

func (m *Model) selectedTarget() models.Status {
	if m.statusIdx < 0 || m.statusIdx >= len(m.statusTargets) {
		return ""
	}
	return m.statusTargets[m.statusIdx]
}

// createNewProjectModal always closes on outside clicks; nothing typed in
// it is worth protecting.
func (m *Model) createNewProjectModal() *modal.Modal {
	m.nameInput = newTextInput("Harbor Lights Festival")
	m.partnerInput = newTextInput("optional")

	opts := append(m.commonOptions(),
		modal.WithCloseOnBackdropClick(true),
		modal.WithPrimaryAction(actionCreate),
	)
	return modal.New("New project", opts...).
		AddSection(modal.Input(fieldName, &m.nameInput, modal.WithInputLabel("Name"))).
		AddSection(modal.Input(fieldPartner, &m.partnerInput, modal.WithInputLabel("Partner"))).
		AddSection(m.errorSection()).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			modal.Btn(" Create ", actionCreate, modal.BtnPrimary()),
			modal.Btn(" Cancel ", actionCancel),
		))
}

func (m *Model) createHelpModal() *modal.Modal {
	opts := append(m.commonOptions(),
		modal.WithWidth(m.dialogWidth()+10),
		modal.WithVariant(modal.VariantInfo),
	)
	return modal.New("Keyboard shortcuts", opts...).
		AddSection(modal.Markdown(helpMarkdown(m.keys))).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(modal.Btn(" Close ", actionClose)))
}

func helpMarkdown(k keyMap) string {
	var sb strings.Builder
	sb.WriteString("| Key | Action |\n|---|---|\n")
	for _, group := range k.FullHelp() {
		for _, b := range group {
			h := b.Help()
			fmt.Fprintf(&sb, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	sb.WriteString("\nInside a dialog **Tab** and **Shift+Tab** cycle through its controls and **Esc** closes it. ")
	sb.WriteString("Focus goes back to the row that opened the dialog.\n")
	return sb.String()
}

func newTextInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = 120
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newReasonInput() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Why is the status changing?"
	ta.ShowLineNumbers = false
	ta.CharLimit = workflow.MaxReasonLength
	ta.Cursor.SetMode(cursor.CursorStatic)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("ctrl+j"))
	return ta
}
