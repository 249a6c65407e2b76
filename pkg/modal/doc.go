// Package modal provides declarative dialogs for bubbletea programs with
// focus trapping, focus restoration and mouse hit regions.
//
// A Modal is built from sections. While open it mounts a dialog element
// (role=dialog, aria-modal) into a focus.Document and owns a focus.Trap over
// it, so Tab and Shift+Tab cycle through the dialog's controls only, Escape
// and backdrop clicks ask to close, and closing hands focus back to where it
// was.
//
// # Quick Start
//
//	m := modal.New("Delete project?", modal.WithVariant(modal.VariantDanger)).
//	    AddSection(modal.Text("This cannot be undone.")).
//	    AddSection(modal.Spacer()).
//	    AddSection(modal.Buttons(
//	        modal.Btn(" Delete ", "delete", modal.BtnDanger()),
//	        modal.Btn(" Cancel ", "cancel"),
//	    ))
//	m.SetOpen(doc, true)
//
//	// In View():
//	box := m.Render(screenW, screenH, mouseHandler)
//	screen := modal.Overlay(page, box, screenW, screenH)
//
//	// In Update():
//	switch msg := msg.(type) {
//	case tea.KeyMsg:
//	    action, cmd := m.HandleKey(msg)
//	    switch action {
//	    case "delete":
//	        return performDelete()
//	    case "cancel", modal.ActionCancel:
//	        return model, m.SetOpen(doc, false)
//	    }
//	case focus.RestoreMsg:
//	    msg.Apply()
//	}
//
// The command returned by SetOpen(doc, false) yields a focus.RestoreMsg;
// focus only moves back when the host applies it.
//
// # Built-in Sections
//
//   - Text(s string) - static text, auto-wrapped
//   - Spacer() - blank line
//   - Markdown(src string) - glamour-rendered markdown
//   - Buttons(btns ...ButtonDef) - button row with focus/hover styling
//   - Checkbox(id, label string, checked *bool) - toggleable checkbox
//   - Input(id string, model *textinput.Model, opts...) - text input
//   - Textarea(id string, model *textarea.Model, height int, opts...) - multiline
//   - List(id string, items []ListItem, selectedIdx *int, opts...) - scrollable list
//   - When(condition func() bool, section) - conditional rendering
//   - Custom(renderFn, updateFn) - escape hatch for complex content
package modal
