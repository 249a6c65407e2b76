// Package workbench is the interactive project list. Every dialog it opens
// traps focus while open and hands it back to the row that opened it.
package workbench

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/focusguard/internal/config"
	"github.com/marcus/focusguard/internal/db"
	"github.com/marcus/focusguard/internal/models"
	"github.com/marcus/focusguard/internal/workflow"
	"github.com/marcus/focusguard/pkg/focus"
	"github.com/marcus/focusguard/pkg/modal"
	"github.com/marcus/focusguard/pkg/mouse"
)

// Options configures New.
type Options struct {
	DB      *db.DB
	Config  *models.Config
	Machine *workflow.StateMachine
}

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogDelete
	dialogStatus
	dialogNew
	dialogHelp
)

func (k dialogKind) String() string {
	switch k {
	case dialogDelete:
		return "delete"
	case dialogStatus:
		return "status"
	case dialogNew:
		return "new"
	case dialogHelp:
		return "help"
	default:
		return "none"
	}
}

// Model is the workbench bubbletea model. Use it through a pointer.
type Model struct {
	db   *db.DB
	cfg  *models.Config
	sm   *workflow.StateMachine
	keys keyMap
	help help.Model

	// Rows are button elements under list; keyboard focus is doc.Active().
	doc     *focus.Document
	list    *focus.Element
	rows    []*focus.Element
	rowByID map[string]*focus.Element

	all        []models.Project
	visible    []models.Project
	lastCursor int
	offset     int

	filtering bool
	filter    textinput.Model

	dialog    *modal.Modal
	kind      dialogKind
	target    *models.Project
	inFlight  bool
	dialogErr string

	statusTargets []models.Status
	statusIdx     int
	reason        textarea.Model
	nameInput     textinput.Model
	partnerInput  textinput.Model

	pageMouse   *mouse.Handler
	dialogMouse *mouse.Handler

	Width  int
	Height int

	message    string
	messageErr bool
	focusID    string
}

// New builds a workbench over an open database.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	sm := opts.Machine
	if sm == nil {
		sm = workflow.DefaultMachine()
	}

	doc := focus.NewDocument()
	list := focus.NewElement("projects", focus.KindGeneric, focus.WithAttr("role", "list"))
	doc.Body().Append(list)

	filter := newTextInput("filter projects")
	filter.Prompt = "/ "
	filter.SetValue(cfg.SearchQuery)

	return &Model{
		db:          opts.DB,
		cfg:         cfg,
		sm:          sm,
		keys:        defaultKeyMap(),
		help:        help.New(),
		doc:         doc,
		list:        list,
		rowByID:     make(map[string]*focus.Element),
		filter:      filter,
		pageMouse:   mouse.NewHandler(),
		dialogMouse: mouse.NewHandler(),
		Width:       80,
		Height:      24,
		focusID:     cfg.FocusedProjectID,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.refresh()
}

func (m *Model) refresh() tea.Cmd {
	database := m.db
	return func() tea.Msg {
		return FetchData(database)
	}
}

// Document exposes the focus document, mainly for tests.
func (m *Model) Document() *focus.Document {
	return m.doc
}

// Visible returns the projects currently listed.
func (m *Model) Visible() []models.Project {
	return m.visible
}

// DialogOpen reports whether a dialog is up.
func (m *Model) DialogOpen() bool {
	return m.dialog != nil
}

// cursor returns the index of the focused row, or -1.
func (m *Model) cursor() int {
	active := m.doc.Active()
	for i, el := range m.rows {
		if el == active {
			return i
		}
	}
	return -1
}

func (m *Model) current() *models.Project {
	if i := m.cursor(); i >= 0 {
		return &m.visible[i]
	}
	return nil
}

func (m *Model) focusRow(i int) {
	if len(m.rows) == 0 {
		return
	}
	i = clamp(i, 0, len(m.rows)-1)
	m.doc.Focus(m.rows[i])
	m.lastCursor = i
}

func (m *Model) moveCursor(delta int) {
	i := m.cursor()
	if i < 0 {
		m.ensureRowFocus()
		return
	}
	m.focusRow(i + delta)
}

// ensureRowFocus puts focus back on a row when it fell back to the body,
// e.g. after the focused row was deleted or filtered out.
func (m *Model) ensureRowFocus() {
	if m.dialog != nil || len(m.rows) == 0 {
		return
	}
	if m.doc.Active() != m.doc.Body() {
		return
	}
	m.focusRow(m.lastCursor)
}

// rebuildRows applies the filter and reconciles row elements. Elements are
// reused by project ID so focus survives a refresh.
func (m *Model) rebuildRows() {
	if i := m.cursor(); i >= 0 {
		m.lastCursor = i
	}
	m.visible = filterProjects(m.filter.Value(), m.all)

	rows := make([]*focus.Element, len(m.visible))
	byID := make(map[string]*focus.Element, len(m.visible))
	for i, p := range m.visible {
		el := m.rowByID[p.ID]
		if el == nil {
			el = focus.NewElement(p.ID, focus.KindButton)
		}
		el.Label = p.Name
		rows[i] = el
		byID[p.ID] = el
	}
	m.rows, m.rowByID = rows, byID
	m.list.ReplaceChildren(rows...)

	if m.focusID != "" && m.dialog == nil {
		if el := byID[m.focusID]; el != nil {
			m.doc.Focus(el)
		}
		m.focusID = ""
	}
	m.ensureRowFocus()
}

func (m *Model) setMessage(msg string) {
	m.message, m.messageErr = msg, false
}

func (m *Model) setError(err error) {
	m.message, m.messageErr = err.Error(), true
	slog.Warn("workbench: error", "err", err)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case RefreshDataMsg:
		if msg.Error != nil {
			m.setError(msg.Error)
			return m, nil
		}
		m.all = msg.Projects
		m.rebuildRows()
		return m, nil

	case focus.RestoreMsg:
		msg.Apply()
		m.ensureRowFocus()
		return m, nil

	case deleteDoneMsg:
		return m, m.onDeleteDone(msg)

	case statusDoneMsg:
		return m, m.onStatusDone(msg)

	case createDoneMsg:
		return m, m.onCreateDone(msg)

	case clipboardMsg:
		if msg.Err != nil {
			m.setError(fmt.Errorf("copy failed: %w", msg.Err))
		} else {
			m.setMessage("Copied " + msg.Name)
		}
		return m, nil

	case tea.KeyMsg:
		if m.dialog != nil {
			action, cmd := m.dialog.HandleKey(msg)
			return m, tea.Batch(cmd, m.handleDialogAction(action))
		}
		if m.filtering {
			return m, m.updateFilterKey(msg)
		}
		return m, m.updateListKey(msg)

	case tea.MouseMsg:
		if m.dialog != nil {
			action, cmd := m.dialog.HandleMouse(msg, m.dialogMouse)
			return m, tea.Batch(cmd, m.handleDialogAction(action))
		}
		return m, m.updateListMouse(msg)
	}
	return m, nil
}

func (m *Model) updateListKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.persist()
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.focusRow(0)
	case key.Matches(msg, m.keys.Bottom):
		m.focusRow(len(m.rows) - 1)
	case key.Matches(msg, m.keys.Next, m.keys.Prev):
		m.doc.DispatchKey(msg)
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		cmd = m.filter.Focus()
	case key.Matches(msg, m.keys.New):
		m.openDialog(dialogNew, m.createNewProjectModal(), nil)
	case key.Matches(msg, m.keys.Status):
		if p := m.current(); p != nil {
			if len(workflow.GetTransitionsFrom(p.Status)) == 0 {
				m.setMessage(p.Name + " has nowhere to go")
				break
			}
			m.openDialog(dialogStatus, m.createStatusModal(p), p)
		}
	case key.Matches(msg, m.keys.Delete):
		if p := m.current(); p != nil {
			m.openDialog(dialogDelete, m.createDeleteModal(p), p)
		}
	case key.Matches(msg, m.keys.Copy):
		cmd = m.copyCurrent()
	case key.Matches(msg, m.keys.Refresh):
		cmd = m.refresh()
	case key.Matches(msg, m.keys.Help):
		m.openDialog(dialogHelp, m.createHelpModal(), nil)
	case key.Matches(msg, m.keys.Cancel):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.rebuildRows()
		}
	}
	if i := m.cursor(); i >= 0 {
		m.lastCursor = i
	}
	return cmd
}

func (m *Model) updateFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.String() == "ctrl+c":
		m.persist()
		return tea.Quit
	case key.Matches(msg, m.keys.Accept):
		m.filtering = false
		m.filter.Blur()
		return nil
	case key.Matches(msg, m.keys.Cancel):
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.rebuildRows()
		return nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.rebuildRows()
	return cmd
}

func (m *Model) updateListMouse(msg tea.MouseMsg) tea.Cmd {
	a := m.pageMouse.HandleMouse(msg)
	var el *focus.Element
	if a.Region != nil {
		el, _ = a.Region.Data.(*focus.Element)
	}
	switch a.Type {
	case mouse.ActionClick:
		if el != nil {
			m.doc.DispatchClick(el)
		}
	case mouse.ActionDoubleClick:
		if el != nil {
			m.doc.DispatchClick(el)
			if p := m.current(); p != nil && len(workflow.GetTransitionsFrom(p.Status)) > 0 {
				m.openDialog(dialogStatus, m.createStatusModal(p), p)
			}
		}
	case mouse.ActionScrollUp:
		m.moveCursor(-1)
	case mouse.ActionScrollDown:
		m.moveCursor(1)
	}
	if i := m.cursor(); i >= 0 {
		m.lastCursor = i
	}
	return nil
}

func (m *Model) openDialog(kind dialogKind, md *modal.Modal, target *models.Project) {
	if m.dialog != nil {
		m.dialog.Destroy()
	}
	m.dialog, m.kind, m.target = md, kind, target
	m.inFlight, m.dialogErr = false, ""
	md.SetOpen(m.doc, true)

	id := ""
	if target != nil {
		id = target.ID
	}
	slog.Debug("workbench: dialog opened", "kind", kind, "project", id, "focus", md.FocusedID())
}

// closeDialog unmounts the dialog and returns the focus restoration command.
func (m *Model) closeDialog() tea.Cmd {
	if m.dialog == nil {
		return nil
	}
	cmd := m.dialog.SetOpen(m.doc, false)
	slog.Debug("workbench: dialog closed", "kind", m.kind)
	m.dialog, m.kind, m.target = nil, dialogNone, nil
	m.inFlight, m.dialogErr = false, ""
	return cmd
}

// setBusy marks the dialog's operation in flight: Escape is ignored and the
// buttons are disabled until it completes.
func (m *Model) setBusy(busy bool, buttons ...string) {
	m.inFlight = busy
	if busy {
		m.dialog.SetCloseOnEscape(false)
	} else {
		m.dialog.SetCloseOnEscape(m.cfg.CloseOnEscape)
	}
	for _, id := range buttons {
		m.dialog.SetButtonDisabled(id, busy)
	}
}

func (m *Model) handleDialogAction(action string) tea.Cmd {
	if action == "" || m.dialog == nil || m.inFlight {
		return nil
	}
	switch action {
	case modal.ActionCancel, actionClose: // modal.ActionCancel == actionCancel
		return m.closeDialog()
	}

	switch m.kind {
	case dialogDelete:
		if action == actionDelete {
			return m.startDelete()
		}
	case dialogStatus:
		if action == actionApply {
			return m.startTransition()
		}
		if models.IsValidStatus(models.Status(action)) {
			m.dialog.Focus(fieldReason)
		}
	case dialogNew:
		if action == actionCreate {
			return m.startCreate()
		}
	}
	return nil
}

func (m *Model) startDelete() tea.Cmd {
	m.setBusy(true, actionDelete, actionCancel)
	database, id := m.db, m.target.ID
	return func() tea.Msg {
		return deleteProject(database, id)
	}
}

func (m *Model) onDeleteDone(msg deleteDoneMsg) tea.Cmd {
	if m.kind != dialogDelete {
		return m.refresh()
	}
	m.setBusy(false, actionDelete, actionCancel)
	if msg.Err != nil {
		m.dialogErr = msg.Err.Error()
		return nil
	}
	m.setMessage("Deleted " + m.target.Name)
	return tea.Batch(m.closeDialog(), m.refresh())
}

func (m *Model) startTransition() tea.Cmd {
	to := m.selectedTarget()
	if to == "" {
		return nil
	}
	m.setBusy(true, actionApply, actionCancel)
	database, sm, id, reason := m.db, m.sm, m.target.ID, m.reason.Value()
	return func() tea.Msg {
		return transitionProject(database, sm, id, to, reason)
	}
}

func (m *Model) onStatusDone(msg statusDoneMsg) tea.Cmd {
	if m.kind != dialogStatus {
		return m.refresh()
	}
	m.setBusy(false, actionApply, actionCancel)
	if msg.Err != nil {
		m.dialogErr = userMessage(msg.Err)
		m.dialog.Focus(fieldReason)
		return nil
	}
	m.setMessage(fmt.Sprintf("%s is now %s", msg.Project.Name, strings.ToLower(msg.Project.Status.Label())))
	return tea.Batch(m.closeDialog(), m.refresh())
}

func (m *Model) startCreate() tea.Cmd {
	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		m.dialogErr = "Name is required"
		m.dialog.Focus(fieldName)
		return nil
	}
	m.setBusy(true, actionCreate, actionCancel)
	database, partner := m.db, m.partnerInput.Value()
	return func() tea.Msg {
		return createProject(database, name, partner)
	}
}

func (m *Model) onCreateDone(msg createDoneMsg) tea.Cmd {
	if m.kind != dialogNew {
		return m.refresh()
	}
	m.setBusy(false, actionCreate, actionCancel)
	if msg.Err != nil {
		m.dialogErr = userMessage(msg.Err)
		return nil
	}
	m.setMessage("Created " + msg.Project.Name)
	return tea.Batch(m.closeDialog(), m.refresh())
}

// userMessage turns guard failures into their bare reasons.
func userMessage(err error) string {
	var ge *workflow.GuardError
	if errors.As(err, &ge) {
		return ge.Reason
	}
	var te *workflow.TransitionError
	if errors.As(err, &te) {
		return te.Reason
	}
	return err.Error()
}

func (m *Model) copyCurrent() tea.Cmd {
	p := m.current()
	if p == nil {
		return nil
	}
	history, err := m.db.StatusHistory(p.ID)
	if err != nil {
		m.setError(err)
		return nil
	}
	text, name := formatProjectAsMarkdown(p, history), p.Name
	return func() tea.Msg {
		return clipboardMsg{Name: name, Err: copyToClipboard(text)}
	}
}

// persist remembers the focused project and filter for the next start.
func (m *Model) persist() {
	if m.db == nil {
		return
	}
	baseDir := m.db.BaseDir()
	id := ""
	if p := m.current(); p != nil {
		id = p.ID
	}
	if err := config.SetFocus(baseDir, id); err != nil {
		slog.Warn("workbench: save focus", "err", err)
	}
	if err := config.SetSearchQuery(baseDir, m.filter.Value()); err != nil {
		slog.Warn("workbench: save filter", "err", err)
	}
}

// Close tears down any open dialog without restoring focus.
func (m *Model) Close() {
	if m.dialog != nil {
		m.dialog.Destroy()
		m.dialog, m.kind, m.target = nil, dialogNone, nil
	}
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
