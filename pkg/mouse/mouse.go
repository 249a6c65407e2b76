// Package mouse maps terminal mouse events onto rectangular hit regions.
//
// Views register regions while rendering (render-then-measure), and the
// Update side asks a Handler what a tea.MouseMsg landed on. Regions added
// later take priority, so overlays registered after the page they cover
// win hit tests.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// doubleClickWindow is the maximum gap between two clicks on the same region
// for them to count as a double click.
const doubleClickWindow = 400 * time.Millisecond

// Rect is a screen rectangle. W and H are exclusive bounds.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named hit area with optional payload.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds regions in registration order.
type HitMap struct {
	regions []Region
}

func NewHitMap() *HitMap {
	return &HitMap{}
}

// AddRect registers a region. Later regions win overlapping hit tests.
func (m *HitMap) AddRect(id string, x, y, w, h int, data any) {
	m.regions = append(m.regions, Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h}, Data: data})
}

// Add registers a region built elsewhere.
func (m *HitMap) Add(r Region) {
	m.regions = append(m.regions, r)
}

// Test returns the top-most region containing (x, y), or nil.
func (m *HitMap) Test(x, y int) *Region {
	for i := len(m.regions) - 1; i >= 0; i-- {
		if m.regions[i].Rect.Contains(x, y) {
			r := m.regions[i]
			return &r
		}
	}
	return nil
}

func (m *HitMap) Clear() {
	m.regions = m.regions[:0]
}

// Regions returns the registered regions, lowest priority first.
func (m *HitMap) Regions() []Region {
	return m.regions
}

// ActionType classifies a mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionHover
	ActionDrag
	ActionDragEnd
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
)

func (a ActionType) String() string {
	switch a {
	case ActionClick:
		return "click"
	case ActionDoubleClick:
		return "double-click"
	case ActionHover:
		return "hover"
	case ActionDrag:
		return "drag"
	case ActionDragEnd:
		return "drag-end"
	case ActionScrollUp:
		return "scroll-up"
	case ActionScrollDown:
		return "scroll-down"
	case ActionScrollLeft:
		return "scroll-left"
	case ActionScrollRight:
		return "scroll-right"
	default:
		return "none"
	}
}

// Action is the result of HandleMouse.
type Action struct {
	Type   ActionType
	Region *Region
	X, Y   int

	DragDX, DragDY int
}

// ClickResult is the result of HandleClick.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler tracks click and drag state across events.
type Handler struct {
	HitMap *HitMap

	lastClickID   string
	lastClickTime time.Time

	dragging       bool
	dragStartX     int
	dragStartY     int
	dragRegion     string
	dragStartValue int
}

func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap()}
}

// Clear drops all regions; views call it before re-registering.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}

// HandleClick hit-tests a click and detects double clicks. A double click
// resets detection so a third click starts over.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	now := time.Now()

	var res ClickResult
	res.Region = region
	if region == nil {
		h.lastClickID = ""
		return res
	}

	if region.ID == h.lastClickID && now.Sub(h.lastClickTime) <= doubleClickWindow {
		res.IsDoubleClick = true
		h.lastClickID = ""
		h.lastClickTime = time.Time{}
		return res
	}

	h.lastClickID = region.ID
	h.lastClickTime = now
	return res
}

// StartDrag begins tracking a drag from (x, y). startValue is whatever the
// caller is dragging (a pane width, a divider offset).
func (h *Handler) StartDrag(x, y int, regionID string, startValue int) {
	h.dragging = true
	h.dragStartX = x
	h.dragStartY = y
	h.dragRegion = regionID
	h.dragStartValue = startValue
}

func (h *Handler) IsDragging() bool {
	return h.dragging
}

func (h *Handler) DragRegion() string {
	return h.dragRegion
}

func (h *Handler) DragStartValue() int {
	return h.dragStartValue
}

// DragDelta returns the offset of (x, y) from the drag start.
func (h *Handler) DragDelta(x, y int) (int, int) {
	return x - h.dragStartX, y - h.dragStartY
}

func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
	h.dragStartValue = 0
}

// HandleMouse classifies a bubbletea mouse message.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	a := Action{X: msg.X, Y: msg.Y}

	if h.dragging {
		switch msg.Action {
		case tea.MouseActionMotion:
			a.Type = ActionDrag
			a.DragDX, a.DragDY = h.DragDelta(msg.X, msg.Y)
			return a
		case tea.MouseActionRelease:
			h.EndDrag()
			a.Type = ActionDragEnd
			return a
		}
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.Type = ActionScrollUp
			if msg.Shift {
				a.Type = ActionScrollLeft
			}
		case tea.MouseButtonWheelDown:
			a.Type = ActionScrollDown
			if msg.Shift {
				a.Type = ActionScrollRight
			}
		case tea.MouseButtonWheelLeft:
			a.Type = ActionScrollLeft
		case tea.MouseButtonWheelRight:
			a.Type = ActionScrollRight
		case tea.MouseButtonLeft:
			res := h.HandleClick(msg.X, msg.Y)
			a.Region = res.Region
			a.Type = ActionClick
			if res.IsDoubleClick {
				a.Type = ActionDoubleClick
			}
			return a
		}
		a.Region = h.HitMap.Test(msg.X, msg.Y)
	case tea.MouseActionMotion:
		a.Type = ActionHover
		a.Region = h.HitMap.Test(msg.X, msg.Y)
	}
	return a
}
