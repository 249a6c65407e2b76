package focus

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	tab      = tea.KeyMsg{Type: tea.KeyTab}
	shiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	escape   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestElementTree(t *testing.T) {
	root := NewElement("root", KindGeneric)
	a := NewElement("a", KindGeneric)
	b := NewElement("b", KindButton)
	root.Append(a)
	a.Append(b)

	if !root.Contains(b) {
		t.Error("root should contain grandchild")
	}
	if b.Root() != root {
		t.Errorf("b.Root() = %v, want root", b.Root())
	}
	if root.Find("b") != b {
		t.Error("Find(b) should return b")
	}

	// Re-appending moves the element.
	root.Append(b)
	if b.Parent() != root {
		t.Errorf("b.Parent() = %v, want root", b.Parent())
	}
	if len(a.Children()) != 0 {
		t.Errorf("a should have no children after move, got %d", len(a.Children()))
	}

	a.Remove()
	if root.Contains(a) {
		t.Error("removed element should not be contained")
	}
	if a.Root() != a {
		t.Error("detached element should be its own root")
	}
}

func TestDocumentFocus(t *testing.T) {
	doc := NewDocument()
	btn := NewElement("btn", KindButton)

	if doc.Focus(btn) {
		t.Error("focusing a detached element should fail")
	}
	if doc.Active() != doc.Body() {
		t.Errorf("Active() = %v, want body", doc.Active())
	}

	doc.Body().Append(btn)
	if !doc.Focus(btn) {
		t.Fatal("focusing an attached element should succeed")
	}
	if doc.Active() != btn {
		t.Errorf("Active() = %v, want btn", doc.Active())
	}

	btn.Remove()
	if doc.Active() != doc.Body() {
		t.Errorf("Active() after removal = %v, want body", doc.Active())
	}
}

func TestDocumentDefaultTabNavigation(t *testing.T) {
	doc := NewDocument()
	b1 := NewElement("b1", KindButton)
	text := NewElement("text", KindGeneric)
	b2 := NewElement("b2", KindButton)
	b3 := NewElement("b3", KindButton)
	doc.Body().Append(b1, text, b2, b3)

	doc.DispatchKey(tab)
	if doc.Active() != b1 {
		t.Fatalf("Tab from body: Active() = %v, want b1", doc.Active())
	}
	doc.DispatchKey(tab)
	if doc.Active() != b2 {
		t.Fatalf("Tab: Active() = %v, want b2", doc.Active())
	}
	doc.DispatchKey(shiftTab)
	if doc.Active() != b1 {
		t.Fatalf("Shift+Tab: Active() = %v, want b1", doc.Active())
	}
	doc.DispatchKey(shiftTab)
	if doc.Active() != b3 {
		t.Fatalf("Shift+Tab wrap: Active() = %v, want b3", doc.Active())
	}

	// From a non-focusable element, navigation continues from its position.
	doc.Focus(text)
	doc.DispatchKey(tab)
	if doc.Active() != b2 {
		t.Errorf("Tab from text: Active() = %v, want b2", doc.Active())
	}
	doc.Focus(text)
	doc.DispatchKey(shiftTab)
	if doc.Active() != b1 {
		t.Errorf("Shift+Tab from text: Active() = %v, want b1", doc.Active())
	}
}

func TestDocumentPreventDefault(t *testing.T) {
	doc := NewDocument()
	b1 := NewElement("b1", KindButton)
	b2 := NewElement("b2", KindButton)
	doc.Body().Append(b1, b2)
	doc.Focus(b1)

	remove := doc.AddKeyListener(func(ev *KeyEvent) { ev.PreventDefault() })
	ev := doc.DispatchKey(tab)
	if !ev.DefaultPrevented() {
		t.Error("expected default to be prevented")
	}
	if doc.Active() != b1 {
		t.Errorf("prevented Tab moved focus to %v", doc.Active())
	}

	remove()
	remove()
	if doc.ListenerCount() != 0 {
		t.Errorf("ListenerCount() = %d, want 0", doc.ListenerCount())
	}
	doc.DispatchKey(tab)
	if doc.Active() != b2 {
		t.Errorf("Active() = %v, want b2", doc.Active())
	}
}

func TestDocumentListenerRemovedDuringDispatch(t *testing.T) {
	doc := NewDocument()
	calls := 0
	var removeSecond func()
	doc.AddKeyListener(func(*KeyEvent) {
		calls++
		removeSecond()
	})
	removeSecond = doc.AddKeyListener(func(*KeyEvent) { calls += 10 })

	doc.DispatchKey(escape)
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (second listener removed before it ran)", calls)
	}
	if doc.ListenerCount() != 1 {
		t.Errorf("ListenerCount() = %d, want 1", doc.ListenerCount())
	}
}

func TestDocumentDispatchClickFocusesTarget(t *testing.T) {
	doc := NewDocument()
	btn := NewElement("btn", KindButton)
	label := NewElement("label", KindGeneric)
	doc.Body().Append(btn, label)

	doc.DispatchClick(btn)
	if doc.Active() != btn {
		t.Errorf("click on button: Active() = %v, want btn", doc.Active())
	}
	doc.DispatchClick(label)
	if doc.Active() != btn {
		t.Errorf("click on non-focusable moved focus to %v", doc.Active())
	}
}
