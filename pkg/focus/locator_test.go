package focus

import "testing"

func ids(els []*Element) []string {
	out := make([]string, len(els))
	for i, el := range els {
		out[i] = el.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestIsFocusable(t *testing.T) {
	tests := []struct {
		name string
		el   *Element
		want bool
	}{
		{"link with href", NewElement("a", KindLink, WithHref("/projects")), true},
		{"link without href", NewElement("a", KindLink), false},
		{"button", NewElement("b", KindButton), true},
		{"disabled button", NewElement("b", KindButton, WithDisabled(true)), false},
		{"input", NewElement("i", KindInput), true},
		{"disabled input", NewElement("i", KindInput, WithDisabled(true)), false},
		{"select", NewElement("s", KindSelect), true},
		{"textarea", NewElement("t", KindTextarea), true},
		{"disabled textarea", NewElement("t", KindTextarea, WithDisabled(true)), false},
		{"generic", NewElement("g", KindGeneric), false},
		{"generic tabindex 0", NewElement("g", KindGeneric, WithTabIndex(0)), true},
		{"generic tabindex 3", NewElement("g", KindGeneric, WithTabIndex(3)), true},
		{"generic tabindex -1", NewElement("g", KindGeneric, WithTabIndex(-1)), false},
		{"button tabindex -1", NewElement("b", KindButton, WithTabIndex(-1)), false},
		{"disabled button tabindex 0", NewElement("b", KindButton, WithDisabled(true), WithTabIndex(0)), false},
		{"link without href tabindex 0", NewElement("a", KindLink, WithTabIndex(0)), true},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFocusable(tt.el); got != tt.want {
				t.Errorf("IsFocusable(%v) = %v, want %v", tt.el, got, tt.want)
			}
		})
	}
}

func TestFocusablesDocumentOrder(t *testing.T) {
	container := NewElement("dialog", KindGeneric, WithTabIndex(-1))
	header := NewElement("header", KindGeneric)
	header.Append(
		NewElement("close", KindButton),
		NewElement("title", KindGeneric),
	)
	form := NewElement("form", KindGeneric)
	form.Append(
		NewElement("name", KindInput),
		NewElement("notes", KindTextarea, WithDisabled(true)),
		NewElement("help", KindLink, WithHref("#help")),
	)
	footer := NewElement("footer", KindGeneric)
	footer.Append(
		NewElement("cancel", KindButton),
		NewElement("delete", KindButton),
	)
	container.Append(header, form, footer)

	got := ids(Focusables(container))
	want := []string{"close", "name", "help", "cancel", "delete"}
	if !equalIDs(got, want) {
		t.Errorf("Focusables() = %v, want %v", got, want)
	}
}

func TestFocusablesExcludesContainer(t *testing.T) {
	container := NewElement("dialog", KindGeneric, WithTabIndex(0))
	container.Append(NewElement("ok", KindButton))

	got := ids(Focusables(container))
	if !equalIDs(got, []string{"ok"}) {
		t.Errorf("Focusables() = %v, want [ok]", got)
	}
}

func TestFocusablesNilAndEmpty(t *testing.T) {
	if got := Focusables(nil); got != nil {
		t.Errorf("Focusables(nil) = %v, want nil", got)
	}
	container := NewElement("dialog", KindGeneric)
	container.Append(NewElement("text", KindGeneric))
	if got := Focusables(container); len(got) != 0 {
		t.Errorf("Focusables(no controls) = %v, want empty", ids(got))
	}
}

func TestFocusablesReflectsLiveTree(t *testing.T) {
	container := NewElement("dialog", KindGeneric)
	spinner := NewElement("loading", KindGeneric)
	container.Append(spinner)

	if got := Focusables(container); len(got) != 0 {
		t.Fatalf("expected nothing focusable while loading, got %v", ids(got))
	}

	// Loading -> loaded swap while open.
	spinner.Remove()
	confirm := NewElement("confirm", KindButton, WithDisabled(true))
	container.Append(confirm)
	if got := Focusables(container); len(got) != 0 {
		t.Fatalf("disabled button should not be focusable, got %v", ids(got))
	}

	confirm.SetDisabled(false)
	if got := ids(Focusables(container)); !equalIDs(got, []string{"confirm"}) {
		t.Errorf("Focusables() = %v, want [confirm]", got)
	}
}
