package output

import (
	"strings"
	"testing"

	"github.com/marcus/focusguard/pkg/focus"
)

func dialogTree() (*focus.Element, *focus.Element) {
	dialog := focus.NewElement("dialog", focus.KindGeneric, focus.WithTabIndex(-1), focus.WithAttr("role", "dialog"))
	ok := focus.NewElement("ok", focus.KindButton, focus.WithLabel("OK"))
	cancel := focus.NewElement("cancel", focus.KindButton, focus.WithDisabled(true))
	name := focus.NewElement("name", focus.KindInput)
	row := focus.NewElement("buttons", focus.KindGeneric).Append(ok, cancel)
	dialog.Append(name, row)
	return dialog, ok
}

func TestRenderTreeLines_Empty(t *testing.T) {
	lines := RenderTreeLines(nil, TreeRenderOptions{})
	if len(lines) != 0 {
		t.Errorf("expected empty lines, got %d", len(lines))
	}
}

func TestFromElement(t *testing.T) {
	dialog, ok := dialogTree()
	root := FromElement(dialog, ok)

	if root.Role != "dialog" || root.TabOrder != 0 {
		t.Errorf("root = %+v", root)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}
	name := root.Children[0]
	if name.TabOrder != 1 {
		t.Errorf("name TabOrder = %d, want 1", name.TabOrder)
	}
	buttons := root.Children[1].Children
	if !buttons[0].Active || buttons[0].TabOrder != 2 {
		t.Errorf("ok = %+v", buttons[0])
	}
	if !buttons[1].Disabled || buttons[1].TabOrder != 0 {
		t.Errorf("disabled cancel = %+v", buttons[1])
	}
}

func TestRenderTree(t *testing.T) {
	dialog, ok := dialogTree()
	got := RenderTree(FromElement(dialog, ok), TreeRenderOptions{ShowKind: true, ShowOrder: true})
	lines := strings.Split(got, "\n")

	want := []string{
		"├── [1] input name",
		"└── generic buttons",
		"    ├── [2] button ok \"OK\" ●",
		"    └── button cancel ✗",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines:\n%s", len(lines), got)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderTreeLines_MaxDepth(t *testing.T) {
	dialog, ok := dialogTree()
	lines := RenderTreeLines(FromElement(dialog, ok).Children, TreeRenderOptions{MaxDepth: 1})
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines at depth 1, got %d: %v", len(lines), lines)
	}
	for _, l := range lines {
		if strings.Contains(l, "ok") {
			t.Errorf("depth limit leaked child: %s", l)
		}
	}
}

func TestStateMark(t *testing.T) {
	tests := []struct {
		node TreeNode
		want string
	}{
		{TreeNode{Active: true}, " ●"},
		{TreeNode{Active: true, Disabled: true}, " ●"},
		{TreeNode{Disabled: true}, " ✗"},
		{TreeNode{}, ""},
	}
	for _, tt := range tests {
		if got := stateMark(tt.node); got != tt.want {
			t.Errorf("stateMark(%+v) = %q, want %q", tt.node, got, tt.want)
		}
	}
}

func TestRenderTabOrder(t *testing.T) {
	dialog, ok := dialogTree()
	lines := RenderTabOrder(dialog, ok)

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "├──") || !strings.Contains(lines[0], "1. input name") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "└──") || !strings.HasSuffix(lines[1], "2. button ok \"OK\" ●") {
		t.Errorf("last line = %q", lines[1])
	}
	if len(RenderTabOrder(nil, nil)) != 0 {
		t.Error("nil scope should render nothing")
	}
}
