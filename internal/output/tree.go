package output

import (
	"fmt"
	"strings"

	"github.com/marcus/focusguard/pkg/focus"
)

// TreeNode represents a node in a tree structure for rendering
type TreeNode struct {
	ID       string
	Label    string
	Kind     focus.Kind
	Role     string
	Active   bool
	Disabled bool
	TabOrder int // 1-based position in Tab order, 0 when not tabbable
	Children []TreeNode
}

// TreeRenderOptions configures tree rendering behavior
type TreeRenderOptions struct {
	MaxDepth  int  // 0 = unlimited
	ShowKind  bool // Whether to show the element kind
	ShowOrder bool // Whether to show the Tab position
}

// FromElement converts the subtree under root. Tab positions are counted
// within root, so passing a dialog container numbers its trapped cycle.
func FromElement(root *focus.Element, active *focus.Element) TreeNode {
	order := make(map[*focus.Element]int)
	for i, el := range focus.Focusables(root) {
		order[el] = i + 1
	}
	return fromElement(root, active, order)
}

func fromElement(el, active *focus.Element, order map[*focus.Element]int) TreeNode {
	node := TreeNode{
		ID:       el.ID,
		Label:    el.Label,
		Kind:     el.Kind,
		Role:     el.Attr("role"),
		Active:   el == active,
		Disabled: el.Disabled(),
		TabOrder: order[el],
	}
	for _, c := range el.Children() {
		node.Children = append(node.Children, fromElement(c, active, order))
	}
	return node
}

// stateMark returns a focus state indicator symbol
func stateMark(n TreeNode) string {
	switch {
	case n.Active:
		return " \u25cf" // ●
	case n.Disabled:
		return " \u2717" // ✗
	default:
		return ""
	}
}

// RenderTree renders a tree starting from a single root node
// Returns the complete tree as a string (without the root - just children)
func RenderTree(root TreeNode, opts TreeRenderOptions) string {
	lines := renderTreeNodes(root.Children, opts, 0, "")
	return strings.Join(lines, "\n")
}

// RenderTreeLines renders multiple root nodes and returns individual lines
func RenderTreeLines(roots []TreeNode, opts TreeRenderOptions) []string {
	return renderTreeNodes(roots, opts, 0, "")
}

func renderTreeNodes(nodes []TreeNode, opts TreeRenderOptions, depth int, prefix string) []string {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return nil
	}

	var lines []string

	for i, node := range nodes {
		isLast := i == len(nodes)-1

		connector := "\u251c\u2500\u2500 " // ├──
		if isLast {
			connector = "\u2514\u2500\u2500 " // └──
		}

		var parts []string
		if opts.ShowOrder && node.TabOrder > 0 {
			parts = append(parts, fmt.Sprintf("[%d]", node.TabOrder))
		}
		if opts.ShowKind {
			parts = append(parts, node.Kind.String())
		}
		parts = append(parts, node.ID)
		if node.Role != "" {
			parts = append(parts, "role="+node.Role)
		}
		if node.Label != "" {
			parts = append(parts, fmt.Sprintf("%q", node.Label))
		}

		line := prefix + connector + strings.Join(parts, " ") + stateMark(node)
		lines = append(lines, line)

		childPrefix := prefix
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "\u2502   " // │
		}

		lines = append(lines, renderTreeNodes(node.Children, opts, depth+1, childPrefix)...)
	}

	return lines
}

// RenderTabOrder lists the elements Tab visits inside scope, in order,
// marking the active one.
func RenderTabOrder(scope, active *focus.Element) []string {
	set := focus.Focusables(scope)
	lines := make([]string, 0, len(set))
	for i, el := range set {
		connector := "\u251c\u2500\u2500 " // ├──
		if i == len(set)-1 {
			connector = "\u2514\u2500\u2500 " // └──
		}
		mark := ""
		if el == active {
			mark = " \u25cf"
		}
		line := fmt.Sprintf("  %s%d. %s %s", connector, i+1, el.Kind, el.ID)
		if el.Label != "" {
			line += fmt.Sprintf(" %q", el.Label)
		}
		lines = append(lines, line+mark)
	}
	return lines
}
