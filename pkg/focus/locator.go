package focus

// IsFocusable reports whether el takes part in sequential (Tab) navigation:
// links with a target, enabled form controls, and anything with an explicit
// non-negative tab index. A negative tab index always opts the element out.
func IsFocusable(el *Element) bool {
	if el == nil {
		return false
	}
	if idx, ok := el.TabIndex(); ok {
		if idx < 0 {
			return false
		}
		if el.Kind == KindGeneric || el.Kind == KindLink {
			return true
		}
	}
	switch el.Kind {
	case KindLink:
		return el.Href() != ""
	case KindButton, KindInput, KindSelect, KindTextarea:
		return !el.Disabled()
	}
	return false
}

// Focusables returns the focusable descendants of container in document
// order. The result reflects the tree at call time and must not be cached.
func Focusables(container *Element) []*Element {
	if container == nil {
		return nil
	}
	var out []*Element
	container.Walk(func(el *Element) bool {
		if IsFocusable(el) {
			out = append(out, el)
		}
		return true
	})
	return out
}

func indexOf(set []*Element, el *Element) int {
	for i, s := range set {
		if s == el {
			return i
		}
	}
	return -1
}
