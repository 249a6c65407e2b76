package focus

import (
	"errors"
	"fmt"
)

var (
	// ErrTargetUnavailable means a requested focus target is not attached
	// to the document.
	ErrTargetUnavailable = errors.New("focus target unavailable")

	// ErrEmptyFocusableSet means a container had nothing to focus.
	ErrEmptyFocusableSet = errors.New("no focusable elements")
)

// TargetError describes which target in a priority chain was skipped.
type TargetError struct {
	Role string // "initial", "return" or "previous"
	ID   string
}

func (e *TargetError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s focus target %q: %v", e.Role, e.ID, ErrTargetUnavailable)
	}
	return fmt.Sprintf("%s focus target: %v", e.Role, ErrTargetUnavailable)
}

func (e *TargetError) Unwrap() error {
	return ErrTargetUnavailable
}

// ResolveInitialFocus picks the element to focus when a trap activates:
// initial if attached, else the first focusable in container, else the
// container itself. The returned element is always usable when container is
// attached; err records every fallback that was taken.
func ResolveInitialFocus(doc *Document, initial, container *Element) (*Element, error) {
	var errs []error
	if initial != nil {
		if doc.Contains(initial) {
			return initial, nil
		}
		errs = append(errs, &TargetError{Role: "initial", ID: initial.ID})
	}
	if set := Focusables(container); len(set) > 0 {
		return set[0], errors.Join(errs...)
	}
	errs = append(errs, ErrEmptyFocusableSet)
	return container, errors.Join(errs...)
}

// ResolveReturnFocus picks the element to focus after a trap deactivates:
// ret if attached, else previous if attached, else nil.
func ResolveReturnFocus(doc *Document, ret, previous *Element) (*Element, error) {
	var errs []error
	if ret != nil {
		if doc.Contains(ret) {
			return ret, nil
		}
		errs = append(errs, &TargetError{Role: "return", ID: ret.ID})
	}
	if previous != nil {
		if doc.Contains(previous) {
			return previous, errors.Join(errs...)
		}
		errs = append(errs, &TargetError{Role: "previous", ID: previous.ID})
	}
	if len(errs) == 0 {
		errs = append(errs, &TargetError{Role: "previous"})
	}
	return nil, errors.Join(errs...)
}
