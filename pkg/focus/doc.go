// Package focus keeps keyboard focus inside modal overlays and hands it back
// when they close.
//
// A Document holds the element tree a UI renders from, the single focused
// element, and the key and pointer listeners attached to it. A Trap attaches
// to a Document while a dialog is open:
//
//	doc := focus.NewDocument()
//	trap := focus.NewTrap(doc, focus.WithOnClose(func() { open = false }))
//
//	trap.Activate(overlay, container)  // capture previous focus, focus first control
//	doc.DispatchKey(keyMsg)             // Tab wraps, Escape calls OnClose
//	cmd := trap.Deactivate()            // listeners removed, restoration deferred
//
// The command returned by Deactivate yields a RestoreMsg. The host applies it
// from its Update on the next turn of the event loop, after the dialog's
// elements have been removed:
//
//	case focus.RestoreMsg:
//	    msg.Apply()
//
// Focusables is the pure query used for every Tab decision; it is never
// cached because dialog content may change while open.
package focus
