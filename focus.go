package cellterm

// FocusTree maintains the path from the Surface tree's root to the
// currently focused widget, recomputed from scratch after every redraw
// (Surfaces don't carry parent back-pointers, so the path is found by a
// fresh top-down search rather than walked upward from a stored node).
type FocusTree struct {
	focused WidgetID
	path    []*Surface
}

// NewFocusTree returns a tree with nothing focused.
func NewFocusTree() *FocusTree { return &FocusTree{} }

// Focused returns the currently focused widget's identity.
func (f *FocusTree) Focused() WidgetID { return f.focused }

// Rebuild recomputes path_to_focused against a new Surface tree. If the
// previously focused widget is no longer present, focus falls back to
// root and a debug-level log records the inconsistency (the spec treats
// this as an assertion in debug builds; release behavior — falling back
// silently — is what actually runs here, matching "release-mode falls
// back to focusing the root").
func (f *FocusTree) Rebuild(root *Surface) {
	if root == nil {
		f.path = nil
		f.focused = WidgetID{}
		return
	}
	if f.focused.IsZero() {
		f.path = []*Surface{root}
		f.focused = root.Widget
		return
	}
	path := findPath(root, f.focused, nil)
	if path == nil {
		Logger.Debug("cellterm: focused widget missing from new tree, falling back to root")
		f.path = []*Surface{root}
		f.focused = root.Widget
		return
	}
	f.path = path
}

func findPath(s *Surface, target WidgetID, trail []*Surface) []*Surface {
	trail = append(trail, s)
	if s.Widget.Equal(target) {
		out := make([]*Surface, len(trail))
		copy(out, trail)
		return out
	}
	for _, child := range s.Children {
		if found := findPath(child.Surface, target, trail); found != nil {
			return found
		}
	}
	return nil
}

// RequestFocus moves focus to target, delivering focus_out to the old
// focus and focus_in to the new, via the same three-phase dispatch as any
// other routed event. Requesting focus on the already-focused widget is a
// documented no-op. Returns the commands produced by the two deliveries.
func (f *FocusTree) RequestFocus(root *Surface, target WidgetID) []Command {
	if target.Equal(f.focused) {
		return nil
	}
	var cmds []Command
	if oldPath := findPath(root, f.focused, nil); oldPath != nil {
		cmds = append(cmds, dispatchPhases(oldPath, nil, Event{Kind: EventFocusOut})...)
	}
	newPath := findPath(root, target, nil)
	if newPath == nil {
		return cmds
	}
	f.focused = target
	f.path = newPath
	cmds = append(cmds, dispatchPhases(newPath, nil, Event{Kind: EventFocusIn})...)
	return cmds
}

// Route dispatches a focus-routed event (key press, application-level
// user event) along the current path_to_focused.
func (f *FocusTree) Route(ev Event) []Command {
	if len(f.path) == 0 {
		return nil
	}
	return dispatchPhases(f.path, nil, ev)
}

// CursorSurface returns the deepest focused Surface, so the runtime can
// check it for a published CursorRequest.
func (f *FocusTree) CursorSurface() *Surface {
	if len(f.path) == 0 {
		return nil
	}
	return f.path[len(f.path)-1]
}
