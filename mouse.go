package cellterm

import "sort"

// Hit is one entry in a hit-test result: the widget found, the Surface it
// came from, and the point translated into that Surface's own local
// coordinates (needed so HandleEvent receives coordinates relative to
// itself, not the screen).
type Hit struct {
	Widget  WidgetID
	Surface *Surface
	Local   Origin
}

// HitTest walks root looking for the point (col,row) in root-local
// coordinates, producing an ordered path from root to the deepest widget
// containing the point. Only Surfaces that expose a handler (EventHandler
// or EventCapturer) are appended to the result; purely transparent
// containers are still traversed into but never become targets.
//
// When children overlap at a point, the child with the highest z-index is
// preferred — the same surface that paints on top at render time is the
// one that receives the point at hit-test time, resolving the ambiguity
// the spec leaves open in favor of visual/input consistency.
func HitTest(root *Surface, col, row int) []Hit {
	if root == nil || !root.ContainsPoint(col, row) {
		return nil
	}
	var out []Hit
	hitTestInto(root, col, row, &out)
	return out
}

func hitTestInto(s *Surface, col, row int, out *[]Hit) {
	if _, isHandler := widgetOf(s).(EventHandler); isHandler {
		*out = append(*out, Hit{Widget: s.Widget, Surface: s, Local: Origin{Col: col, Row: row}})
	} else if _, isCapturer := widgetOf(s).(EventCapturer); isCapturer {
		*out = append(*out, Hit{Widget: s.Widget, Surface: s, Local: Origin{Col: col, Row: row}})
	}

	order := make([]int, len(s.Children))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return s.Children[order[i]].Z > s.Children[order[j]].Z
	})
	for _, idx := range order {
		child := s.Children[idx]
		lc, lr := col-child.Origin.Col, row-child.Origin.Row
		if child.Surface != nil && child.Surface.ContainsPoint(lc, lr) {
			hitTestInto(child.Surface, lc, lr, out)
			return
		}
	}
}

// MouseRouter tracks the previous frame's hit list so it can emit
// mouse_enter/mouse_leave deltas and then dispatch the current mouse event
// through capture/target/bubble.
type MouseRouter struct {
	lastHits []Hit

	lastMouse    Mouse
	hasLastMouse bool
}

// NewMouseRouter returns a router with no prior hover state.
func NewMouseRouter() *MouseRouter { return &MouseRouter{} }

// lastPosition returns the most recently routed mouse event, so a redraw
// caused by something other than mouse motion (e.g. a resize or a timer)
// can still re-run hit-testing against the pointer's last known spot.
func (m *MouseRouter) lastPosition() (Mouse, bool) { return m.lastMouse, m.hasLastMouse }

// Route hit-tests ev against tree (the previous frame's Surface tree, per
// the spec's "events refer to positions within the last-painted tree"),
// emits mouse_enter/leave for the symmetric difference against the last
// hit list, then dispatches ev itself along the new hit list.
func (m *MouseRouter) Route(tree *Surface, ev Mouse) []Command {
	hits := HitTest(tree, ev.Col, ev.Row)

	var cmds []Command
	leaving, entering := diffHits(m.lastHits, hits)

	for _, h := range leaving {
		cmds = append(cmds, dispatchPhases(hitPath(m.lastHits, h), hitLocals(m.lastHits, h), Event{Kind: EventMouseLeave, Mouse: ev})...)
	}
	for _, h := range entering {
		cmds = append(cmds, dispatchPhases(hitPath(hits, h), hitLocals(hits, h), Event{Kind: EventMouseEnter, Mouse: ev})...)
	}

	path := make([]*Surface, len(hits))
	local := make([]Origin, len(hits))
	for i, h := range hits {
		path[i] = h.Surface
		local[i] = h.Local
	}
	cmds = append(cmds, dispatchPhases(path, local, Event{Kind: EventMouse, Mouse: ev})...)

	m.lastHits = hits
	m.lastMouse, m.hasLastMouse = ev, true
	return cmds
}

// diffHits returns the widgets present only in a (leaving) and only in b
// (entering), i.e. the symmetric difference A△B the spec requires.
func diffHits(a, b []Hit) (leaving, entering []WidgetID) {
	inA := make(map[WidgetID]bool, len(a))
	for _, h := range a {
		inA[h.Widget] = true
	}
	inB := make(map[WidgetID]bool, len(b))
	for _, h := range b {
		inB[h.Widget] = true
	}
	for id := range inA {
		if !inB[id] {
			leaving = append(leaving, id)
		}
	}
	for id := range inB {
		if !inA[id] {
			entering = append(entering, id)
		}
	}
	return leaving, entering
}

// hitPath returns the path prefix of hits up to and including the entry
// whose Widget equals id (a leaving/entering widget's enter/leave event is
// dispatched with capture/target/bubble along this ancestor path, with
// that widget as the target).
func hitPath(hits []Hit, id WidgetID) []*Surface {
	for i, h := range hits {
		if h.Widget.Equal(id) {
			out := make([]*Surface, i+1)
			for j := 0; j <= i; j++ {
				out[j] = hits[j].Surface
			}
			return out
		}
	}
	return nil
}

func hitLocals(hits []Hit, id WidgetID) []Origin {
	for i, h := range hits {
		if h.Widget.Equal(id) {
			out := make([]Origin, i+1)
			for j := 0; j <= i; j++ {
				out[j] = hits[j].Local
			}
			return out
		}
	}
	return nil
}
