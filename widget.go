package cellterm

import "reflect"

// Widget is the mandatory half of a widget's capability set: anything that
// can produce a Surface for a frame. Event handling is optional and
// expressed through the EventHandler/EventCapturer interfaces below, which
// a concrete widget type may or may not also implement.
type Widget interface {
	Draw(ctx *DrawContext) *Surface
}

// EventHandler is implemented by widgets that want the target/bubble
// phases of event routing.
type EventHandler interface {
	HandleEvent(ctx *EventContext, ev Event)
}

// EventCapturer is implemented by widgets that want the capture phase
// (root-to-target) of event routing, e.g. a modal overlay that must see
// every key before its children do.
type EventCapturer interface {
	CaptureEvent(ctx *EventContext, ev Event)
}

// WidgetID is a widget's erased identity: the pair (pointer, drawFn). Two
// widgets are the same widget, across frames, iff both halves are equal —
// this is what lets the focus tree and mouse hit-tester recognize "the
// same button" in two different Surface trees built on two different
// frames, without either widget needing a stable handle of its own.
type WidgetID struct {
	data any
	draw uintptr
}

// IdentityOf computes w's WidgetID. Two calls with equal underlying widget
// values and the same concrete Draw method produce equal WidgetIDs.
func IdentityOf(w Widget) WidgetID {
	if w == nil {
		return WidgetID{}
	}
	return WidgetID{data: w, draw: reflect.ValueOf(w.Draw).Pointer()}
}

// Equal reports whether two WidgetIDs name the same widget.
func (id WidgetID) Equal(other WidgetID) bool {
	return id.data == other.data && id.draw == other.draw
}

// IsZero reports whether id is the zero value (no widget).
func (id WidgetID) IsZero() bool { return id.data == nil && id.draw == 0 }
