package cellterm

// dispatchPhases runs the shared capture/target/bubble walk used by both
// focus-routed events (key presses, focus in/out) and mouse events. path is
// root-to-target inclusive; local holds the matching local (col,row) for
// each path entry (zero for non-mouse events, where it's unused).
//
// Phase order: capture visits path[0..len-1) (root down to, excluding,
// target) calling CaptureEvent; target visits path[len-1] calling
// HandleEvent once; bubble then revisits path[len-2..0] (target's parent
// back to root) calling HandleEvent. Any phase may set ctx.Consumed to
// stop the remaining walk early.
func dispatchPhases(path []*Surface, local []Origin, ev Event) []Command {
	if len(path) == 0 {
		return nil
	}
	var all []Command
	ctx := &EventContext{}

	for i := 0; i < len(path)-1; i++ {
		s := path[i]
		capturer, ok := widgetOf(s).(EventCapturer)
		if !ok {
			continue
		}
		ctx.LocalCol, ctx.LocalRow = localOf(local, i).Col, localOf(local, i).Row
		capturer.CaptureEvent(ctx, ev)
		all = append(all, ctx.drainCommands()...)
		if ctx.Consumed {
			return all
		}
	}

	targetIdx := len(path) - 1
	if h, ok := widgetOf(path[targetIdx]).(EventHandler); ok {
		ctx.LocalCol, ctx.LocalRow = localOf(local, targetIdx).Col, localOf(local, targetIdx).Row
		h.HandleEvent(ctx, ev)
		all = append(all, ctx.drainCommands()...)
		if ctx.Consumed {
			return all
		}
	}

	for i := targetIdx - 1; i >= 0; i-- {
		s := path[i]
		h, ok := widgetOf(s).(EventHandler)
		if !ok {
			continue
		}
		ctx.LocalCol, ctx.LocalRow = localOf(local, i).Col, localOf(local, i).Row
		h.HandleEvent(ctx, ev)
		all = append(all, ctx.drainCommands()...)
		if ctx.Consumed {
			return all
		}
	}
	return all
}

func localOf(local []Origin, i int) Origin {
	if i < len(local) {
		return local[i]
	}
	return Origin{}
}

// widgetOf recovers the concrete Widget value behind a Surface's erased
// WidgetID, so event routing can type-assert for EventHandler/EventCapturer.
// Surfaces store the identity pair, not the widget itself, for equality
// across frames — but the widget value is retrievable because WidgetID's
// data half is the widget.
func widgetOf(s *Surface) Widget {
	if s == nil || s.Widget.data == nil {
		return nil
	}
	w, _ := s.Widget.data.(Widget)
	return w
}
