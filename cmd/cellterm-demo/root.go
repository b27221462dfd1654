package main

import "cellterm"

// demoRoot lays the field and the quit button out in a single column and
// captures Ctrl-C globally so it quits regardless of which child is
// focused, exercising the capture phase of event dispatch.
type demoRoot struct {
	field *cellterm.TextField
	quit  *cellterm.Button
}

func newDemoRoot(field *cellterm.TextField, quit *cellterm.Button) *demoRoot {
	return &demoRoot{field: field, quit: quit}
}

func (r *demoRoot) Draw(ctx *cellterm.DrawContext) *cellterm.Surface {
	width := ctx.Constraint.MaxWidthOr(40)
	height := ctx.Constraint.MaxHeightOr(3)

	s := ctx.Arena.Alloc()
	s.Widget = cellterm.IdentityOf(r)
	s.Size = cellterm.Size{Width: width, Height: height}
	s.InitCells()

	fieldCtx := ctx.WithConstraint(cellterm.Tight(cellterm.Size{Width: width, Height: 1}))
	fieldSurface := r.field.Draw(&fieldCtx)
	s.AddChild(cellterm.Origin{Col: 0, Row: 0}, 0, fieldSurface)

	buttonCtx := ctx.WithConstraint(cellterm.SizeConstraint{})
	buttonSurface := r.quit.Draw(&buttonCtx)
	s.AddChild(cellterm.Origin{Col: 0, Row: 2}, 0, buttonSurface)

	return s
}

// CaptureEvent implements EventCapturer: Ctrl-C quits from any focus state.
func (r *demoRoot) CaptureEvent(ctx *cellterm.EventContext, ev cellterm.Event) {
	if ev.Kind != cellterm.EventKeyPress {
		return
	}
	if ev.Key.Modifiers.Has(cellterm.ModCtrl) && ev.Key.Codepoint == 'c' {
		ctx.Quit()
		ctx.Consume()
	}
}
