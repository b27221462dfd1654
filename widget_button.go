package cellterm

// Button is a focusable, clickable single-line widget. It demonstrates the
// full event contract: EventHandler for key presses and mouse clicks when
// focused, published via a Surface sized to its label.
type Button struct {
	Label      string
	Style      Style
	Focused    Style
	onActivate func(*EventContext, *Button)

	focused bool
	hovered bool
}

// NewButton returns a button with the given label.
func NewButton(label string) *Button {
	return &Button{Label: label}
}

// OnActivate registers the callback invoked on Enter/Space or a left click.
// The callback receives the triggering EventContext so it can itself push
// further commands (request focus elsewhere, quit, etc).
func (b *Button) OnActivate(fn func(*EventContext, *Button)) { b.onActivate = fn }

// Draw implements Widget.
func (b *Button) Draw(ctx *DrawContext) *Surface {
	cells := flattenLine([]byte(b.Label), ctx.Unicode)
	width := 0
	for _, c := range cells {
		width += c.width
	}
	if width < ctx.Constraint.Min.Width {
		width = ctx.Constraint.Min.Width
	}
	width += 2 // one cell of padding each side

	s := ctx.Arena.Alloc()
	s.Widget = IdentityOf(b)
	s.Size = Size{Width: width, Height: 1}
	s.InitCells()

	style := b.Style
	if b.focused {
		style = b.Focused
	}

	col := 1
	for _, c := range cells {
		if col+c.width > width-1 {
			break
		}
		s.WriteCell(col, 0, NewCell(c.grapheme, uint8(c.width), style))
		col += c.width
	}
	return s
}

// HandleEvent implements EventHandler.
func (b *Button) HandleEvent(ctx *EventContext, ev Event) {
	switch ev.Kind {
	case EventFocusIn:
		b.focused = true
	case EventFocusOut:
		b.focused = false
	case EventMouseEnter:
		b.hovered = true
	case EventMouseLeave:
		b.hovered = false
	case EventKeyPress:
		if ev.Key.Func == FuncKeyEnter || ev.Key.Codepoint == ' ' {
			b.activate(ctx)
			ctx.Consume()
		}
	case EventMouse:
		if ev.Mouse.Type == MousePress && ev.Mouse.Button == MouseLeft {
			ctx.RequestFocus(IdentityOf(b))
			b.activate(ctx)
			ctx.Consume()
		}
	}
}

func (b *Button) activate(ctx *EventContext) {
	if b.onActivate != nil {
		b.onActivate(ctx, b)
	}
}
