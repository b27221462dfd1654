package cellterm

// CommandKind tags the closed set of side effects a widget may request
// through an EventContext. The loop is the sole executor of every kind.
type CommandKind uint8

const (
	CmdTick CommandKind = iota
	CmdSetMouseShape
	CmdRequestFocus
	CmdCopyToClipboard
	CmdSetTitle
	CmdQueueRefresh
	CmdNotify
	CmdQueryColor
	CmdQuit
)

// MouseShape selects the terminal's pointer glyph, where supported.
type MouseShape uint8

const (
	MouseShapeDefault MouseShape = iota
	MouseShapePointer
	MouseShapeText
	MouseShapeGrab
	MouseShapeGrabbing
	MouseShapeNotAllowed
)

// ColorKind selects which OSC color query a CmdQueryColor command asks for.
type ColorKind uint8

const (
	ColorForeground ColorKind = iota
	ColorBackground
	ColorCursor
)

// Command is one buffered side effect produced while handling a single
// event. EventContext accumulates these; the loop drains and executes them
// after each event and clears the buffer.
type Command struct {
	Kind CommandKind

	DeadlineMS int64
	Widget     WidgetID

	Shape MouseShape

	Clipboard []byte

	Title []byte

	NotifyTitle string
	NotifyBody  string

	ColorKind ColorKind
}

// EventContext is passed to HandleEvent/CaptureEvent. It carries the
// command buffer, whether this handler consumed the event (stopping
// capture/bubble propagation), and the point the event occurred at in this
// widget's local coordinates (meaningful for mouse events only).
type EventContext struct {
	commands []Command

	Consumed bool

	LocalCol, LocalRow int
}

func (ctx *EventContext) push(c Command) { ctx.commands = append(ctx.commands, c) }

// RequestTick asks the loop to deliver a tick event to widget at
// deadlineMS (Unix-epoch milliseconds, the clock the loop uses for now_ms;
// see nowMillis).
func (ctx *EventContext) RequestTick(deadlineMS int64, widget WidgetID) {
	ctx.push(Command{Kind: CmdTick, DeadlineMS: deadlineMS, Widget: widget})
}

// SetMouseShape requests the terminal pointer glyph change.
func (ctx *EventContext) SetMouseShape(shape MouseShape) {
	ctx.push(Command{Kind: CmdSetMouseShape, Shape: shape})
}

// RequestFocus asks the loop to move focus to widget once this event
// finishes processing.
func (ctx *EventContext) RequestFocus(widget WidgetID) {
	ctx.push(Command{Kind: CmdRequestFocus, Widget: widget})
}

// CopyToClipboard requests an OSC 52 clipboard write; silently a no-op on
// terminals that don't support it.
func (ctx *EventContext) CopyToClipboard(data []byte) {
	ctx.push(Command{Kind: CmdCopyToClipboard, Clipboard: data})
}

// SetTitle requests the terminal window/tab title be changed.
func (ctx *EventContext) SetTitle(title []byte) {
	ctx.push(Command{Kind: CmdSetTitle, Title: title})
}

// QueueRefresh forces a full (non-diffed) redraw on the next render.
func (ctx *EventContext) QueueRefresh() {
	ctx.push(Command{Kind: CmdQueueRefresh})
}

// Notify requests a desktop notification via OSC 9/777.
func (ctx *EventContext) Notify(title, body string) {
	ctx.push(Command{Kind: CmdNotify, NotifyTitle: title, NotifyBody: body})
}

// QueryColor requests an OSC color query; the reply arrives later as a
// capability-driven event once the parser recognizes it.
func (ctx *EventContext) QueryColor(kind ColorKind) {
	ctx.push(Command{Kind: CmdQueryColor, ColorKind: kind})
}

// Consume marks the event as handled, stopping further capture/bubble
// propagation.
func (ctx *EventContext) Consume() { ctx.Consumed = true }

// Quit asks the loop to stop after the current frame, the widget-level
// equivalent of Context.Quit for code that only has an EventContext (event
// handlers don't see the loop's Context directly).
func (ctx *EventContext) Quit() { ctx.push(Command{Kind: CmdQuit}) }

// drainCommands returns the buffered commands and clears the buffer. Called
// by the loop once per event.
func (ctx *EventContext) drainCommands() []Command {
	cmds := ctx.commands
	ctx.commands = nil
	return cmds
}
