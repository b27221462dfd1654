package cellterm

import (
	"io"
	"time"
)

// Context carries the per-frame control flags a command or event handler
// may set: quit to stop the loop, redraw to force the next frame to
// rebuild and render the widget tree.
type Context struct {
	quit   bool
	redraw bool
}

// Quit requests the loop stop after the current frame finishes.
func (c *Context) Quit() { c.quit = true }

// RequestRedraw marks the next frame as needing a full layout+render pass.
func (c *Context) RequestRedraw() { c.redraw = true }

// Options configures a Loop.
type Options struct {
	Root       Widget
	Out        io.Writer
	TickPeriod time.Duration
	QueueSize  int
}

// Loop drives widgets at a fixed frame rate: it owns the reader task
// bridge, the event queue, the focus/mouse routers, and is the sole caller
// of widget Draw and the sole owner of the Screen.
type Loop struct {
	tty    *TTY
	queue  *EventQueue
	parser *Parser
	caps   *Capabilities
	cache  *graphemeCache

	screen   *Screen
	renderer *Renderer
	executor *CommandExecutor

	focus *FocusTree
	mouse *MouseRouter

	arena *Frame
	unicode *UnicodeState

	root Widget
	ctx  Context

	tickPeriod time.Duration
	nextFrame  int64

	prevTree *Surface
}

// NewLoop wires together every component the frame loop coordinates. The
// caller is expected to have already called TTY.Init.
func NewLoop(tty *TTY, opts Options) *Loop {
	if opts.TickPeriod <= 0 {
		opts.TickPeriod = 16 * time.Millisecond
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}

	caps := SeedCapabilities()
	cache := newGraphemeCache()
	queue := NewEventQueue(opts.QueueSize)
	parser := NewParser(caps, cache)
	screen := NewScreen(80, 24)
	screen.SetWidthMethod(caps.WidthMethod)

	return &Loop{
		tty:        tty,
		queue:      queue,
		parser:     parser,
		caps:       caps,
		cache:      cache,
		screen:     screen,
		renderer:   NewRenderer(caps),
		executor:   NewCommandExecutor(opts.Out, screen),
		focus:      NewFocusTree(),
		mouse:      NewMouseRouter(),
		arena:      NewFrame(256),
		unicode:    &UnicodeState{WidthMethod: caps.WidthMethod},
		root:       opts.Root,
		tickPeriod: opts.TickPeriod,
	}
}

// Start launches the reader task and posts the initial init/winsize
// events, then enters the frame loop, returning when ctx.Quit() has been
// called or a write error occurs.
func (l *Loop) Start() error {
	if err := l.tty.Run(l.queue, l.parser); err != nil {
		return err
	}
	defer l.tty.Stop()

	if cols, rows, pw, ph, err := l.tty.Size(); err == nil {
		l.queue.Push(Event{Kind: EventWinsize, Winsize: WinsizeEvent{Cols: cols, Rows: rows, PixelW: pw, PixelH: ph}})
	}
	l.queue.Push(Event{Kind: EventInit})
	l.ctx.redraw = true

	return l.run()
}

// PostEvent enqueues an application-generated event, e.g. a user event a
// background goroutine wants delivered on the UI thread.
func (l *Loop) PostEvent(ev Event) { l.queue.Push(ev) }

func (l *Loop) run() error {
	l.nextFrame = nowMillis() + l.tickPeriod.Milliseconds()

	for {
		now := nowMillis()
		if now >= l.nextFrame {
			l.nextFrame = now + l.tickPeriod.Milliseconds()
		} else {
			time.Sleep(time.Duration(l.nextFrame-now) * time.Millisecond)
			now = nowMillis()
		}

		for _, t := range l.executor.PopExpiredTimers(now) {
			cmds := dispatchPhases(l.pathTo(t.widget), nil, Event{Kind: EventTick, Tick: TickEvent{DeadlineMS: t.deadlineMS, Widget: t.widget}})
			l.applyCommands(cmds, now)
		}

		l.queue.Lock()
		for {
			ev, ok := l.queue.Drain()
			if !ok {
				break
			}
			l.handleEvent(ev, now)
		}
		l.queue.Unlock()

		if l.ctx.quit {
			return nil
		}

		if !l.ctx.redraw {
			continue
		}
		l.ctx.redraw = false
		if err := l.drawAndRender(now); err != nil {
			return err
		}
	}
}

func (l *Loop) pathTo(id WidgetID) []*Surface {
	if l.prevTree == nil {
		return nil
	}
	return findPath(l.prevTree, id, nil)
}

// JumpTargets returns the jump-label overlay entries for the last-rendered
// tree (see jumplabels.go). Assigning the labels to an on-screen overlay is
// a decorative-widget concern left to the embedding application; the loop
// only exposes the collected, positioned label set.
func (l *Loop) JumpTargets() []JumpLabel {
	return CollectJumpTargets(l.prevTree)
}

func (l *Loop) handleEvent(ev Event, now int64) {
	switch ev.Kind {
	case EventKeyPress, EventKeyRelease, EventFocusIn, EventFocusOut, EventUser, EventTick, EventPasteStart, EventPasteEnd:
		l.applyCommands(l.focus.Route(ev), now)
	case EventMouse:
		l.applyCommands(l.mouse.Route(l.prevTree, ev.Mouse), now)
	case EventWinsize:
		l.screen.Resize(ev.Winsize.Cols, ev.Winsize.Rows, ev.Winsize.PixelW, ev.Winsize.PixelH)
		l.ctx.RequestRedraw()
	case EventInit:
		l.ctx.RequestRedraw()
	}
}

func (l *Loop) applyCommands(cmds []Command, now int64) {
	if len(cmds) == 0 {
		return
	}
	redraw, focusTarget, hasFocusRequest := l.executor.Execute(cmds, now)
	if redraw {
		l.ctx.RequestRedraw()
	}
	if l.executor.QuitRequested() {
		l.ctx.Quit()
	}
	if hasFocusRequest && l.prevTree != nil {
		more := l.focus.RequestFocus(l.prevTree, focusTarget)
		if len(more) > 0 {
			l.applyCommands(more, now)
		}
	}
}

func (l *Loop) drawAndRender(now int64) error {
	l.arena.Reset()

	cols, rows := l.screen.Size()
	maxW, maxH := cols, rows
	ctx := DrawContext{
		Arena:      l.arena,
		Constraint: Tight(Size{Width: maxW, Height: maxH}),
		Unicode:    l.unicode,
	}
	ctx.CellPixelW, ctx.CellPixelH = l.screen.CellPixelSize()

	tree := l.root.Draw(&ctx)
	l.prevTree = tree

	// A second mouse pass over the freshly built tree catches hover
	// transitions caused by layout changing under a stationary pointer
	// (e.g. a widget resized out from under the cursor), not just by
	// cursor motion events.
	if lastMouse, ok := l.mouse.lastPosition(); ok {
		cmds := l.mouse.Route(tree, lastMouse)
		if len(cmds) > 0 {
			l.applyCommands(cmds, now)
			tree = l.root.Draw(&ctx)
			l.prevTree = tree
		}
	}

	l.focus.Rebuild(tree)
	if cs := l.focus.CursorSurface(); cs != nil && cs.Cursor != nil {
		if cs.Cursor.Visible {
			l.screen.ShowCursor(cs.Cursor.Col, cs.Cursor.Row)
			l.screen.SetCursorShape(cs.Cursor.Shape)
		} else {
			l.screen.HideCursor()
		}
	}

	Compose(tree, l.screen, 0, 0)

	if err := l.renderer.Render(l.executor.out, l.screen); err != nil {
		Logger.Warn("cellterm: render failed, terminal will be restored", "error", err)
		return err
	}
	return nil
}
