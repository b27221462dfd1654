package cellterm

import (
	"fmt"
	"io"
	"time"

	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// CommandExecutor is the loop's single point of contact with the outside
// world for widget-requested side effects. It is the sole executor of
// Commands, matching the teacher's App owning SetCursor/SetCursorColor/
// RequestRender as the one place those effects happen.
type CommandExecutor struct {
	out    io.Writer
	screen *Screen

	mouseShape    MouseShape
	pendingTick   []pendingTimer
	quitRequested bool
}

// QuitRequested reports whether any executed command asked the loop to
// stop, and clears the flag.
func (e *CommandExecutor) QuitRequested() bool {
	q := e.quitRequested
	e.quitRequested = false
	return q
}

type pendingTimer struct {
	deadlineMS int64
	widget     WidgetID
}

// NewCommandExecutor returns an executor writing terminal side-effect
// sequences to out and reflecting cursor/refresh state onto screen.
func NewCommandExecutor(out io.Writer, screen *Screen) *CommandExecutor {
	return &CommandExecutor{out: out, screen: screen}
}

// Execute runs every command in cmds, in order. redraw and focusRequest
// are out-parameters the loop consults afterward: redraw is set if any
// command forces a full refresh, and focusRequest carries the last
// RequestFocus command seen (a widget may request focus at most
// meaningfully once per event; a later request simply overrides an
// earlier one within the same batch).
func (e *CommandExecutor) Execute(cmds []Command, nowMS int64) (redraw bool, focusRequest WidgetID, hasFocusRequest bool) {
	for _, c := range cmds {
		switch c.Kind {
		case CmdQuit:
			e.quitRequested = true
		case CmdTick:
			e.pendingTick = append(e.pendingTick, pendingTimer{deadlineMS: c.DeadlineMS, widget: c.Widget})
		case CmdSetMouseShape:
			e.mouseShape = c.Shape
		case CmdRequestFocus:
			focusRequest = c.Widget
			hasFocusRequest = true
		case CmdCopyToClipboard:
			e.copyToClipboard(c.Clipboard)
		case CmdSetTitle:
			e.setTitle(c.Title)
		case CmdQueueRefresh:
			if e.screen != nil {
				e.screen.QueueRefresh()
			}
			redraw = true
		case CmdNotify:
			e.notify(c.NotifyTitle, c.NotifyBody)
		case CmdQueryColor:
			e.queryColor(c.ColorKind)
		}
	}
	return redraw, focusRequest, hasFocusRequest
}

// PopExpiredTimers removes and returns every pending tick whose deadline
// has passed, sorted by deadline (earliest first), matching the spec's
// "timers kept sorted by deadline" contract.
func (e *CommandExecutor) PopExpiredTimers(nowMS int64) []pendingTimer {
	var fired []pendingTimer
	var remaining []pendingTimer
	for _, t := range e.pendingTick {
		if t.deadlineMS <= nowMS {
			fired = append(fired, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	e.pendingTick = remaining
	for i := 1; i < len(fired); i++ {
		for j := i; j > 0 && fired[j].deadlineMS < fired[j-1].deadlineMS; j-- {
			fired[j], fired[j-1] = fired[j-1], fired[j]
		}
	}
	return fired
}

func (e *CommandExecutor) copyToClipboard(data []byte) {
	seq := osc52.New(string(data)).SetPrimaryClipboard()
	if _, err := seq.WriteTo(e.out); err != nil {
		Logger.Warn("cellterm: clipboard copy failed", "error", err)
	}
}

func (e *CommandExecutor) setTitle(title []byte) {
	fmt.Fprintf(e.out, "\x1b]0;%s\x07", title)
}

func (e *CommandExecutor) notify(title, body string) {
	if title == "" {
		fmt.Fprintf(e.out, "\x1b]9;%s\x07", body)
		return
	}
	fmt.Fprintf(e.out, "\x1b]777;notify;%s;%s\x07", title, body)
}

func (e *CommandExecutor) queryColor(kind ColorKind) {
	var code string
	switch kind {
	case ColorForeground:
		code = "10"
	case ColorBackground:
		code = "11"
	case ColorCursor:
		code = "12"
	}
	fmt.Fprintf(e.out, "\x1b]%s;?\x07", code)
}

// MouseShapeFor returns the last requested mouse shape, for a loop to emit
// as a DECSCUSR-adjacent or terminal-specific sequence if it chooses to
// (left to the embedding application's escape catalog, same as the rest of
// out-of-scope terminfo emission).
func (e *CommandExecutor) MouseShapeFor() MouseShape { return e.mouseShape }

// nowMillis is the loop's clock source for tick deadlines: wall-clock
// Unix-epoch milliseconds.
func nowMillis() int64 { return time.Now().UnixMilli() }
