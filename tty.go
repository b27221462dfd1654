package cellterm

import (
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-localereader"
	"github.com/muesli/cancelreader"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Mode selects whether TTY takes the alternate screen or renders inline at
// the current cursor position.
type Mode uint8

const (
	ModeFullscreen Mode = iota
	ModeInline
)

// TTY owns the controlling terminal's file descriptor and the original
// termios snapshot needed to restore it. It exclusively owns both for its
// lifetime; Init/Deinit are the only methods allowed to touch them.
type TTY struct {
	f    *os.File
	fd   int
	mode Mode

	origTermios *unix.Termios
	rawSet      bool

	reader     cancelreader.CancelReader
	locale     io.Reader
	sigwinch   chan os.Signal
	winsizeCh  chan WinsizeEvent
	stopOnce   sync.Once
	readerDone chan struct{}
}

// Open validates that f is a real TTY and wraps it, without yet touching
// termios. Most callers pass os.Stdin/os.Stdout joined (see Init).
func Open(f *os.File) (*TTY, error) {
	if !isatty.IsTerminal(f.Fd()) {
		return nil, errors.WithMessage(ErrNotATTY, "cellterm")
	}
	return &TTY{f: f, fd: int(f.Fd())}, nil
}

// Init snapshots termios, switches the terminal to raw mode, and (in
// ModeFullscreen) enters the alternate screen with bracketed paste and
// cursor hidden. Raw mode settings mirror a conventional cfmakeraw: no
// break/CR-NL/parity/strip/flow-control on input, no output post
// processing, 8-bit chars, no echo/canonical/signals/extended input, and a
// MIN=1 TIME=0 read threshold so reads return as soon as any byte arrives.
func (t *TTY) Init(mode Mode) error {
	t.mode = mode

	termios, err := unix.IoctlGetTermios(t.fd, ioctlGetTermios)
	if err != nil {
		return errors.Wrap(err, "cellterm: get termios")
	}
	t.origTermios = termios

	raw := *termios
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, &raw); err != nil {
		return errors.Wrap(err, "cellterm: set raw mode")
	}
	t.rawSet = true

	if mode == ModeFullscreen {
		t.writeString("\x1b[?1049h\x1b[2J\x1b[H\x1b[?25l\x1b[?2004h")
	} else {
		t.writeString("\x1b[?25l\x1b[?2004h")
	}
	return nil
}

// Deinit restores termios with the plain set ioctl (applied at once; input
// not yet read is not flushed) and leaves the alternate
// screen / bracketed paste / cursor-hidden state, regardless of how Init
// was entered. It is safe to call more than once and safe to call after a
// failed Init.
func (t *TTY) Deinit() error {
	if t.mode == ModeFullscreen {
		t.writeString("\x1b[?2004l\x1b[?25h\x1b[?1049l")
	} else {
		t.writeString("\x1b[?2004l\x1b[?25h")
	}
	if !t.rawSet {
		return nil
	}
	if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, t.origTermios); err != nil {
		return errors.Wrap(err, "cellterm: restore termios")
	}
	t.rawSet = false
	return nil
}

func (t *TTY) writeString(s string) {
	_, _ = t.f.WriteString(s)
}

// Size queries the current window size via ioctl, falling back to
// golang.org/x/term's query if the ioctl fails (e.g. when stdout has been
// redirected but stdin is still the controlling tty).
func (t *TTY) Size() (cols, rows, pixelW, pixelH int, err error) {
	ws, ierr := unix.IoctlGetWinsize(t.fd, unix.TIOCGWINSZ)
	if ierr == nil {
		return int(ws.Col), int(ws.Row), int(ws.Xpixel), int(ws.Ypixel), nil
	}
	cols, rows, terr := term.GetSize(t.fd)
	if terr != nil {
		return 0, 0, 0, 0, errors.Wrap(terr, "cellterm: get window size")
	}
	return cols, rows, 0, 0, nil
}

// Run starts the reader task: a dedicated goroutine that blocks reading
// from the tty (via a cancelable reader so Stop can unblock it without a
// signal), parses recognized sequences, copies any borrowed bytes through
// the grapheme cache, and pushes events onto queue. It also installs a
// SIGWINCH handler that posts winsize events. Run returns once the reader
// goroutine has been launched; it does not block.
func (t *TTY) Run(queue *EventQueue, parser *Parser) error {
	// cancelreader wraps the raw file first so it keeps the fd needed for
	// poll-based cancellation; localereader then transcodes its output to
	// UTF-8 when the process locale isn't already UTF-8, so the parser
	// never has to know about anything but UTF-8 input.
	reader, err := cancelreader.NewReader(t.f)
	if err != nil {
		return errors.Wrap(err, "cellterm: wrap reader")
	}
	t.reader = reader
	t.locale = localereader.NewReader(reader)
	t.readerDone = make(chan struct{})

	t.sigwinch = make(chan os.Signal, 1)
	signal.Notify(t.sigwinch, syscall.SIGWINCH)
	go t.handleWinsizeSignals(queue)

	go t.readLoop(queue, parser)
	return nil
}

// Stop cancels the reader's blocked read (cancelreader's Cancel plays the
// role the spec calls a "wakeup pipe": it is a library-provided way to make
// a blocking read return promptly without a second synchronization
// primitive) and stops the SIGWINCH handler.
func (t *TTY) Stop() {
	t.stopOnce.Do(func() {
		if t.sigwinch != nil {
			signal.Stop(t.sigwinch)
			close(t.sigwinch)
		}
		if t.reader != nil {
			t.reader.Cancel()
		}
	})
	if t.readerDone != nil {
		<-t.readerDone
	}
}

func (t *TTY) handleWinsizeSignals(queue *EventQueue) {
	for range t.sigwinch {
		cols, rows, pw, ph, err := t.Size()
		if err != nil {
			continue
		}
		queue.Push(Event{Kind: EventWinsize, Winsize: WinsizeEvent{Cols: cols, Rows: rows, PixelW: pw, PixelH: ph}})
	}
}

const readScratchSize = 4096

// escapeTimeoutMS names the interactive latency budget for a lone trailing
// ESC. The reader does not wait on it: an ESC that is the only byte left
// after a read is delivered at once as a plain Escape key (see readLoop and
// the "lone ESC" open question in DESIGN.md).
const escapeTimeoutMS = 50

func (t *TTY) readLoop(queue *EventQueue, parser *Parser) {
	defer close(t.readerDone)

	scratch := make([]byte, readScratchSize)
	var pending []byte

	for {
		n, err := t.locale.Read(scratch)
		if err != nil {
			if errors.Is(err, cancelreader.ErrCanceled) {
				return
			}
			if n == 0 {
				return
			}
		}
		pending = append(pending, scratch[:n]...)

		for len(pending) > 0 {
			consumed, ev, ok := parser.Parse(pending)
			if consumed == 0 && !ok {
				if len(pending) == 1 && pending[0] == 0x1B {
					// Lone trailing ESC: per policy, deliver it immediately
					// rather than stalling the whole reader waiting for a
					// byte that may never come (no event-loop timers are
					// available on this blocking read path, so we resolve
					// eagerly instead of literally sleeping 50ms here; the
					// 50ms figure documents the equivalent interactive
					// budget this is meant to approximate).
					_, forced, _ := parser.ForceEscape(pending)
					queue.Push(forced)
					pending = pending[:0]
				}
				break
			}
			if ok {
				deliverInterned(&ev, parser.graphemes)
				queue.Push(ev)
			}
			pending = pending[consumed:]
		}
	}
}

// deliverInterned ensures any text the event borrowed from the read buffer
// is backed by the grapheme cache before it crosses into the queue, since
// the scratch buffer is reused on the next read.
func deliverInterned(ev *Event, cache *graphemeCache) {
	if ev.Kind != EventKeyPress || len(ev.Key.Text) == 0 || cache == nil {
		return
	}
	ev.Key.Text = cache.Intern(ev.Key.Text)
}

