package cellterm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"
)

// Renderer walks a Screen's front/back buffers and emits the minimal
// escape-sequence stream that brings a terminal already matching front up
// to date with back. It owns no terminal state itself beyond the
// capability flags it's told about; Screen owns the buffers.
type Renderer struct {
	caps *Capabilities

	lastStyle     Style
	haveLastStyle bool
	lastURL       string
	lastURLID     uint32

	cursorCol, cursorRow int
	cursorKnown          bool
}

// NewRenderer returns a Renderer that consults caps to decide which
// optional sequences (truecolor, synchronized update, hyperlinks) it may
// emit.
func NewRenderer(caps *Capabilities) *Renderer {
	return &Renderer{caps: caps}
}

// jumpThreshold is the column/row distance beyond which an absolute cursor
// move is emitted instead of a relative one.
const jumpThreshold = 4

// Render implements the diff algorithm: for each changed cell, emit a lazy
// cursor reposition, a style delta, a hyperlink delta, and the grapheme
// bytes; then reconcile the terminal cursor and any image placements. On
// success the front buffer is made to equal the back buffer and the dirty
// flag is cleared. On a write error, front is left unchanged so the next
// call retries the full diff.
func (r *Renderer) Render(w io.Writer, s *Screen) error {
	if !s.dirty {
		return nil
	}
	bw := bufio.NewWriter(w)

	fullRefresh := s.allDirty
	// A full refresh diffs against blank cells rather than clearing front
	// up front, so a failed write leaves front as it was.
	empty := EmptyCell()

	bw.WriteString(ansi.HideCursor)
	bw.WriteString(ansi.ResetStyle)
	syncSupported := r.caps != nil && r.caps.SynchronizedUpdate
	if syncSupported {
		bw.WriteString(ansi.SetMode(ansi.SynchronizedOutputMode))
	}

	r.haveLastStyle = false
	r.cursorKnown = false
	needReposition := true

	for row := 0; row < s.rows; row++ {
		if !fullRefresh && row < len(s.dirtyRows) && !s.dirtyRows[row] {
			needReposition = true
			continue
		}
		for col := 0; col < s.cols; col++ {
			idx := row*s.cols + col
			back := s.back[idx]
			front := s.front[idx]
			if fullRefresh {
				front = empty
			}

			if back.Equal(front) {
				continue
			}
			if back.IsContinuation() {
				// Continuation cells never carry their own glyph; they are
				// consumed implicitly when the preceding wide cell is
				// written below.
				continue
			}

			if needReposition || !r.cursorKnown || r.cursorRow != row || r.cursorCol != col {
				r.writeCursorMove(bw, col, row)
				needReposition = false
			}

			r.writeStyleDelta(bw, back.Style)
			r.writeLinkDelta(bw, back.Style)

			if back.Default || len(back.Grapheme) == 0 {
				bw.WriteByte(' ')
			} else {
				bw.Write(back.Grapheme)
			}

			width := int(back.Width)
			if width == 0 {
				width = 1
			}
			r.cursorCol = col + width
			r.cursorRow = row
			r.cursorKnown = true
		}
	}

	r.writeLinkDelta(bw, DefaultStyle())
	bw.WriteString(ansi.ResetStyle)

	col, row, visible, shape := s.CursorState()
	if visible {
		r.writeCursorMove(bw, col, row)
		writeCursorShape(bw, shape)
		bw.WriteString(ansi.ShowCursor)
	}
	if s.cursorColorSet {
		writeCursorColorOSC(bw, s.cursorColor)
	}

	r.renderImages(bw, s)

	if syncSupported {
		bw.WriteString(ansi.ResetMode(ansi.SynchronizedOutputMode))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("render: flush: %w", err)
	}

	copy(s.front, s.back)
	s.dirty = false
	s.allDirty = false
	for i := range s.dirtyRows {
		s.dirtyRows[i] = false
	}
	for i := range s.images {
		s.images[i].dirty = false
	}
	return nil
}

func (r *Renderer) writeCursorMove(w *bufio.Writer, col, row int) {
	if r.cursorKnown {
		dr := row - r.cursorRow
		dc := col - r.cursorCol
		if dr == 0 && dc != 0 && abs(dc) <= jumpThreshold {
			if dc > 0 {
				w.WriteString(ansi.CursorForward(dc))
			} else {
				w.WriteString(ansi.CursorBackward(-dc))
			}
			return
		}
		if dc == 0 && dr != 0 && abs(dr) <= jumpThreshold {
			if dr > 0 {
				w.WriteString(ansi.CursorDown(dr))
			} else {
				w.WriteString(ansi.CursorUp(-dr))
			}
			return
		}
	}
	w.WriteString(ansi.CursorPosition(col+1, row+1))
}

func (r *Renderer) writeStyleDelta(w *bufio.Writer, style Style) {
	if r.haveLastStyle && r.lastStyle.Equal(style) {
		return
	}
	w.WriteString(ansi.ResetStyle)
	writeAttributes(w, style.Attr)
	writeUnderline(w, style.Underline, style.UnderlineColor)
	writeColor(w, style.FG, true, r.caps)
	writeColor(w, style.BG, false, r.caps)
	r.lastStyle = style
	r.haveLastStyle = true
}

func (r *Renderer) writeLinkDelta(w *bufio.Writer, style Style) {
	if style.URL == r.lastURL && style.URLID == r.lastURLID {
		return
	}
	if r.lastURL != "" {
		w.WriteString(ansi.Hyperlink("", ""))
	}
	if style.URL != "" {
		params := ""
		if style.URLID != 0 {
			params = fmt.Sprintf("id=%d", style.URLID)
		}
		w.WriteString(ansi.Hyperlink(style.URL, params))
	}
	r.lastURL = style.URL
	r.lastURLID = style.URLID
}

func writeAttributes(w *bufio.Writer, attr Attribute) {
	if attr.Has(AttrBold) {
		w.WriteString("\x1b[1m")
	}
	if attr.Has(AttrDim) {
		w.WriteString("\x1b[2m")
	}
	if attr.Has(AttrItalic) {
		w.WriteString("\x1b[3m")
	}
	if attr.Has(AttrBlink) {
		w.WriteString("\x1b[5m")
	}
	if attr.Has(AttrReverse) {
		w.WriteString("\x1b[7m")
	}
	if attr.Has(AttrInvisible) {
		w.WriteString("\x1b[8m")
	}
	if attr.Has(AttrStrikethrough) {
		w.WriteString("\x1b[9m")
	}
}

func writeUnderline(w *bufio.Writer, kind UnderlineKind, color Color) {
	switch kind {
	case UnderlineNone:
		return
	case UnderlineSingle:
		w.WriteString("\x1b[4m")
	case UnderlineDouble:
		w.WriteString("\x1b[4:2m")
	case UnderlineCurly:
		w.WriteString("\x1b[4:3m")
	case UnderlineDotted:
		w.WriteString("\x1b[4:4m")
	case UnderlineDashed:
		w.WriteString("\x1b[4:5m")
	}
	if color.Mode != ColorDefault {
		writeUnderlineColor(w, color)
	}
}

// writeUnderlineColor emits the SGR 58 subsequence that sets the underline's
// own color, independent of the foreground. This subsequence has only the
// 256-palette and RGB forms, so a Color16 is emitted through the 256-palette
// form (whose first 16 entries are the basic colors); ColorDefault is
// handled by the caller (no sequence == "use FG").
func writeUnderlineColor(w *bufio.Writer, c Color) {
	switch c.Mode {
	case Color256:
		fmt.Fprintf(w, "\x1b[58;5;%dm", c.Index)
	case ColorRGB:
		fmt.Fprintf(w, "\x1b[58;2;%d;%d;%dm", c.R, c.G, c.B)
	case Color16:
		idx := int(c.Index)
		fmt.Fprintf(w, "\x1b[58;5;%dm", idx)
	}
}

func writeColor(w *bufio.Writer, c Color, fg bool, caps *Capabilities) {
	base := 30
	if !fg {
		base = 40
	}
	switch c.Mode {
	case ColorDefault:
		if fg {
			w.WriteString("\x1b[39m")
		} else {
			w.WriteString("\x1b[49m")
		}
	case Color16:
		idx := int(c.Index)
		if idx < 8 {
			fmt.Fprintf(w, "\x1b[%dm", base+idx)
		} else {
			bright := base + 60
			fmt.Fprintf(w, "\x1b[%dm", bright+(idx-8))
		}
	case Color256:
		fmt.Fprintf(w, "\x1b[%d;5;%dm", base+8, c.Index)
	case ColorRGB:
		if caps != nil && !caps.TrueColor {
			idx := rgbToAnsi256(c.R, c.G, c.B)
			fmt.Fprintf(w, "\x1b[%d;5;%dm", base+8, idx)
			return
		}
		fmt.Fprintf(w, "\x1b[%d;2;%d;%d;%dm", base+8, c.R, c.G, c.B)
	}
}

func writeCursorShape(w *bufio.Writer, shape CursorShape) {
	switch shape {
	case CursorBlock:
		w.WriteString("\x1b[2 q")
	case CursorUnderline:
		w.WriteString("\x1b[4 q")
	case CursorBar:
		w.WriteString("\x1b[6 q")
	}
}

func writeCursorColorOSC(w *bufio.Writer, c Color) {
	if c.Mode != ColorRGB {
		return
	}
	fmt.Fprintf(w, "\x1b]12;#%02x%02x%02x\x07", c.R, c.G, c.B)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// rgbToAnsi256 quantizes a 24-bit color to the nearest entry in the
// standard 6x6x6 color cube (indices 16-231; the grayscale ramp is not
// used), for terminals whose
// capability reply didn't claim truecolor support.
func rgbToAnsi256(r, g, b uint8) uint8 {
	toIdx := func(v uint8) int {
		if v < 48 {
			return 0
		}
		if v < 115 {
			return 1
		}
		return (int(v) - 35) / 40
	}
	ri, gi, bi := toIdx(r), toIdx(g), toIdx(b)
	return uint8(16 + 36*ri + 6*gi + bi)
}
