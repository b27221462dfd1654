package cellterm

import "github.com/rivo/uniseg"

// TextField is a single-line editable text widget backed by a GapBuffer[byte]
// with a cursor kept aligned to grapheme-cluster boundaries (never splitting
// a multi-codepoint cluster), per spec.md §4.13.
type TextField struct {
	buf    *GapBuffer[byte]
	cursor int // logical byte offset, always a grapheme boundary

	drawOffset int
	Style      Style
	Placeholder string

	onChange func(*TextField)
}

// NewTextField returns an empty field.
func NewTextField() *TextField {
	return &TextField{buf: NewGapBuffer[byte](64)}
}

// OnChange registers a callback invoked after every mutating operation.
func (f *TextField) OnChange(fn func(*TextField)) { f.onChange = fn }

func (f *TextField) changed() {
	if f.onChange != nil {
		f.onChange(f)
	}
}

// graphemeAt returns the byte length of the grapheme cluster starting at
// logical offset pos, by scanning forward from pos with a fresh uniseg
// state (the gap buffer holds bytes, not clusters, so cluster boundaries
// are recomputed on demand rather than cached).
func (f *TextField) graphemeAt(pos int) int {
	if pos >= f.buf.Len() {
		return 0
	}
	tail := f.sliceFrom(pos, min(pos+64, f.buf.Len()))
	cluster, _, _, _ := uniseg.FirstGraphemeCluster(tail, -1)
	return len(cluster)
}

// graphemeBefore returns the byte length of the grapheme cluster ending at
// logical offset pos, found by walking clusters forward from the start of
// the buffer (byte-oriented gap buffers have no backward cluster scan, so
// this rebuilds the boundary set up to pos once per call).
func (f *TextField) graphemeBefore(pos int) int {
	if pos <= 0 {
		return 0
	}
	head := f.sliceFrom(0, pos)
	last := 0
	state := -1
	for len(head) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeCluster(head, state)
		state = newState
		last = len(cluster)
		head = rest
	}
	return last
}

func (f *TextField) sliceFrom(start, end int) []byte {
	out := make([]byte, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, f.buf.At(i))
	}
	return out
}

// InsertSliceAtCursor inserts text at the cursor one grapheme cluster at a
// time, so a cluster is never split across the gap boundary.
func (f *TextField) InsertSliceAtCursor(text []byte) {
	state := -1
	for len(text) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeCluster(text, state)
		state = newState
		f.buf.InsertSliceAt(f.cursor, cluster)
		f.cursor += len(cluster)
		text = rest
	}
	f.changed()
}

// CursorLeft moves the cursor back one grapheme cluster; no-op at start.
func (f *TextField) CursorLeft() {
	n := f.graphemeBefore(f.cursor)
	if n == 0 {
		return
	}
	f.cursor -= n
}

// CursorRight moves the cursor forward one grapheme cluster; no-op at end.
func (f *TextField) CursorRight() {
	n := f.graphemeAt(f.cursor)
	if n == 0 {
		return
	}
	f.cursor += n
}

// DeleteBeforeCursor removes one grapheme cluster before the cursor
// (backspace).
func (f *TextField) DeleteBeforeCursor() {
	n := f.graphemeBefore(f.cursor)
	if n == 0 {
		return
	}
	f.buf.RemoveRange(f.cursor-n, f.cursor)
	f.cursor -= n
	f.changed()
}

// DeleteAfterCursor removes one grapheme cluster after the cursor (delete).
func (f *TextField) DeleteAfterCursor() {
	n := f.graphemeAt(f.cursor)
	if n == 0 {
		return
	}
	f.buf.RemoveRange(f.cursor, f.cursor+n)
	f.changed()
}

// DeleteToStart removes everything before the cursor.
func (f *TextField) DeleteToStart() {
	if f.cursor == 0 {
		return
	}
	f.buf.RemoveRange(0, f.cursor)
	f.cursor = 0
	f.changed()
}

// DeleteToEnd removes everything after the cursor.
func (f *TextField) DeleteToEnd() {
	if f.cursor >= f.buf.Len() {
		return
	}
	f.buf.RemoveRange(f.cursor, f.buf.Len())
	f.changed()
}

func isSpaceByte(b byte) bool { return b == ' ' || b == '\t' }

// MoveBackwardWordwise moves the cursor to the previous whitespace
// boundary, skipping any whitespace immediately before the cursor first.
func (f *TextField) MoveBackwardWordwise() {
	pos := f.cursor
	for pos > 0 && isSpaceByte(f.buf.At(pos-1)) {
		pos--
	}
	for pos > 0 && !isSpaceByte(f.buf.At(pos-1)) {
		pos--
	}
	f.cursor = pos
}

// MoveForwardWordwise moves the cursor to the next whitespace boundary,
// skipping any whitespace immediately after the cursor first.
func (f *TextField) MoveForwardWordwise() {
	pos := f.cursor
	n := f.buf.Len()
	for pos < n && isSpaceByte(f.buf.At(pos)) {
		pos++
	}
	for pos < n && !isSpaceByte(f.buf.At(pos)) {
		pos++
	}
	f.cursor = pos
}

// DeleteWordBefore deletes from a backward wordwise move to the original
// cursor position.
func (f *TextField) DeleteWordBefore() {
	end := f.cursor
	f.MoveBackwardWordwise()
	if f.cursor == end {
		return
	}
	f.buf.RemoveRange(f.cursor, end)
	f.changed()
}

// DeleteWordAfter deletes from the cursor to a forward wordwise move.
func (f *TextField) DeleteWordAfter() {
	start := f.cursor
	f.MoveForwardWordwise()
	if f.cursor == start {
		return
	}
	f.buf.RemoveRange(start, f.cursor)
	f.cursor = start
	f.changed()
}

// Clear empties the field.
func (f *TextField) Clear() {
	f.buf.Clear()
	f.cursor = 0
	f.drawOffset = 0
	f.changed()
}

// ToOwnedSlice returns the field's full contents as a freshly allocated
// slice.
func (f *TextField) ToOwnedSlice() []byte { return f.buf.ToSlice() }

// SliceToCursor appends the field's contents up to the cursor onto out and
// returns the extended slice.
func (f *TextField) SliceToCursor(out []byte) []byte {
	for i := 0; i < f.cursor; i++ {
		out = append(out, f.buf.At(i))
	}
	return out
}

// Len reports the field's content length in bytes.
func (f *TextField) Len() int { return f.buf.Len() }

// HandleEvent implements EventHandler: the standard line-editing key
// bindings (arrows, backspace/delete, ctrl-a/e/w, alt-b/f, ctrl-u/k) plus
// printable text insertion.
func (f *TextField) HandleEvent(ctx *EventContext, ev Event) {
	if ev.Kind != EventKeyPress {
		return
	}
	k := ev.Key
	switch k.Func {
	case FuncKeyLeft:
		f.CursorLeft()
	case FuncKeyRight:
		f.CursorRight()
	case FuncKeyBackspace:
		f.DeleteBeforeCursor()
	case FuncKeyDelete:
		f.DeleteAfterCursor()
	case FuncKeyHome:
		f.DeleteToStart0()
	case FuncKeyEnd:
		f.cursor = f.buf.Len()
	default:
		if k.Modifiers.Has(ModCtrl) {
			switch k.Codepoint {
			case 'a':
				f.cursor = 0
			case 'e':
				f.cursor = f.buf.Len()
			case 'u':
				f.DeleteToStart()
			case 'k':
				f.DeleteToEnd()
			case 'w':
				f.DeleteWordBefore()
			}
			ctx.Consume()
			return
		}
		if k.Modifiers.Has(ModAlt) {
			switch k.Codepoint {
			case 'b':
				f.MoveBackwardWordwise()
			case 'f':
				f.MoveForwardWordwise()
			case 'd':
				f.DeleteWordAfter()
			}
			ctx.Consume()
			return
		}
		if len(k.Text) > 0 {
			f.InsertSliceAtCursor(k.Text)
		}
	}
	ctx.Consume()
}

// DeleteToStart0 is a content-preserving variant used by the Home key
// binding; it moves the cursor to 0 without deleting, unlike DeleteToStart.
func (f *TextField) DeleteToStart0() { f.cursor = 0 }

// Draw renders the field as a single-row Surface: a run of cells from
// drawOffset, adjusted each draw so the cursor stays within [0,width), with
// a leading ellipsis cell when content has scrolled right of column 0.
func (f *TextField) Draw(ctx *DrawContext) *Surface {
	width := ctx.Constraint.MaxWidthOr(20)
	if width < 1 {
		width = 1
	}
	s := ctx.Arena.Alloc()
	s.Size = Size{Width: width, Height: 1}
	s.Widget = IdentityOf(f)
	s.InitCells()

	content := f.buf.ToSlice()
	cursorCol := f.measureCellsTo(content, f.cursor, ctx.Unicode)

	if cursorCol < f.drawOffset {
		f.drawOffset = cursorCol
	}
	if cursorCol >= f.drawOffset+width {
		f.drawOffset = cursorCol - width + 1
	}

	col := 0
	scrolled := f.drawOffset > 0
	if scrolled {
		s.WriteCell(0, 0, NewCell([]byte("…"), 1, f.Style))
		col = 1
	}

	cells := flattenLine(content, ctx.Unicode)
	skip := f.drawOffset
	for _, c := range cells {
		if skip > 0 {
			skip -= c.width
			continue
		}
		if col >= width {
			break
		}
		s.WriteCell(col, 0, NewCell(c.grapheme, uint8(c.width), f.Style))
		col += c.width
	}

	if len(content) == 0 && f.Placeholder != "" {
		ph := flattenLine([]byte(f.Placeholder), ctx.Unicode)
		pc := 0
		dim := f.Style.Dim()
		for _, c := range ph {
			if pc >= width {
				break
			}
			s.WriteCell(pc, 0, NewCell(c.grapheme, uint8(c.width), dim))
			pc += c.width
		}
	}

	s.Cursor = &CursorRequest{Col: cursorCol - f.drawOffset, Row: 0, Visible: true, Shape: CursorBar}
	return s
}

// measureCellsTo returns the display-column position of byte offset pos
// within content.
func (f *TextField) measureCellsTo(content []byte, pos int, unicode *UnicodeState) int {
	cells := flattenLine(content[:min(pos, len(content))], unicode)
	col := 0
	for _, c := range cells {
		col += c.width
	}
	return col
}
