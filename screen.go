package cellterm

// CursorShape selects the terminal's visual cursor rendering.
type CursorShape uint8

const (
	CursorBlock CursorShape = iota
	CursorUnderline
	CursorBar
)

// WidthMethod selects which table Screen uses to measure grapheme display
// width. Capability replies (once received) override an initial guess made
// from COLORTERM/terminfo; see capabilities.go.
type WidthMethod uint8

const (
	WidthWcwidth  WidthMethod = iota // mattn/go-runewidth, POSIX wcwidth-like
	WidthUnicode15                   // rivo/uniseg, Unicode 15 East Asian Width
)

// ImagePlacement is one Kitty-protocol image anchored at a cell position.
type ImagePlacement struct {
	ID       uint32
	Col, Row int
	Z        int
	PNG      []byte // already-encoded, already-scaled image bytes
	CellW    int     // width in cells
	CellH    int     // height in cells
	dirty    bool
}

// Screen owns the back/front cell grids, the cursor, and image placements
// for one terminal. It is created on the first resize and resized in place
// on every winsize event; it never reallocates mid-frame outside Resize.
type Screen struct {
	cols, rows int
	pixelW, pixelH int

	back  []Cell
	front []Cell

	dirtyRows []bool
	allDirty  bool
	dirty     bool

	cursorCol, cursorRow int
	cursorVisible        bool
	cursorShape          CursorShape
	cursorColor          Color
	cursorColorSet       bool

	images []ImagePlacement

	widthMethod WidthMethod
}

// NewScreen allocates a Screen of the given cell dimensions.
func NewScreen(cols, rows int) *Screen {
	s := &Screen{}
	s.Resize(cols, rows, 0, 0)
	s.cursorVisible = true
	return s
}

// Size returns the current grid dimensions.
func (s *Screen) Size() (cols, rows int) { return s.cols, s.rows }

// PixelSize returns the terminal's reported pixel dimensions, used for
// scaling images to an exact cell-pixel box. Zero if never reported.
func (s *Screen) PixelSize() (w, h int) { return s.pixelW, s.pixelH }

// CellPixelSize returns the approximate pixel size of one cell, derived
// from the last reported pixel dimensions; (0,0) if unknown.
func (s *Screen) CellPixelSize() (w, h int) {
	if s.cols == 0 || s.rows == 0 || s.pixelW == 0 || s.pixelH == 0 {
		return 0, 0
	}
	return s.pixelW / s.cols, s.pixelH / s.rows
}

// WidthMethod returns the active width-measurement method.
func (s *Screen) WidthMethod() WidthMethod { return s.widthMethod }

// SetWidthMethod overrides the width-measurement method, e.g. once a
// capability reply resolves the ambiguity the static guess left open.
func (s *Screen) SetWidthMethod(m WidthMethod) { s.widthMethod = m }

// Resize reallocates both grids to cols×rows. Previous contents are not
// carried over; the dirty flag and full-redraw flag are set. Writes to a
// Screen before its first Resize operate on a zero-sized grid (no-ops).
func (s *Screen) Resize(cols, rows, pixelW, pixelH int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	n := cols * rows
	s.back = make([]Cell, n)
	s.front = make([]Cell, n)
	empty := EmptyCell()
	for i := range s.back {
		s.back[i] = empty
		s.front[i] = empty
	}
	s.cols, s.rows = cols, rows
	s.pixelW, s.pixelH = pixelW, pixelH
	s.dirtyRows = make([]bool, rows)
	s.allDirty = true
	s.dirty = true
	if s.cursorCol >= cols {
		s.cursorCol = cols - 1
	}
	if s.cursorRow >= rows {
		s.cursorRow = rows - 1
	}
}

// InBounds reports whether (col,row) addresses a live cell.
func (s *Screen) InBounds(col, row int) bool {
	return col >= 0 && col < s.cols && row >= 0 && row < s.rows
}

func (s *Screen) index(col, row int) int { return row*s.cols + col }

// ReadCell returns the back-buffer cell at (col,row); an empty cell if out
// of range.
func (s *Screen) ReadCell(col, row int) Cell {
	if !s.InBounds(col, row) {
		return EmptyCell()
	}
	return s.back[s.index(col, row)]
}

// WriteCell writes cell into the back buffer at (col,row). Out-of-range
// writes are no-ops. Width-2 cells also write a zero-width continuation
// cell at col+1 (clipped if that would fall outside the grid — a width-2
// grapheme that doesn't fit is simply dropped, matching "writes past the
// right edge clip unless wrap is requested").
func (s *Screen) WriteCell(col, row int, cell Cell) {
	if !s.InBounds(col, row) {
		return
	}
	if cell.Width == 2 && col+1 >= s.cols {
		return
	}
	idx := s.index(col, row)
	s.back[idx] = cell
	s.markDirty(row)

	if cell.Width == 2 {
		if col+1 < s.cols {
			s.back[idx+1] = continuationCell(cell.Style)
		}
	}
}

// WriteCellWrap behaves like WriteCell but, when the cell would overflow
// the row, continues at column 0 of the next row instead of clipping.
// Returns the (col,row) immediately after the written cell.
func (s *Screen) WriteCellWrap(col, row int, cell Cell) (nextCol, nextRow int) {
	width := int(cell.Width)
	if width == 0 {
		width = 1
	}
	if col+width > s.cols {
		col = 0
		row++
	}
	s.WriteCell(col, row, cell)
	return col + width, row
}

func (s *Screen) markDirty(row int) {
	s.dirty = true
	if row >= 0 && row < len(s.dirtyRows) {
		s.dirtyRows[row] = true
	}
}

// QueueRefresh forces the next render to treat every cell as changed,
// regardless of the front/back diff.
func (s *Screen) QueueRefresh() {
	s.allDirty = true
	s.dirty = true
	for i := range s.dirtyRows {
		s.dirtyRows[i] = true
	}
}

// Dirty reports whether any cell, cursor, or image state differs from what
// was last rendered.
func (s *Screen) Dirty() bool { return s.dirty }

// ShowCursor marks the cursor visible at (col,row).
func (s *Screen) ShowCursor(col, row int) {
	s.cursorVisible = true
	s.cursorCol, s.cursorRow = col, row
	s.dirty = true
}

// HideCursor marks the cursor hidden.
func (s *Screen) HideCursor() {
	s.cursorVisible = false
	s.dirty = true
}

// SetCursorShape sets the cursor's visual shape.
func (s *Screen) SetCursorShape(shape CursorShape) {
	s.cursorShape = shape
	s.dirty = true
}

// SetCursorColor sets the cursor's OSC-12 color. Supplemental to the core
// cursor model: the teacher's Screen exposes the same capability.
func (s *Screen) SetCursorColor(c Color) {
	s.cursorColor = c
	s.cursorColorSet = true
	s.dirty = true
}

// CursorState returns the current cursor position, visibility, and shape.
func (s *Screen) CursorState() (col, row int, visible bool, shape CursorShape) {
	return s.cursorCol, s.cursorRow, s.cursorVisible, s.cursorShape
}

// InsertImagePlacement adds or replaces (by ID) an image placement anchored
// at (col,row) with the given z-index and already-scaled PNG bytes.
func (s *Screen) InsertImagePlacement(img ImagePlacement) {
	img.dirty = true
	for i, existing := range s.images {
		if existing.ID == img.ID {
			s.images[i] = img
			s.dirty = true
			return
		}
	}
	s.images = append(s.images, img)
	s.dirty = true
}

// RemoveImagePlacement removes the placement with the given ID, if present.
func (s *Screen) RemoveImagePlacement(id uint32) {
	for i, existing := range s.images {
		if existing.ID == id {
			s.images = append(s.images[:i], s.images[i+1:]...)
			s.dirty = true
			return
		}
	}
}

// Images returns the current ordered placement list; callers must not
// mutate the returned slice.
func (s *Screen) Images() []ImagePlacement { return s.images }
