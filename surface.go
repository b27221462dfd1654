package cellterm

import (
	"sort"
	"unicode/utf8"
)

// CursorRequest is a Surface's optional request to place the terminal
// cursor somewhere within itself, published so the runtime can reflect it
// to the Screen when this widget is focused.
type CursorRequest struct {
	Col, Row int
	Shape    CursorShape
	Visible  bool
}

// Origin is a SubSurface's offset relative to its parent's own origin.
// Negative or out-of-bounds values are valid; they are clipped at compose
// time rather than rejected.
type Origin struct {
	Col, Row int
}

// SubSurface anchors a child Surface at Origin within its parent, at a
// given stacking position.
type SubSurface struct {
	Origin Origin
	Z      int
	Surface *Surface
}

// Surface is one widget's contribution to a frame: its size, its own cell
// buffer (optionally empty/transparent, meaning "draw nothing, only host
// children"), its widget identity, an optional cursor request, and its
// ordered children. Surfaces are allocated from a Frame and are valid only
// until that Frame is Reset.
type Surface struct {
	Size   Size
	Widget WidgetID

	cells []Cell // nil or len == Size.Width*Size.Height

	Cursor   *CursorRequest
	Children []SubSurface

	// JumpTarget marks a widget as eligible for a jump-label overlay (the
	// teacher's jump-mode concept); zero value means "not a jump target".
	JumpTarget bool
}

// InitCells allocates (or reuses, if already the right length) this
// Surface's own cell buffer as Size.Width*Size.Height empty cells. A
// Surface that never calls InitCells remains transparent — it draws
// nothing of its own and only hosts children.
func (s *Surface) InitCells() {
	n := s.Size.Width * s.Size.Height
	if cap(s.cells) >= n {
		s.cells = s.cells[:n]
	} else {
		s.cells = make([]Cell, n)
	}
	empty := EmptyCell()
	for i := range s.cells {
		s.cells[i] = empty
	}
}

// HasCells reports whether this Surface draws its own content.
func (s *Surface) HasCells() bool { return s.cells != nil }

// WriteCell writes into this Surface's own buffer at a local (col,row),
// clipped to its bounds. A box-drawing glyph written over another one in
// the same cell is merged into a junction character, matching the teacher's border-merge convenience;
// use WriteCellRaw to bypass merging (e.g. for plain text runs where the
// content is known not to be a border glyph).
func (s *Surface) WriteCell(col, row int, cell Cell) {
	if s.cells == nil || col < 0 || row < 0 || col >= s.Size.Width || row >= s.Size.Height {
		return
	}
	idx := row*s.Size.Width + col
	if merged, ok := mergeBorderGraphemes(s.cells[idx].Grapheme, cell.Grapheme); ok {
		cell.Grapheme = merged
	}
	s.cells[idx] = cell
	if cell.Width == 2 && col+1 < s.Size.Width {
		s.cells[idx+1] = continuationCell(cell.Style)
	}
}

// WriteCellRaw writes without border-merging.
func (s *Surface) WriteCellRaw(col, row int, cell Cell) {
	if s.cells == nil || col < 0 || row < 0 || col >= s.Size.Width || row >= s.Size.Height {
		return
	}
	idx := row*s.Size.Width + col
	s.cells[idx] = cell
	if cell.Width == 2 && col+1 < s.Size.Width {
		s.cells[idx+1] = continuationCell(cell.Style)
	}
}

// AddChild appends a child at the given origin and z-index. Children keep
// insertion order in the slice; rendering visits a z-sorted copy so
// later/higher layers paint over earlier ones, and hit-testing visits
// them by z descending.
func (s *Surface) AddChild(origin Origin, z int, child *Surface) {
	s.Children = append(s.Children, SubSurface{Origin: origin, Z: z, Surface: child})
}

// ContainsPoint reports whether (col,row), in this Surface's own local
// coordinate space, falls within its bounds.
func (s *Surface) ContainsPoint(col, row int) bool {
	return col >= 0 && row >= 0 && col < s.Size.Width && row < s.Size.Height
}

// Compose draws the Surface tree rooted at s into screen's back buffer,
// with s's own top-left at (originCol, originRow). Children are visited in
// z-index order (lowest first) so higher z-index content overwrites lower,
// matching the "later writer wins" convention the mouse hit-tester also
// relies on.
func Compose(s *Surface, screen *Screen, originCol, originRow int) {
	if s == nil {
		return
	}
	if s.cells != nil {
		for row := 0; row < s.Size.Height; row++ {
			for col := 0; col < s.Size.Width; col++ {
				cell := s.cells[row*s.Size.Width+col]
				if cell.IsContinuation() {
					continue
				}
				screen.WriteCell(originCol+col, originRow+row, cell)
			}
		}
	}

	order := make([]int, len(s.Children))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return s.Children[order[i]].Z < s.Children[order[j]].Z
	})
	for _, idx := range order {
		child := s.Children[idx]
		Compose(child.Surface, screen, originCol+child.Origin.Col, originRow+child.Origin.Row)
	}
}

// mergeBorderGraphemes combines two single-rune box-drawing graphemes into
// their junction character, when both sides are recognized border glyphs.
// Anything else (multi-byte grapheme clusters, non-border runes) is left
// untouched. Adapted from the teacher's mergeBorders table, which performs
// the identical convenience at Buffer.Set time.
func mergeBorderGraphemes(existing, incoming []byte) ([]byte, bool) {
	er, en := decodeSingleRune(existing)
	ir, in := decodeSingleRune(incoming)
	if !en || !in {
		return nil, false
	}
	merged, ok := mergeBorderRunes(er, ir)
	if !ok {
		return nil, false
	}
	return utf8.AppendRune(nil, merged), true
}

func decodeSingleRune(b []byte) (rune, bool) {
	if len(b) == 0 {
		return 0, false
	}
	r, size := utf8.DecodeRune(b)
	return r, size == len(b)
}
