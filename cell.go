package cellterm

// Cell is a single position in the Screen's grid: a grapheme cluster, its
// display width, and its style.
//
// Grapheme holds the UTF-8 bytes of the cluster. The byte slice is never
// owned by the Cell itself — it is either a package-level constant (for the
// space/empty cell), an inline encoding the caller controls the lifetime of,
// or (the common case for parsed input) a slice returned by the grapheme
// cache, which is guaranteed to outlive the frame that wrote it. Cells are
// copied by value; copying a Cell never copies the bytes it points at.
type Cell struct {
	Grapheme []byte
	Width    uint8 // 0, 1, or 2
	Style    Style

	// Default marks an "empty, same as terminal background" cell. Default
	// cells participate in diffing as blanks regardless of Grapheme/Style,
	// matching a terminal that was never touched at that position.
	Default bool

	// Wrapped marks that the line continues onto the next row because a
	// word-wrap (not an explicit newline) occurred here; text widgets use
	// this to decide whether reflowing should treat the row boundary as
	// significant.
	Wrapped bool
}

var spaceGrapheme = []byte{' '}

// EmptyCell returns the canonical blank cell: a single space, default
// style, Default set.
func EmptyCell() Cell {
	return Cell{Grapheme: spaceGrapheme, Width: 1, Style: DefaultStyle(), Default: true}
}

// continuationCell is written at column c+1 whenever a width-2 grapheme is
// written at column c (see Screen.WriteCell). It has an empty grapheme, zero
// width, and is never itself a wrap point.
func continuationCell(style Style) Cell {
	return Cell{Grapheme: nil, Width: 0, Style: style}
}

// NewCell builds a cell from an already-measured grapheme and width.
func NewCell(grapheme []byte, width uint8, style Style) Cell {
	return Cell{Grapheme: grapheme, Width: width, Style: style}
}

// Equal reports whether two cells are indistinguishable for rendering
// purposes: same bytes, width, style, and flags. Two Default cells are
// always equal regardless of their other fields, since a default cell's
// observable content is "nothing was ever drawn here".
func (c Cell) Equal(other Cell) bool {
	if c.Default && other.Default {
		return true
	}
	if c.Default != other.Default {
		return false
	}
	if c.Width != other.Width || c.Wrapped != other.Wrapped {
		return false
	}
	if !c.Style.Equal(other.Style) {
		return false
	}
	return string(c.Grapheme) == string(other.Grapheme)
}

// IsContinuation reports whether c is the zero-width companion cell of a
// preceding width-2 grapheme.
func (c Cell) IsContinuation() bool { return c.Width == 0 && len(c.Grapheme) == 0 && !c.Default }
