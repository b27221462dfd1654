package cellterm

import "github.com/rivo/uniseg"

// LineIterator splits text on \n, \r, or \r\n. It is a single-pass, finite,
// non-restartable sequence: once Next returns false the iterator is spent.
type LineIterator struct {
	rest []byte
	done bool
}

// NewLineIterator returns an iterator over text's hard lines.
func NewLineIterator(text []byte) *LineIterator {
	return &LineIterator{rest: text}
}

// Next returns the next hard line (without its terminator) and advances
// past it. ok is false once every line, including a trailing empty one
// after a final terminator, has been consumed.
func (it *LineIterator) Next() (line []byte, ok bool) {
	if it.done {
		return nil, false
	}
	for i := 0; i < len(it.rest); i++ {
		switch it.rest[i] {
		case '\n':
			line, it.rest = it.rest[:i], it.rest[i+1:]
			return line, true
		case '\r':
			if i+1 < len(it.rest) && it.rest[i+1] == '\n' {
				line, it.rest = it.rest[:i], it.rest[i+2:]
				return line, true
			}
			line, it.rest = it.rest[:i], it.rest[i+1:]
			return line, true
		}
	}
	it.done = true
	return it.rest, true
}

// textCell is one grapheme's contribution to a flattened, width-measured
// line, produced by flattenLine before soft-wrap break-finding runs.
type textCell struct {
	grapheme []byte
	width    int
}

const tabWidth = 8

var spaceCell = textCell{grapheme: []byte(" "), width: 1}

// flattenLine expands line into a flat cell array, each grapheme cluster
// keyed with its display width; a tab expands to tabWidth space-cells
// rather than being measured as a single wide cell, matching the spec's
// "tabs expand to 8 space-cells" rule.
func flattenLine(line []byte, unicode *UnicodeState) []textCell {
	var cells []textCell
	state := -1
	rest := line
	for len(rest) > 0 {
		cluster, remainder, _, newState := uniseg.FirstGraphemeCluster(rest, state)
		state = newState
		if len(cluster) == 1 && cluster[0] == '\t' {
			for i := 0; i < tabWidth; i++ {
				cells = append(cells, spaceCell)
			}
		} else {
			cells = append(cells, textCell{grapheme: cluster, width: unicode.WidthOf(cluster)})
		}
		rest = remainder
	}
	return cells
}

func isSpaceCell(c textCell) bool {
	return len(c.grapheme) == 1 && (c.grapheme[0] == ' ' || c.grapheme[0] == '\t')
}

// nextWrap scans cells[from:] for the next word: a maximal run of non-space
// cells, returning its end index (exclusive). If cells[from] is itself a
// space, the returned word is empty (from==end) — callers skip leading
// whitespace separately.
func nextWrap(cells []textCell, from int) (end int) {
	i := from
	for i < len(cells) && !isSpaceCell(cells[i]) {
		i++
	}
	return i
}

// WrapLine is one soft-wrapped output line: its cells and their total
// display width.
type WrapLine struct {
	Cells []textCell
	Width int
}

// SoftwrapIterator produces word-wrapped lines from source text, breaking
// preferentially at whitespace. An unbounded maxWidth (<=0) yields exactly
// one output line per hard line, with no breaking.
type SoftwrapIterator struct {
	lines    *LineIterator
	unicode  *UnicodeState
	maxWidth int

	current []textCell
	pos     int
	exhausted bool
}

// NewSoftwrapIterator wraps text against maxWidth cells; pass maxWidth<=0
// for unbounded (one output line per hard line).
func NewSoftwrapIterator(text []byte, unicode *UnicodeState, maxWidth int) *SoftwrapIterator {
	return &SoftwrapIterator{lines: NewLineIterator(text), unicode: unicode, maxWidth: maxWidth}
}

// Next returns the next wrapped line, or ok=false once the source is
// exhausted.
func (it *SoftwrapIterator) Next() (WrapLine, bool) {
	for {
		if it.current == nil {
			line, ok := it.lines.Next()
			if !ok {
				return WrapLine{}, false
			}
			it.current = flattenLine(line, it.unicode)
			it.pos = 0
			if len(it.current) == 0 {
				it.current = nil
				return WrapLine{}, true
			}
		}

		if it.maxWidth <= 0 {
			out := WrapLine{Cells: it.current[it.pos:]}
			for _, c := range out.Cells {
				out.Width += c.width
			}
			it.current = nil
			return trimTrailingSpace(out), true
		}

		out, next := it.wrapOneLine()
		it.pos = next
		if it.pos >= len(it.current) {
			it.current = nil
		}
		return out, true
	}
}

// wrapOneLine greedily accumulates words from it.current[it.pos:] up to
// it.maxWidth, splitting an over-long word at the cell that would overflow
// when it alone exceeds maxWidth. Returns the line and the index to resume
// from.
func (it *SoftwrapIterator) wrapOneLine() (WrapLine, int) {
	cells := it.current
	i := it.pos
	var lineCells []textCell
	width := 0

	// Leading whitespace on a continuation line is not part of any word
	// and is dropped rather than accumulated.
	for i < len(cells) && isSpaceCell(cells[i]) && width == 0 && len(lineCells) == 0 {
		i++
	}

	for i < len(cells) {
		if isSpaceCell(cells[i]) {
			// Single run of inter-word space: count it as part of the
			// line if it fits, otherwise stop here (trimmed at emit).
			j := i
			for j < len(cells) && isSpaceCell(cells[j]) {
				j++
			}
			spaceWidth := 0
			for _, c := range cells[i:j] {
				spaceWidth += c.width
			}
			if width+spaceWidth > it.maxWidth {
				break
			}
			lineCells = append(lineCells, cells[i:j]...)
			width += spaceWidth
			i = j
			continue
		}

		end := nextWrap(cells, i)
		wordWidth := 0
		for _, c := range cells[i:end] {
			wordWidth += c.width
		}

		if width == 0 && wordWidth > it.maxWidth {
			// The word alone overflows an empty line: split it at the
			// exact cell that would overflow.
			split := i
			w := 0
			for split < end {
				cw := cells[split].width
				if w+cw > it.maxWidth {
					break
				}
				w += cw
				split++
			}
			if split == i {
				split = i + 1 // guarantee progress for a single over-wide cell
			}
			lineCells = append(lineCells, cells[i:split]...)
			return trimTrailingSpace(WrapLine{Cells: lineCells, Width: w}), split
		}

		if width+wordWidth > it.maxWidth {
			break
		}
		lineCells = append(lineCells, cells[i:end]...)
		width += wordWidth
		i = end
	}

	if i == it.pos {
		i++ // never stall: always consume at least one cell
	}
	return trimTrailingSpace(WrapLine{Cells: lineCells, Width: width}), i
}

func trimTrailingSpace(line WrapLine) WrapLine {
	end := len(line.Cells)
	for end > 0 && isSpaceCell(line.Cells[end-1]) {
		end--
		line.Width -= line.Cells[end].width
	}
	line.Cells = line.Cells[:end]
	return line
}

// WidthBasis selects how a text widget's output width is derived.
type WidthBasis int

const (
	WidthLongestLine WidthBasis = iota
	WidthParent
)

// OverflowPolicy selects how a text widget handles a line exceeding
// max.height or, per-line, exceeding its own measured width under a
// non-wrapping layout.
type OverflowPolicy int

const (
	OverflowClip OverflowPolicy = iota
	OverflowEllipsis
)

// MeasureWidth runs the wrap algorithm against maxWidth purely to find the
// widest resulting line, without keeping the wrapped lines around — the
// text widget's required pre-pass per spec.md §4.12 ("max of min.width,
// widest line").
func MeasureWidth(text []byte, unicode *UnicodeState, maxWidth int, min int) int {
	widest := min
	it := NewSoftwrapIterator(text, unicode, maxWidth)
	for {
		line, ok := it.Next()
		if !ok {
			break
		}
		if line.Width > widest {
			widest = line.Width
		}
	}
	return widest
}

// ApplyEllipsis replaces line's last column with an ellipsis cell if line's
// width exceeds width, clipping to fit. Used when a widget's overflow
// policy is OverflowEllipsis.
func ApplyEllipsis(line WrapLine, width int) WrapLine {
	if line.Width <= width || width <= 0 {
		return line
	}
	out := make([]textCell, 0, len(line.Cells))
	w := 0
	budget := width - 1
	for _, c := range line.Cells {
		if w+c.width > budget {
			break
		}
		out = append(out, c)
		w += c.width
	}
	out = append(out, textCell{grapheme: []byte("…"), width: 1})
	return WrapLine{Cells: out, Width: w + 1}
}
