package cellterm

// Box-drawing edge bits: which of the four directions a glyph draws a line
// segment toward, from its own cell center.
const (
	edgeUp = 1 << iota
	edgeRight
	edgeDown
	edgeLeft
)

var borderEdges = map[rune]int{
	'─': edgeLeft | edgeRight,
	'│': edgeUp | edgeDown,
	'┌': edgeRight | edgeDown,
	'┐': edgeLeft | edgeDown,
	'└': edgeUp | edgeRight,
	'┘': edgeUp | edgeLeft,
	'├': edgeUp | edgeDown | edgeRight,
	'┤': edgeUp | edgeDown | edgeLeft,
	'┬': edgeLeft | edgeRight | edgeDown,
	'┴': edgeLeft | edgeRight | edgeUp,
	'┼': edgeUp | edgeDown | edgeLeft | edgeRight,
}

var edgesToBorder = func() map[int]rune {
	m := make(map[int]rune, len(borderEdges))
	for r, e := range borderEdges {
		m[e] = r
	}
	return m
}()

// mergeBorderRunes combines two single-line box-drawing characters into
// the junction glyph matching the union of both their edges, e.g. '─' and
// '│' crossing becomes '┼'. Adapted from the teacher's edge-bitmask
// mergeBorders table; only the single-line set is carried over (rounded
// and double variants don't meaningfully junction-merge with the single
// set, so they're left out rather than faked).
func mergeBorderRunes(existing, incoming rune) (rune, bool) {
	ee, ok := borderEdges[existing]
	if !ok {
		return incoming, false
	}
	ie, ok := borderEdges[incoming]
	if !ok {
		return incoming, false
	}
	if r, ok := edgesToBorder[ee|ie]; ok {
		return r, true
	}
	return incoming, false
}
