package cellterm

// GapBuffer is a reusable ordered sequence of T backed by a single slice
// with a movable interior gap, so that a run of inserts/deletes clustered
// around one index is amortized O(1) per operation instead of O(n) per
// operation as a plain slice insert/delete would be.
//
// Layout: items[0:gapStart) is the "before" half, items[gapEnd:len(items))
// is the "after" half, and items[gapStart:gapEnd) is unused capacity (the
// gap itself). Moving the gap to a new index is a single copy (memmove) of
// the items between the old and the new gap position.
type GapBuffer[T any] struct {
	items    []T
	gapStart int
	gapEnd   int // first index of the after-half; gapEnd-gapStart == gap size
}

// NewGapBuffer returns an empty buffer with capacity hint cap.
func NewGapBuffer[T any](capHint int) *GapBuffer[T] {
	if capHint < 0 {
		capHint = 0
	}
	return &GapBuffer[T]{
		items:    make([]T, capHint),
		gapStart: 0,
		gapEnd:   capHint,
	}
}

// Len returns the number of logical elements (excludes the gap).
func (g *GapBuffer[T]) Len() int {
	return len(g.items) - (g.gapEnd - g.gapStart)
}

// Cap returns the total backing capacity including the gap.
func (g *GapBuffer[T]) Cap() int { return len(g.items) }

// gapSize returns the number of free slots currently in the gap.
func (g *GapBuffer[T]) gapSize() int { return g.gapEnd - g.gapStart }

// toPhysical converts a logical index (0..Len()) into a physical index into
// g.items, assuming the gap has already been moved to logicalIndex (i.e.
// this must only be called right after moveGapTo).
func (g *GapBuffer[T]) toPhysical(logical int) int {
	if logical < g.gapStart {
		return logical
	}
	return logical + g.gapSize()
}

// moveGapTo slides the gap so that gapStart == at (0 <= at <= Len()),
// via a single copy of whichever side is being crossed.
func (g *GapBuffer[T]) moveGapTo(at int) {
	switch {
	case at < g.gapStart:
		// Move the [at, gapStart) block rightward into the tail of the gap.
		n := g.gapStart - at
		copy(g.items[g.gapEnd-n:g.gapEnd], g.items[at:g.gapStart])
		g.gapStart = at
		g.gapEnd -= n
	case at > g.gapStart:
		// Move the [gapEnd, gapEnd+n) block leftward into the head of the gap.
		n := at - g.gapStart
		copy(g.items[g.gapStart:g.gapStart+n], g.items[g.gapEnd:g.gapEnd+n])
		g.gapStart += n
		g.gapEnd += n
	}
}

// grow ensures at least need free slots in the gap, using a super-linear
// policy (new += new/2 + 8) so that a run of single-item inserts is
// amortized O(1) rather than reallocating on every insert.
func (g *GapBuffer[T]) grow(need int) {
	if g.gapSize() >= need {
		return
	}
	oldLen := len(g.items)
	newLen := oldLen
	for newLen-oldLen+g.gapSize() < need {
		newLen += newLen/2 + 8
	}
	grown := make([]T, newLen)
	copy(grown, g.items[:g.gapStart])
	tailLen := oldLen - g.gapEnd
	copy(grown[newLen-tailLen:], g.items[g.gapEnd:])
	g.items = grown
	g.gapEnd = newLen - tailLen
}

// InsertAt inserts v at logical index at (0 <= at <= Len()).
func (g *GapBuffer[T]) InsertAt(at int, v T) {
	g.grow(1)
	g.moveGapTo(at)
	g.items[g.gapStart] = v
	g.gapStart++
}

// InsertSliceAt inserts vs starting at logical index at, preserving order.
func (g *GapBuffer[T]) InsertSliceAt(at int, vs []T) {
	if len(vs) == 0 {
		return
	}
	g.grow(len(vs))
	g.moveGapTo(at)
	copy(g.items[g.gapStart:], vs)
	g.gapStart += len(vs)
}

// RemoveAt removes the element at logical index at and returns it.
func (g *GapBuffer[T]) RemoveAt(at int) T {
	g.moveGapTo(at)
	v := g.items[g.gapEnd]
	var zero T
	g.items[g.gapEnd] = zero
	g.gapEnd++
	return v
}

// RemoveRange removes the logical half-open range [from, to).
func (g *GapBuffer[T]) RemoveRange(from, to int) {
	if to <= from {
		return
	}
	g.moveGapTo(from)
	n := to - from
	var zero T
	for i := 0; i < n; i++ {
		g.items[g.gapEnd+i] = zero
	}
	g.gapEnd += n
}

// At returns the element at logical index i without moving the gap.
func (g *GapBuffer[T]) At(i int) T {
	return g.items[g.toPhysicalNoMove(i)]
}

// toPhysicalNoMove computes the physical index for i without requiring the
// gap to already sit at i (unlike toPhysical, usable for arbitrary reads).
func (g *GapBuffer[T]) toPhysicalNoMove(i int) int {
	if i < g.gapStart {
		return i
	}
	return i + g.gapSize()
}

// Set overwrites the element at logical index i.
func (g *GapBuffer[T]) Set(i int, v T) {
	g.items[g.toPhysicalNoMove(i)] = v
}

// Clear empties the buffer, keeping the backing array.
func (g *GapBuffer[T]) Clear() {
	var zero T
	for i := range g.items {
		g.items[i] = zero
	}
	g.gapStart = 0
	g.gapEnd = len(g.items)
}

// ToSlice returns a freshly allocated slice holding all logical elements in
// order, with the gap removed.
func (g *GapBuffer[T]) ToSlice() []T {
	out := make([]T, 0, g.Len())
	out = append(out, g.items[:g.gapStart]...)
	out = append(out, g.items[g.gapEnd:]...)
	return out
}

// AppendSliceTo appends all logical elements in order onto out and returns
// the extended slice, avoiding an intermediate allocation when the caller
// already owns a buffer to reuse.
func (g *GapBuffer[T]) AppendSliceTo(out []T) []T {
	out = append(out, g.items[:g.gapStart]...)
	out = append(out, g.items[g.gapEnd:]...)
	return out
}
