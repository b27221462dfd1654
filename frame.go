package cellterm

// Frame is the per-frame allocation arena: every Surface and SubSurface
// slice produced while building one frame's tree comes from here, and the
// whole arena is reset (not freed) at the start of the next frame's draw,
// so a long-running UI pays allocation cost once at startup rather than
// once per widget per frame.
//
// The teacher's arena (arena.go's Node/Frame) packs a homogeneous node
// array addressed by int16 index specifically so growth never invalidates
// a previously handed-out reference. Surfaces here are heterogeneous,
// pointer-linked trees (a SubSurface holds a *Surface, per the spec's data
// model) rather than one flat array, so the same "reset, don't reallocate"
// idea is adapted as a freelist of pooled *Surface values instead of an
// index arena: Alloc hands out a pointer whose identity is stable for the
// rest of the frame, and Reset recycles every pointer handed out so far
// back into the pool instead of discarding them for the GC to collect.
type Frame struct {
	pool []*Surface
	next int
}

// NewFrame returns an arena pre-sized to hold capacity Surfaces without
// growing.
func NewFrame(capacity int) *Frame {
	f := &Frame{pool: make([]*Surface, 0, capacity)}
	for i := 0; i < capacity; i++ {
		f.pool = append(f.pool, &Surface{})
	}
	return f
}

// Reset makes every previously allocated Surface available again. Called
// once at the top of each redraw, before the root widget is drawn.
func (f *Frame) Reset() {
	f.next = 0
}

// Alloc returns a zeroed *Surface that lives until the next Reset.
func (f *Frame) Alloc() *Surface {
	if f.next < len(f.pool) {
		s := f.pool[f.next]
		*s = Surface{}
		f.next++
		return s
	}
	s := &Surface{}
	f.pool = append(f.pool, s)
	f.next++
	return s
}
