package cellterm

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// graphemeCache interns short byte runs so that Cell.Grapheme and
// key_press.text slices can outlive the transient read buffer they were
// parsed from, without allocating for every single grapheme.
//
// It is append-only for the lifetime of the process: entries are never
// evicted or reference-counted. A TUI's distinct grapheme vocabulary over a
// session is small (a handful of Unicode scalars and multi-rune clusters
// repeated many times), so the arena grows logarithmically in session
// length, not with input volume.
type graphemeCache struct {
	mu      sync.Mutex
	index   map[uint64][][]byte // hash -> candidates sharing that hash
	arenas  [][]byte            // backing chunks; entries are sub-slices of these
	current []byte              // tail of arenas, with remaining capacity
}

const graphemeArenaChunk = 4096

// newGraphemeCache constructs an empty cache.
func newGraphemeCache() *graphemeCache {
	return &graphemeCache{index: make(map[uint64][][]byte)}
}

// Intern returns a stable slice with the same bytes as b. If an identical
// run was interned before, the existing slice is returned and no allocation
// occurs; otherwise b is copied into the arena.
func (g *graphemeCache) Intern(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	h := xxhash.Sum64(b)

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, cand := range g.index[h] {
		if string(cand) == string(b) {
			return cand
		}
	}

	if len(g.current) < len(b) {
		size := graphemeArenaChunk
		if size < len(b) {
			size = len(b)
		}
		g.current = make([]byte, 0, size)
	}
	start := len(g.current)
	g.current = append(g.current, b...)
	interned := g.current[start : start+len(b) : start+len(b)]
	if start == 0 {
		g.arenas = append(g.arenas, g.current)
	}
	g.index[h] = append(g.index[h], interned)
	return interned
}

// Len reports the number of distinct interned graphemes, for diagnostics
// and tests.
func (g *graphemeCache) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.index {
		n += len(c)
	}
	return n
}
