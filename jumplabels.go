package cellterm

// JumpLabel is one overlay entry produced by CollectJumpTargets: a short
// label string anchored at a jump-target widget's origin within the tree
// that was walked, in the coordinate space of that tree's root.
type JumpLabel struct {
	Label    string
	Col, Row int
	Widget   WidgetID
	Surface  *Surface
}

// CollectJumpTargets walks root depth-first, visiting children in
// insertion order (z is not considered, unlike HitTest, which visits
// higher z first), and assigns each Surface with
// JumpTarget set a short label drawn from the sequence a, b, ..., z, aa,
// ab, .... Adapted from the teacher's jump-mode overlay concept (see
// SPEC_FULL.md §3 "Jump-label mode"): the teacher assigns labels the same
// way, over its retained Component tree instead of a fresh Surface tree.
func CollectJumpTargets(root *Surface) []JumpLabel {
	if root == nil {
		return nil
	}
	var out []JumpLabel
	collectJumpTargets(root, 0, 0, &out)
	return out
}

func collectJumpTargets(s *Surface, originCol, originRow int, out *[]JumpLabel) {
	if s.JumpTarget {
		*out = append(*out, JumpLabel{
			Label:   jumpLabelFor(len(*out)),
			Col:     originCol,
			Row:     originRow,
			Widget:  s.Widget,
			Surface: s,
		})
	}
	for _, child := range s.Children {
		collectJumpTargets(child.Surface, originCol+child.Origin.Col, originRow+child.Origin.Row, out)
	}
}

// jumpLabelFor returns the n-th label in the sequence a, b, ..., z, aa, ab,
// ..., zz, aaa, ... — a bijective base-26 encoding so labels stay short and
// never collide regardless of how many jump targets are on screen.
func jumpLabelFor(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	if n < 0 {
		n = 0
	}
	var buf []byte
	for {
		buf = append([]byte{alphabet[n%26]}, buf...)
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return string(buf)
}

// FindJumpTarget returns the widget whose label equals label, if any.
func FindJumpTarget(labels []JumpLabel, label string) (JumpLabel, bool) {
	for _, l := range labels {
		if l.Label == label {
			return l, true
		}
	}
	return JumpLabel{}, false
}
