package cellterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drawText(t *testing.T, content string, maxWidth, maxHeight int) *Surface {
	t.Helper()
	txt := NewText(content)
	arena := NewFrame(4)
	unicode := &UnicodeState{WidthMethod: WidthWcwidth}
	ctx := &DrawContext{Arena: arena, Constraint: Loose(Size{Width: maxWidth, Height: maxHeight}), Unicode: unicode}
	return txt.Draw(ctx)
}

func TestTextWrapsToConstrainedWidth(t *testing.T) {
	s := drawText(t, "the quick brown fox", 10, 5)
	assert.Equal(t, 9, s.Size.Width, "wraps to the widest of its two word-wrapped lines")
	assert.Equal(t, 2, s.Size.Height)
}

func TestTextClipsAtMaxHeight(t *testing.T) {
	s := drawText(t, "one\ntwo\nthree\nfour", 10, 2)
	assert.Equal(t, 2, s.Size.Height)
}

func TestTextEllipsisOverflowPolicy(t *testing.T) {
	txt := NewText("abcdefgh")
	txt.Overflow = OverflowEllipsis
	arena := NewFrame(2)
	unicode := &UnicodeState{WidthMethod: WidthWcwidth}
	ctx := &DrawContext{Arena: arena, Constraint: Tight(Size{Width: 4, Height: 1}), Unicode: unicode}

	s := txt.Draw(ctx)
	require.Equal(t, 4, s.Size.Width)
}

func TestTextWidthLongestLineBasisUsesWidestLine(t *testing.T) {
	txt := NewText("short\na much longer line of text")
	txt.Basis = WidthLongestLine
	arena := NewFrame(4)
	unicode := &UnicodeState{WidthMethod: WidthWcwidth}
	ctx := &DrawContext{Arena: arena, Constraint: Loose(Size{Width: 1000, Height: 10}), Unicode: unicode}

	s := txt.Draw(ctx)
	assert.Equal(t, len("a much longer line of text"), s.Size.Width)
}
