package cellterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wrapLineStrings(t *testing.T, text string, width int) []string {
	t.Helper()
	unicode := &UnicodeState{WidthMethod: WidthWcwidth}
	it := NewSoftwrapIterator([]byte(text), unicode, width)
	var out []string
	for {
		line, ok := it.Next()
		if !ok {
			break
		}
		var s []byte
		for _, c := range line.Cells {
			s = append(s, c.grapheme...)
		}
		out = append(out, string(s))
	}
	return out
}

func TestLineIteratorSplitsOnAllTerminators(t *testing.T) {
	it := NewLineIterator([]byte("a\nb\r\nc\rd"))
	var lines []string
	for {
		l, ok := it.Next()
		if !ok {
			break
		}
		lines = append(lines, string(l))
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, lines)
}

func TestLineIteratorTrailingTerminatorYieldsEmptyLine(t *testing.T) {
	it := NewLineIterator([]byte("a\n"))
	first, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, "a", string(first))

	second, ok := it.Next()
	require.True(t, ok)
	assert.Empty(t, second)

	_, ok = it.Next()
	assert.False(t, ok)
}

func TestSoftwrapUnboundedYieldsOneLinePerHardLine(t *testing.T) {
	got := wrapLineStrings(t, "one two\nthree four", 0)
	assert.Equal(t, []string{"one two", "three four"}, got)
}

func TestSoftwrapBreaksAtWordBoundaries(t *testing.T) {
	got := wrapLineStrings(t, "the quick brown fox", 10)
	assert.Equal(t, []string{"the quick", "brown fox"}, got)
}

func TestSoftwrapSplitsOverlongWordMidWord(t *testing.T) {
	got := wrapLineStrings(t, "supercalifragilistic", 5)
	require.NotEmpty(t, got)
	for _, line := range got {
		assert.LessOrEqual(t, len(line), 5)
	}
	assert.Equal(t, "supercalifragilistic", concat(got))
}

func concat(lines []string) string {
	out := ""
	for _, l := range lines {
		out += l
	}
	return out
}

func TestSoftwrapTrimsTrailingWhitespace(t *testing.T) {
	got := wrapLineStrings(t, "abc   def", 4)
	for _, l := range got {
		assert.NotEqual(t, byte(' '), l[len(l)-1])
	}
}

func TestSoftwrapTabsExpandToEightCells(t *testing.T) {
	unicode := &UnicodeState{WidthMethod: WidthWcwidth}
	cells := flattenLine([]byte("a\tb"), unicode)
	total := 0
	for _, c := range cells {
		total += c.width
	}
	assert.Equal(t, 1+tabWidth+1, total)
}

func TestMeasureWidthFindsWidestLine(t *testing.T) {
	unicode := &UnicodeState{WidthMethod: WidthWcwidth}
	got := MeasureWidth([]byte("short\na much longer line"), unicode, 0, 0)
	assert.Equal(t, len("a much longer line"), got)
}

func TestMeasureWidthRespectsMinimum(t *testing.T) {
	unicode := &UnicodeState{WidthMethod: WidthWcwidth}
	got := MeasureWidth([]byte("hi"), unicode, 0, 10)
	assert.Equal(t, 10, got)
}

func TestApplyEllipsisReplacesLastColumn(t *testing.T) {
	unicode := &UnicodeState{WidthMethod: WidthWcwidth}
	cells := flattenLine([]byte("abcdef"), unicode)
	line := WrapLine{Cells: cells, Width: 6}

	out := ApplyEllipsis(line, 4)
	assert.Equal(t, 4, out.Width)

	var s []byte
	for _, c := range out.Cells {
		s = append(s, c.grapheme...)
	}
	assert.Equal(t, "abc…", string(s))
}

func TestApplyEllipsisNoopWhenFits(t *testing.T) {
	unicode := &UnicodeState{WidthMethod: WidthWcwidth}
	cells := flattenLine([]byte("abc"), unicode)
	line := WrapLine{Cells: cells, Width: 3}

	out := ApplyEllipsis(line, 10)
	assert.Equal(t, line.Width, out.Width)
}
