package cellterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexDecomposesChannels(t *testing.T) {
	c := Hex(0xFF8040)
	assert.Equal(t, Color{Mode: ColorRGB, R: 0xFF, G: 0x80, B: 0x40}, c)
}

func TestColorEqual(t *testing.T) {
	a := RGB(1, 2, 3)
	b := RGB(1, 2, 3)
	c := RGB(1, 2, 4)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestLerpColorEndpoints(t *testing.T) {
	a := RGB(0, 0, 0)
	b := RGB(255, 255, 255)

	assert.Equal(t, a, LerpColor(a, b, 0))
	assert.Equal(t, b, LerpColor(a, b, 1))
}

func TestLerpColorClampsOutOfRangeT(t *testing.T) {
	a := RGB(10, 20, 30)
	b := RGB(200, 210, 220)

	assert.Equal(t, LerpColor(a, b, 0), LerpColor(a, b, -5))
	assert.Equal(t, LerpColor(a, b, 1), LerpColor(a, b, 5))
}

func TestStyleBuilderMethodsCompose(t *testing.T) {
	s := DefaultStyle().Bold().Italic().Foreground(Red).Background(Blue)

	assert.True(t, s.Attr.Has(AttrBold))
	assert.True(t, s.Attr.Has(AttrItalic))
	assert.False(t, s.Attr.Has(AttrDim))
	assert.Equal(t, Red, s.FG)
	assert.Equal(t, Blue, s.BG)
}

func TestStyleEqualIgnoresNothingRelevant(t *testing.T) {
	a := DefaultStyle().Bold().Hyperlink("https://example.com", 1)
	b := DefaultStyle().Bold().Hyperlink("https://example.com", 1)
	c := DefaultStyle().Bold().Hyperlink("https://example.com", 2)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestAttributeWithAndWithout(t *testing.T) {
	a := AttrNone.With(AttrBold).With(AttrDim)
	assert.True(t, a.Has(AttrBold))
	assert.True(t, a.Has(AttrDim))

	a = a.Without(AttrBold)
	assert.False(t, a.Has(AttrBold))
	assert.True(t, a.Has(AttrDim))
}
