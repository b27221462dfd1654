package cellterm

import colorful "github.com/lucasb-eyer/go-colorful"

// ColorMode selects how a Color's channels are interpreted.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota // terminal default, no escape emitted
	Color16                       // one of the 16 basic ANSI colors
	Color256                      // 256-color palette index
	ColorRGB                      // 24-bit true color
)

// Color is a terminal color in one of three representations. Only the
// fields relevant to Mode are meaningful.
type Color struct {
	Mode    ColorMode
	R, G, B uint8
	Index   uint8
}

// DefaultColor returns the terminal's own default color.
func DefaultColor() Color { return Color{Mode: ColorDefault} }

// BasicColor returns one of the 16 basic ANSI colors (0-15).
func BasicColor(index uint8) Color { return Color{Mode: Color16, Index: index & 0xF} }

// PaletteColor returns one of the 256-color palette entries.
func PaletteColor(index uint8) Color { return Color{Mode: Color256, Index: index} }

// RGB returns a 24-bit true color.
func RGB(r, g, b uint8) Color { return Color{Mode: ColorRGB, R: r, G: g, B: b} }

// Hex returns a 24-bit true color parsed from a 0xRRGGBB literal.
func Hex(hex uint32) Color {
	return Color{
		Mode: ColorRGB,
		R:    uint8(hex >> 16),
		G:    uint8(hex >> 8),
		B:    uint8(hex),
	}
}

// Equal reports whether two colors have identical mode and channels.
func (c Color) Equal(other Color) bool { return c == other }

// LerpColor blends from a to b in perceptual (CIE-Lab) space, t clamped to
// [0,1]. Using Lab rather than a per-channel RGB average avoids the muddy
// midpoints a naive lerp produces between saturated colors.
func LerpColor(a, b Color, t float64) Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	ac := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	bc := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	lc := ac.BlendLab(bc, t)
	r, g, b := lc.Clamped().RGB255()
	return RGB(r, g, b)
}

// Basic 16-color convenience values, indices per the standard ANSI layout.
var (
	Black   = BasicColor(0)
	Red     = BasicColor(1)
	Green   = BasicColor(2)
	Yellow  = BasicColor(3)
	Blue    = BasicColor(4)
	Magenta = BasicColor(5)
	Cyan    = BasicColor(6)
	White   = BasicColor(7)

	BrightBlack   = BasicColor(8)
	BrightRed     = BasicColor(9)
	BrightGreen   = BasicColor(10)
	BrightYellow  = BasicColor(11)
	BrightBlue    = BasicColor(12)
	BrightMagenta = BasicColor(13)
	BrightCyan    = BasicColor(14)
	BrightWhite   = BasicColor(15)
)
