package cellterm

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Size is a width/height pair in cells.
type Size struct {
	Width, Height int
}

// SizeConstraint is a min/max size pair for one draw call. A nil Max
// dimension means unbounded in that axis.
type SizeConstraint struct {
	Min Size
	Max struct {
		Width, Height *int
	}
}

// UnboundedWidth reports whether the width axis has no upper bound.
func (c SizeConstraint) UnboundedWidth() bool { return c.Max.Width == nil }

// UnboundedHeight reports whether the height axis has no upper bound.
func (c SizeConstraint) UnboundedHeight() bool { return c.Max.Height == nil }

// MaxWidthOr returns the max width, or fallback if unbounded.
func (c SizeConstraint) MaxWidthOr(fallback int) int {
	if c.Max.Width == nil {
		return fallback
	}
	return *c.Max.Width
}

// MaxHeightOr returns the max height, or fallback if unbounded.
func (c SizeConstraint) MaxHeightOr(fallback int) int {
	if c.Max.Height == nil {
		return fallback
	}
	return *c.Max.Height
}

// UnicodeState is the process-wide reference to Unicode data and the
// active width-measurement method. It must be set once before the first
// draw and never mutated afterward during a frame; DrawContext carries it
// by reference precisely so widget code never needs to reach for a true
// global.
type UnicodeState struct {
	WidthMethod WidthMethod
}

// WidthOf measures the display width (0, 1, or 2) of a single grapheme
// cluster's bytes, using whichever method s.WidthMethod selects.
func (s *UnicodeState) WidthOf(grapheme []byte) int {
	if len(grapheme) == 0 {
		return 0
	}
	if s.WidthMethod == WidthUnicode15 {
		w, _ := uniseg.FirstGraphemeClusterInString(string(grapheme), -1)
		_ = w
		return uniseg.StringWidth(string(grapheme))
	}
	return runewidth.StringWidth(string(grapheme))
}

// DrawContext is passed to every Widget.Draw call. It carries the
// per-frame arena, the size constraint the parent is offering, the cell
// pixel size (for image placement math), and the process-wide Unicode
// reference.
type DrawContext struct {
	Arena      *Frame
	Constraint SizeConstraint
	CellPixelW int
	CellPixelH int
	Unicode    *UnicodeState
}

// WithConstraint returns a copy of ctx with a new size constraint,
// otherwise identical — the idiom a container widget uses to hand each
// child a narrower box without touching the shared arena/unicode fields.
func (ctx DrawContext) WithConstraint(c SizeConstraint) DrawContext {
	ctx.Constraint = c
	return ctx
}

// Tight returns a SizeConstraint whose min and max are both size — useful
// for a child that must exactly fill an allotted box.
func Tight(size Size) SizeConstraint {
	w, h := size.Width, size.Height
	c := SizeConstraint{Min: size}
	c.Max.Width = &w
	c.Max.Height = &h
	return c
}

// Loose returns a SizeConstraint with a zero minimum and the given maximum.
func Loose(max Size) SizeConstraint {
	w, h := max.Width, max.Height
	c := SizeConstraint{}
	c.Max.Width = &w
	c.Max.Height = &h
	return c
}
