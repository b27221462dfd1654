package cellterm

// Attribute is a bitset of boolean text attributes.
type Attribute uint16

const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrBlink
	AttrReverse
	AttrInvisible
	AttrStrikethrough
)

// Has reports whether a contains attr.
func (a Attribute) Has(attr Attribute) bool { return a&attr != 0 }

// With returns a with attr set.
func (a Attribute) With(attr Attribute) Attribute { return a | attr }

// Without returns a with attr cleared.
func (a Attribute) Without(attr Attribute) Attribute { return a &^ attr }

// UnderlineKind distinguishes the SGR underline variants a style may carry;
// the zero value means "no underline".
type UnderlineKind uint8

const (
	UnderlineNone UnderlineKind = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// Style is the full set of rendering attributes for a Cell.
type Style struct {
	FG        Color
	BG        Color
	UnderlineColor Color // optional; Mode == ColorDefault means "use FG"
	Underline UnderlineKind
	Attr      Attribute

	// URL and URLID carry an OSC 8 hyperlink target and its per-link id
	// (distinct links with identical URLs still get distinct ids so the
	// renderer can tell adjacent links apart when deciding to close one
	// hyperlink span and open the next).
	URL   string
	URLID uint32
}

// DefaultStyle returns a style with default colors, no underline, and no
// attributes set.
func DefaultStyle() Style {
	return Style{FG: DefaultColor(), BG: DefaultColor()}
}

// Foreground returns s with FG replaced.
func (s Style) Foreground(c Color) Style { s.FG = c; return s }

// Background returns s with BG replaced.
func (s Style) Background(c Color) Style { s.BG = c; return s }

// WithUnderline returns s with the given underline kind and color.
func (s Style) WithUnderline(kind UnderlineKind, c Color) Style {
	s.Underline = kind
	s.UnderlineColor = c
	return s
}

// Bold returns s with AttrBold set.
func (s Style) Bold() Style { s.Attr = s.Attr.With(AttrBold); return s }

// Dim returns s with AttrDim set.
func (s Style) Dim() Style { s.Attr = s.Attr.With(AttrDim); return s }

// Italic returns s with AttrItalic set.
func (s Style) Italic() Style { s.Attr = s.Attr.With(AttrItalic); return s }

// Blink returns s with AttrBlink set.
func (s Style) Blink() Style { s.Attr = s.Attr.With(AttrBlink); return s }

// Reverse returns s with AttrReverse set.
func (s Style) Reverse() Style { s.Attr = s.Attr.With(AttrReverse); return s }

// Invisible returns s with AttrInvisible set.
func (s Style) Invisible() Style { s.Attr = s.Attr.With(AttrInvisible); return s }

// Strikethrough returns s with AttrStrikethrough set.
func (s Style) Strikethrough() Style { s.Attr = s.Attr.With(AttrStrikethrough); return s }

// Hyperlink returns s carrying an OSC 8 target and link id.
func (s Style) Hyperlink(url string, id uint32) Style {
	s.URL = url
	s.URLID = id
	return s
}

// Equal reports whether two styles are identical in every field relevant to
// rendering. Used by the diff renderer to decide whether a style delta must
// be emitted between adjacent cells.
func (s Style) Equal(other Style) bool {
	return s.FG == other.FG &&
		s.BG == other.BG &&
		s.UnderlineColor == other.UnderlineColor &&
		s.Underline == other.Underline &&
		s.Attr == other.Attr &&
		s.URL == other.URL &&
		s.URLID == other.URLID
}
