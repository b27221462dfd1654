package cellterm

// Text is a read-only text widget exercising the soft-wrap layout engine:
// it measures its content against the offered constraint, wraps it, and
// drops any lines past max.height. With OverflowEllipsis a drawn line still
// wider than the widget ends in an ellipsis; dropped lines are not marked.
type Text struct {
	Content  []byte
	Style    Style
	Basis    WidthBasis
	Overflow OverflowPolicy
}

// NewText returns a Text widget over the given UTF-8 content.
func NewText(content string) *Text {
	return &Text{Content: []byte(content)}
}

// Draw implements Widget.
func (t *Text) Draw(ctx *DrawContext) *Surface {
	maxWidth := ctx.Constraint.MaxWidthOr(-1)
	width := maxWidth
	if t.Basis == WidthLongestLine || maxWidth < 0 {
		width = MeasureWidth(t.Content, ctx.Unicode, maxWidth, ctx.Constraint.Min.Width)
	}
	if width < 1 {
		width = 1
	}

	maxHeight := ctx.Constraint.MaxHeightOr(-1)

	s := ctx.Arena.Alloc()
	s.Widget = IdentityOf(t)

	var lines []WrapLine
	it := NewSoftwrapIterator(t.Content, ctx.Unicode, width)
	for {
		line, ok := it.Next()
		if !ok {
			break
		}
		if maxHeight >= 0 && len(lines) >= maxHeight {
			break
		}
		lines = append(lines, line)
	}

	height := len(lines)
	if height < ctx.Constraint.Min.Height {
		height = ctx.Constraint.Min.Height
	}
	if height == 0 {
		height = 1
	}

	s.Size = Size{Width: width, Height: height}
	s.InitCells()

	for row, line := range lines {
		if t.Overflow == OverflowEllipsis && line.Width > width {
			line = ApplyEllipsis(line, width)
		}
		col := 0
		for _, c := range line.Cells {
			if col+c.width > width {
				break
			}
			s.WriteCell(col, row, NewCell(c.grapheme, uint8(c.width), t.Style))
			col += c.width
		}
	}
	return s
}
