package cellterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFieldInsertAndCursorMotion(t *testing.T) {
	f := NewTextField()
	f.InsertSliceAtCursor([]byte("hello"))
	assert.Equal(t, []byte("hello"), f.ToOwnedSlice())
	assert.Equal(t, 5, f.cursor)

	f.CursorLeft()
	f.CursorLeft()
	assert.Equal(t, 3, f.cursor)

	f.CursorRight()
	assert.Equal(t, 4, f.cursor)
}

func TestTextFieldCursorMotionClampsAtEdges(t *testing.T) {
	f := NewTextField()
	f.CursorLeft() // no-op at start of an empty field
	assert.Equal(t, 0, f.cursor)

	f.InsertSliceAtCursor([]byte("ab"))
	f.CursorRight() // already at end
	assert.Equal(t, 2, f.cursor)
}

func TestTextFieldDeleteBeforeAndAfterCursor(t *testing.T) {
	f := NewTextField()
	f.InsertSliceAtCursor([]byte("hello"))
	f.DeleteBeforeCursor()
	assert.Equal(t, []byte("hell"), f.ToOwnedSlice())

	f.cursor = 0
	f.DeleteAfterCursor()
	assert.Equal(t, []byte("ell"), f.ToOwnedSlice())
}

func TestTextFieldDeleteToStartAndEnd(t *testing.T) {
	f := NewTextField()
	f.InsertSliceAtCursor([]byte("hello world"))
	f.cursor = 5
	f.DeleteToEnd()
	assert.Equal(t, []byte("hello"), f.ToOwnedSlice())

	f.cursor = 2
	f.DeleteToStart()
	assert.Equal(t, []byte("llo"), f.ToOwnedSlice())
	assert.Equal(t, 0, f.cursor)
}

func TestTextFieldWordwiseMotionAndDeletion(t *testing.T) {
	f := NewTextField()
	f.InsertSliceAtCursor([]byte("foo bar baz"))

	f.MoveBackwardWordwise()
	assert.Equal(t, len("foo bar "), f.cursor)

	f.MoveBackwardWordwise()
	assert.Equal(t, len("foo "), f.cursor)

	f.MoveForwardWordwise()
	assert.Equal(t, len("foo bar"), f.cursor)

	f.cursor = f.buf.Len()
	f.DeleteWordBefore()
	assert.Equal(t, []byte("foo bar "), f.ToOwnedSlice())
}

func TestTextFieldOnChangeFiresOnMutation(t *testing.T) {
	f := NewTextField()
	calls := 0
	f.OnChange(func(*TextField) { calls++ })

	f.InsertSliceAtCursor([]byte("x"))
	f.DeleteBeforeCursor()
	f.Clear()

	assert.Equal(t, 3, calls)
}

func TestTextFieldInsertKeepsMultiByteGraphemeIntact(t *testing.T) {
	f := NewTextField()
	f.InsertSliceAtCursor([]byte("é")) // U+00E9, 2 bytes
	require.Equal(t, 2, f.buf.Len())

	f.cursor = f.buf.Len()
	f.CursorLeft()
	assert.Equal(t, 0, f.cursor, "cursor must land before the whole cluster, not mid-byte")
}

func TestTextFieldHandleEventInsertsPrintableText(t *testing.T) {
	f := NewTextField()
	ctx := &EventContext{}
	f.HandleEvent(ctx, Event{Kind: EventKeyPress, Key: Key{Codepoint: 'a', Text: []byte("a")}})
	f.HandleEvent(ctx, Event{Kind: EventKeyPress, Key: Key{Codepoint: 'b', Text: []byte("b")}})

	assert.Equal(t, []byte("ab"), f.ToOwnedSlice())
	assert.True(t, ctx.Consumed)
}

func TestTextFieldHandleEventBackspaceAndCtrlBindings(t *testing.T) {
	f := NewTextField()
	f.InsertSliceAtCursor([]byte("hello"))

	ctx := &EventContext{}
	f.HandleEvent(ctx, Event{Kind: EventKeyPress, Key: Key{Func: FuncKeyBackspace}})
	assert.Equal(t, []byte("hell"), f.ToOwnedSlice())

	ctx = &EventContext{}
	f.HandleEvent(ctx, Event{Kind: EventKeyPress, Key: Key{Codepoint: 'u', Modifiers: ModCtrl}})
	assert.Empty(t, f.ToOwnedSlice())
}

func TestTextFieldDrawPublishesCursor(t *testing.T) {
	f := NewTextField()
	f.InsertSliceAtCursor([]byte("hi"))

	arena := NewFrame(4)
	unicode := &UnicodeState{WidthMethod: WidthWcwidth}
	ctx := &DrawContext{Arena: arena, Constraint: Tight(Size{Width: 10, Height: 1}), Unicode: unicode}

	s := f.Draw(ctx)
	require.NotNil(t, s.Cursor)
	assert.True(t, s.Cursor.Visible)
	assert.Equal(t, CursorBar, s.Cursor.Shape)
	assert.Equal(t, 2, s.Cursor.Col)
}
