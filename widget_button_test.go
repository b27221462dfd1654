package cellterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtonActivatesOnEnterAndSpace(t *testing.T) {
	b := NewButton("OK")
	calls := 0
	b.OnActivate(func(ctx *EventContext, btn *Button) { calls++ })

	ctx := &EventContext{}
	b.HandleEvent(ctx, Event{Kind: EventKeyPress, Key: Key{Func: FuncKeyEnter}})
	assert.Equal(t, 1, calls)
	assert.True(t, ctx.Consumed)

	ctx = &EventContext{}
	b.HandleEvent(ctx, Event{Kind: EventKeyPress, Key: Key{Codepoint: ' '}})
	assert.Equal(t, 2, calls)
}

func TestButtonActivatesOnLeftClickAndRequestsFocus(t *testing.T) {
	b := NewButton("OK")
	calls := 0
	b.OnActivate(func(ctx *EventContext, btn *Button) { calls++ })

	ctx := &EventContext{}
	b.HandleEvent(ctx, Event{Kind: EventMouse, Mouse: Mouse{Type: MousePress, Button: MouseLeft}})

	assert.Equal(t, 1, calls)
	cmds := ctx.drainCommands()
	require.NotEmpty(t, cmds)
	assert.Equal(t, CmdRequestFocus, cmds[0].Kind)
	assert.True(t, cmds[0].Widget.Equal(IdentityOf(b)))
}

func TestButtonOnActivateReceivesEventContextForFurtherCommands(t *testing.T) {
	b := NewButton("Quit")
	var quitRequested bool
	b.OnActivate(func(ctx *EventContext, btn *Button) {
		ctx.Quit()
		quitRequested = true
	})

	ctx := &EventContext{}
	b.HandleEvent(ctx, Event{Kind: EventKeyPress, Key: Key{Func: FuncKeyEnter}})

	require.True(t, quitRequested)
	cmds := ctx.drainCommands()
	require.Len(t, cmds, 1)
	assert.Equal(t, CmdQuit, cmds[0].Kind)
}

func TestButtonTracksFocusAndHoverState(t *testing.T) {
	b := NewButton("OK")
	ctx := &EventContext{}

	b.HandleEvent(ctx, Event{Kind: EventFocusIn})
	assert.True(t, b.focused)

	b.HandleEvent(ctx, Event{Kind: EventFocusOut})
	assert.False(t, b.focused)

	b.HandleEvent(ctx, Event{Kind: EventMouseEnter})
	assert.True(t, b.hovered)

	b.HandleEvent(ctx, Event{Kind: EventMouseLeave})
	assert.False(t, b.hovered)
}

func TestButtonDrawPadsLabelWithOneCellEachSide(t *testing.T) {
	b := NewButton("Hi")
	arena := NewFrame(2)
	unicode := &UnicodeState{WidthMethod: WidthWcwidth}
	ctx := &DrawContext{Arena: arena, Constraint: SizeConstraint{}, Unicode: unicode}

	s := b.Draw(ctx)
	assert.Equal(t, len("Hi")+2, s.Size.Width)
	assert.Equal(t, 1, s.Size.Height)
}
