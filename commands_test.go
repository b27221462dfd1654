package cellterm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandExecutorQuitRequestedIsEdgeTriggered(t *testing.T) {
	var out bytes.Buffer
	e := NewCommandExecutor(&out, NewScreen(10, 5))

	e.Execute([]Command{{Kind: CmdQuit}}, 0)
	assert.True(t, e.QuitRequested())
	assert.False(t, e.QuitRequested(), "QuitRequested must clear the flag once read")
}

func TestCommandExecutorFocusRequestIsLastOneWins(t *testing.T) {
	var out bytes.Buffer
	e := NewCommandExecutor(&out, NewScreen(10, 5))

	first := WidgetID{}
	second := IdentityOf(&Text{})
	_, got, ok := e.Execute([]Command{
		{Kind: CmdRequestFocus, Widget: first},
		{Kind: CmdRequestFocus, Widget: second},
	}, 0)

	require.True(t, ok)
	assert.True(t, got.Equal(second))
}

func TestCommandExecutorQueueRefreshRequestsRedraw(t *testing.T) {
	var out bytes.Buffer
	redraw, _, _ := NewCommandExecutor(&out, NewScreen(10, 5)).Execute([]Command{{Kind: CmdQueueRefresh}}, 0)
	assert.True(t, redraw)
}

func TestCommandExecutorSetTitleWritesOSC(t *testing.T) {
	var out bytes.Buffer
	e := NewCommandExecutor(&out, NewScreen(10, 5))
	e.Execute([]Command{{Kind: CmdSetTitle, Title: []byte("demo")}}, 0)
	assert.Equal(t, "\x1b]0;demo\x07", out.String())
}

func TestCommandExecutorQueryColorEncodesKind(t *testing.T) {
	var out bytes.Buffer
	e := NewCommandExecutor(&out, NewScreen(10, 5))
	e.Execute([]Command{{Kind: CmdQueryColor, ColorKind: ColorCursor}}, 0)
	assert.Equal(t, "\x1b]12;?\x07", out.String())
}

func TestCommandExecutorPopExpiredTimersSortsByDeadline(t *testing.T) {
	var out bytes.Buffer
	e := NewCommandExecutor(&out, NewScreen(10, 5))
	e.Execute([]Command{
		{Kind: CmdTick, DeadlineMS: 30},
		{Kind: CmdTick, DeadlineMS: 10},
		{Kind: CmdTick, DeadlineMS: 20},
	}, 0)

	fired := e.PopExpiredTimers(25)
	require.Len(t, fired, 2)
	assert.Equal(t, int64(10), fired[0].deadlineMS)
	assert.Equal(t, int64(20), fired[1].deadlineMS)

	remaining := e.PopExpiredTimers(100)
	require.Len(t, remaining, 1)
	assert.Equal(t, int64(30), remaining[0].deadlineMS)
}

func TestEventContextPushedCommandsDrainOnce(t *testing.T) {
	ctx := &EventContext{}
	ctx.SetTitle([]byte("a"))
	ctx.Quit()

	cmds := ctx.drainCommands()
	require.Len(t, cmds, 2)
	assert.Equal(t, CmdSetTitle, cmds[0].Kind)
	assert.Equal(t, CmdQuit, cmds[1].Kind)
	assert.Empty(t, ctx.drainCommands())
}
