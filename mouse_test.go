package cellterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mouseProbe struct {
	name  string
	trace *[]string
}

func (m *mouseProbe) Draw(ctx *DrawContext) *Surface { return nil }
func (m *mouseProbe) HandleEvent(ctx *EventContext, ev Event) {
	*m.trace = append(*m.trace, mouseEventLabel(ev.Kind)+":"+m.name)
}

func mouseEventLabel(k EventKind) string {
	switch k {
	case EventMouseEnter:
		return "enter"
	case EventMouseLeave:
		return "leave"
	case EventMouse:
		return "mouse"
	default:
		return "other"
	}
}

func TestHitTestFindsDeepestWidgetAtPoint(t *testing.T) {
	var trace []string
	outer := &mouseProbe{name: "outer", trace: &trace}
	inner := &mouseProbe{name: "inner", trace: &trace}

	root := &Surface{Widget: IdentityOf(outer), Size: Size{Width: 10, Height: 10}}
	child := &Surface{Widget: IdentityOf(inner), Size: Size{Width: 4, Height: 4}}
	root.AddChild(Origin{Col: 2, Row: 2}, 0, child)

	hits := HitTest(root, 3, 3)
	require.Len(t, hits, 2)
	assert.True(t, hits[0].Widget.Equal(IdentityOf(outer)))
	assert.True(t, hits[1].Widget.Equal(IdentityOf(inner)))
	assert.Equal(t, Origin{Col: 1, Row: 1}, hits[1].Local)
}

func TestHitTestOutsideBoundsReturnsNil(t *testing.T) {
	root := &Surface{Size: Size{Width: 5, Height: 5}}
	assert.Nil(t, HitTest(root, 10, 10))
}

func TestHitTestPrefersHigherZIndexOnOverlap(t *testing.T) {
	low := &mouseProbe{name: "low"}
	high := &mouseProbe{name: "high"}

	root := &Surface{Size: Size{Width: 10, Height: 10}}
	lowS := &Surface{Widget: IdentityOf(low), Size: Size{Width: 5, Height: 5}}
	highS := &Surface{Widget: IdentityOf(high), Size: Size{Width: 5, Height: 5}}
	root.AddChild(Origin{}, 0, lowS)
	root.AddChild(Origin{}, 1, highS)

	hits := HitTest(root, 2, 2)
	require.Len(t, hits, 1)
	assert.True(t, hits[0].Widget.Equal(IdentityOf(high)))
}

func TestMouseRouterEmitsEnterAndLeaveOnTransition(t *testing.T) {
	var trace []string
	a := &mouseProbe{name: "a", trace: &trace}
	b := &mouseProbe{name: "b", trace: &trace}

	root := &Surface{Size: Size{Width: 10, Height: 10}}
	aS := &Surface{Widget: IdentityOf(a), Size: Size{Width: 5, Height: 5}}
	bS := &Surface{Widget: IdentityOf(b), Size: Size{Width: 5, Height: 5}}
	root.AddChild(Origin{Col: 0, Row: 0}, 0, aS)
	root.AddChild(Origin{Col: 5, Row: 0}, 0, bS)

	router := NewMouseRouter()
	router.Route(root, Mouse{Col: 1, Row: 1, Type: MouseMotion})
	assert.Equal(t, []string{"enter:a", "mouse:a"}, trace)

	trace = nil
	router.Route(root, Mouse{Col: 6, Row: 1, Type: MouseMotion})
	assert.Equal(t, []string{"leave:a", "enter:b", "mouse:b"}, trace)
}

func TestMouseRouterTracksLastPosition(t *testing.T) {
	router := NewMouseRouter()
	_, ok := router.lastPosition()
	assert.False(t, ok)

	root := &Surface{Size: Size{Width: 10, Height: 10}}
	router.Route(root, Mouse{Col: 3, Row: 4, Type: MouseMotion})

	pos, ok := router.lastPosition()
	require.True(t, ok)
	assert.Equal(t, 3, pos.Col)
	assert.Equal(t, 4, pos.Row)
}
