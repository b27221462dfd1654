package cellterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// probeWidget is a minimal Widget+EventHandler+EventCapturer used to observe
// dispatch ordering; it is never actually drawn by these tests, only
// identified and routed to.
type probeWidget struct {
	name  string
	trace *[]string

	consumeOnCapture bool
	consumeOnHandle  bool
}

func (p *probeWidget) Draw(ctx *DrawContext) *Surface { return nil }

func (p *probeWidget) CaptureEvent(ctx *EventContext, ev Event) {
	*p.trace = append(*p.trace, "capture:"+p.name)
	if p.consumeOnCapture {
		ctx.Consume()
	}
}

func (p *probeWidget) HandleEvent(ctx *EventContext, ev Event) {
	*p.trace = append(*p.trace, "handle:"+p.name)
	if p.consumeOnHandle {
		ctx.Consume()
	}
}

func surfaceFor(w Widget) *Surface {
	return &Surface{Widget: IdentityOf(w)}
}

func TestDispatchPhasesOrderCaptureTargetBubble(t *testing.T) {
	var trace []string
	root := &probeWidget{name: "root", trace: &trace}
	mid := &probeWidget{name: "mid", trace: &trace}
	leaf := &probeWidget{name: "leaf", trace: &trace}

	path := []*Surface{surfaceFor(root), surfaceFor(mid), surfaceFor(leaf)}
	dispatchPhases(path, nil, Event{Kind: EventKeyPress})

	assert.Equal(t, []string{
		"capture:root",
		"capture:mid",
		"handle:leaf",
		"handle:mid",
		"handle:root",
	}, trace)
}

func TestDispatchPhasesStopsOnConsumeDuringCapture(t *testing.T) {
	var trace []string
	root := &probeWidget{name: "root", trace: &trace, consumeOnCapture: true}
	leaf := &probeWidget{name: "leaf", trace: &trace}

	path := []*Surface{surfaceFor(root), surfaceFor(leaf)}
	dispatchPhases(path, nil, Event{Kind: EventKeyPress})

	assert.Equal(t, []string{"capture:root"}, trace)
}

func TestDispatchPhasesStopsOnConsumeDuringBubble(t *testing.T) {
	var trace []string
	root := &probeWidget{name: "root", trace: &trace}
	mid := &probeWidget{name: "mid", trace: &trace, consumeOnHandle: true}
	leaf := &probeWidget{name: "leaf", trace: &trace}

	path := []*Surface{surfaceFor(root), surfaceFor(mid), surfaceFor(leaf)}
	dispatchPhases(path, nil, Event{Kind: EventKeyPress})

	assert.Equal(t, []string{"capture:root", "capture:mid", "handle:leaf", "handle:mid"}, trace)
}

func TestDispatchPhasesEmptyPathIsNoop(t *testing.T) {
	cmds := dispatchPhases(nil, nil, Event{Kind: EventKeyPress})
	assert.Nil(t, cmds)
}

func TestDispatchPhasesCollectsCommandsFromTarget(t *testing.T) {
	commandEmitter := &quitOnHandle{}
	path := []*Surface{surfaceFor(commandEmitter)}
	cmds := dispatchPhases(path, nil, Event{Kind: EventKeyPress})
	require.Len(t, cmds, 1)
	assert.Equal(t, CmdQuit, cmds[0].Kind)
}

type quitOnHandle struct{}

func (q *quitOnHandle) Draw(ctx *DrawContext) *Surface { return nil }
func (q *quitOnHandle) HandleEvent(ctx *EventContext, ev Event) {
	ctx.Quit()
}
