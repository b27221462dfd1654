package cellterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jumpProbe struct{ name string }

func (p *jumpProbe) Draw(ctx *DrawContext) *Surface { return nil }

func TestCollectJumpTargetsAssignsShortLabelsInTreeOrder(t *testing.T) {
	a := &jumpProbe{name: "a"}
	b := &jumpProbe{name: "b"}
	c := &jumpProbe{name: "c"}

	root := &Surface{Widget: IdentityOf(a), Size: Size{Width: 20, Height: 10}, JumpTarget: true}
	child1 := &Surface{Widget: IdentityOf(b), Size: Size{Width: 4, Height: 4}, JumpTarget: true}
	child2 := &Surface{Widget: IdentityOf(c), Size: Size{Width: 4, Height: 4}}
	root.AddChild(Origin{Col: 2, Row: 1}, 0, child1)
	root.AddChild(Origin{Col: 10, Row: 1}, 0, child2)

	labels := CollectJumpTargets(root)

	require.Len(t, labels, 2)
	assert.Equal(t, "a", labels[0].Label)
	assert.True(t, labels[0].Widget.Equal(IdentityOf(a)))
	assert.Equal(t, 0, labels[0].Col)
	assert.Equal(t, 0, labels[0].Row)

	assert.Equal(t, "b", labels[1].Label)
	assert.True(t, labels[1].Widget.Equal(IdentityOf(b)))
	assert.Equal(t, 2, labels[1].Col)
	assert.Equal(t, 1, labels[1].Row)
}

func TestJumpLabelForIsBijectiveBase26(t *testing.T) {
	assert.Equal(t, "a", jumpLabelFor(0))
	assert.Equal(t, "z", jumpLabelFor(25))
	assert.Equal(t, "aa", jumpLabelFor(26))
	assert.Equal(t, "az", jumpLabelFor(51))
	assert.Equal(t, "ba", jumpLabelFor(52))
}

func TestFindJumpTargetLooksUpByLabel(t *testing.T) {
	a := &jumpProbe{name: "a"}
	root := &Surface{Widget: IdentityOf(a), Size: Size{Width: 5, Height: 5}, JumpTarget: true}

	labels := CollectJumpTargets(root)
	found, ok := FindJumpTarget(labels, "a")
	require.True(t, ok)
	assert.True(t, found.Widget.Equal(IdentityOf(a)))

	_, ok = FindJumpTarget(labels, "zz")
	assert.False(t, ok)
}
