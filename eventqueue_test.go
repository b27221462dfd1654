package cellterm

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueuePushPopFIFO(t *testing.T) {
	q := NewEventQueue(4)
	q.Push(Event{Kind: EventTick, Tick: TickEvent{DeadlineMS: 1}})
	q.Push(Event{Kind: EventTick, Tick: TickEvent{DeadlineMS: 2}})

	ev, ok := q.Pop()
	require.True(t, ok)
	assert.EqualValues(t, 1, ev.Tick.DeadlineMS)

	ev, ok = q.Pop()
	require.True(t, ok)
	assert.EqualValues(t, 2, ev.Tick.DeadlineMS)
}

func TestEventQueueTryPushFullReturnsFalse(t *testing.T) {
	q := NewEventQueue(2)
	assert.True(t, q.TryPush(Event{Kind: EventInit}))
	assert.True(t, q.TryPush(Event{Kind: EventInit}))
	assert.False(t, q.TryPush(Event{Kind: EventInit}))
	assert.Equal(t, 2, q.Len())
}

func TestEventQueueTryPopEmptyReturnsFalse(t *testing.T) {
	q := NewEventQueue(2)
	_, ok := q.TryPop()
	assert.False(t, ok)
}

func TestEventQueueWrapsAroundRing(t *testing.T) {
	q := NewEventQueue(3)
	for round := 0; round < 5; round++ {
		for i := 0; i < 3; i++ {
			assert.True(t, q.TryPush(Event{Kind: EventTick, Tick: TickEvent{DeadlineMS: int64(round*3 + i)}}))
		}
		for i := 0; i < 3; i++ {
			ev, ok := q.TryPop()
			require.True(t, ok)
			assert.EqualValues(t, round*3+i, ev.Tick.DeadlineMS)
		}
	}
}

func TestEventQueueLockUnlockDrain(t *testing.T) {
	q := NewEventQueue(4)
	q.Push(Event{Kind: EventInit})
	q.Push(Event{Kind: EventWinsize})

	q.Lock()
	var drained []Event
	for {
		ev, ok := q.Drain()
		if !ok {
			break
		}
		drained = append(drained, ev)
	}
	q.Unlock()

	require.Len(t, drained, 2)
	assert.Equal(t, EventInit, drained[0].Kind)
	assert.Equal(t, EventWinsize, drained[1].Kind)
}

func TestEventQueuePushBlocksUntilRoom(t *testing.T) {
	q := NewEventQueue(1)
	q.Push(Event{Kind: EventInit})

	var wg sync.WaitGroup
	wg.Add(1)
	pushed := make(chan struct{})
	go func() {
		defer wg.Done()
		q.Push(Event{Kind: EventWinsize})
		close(pushed)
	}()

	select {
	case <-pushed:
		t.Fatal("Push on a full queue returned before room was made")
	case <-time.After(20 * time.Millisecond):
	}

	_, ok := q.Pop()
	require.True(t, ok)

	select {
	case <-pushed:
	case <-time.After(time.Second):
		t.Fatal("blocked Push never unblocked after Pop freed a slot")
	}
	wg.Wait()
}

func TestEventQueueCloseWakesBlockedPop(t *testing.T) {
	q := NewEventQueue(1)
	done := make(chan struct{})
	go func() {
		_, ok := q.Pop()
		assert.False(t, ok)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	q.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close never woke a blocked Pop")
	}
}
