package cellterm

import (
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openPTYPair returns the master and slave ends of a PTY, registering
// cleanup to close both. The slave is a real terminal device, so
// isatty.IsTerminal sees it the same way it would see a login shell's
// controlling terminal.
func openPTYPair(t *testing.T) (master, slave *os.File) {
	t.Helper()
	m, s, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = m.Close()
		_ = s.Close()
	})
	return m, s
}

func TestTTYOpenAcceptsARealPTYSlave(t *testing.T) {
	_, slave := openPTYPair(t)
	tty, err := Open(slave)
	require.NoError(t, err)
	assert.NotNil(t, tty)
}

func TestTTYOpenRejectsANonTTY(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	_, err = Open(w)
	assert.ErrorIs(t, err, ErrNotATTY)
}

func TestTTYInitAndDeinitRoundTripRawMode(t *testing.T) {
	_, slave := openPTYPair(t)
	tty, err := Open(slave)
	require.NoError(t, err)

	require.NoError(t, tty.Init(ModeFullscreen))
	require.NoError(t, tty.Deinit())
}

func TestTTYRunDeliversKeyPressesThroughTheQueue(t *testing.T) {
	master, slave := openPTYPair(t)
	tty, err := Open(slave)
	require.NoError(t, err)
	require.NoError(t, tty.Init(ModeInline))
	defer tty.Deinit()

	caps := SeedCapabilities()
	cache := newGraphemeCache()
	parser := NewParser(caps, cache)
	queue := NewEventQueue(16)

	require.NoError(t, tty.Run(queue, parser))
	defer tty.Stop()

	_, err = master.WriteString("a")
	require.NoError(t, err)

	ev, ok := waitForEvent(queue, time.Second)
	require.True(t, ok)
	assert.Equal(t, EventKeyPress, ev.Kind)
	assert.Equal(t, rune('a'), ev.Key.Codepoint)
}

func TestTTYStopUnblocksReaderPromptly(t *testing.T) {
	_, slave := openPTYPair(t)
	tty, err := Open(slave)
	require.NoError(t, err)
	require.NoError(t, tty.Init(ModeInline))
	defer tty.Deinit()

	caps := SeedCapabilities()
	parser := NewParser(caps, newGraphemeCache())
	queue := NewEventQueue(4)

	require.NoError(t, tty.Run(queue, parser))

	done := make(chan struct{})
	go func() {
		tty.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not unblock the reader goroutine in time")
	}
}

func waitForEvent(q *EventQueue, timeout time.Duration) (Event, bool) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if ev, ok := q.TryPop(); ok {
			return ev, true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return Event{}, false
}
