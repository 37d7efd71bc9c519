package spin

import (
	"io"
	"log"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/thruflo/whirl/internal/logging"
)

func TestControllerAddRemove(t *testing.T) {
	c := NewController(time.Hour)
	s := New("a", WithController(c), WithDisplay(NewDisplay(&safeBuffer{}, noWidth)))

	c.Add(s)
	c.mu.Lock()
	assert.Len(t, c.spinners, 1)
	c.mu.Unlock()

	c.Remove(s)
	c.mu.Lock()
	assert.Empty(t, c.spinners)
	c.mu.Unlock()
}

func TestControllerTicksActiveSpinners(t *testing.T) {
	buf := &safeBuffer{}
	d := NewDisplay(buf, noWidth)
	c := NewController(5 * time.Millisecond)

	s := New("work", WithDisplay(d), WithController(c))
	s.Start()
	initial := buf.Len()

	time.Sleep(60 * time.Millisecond)
	assert.Greater(t, buf.Len(), initial, "controller should keep pushing frames")

	s.Stop(true)
}

func TestControllerStopsWritingAfterLastSpinner(t *testing.T) {
	buf := &safeBuffer{}
	d := NewDisplay(buf, noWidth)
	c := NewController(2 * time.Millisecond)

	s := New("solo", WithDisplay(d), WithController(c))
	s.Start()
	time.Sleep(20 * time.Millisecond)
	s.Stop(true)

	n := buf.Len()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, buf.Len())
}

func TestControllerSurvivesPanickingTick(t *testing.T) {
	logging.SetOutput(log.New(io.Discard, "", 0))

	c := NewController(2 * time.Millisecond)

	// The bad spinner's display panics on every redraw after the initial
	// registration.
	var widthCalls int32
	badDisplay := NewDisplay(&safeBuffer{}, func() int {
		if atomic.AddInt32(&widthCalls, 1) > 1 {
			panic("width probe failed")
		}
		return 0
	})
	bad := New("bad", WithDisplay(badDisplay), WithController(c))

	goodBuf := &safeBuffer{}
	good := New("good", WithDisplay(NewDisplay(goodBuf, noWidth)), WithController(c))

	bad.Start()
	good.Start()

	time.Sleep(40 * time.Millisecond)
	n := goodBuf.Len()
	time.Sleep(40 * time.Millisecond)
	assert.Greater(t, goodBuf.Len(), n, "render loop must outlive a panicking tick")

	c.Remove(bad)
	good.Stop(true)
}
