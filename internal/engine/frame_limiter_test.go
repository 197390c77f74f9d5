package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t     time.Time
	slept []time.Duration
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
}

func newTestLimiter(fps int) (*FrameLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	fl := NewFrameLimiter(fps)
	fl.now, fl.sleep = clock.now, clock.sleep
	return fl, clock
}

func TestFrameLimiterSleepsRemainder(t *testing.T) {
	fl, clock := newTestLimiter(50)
	assert.Equal(t, 20*time.Millisecond, fl.FrameTime())

	clock.t = clock.t.Add(5 * time.Millisecond) // work
	fl.Wait()
	assert.Equal(t, []time.Duration{20 * time.Millisecond}, clock.slept, "first frame measures from its first Wait")

	clock.t = clock.t.Add(5 * time.Millisecond)
	fl.Wait()
	assert.Equal(t, 15*time.Millisecond, clock.slept[1])
}

func TestFrameLimiterOverrunDoesNotBurst(t *testing.T) {
	fl, clock := newTestLimiter(50)
	fl.Wait()

	clock.t = clock.t.Add(100 * time.Millisecond) // a long frame
	fl.Wait()
	assert.Len(t, clock.slept, 1, "no sleep after an overrun")

	clock.t = clock.t.Add(5 * time.Millisecond)
	fl.Wait()
	assert.Equal(t, 15*time.Millisecond, clock.slept[1], "schedule restarts from the overrun")
}

func TestFrameLimiterDefaultRate(t *testing.T) {
	assert.Equal(t, time.Second/60, NewFrameLimiter(0).FrameTime())
}
