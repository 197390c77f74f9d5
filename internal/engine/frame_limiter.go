package engine

import "time"

// FrameLimiter caps the loop at a target rate by sleeping until the next
// frame boundary.
type FrameLimiter struct {
	frame time.Duration
	next  time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

func NewFrameLimiter(fps int) *FrameLimiter {
	if fps <= 0 {
		fps = 60
	}
	return &FrameLimiter{
		frame: time.Second / time.Duration(fps),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

func (fl *FrameLimiter) FrameTime() time.Duration {
	return fl.frame
}

// Wait blocks until the current frame's slot is over. A frame that overran
// restarts the schedule from now rather than bursting to catch up.
func (fl *FrameLimiter) Wait() {
	now := fl.now()
	if fl.next.IsZero() {
		fl.next = now
	}
	fl.next = fl.next.Add(fl.frame)
	if d := fl.next.Sub(now); d > 0 {
		fl.sleep(d)
		return
	}
	fl.next = now
}
