// Package host provides the frame clock and interval timer a fireworks
// controller runs on.
//
// Scheduler does no timing of its own. The host loop (ebiten's Update, a
// terminal ticker) calls Advance with the elapsed time and RunFrames once per
// repaint, so every callback runs on the host loop's goroutine.
package host

import (
	"time"

	"github.com/decker502/heartworks/pkg/fireworks"
)

type frameRequest struct {
	id fireworks.FrameHandle
	fn func()
}

type intervalTimer struct {
	id       fireworks.TimerHandle
	interval time.Duration
	next     time.Duration
	fn       func()
}

// Scheduler implements fireworks.FrameScheduler and fireworks.IntervalScheduler.
type Scheduler struct {
	now    time.Duration
	nextID uint64

	frames  []frameRequest
	running []frameRequest
	timers  []*intervalTimer
}

// NewScheduler creates a scheduler with its clock at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) newID() uint64 {
	s.nextID++
	return s.nextID
}

// Now returns the scheduler clock.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// RequestFrame queues fn for the next RunFrames call.
func (s *Scheduler) RequestFrame(fn func()) fireworks.FrameHandle {
	id := fireworks.FrameHandle(s.newID())
	s.frames = append(s.frames, frameRequest{id: id, fn: fn})
	return id
}

// CancelFrame drops a frame request, including one queued in the batch
// RunFrames is currently running.
func (s *Scheduler) CancelFrame(h fireworks.FrameHandle) {
	for i := range s.running {
		if s.running[i].id == h {
			s.running[i].fn = nil
			return
		}
	}
	for i, f := range s.frames {
		if f.id == h {
			s.frames = append(s.frames[:i], s.frames[i+1:]...)
			return
		}
	}
}

// PendingFrames returns the number of queued frame requests.
func (s *Scheduler) PendingFrames() int {
	return len(s.frames)
}

// RunFrames runs every frame request queued before the call and returns how
// many ran. Requests made by those callbacks wait for the next call.
func (s *Scheduler) RunFrames() int {
	s.running = s.frames
	s.frames = nil

	ran := 0
	for i := range s.running {
		fn := s.running[i].fn
		if fn == nil {
			continue
		}
		s.running[i].fn = nil
		fn()
		ran++
	}
	s.running = nil
	return ran
}

// Every starts a timer firing fn each interval of scheduler time.
// Intervals <= 0 are rejected with a zero handle.
func (s *Scheduler) Every(interval time.Duration, fn func()) fireworks.TimerHandle {
	if interval <= 0 {
		return 0
	}
	id := fireworks.TimerHandle(s.newID())
	s.timers = append(s.timers, &intervalTimer{
		id:       id,
		interval: interval,
		next:     s.now + interval,
		fn:       fn,
	})
	return id
}

// CancelTimer stops a timer. Cancelling from inside its own callback is allowed.
func (s *Scheduler) CancelTimer(h fireworks.TimerHandle) {
	for i, t := range s.timers {
		if t.id == h {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

// ActiveTimers returns the number of running timers.
func (s *Scheduler) ActiveTimers() int {
	return len(s.timers)
}

// Advance moves the clock forward by d and fires due timers in deadline
// order. A timer that missed several intervals fires once per interval.
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := s.now + d

	for {
		t := s.earliestDue(target)
		if t == nil {
			break
		}
		s.now = t.next
		t.next += t.interval
		t.fn()
	}
	s.now = target
}

func (s *Scheduler) earliestDue(target time.Duration) *intervalTimer {
	var best *intervalTimer
	for _, t := range s.timers {
		if t.next > target {
			continue
		}
		if best == nil || t.next < best.next {
			best = t
		}
	}
	return best
}
