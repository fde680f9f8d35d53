package palette

import (
	"time"

	"rayline/internal/bridge"
)

// Scheduler runs fn on the controller's thread once d has elapsed. The
// returned stop func prevents fn from running if it has not run yet.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (stop func())
}

// DispatchScheduler waits on a timer and hands fn to Dispatch, so the
// callback lands on the same thread as bridge traffic.
type DispatchScheduler struct {
	Dispatch bridge.Dispatcher
}

// AfterFunc implements Scheduler.
func (s DispatchScheduler) AfterFunc(d time.Duration, fn func()) func() {
	dispatch := s.Dispatch
	if dispatch == nil {
		dispatch = bridge.Immediate
	}

	// stopped is only touched on the controller thread: by stop, and by the
	// dispatched wrapper.
	stopped := false
	timer := time.AfterFunc(d, func() {
		dispatch(func() {
			if !stopped {
				fn()
			}
		})
	})
	return func() {
		stopped = true
		timer.Stop()
	}
}
