package palette

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chanDispatcher queues dispatched funcs so the test goroutine runs them.
func chanDispatcher() (func(fn func()), chan func()) {
	ch := make(chan func(), 4)
	return func(fn func()) { ch <- fn }, ch
}

func TestDispatchSchedulerRunsOnDispatcher(t *testing.T) {
	dispatch, queue := chanDispatcher()
	s := DispatchScheduler{Dispatch: dispatch}

	ran := false
	s.AfterFunc(time.Millisecond, func() { ran = true })

	select {
	case fn := <-queue:
		assert.False(t, ran)
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled func was never dispatched")
	}
	assert.True(t, ran)
}

func TestDispatchSchedulerStop(t *testing.T) {
	dispatch, queue := chanDispatcher()
	s := DispatchScheduler{Dispatch: dispatch}

	ran := false
	stop := s.AfterFunc(time.Millisecond, func() { ran = true })

	// Let the timer fire and queue the wrapper, then stop before running it
	var fn func()
	select {
	case fn = <-queue:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled func was never dispatched")
	}
	stop()
	require.NotNil(t, fn)
	fn()
	assert.False(t, ran)
}

func TestDispatchSchedulerStopBeforeTimer(t *testing.T) {
	dispatch, queue := chanDispatcher()
	s := DispatchScheduler{Dispatch: dispatch}

	stop := s.AfterFunc(time.Hour, func() {})
	stop()

	select {
	case <-queue:
		t.Fatal("stopped timer dispatched")
	case <-time.After(20 * time.Millisecond):
	}
}
