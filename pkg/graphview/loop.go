package graphview

import (
	"sync/atomic"
	"time"
)

// Loop is the per-frame driver: a cooperative timer loop that invokes one
// callback per frame until stopped. It checks its running flag every
// iteration instead of relying on any host frame-scheduling primitive, so a
// frame is never interrupted mid-tick and stop granularity is a whole frame.
type Loop struct {
	interval time.Duration
	onFrame  func()

	running atomic.Bool
	stop    chan struct{}
	done    chan struct{}
}

// NewLoop creates a loop that fires onFrame every interval once started.
func NewLoop(interval time.Duration, onFrame func()) *Loop {
	return &Loop{interval: interval, onFrame: onFrame}
}

// Start begins the loop. Starting an already-running loop is a no-op.
func (l *Loop) Start() {
	if !l.running.CompareAndSwap(false, true) {
		return
	}
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	// Pass the channels in: a quick Stop/Start restart swaps the struct
	// fields while the old goroutine is still draining.
	go l.run(l.stop, l.done)
}

// Stop halts the loop between frames. Safe to call repeatedly and from
// within the frame callback itself; the current frame always completes.
func (l *Loop) Stop() {
	if !l.running.CompareAndSwap(true, false) {
		return
	}
	close(l.stop)
}

// Running reports whether the loop is active.
func (l *Loop) Running() bool {
	return l.running.Load()
}

// Done returns a channel closed once the loop goroutine has exited. Nil
// before the first Start.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) run(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !l.running.Load() {
				return
			}
			l.onFrame()
		}
	}
}
