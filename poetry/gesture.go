/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package poetry

import "time"

// PressDuration separates a touch that is about to drag from a tap. A move
// that arrives sooner is a drag; once it has elapsed the touch is a tap.
const PressDuration = 300 * time.Millisecond

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. Callbacks must be delivered on the same
// goroutine that drives the Controller.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, f func()) Timer

func (fn SchedulerFunc) AfterFunc(d time.Duration, f func()) Timer {
	return fn(d, f)
}

type gestureState int

const (
	gesturePending gestureState = iota
	gestureTap
	gestureDrag
)

func (s gestureState) String() string {
	switch s {
	case gesturePending:
		return "pending"
	case gestureTap:
		return "tap"
	case gestureDrag:
		return "drag"
	}
	return "unknown"
}

// gesture classifies a single touch. It owns the press timer and must be
// stopped on every way out of the touch.
type gesture struct {
	state gestureState
	timer Timer
}

func (g *gesture) classify(s gestureState) {
	g.stop()
	g.state = s
}

func (g *gesture) stop() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}
