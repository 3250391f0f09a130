package mcts

import (
	"time"
)

type _Timer struct {
	start    time.Time
	duration time.Duration
}

// Budget is in seconds, negative means no time bound.
func _NewTimer(seconds float64) *_Timer {
	t := &_Timer{start: time.Now(), duration: -1}
	if seconds >= 0 {
		t.duration = time.Duration(seconds * float64(time.Second))
	}
	return t
}

// Check if this timer has ended
func (t *_Timer) IsEnd() bool {
	return t.duration >= 0 && time.Since(t.start) >= t.duration
}

func (t *_Timer) IsSet() bool {
	return t.duration >= 0
}

// Set the 'start' as now
func (t *_Timer) Reset() {
	t.start = time.Now()
}

func (t *_Timer) Deltatime() time.Duration {
	return time.Since(t.start)
}
