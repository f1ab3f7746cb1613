package timer

import (
	"log"
	"time"
)

// SlowThreshold is the duration above which Track reports an operation.
var SlowThreshold = 200 * time.Millisecond

// Track returns a function that, when executed, logs the duration if the
// operation was slow.
// Usage: defer timer.Track("clients.List")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		if d := time.Since(start); d > SlowThreshold {
			log.Printf("[SLOW] %s took %v", name, d)
		}
	}
}

// Stopwatch measures the steps of a longer job such as a reminder sweep.
type Stopwatch struct {
	name  string
	start time.Time
	last  time.Time
	laps  int
}

// NewStopwatch starts the clock.
func NewStopwatch(name string) *Stopwatch {
	now := time.Now()
	return &Stopwatch{name: name, start: now, last: now}
}

// Lap records a finished step and returns its duration.
func (s *Stopwatch) Lap() time.Duration {
	now := time.Now()
	elapsed := now.Sub(s.last)
	s.last = now
	s.laps++
	return elapsed
}

// Total logs the number of steps and the total time since the start.
func (s *Stopwatch) Total() time.Duration {
	total := time.Since(s.start)
	log.Printf("[TIME] %s finished %d steps in %v", s.name, s.laps, total)
	return total
}
