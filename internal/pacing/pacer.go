// Package pacing converts a live transcript stream into a smoothed
// words-per-minute metric and bounded-latency coaching tips.
package pacing

import (
	"math"
	"time"
)

// MinInterval is the minimum elapsed time between rate computations.
// Below it the previous WPM is retained to avoid noisy estimates from
// bursty transcript updates.
const MinInterval = 5 * time.Second

// State is the explicit pacer state threaded through each Observe call.
// It is reset unconditionally at recording start and discarded at stop.
type State struct {
	LastWordCount  int
	LastComputedAt time.Time
	WPM            int
	Started        bool
}

// Decision is the outcome of one observation.
type Decision struct {
	WPM        int
	RequestTip bool
}

// NewState returns a fresh pacer state anchored at now.
func NewState(now time.Time) State {
	return State{LastComputedAt: now, Started: true}
}

// Observe folds one (cumulative word count, timestamp) observation into the
// state. It is a pure function: input state + observation -> new state +
// decision. Two calls within MinInterval yield an unchanged WPM and no tip
// request. RequestTip is true exactly when a recomputation occurred and the
// resulting WPM is positive.
func Observe(s State, cumulativeWords int, now time.Time) (State, Decision) {
	if !s.Started {
		s = NewState(now)
		s.LastWordCount = cumulativeWords
		return s, Decision{}
	}

	elapsed := now.Sub(s.LastComputedAt)
	if elapsed < MinInterval {
		return s, Decision{WPM: s.WPM}
	}

	delta := cumulativeWords - s.LastWordCount
	if delta < 0 {
		delta = 0
	}

	wpm := int(math.Round(float64(delta) / elapsed.Minutes()))
	if wpm < 0 {
		wpm = 0
	}

	s.LastWordCount = cumulativeWords
	s.LastComputedAt = now
	s.WPM = wpm

	return s, Decision{WPM: wpm, RequestTip: wpm > 0}
}
