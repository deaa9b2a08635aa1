package pacing

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jonathan/pitch-coach/internal/types"
)

// Speaker receives each live tip. A new tip supersedes the previous one
// immediately; playback of the prior tip should be pre-empted.
type Speaker func(tip types.CoachingTip)

// Session drives pace coaching for one active rehearsal. It guarantees at
// most one in-flight tip request at a time (overlapping triggers are
// dropped) and sequences tip application behind a monotonically increasing
// request number so a stale response never overwrites a fresher one.
type Session struct {
	coach   *Coach
	speaker Speaker

	mu       sync.Mutex
	state    State
	issued   uint64
	applied  uint64
	active   bool
	ctx      context.Context
	cancel   context.CancelFunc
	inflight *semaphore.Weighted
}

// NewSession creates a Session. The speaker callback stands in for the
// external speech-output collaborator; it is invoked from a goroutine.
func NewSession(coach *Coach, speaker Speaker) *Session {
	if speaker == nil {
		speaker = func(types.CoachingTip) {}
	}
	return &Session{
		coach:    coach,
		speaker:  speaker,
		inflight: semaphore.NewWeighted(1),
	}
}

// Start resets all pacer state unconditionally and activates the session.
func (s *Session) Start(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.state = NewState(now)
	s.issued = 0
	s.applied = 0
	s.active = true
}

// Stop deactivates the session and cancels any in-flight tip request.
// A result that still arrives is discarded, never spoken.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Observe feeds one transcript observation into the pacer and, when a tip is
// due and no request is outstanding, dispatches a coaching-tip request
// asynchronously.
func (s *Session) Observe(cumulativeWords int, transcript string, now time.Time) Decision {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return Decision{}
	}

	var decision Decision
	s.state, decision = Observe(s.state, cumulativeWords, now)

	if !decision.RequestTip || !s.inflight.TryAcquire(1) {
		s.mu.Unlock()
		return decision
	}

	s.issued++
	seq := s.issued
	ctx := s.ctx
	s.mu.Unlock()

	go s.dispatch(ctx, seq, transcript, decision.WPM)

	return decision
}

// Done returns a channel closed when the session is stopped. A session that
// was never started reports done immediately.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return s.ctx.Done()
}

// WPM returns the current smoothed words-per-minute estimate.
func (s *Session) WPM() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.WPM
}

func (s *Session) dispatch(ctx context.Context, seq uint64, transcript string, wpm int) {
	tip := s.coach.RequestTip(ctx, transcript, wpm)
	s.apply(ctx, seq, tip)
	s.inflight.Release(1)
}

// apply delivers a tip response if it is still the freshest one issued and
// the session has not been stopped since the request went out.
func (s *Session) apply(ctx context.Context, seq uint64, tip types.CoachingTip) {
	s.mu.Lock()
	if ctx.Err() != nil || !s.active || seq < s.issued || seq <= s.applied {
		s.mu.Unlock()
		return
	}
	s.applied = seq
	speaker := s.speaker
	s.mu.Unlock()

	speaker(tip)
}
