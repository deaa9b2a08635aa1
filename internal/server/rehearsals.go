package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/pitch-coach/internal/pacing"
	"github.com/jonathan/pitch-coach/internal/types"
)

// Rehearsal is one live coaching session. Tips flow from the pacing session's
// speaker callback into a latest-wins channel consumed by the SSE stream.
type Rehearsal struct {
	ID        string
	StartedAt time.Time

	session *pacing.Session
	tips    chan types.CoachingTip
}

// Observe feeds a transcript observation into the rehearsal's pacer.
func (r *Rehearsal) Observe(cumulativeWords int, transcript string, now time.Time) pacing.Decision {
	return r.session.Observe(cumulativeWords, transcript, now)
}

// Tips returns the live tip stream.
func (r *Rehearsal) Tips() <-chan types.CoachingTip {
	return r.tips
}

// Done reports session termination.
func (r *Rehearsal) Done() <-chan struct{} {
	return r.session.Done()
}

// deliver pushes a tip, superseding an undelivered previous tip. At most one
// tip is live at a time.
func (r *Rehearsal) deliver(tip types.CoachingTip) {
	for {
		select {
		case r.tips <- tip:
			return
		default:
		}
		select {
		case <-r.tips:
		default:
		}
	}
}

// RehearsalManager tracks active rehearsal sessions in memory. Nothing is
// persisted; sessions are discarded on stop.
type RehearsalManager struct {
	coach *pacing.Coach

	mu       sync.Mutex
	sessions map[string]*Rehearsal
}

// NewRehearsalManager creates an empty manager.
func NewRehearsalManager(coach *pacing.Coach) *RehearsalManager {
	return &RehearsalManager{
		coach:    coach,
		sessions: make(map[string]*Rehearsal),
	}
}

// Create starts a new rehearsal session.
func (m *RehearsalManager) Create(now time.Time) *Rehearsal {
	r := &Rehearsal{
		ID:        uuid.NewString(),
		StartedAt: now,
		tips:      make(chan types.CoachingTip, 1),
	}
	r.session = pacing.NewSession(m.coach, r.deliver)
	r.session.Start(now)

	m.mu.Lock()
	m.sessions[r.ID] = r
	m.mu.Unlock()

	return r
}

// Get looks up an active rehearsal.
func (m *RehearsalManager) Get(id string) (*Rehearsal, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.sessions[id]
	return r, ok
}

// Stop terminates a rehearsal and discards its state. In-flight tip results
// are invalidated, never delivered.
func (m *RehearsalManager) Stop(id string) bool {
	m.mu.Lock()
	r, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		r.session.Stop()
	}
	return ok
}
