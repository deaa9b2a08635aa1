package pacing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/pitch-coach/internal/types"
)

func newTestSession(client *stubClient) (*Session, chan types.CoachingTip) {
	spoken := make(chan types.CoachingTip, 8)
	coach := NewCoach(client, time.Second)
	session := NewSession(coach, func(tip types.CoachingTip) { spoken <- tip })
	return session, spoken
}

func TestSession_DispatchesTipWhenDue(t *testing.T) {
	client := &stubClient{
		textFn: func(_ context.Context, _ string) (string, error) {
			return "Nice pace.", nil
		},
	}
	session, spoken := newTestSession(client)

	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	session.Start(start)
	defer session.Stop()

	decision := session.Observe(20, "twenty words of transcript", start.Add(10*time.Second))
	assert.Equal(t, 120, decision.WPM)
	assert.True(t, decision.RequestTip)

	select {
	case tip := <-spoken:
		assert.Equal(t, "Nice pace.", tip.Text)
		assert.Equal(t, 120, tip.WPM)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a tip to be spoken")
	}
}

func TestSession_DropsTriggerWhileRequestInFlight(t *testing.T) {
	release := make(chan struct{})
	client := &stubClient{
		textFn: func(_ context.Context, _ string) (string, error) {
			<-release
			return "First tip.", nil
		},
	}
	session, spoken := newTestSession(client)

	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	session.Start(start)
	defer session.Stop()

	first := session.Observe(20, "first window", start.Add(10*time.Second))
	require.True(t, first.RequestTip)

	// A second due observation while the first request is outstanding is
	// dropped: no second inference call is started.
	second := session.Observe(45, "second window", start.Add(20*time.Second))
	assert.True(t, second.RequestTip)

	close(release)

	select {
	case tip := <-spoken:
		assert.Equal(t, "First tip.", tip.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("expected the first tip to be spoken")
	}

	// Give any erroneous second dispatch a chance to land
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, client.prompts(), 1, "exactly one inference call")
	assert.Empty(t, spoken)
}

func TestSession_StaleResponseIsDiscarded(t *testing.T) {
	session, spoken := newTestSession(&stubClient{})

	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	session.Start(start)
	defer session.Stop()

	session.mu.Lock()
	session.issued = 2
	ctx := session.ctx
	session.mu.Unlock()

	// Request #1's response arrives after #2 was issued: discarded.
	session.apply(ctx, 1, types.CoachingTip{Text: "stale", WPM: 100})
	assert.Empty(t, spoken)

	// Request #2's response is the current maximum: applied.
	session.apply(ctx, 2, types.CoachingTip{Text: "fresh", WPM: 130})
	select {
	case tip := <-spoken:
		assert.Equal(t, "fresh", tip.Text)
	default:
		t.Fatal("expected the fresh tip to be spoken")
	}

	// A late duplicate of #2 must not be applied twice.
	session.apply(ctx, 2, types.CoachingTip{Text: "fresh again", WPM: 130})
	assert.Empty(t, spoken)
}

func TestSession_StopInvalidatesInFlightResult(t *testing.T) {
	release := make(chan struct{})
	client := &stubClient{
		textFn: func(_ context.Context, _ string) (string, error) {
			<-release
			return "Too late.", nil
		},
	}
	session, spoken := newTestSession(client)

	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	session.Start(start)

	decision := session.Observe(20, "some words", start.Add(10*time.Second))
	require.True(t, decision.RequestTip)

	session.Stop()
	close(release)

	// The in-flight result may still arrive; it must not be spoken.
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, spoken)

	select {
	case <-session.Done():
	default:
		t.Fatal("stopped session should report done")
	}
}

func TestSession_StartResetsPacerState(t *testing.T) {
	session, _ := newTestSession(&stubClient{})

	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	session.Start(start)
	session.Observe(100, "lots of words", start.Add(10*time.Second))
	assert.NotZero(t, session.WPM())

	session.Start(start.Add(time.Minute))
	defer session.Stop()
	assert.Zero(t, session.WPM())

	// Observations before Start are ignored entirely
	inactive := NewSession(NewCoach(&stubClient{}, time.Second), nil)
	decision := inactive.Observe(50, "ignored", start)
	assert.Equal(t, Decision{}, decision)
}
