package pacing

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/pitch-coach/internal/llm"
	"github.com/jonathan/pitch-coach/internal/prompts"
	"github.com/jonathan/pitch-coach/internal/types"
)

// FallbackTip is returned on any inference failure. Coaching is advisory and
// must never interrupt the rehearsal flow.
const FallbackTip = "Keep going!"

// DefaultTipTimeout bounds one coaching-tip inference call.
const DefaultTipTimeout = 3 * time.Second

// tailChars is how much trailing transcript is embedded in the tip prompt.
const tailChars = 100

// maxTipTokens caps the tip output length.
const maxTipTokens = 50

// Coach dispatches short coaching-tip inference calls.
type Coach struct {
	client  llm.Client
	timeout time.Duration
}

// NewCoach creates a Coach backed by the given inference client.
// timeout <= 0 means DefaultTipTimeout.
func NewCoach(client llm.Client, timeout time.Duration) *Coach {
	if timeout <= 0 {
		timeout = DefaultTipTimeout
	}
	return &Coach{client: client, timeout: timeout}
}

// RequestTip produces a short pacing tip for the current speech rate.
// Failures are fully absorbed: the fallback tip is returned and no error
// ever propagates.
func (c *Coach) RequestTip(ctx context.Context, transcriptTail string, wpm int) types.CoachingTip {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	template := prompts.MustGet("coaching.json", "pace-tip")
	prompt := prompts.Format(template, map[string]string{
		"WPM":  strconv.Itoa(wpm),
		"Tail": trimTail(transcriptTail),
	})

	text, err := c.client.GenerateText(ctx, prompt, llm.TierFast, maxTipTokens)
	if err != nil {
		return types.CoachingTip{Text: FallbackTip, WPM: wpm}
	}

	text = strings.Trim(strings.TrimSpace(text), `"`)
	if text == "" {
		return types.CoachingTip{Text: FallbackTip, WPM: wpm}
	}

	return types.CoachingTip{Text: text, WPM: wpm}
}

// trimTail keeps the last tailChars runes of the transcript.
func trimTail(s string) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= tailChars {
		return string(runes)
	}
	return string(runes[len(runes)-tailChars:])
}
