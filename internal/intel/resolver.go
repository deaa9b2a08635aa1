// Package intel resolves a hackathon URL into structured judge and strategy
// intelligence using search-grounded LLM inference, with deterministic
// fallback guarantees.
package intel

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/pitch-coach/internal/fetch"
	"github.com/jonathan/pitch-coach/internal/llm"
	"github.com/jonathan/pitch-coach/internal/prompts"
	"github.com/jonathan/pitch-coach/internal/types"
)

// DefaultTimeout bounds a search-grounded resolution call.
const DefaultTimeout = 30 * time.Second

// maxPageContextChars caps how much extracted page text is embedded in the prompt.
const maxPageContextChars = 8000

// ResolutionError is the single error type a failed resolution surfaces.
// The caller is expected to offer a retry affordance; no automatic retry here.
type ResolutionError struct {
	URL   string
	Cause error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve hackathon intelligence for %s: %v", e.URL, e.Cause)
}

func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// Options configures a Resolver.
type Options struct {
	// Timeout for the inference call. Zero means DefaultTimeout.
	Timeout time.Duration
	// FetchPage enables a best-effort fetch of the event page to enrich the
	// prompt. Fetch failures are ignored; search grounding still runs.
	FetchPage bool
	// UseBrowser enables the headless-browser fallback for SPA event sites.
	UseBrowser bool
}

// Resolver drives URL -> HackathonData inference.
type Resolver struct {
	client llm.Client
	opts   Options
}

// NewResolver creates a Resolver backed by the given inference client.
func NewResolver(client llm.Client, opts Options) *Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Resolver{client: client, opts: opts}
}

// Resolve turns an event URL into a structurally complete HackathonData
// record. It never fails partially: the result is either fully normalized or
// a single *ResolutionError.
func (r *Resolver) Resolve(ctx context.Context, url string) (*types.HackathonData, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	prompt := r.buildPrompt(ctx, url)

	raw, err := r.client.GenerateStructured(ctx, &llm.StructuredRequest{
		Prompt:       prompt,
		Tier:         llm.TierReasoning,
		Schema:       HackathonSchema(),
		EnableSearch: true,
	})
	if err != nil {
		return nil, &ResolutionError{URL: url, Cause: err}
	}

	var data types.HackathonData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &ResolutionError{URL: url, Cause: err}
	}

	return Normalize(&data, url), nil
}

// buildPrompt assembles the resolution prompt, optionally enriched with
// extracted page text.
func (r *Resolver) buildPrompt(ctx context.Context, url string) string {
	pageContext := ""
	if r.opts.FetchPage {
		if text := r.fetchPageText(ctx, url); text != "" {
			template := prompts.MustGet("intel.json", "page-context")
			pageContext = prompts.Format(template, map[string]string{"PageText": text})
		}
	}

	template := prompts.MustGet("intel.json", "resolve-event")
	return prompts.Format(template, map[string]string{
		"URL":         url,
		"PageContext": pageContext,
	})
}

// fetchPageText is best-effort: any failure yields an empty string.
func (r *Resolver) fetchPageText(ctx context.Context, url string) string {
	text, err := fetch.EventPageText(ctx, url, r.opts.UseBrowser)
	if err != nil {
		return ""
	}
	if len(text) > maxPageContextChars {
		text = text[:maxPageContextChars]
	}
	return text
}
