// Package critique turns a recorded demo video plus event intelligence into a
// structured multi-judge critique.
package critique

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/pitch-coach/internal/llm"
	"github.com/jonathan/pitch-coach/internal/prompts"
	"github.com/jonathan/pitch-coach/internal/types"
)

// DefaultTimeout bounds a critique inference call.
const DefaultTimeout = 10 * time.Second

// CritiqueError wraps encode or inference failures. The caller must present
// an explicit error state rather than fabricate a critique.
type CritiqueError struct {
	Message string
	Cause   error
}

func (e *CritiqueError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("critique failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("critique failed: %s", e.Message)
}

func (e *CritiqueError) Unwrap() error {
	return e.Cause
}

// Resolver drives video + HackathonData -> AnalysisResult inference.
type Resolver struct {
	client  llm.Client
	timeout time.Duration
}

// NewResolver creates a Resolver backed by the given inference client.
// timeout <= 0 means DefaultTimeout.
func NewResolver(client llm.Client, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{client: client, timeout: timeout}
}

// Critique analyzes a recorded demo against the event's judge panel.
// The result is returned as parsed, except OverallScore which is clamped
// defensively to [0, 100]; schema failures propagate typed.
func (r *Resolver) Critique(ctx context.Context, media *llm.Media, data *types.HackathonData) (*types.AnalysisResult, error) {
	if media == nil || len(media.Data) == 0 {
		return nil, &CritiqueError{Message: "no video media provided"}
	}
	if data == nil {
		return nil, &CritiqueError{Message: "no hackathon data provided"}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.client.GenerateStructured(ctx, &llm.StructuredRequest{
		Prompt: buildCritiquePrompt(data),
		Tier:   llm.TierFast,
		Schema: AnalysisSchema(),
		Media:  media,
	})
	if err != nil {
		return nil, &CritiqueError{Message: "inference call failed", Cause: err}
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &CritiqueError{Message: "failed to decode analysis result", Cause: err}
	}

	result.OverallScore = clampScore(result.OverallScore)
	return &result, nil
}

// buildCritiquePrompt binds the event title, judge names and criteria into
// the critique instruction.
func buildCritiquePrompt(data *types.HackathonData) string {
	template := prompts.MustGet("critique.json", "critique-demo")
	return prompts.Format(template, map[string]string{
		"Title":      data.Title,
		"JudgeNames": formatJudgeNames(data.Judges),
		"Criteria":   formatCriteria(data.Criteria),
	})
}

// formatJudgeNames derives the display list of judges for the prompt. The
// panel should never be empty after intel normalization; defend anyway.
func formatJudgeNames(judges []types.Judge) string {
	if len(judges) == 0 {
		return "- Judge (hackathon judge)"
	}

	var sb strings.Builder
	for _, j := range judges {
		sb.WriteString("- ")
		sb.WriteString(displayName(j))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func displayName(j types.Judge) string {
	name := strings.TrimSpace(j.Name)
	if name == "" {
		name = "Judge"
	}
	role := strings.TrimSpace(j.Role)
	company := strings.TrimSpace(j.Company)
	switch {
	case role != "" && company != "":
		return fmt.Sprintf("%s (%s, %s)", name, role, company)
	case role != "":
		return fmt.Sprintf("%s (%s)", name, role)
	default:
		return name
	}
}

func formatCriteria(criteria []string) string {
	if len(criteria) == 0 {
		return "- Overall impression"
	}

	var sb strings.Builder
	for _, c := range criteria {
		sb.WriteString("- ")
		sb.WriteString(c)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// clampScore bounds the model-reported score to [0, 100].
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
