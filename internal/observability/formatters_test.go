package observability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/pitch-coach/internal/types"
)

func TestPrintTip(t *testing.T) {
	var buf strings.Builder
	NewPrinter(&buf).PrintTip(types.CoachingTip{Text: "Slow down a touch.", WPM: 172})

	assert.Equal(t, "[172 wpm] Slow down a touch.\n", buf.String())
}

func TestPrintHackathonData(t *testing.T) {
	var buf strings.Builder
	NewPrinter(&buf).PrintHackathonData(&types.HackathonData{
		Title:    "AI Hack Night",
		Criteria: []string{"innovation", "execution"},
		Judges: []types.Judge{
			{Name: "Dana Wu", Role: "CTO", Company: "Vektor"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "AI Hack Night")
	assert.Contains(t, out, "Dana Wu - CTO @ Vektor")
	assert.Contains(t, out, "innovation")

	// nil data prints nothing
	var empty strings.Builder
	NewPrinter(&empty).PrintHackathonData(nil)
	assert.Empty(t, empty.String())
}

func TestPrintAnalysis(t *testing.T) {
	var buf strings.Builder
	NewPrinter(&buf).PrintAnalysis(&types.AnalysisResult{
		OverallScore: 82,
		Strengths:    []string{"clear demo"},
		Improvements: []string{"slow the close"},
		QAQuestions:  []types.QAQuestion{{Question: "How does it scale?"}},
	})

	out := buf.String()
	assert.Contains(t, out, "82/100")
	assert.Contains(t, out, "+ clear demo")
	assert.Contains(t, out, "- slow the close")
	assert.Contains(t, out, "Anticipated questions: 1")
}
