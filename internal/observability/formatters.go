// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/pitch-coach/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintHackathonData outputs a human-readable summary of the resolved event
// intelligence.
func (p *Printer) PrintHackathonData(data *types.HackathonData) {
	if data == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Event: %s\n", data.Title))
	sb.WriteString(fmt.Sprintf("Judges: %d\n", len(data.Judges)))
	for i, j := range data.Judges {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(data.Judges)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("  %s - %s", j.Name, j.Role))
		if j.Company != "" {
			sb.WriteString(fmt.Sprintf(" @ %s", j.Company))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Criteria: %s", summarizeList(data.Criteria)))

	p.printBox("HACKATHON INTELLIGENCE", sb.String())
}

// PrintAnalysis outputs a human-readable summary of a demo critique.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %.0f/100\n", result.OverallScore))
	sb.WriteString("Strengths:\n")
	for _, s := range truncateList(result.Strengths) {
		sb.WriteString(fmt.Sprintf("  + %s\n", s))
	}
	sb.WriteString("Improvements:\n")
	for _, s := range truncateList(result.Improvements) {
		sb.WriteString(fmt.Sprintf("  - %s\n", s))
	}
	sb.WriteString(fmt.Sprintf("Anticipated questions: %d", len(result.QAQuestions)))

	p.printBox("DEMO CRITIQUE", sb.String())
}

// PrintTip outputs a live coaching tip.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintTip(tip types.CoachingTip) {
	fmt.Fprintf(p.out, "[%3d wpm] %s\n", tip.WPM, tip.Text)
}

func summarizeList(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	shown := truncateList(items)
	s := strings.Join(shown, ", ")
	if len(items) > len(shown) {
		s += ", ..."
	}
	return s
}

func truncateList(items []string) []string {
	if len(items) > maxItemsToShow {
		return items[:maxItemsToShow]
	}
	return items
}
