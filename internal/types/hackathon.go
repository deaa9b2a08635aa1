// Package types provides type definitions for structured data used throughout the pitch-coach system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Judge represents one member of the judging panel, real or synthesized.
// The four list fields are never nil after normalization.
type Judge struct {
	Name                     string   `json:"name"`
	Role                     string   `json:"role"`
	Company                  string   `json:"company"`
	Values                   []string `json:"values"`
	FocusAreas               []string `json:"focusAreas"`
	RedFlags                 []string `json:"redFlags"`
	RecommendedTalkingPoints []string `json:"recommendedTalkingPoints"`
}

// StrategyStep is one entry of the presentation timeline.
type StrategyStep struct {
	Time   string `json:"time"`
	Action string `json:"action"`
}

// Strategy holds the tailored presentation plan for an event.
// GeneratedScript is always non-empty after normalization.
type Strategy struct {
	Structure           []StrategyStep `json:"structure"`
	KeyPhrases          []string       `json:"keyPhrases"`
	FeaturesToEmphasize []string       `json:"featuresToEmphasize"`
	GeneratedScript     string         `json:"generatedScript"`
}

// HackathonData is the structured intelligence record for one event URL.
// Judges is non-empty after normalization. The record is created once per
// analyzed URL and read-only afterward.
type HackathonData struct {
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	Criteria []string  `json:"criteria"`
	Judges   []Judge   `json:"judges"`
	Strategy *Strategy `json:"strategy"`
}

// CoachingTip is a short pacing hint for an active rehearsal. At most one tip
// is live at a time; a newer tip supersedes the previous one unconditionally.
type CoachingTip struct {
	Text string `json:"text"`
	WPM  int    `json:"wpm"`
}
