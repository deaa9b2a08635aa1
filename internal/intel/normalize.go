package intel

import (
	"strings"

	"github.com/jonathan/pitch-coach/internal/types"
)

// PlaceholderScript is substituted when no generated script comes back.
// The strategy must never carry an empty script.
const PlaceholderScript = "We couldn't generate a script this time. Walk through your demo naturally: open with the problem, show your solution working, and close with what makes it different."

// FallbackJudges returns the deterministic safety-net panel substituted when
// the inference layer returns no judges at all. The model is instructed to
// synthesize archetypes itself; this panel is the invariant enforcement
// beneath that instruction.
func FallbackJudges() []types.Judge {
	return []types.Judge{
		{
			Name:                     "Alex Chen",
			Role:                     "Principal Engineer",
			Company:                  "Archetype Panel",
			Values:                   []string{"technical depth", "working demos over slides", "sound architecture"},
			FocusAreas:               []string{"implementation choices", "scalability", "what was actually built during the event"},
			RedFlags:                 []string{"hand-waving over how it works", "canned video instead of a live demo"},
			RecommendedTalkingPoints: []string{"walk through the hardest technical problem you solved", "show the system working end to end"},
		},
		{
			Name:                     "Priya Raman",
			Role:                     "Head of Product",
			Company:                  "Archetype Panel",
			Values:                   []string{"clear user problem", "usability", "evidence of demand"},
			FocusAreas:               []string{"who the user is", "why now", "what happens after the hackathon"},
			RedFlags:                 []string{"feature tours with no user story", "ignoring the question asked"},
			RecommendedTalkingPoints: []string{"open with the user and their pain", "name the one metric that proves this matters"},
		},
	}
}

// Normalize repairs omissions in a parsed HackathonData record without
// re-invoking inference. It is idempotent: applying it twice yields the same
// record. The record is structurally complete afterward:
// judges is non-empty, every per-judge list is non-nil, and the strategy
// carries a non-empty generated script.
func Normalize(data *types.HackathonData, url string) *types.HackathonData {
	if data == nil {
		data = &types.HackathonData{}
	}

	if strings.TrimSpace(data.URL) == "" {
		data.URL = url
	}
	if data.Criteria == nil {
		data.Criteria = []string{}
	}

	if len(data.Judges) == 0 {
		data.Judges = FallbackJudges()
	}
	for i := range data.Judges {
		normalizeJudge(&data.Judges[i])
	}

	if data.Strategy == nil {
		data.Strategy = &types.Strategy{}
	}
	if data.Strategy.Structure == nil {
		data.Strategy.Structure = []types.StrategyStep{}
	}
	if data.Strategy.KeyPhrases == nil {
		data.Strategy.KeyPhrases = []string{}
	}
	if data.Strategy.FeaturesToEmphasize == nil {
		data.Strategy.FeaturesToEmphasize = []string{}
	}
	if strings.TrimSpace(data.Strategy.GeneratedScript) == "" {
		data.Strategy.GeneratedScript = PlaceholderScript
	}

	return data
}

// normalizeJudge ensures every per-judge list field is a non-nil list.
func normalizeJudge(j *types.Judge) {
	if j.Values == nil {
		j.Values = []string{}
	}
	if j.FocusAreas == nil {
		j.FocusAreas = []string{}
	}
	if j.RedFlags == nil {
		j.RedFlags = []string{}
	}
	if j.RecommendedTalkingPoints == nil {
		j.RecommendedTalkingPoints = []string{}
	}
}
