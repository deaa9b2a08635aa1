package intel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/pitch-coach/internal/types"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		data     *types.HackathonData
		validate func(*testing.T, *types.HackathonData)
	}{
		{
			name: "nil record becomes structurally complete",
			data: nil,
			validate: func(t *testing.T, data *types.HackathonData) {
				assert.GreaterOrEqual(t, len(data.Judges), 2)
				assert.NotNil(t, data.Criteria)
				require.NotNil(t, data.Strategy)
				assert.Equal(t, PlaceholderScript, data.Strategy.GeneratedScript)
			},
		},
		{
			name: "zero judges substitutes the fallback panel",
			data: &types.HackathonData{Title: "AI Hack Night", Judges: []types.Judge{}},
			validate: func(t *testing.T, data *types.HackathonData) {
				require.Len(t, data.Judges, 2)
				for _, j := range data.Judges {
					assert.NotEmpty(t, j.Name)
					assert.NotNil(t, j.Values)
					assert.NotNil(t, j.FocusAreas)
					assert.NotNil(t, j.RedFlags)
					assert.NotNil(t, j.RecommendedTalkingPoints)
				}
			},
		},
		{
			name: "real judges are kept and their nil lists repaired",
			data: &types.HackathonData{
				Title:  "DevFest",
				Judges: []types.Judge{{Name: "Dana Wu", Role: "CTO"}},
			},
			validate: func(t *testing.T, data *types.HackathonData) {
				require.Len(t, data.Judges, 1)
				assert.Equal(t, "Dana Wu", data.Judges[0].Name)
				assert.NotNil(t, data.Judges[0].Values)
				assert.NotNil(t, data.Judges[0].FocusAreas)
				assert.NotNil(t, data.Judges[0].RedFlags)
				assert.NotNil(t, data.Judges[0].RecommendedTalkingPoints)
				assert.Empty(t, data.Judges[0].Values)
			},
		},
		{
			name: "missing strategy gets placeholder script",
			data: &types.HackathonData{Title: "DevFest", Strategy: nil},
			validate: func(t *testing.T, data *types.HackathonData) {
				require.NotNil(t, data.Strategy)
				assert.Equal(t, PlaceholderScript, data.Strategy.GeneratedScript)
				assert.NotNil(t, data.Strategy.Structure)
				assert.NotNil(t, data.Strategy.KeyPhrases)
				assert.NotNil(t, data.Strategy.FeaturesToEmphasize)
			},
		},
		{
			name: "strategy fields filled independently",
			data: &types.HackathonData{
				Title: "DevFest",
				Strategy: &types.Strategy{
					KeyPhrases:      []string{"ship it"},
					GeneratedScript: "",
				},
			},
			validate: func(t *testing.T, data *types.HackathonData) {
				assert.Equal(t, []string{"ship it"}, data.Strategy.KeyPhrases)
				assert.NotNil(t, data.Strategy.Structure)
				assert.Equal(t, PlaceholderScript, data.Strategy.GeneratedScript)
			},
		},
		{
			name: "existing script is not replaced",
			data: &types.HackathonData{
				Title:    "DevFest",
				Strategy: &types.Strategy{GeneratedScript: "Hi judges, let me show you..."},
			},
			validate: func(t *testing.T, data *types.HackathonData) {
				assert.Equal(t, "Hi judges, let me show you...", data.Strategy.GeneratedScript)
			},
		},
		{
			name: "url stamped from input when absent",
			data: &types.HackathonData{Title: "DevFest"},
			validate: func(t *testing.T, data *types.HackathonData) {
				assert.Equal(t, "https://example.com/hack", data.URL)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.data, "https://example.com/hack")
			require.NotNil(t, result)
			require.NotEmpty(t, result.Judges, "judges invariant: length >= 1")
			tt.validate(t, result)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []*types.HackathonData{
		nil,
		{Title: "AI Hack Night"},
		{
			Title:    "DevFest",
			Criteria: []string{"innovation"},
			Judges:   []types.Judge{{Name: "Dana Wu", Values: []string{"rigor"}}},
			Strategy: &types.Strategy{GeneratedScript: "script"},
		},
	}

	for _, input := range inputs {
		once := Normalize(input, "https://example.com/hack")
		// Copy so the second pass cannot share repaired slices
		twice := Normalize(once, "https://example.com/hack")
		assert.Equal(t, once, twice, "normalization applied twice is unchanged")
	}
}

func TestFallbackJudges_DistinctRoles(t *testing.T) {
	judges := FallbackJudges()
	require.Len(t, judges, 2)
	assert.NotEqual(t, judges[0].Role, judges[1].Role)
	for _, j := range judges {
		assert.NotEmpty(t, j.Values)
		assert.NotEmpty(t, j.FocusAreas)
		assert.NotEmpty(t, j.RedFlags)
		assert.NotEmpty(t, j.RecommendedTalkingPoints)
	}
}
