package intel

import (
	"github.com/google/generative-ai-go/genai"

	"github.com/jonathan/pitch-coach/internal/llm"
)

// hackathonSchemaDoc is the JSON Schema every intel response must validate
// against before it is trusted. List fields are allowed to be absent; the
// normalization pass fills them.
const hackathonSchemaDoc = `{
  "type": "object",
  "required": ["title"],
  "properties": {
    "title": {"type": "string"},
    "criteria": {"type": "array", "items": {"type": "string"}},
    "judges": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string"},
          "role": {"type": "string"},
          "company": {"type": "string"},
          "values": {"type": "array", "items": {"type": "string"}},
          "focusAreas": {"type": "array", "items": {"type": "string"}},
          "redFlags": {"type": "array", "items": {"type": "string"}},
          "recommendedTalkingPoints": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "strategy": {
      "type": "object",
      "properties": {
        "structure": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "time": {"type": "string"},
              "action": {"type": "string"}
            }
          }
        },
        "keyPhrases": {"type": "array", "items": {"type": "string"}},
        "featuresToEmphasize": {"type": "array", "items": {"type": "string"}},
        "generatedScript": {"type": "string"}
      }
    }
  }
}`

// HackathonSchema declares the structured output for event resolution.
func HackathonSchema() *llm.Schema {
	stringList := &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}

	return &llm.Schema{
		Name:     "HackathonData",
		Document: hackathonSchemaDoc,
		Definition: &genai.Schema{
			Type:     genai.TypeObject,
			Required: []string{"title"},
			Properties: map[string]*genai.Schema{
				"title":    {Type: genai.TypeString},
				"criteria": stringList,
				"judges": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type:     genai.TypeObject,
						Required: []string{"name"},
						Properties: map[string]*genai.Schema{
							"name":                     {Type: genai.TypeString},
							"role":                     {Type: genai.TypeString},
							"company":                  {Type: genai.TypeString},
							"values":                   stringList,
							"focusAreas":               stringList,
							"redFlags":                 stringList,
							"recommendedTalkingPoints": stringList,
						},
					},
				},
				"strategy": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"structure": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"time":   {Type: genai.TypeString},
									"action": {Type: genai.TypeString},
								},
							},
						},
						"keyPhrases":          stringList,
						"featuresToEmphasize": stringList,
						"generatedScript":     {Type: genai.TypeString},
					},
				},
			},
		},
	}
}
