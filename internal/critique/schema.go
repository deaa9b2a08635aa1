package critique

import (
	"github.com/google/generative-ai-go/genai"

	"github.com/jonathan/pitch-coach/internal/llm"
)

// analysisSchemaDoc is the JSON Schema every critique response must validate
// against. Item counts (3-5 strengths/improvements, 5 questions) are prompt
// requests, not schema constraints.
const analysisSchemaDoc = `{
  "type": "object",
  "required": ["overallScore", "strengths", "improvements", "judgeSpecificFeedback", "qaQuestions"],
  "properties": {
    "overallScore": {"type": "number"},
    "strengths": {"type": "array", "items": {"type": "string"}},
    "improvements": {"type": "array", "items": {"type": "string"}},
    "judgeSpecificFeedback": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["judgeName", "feedback"],
        "properties": {
          "judgeName": {"type": "string"},
          "feedback": {"type": "string"}
        }
      }
    },
    "qaQuestions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["question"],
        "properties": {
          "question": {"type": "string"}
        }
      }
    }
  }
}`

// AnalysisSchema declares the structured output for a demo critique.
func AnalysisSchema() *llm.Schema {
	stringList := &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}

	return &llm.Schema{
		Name:     "AnalysisResult",
		Document: analysisSchemaDoc,
		Definition: &genai.Schema{
			Type:     genai.TypeObject,
			Required: []string{"overallScore", "strengths", "improvements", "judgeSpecificFeedback", "qaQuestions"},
			Properties: map[string]*genai.Schema{
				"overallScore": {Type: genai.TypeNumber},
				"strengths":    stringList,
				"improvements": stringList,
				"judgeSpecificFeedback": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type:     genai.TypeObject,
						Required: []string{"judgeName", "feedback"},
						Properties: map[string]*genai.Schema{
							"judgeName": {Type: genai.TypeString},
							"feedback":  {Type: genai.TypeString},
						},
					},
				},
				"qaQuestions": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type:     genai.TypeObject,
						Required: []string{"question"},
						Properties: map[string]*genai.Schema{
							"question": {Type: genai.TypeString},
						},
					},
				},
			},
		},
	}
}
