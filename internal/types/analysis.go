package types

// JudgeFeedback is one judge's predicted reaction to a recorded demo.
type JudgeFeedback struct {
	JudgeName string `json:"judgeName"`
	Feedback  string `json:"feedback"`
}

// QAQuestion is one anticipated question from the panel.
type QAQuestion struct {
	Question string `json:"question"`
}

// AnalysisResult is the scored critique of a recorded demo take.
// Strengths and Improvements target 3-5 items each and QAQuestions exactly 5;
// these are prompt-level requests, not validated contracts. Created once per
// take, never mutated.
type AnalysisResult struct {
	OverallScore          float64         `json:"overallScore"`
	Strengths             []string        `json:"strengths"`
	Improvements          []string        `json:"improvements"`
	JudgeSpecificFeedback []JudgeFeedback `json:"judgeSpecificFeedback"`
	QAQuestions           []QAQuestion    `json:"qaQuestions"`
}
