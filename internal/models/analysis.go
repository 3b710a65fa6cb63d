package models

// ATSAnalysis is the JSON shape the model must return for /analyze-ats.
type ATSAnalysis struct {
	OverallScore     int              `json:"overallScore"`
	MatchingKeywords []string         `json:"matchingKeywords"`
	MissingKeywords  []string         `json:"missingKeywords"`
	Recommendations  []Recommendation `json:"recommendations"`
}

type Recommendation struct {
	Category   string `json:"category"`
	Suggestion string `json:"suggestion"`
	Impact     string `json:"impact"` // High | Medium | Low
}

// Evaluation is the JSON shape the model must return for the evaluate action.
type Evaluation struct {
	OverallScore        int               `json:"overallScore"`
	Answers             []EvaluatedAnswer `json:"answers"`
	Strengths           []string          `json:"strengths"`
	AreasForImprovement []string          `json:"areasForImprovement"`
	Recommendation      string            `json:"recommendation"`
}

type EvaluatedAnswer struct {
	Question   string `json:"question"`
	UserAnswer string `json:"userAnswer"`
	Feedback   string `json:"feedback"`
	Score      string `json:"score"` // "x/10"
}
