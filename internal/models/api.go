package models

// Request/response payloads for the HTTP surface.

type ConversationRequest struct {
	SessionID      string             `json:"sessionId"`
	Message        string             `json:"message"`
	Action         string             `json:"action"`
	Difficulty     string             `json:"difficulty,omitempty"`
	QuestionNumber int                `json:"questionNumber,omitempty"`
	Answers        []AnswerSubmission `json:"answers,omitempty"`
}

type AnswerSubmission struct {
	Question int    `json:"question"`
	Answer   string `json:"answer"`
}

type EmbeddingResponse struct {
	Success    bool      `json:"success"`
	InputText  string    `json:"inputText"`
	Embedding  []float32 `json:"embedding"`
	Dimensions int       `json:"dimensions"`
}

type LoadDocumentResponse struct {
	Message    string `json:"message"`
	TotalLines int    `json:"totalLines"`
	SessionID  string `json:"sessionId"`
	FileName   string `json:"fileName"`
}

type AnalyzeATSResponse struct {
	Success          bool             `json:"success"`
	SessionID        string           `json:"sessionId"`
	TotalLines       int              `json:"totalLines"`
	OverallScore     int              `json:"overallScore"`
	MatchingKeywords []string         `json:"matchingKeywords"`
	MissingKeywords  []string         `json:"missingKeywords"`
	Recommendations  []Recommendation `json:"recommendations"`
}

type ChatResponse struct {
	Answer    string `json:"answer"`
	SessionID string `json:"sessionId"`
}

type QuestionResponse struct {
	Question  string `json:"question"`
	SessionID string `json:"sessionId"`
}

type EvaluationResponse struct {
	Success    bool        `json:"success"`
	Evaluation *Evaluation `json:"evaluation"`
}

type SessionResponse struct {
	ID             string       `json:"id"`
	FileName       string       `json:"file_name"`
	JobDescription *string      `json:"job_description,omitempty"`
	Difficulty     *string      `json:"difficulty,omitempty"`
	ATSScore       *int         `json:"ats_score,omitempty"`
	ATSAnalysis    *ATSAnalysis `json:"ats_analysis,omitempty"`
	CreatedAt      string       `json:"created_at"`
}
