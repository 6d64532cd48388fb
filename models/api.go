package models

// ErrorInfo provides structured error information in API responses.
type ErrorInfo struct {
	Type             string   `json:"error_type"`
	Message          string   `json:"message"`
	SuggestedActions []string `json:"suggested_actions,omitempty"`
}

// Response is the envelope returned by every JSON endpoint.
type Response struct {
	Data  interface{} `json:"data"`
	Error *ErrorInfo  `json:"error,omitempty"`
}

// NewErrorResponse creates an error envelope.
func NewErrorResponse(errType, message string, actions ...string) Response {
	return Response{
		Data: nil,
		Error: &ErrorInfo{
			Type:             errType,
			Message:          message,
			SuggestedActions: actions,
		},
	}
}

// ComposeRequest asks for a line sequence to be composed (and optionally rendered).
type ComposeRequest struct {
	Title string   `json:"title,omitempty"`
	Lines []string `json:"lines,omitempty"`
	Text  string   `json:"text,omitempty"` // split on newlines when Lines is empty
	// Pack renders a document of a lesson pack instead of raw lines.
	Pack *LessonPack `json:"pack,omitempty"`
	Doc  DocKind     `json:"doc,omitempty"`
	Mode Mode        `json:"mode,omitempty"`
}

// GradeRequest grades a batch of submissions against a pack's exercises.
type GradeRequest struct {
	Mode        Mode           `json:"mode"`
	Exercises   []ExerciseItem `json:"exercises"`
	Submissions []Submission   `json:"submissions"`
}

// GradeResponse carries per-item verdicts and the resulting score.
type GradeResponse struct {
	SessionID string           `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	Verdicts  []GradingVerdict `json:"verdicts" yaml:"verdicts"`
	Score     Score            `json:"score" yaml:"score"`
}

// SimilarityRequest compares a spoken transcript with the expected phrase.
type SimilarityRequest struct {
	Expected   string `json:"expected"`
	Transcript string `json:"transcript"`
}

// SimilarityResponse is the score plus its feedback tier.
type SimilarityResponse struct {
	Score    float64 `json:"score" yaml:"score"`
	Feedback string  `json:"feedback" yaml:"feedback"`
}
