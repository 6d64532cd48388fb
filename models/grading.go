package models

// Verdict is the outcome of grading one item.
type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
	// VerdictUngraded means the item is teacher-checked.
	VerdictUngraded Verdict = "ungraded"
)

// Submission is what a learner entered for one item. Only the field matching
// the item shape is read: Blanks for multi-blank, Choice for choice items, Text otherwise.
type Submission struct {
	ItemID int      `json:"id" yaml:"id"`
	Text   string   `json:"text,omitempty" yaml:"text,omitempty"`
	Choice string   `json:"choice,omitempty" yaml:"choice,omitempty"`
	Blanks []string `json:"blanks,omitempty" yaml:"blanks,omitempty"`
}

// GradingVerdict is the verdict plus the answer text to show the learner.
type GradingVerdict struct {
	ItemID  int     `json:"id" yaml:"id"`
	Verdict Verdict `json:"verdict" yaml:"verdict"`
	Answer  string  `json:"answer" yaml:"answer"`
}

// Score is a snapshot of a running score.
type Score struct {
	Correct  int     `json:"correct" yaml:"correct"`
	Graded   int     `json:"graded" yaml:"graded"`
	Ungraded int     `json:"ungraded" yaml:"ungraded"`
	Percent  float64 `json:"percent" yaml:"percent"`
}
