// Package worksheet runs a lesson pack as an interactive terminal worksheet.
package worksheet

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dtnitsch/worksheet-kit/models"
	"github.com/dtnitsch/worksheet-kit/pkg/grading"
	"github.com/dtnitsch/worksheet-kit/pkg/similarity"
)

// blankSeparator splits a typed multi-blank answer into its blanks.
const blankSeparator = "/"

// Session is the whole state of an interactive worksheet. The UI only reads
// it and forwards keys; every decision lives here so it can be tested
// without a terminal.
type Session struct {
	pack *models.LessonPack
	mode models.Mode
	cfg  models.SimilarityConfig

	board    *grading.Scoreboard
	verdicts map[int]models.GradingVerdict
	answers  map[int]models.Submission

	cursor  int
	input   []rune
	message string

	practice  bool
	sentences []string
	sentence  int
	lastScore *models.SimilarityResponse
}

// NewSession starts on the first exercise in the given mode.
func NewSession(pack *models.LessonPack, mode models.Mode, cfg models.SimilarityConfig) (*Session, error) {
	if err := models.ValidateIDs(pack.Exercises); err != nil {
		return nil, err
	}
	s := &Session{
		pack:     pack,
		mode:     mode,
		cfg:      cfg,
		board:    grading.NewScoreboard(),
		verdicts: make(map[int]models.GradingVerdict),
		answers:  make(map[int]models.Submission),
	}
	s.sentences = Sentences(s.readingText())
	return s, nil
}

func (s *Session) Mode() models.Mode { return s.mode }
func (s *Session) Practice() bool { return s.practice }
func (s *Session) Input() string { return string(s.input) }
func (s *Session) Message() string { return s.message }
func (s *Session) Score() models.Score { return s.board.Score() }
func (s *Session) Title() string { return s.pack.Title }
func (s *Session) ItemCount() int { return len(s.pack.Exercises) }
func (s *Session) Position() int { return s.cursor + 1 }
func (s *Session) HasItems() bool { return len(s.pack.Exercises) > 0 }
func (s *Session) Sentences() []string { return s.sentences }
func (s *Session) SentenceIndex() int { return s.sentence }
func (s *Session) LastSimilarity() *models.SimilarityResponse { return s.lastScore }

// Item returns the current exercise. Only valid when HasItems.
func (s *Session) Item() models.ExerciseItem {
	return s.pack.Exercises[s.cursor]
}

// Side returns the current exercise as presented in the active mode.
func (s *Session) Side() models.Side {
	return s.Item().Side(s.mode)
}

// Verdict returns the last verdict of the current item, if it was checked.
func (s *Session) Verdict() (models.GradingVerdict, bool) {
	if !s.HasItems() {
		return models.GradingVerdict{}, false
	}
	v, ok := s.verdicts[s.Item().ID]
	return v, ok
}

// ToggleMode switches between the standard and adapted sides. The two sides
// present different prompts and choices, so the score starts over.
func (s *Session) ToggleMode() {
	if s.mode == models.ModeStandard {
		s.mode = models.ModeAdapted
	} else {
		s.mode = models.ModeStandard
	}
	s.board.Reset()
	clear(s.verdicts)
	clear(s.answers)
	s.input = s.input[:0]
	s.sentences = Sentences(s.readingText())
	s.sentence = 0
	s.lastScore = nil
	s.message = fmt.Sprintf("Switched to %s mode; score reset.", s.mode)
}

// TogglePractice switches between exercises and pronunciation practice.
func (s *Session) TogglePractice() {
	s.practice = !s.practice
	s.input = s.input[:0]
	s.lastScore = nil
	if s.practice {
		s.message = "Read the sentence aloud, then type what the recogniser heard."
	} else {
		s.message = ""
	}
}

// Next moves to the next exercise or practice sentence.
func (s *Session) Next() {
	s.move(1)
}

// Prev moves to the previous exercise or practice sentence.
func (s *Session) Prev() {
	s.move(-1)
}

func (s *Session) move(delta int) {
	s.input = s.input[:0]
	s.message = ""
	if s.practice {
		s.lastScore = nil
		s.sentence = clamp(s.sentence+delta, len(s.sentences))
		return
	}
	if !s.HasItems() {
		return
	}
	s.cursor = clamp(s.cursor+delta, len(s.pack.Exercises))
	if sub, ok := s.answers[s.Item().ID]; ok {
		s.input = []rune(grading.SubmissionText(sub))
	}
}

func clamp(i, n int) int {
	return max(0, min(i, n-1))
}

// Type appends a rune to the answer field.
func (s *Session) Type(r rune) {
	s.input = append(s.input, r)
}

// Backspace deletes the last rune of the answer field.
func (s *Session) Backspace() {
	if len(s.input) > 0 {
		s.input = s.input[:len(s.input)-1]
	}
}

// Choose fills the answer field with the n-th option (0-based) of a choice item.
func (s *Session) Choose(n int) bool {
	if s.practice || !s.HasItems() {
		return false
	}
	choices := s.Side().Choices
	if n < 0 || n >= len(choices) {
		return false
	}
	s.input = []rune(choices[n])
	return true
}

// Submission turns the answer field into a submission shaped for the current item.
func (s *Session) Submission() models.Submission {
	item := s.Item()
	text := strings.TrimSpace(string(s.input))
	sub := models.Submission{ItemID: item.ID}
	switch {
	case item.Answer.IsMulti():
		if text != "" {
			for _, b := range strings.Split(text, blankSeparator) {
				sub.Blanks = append(sub.Blanks, strings.TrimSpace(b))
			}
		}
	case len(s.Side().Choices) > 0:
		sub.Choice = text
	default:
		sub.Text = text
	}
	return sub
}

// Check grades the current item and records the verdict in the running score.
func (s *Session) Check() models.GradingVerdict {
	sub := s.Submission()
	v := grading.Evaluate(s.Item(), s.mode, sub)
	s.board.Record(v)
	s.verdicts[v.ItemID] = v
	s.answers[v.ItemID] = sub

	switch v.Verdict {
	case models.VerdictCorrect:
		s.message = "Correct!"
	case models.VerdictIncorrect:
		s.message = "Not quite. Expected: " + v.Answer
	default:
		s.message = "Teacher-checked: compare with the key (" + v.Answer + ")."
	}
	return v
}

// Submit checks the current item, or scores the transcript in practice mode.
func (s *Session) Submit() {
	if s.practice {
		s.SubmitTranscript(string(s.input))
		return
	}
	if s.HasItems() {
		s.Check()
	}
}

// SubmitTranscript scores a recognised transcript against the current sentence.
func (s *Session) SubmitTranscript(transcript string) models.SimilarityResponse {
	expected := ""
	if len(s.sentences) > 0 {
		expected = s.sentences[s.sentence]
	}
	res := similarity.Compare(expected, transcript, s.cfg)
	s.lastScore = &res
	s.message = fmt.Sprintf("%s (%.0f%%)", feedbackText(res.Feedback), res.Score*100)
	return res
}

func feedbackText(tier string) string {
	switch tier {
	case similarity.TierExcellent:
		return "Excellent pronunciation"
	case similarity.TierGood:
		return "Good, nearly there"
	case similarity.TierClose:
		return "Close, try again"
	default:
		return "Try again"
	}
}

// Results returns the checked items in id order, for storing the session.
func (s *Session) Results() ([]models.Submission, []models.GradingVerdict) {
	var subs []models.Submission
	var verdicts []models.GradingVerdict
	for _, item := range s.pack.Exercises {
		v, ok := s.verdicts[item.ID]
		if !ok {
			continue
		}
		verdicts = append(verdicts, v)
		subs = append(subs, s.answers[item.ID])
	}
	return subs, verdicts
}

func (s *Session) readingText() string {
	if s.mode == models.ModeStandard && s.pack.Standard != "" {
		return s.pack.Standard
	}
	if s.pack.Adapted != "" {
		return s.pack.Adapted
	}
	return s.pack.Standard
}

// Sentences splits a reading text into practice sentences at . ! ? and line breaks.
func Sentences(text string) []string {
	var out []string
	var cur strings.Builder
	flush := func() {
		if t := strings.TrimSpace(cur.String()); t != "" && strings.IndexFunc(t, unicode.IsLetter) >= 0 {
			out = append(out, t)
		}
		cur.Reset()
	}
	for _, r := range text {
		if r == '\n' {
			flush()
			continue
		}
		cur.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			flush()
		}
	}
	flush()
	return out
}
