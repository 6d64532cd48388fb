// Package grading checks learner answers against an exercise key.
package grading

import (
	"strings"

	"github.com/dtnitsch/worksheet-kit/models"
)

// teacherCheckedMarkers flag task kinds that cannot be auto-graded.
var teacherCheckedMarkers = []string{"order", "matching"}

// TeacherChecked reports whether the item's type or skill names an ordering
// or matching task.
func TeacherChecked(item models.ExerciseItem) bool {
	labels := strings.ToLower(string(item.Type) + " " + item.Skill)
	for _, m := range teacherCheckedMarkers {
		if strings.Contains(labels, m) {
			return true
		}
	}
	return false
}

// Evaluate grades one submission. The mode picks which side's choices apply.
// Ambiguous keys degrade to ungraded; empty answers on gradable items are incorrect.
func Evaluate(item models.ExerciseItem, mode models.Mode, sub models.Submission) models.GradingVerdict {
	return models.GradingVerdict{
		ItemID:  item.ID,
		Verdict: verdict(item, mode, sub),
		Answer:  item.Answer.String(),
	}
}

func verdict(item models.ExerciseItem, mode models.Mode, sub models.Submission) models.Verdict {
	if TeacherChecked(item) {
		return models.VerdictUngraded
	}

	if item.Answer.IsMulti() {
		return blanksVerdict(item.Answer.Blanks, sub.Blanks)
	}

	expected := normalize(item.Answer.Value)

	if choices := item.Side(mode).Choices; len(choices) > 0 {
		if !hasOption(choices, expected) {
			return models.VerdictUngraded
		}
		choice := sub.Choice
		if choice == "" {
			choice = sub.Text
		}
		return boolVerdict(normalize(choice) == expected)
	}

	if expected == "" {
		return models.VerdictUngraded
	}
	text := sub.Text
	if text == "" {
		text = sub.Choice
	}
	got := normalize(text)
	if got == "" {
		return models.VerdictIncorrect
	}
	// Containment either way is accepted, so a long answer that merely
	// mentions a short key passes.
	return boolVerdict(got == expected || strings.Contains(got, expected) || strings.Contains(expected, got))
}

func blanksVerdict(expected, got []string) models.Verdict {
	switch {
	case len(expected) == 0:
		return models.VerdictUngraded
	case len(got) == 0:
		return models.VerdictIncorrect
	case len(got) != len(expected):
		return models.VerdictUngraded
	}

	for i := range expected {
		if normalize(got[i]) != normalize(expected[i]) {
			return models.VerdictIncorrect
		}
	}
	return models.VerdictCorrect
}

func hasOption(choices []string, expected string) bool {
	for _, c := range choices {
		if normalize(c) == expected {
			return true
		}
	}
	return false
}

func boolVerdict(ok bool) models.Verdict {
	if ok {
		return models.VerdictCorrect
	}
	return models.VerdictIncorrect
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// GradeAll evaluates every item against the submission with the same id.
// Items without a submission are graded as empty answers.
func GradeAll(items []models.ExerciseItem, mode models.Mode, subs []models.Submission) ([]models.GradingVerdict, models.Score) {
	byID := make(map[int]models.Submission, len(subs))
	for _, s := range subs {
		byID[s.ItemID] = s
	}

	board := NewScoreboard()
	verdicts := make([]models.GradingVerdict, 0, len(items))
	for _, item := range items {
		sub := byID[item.ID]
		sub.ItemID = item.ID
		v := Evaluate(item, mode, sub)
		board.Record(v)
		verdicts = append(verdicts, v)
	}
	return verdicts, board.Score()
}

// SubmissionText flattens a submission for storage and display.
func SubmissionText(sub models.Submission) string {
	switch {
	case len(sub.Blanks) > 0:
		return strings.Join(sub.Blanks, " / ")
	case sub.Choice != "":
		return sub.Choice
	default:
		return sub.Text
	}
}
