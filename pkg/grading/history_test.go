package grading

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/dtnitsch/worksheet-kit/models"
)

type memRecorder struct {
	createErr error
	title     string
	results   map[int]string
	score     models.Score
}

func (m *memRecorder) CreateGradingSession(packTitle string, mode models.Mode, itemCount int) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.title = packTitle
	m.results = make(map[int]string)
	return "s1", nil
}

func (m *memRecorder) RecordResult(sessionID string, v models.GradingVerdict, submitted string) error {
	m.results[v.ItemID] = submitted
	return nil
}

func (m *memRecorder) UpdateScore(sessionID string, s models.Score) error {
	m.score = s
	return nil
}

func TestRecordRun(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	verdicts := []models.GradingVerdict{
		{ItemID: 1, Verdict: models.VerdictCorrect, Answer: "keeper"},
		{ItemID: 2, Verdict: models.VerdictIncorrect, Answer: "stairs / boats"},
	}
	subs := []models.Submission{
		{ItemID: 1, Text: "the keeper"},
		{ItemID: 2, Blanks: []string{"steps", "boats"}},
	}
	score := models.Score{Correct: 1, Graded: 2, Percent: 50}

	rec := &memRecorder{}
	id := RecordRun(logger, rec, "The Lighthouse", models.ModeAdapted, subs, verdicts, score)
	if id != "s1" {
		t.Errorf("RecordRun() id = %q, want s1", id)
	}
	if rec.title != "The Lighthouse" {
		t.Errorf("title = %q", rec.title)
	}
	if rec.results[2] != "steps / boats" {
		t.Errorf("item 2 submitted = %q", rec.results[2])
	}
	if rec.score != score {
		t.Errorf("score = %+v, want %+v", rec.score, score)
	}

	failing := &memRecorder{createErr: errors.New("read-only database")}
	if id := RecordRun(logger, failing, "T", models.ModeAdapted, subs, verdicts, score); id != "" {
		t.Errorf("RecordRun() on failure = %q, want empty", id)
	}
}
