package grading

import (
	"log/slog"

	"github.com/dtnitsch/worksheet-kit/models"
)

// Recorder stores grading sessions. The history database implements it.
type Recorder interface {
	CreateGradingSession(packTitle string, mode models.Mode, itemCount int) (string, error)
	RecordResult(sessionID string, v models.GradingVerdict, submitted string) error
	UpdateScore(sessionID string, s models.Score) error
}

// RecordRun stores one batch grading run and returns the session id.
// Failures are logged and never abort grading; an empty id means nothing was stored.
func RecordRun(logger *slog.Logger, r Recorder, title string, mode models.Mode, subs []models.Submission, verdicts []models.GradingVerdict, score models.Score) string {
	id, err := r.CreateGradingSession(title, mode, len(verdicts))
	if err != nil {
		logger.Warn("failed to create grading session", "error", err)
		return ""
	}

	submitted := make(map[int]string, len(subs))
	for _, sub := range subs {
		submitted[sub.ItemID] = SubmissionText(sub)
	}
	for _, v := range verdicts {
		if err := r.RecordResult(id, v, submitted[v.ItemID]); err != nil {
			logger.Warn("failed to record result", "session_id", id, "item_id", v.ItemID, "error", err)
		}
	}
	if err := r.UpdateScore(id, score); err != nil {
		logger.Warn("failed to update score", "session_id", id, "error", err)
	}
	return id
}
