package grading

import (
	"testing"

	"github.com/dtnitsch/worksheet-kit/models"
)

func TestScoreboard(t *testing.T) {
	b := NewScoreboard()

	if got := b.Score(); got != (models.Score{}) {
		t.Errorf("empty Score() = %+v, want zero", got)
	}

	b.Record(models.GradingVerdict{ItemID: 1, Verdict: models.VerdictCorrect})
	b.Record(models.GradingVerdict{ItemID: 2, Verdict: models.VerdictUngraded})
	b.Record(models.GradingVerdict{ItemID: 3, Verdict: models.VerdictIncorrect})

	want := models.Score{Correct: 1, Graded: 2, Ungraded: 1, Percent: 50}
	if got := b.Score(); got != want {
		t.Errorf("Score() = %+v, want %+v", got, want)
	}

	// re-check replaces the earlier verdict
	b.Record(models.GradingVerdict{ItemID: 3, Verdict: models.VerdictCorrect})
	want = models.Score{Correct: 2, Graded: 2, Ungraded: 1, Percent: 100}
	if got := b.Score(); got != want {
		t.Errorf("Score() after re-check = %+v, want %+v", got, want)
	}

	if v, ok := b.Verdict(3); !ok || v != models.VerdictCorrect {
		t.Errorf("Verdict(3) = %v, %v; want correct, true", v, ok)
	}

	b.Reset()
	if got := b.Score(); got != (models.Score{}) {
		t.Errorf("Score() after Reset = %+v, want zero", got)
	}
	if _, ok := b.Verdict(1); ok {
		t.Error("Verdict(1) still present after Reset")
	}
}

func TestScoreboard_UngradedOnlyHasNoPercent(t *testing.T) {
	b := NewScoreboard()
	b.Record(models.GradingVerdict{ItemID: 1, Verdict: models.VerdictUngraded})

	got := b.Score()
	if got.Graded != 0 || got.Percent != 0 || got.Ungraded != 1 {
		t.Errorf("Score() = %+v, want only one ungraded", got)
	}
}
