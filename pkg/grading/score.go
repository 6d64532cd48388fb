package grading

import "github.com/dtnitsch/worksheet-kit/models"

// Scoreboard keeps the running score of an interactive session.
// Ungraded items never count towards the denominator. Re-checking an item
// replaces its earlier verdict. A Scoreboard is not safe for concurrent use.
type Scoreboard struct {
	verdicts map[int]models.Verdict
}

// NewScoreboard returns an empty scoreboard.
func NewScoreboard() *Scoreboard {
	return &Scoreboard{verdicts: make(map[int]models.Verdict)}
}

// Record stores the verdict for its item.
func (s *Scoreboard) Record(v models.GradingVerdict) {
	s.verdicts[v.ItemID] = v.Verdict
}

// Verdict returns the last verdict recorded for an item.
func (s *Scoreboard) Verdict(itemID int) (models.Verdict, bool) {
	v, ok := s.verdicts[itemID]
	return v, ok
}

// Reset clears every recorded verdict, e.g. after a mode switch.
func (s *Scoreboard) Reset() {
	clear(s.verdicts)
}

// Score returns the current totals.
func (s *Scoreboard) Score() models.Score {
	var sc models.Score
	for _, v := range s.verdicts {
		switch v {
		case models.VerdictCorrect:
			sc.Correct++
			sc.Graded++
		case models.VerdictIncorrect:
			sc.Graded++
		case models.VerdictUngraded:
			sc.Ungraded++
		}
	}
	if sc.Graded > 0 {
		sc.Percent = float64(sc.Correct) * 100 / float64(sc.Graded)
	}
	return sc
}
