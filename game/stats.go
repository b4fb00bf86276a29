package game

import (
	"math"

	"github.com/lixenwraith/spell-smash/projectile"
)

// Stats is the scoring state of one session
type Stats struct {
	BuildingIndex       int
	Streak              int
	BestStreak          int
	WordsCompleted      int
	PerfectWords        int
	TotalWrongAttempts  int
	CurrentWordMistakes int
	CorrectSubmits      int
}

// RecordWrong counts a mismatched submit and breaks the streak
func (s *Stats) RecordWrong() {
	s.TotalWrongAttempts++
	s.CurrentWordMistakes++
	s.Streak = 0
}

// RecordCorrect applies the streak rule for a matching submit
// A clean submit is the first one for the word with no deletions
func (s *Stats) RecordCorrect(clean bool) {
	s.CorrectSubmits++
	if !clean {
		s.Streak = 0
		return
	}
	s.Streak++
	s.BestStreak = max(s.BestStreak, s.Streak)
}

// CompleteWord counts a word whose projectile reached the building
func (s *Stats) CompleteWord(clean bool) {
	s.WordsCompleted++
	if clean {
		s.PerfectWords++
	}
}

// StartWord clears the per-word counters
func (s *Stats) StartWord() {
	s.CurrentWordMistakes = 0
}

// Accuracy is the percentage of submits that matched, 100 before any submit
func (s *Stats) Accuracy() int {
	total := s.CorrectSubmits + s.TotalWrongAttempts
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(s.CorrectSubmits) / float64(total) * 100))
}

// Power returns the bonus earned by a submit given the streak thresholds
func (s *Stats) Power(clean bool, fireStreak, superStreak int) projectile.Power {
	switch {
	case !clean:
		return projectile.PowerNormal
	case s.Streak >= superStreak:
		return projectile.PowerSuper
	case s.Streak >= fireStreak:
		return projectile.PowerFire
	default:
		return projectile.PowerNormal
	}
}
