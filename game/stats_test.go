package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/spell-smash/config"
	"github.com/lixenwraith/spell-smash/projectile"
)

func TestStreakRules(t *testing.T) {
	var s Stats

	for i := 0; i < 3; i++ {
		s.RecordCorrect(true)
	}
	assert.Equal(t, 3, s.Streak)
	assert.Equal(t, 3, s.BestStreak)

	s.RecordWrong()
	assert.Zero(t, s.Streak)
	assert.Equal(t, 3, s.BestStreak)
	assert.Equal(t, 1, s.CurrentWordMistakes)

	s.RecordCorrect(false)
	assert.Zero(t, s.Streak)
	assert.Equal(t, 3, s.BestStreak)

	s.StartWord()
	assert.Zero(t, s.CurrentWordMistakes)
	assert.Equal(t, 1, s.TotalWrongAttempts)
}

func TestCompleteWordCountsPerfect(t *testing.T) {
	var s Stats
	s.CompleteWord(true)
	s.CompleteWord(false)
	assert.Equal(t, 2, s.WordsCompleted)
	assert.Equal(t, 1, s.PerfectWords)
	assert.LessOrEqual(t, s.PerfectWords, s.WordsCompleted)
}

func TestAccuracy(t *testing.T) {
	var s Stats
	assert.Equal(t, 100, s.Accuracy())

	s.RecordCorrect(true)
	s.RecordCorrect(true)
	s.RecordWrong()
	assert.Equal(t, 67, s.Accuracy())
}

func TestPowerThresholds(t *testing.T) {
	cases := []struct {
		name        string
		streak      int
		clean       bool
		fire, super int
		want        projectile.Power
	}{
		{"below", 2, true, 3, 3, projectile.PowerNormal},
		{"both at three", 3, true, 3, 3, projectile.PowerSuper},
		{"fire only", 3, true, 3, 5, projectile.PowerFire},
		{"super later", 5, true, 3, 5, projectile.PowerSuper},
		{"not clean", 7, false, 3, 3, projectile.PowerNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Stats{Streak: tc.streak, BestStreak: tc.streak}
			assert.Equal(t, tc.want, s.Power(tc.clean, tc.fire, tc.super))
		})
	}
}

func TestDefaultThresholdsGoStraightToSuper(t *testing.T) {
	session := config.Default().Session
	for streak := 0; streak <= 5; streak++ {
		s := Stats{Streak: streak}
		assert.NotEqual(t, projectile.PowerFire, s.Power(true, session.FireStreak, session.SuperStreak), "streak %d", streak)
	}
	s := Stats{Streak: session.SuperStreak}
	assert.Equal(t, projectile.PowerSuper, s.Power(true, session.FireStreak, session.SuperStreak))
}
