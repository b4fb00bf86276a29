package game

import (
	"strings"

	"go.uber.org/zap"

	"github.com/lixenwraith/spell-smash/engine/fsm"
	"github.com/lixenwraith/spell-smash/event"
	"github.com/lixenwraith/spell-smash/parameter"
	"github.com/lixenwraith/spell-smash/physics"
	"github.com/lixenwraith/spell-smash/projectile"
	"github.com/lixenwraith/spell-smash/words"
)

// registerActions binds the names used by the round graph
func (s *Session) registerActions() {
	m := s.machine

	m.RegisterAction("PresentWord", func(s *Session, _ any) { s.presentWord() })
	m.RegisterAction("OpenInput", func(s *Session, _ any) { s.openInput() })
	m.RegisterAction("LaunchProjectile", func(s *Session, _ any) { s.launchProjectile() })
	m.RegisterAction("ArmMissTimer", func(s *Session, _ any) { s.armMissTimer() })
	m.RegisterAction("DisarmMissTimer", func(s *Session, _ any) { s.missTimer.Stop() })
	m.RegisterAction("CompleteLevel", func(s *Session, _ any) { s.completeLevel() })
	m.RegisterAction("BeginTransition", func(s *Session, _ any) { s.beginTransition() })
	m.RegisterAction("FinishSession", func(s *Session, _ any) { s.finishSession() })
	m.RegisterAction("EmitEvent", func(s *Session, args any) {
		if a, ok := args.(*fsm.EmitEventArgs); ok {
			s.fire(a.Type)
		}
	})

	m.RegisterGuard("BuildingDestroyed", func(s *Session) bool {
		return s.building != nil && s.building.IsDestroyed(s.building.Threshold())
	})
	m.RegisterGuard("BuildingStanding", func(s *Session) bool {
		return s.building != nil && !s.building.IsDestroyed(s.building.Threshold())
	})
	m.RegisterGuard("MoreBuildings", func(s *Session) bool {
		return s.stats.BuildingIndex < s.cfg.Session.Length
	})
	m.RegisterGuard("WordCarried", func(s *Session) bool {
		return s.carryOver
	})
}

// presentWord picks the next word, stages an empty projectile and speaks the word
func (s *Session) presentWord() {
	s.resetWord()
	difficulty := words.DifficultyForRound(
		s.stats.BuildingIndex,
		s.cfg.Session.DifficultyMin,
		s.cfg.Session.DifficultyMax,
		s.cfg.Session.Length,
	)
	s.word = s.pool.Next(difficulty)
	s.impactHandled = false
	s.projectile = s.newProjectile()

	s.setInput(false)
	s.input.Clear()
	s.speaker.Speak(s.word)

	s.queue.Emit(event.EventWordPresented, &event.WordPayload{Word: s.word})
	s.log.Debug("word presented", zap.String("word", s.word), zap.Int("difficulty", difficulty))

	s.wordTimer = s.after(parameter.ShowWordDuration, func() {
		// A crossing during presentation holds the word for the next building
		if s.thresholdCrossed || !s.machine.IsIn(s.id.showingWord) {
			return
		}
		s.fire(event.EventWordShown)
	})
}

func (s *Session) openInput() {
	s.carryOver = false
	if s.projectile == nil {
		s.projectile = s.newProjectile()
	}
	s.setInput(true)
}

// launchProjectile applies the earned bonus and fires the word at the locked aim angle
func (s *Session) launchProjectile() {
	s.setInput(false)
	s.syncProjectile()

	s.projectile.SetPower(s.power)
	vx, vy := s.cfg.LaunchVelocity(s.aimAngle)
	s.projectile.Launch(physics.Vec2{X: vx, Y: vy}, s.power.SpeedMultiplier())

	s.queue.Emit(event.EventLaunched, &event.LaunchPayload{
		Letters: s.projectile.Len(),
		Angle:   s.aimAngle,
		Power:   int(s.power),
	})
	s.log.Debug("launched",
		zap.String("word", s.word),
		zap.Float64("angle", s.aimAngle),
		zap.Stringer("power", s.power),
	)
}

// syncProjectile restages the letters when they diverged from the matched word
func (s *Session) syncProjectile() {
	if s.projectile != nil && s.projectile.Staged() && s.projectile.Text() == s.word {
		return
	}
	if s.projectile != nil {
		s.projectile.Destroy()
	}
	s.projectile = s.newProjectile()
	for i, ch := range s.word {
		s.projectile.AddLetter(ch, i)
	}
}

func (s *Session) armMissTimer() {
	s.impactHandled = false
	s.missTimer = s.after(parameter.MissTimeout, s.onMiss)
}

// onMiss advances the round when the launched word never touched the building
func (s *Session) onMiss() {
	if s.impactHandled || !s.machine.IsIn(s.id.watchingImpact) {
		return
	}
	// A crossing already scheduled the level end, a new word would be thrown away
	if s.thresholdCrossed {
		return
	}
	s.retire(parameter.RetireDelay)
	s.queue.Emit(event.EventMissed, &event.WordPayload{Word: s.word, Attempts: s.stats.CurrentWordMistakes})
	s.log.Debug("missed", zap.String("word", s.word))
	s.fire(event.EventMissed)
}

// completeLevel advances the building index and decides between the next building and victory
func (s *Session) completeLevel() {
	s.setInput(false)
	s.settleTimer.Stop()
	s.destructionPercent = 100
	s.stats.BuildingIndex++

	payload := &event.RoundPayload{
		BuildingIndex: s.stats.BuildingIndex - 1,
		SessionLength: s.cfg.Session.Length,
	}
	if s.building != nil {
		payload.Pattern = s.building.Config().Pattern.String()
	}
	s.queue.Emit(event.EventBuildingDestroyed, payload)
	s.log.Info("building destroyed",
		zap.Int("index", payload.BuildingIndex),
		zap.String("pattern", payload.Pattern),
	)

	delay := parameter.LevelCompleteDelay
	if s.stats.BuildingIndex >= s.cfg.Session.Length {
		s.queue.Emit(event.EventVictory, nil)
		delay = parameter.VictoryDelay
	}
	s.after(delay, func() {
		if s.machine.IsIn(s.id.levelComplete) {
			s.fire(event.EventLevelDone)
		}
	})
}

// beginTransition builds the next building one viewport to the right and pans to it
func (s *Session) beginTransition() {
	s.cleanupRetired()
	if !s.carryOver && s.projectile != nil {
		s.projectile.Destroy()
		s.projectile = nil
	}

	next, err := s.generateBuilding(s.stats.BuildingIndex, parameter.ScreenWidth)
	if err != nil {
		// Tier table is validated at load, a failure here leaves the old building in play
		s.log.Error("next building", zap.Error(err))
		s.resetBuildingFlags()
		s.fire(event.EventTransitionDone)
		return
	}
	s.incoming = next
	carry := s.carryOver
	s.resetBuildingFlags()
	s.carryOver = carry

	s.camera = 0
	s.panning = true
	s.panStart = s.sched.Now()
	s.after(parameter.CameraPanDuration, s.finishTransition)
}

func (s *Session) finishTransition() {
	if !s.machine.IsIn(s.id.transitionToNext) {
		return
	}
	if s.building != nil {
		s.building.Destroy()
	}
	s.incoming.Offset(-parameter.ScreenWidth)
	s.building = s.incoming
	s.incoming = nil
	s.camera = 0
	s.panning = false

	s.emitRoundStarted()
	s.fire(event.EventTransitionDone)
}

func (s *Session) finishSession() {
	s.setInput(false)
	s.finished = true
	summary := s.summary()
	s.queue.Emit(event.EventGameComplete, summary)
	s.log.Info("session complete",
		zap.Int("buildings", summary.Buildings),
		zap.Int("words", summary.WordsCompleted),
		zap.Int("perfect", summary.PerfectWords),
		zap.Int("wrong", summary.TotalWrongAttempts),
		zap.Int("best_streak", summary.BestStreak),
		zap.Int("accuracy", summary.Accuracy),
	)
}

func (s *Session) summary() *event.SessionPayload {
	return &event.SessionPayload{
		StartedAt:          s.startedAt,
		FinishedAt:         s.clock.Now(),
		Buildings:          s.stats.BuildingIndex,
		WordsCompleted:     s.stats.WordsCompleted,
		PerfectWords:       s.stats.PerfectWords,
		TotalWrongAttempts: s.stats.TotalWrongAttempts,
		BestStreak:         s.stats.BestStreak,
		Accuracy:           s.stats.Accuracy(),
	}
}

// LetterTyped stages a letter of the projectile
func (s *Session) LetterTyped(ch rune, index int) {
	if !s.inputOpen || s.projectile == nil {
		return
	}
	if s.projectile.AddLetter(ch, index) {
		s.queue.Emit(event.EventLetterAdded, &event.LetterPayload{Char: ch, Index: index})
	}
}

// LetterDeleted removes the last staged letter, which disqualifies the word from the streak
func (s *Session) LetterDeleted(index int) {
	if !s.inputOpen || s.projectile == nil {
		return
	}
	if s.projectile.RemoveLetter() {
		s.deletionUsed = true
		s.queue.Emit(event.EventLetterRemoved, &event.LetterPayload{Index: index})
	}
}

// Submit compares the typed text against the word, case-insensitively
// Returns true on a match
func (s *Session) Submit(text string) bool {
	if !s.inputOpen || !s.machine.IsIn(s.id.waitingForInput) {
		return false
	}

	typed := strings.ToLower(strings.TrimSpace(text))
	if typed == s.word {
		s.clean = s.stats.CurrentWordMistakes == 0 && !s.deletionUsed
		s.stats.RecordCorrect(s.clean)
		s.power = s.stats.Power(s.clean, s.cfg.Session.FireStreak, s.cfg.Session.SuperStreak)
		s.aimLocked = true
		s.fire(event.EventWordMatched)
		return true
	}

	s.stats.RecordWrong()
	if s.projectile != nil {
		s.projectile.Clear()
		s.retired = append(s.retired, s.projectile)
	}
	s.projectile = s.newProjectile()
	s.input.Clear()
	if r := []rune(s.word); len(r) > 0 {
		s.hint = string(r[:1])
	}
	s.feedbackTill = s.sched.Now() + parameter.FeedbackDuration
	s.queue.Emit(event.EventWrongSubmit, &event.WordPayload{Word: typed, Attempts: s.stats.CurrentWordMistakes})
	s.log.Debug("wrong submit",
		zap.String("word", s.word),
		zap.String("typed", typed),
		zap.Int("mistakes", s.stats.CurrentWordMistakes),
	)
	return false
}

// HearAgain repeats the word and briefly shows it
func (s *Session) HearAgain() {
	if !s.machine.IsIn(s.id.waitingForInput) || s.word == "" {
		return
	}
	s.speaker.Speak(s.word)
	s.revealUntil = s.sched.Now() + parameter.HearAgainReveal
}

// ToggleShowWord switches between visual and audio-only presentation
func (s *Session) ToggleShowWord() bool {
	s.showWord = !s.showWord
	return s.showWord
}

// Power returns the bonus of the current word
func (s *Session) Power() projectile.Power {
	return s.power
}
