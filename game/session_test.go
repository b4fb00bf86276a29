package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/spell-smash/config"
	"github.com/lixenwraith/spell-smash/engine"
	"github.com/lixenwraith/spell-smash/event"
	"github.com/lixenwraith/spell-smash/parameter"
	"github.com/lixenwraith/spell-smash/physics"
	"github.com/lixenwraith/spell-smash/projectile"
)

const frame = 16 * time.Millisecond

type fakeInput struct {
	enabled bool
	clears  int
}

func (f *fakeInput) Enable()      { f.enabled = true }
func (f *fakeInput) Disable()     { f.enabled = false }
func (f *fakeInput) Clear()       { f.clears++ }
func (f *fakeInput) Text() string { return "" }

type mockSpeaker struct {
	mock.Mock
}

func (m *mockSpeaker) Speak(word string) {
	m.Called(word)
}

type harness struct {
	s       *Session
	world   *physics.MockWorld
	input   *fakeInput
	speaker *mockSpeaker
}

func newHarness(t *testing.T, mutate func(*config.Config)) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.Session.Length = 4
	cfg.Launch.AimSweep = false
	if mutate != nil {
		mutate(cfg)
	}
	cfg.Clamp()

	h := &harness{
		world:   physics.NewMockWorld(),
		input:   &fakeInput{},
		speaker: &mockSpeaker{},
	}
	h.speaker.On("Speak", mock.Anything).Return()

	s, err := NewSession(cfg, Deps{
		World:   h.world,
		Input:   h.input,
		Speaker: h.speaker,
		Rand:    rand.New(rand.NewSource(42)),
		Clock:   engine.NewManualClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	require.NoError(t, s.Start())
	h.s = s
	return h
}

// advanceUntil ticks until the phase is reached and returns the phases seen on the way
func (h *harness) advanceUntil(t *testing.T, phase string, limit time.Duration) []string {
	t.Helper()
	trace := []string{h.s.Phase()}
	for elapsed := time.Duration(0); elapsed <= limit; elapsed += frame {
		if h.s.Phase() == phase {
			return trace
		}
		h.s.Tick(frame)
		if trace[len(trace)-1] != h.s.Phase() {
			trace = append(trace, h.s.Phase())
		}
	}
	require.Equal(t, phase, h.s.Phase(), "phase trace %v", trace)
	return trace
}

func (h *harness) typeWord(word string) {
	for i, ch := range word {
		h.s.LetterTyped(ch, i)
	}
}

func (h *harness) submitCurrent(t *testing.T) {
	t.Helper()
	word := h.s.CurrentWord()
	h.typeWord(word)
	require.True(t, h.s.Submit(word))
	require.Equal(t, "WatchingImpact", h.s.Phase())
}

func (h *harness) hit(t *testing.T) {
	t.Helper()
	p := h.s.Projectile()
	require.NotNil(t, p)
	require.NotZero(t, p.Len())
	h.world.Collide(p.Letters()[0].Body, h.s.Building().Blocks()[0].Body)
	h.s.Tick(frame)
}

// flatten lays every block on the ground
func (h *harness) flatten() {
	for _, blk := range h.s.Building().Blocks() {
		pos := h.world.Position(blk.Body)
		h.world.SetPosition(blk.Body, physics.Vec2{X: pos.X, Y: parameter.GroundY - blk.Height/2})
	}
}

func countEvents(events []event.GameEvent, et event.EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == et {
			n++
		}
	}
	return n
}

func TestSessionStartsShowingWord(t *testing.T) {
	h := newHarness(t, nil)

	assert.Equal(t, "ShowingWord", h.s.Phase())
	assert.NotEmpty(t, h.s.CurrentWord())
	assert.False(t, h.input.enabled)
	h.speaker.AssertCalled(t, "Speak", h.s.CurrentWord())

	view := h.s.Snapshot()
	assert.Equal(t, h.s.CurrentWord(), view.Word)
	assert.Zero(t, view.Destruction)

	h.advanceUntil(t, "WaitingForInput", parameter.ShowWordDuration)
	assert.True(t, h.input.enabled)
	assert.Empty(t, h.s.Snapshot().Word, "word hidden once input opens")
}

func TestCleanWordAtStreakThreeGoesSuper(t *testing.T) {
	h := newHarness(t, nil)
	h.advanceUntil(t, "WaitingForInput", parameter.ShowWordDuration)

	h.s.word = "cat"
	h.s.stats.Streak = 3
	h.s.stats.BestStreak = 3
	h.typeWord("cat")
	require.True(t, h.s.Submit("CAT"))

	assert.Equal(t, projectile.PowerSuper, h.s.Power())
	assert.True(t, h.s.Power().OnFire())
	assert.Equal(t, 4, h.s.Stats().Streak)
	assert.Equal(t, 4, h.s.Stats().BestStreak)
	assert.Equal(t, projectile.PowerSuper, h.s.Projectile().Power())
	assert.True(t, h.s.Projectile().Launched())
}

func TestPriorWrongAttemptResetsStreak(t *testing.T) {
	h := newHarness(t, nil)
	h.advanceUntil(t, "WaitingForInput", parameter.ShowWordDuration)

	h.s.word = "cat"
	h.s.stats.Streak = 3
	h.s.stats.BestStreak = 3

	h.typeWord("cta")
	assert.False(t, h.s.Submit("cta"))
	assert.Equal(t, "WaitingForInput", h.s.Phase())
	assert.Zero(t, h.s.Stats().Streak)
	assert.Equal(t, 1, h.s.Stats().CurrentWordMistakes)
	assert.Equal(t, "c", h.s.Snapshot().Hint)
	assert.True(t, h.s.Snapshot().WrongShown)
	assert.Zero(t, h.s.Projectile().Len(), "fresh projectile after a wrong submit")

	// Identical wrong text counts again
	assert.False(t, h.s.Submit("cta"))
	assert.Equal(t, 2, h.s.Stats().TotalWrongAttempts)

	h.typeWord("cat")
	require.True(t, h.s.Submit("cat"))
	assert.Equal(t, projectile.PowerNormal, h.s.Power())
	assert.Zero(t, h.s.Stats().Streak)
	assert.Equal(t, 3, h.s.Stats().BestStreak, "best streak never decreases")
}

func TestDeletionDisqualifiesStreak(t *testing.T) {
	h := newHarness(t, nil)
	h.advanceUntil(t, "WaitingForInput", parameter.ShowWordDuration)
	h.s.stats.Streak = 2

	word := h.s.CurrentWord()
	h.typeWord(word + "x")
	h.s.LetterDeleted(len(word))
	assert.Equal(t, word, h.s.Projectile().Text())

	require.True(t, h.s.Submit(word))
	assert.Zero(t, h.s.Stats().Streak)
	assert.Equal(t, projectile.PowerNormal, h.s.Power())
}

func TestSessionOfFourEndsInGameComplete(t *testing.T) {
	h := newHarness(t, nil)
	var trace []string
	record := func(phases []string) {
		for _, p := range phases {
			if len(trace) == 0 || trace[len(trace)-1] != p {
				trace = append(trace, p)
			}
		}
	}

	for i := 0; i < 4; i++ {
		record(h.advanceUntil(t, "WaitingForInput", parameter.CameraPanDuration+parameter.ShowWordDuration+time.Second))
		h.submitCurrent(t)
		h.hit(t)
		h.flatten()
		record(h.advanceUntil(t, "LevelComplete", parameter.ThresholdDelay+time.Second))
		assert.Equal(t, i+1, h.s.Stats().BuildingIndex)
		if i < 3 {
			record(h.advanceUntil(t, "TransitionToNext", parameter.LevelCompleteDelay+time.Second))
		}
	}
	record(h.advanceUntil(t, "GameComplete", parameter.VictoryDelay+time.Second))

	transitions := 0
	for _, phase := range trace {
		if phase == "TransitionToNext" {
			transitions++
		}
	}
	assert.Equal(t, 3, transitions)
	assert.True(t, h.s.Finished())
	assert.False(t, h.input.enabled)

	// Terminal state stays put
	h.advanceUntil(t, "GameComplete", time.Second)
	for i := 0; i < 10; i++ {
		h.s.Tick(frame)
	}
	assert.Equal(t, "GameComplete", h.s.Phase())

	events := h.s.Queue().Consume()
	assert.Equal(t, 4, countEvents(events, event.EventBuildingDestroyed))
	assert.Equal(t, 1, countEvents(events, event.EventVictory))
	require.Equal(t, 1, countEvents(events, event.EventGameComplete))
	for _, ev := range events {
		if ev.Type == event.EventGameComplete {
			summary := ev.Payload.(*event.SessionPayload)
			assert.Equal(t, 4, summary.Buildings)
			assert.Equal(t, 4, summary.WordsCompleted)
			assert.Equal(t, 4, summary.PerfectWords)
			assert.Equal(t, 4, summary.BestStreak)
			assert.Equal(t, 100, summary.Accuracy)
		}
	}
}

func TestMissTimeoutPresentsNextWord(t *testing.T) {
	h := newHarness(t, nil)
	h.advanceUntil(t, "WaitingForInput", parameter.ShowWordDuration)
	first := h.s.CurrentWord()
	h.submitCurrent(t)

	h.advanceUntil(t, "ShowingWord", parameter.MissTimeout+frame)
	assert.Zero(t, h.s.Stats().WordsCompleted)
	assert.Equal(t, 0, h.s.Stats().BuildingIndex)
	assert.NotEqual(t, first, h.s.CurrentWord())
	assert.Equal(t, 1, countEvents(h.s.Queue().Consume(), event.EventMissed))
}

func TestMissAfterThresholdCrossingKeepsWord(t *testing.T) {
	h := newHarness(t, nil)
	h.advanceUntil(t, "WaitingForInput", parameter.ShowWordDuration)
	h.submitCurrent(t)
	h.hit(t)
	h.advanceUntil(t, "ShowingWord", parameter.SettleDelay+frame)
	h.advanceUntil(t, "WaitingForInput", parameter.ShowWordDuration)
	h.submitCurrent(t)

	// The second word flies past, then the building topples late
	for elapsed := time.Duration(0); elapsed < parameter.MissTimeout-200*time.Millisecond; elapsed += frame {
		h.s.Tick(frame)
	}
	require.Equal(t, "WatchingImpact", h.s.Phase())
	h.s.Queue().Consume()
	word := h.s.CurrentWord()

	h.flatten()
	trace := h.advanceUntil(t, "LevelComplete", parameter.ThresholdDelay+4*frame)
	assert.NotContains(t, trace, "ShowingWord")
	assert.Equal(t, word, h.s.CurrentWord())

	events := h.s.Queue().Consume()
	assert.Zero(t, countEvents(events, event.EventMissed))
	assert.Zero(t, countEvents(events, event.EventWordPresented))
	assert.Equal(t, 1, countEvents(events, event.EventThresholdCrossed))
}

func TestDuplicateCollisionsProcessOneImpact(t *testing.T) {
	h := newHarness(t, nil)
	h.advanceUntil(t, "WaitingForInput", parameter.ShowWordDuration)
	h.submitCurrent(t)

	letter := h.s.Projectile().Letters()[0].Body
	block := h.s.Building().Blocks()[0].Body
	h.world.Collide(letter, block)
	h.world.Collide(block, letter)
	h.s.Tick(frame)
	h.world.Collide(letter, block)
	h.s.Tick(frame)

	assert.Equal(t, 1, h.s.Stats().WordsCompleted)
	assert.True(t, h.s.Building().Released())
	assert.Nil(t, h.s.Projectile(), "spent projectile is retired")
	assert.Equal(t, 1, countEvents(h.s.Queue().Consume(), event.EventImpact))

	// The miss timer was cancelled by the impact
	h.advanceUntil(t, "ShowingWord", parameter.SettleDelay+frame)
	assert.Equal(t, 1, h.s.Stats().WordsCompleted)
	assert.Zero(t, countEvents(h.s.Queue().Consume(), event.EventMissed))
}

func TestCollisionFiltering(t *testing.T) {
	h := newHarness(t, nil)
	h.advanceUntil(t, "WaitingForInput", parameter.ShowWordDuration)

	// Staged letters touching the building do not count
	h.typeWord(h.s.CurrentWord())
	letter := h.s.Projectile().Letters()[0].Body
	block := h.s.Building().Blocks()[0].Body
	h.world.Collide(letter, block)
	h.s.Tick(frame)
	assert.False(t, h.s.Building().Released())

	require.True(t, h.s.Submit(h.s.CurrentWord()))
	letter = h.s.Projectile().Letters()[0].Body
	h.world.Collide(letter, h.s.ground)
	h.world.Collide(letter, h.s.Building().Pedestal())
	h.s.Tick(frame)
	assert.False(t, h.s.Building().Released())
	assert.Zero(t, h.s.Stats().WordsCompleted)
}

func TestImpactBlastPushesNearbyBlocks(t *testing.T) {
	h := newHarness(t, nil)
	h.advanceUntil(t, "WaitingForInput", parameter.ShowWordDuration)
	h.submitCurrent(t)
	h.hit(t)

	pushed := 0
	for _, blk := range h.s.Building().Blocks() {
		body, _ := h.world.Body(blk.Body)
		if body.Force.Len() > 0 {
			pushed++
			assert.LessOrEqual(t, body.Force.Len(), parameter.BlastForce+1e-12)
		}
	}
	assert.Positive(t, pushed)
	require.NotNil(t, h.s.Snapshot().Impact)
}

func TestStandingBuildingKeepsRound(t *testing.T) {
	h := newHarness(t, nil)
	h.advanceUntil(t, "WaitingForInput", parameter.ShowWordDuration)
	h.submitCurrent(t)
	h.hit(t)

	h.advanceUntil(t, "ShowingWord", parameter.SettleDelay+frame)
	assert.Equal(t, 0, h.s.Stats().BuildingIndex)
	assert.Zero(t, h.s.DestructionPercent())
}

func TestThresholdDuringShowingWordCarriesWord(t *testing.T) {
	h := newHarness(t, nil)
	h.advanceUntil(t, "WaitingForInput", parameter.ShowWordDuration)
	h.submitCurrent(t)
	h.hit(t)
	h.advanceUntil(t, "ShowingWord", parameter.SettleDelay+frame)
	carried := h.s.CurrentWord()
	staged := h.s.Projectile()

	h.flatten()
	h.s.Tick(frame)
	assert.Equal(t, 100, h.s.DestructionPercent())
	assert.False(t, h.s.InputOpen())

	trace := h.advanceUntil(t, "TransitionToNext", parameter.ThresholdDelay+parameter.LevelCompleteDelay+time.Second)
	assert.Contains(t, trace, "LevelComplete")

	trace = h.advanceUntil(t, "WaitingForInput", parameter.CameraPanDuration+time.Second)
	assert.NotContains(t, trace, "ShowingWord")
	assert.Equal(t, carried, h.s.CurrentWord())
	assert.Same(t, staged, h.s.Projectile())
	assert.Equal(t, 1, h.s.Stats().BuildingIndex)
	assert.True(t, h.input.enabled)
	assert.Zero(t, h.s.DestructionPercent())
	assert.Equal(t, 1, countEvents(h.s.Queue().Consume(), event.EventThresholdCrossed))
}

func TestTransitionPansAndReplacesBuilding(t *testing.T) {
	h := newHarness(t, nil)
	h.advanceUntil(t, "WaitingForInput", parameter.ShowWordDuration)
	old := h.s.Building().Blocks()[0].Body
	h.submitCurrent(t)
	h.hit(t)
	h.flatten()
	h.advanceUntil(t, "TransitionToNext", parameter.ThresholdDelay+parameter.LevelCompleteDelay+time.Second)

	for i := 0; i < int(parameter.CameraPanDuration/2/frame); i++ {
		h.s.Tick(frame)
	}
	view := h.s.Snapshot()
	assert.InDelta(t, parameter.ScreenWidth/2, view.Camera, 40)
	assert.Len(t, view.Pedestals, 2)

	h.advanceUntil(t, "ShowingWord", parameter.CameraPanDuration)
	assert.Zero(t, h.s.Snapshot().Camera)
	assert.False(t, h.world.Exists(old))
	assert.InDelta(t, parameter.BuildingX, h.s.Building().Config().OriginX, 1e-9)
	assert.True(t, h.s.Building().Frozen())
}

func TestRestartTearsDownEverything(t *testing.T) {
	h := newHarness(t, nil)
	h.advanceUntil(t, "WaitingForInput", parameter.ShowWordDuration)
	h.typeWord("zz")
	h.s.Submit("zz")
	h.submitCurrent(t)
	h.hit(t)

	require.NoError(t, h.s.Restart())
	assert.Equal(t, "ShowingWord", h.s.Phase())
	assert.Equal(t, Stats{}, h.s.Stats())

	b := h.s.Building()
	want := 1 + len(b.Blocks()) + 1 // ground, blocks, pedestal
	assert.Equal(t, want, h.world.BodyCount())
	assert.Zero(t, h.world.ConstraintCount())
	assert.Equal(t, 1, h.s.sched.Pending(), "only the presentation timer survives")
}

func TestRebuildReplacesBlocks(t *testing.T) {
	h := newHarness(t, nil)
	h.advanceUntil(t, "WaitingForInput", parameter.ShowWordDuration)
	before := h.s.Building().Blocks()

	require.NoError(t, h.s.Rebuild())
	after := h.s.Building().Blocks()
	assert.Len(t, after, len(before))
	assert.False(t, h.world.Exists(before[0].Body))
	assert.True(t, h.s.Building().Frozen())
}

func TestHearAgainRevealsWord(t *testing.T) {
	h := newHarness(t, nil)
	h.advanceUntil(t, "WaitingForInput", parameter.ShowWordDuration)
	word := h.s.CurrentWord()
	h.s.Submit("zz")
	require.Equal(t, string([]rune(word)[:1]), h.s.Snapshot().Hint)

	h.s.HearAgain()
	view := h.s.Snapshot()
	assert.Equal(t, word, view.Word)
	assert.Empty(t, view.Hint, "hint hidden during the reveal")
	h.speaker.AssertNumberOfCalls(t, "Speak", 2)

	for elapsed := time.Duration(0); elapsed <= parameter.HearAgainReveal; elapsed += frame {
		h.s.Tick(frame)
	}
	assert.Empty(t, h.s.Snapshot().Word)
}

func TestAudioOnlyModeHidesWord(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Session.ShowWord = false })
	assert.Equal(t, "ShowingWord", h.s.Phase())
	assert.Empty(t, h.s.Snapshot().Word)
	h.speaker.AssertCalled(t, "Speak", h.s.CurrentWord())

	assert.True(t, h.s.ToggleShowWord())
	assert.Equal(t, h.s.CurrentWord(), h.s.Snapshot().Word)
}

func TestInputIgnoredWhileClosed(t *testing.T) {
	h := newHarness(t, nil)
	h.s.LetterTyped('a', 0)
	assert.Zero(t, h.s.Projectile().Len())
	assert.False(t, h.s.Submit(h.s.CurrentWord()))
	assert.Equal(t, "ShowingWord", h.s.Phase())
}

func TestAimSweepLocksAtSubmit(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Launch.AimSweep = true })
	h.advanceUntil(t, "WaitingForInput", parameter.ShowWordDuration)

	angle := h.s.Snapshot().AimAngle
	assert.InDelta(t, h.s.cfg.Launch.Angle, angle, parameter.AimSweepSpan+1e-9)

	h.submitCurrent(t)
	locked := h.s.Snapshot().AimAngle
	for i := 0; i < 20; i++ {
		h.s.Tick(frame)
	}
	assert.Equal(t, locked, h.s.Snapshot().AimAngle)
}

func TestDestructionPercentClamps(t *testing.T) {
	assert.Zero(t, DestructionPercent(160, 100, 104, false), "no impact yet")
	assert.Zero(t, DestructionPercent(160, 200, 104, true), "above initial height")
	assert.Equal(t, 100, DestructionPercent(160, 0, 104, true), "overshoot below threshold")
	assert.Equal(t, 100, DestructionPercent(160, 104, 104, true))
	assert.Equal(t, 50, DestructionPercent(160, 132, 104, true))
	assert.Equal(t, 100, DestructionPercent(100, 90, 100, true), "degenerate span")
}

func TestEaseInOutSine(t *testing.T) {
	assert.InDelta(t, 0, EaseInOutSine(0), 1e-12)
	assert.InDelta(t, 0.5, EaseInOutSine(0.5), 1e-12)
	assert.InDelta(t, 1, EaseInOutSine(1), 1e-12)
}
