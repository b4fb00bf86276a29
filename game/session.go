package game

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/spell-smash/asset"
	"github.com/lixenwraith/spell-smash/building"
	"github.com/lixenwraith/spell-smash/config"
	"github.com/lixenwraith/spell-smash/engine"
	"github.com/lixenwraith/spell-smash/engine/fsm"
	"github.com/lixenwraith/spell-smash/event"
	"github.com/lixenwraith/spell-smash/parameter"
	"github.com/lixenwraith/spell-smash/physics"
	"github.com/lixenwraith/spell-smash/projectile"
	"github.com/lixenwraith/spell-smash/words"
)

// Deps are the collaborators a session drives
// Nil fields fall back to no-op implementations, World is required
type Deps struct {
	World   physics.World
	Queue   *event.EventQueue
	Input   Input
	Speaker Speaker
	Logger  *zap.Logger
	Rand    *rand.Rand
	Clock   engine.TimeProvider // Wall clock for the session summary
}

// states caches the IDs of the round graph
type states struct {
	playing          fsm.StateID
	showingWord      fsm.StateID
	waitingForInput  fsm.StateID
	launching        fsm.StateID
	watchingImpact   fsm.StateID
	levelComplete    fsm.StateID
	transitionToNext fsm.StateID
	gameComplete     fsm.StateID
}

// Session runs one game: a sequence of buildings knocked down by typed words
// Not thread-safe, every method is called from the game loop
type Session struct {
	cfg     *config.Config
	world   physics.World
	queue   *event.EventQueue
	input   Input
	speaker Speaker
	log     *zap.Logger
	rng     *rand.Rand
	clock   engine.TimeProvider

	sched   *engine.Scheduler
	machine *fsm.Machine[*Session]
	id      states

	pool   *words.Pool
	tiers  []building.Tier
	ground physics.BodyID

	stats      Stats
	building   *building.Building
	incoming   *building.Building
	projectile *projectile.Projectile
	retired    []*projectile.Projectile

	// Per word
	word         string
	hint         string
	deletionUsed bool
	clean        bool
	power        projectile.Power
	inputOpen    bool
	revealUntil  time.Duration
	feedbackTill time.Duration
	wordTimer    *engine.Timer

	// Per launch
	impactHandled bool
	impactPoint   physics.Vec2
	missTimer     *engine.Timer
	settleTimer   *engine.Timer

	// Per building
	hasHadImpact       bool
	thresholdCrossed   bool
	carryOver          bool
	destructionPercent int

	showWord   bool
	aimAngle   float64
	aimLocked  bool
	camera     float64
	panning    bool
	panStart   time.Duration
	generation uint64
	startedAt  time.Time
	finished   bool
}

// NewSession loads the word set, tier table and round graph, and adds the ground to the world
func NewSession(cfg *config.Config, deps Deps) (*Session, error) {
	if deps.World == nil {
		return nil, fmt.Errorf("session requires a physics world")
	}
	event.InitRegistry()

	s := &Session{
		cfg:      cfg,
		world:    deps.World,
		queue:    deps.Queue,
		input:    deps.Input,
		speaker:  deps.Speaker,
		log:      deps.Logger,
		rng:      deps.Rand,
		clock:    deps.Clock,
		sched:    engine.NewScheduler(),
		showWord: cfg.Session.ShowWord,
		aimAngle: cfg.Launch.Angle,
	}
	if s.queue == nil {
		s.queue = event.NewEventQueue()
	}
	if s.input == nil {
		s.input = NopInput{}
	}
	if s.speaker == nil {
		s.speaker = NopSpeaker{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.clock == nil {
		s.clock = engine.NewMonotonicTimeProvider()
	}

	set := words.SetStandard
	if cfg.Session.SillyMode {
		set = words.SetSilly
	}
	tiers, err := words.LoadTiers(asset.Words, set)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	if s.pool, err = words.NewPool(tiers, s.rng); err != nil {
		return nil, fmt.Errorf("build word pool: %w", err)
	}
	if s.tiers, err = building.LoadTiers(asset.Levels); err != nil {
		return nil, fmt.Errorf("load building tiers: %w", err)
	}

	s.machine = fsm.NewMachine[*Session]()
	s.registerActions()
	if err := s.machine.LoadConfig([]byte(asset.RoundGraph)); err != nil {
		return nil, fmt.Errorf("load round graph: %w", err)
	}
	s.resolveStates()
	s.machine.OnTransition(func(from, to fsm.StateID) {
		s.log.Debug("phase",
			zap.String("from", s.machine.StateName(from)),
			zap.String("to", s.machine.StateName(to)),
			zap.Int("building", s.stats.BuildingIndex),
		)
	})

	// Ground spans the current and the next viewport so the incoming building has support
	s.ground = s.world.AddBody(physics.BodyDef{
		Kind:     physics.KindGround,
		Position: physics.Vec2{X: parameter.ScreenWidth, Y: parameter.GroundY + parameter.GroundThickness/2},
		Width:    parameter.ScreenWidth * 3,
		Height:   parameter.GroundThickness,
		Static:   true,
		Friction: 0.8,
		Category: physics.CategoryGround,
		Mask:     physics.MaskGround,
	})
	s.world.OnCollisionStart(s.onCollision)

	return s, nil
}

func (s *Session) resolveStates() {
	m := s.machine
	s.id = states{
		playing:          m.MustStateID("Playing"),
		showingWord:      m.MustStateID("ShowingWord"),
		waitingForInput:  m.MustStateID("WaitingForInput"),
		launching:        m.MustStateID("Launching"),
		watchingImpact:   m.MustStateID("WatchingImpact"),
		levelComplete:    m.MustStateID("LevelComplete"),
		transitionToNext: m.MustStateID("TransitionToNext"),
		gameComplete:     m.MustStateID("GameComplete"),
	}
}

// Start builds the first building and presents the first word
func (s *Session) Start() error {
	s.startedAt = s.clock.Now()
	b, err := s.generateBuilding(0, 0)
	if err != nil {
		return err
	}
	s.building = b
	s.emitRoundStarted()
	s.log.Info("session started",
		zap.Int("length", s.cfg.Session.Length),
		zap.Int("difficulty_min", s.cfg.Session.DifficultyMin),
		zap.Int("difficulty_max", s.cfg.Session.DifficultyMax),
	)
	return s.machine.Start(s)
}

// Restart tears down every body, constraint and timer and begins a fresh session
func (s *Session) Restart() error {
	s.generation++
	s.machine.Stop(s)
	s.sched.CancelAll()
	s.teardown()

	s.stats = Stats{}
	s.pool.Reset()
	s.finished = false
	s.log.Info("session restarted")
	return s.Start()
}

// Rebuild replaces the live building with a fresh one of the same configuration
func (s *Session) Rebuild() error {
	if s.building == nil || s.thresholdCrossed || !s.machine.IsIn(s.id.playing) {
		return nil
	}
	cfg := s.building.Config()
	b, err := building.Generate(s.world, cfg)
	if err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}
	s.building.Destroy()
	s.building = b
	s.resetBuildingFlags()
	s.log.Debug("building rebuilt", zap.String("pattern", cfg.Pattern.String()))
	return nil
}

func (s *Session) teardown() {
	if s.projectile != nil {
		s.projectile.Destroy()
		s.projectile = nil
	}
	s.cleanupRetired()
	if s.building != nil {
		s.building.Destroy()
		s.building = nil
	}
	if s.incoming != nil {
		s.incoming.Destroy()
		s.incoming = nil
	}
	s.resetBuildingFlags()
	s.resetWord()
	s.camera = 0
	s.panning = false
	s.setInput(false)
}

func (s *Session) resetBuildingFlags() {
	s.hasHadImpact = false
	s.thresholdCrossed = false
	s.carryOver = false
	s.impactHandled = false
	s.destructionPercent = 0
}

func (s *Session) resetWord() {
	s.word = ""
	s.hint = ""
	s.deletionUsed = false
	s.clean = false
	s.power = projectile.PowerNormal
	s.revealUntil = 0
	s.feedbackTill = 0
	s.aimLocked = false
	s.wordTimer.Stop()
	s.wordTimer = nil
	s.stats.StartWord()
}

// Tick advances the session by one frame
// Order: physics, delayed callbacks, building sync, aim and camera, destruction percent, threshold poll
func (s *Session) Tick(dt time.Duration) {
	s.world.Step(dt)
	s.sched.Advance(dt)

	if s.building != nil {
		s.building.Update()
	}
	if s.incoming != nil {
		s.incoming.Update()
	}

	s.updateAim()
	s.updateCamera()
	s.updateDestruction()
	s.pollThreshold()

	s.machine.Update(s, dt)
}

func (s *Session) updateAim() {
	if s.aimLocked {
		return
	}
	if !s.cfg.Launch.AimSweep {
		s.aimAngle = s.cfg.Launch.Angle
		return
	}
	if s.machine.IsIn(s.id.showingWord) || s.machine.IsIn(s.id.waitingForInput) {
		t := float64(s.sched.Now().Milliseconds())
		s.aimAngle = s.cfg.Launch.Angle + parameter.AimSweepSpan*math.Sin(t*parameter.AimSweepRate)
	}
}

func (s *Session) updateCamera() {
	if !s.panning {
		return
	}
	t := float64(s.sched.Now()-s.panStart) / float64(parameter.CameraPanDuration)
	t = math.Max(0, math.Min(1, t))
	s.camera = parameter.ScreenWidth * EaseInOutSine(t)
}

// EaseInOutSine maps [0,1] onto [0,1] with zero slope at both ends
func EaseInOutSine(t float64) float64 {
	return (1 - math.Cos(math.Pi*t)) / 2
}

// after schedules fn unless a restart happened in between
func (s *Session) after(d time.Duration, fn func()) *engine.Timer {
	gen := s.generation
	return s.sched.After(d, func() {
		if s.generation != gen {
			return
		}
		fn()
	})
}

// fire feeds a trigger to the round graph
// Triggers raised from inside an action are queued by the machine until the transition completes
func (s *Session) fire(et event.EventType) {
	s.machine.HandleEvent(s, et)
}

func (s *Session) setInput(open bool) {
	s.inputOpen = open
	if open {
		s.input.Enable()
	} else {
		s.input.Disable()
	}
}

func (s *Session) generateBuilding(index int, dx float64) (*building.Building, error) {
	cfg := building.NewConfig(index, s.tiers, s.cfg.Blocks, s.rng)
	cfg.OriginX += dx
	b, err := building.Generate(s.world, cfg)
	if err != nil {
		return nil, fmt.Errorf("generate building %d: %w", index, err)
	}
	return b, nil
}

func (s *Session) newProjectile() *projectile.Projectile {
	params := projectile.DefaultParams(s.cfg.Input.X, s.cfg.Input.Y)
	return projectile.New(s.world, s.sched, s.rng, params)
}

// retire hands the active projectile over to delayed cleanup
func (s *Session) retire(delay time.Duration) {
	if s.projectile == nil {
		return
	}
	s.projectile.RetireAfter(delay)
	s.retired = append(s.retired, s.projectile)
	s.projectile = nil
}

func (s *Session) cleanupRetired() {
	for _, p := range s.retired {
		p.Destroy()
	}
	s.retired = s.retired[:0]
}

func (s *Session) emitRoundStarted() {
	s.queue.Emit(event.EventRoundStarted, &event.RoundPayload{
		BuildingIndex: s.stats.BuildingIndex,
		SessionLength: s.cfg.Session.Length,
		Pattern:       s.building.Config().Pattern.String(),
	})
}

// Phase returns the name of the active round state
func (s *Session) Phase() string {
	return s.machine.CurrentStateName()
}

// Stats returns a copy of the scoring state
func (s *Session) Stats() Stats {
	return s.stats
}

// CurrentWord returns the target word regardless of visibility
func (s *Session) CurrentWord() string {
	return s.word
}

// Building returns the live building
func (s *Session) Building() *building.Building {
	return s.building
}

// Projectile returns the projectile being typed or in flight
func (s *Session) Projectile() *projectile.Projectile {
	return s.projectile
}

// Finished reports whether the session reached GameComplete
func (s *Session) Finished() bool {
	return s.finished
}

// Queue returns the notification queue
func (s *Session) Queue() *event.EventQueue {
	return s.queue
}

// InputOpen reports whether keystrokes are accepted
func (s *Session) InputOpen() bool {
	return s.inputOpen
}
