package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/spell-smash/audio"
	"github.com/lixenwraith/spell-smash/config"
	"github.com/lixenwraith/spell-smash/engine"
	"github.com/lixenwraith/spell-smash/event"
	"github.com/lixenwraith/spell-smash/game"
	"github.com/lixenwraith/spell-smash/input"
	"github.com/lixenwraith/spell-smash/parameter"
	"github.com/lixenwraith/spell-smash/physics"
	"github.com/lixenwraith/spell-smash/render"
	"github.com/lixenwraith/spell-smash/store"
	"github.com/lixenwraith/spell-smash/terminal"
)

var (
	configFlag     = flag.String("config", "", "Path to a TOML config file")
	colorModeFlag  = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
	difficultyFlag = flag.String("difficulty", "", "Difficulty preset: short, medium, long")
	buildingsFlag  = flag.Int("buildings", 0, "Buildings per session (even, 4-24)")
	sillyFlag      = flag.Bool("silly", false, "Use the silly word set")
	audioOnlyFlag  = flag.Bool("audio-only", false, "Never display the word")
	seedFlag       = flag.Int64("seed", 0, "Random seed, 0 for time based")
	debugFlag      = flag.Bool("debug", false, "Enable debug logging to logs/")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mSPELL-SMASH CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "spell-smash: %v\n", err)
		os.Exit(1)
	}
}

func buildConfig() (*config.Config, error) {
	if err := loadEnv(".env"); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg, err := loadConfig(resolveConfig(*configFlag, os.Getenv))
	if err != nil {
		return nil, err
	}
	if err := applyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}

	if *difficultyFlag != "" {
		if err := cfg.ApplyPreset(*difficultyFlag); err != nil {
			return nil, err
		}
	}
	if *buildingsFlag > 0 {
		cfg.Session.Length = *buildingsFlag
	}
	if *sillyFlag {
		cfg.Session.SillyMode = true
	}
	if *audioOnlyFlag {
		cfg.Session.ShowWord = false
	}
	if *seedFlag != 0 {
		cfg.Session.Seed = *seedFlag
	}
	if *debugFlag {
		cfg.Logging.Enabled = true
		cfg.Logging.Level = "debug"
	}
	cfg.Clamp()
	return cfg, nil
}

func colorMode() terminal.ColorMode {
	switch *colorModeFlag {
	case "256":
		return terminal.ColorMode256
	case "truecolor", "true", "24bit":
		return terminal.ColorModeTrueColor
	default:
		return terminal.DetectColorMode()
	}
}

func newSpeaker(cfg config.AudioConfig, log *zap.Logger) game.Speaker {
	if !cfg.Speech {
		return game.NopSpeaker{}
	}
	backend, err := audio.DetectSpeech(cfg.SpeechCommand)
	if err != nil {
		log.Warn("speech unavailable", zap.Error(err))
		return game.NopSpeaker{}
	}
	log.Info("speech backend", zap.String("name", backend.Name), zap.String("path", backend.Path))
	return audio.NewSpeech(backend, log)
}

func run() error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := cfg.Session.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info("starting",
		zap.Int("buildings", cfg.Session.Length),
		zap.Int("difficulty_min", cfg.Session.DifficultyMin),
		zap.Int("difficulty_max", cfg.Session.DifficultyMax),
		zap.Int64("seed", seed),
	)

	// Audio is optional, the game runs silent without a device
	sound := audio.NewSoundManager(cfg.Audio, log)
	if err := sound.Initialize(); err != nil {
		log.Warn("audio initialization failed, continuing without sound", zap.Error(err))
	}
	defer sound.Cleanup()

	speaker := newSpeaker(cfg.Audio, log)
	if s, ok := speaker.(*audio.Speech); ok {
		defer s.Wait()
	}

	var results *store.Store
	if cfg.Store.Path != "" {
		results, err = store.Open(cfg.Store.Path)
		if err != nil {
			log.Warn("results store unavailable", zap.Error(err))
		} else {
			defer results.Close()
		}
	}

	screen, err := terminal.Open()
	if err != nil {
		return err
	}
	// Normal exit terminal cleanup
	defer screen.Fini()

	clock := engine.NewPausableClock()
	queue := event.NewEventQueue()
	buffer := input.NewBuffer()
	world := physics.NewSim(parameter.ScreenWidth*3, parameter.ScreenHeight)

	session, err := game.NewSession(cfg, game.Deps{
		World:   world,
		Queue:   queue,
		Input:   buffer,
		Speaker: speaker,
		Logger:  log,
		Rand:    rand.New(rand.NewSource(seed)),
		Clock:   clock,
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	quit := false
	router := event.NewRouter[*game.Session](queue)
	router.Register(&input.Handler[*game.Session]{
		Session: session,
		Buffer:  buffer,
		Clock:   clock,
		Queue:   queue,
		Log:     log,
	})
	router.Register(&audio.CueHandler[*game.Session]{Player: sound})
	if results != nil {
		router.Register(&store.Handler[*game.Session]{Recorder: results, Log: log})
	}
	router.Register(event.HandlerFunc[*game.Session]{
		Types: []event.EventType{event.EventQuit},
		Fn:    func(*game.Session, event.GameEvent) { quit = true },
	})

	orchestrator := render.NewDefaultOrchestrator(screen, render.NewPalette(colorMode()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// Input polling uses a raw goroutine as it interacts directly with the screen
	go terminal.Poll(ctx, screen, queue)

	if err := session.Start(); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	loop := engine.NewLoop(clock, parameter.FrameUpdateInterval, func(dt time.Duration) bool {
		router.DispatchAll(session)
		if quit {
			return false
		}
		session.Tick(dt)
		// Notifications raised by the tick are delivered before the frame is drawn
		router.DispatchAll(session)
		orchestrator.RenderFrame(session.Snapshot())
		return true
	})
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	stats := session.Stats()
	log.Info("exit",
		zap.Int("words", stats.WordsCompleted),
		zap.Uint64("frames", loop.TickCount()),
		zap.Uint64("dropped_events", queue.Dropped()),
	)
	return nil
}
