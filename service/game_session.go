package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beka-birhanu/gravity-maze/game"
	"github.com/beka-birhanu/gravity-maze/gravity"
	"github.com/beka-birhanu/gravity-maze/physics"
	"github.com/beka-birhanu/gravity-maze/rng"
	"github.com/beka-birhanu/gravity-maze/service/i"
	"github.com/google/uuid"
)

const (
	inboxSize          = 32
	leaderboardTimeout = 2 * time.Second
)

var (
	ErrSessionStarted = errors.New("session already started")
	ErrMissingEngine  = errors.New("physics engine is required")
)

// Config wires a GameSession.
type Config struct {
	Engine         physics.Engine
	Builder        game.LevelBuilder
	Gravity        *gravity.Controller
	Random         rng.Random
	TickInterval   time.Duration
	WinDelay       time.Duration
	LoseDelay      time.Duration
	ViewportWidth  float64
	ViewportHeight float64
	Logger         i.Logger
	Sounds         i.SoundPlayer // Optional
	Leaderboard    i.Leaderboard // Optional
	PlayerName     string
}

type request struct {
	cmd    game.Command
	resize bool
	width  float64
	height float64
}

// GameSession runs one game: physics steps, deferred transitions and input all happen on the
// goroutine that calls Start.
type GameSession struct {
	id           uuid.UUID
	world        physics.World
	machine      *game.Machine
	scheduler    *game.Scheduler
	tickInterval time.Duration
	logger       i.Logger
	sounds       i.SoundPlayer
	leaderboard  i.Leaderboard
	playerName   string

	inbox    chan request
	quit     chan struct{}
	quitOnce sync.Once
	done     chan struct{}
	started  bool

	mu        sync.RWMutex
	latest    game.Frame
	observers []func(game.Frame)

	wg sync.WaitGroup
}

var _ i.GameSession = &GameSession{}

// NewGameSession creates a session. The first level is built when Start runs.
func NewGameSession(c *Config) (*GameSession, error) {
	if c.Engine == nil {
		return nil, ErrMissingEngine
	}
	if c.Logger == nil {
		return nil, fmt.Errorf("session logger is required")
	}
	if c.TickInterval <= 0 {
		return nil, fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}

	s := &GameSession{
		id:           uuid.New(),
		world:        c.Engine.NewWorld(),
		scheduler:    game.NewScheduler(c.TickInterval),
		tickInterval: c.TickInterval,
		logger:       c.Logger,
		sounds:       c.Sounds,
		leaderboard:  c.Leaderboard,
		playerName:   c.PlayerName,
		inbox:        make(chan request, inboxSize),
		quit:         make(chan struct{}),
		done:         make(chan struct{}),
	}

	machine, err := game.NewMachine(game.Config{
		World:          s.world,
		Builder:        c.Builder,
		Gravity:        c.Gravity,
		Scheduler:      s.scheduler,
		Random:         c.Random,
		WinDelay:       c.WinDelay,
		LoseDelay:      c.LoseDelay,
		ViewportWidth:  c.ViewportWidth,
		ViewportHeight: c.ViewportHeight,
		OnEvent:        s.onEvent,
	})
	if err != nil {
		return nil, fmt.Errorf("creating state machine: %w", err)
	}
	s.machine = machine
	return s, nil
}

// ID implements i.GameSession.
func (s *GameSession) ID() uuid.UUID {
	return s.id
}

// Observe registers fn to receive every published frame. fn runs on the session goroutine
// and must not block.
func (s *GameSession) Observe(fn func(game.Frame)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Latest implements i.GameSession.
func (s *GameSession) Latest() game.Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Submit implements i.GameSession. Quit stops the session; other commands are queued and
// dropped when the queue is full.
func (s *GameSession) Submit(cmd game.Command) bool {
	if cmd.Kind == game.CommandQuit {
		s.Stop()
		return true
	}
	return s.enqueue(request{cmd: cmd})
}

// Resize queues a viewport change.
func (s *GameSession) Resize(width, height float64) bool {
	return s.enqueue(request{resize: true, width: width, height: height})
}

// Stop asks the loop to exit. It is safe to call more than once.
func (s *GameSession) Stop() {
	s.quitOnce.Do(func() { close(s.quit) })
}

// Done is closed once the loop has exited.
func (s *GameSession) Done() <-chan struct{} {
	return s.done
}

// Start builds the first level and runs the loop until ctx ends or the session is stopped.
func (s *GameSession) Start(ctx context.Context) error {
	if s.started {
		return ErrSessionStarted
	}
	s.started = true
	defer close(s.done)

	if err := s.machine.Start(); err != nil {
		return err
	}
	s.publish()
	s.logger.Info(fmt.Sprintf("session %s started", s.id))

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.shutdown()
			return ctx.Err()
		case <-s.quit:
			s.shutdown()
			return nil
		case req := <-s.inbox:
			s.handle(req)
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *GameSession) enqueue(req request) bool {
	select {
	case <-s.quit:
		return false
	default:
	}

	select {
	case s.inbox <- req:
		return true
	default:
		s.logger.Warning("input queue full, dropping request")
		return false
	}
}

// tick advances deferred transitions, then steps physics, then publishes.
func (s *GameSession) tick() {
	s.scheduler.Advance()
	s.world.Step(s.tickInterval)
	s.publish()
}

func (s *GameSession) handle(req request) {
	if req.resize {
		if err := s.machine.Resize(req.width, req.height); err != nil {
			s.logger.Warning(fmt.Sprintf("ignoring resize: %s", err))
		}
		return
	}

	if s.machine.Handle(req.cmd) && req.cmd.Kind == game.CommandGravity {
		s.play(i.CueTilt)
	}
}

func (s *GameSession) publish() {
	frame := game.Frame{
		SessionID: s.id,
		Tick:      s.scheduler.Tick(),
		Snapshot:  s.machine.Snapshot(),
		Level:     s.machine.Level().Level,
		Gravity:   s.world.Gravity(),
		Poses:     s.world.Poses(),
	}

	s.mu.Lock()
	s.latest = frame
	observers := s.observers
	s.mu.Unlock()

	for _, fn := range observers {
		fn(frame)
	}
}

func (s *GameSession) onEvent(e game.Event) {
	switch e.Kind {
	case game.EventLevelStart:
		s.logger.Info(fmt.Sprintf("level %d started (deaths %d)", e.Snapshot.Level, e.Snapshot.Deaths))
	case game.EventRetry:
		s.logger.Info(fmt.Sprintf("retrying level %d", e.Snapshot.Level))
	case game.EventClear:
		s.logger.Info(fmt.Sprintf("level %d cleared", e.Snapshot.Level))
		s.play(i.CueClear)
		s.recordClear(e.Snapshot)
	case game.EventGameOver:
		s.logger.Info(fmt.Sprintf("hazard hit on level %d, deaths %d", e.Snapshot.Level, e.Snapshot.Deaths))
		s.play(i.CueDeath)
	case game.EventBuildFailed:
		s.logger.Error(e.Err.Error())
	}
}

func (s *GameSession) play(cue i.Cue) {
	if s.sounds != nil {
		s.sounds.Play(cue)
	}
}

func (s *GameSession) recordClear(snap game.Snapshot) {
	if s.leaderboard == nil || s.playerName == "" {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), leaderboardTimeout)
		defer cancel()

		if err := s.leaderboard.RecordClear(ctx, s.playerName, snap.Level, snap.Deaths); err != nil {
			s.logger.Warning(fmt.Sprintf("recording clear of level %d: %s", snap.Level, err))
		}
	}()
}

func (s *GameSession) shutdown() {
	s.machine.Stop()
	s.wg.Wait()
	s.logger.Info(fmt.Sprintf("session %s stopped at level %d", s.id, s.machine.Snapshot().Level))
}
