/*
Package game owns the level lifecycle of a gravity maze session.

The Machine builds levels into a physics world, reads collision batches, and schedules the
delayed rebuild that follows a clear or a death. While a transition is pending every further
collision, gravity and retry input is ignored, so one triggering step produces at most one
transition.
*/
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/gravity-maze/gravity"
	"github.com/beka-birhanu/gravity-maze/level"
	"github.com/beka-birhanu/gravity-maze/physics"
	"github.com/beka-birhanu/gravity-maze/rng"
)

// Machine errors.
var (
	ErrMissingDependency = errors.New("missing dependency")
	ErrInvalidDelay      = errors.New("transition delay must be positive")
	ErrInvalidViewport   = errors.New("viewport must be positive")
)

// LevelBuilder produces the bodies of a level.
type LevelBuilder interface {
	Build(number int, viewportWidth, viewportHeight float64, r rng.Random) (level.Descriptor, error)
}

// EventKind classifies machine events.
type EventKind int

const (
	EventLevelStart  EventKind = iota + 1 // A level was (re)built
	EventClear                            // Goal reached
	EventGameOver                         // Hazard hit
	EventRetry                            // Manual retry accepted
	EventBuildFailed                      // Level construction failed
)

func (k EventKind) String() string {
	switch k {
	case EventLevelStart:
		return "level-start"
	case EventClear:
		return "clear"
	case EventGameOver:
		return "game-over"
	case EventRetry:
		return "retry"
	case EventBuildFailed:
		return "build-failed"
	default:
		return "unknown"
	}
}

// Event reports a state change to the owner of the machine.
type Event struct {
	Kind     EventKind
	Snapshot Snapshot
	Err      error // Set for EventBuildFailed
}

// Config wires a Machine.
type Config struct {
	World          physics.World
	Builder        LevelBuilder
	Gravity        *gravity.Controller
	Scheduler      *Scheduler
	Random         rng.Random
	WinDelay       time.Duration
	LoseDelay      time.Duration
	ViewportWidth  float64
	ViewportHeight float64
	OnEvent        func(Event) // Optional, called synchronously
}

// Machine is the game state machine. It must be driven from a single goroutine.
type Machine struct {
	world     physics.World
	builder   LevelBuilder
	gravity   *gravity.Controller
	scheduler *Scheduler
	random    rng.Random
	winDelay  time.Duration
	loseDelay time.Duration
	viewportW float64
	viewportH float64
	onEvent   func(Event)

	state   GameState
	current level.Descriptor
	pending ActionID
}

// NewMachine validates c and creates a Machine at level 1. Call Start to build the first level.
func NewMachine(c Config) (*Machine, error) {
	if c.World == nil || c.Builder == nil || c.Gravity == nil || c.Scheduler == nil || c.Random == nil {
		return nil, ErrMissingDependency
	}
	if c.WinDelay <= 0 || c.LoseDelay <= 0 {
		return nil, ErrInvalidDelay
	}
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidViewport, c.ViewportWidth, c.ViewportHeight)
	}

	onEvent := c.OnEvent
	if onEvent == nil {
		onEvent = func(Event) {}
	}

	return &Machine{
		world:     c.World,
		builder:   c.Builder,
		gravity:   c.Gravity,
		scheduler: c.Scheduler,
		random:    c.Random,
		winDelay:  c.WinDelay,
		loseDelay: c.LoseDelay,
		viewportW: c.ViewportWidth,
		viewportH: c.ViewportHeight,
		onEvent:   onEvent,
		state:     GameState{Status: Playing, Level: 1},
	}, nil
}

// Start builds the current level.
func (m *Machine) Start() error {
	return m.rebuild()
}

// Snapshot returns the current state for display.
func (m *Machine) Snapshot() Snapshot {
	return m.state.snapshot()
}

// State returns a copy of the game state.
func (m *Machine) State() GameState {
	return m.state
}

// Level returns the descriptor of the level currently in the world.
func (m *Machine) Level() level.Descriptor {
	return m.current
}

// Handle applies an input command. It reports whether the command took effect.
// Gravity and retry commands are dropped while a transition is pending.
func (m *Machine) Handle(cmd Command) bool {
	if m.state.Transitioning() {
		return false
	}

	switch cmd.Kind {
	case CommandGravity:
		v, ok := m.gravity.OnDirectionalCommand(cmd.Direction)
		if !ok {
			return false
		}
		m.world.SetGravity(v)
		return true
	case CommandRetry:
		if err := m.rebuild(); err != nil {
			return false
		}
		m.onEvent(Event{Kind: EventRetry, Snapshot: m.Snapshot()})
		return true
	}
	return false
}

// Resize records a new viewport. A live level is rebuilt at the new size; during a
// transition the size is picked up by the pending rebuild.
func (m *Machine) Resize(width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidViewport, width, height)
	}
	if width == m.viewportW && height == m.viewportH {
		return nil
	}

	m.viewportW, m.viewportH = width, height
	if m.state.Transitioning() {
		return nil
	}
	return m.rebuild()
}

// Stop disarms a pending transition.
func (m *Machine) Stop() {
	if m.pending != 0 {
		m.scheduler.Cancel(m.pending)
		m.pending = 0
	}
}

// handleCollisions runs inside the physics step. Pairs are examined in order and the first
// outcome arms the guard, which silences the rest of the batch.
func (m *Machine) handleCollisions(pairs []physics.Pair) {
	for _, p := range pairs {
		if m.state.Transitioning() {
			return
		}

		switch {
		case p.Is(physics.TagPlayer, physics.TagGoal):
			m.win()
		case p.Is(physics.TagPlayer, physics.TagHazard):
			m.lose()
		}
	}
}

func (m *Machine) win() {
	// Arms the guard before any other mutation.
	m.state.Status = Clear

	m.pending = m.scheduler.After(m.winDelay, func() {
		m.pending = 0
		m.state.Level++
		if err := m.rebuild(); err != nil {
			m.state.Level--
			m.resume()
		}
	})
	m.onEvent(Event{Kind: EventClear, Snapshot: m.Snapshot()})
}

func (m *Machine) lose() {
	m.state.Status = GameOver
	m.state.Deaths++
	m.state.PlayerHit = true

	m.pending = m.scheduler.After(m.loseDelay, func() {
		m.pending = 0
		if err := m.rebuild(); err != nil {
			m.resume()
		}
	})
	m.onEvent(Event{Kind: EventGameOver, Snapshot: m.Snapshot()})
}

// resume releases the guard on the level still in the world after a deferred rebuild failed,
// so input and retry work again.
func (m *Machine) resume() {
	m.world.SetGravity(m.gravity.Default())
	m.state.Status = Playing
	m.state.PlayerHit = false
}

// rebuild replaces the world contents with a fresh build of the current level. The guard
// stays armed until the new level is live, so contacts an engine reports while bodies are
// added are ignored. On failure the world and the previous status are left untouched.
func (m *Machine) rebuild() error {
	prev := m.state.Status
	m.state.Status = Transitioning

	d, err := m.builder.Build(m.state.Level, m.viewportW, m.viewportH, m.random)
	if err != nil {
		m.state.Status = prev
		err = fmt.Errorf("building level %d: %w", m.state.Level, err)
		m.onEvent(Event{Kind: EventBuildFailed, Snapshot: m.Snapshot(), Err: err})
		return err
	}

	m.world.Clear()
	m.world.SetGravity(m.gravity.Default())
	m.world.Add(d.Bodies...)
	m.world.OnCollisionStart(m.handleCollisions)

	m.current = d
	m.state.Status = Playing
	m.state.PlayerHit = false
	m.onEvent(Event{Kind: EventLevelStart, Snapshot: m.Snapshot()})
	return nil
}
