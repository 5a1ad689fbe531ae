/*
Package aabb is a small rigid-body engine for axis-aligned dynamic boxes.

Dynamic bodies integrate under the world gravity and bounce off solid bodies with their restitution.
Sensors never push; they only report overlaps, tested on their rotated outline. Static bodies never
collide with each other. A World is not safe for concurrent use; the game drives it from one
goroutine.
*/
package aabb

import (
	"math"
	"time"

	"github.com/beka-birhanu/gravity-maze/physics"
)

const (
	// maxSubsteps bounds the integration work of one step.
	maxSubsteps = 16

	// substepTravel is the largest move of a dynamic body per substep, as a
	// fraction of its smallest extent.
	substepTravel = 0.25

	contactSlop = 1e-9
)

var _ physics.Engine = &Engine{}
var _ physics.World = &World{}

// Engine creates AABB worlds sharing one gravity scale.
type Engine struct {
	gravityScale float64
}

// NewEngine creates an engine; gravityScale converts a gravity unit into world units/s².
func NewEngine(gravityScale float64) *Engine {
	return &Engine{gravityScale: gravityScale}
}

// NewWorld implements physics.Engine.
func (e *Engine) NewWorld() physics.World {
	return NewWorld(e.gravityScale)
}

// World holds the bodies of one simulation.
type World struct {
	bodies       []*body
	gravity      physics.Vec
	gravityScale float64
	handler      physics.CollisionHandler
	touching     map[[2]physics.Handle]struct{}
	nextHandle   physics.Handle
}

// NewWorld creates an empty world.
func NewWorld(gravityScale float64) *World {
	return &World{
		gravityScale: gravityScale,
		touching:     make(map[[2]physics.Handle]struct{}),
	}
}

// Clear implements physics.World.
func (w *World) Clear() {
	w.bodies = nil
	w.handler = nil
	w.touching = make(map[[2]physics.Handle]struct{})
}

// Add implements physics.World.
func (w *World) Add(descs ...physics.BodyDescriptor) []physics.Handle {
	handles := make([]physics.Handle, 0, len(descs))
	for _, d := range descs {
		w.nextHandle++
		w.bodies = append(w.bodies, newBody(w.nextHandle, d))
		handles = append(handles, w.nextHandle)
	}
	return handles
}

// SetGravity implements physics.World.
func (w *World) SetGravity(v physics.Vec) {
	w.gravity = v
}

// Gravity implements physics.World.
func (w *World) Gravity() physics.Vec {
	return w.gravity
}

// OnCollisionStart implements physics.World.
func (w *World) OnCollisionStart(h physics.CollisionHandler) {
	w.handler = h
}

// Poses implements physics.World.
func (w *World) Poses() []physics.Pose {
	poses := make([]physics.Pose, 0, len(w.bodies))
	for _, b := range w.bodies {
		poses = append(poses, b.pose())
	}
	return poses
}

// Step implements physics.World.
func (w *World) Step(dt time.Duration) {
	secs := dt.Seconds()
	acceleration := w.gravity.Scale(w.gravityScale)

	for _, b := range w.bodies {
		b.angle += b.desc.Spin
		if b.dynamic() {
			b.velocity = b.velocity.Add(acceleration.Scale(secs)).Scale(1 - b.desc.AirFriction)
		}
	}

	for _, b := range w.bodies {
		if b.dynamic() {
			w.advance(b, secs)
		}
	}

	w.emitCollisionStarts()
}

// advance moves a dynamic body in substeps, resolving solid contacts after each.
func (w *World) advance(b *body, secs float64) {
	travel := b.velocity.Magnitude() * secs
	limit := substepTravel * math.Min(b.desc.Width, b.desc.Height)

	steps := 1
	if limit > 0 {
		steps = int(math.Ceil(travel / limit))
	}
	steps = max(1, min(steps, maxSubsteps))

	sub := secs / float64(steps)
	for range steps {
		b.position = b.position.Add(b.velocity.Scale(sub))
		for _, other := range w.bodies {
			if other == b || other.desc.Sensor || b.desc.Sensor {
				continue
			}
			resolve(b, other)
		}
	}
}

// emitCollisionStarts reports pairs that touch now and did not touch after the previous step.
func (w *World) emitCollisionStarts() {
	current := make(map[[2]physics.Handle]struct{})
	var started []physics.Pair

	for i, a := range w.bodies {
		for _, b := range w.bodies[i+1:] {
			if !a.dynamic() && !b.dynamic() {
				continue
			}
			if !touching(a, b) {
				continue
			}

			key := [2]physics.Handle{a.handle, b.handle}
			current[key] = struct{}{}
			if _, ok := w.touching[key]; !ok {
				started = append(started, physics.Pair{A: a.desc.Tag, B: b.desc.Tag})
			}
		}
	}

	w.touching = current
	if len(started) > 0 && w.handler != nil {
		handler := w.handler
		handler(started)
	}
}
