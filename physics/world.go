package physics

import "time"

// CollisionHandler receives the pairs that started touching during one step.
// It runs synchronously inside Step.
type CollisionHandler func(pairs []Pair)

// World is a physics simulation the game can populate and observe.
type World interface {
	// Clear removes every body and the registered collision handler.
	Clear()

	// Add inserts bodies and returns their handles in the same order.
	Add(descs ...BodyDescriptor) []Handle

	// SetGravity replaces the world gravity.
	SetGravity(v Vec)

	// Gravity returns the current world gravity.
	Gravity() Vec

	// Step advances the simulation by dt.
	Step(dt time.Duration)

	// OnCollisionStart registers h, replacing any previous handler.
	OnCollisionStart(h CollisionHandler)

	// Poses returns the state of every body in insertion order.
	Poses() []Pose
}

// Engine creates worlds.
type Engine interface {
	NewWorld() World
}
