package aabb

import (
	"math"
	"testing"
	"time"

	"github.com/beka-birhanu/gravity-maze/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const step = 16 * time.Millisecond

func player(x, y float64) physics.BodyDescriptor {
	return physics.BodyDescriptor{
		Tag:         physics.TagPlayer,
		Position:    physics.Vec{X: x, Y: y},
		Width:       1,
		Height:      1,
		Restitution: 0.7,
		AirFriction: 0.005,
	}
}

func poseOf(t *testing.T, w *World, tag physics.Tag) physics.Pose {
	t.Helper()
	for _, p := range w.Poses() {
		if p.Tag == tag {
			return p
		}
	}
	require.FailNow(t, "no body", "tag %s", tag)
	return physics.Pose{}
}

func TestWorld_Gravity(t *testing.T) {
	t.Run("Without gravity nothing moves", func(t *testing.T) {
		w := NewWorld(40)
		w.Add(player(3, 3))
		for range 30 {
			w.Step(step)
		}
		assert.Equal(t, physics.Vec{X: 3, Y: 3}, poseOf(t, w, physics.TagPlayer).Position)
	})

	t.Run("Falls along the gravity direction", func(t *testing.T) {
		w := NewWorld(40)
		w.SetGravity(physics.Vec{X: -1.5})
		w.Add(player(10, 3))
		for range 10 {
			w.Step(step)
		}
		p := poseOf(t, w, physics.TagPlayer)
		assert.Less(t, p.Position.X, 10.0)
		assert.InDelta(t, 3, p.Position.Y, 1e-12)
		assert.Equal(t, physics.Vec{X: -1.5}, w.Gravity())
	})

	t.Run("Static bodies stay put", func(t *testing.T) {
		w := NewWorld(40)
		w.SetGravity(physics.Vec{Y: 1})
		w.Add(physics.BodyDescriptor{Tag: physics.TagWall, Position: physics.Vec{X: 1, Y: 1}, Width: 1, Height: 1, Static: true})
		for range 10 {
			w.Step(step)
		}
		assert.Equal(t, physics.Vec{X: 1, Y: 1}, poseOf(t, w, physics.TagWall).Position)
	})
}

func TestWorld_SolidContact(t *testing.T) {
	w := NewWorld(40)
	w.SetGravity(physics.Vec{Y: 1.5})
	w.Add(
		physics.BodyDescriptor{Tag: physics.TagWall, Position: physics.Vec{X: 5, Y: 10}, Width: 10, Height: 1, Static: true},
		player(5, 5),
	)

	for range 400 {
		w.Step(step)
		bottom := poseOf(t, w, physics.TagPlayer).Position.Y + 0.5
		require.LessOrEqual(t, bottom, 9.5+1e-6, "player sank into the floor")
	}

	assert.InDelta(t, 9.0, poseOf(t, w, physics.TagPlayer).Position.Y, 0.05)
}

func TestWorld_CollisionStart(t *testing.T) {
	goal := physics.BodyDescriptor{
		Tag:      physics.TagGoal,
		Position: physics.Vec{X: 5, Y: 20},
		Width:    2,
		Height:   20,
		Static:   true,
		Sensor:   true,
	}

	t.Run("Reports a sensor pair once per contact", func(t *testing.T) {
		w := NewWorld(40)
		w.SetGravity(physics.Vec{Y: 1})
		w.Add(player(5, 8), goal)

		var calls [][]physics.Pair
		w.OnCollisionStart(func(pairs []physics.Pair) {
			calls = append(calls, pairs)
		})

		for range 60 {
			w.Step(step)
		}

		require.Len(t, calls, 1)
		require.Len(t, calls[0], 1)
		assert.Equal(t, physics.Pair{A: physics.TagPlayer, B: physics.TagGoal}, calls[0][0])
	})

	t.Run("Sensors do not push", func(t *testing.T) {
		w := NewWorld(40)
		w.SetGravity(physics.Vec{Y: 1})
		w.Add(player(5, 8), goal)
		for range 60 {
			w.Step(step)
		}
		assert.Greater(t, poseOf(t, w, physics.TagPlayer).Position.Y, 11.0)
	})

	t.Run("Pairs follow insertion order", func(t *testing.T) {
		w := NewWorld(40)
		w.Add(
			physics.BodyDescriptor{Tag: physics.TagHazard, Position: physics.Vec{X: 1, Y: 1}, Width: 1, Height: 1, Static: true, Sensor: true},
			player(1, 1),
			physics.BodyDescriptor{Tag: physics.TagGoal, Position: physics.Vec{X: 1, Y: 1}, Width: 1, Height: 1, Static: true, Sensor: true},
		)

		var got []physics.Pair
		w.OnCollisionStart(func(pairs []physics.Pair) { got = pairs })
		w.Step(step)

		assert.Equal(t, []physics.Pair{
			{A: physics.TagHazard, B: physics.TagPlayer},
			{A: physics.TagPlayer, B: physics.TagGoal},
		}, got)
	})

	t.Run("Static pairs are never reported", func(t *testing.T) {
		w := NewWorld(40)
		w.Add(
			physics.BodyDescriptor{Tag: physics.TagWall, Position: physics.Vec{X: 1, Y: 1}, Width: 2, Height: 2, Static: true},
			physics.BodyDescriptor{Tag: physics.TagHazard, Position: physics.Vec{X: 1, Y: 1}, Width: 1, Height: 1, Static: true, Sensor: true},
		)
		called := false
		w.OnCollisionStart(func([]physics.Pair) { called = true })
		w.Step(step)
		assert.False(t, called)
	})

	t.Run("Clear drops bodies and handler", func(t *testing.T) {
		w := NewWorld(40)
		called := false
		w.OnCollisionStart(func([]physics.Pair) { called = true })
		w.Clear()

		assert.Empty(t, w.Poses())
		w.Add(player(1, 1), physics.BodyDescriptor{Tag: physics.TagGoal, Position: physics.Vec{X: 1, Y: 1}, Width: 1, Height: 1, Static: true, Sensor: true})
		w.Step(step)
		assert.False(t, called)
	})
}

func TestWorld_Spin(t *testing.T) {
	w := NewWorld(40)
	w.Add(physics.BodyDescriptor{
		Tag:    physics.TagHazard,
		Width:  1,
		Height: 1,
		Angle:  math.Pi / 4,
		Static: true,
		Sensor: true,
		Spin:   0.05,
	})
	for range 10 {
		w.Step(step)
	}
	assert.InDelta(t, math.Pi/4+0.5, poseOf(t, w, physics.TagHazard).Rotation, 1e-9)
}

func TestWorld_Handles(t *testing.T) {
	w := NewWorld(40)
	first := w.Add(player(0, 0), player(1, 1))
	w.Clear()
	second := w.Add(player(0, 0))

	assert.Equal(t, []physics.Handle{1, 2}, first)
	assert.Equal(t, []physics.Handle{3}, second)
}

func TestPolygonsOverlap(t *testing.T) {
	diamond := physics.BodyDescriptor{Width: 1, Height: 1}.Vertices(physics.Vec{}, math.Pi/4)
	small := func(x, y float64) []physics.Vec {
		return physics.BodyDescriptor{Width: 0.2, Height: 0.2}.Vertices(physics.Vec{X: x, Y: y}, 0)
	}

	assert.True(t, polygonsOverlap(diamond, small(0, 0)))
	assert.True(t, polygonsOverlap(diamond, small(0.6, 0)))
	assert.False(t, polygonsOverlap(diamond, small(0.6, 0.6)), "inside the bounding box but outside the diamond")
	assert.False(t, polygonsOverlap(diamond, small(3, 0)))
}

func TestEngine_NewWorld(t *testing.T) {
	w := NewEngine(40).NewWorld()
	require.NotNil(t, w)
	assert.Empty(t, w.Poses())
}
