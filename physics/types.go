// Package physics defines the capability boundary between the game and a physics engine.
package physics

import "math"

// Tag labels a body for collision interpretation and drawing.
type Tag string

const (
	TagWall   Tag = "wall"
	TagPlayer Tag = "player"
	TagGoal   Tag = "goal"
	TagHazard Tag = "hazard"
)

// Vec is a 2D vector in world units.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale returns v*f.
func (v Vec) Scale(f float64) Vec { return Vec{X: v.X * f, Y: v.Y * f} }

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }

// Magnitude returns the length of v.
func (v Vec) Magnitude() float64 { return math.Hypot(v.X, v.Y) }

// Rotate returns v rotated by angle radians around the origin.
func (v Vec) Rotate(angle float64) Vec {
	sin, cos := math.Sincos(angle)
	return Vec{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// BodyDescriptor describes a rectangular body to add to a world.
type BodyDescriptor struct {
	Tag         Tag
	Position    Vec     // Centre of the body
	Width       float64 // Extent along the unrotated x axis
	Height      float64 // Extent along the unrotated y axis
	Angle       float64 // Initial rotation in radians
	Static      bool    // Static bodies never move under gravity
	Sensor      bool    // Sensors report overlaps but never push
	Restitution float64 // Bounciness of dynamic bodies
	AirFriction float64 // Fraction of velocity lost per step
	Spin        float64 // Radians added to Angle every step
}

// Vertices returns the four corners of the descriptor's rectangle at the given pose.
func (d BodyDescriptor) Vertices(position Vec, angle float64) []Vec {
	hw, hh := d.Width/2, d.Height/2
	corners := []Vec{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
	for i, c := range corners {
		corners[i] = c.Rotate(angle).Add(position)
	}
	return corners
}

// Handle identifies a body inside the world that created it.
type Handle int

// Pair is a collision between two bodies, identified by their tags.
type Pair struct {
	A Tag
	B Tag
}

// Is reports whether the pair joins tags a and b in either order.
func (p Pair) Is(a, b Tag) bool {
	return (p.A == a && p.B == b) || (p.A == b && p.B == a)
}

// Pose is the queryable state of a body after the latest step.
type Pose struct {
	Handle   Handle  `json:"handle"`
	Tag      Tag     `json:"tag"`
	Position Vec     `json:"position"`
	Rotation float64 `json:"rotation"`
	Vertices []Vec   `json:"vertices"`
	Sensor   bool    `json:"sensor"`
}
