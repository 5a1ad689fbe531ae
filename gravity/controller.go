// Package gravity maps directional commands onto world gravity vectors.
package gravity

import "github.com/beka-birhanu/gravity-maze/physics"

// Direction is a discrete gravity command.
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Controller turns directions into axis-aligned vectors of a fixed magnitude.
type Controller struct {
	g           float64
	defaultDown float64
}

// NewController creates a Controller with directional magnitude g and a downward
// default of magnitude defaultDown.
func NewController(g, defaultDown float64) *Controller {
	return &Controller{g: g, defaultDown: defaultDown}
}

// OnDirectionalCommand returns the gravity for dir. ok is false for anything that is not
// one of the four directions.
func (c *Controller) OnDirectionalCommand(dir Direction) (v physics.Vec, ok bool) {
	switch dir {
	case Up:
		return physics.Vec{X: 0, Y: -c.g}, true
	case Down:
		return physics.Vec{X: 0, Y: c.g}, true
	case Left:
		return physics.Vec{X: -c.g, Y: 0}, true
	case Right:
		return physics.Vec{X: c.g, Y: 0}, true
	}
	return physics.Vec{}, false
}

// Default is the gravity applied at every level start.
func (c *Controller) Default() physics.Vec {
	return physics.Vec{X: 0, Y: c.defaultDown}
}
