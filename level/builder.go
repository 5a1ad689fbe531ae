/*
Package level turns a level number and a viewport into the bodies of one playable maze.

A build generates a fresh grid and hazard set, sizes every cell to the viewport and emits the
physics descriptors in a fixed order: boundary walls, grid walls, hazards, player, goal.
*/
package level

import (
	"errors"
	"fmt"
	"math"

	"github.com/beka-birhanu/gravity-maze/hazard"
	"github.com/beka-birhanu/gravity-maze/maze"
	"github.com/beka-birhanu/gravity-maze/physics"
	"github.com/beka-birhanu/gravity-maze/rng"
)

// Size ratios relative to min(cellWidth, cellHeight).
const (
	wallRatio   = 0.1
	hazardRatio = 0.25
	playerRatio = 0.35
	goalRatio   = playerRatio * 1.5
)

const (
	playerRestitution = 0.7
	playerAirFriction = 0.005
)

// ErrInvalidParams is returned for tuning or viewport values that cannot produce a level.
var ErrInvalidParams = errors.New("invalid level parameters")

// Params tunes level generation.
type Params struct {
	BaseCols          int     // Columns at level 1
	BaseRows          int     // Rows at level 1
	HazardDensity     float64 // Fraction of candidates targeted as hazards
	SafeRadius        float64 // Candidacy radius around start and goal
	SpacingUntilLevel int     // Hazard spacing is enforced below this level
	HazardSpin        float64 // Hazard rotation per physics step
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		BaseCols:          10,
		BaseRows:          8,
		HazardDensity:     0.15,
		SafeRadius:        hazard.DefaultSafeRadius,
		SpacingUntilLevel: hazard.DefaultSpacingLevel,
		HazardSpin:        0.05,
	}
}

// Validate reports the first malformed value.
func (p Params) Validate() error {
	switch {
	case p.BaseCols < 1 || p.BaseRows < 1:
		return fmt.Errorf("%w: base grid %dx%d", ErrInvalidParams, p.BaseCols, p.BaseRows)
	case p.HazardDensity < 0 || p.HazardDensity > 1 || math.IsNaN(p.HazardDensity):
		return fmt.Errorf("%w: hazard density %v", ErrInvalidParams, p.HazardDensity)
	case p.SafeRadius < 0 || math.IsNaN(p.SafeRadius):
		return fmt.Errorf("%w: safe radius %v", ErrInvalidParams, p.SafeRadius)
	case p.SpacingUntilLevel < 1:
		return fmt.Errorf("%w: spacing until level %d", ErrInvalidParams, p.SpacingUntilLevel)
	case math.IsNaN(p.HazardSpin) || math.IsInf(p.HazardSpin, 0):
		return fmt.Errorf("%w: hazard spin %v", ErrInvalidParams, p.HazardSpin)
	}
	return nil
}

// Level is the geometry of one level.
type Level struct {
	Number     int     `json:"number"`
	Cols       int     `json:"cols"`
	Rows       int     `json:"rows"`
	CellWidth  float64 `json:"cellWidth"`
	CellHeight float64 `json:"cellHeight"`
}

// Descriptor is everything a world needs to host a level.
type Descriptor struct {
	Level   Level
	Grid    *maze.Maze
	Hazards []hazard.Hazard
	Bodies  []physics.BodyDescriptor
}

// Builder builds levels from fixed tuning.
type Builder struct {
	params Params
	placer *hazard.Placer
}

// NewBuilder validates p and creates a Builder.
func NewBuilder(p Params) (*Builder, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Builder{
		params: p,
		placer: hazard.NewPlacer(p.SpacingUntilLevel),
	}, nil
}

// Dimensions returns the grid size of a level number.
func (b *Builder) Dimensions(number int) (cols, rows int) {
	return b.params.BaseCols + number - 1, b.params.BaseRows + number - 1
}

// Build generates the level. The viewport must be positive and number at least 1.
func (b *Builder) Build(number int, viewportWidth, viewportHeight float64, r rng.Random) (Descriptor, error) {
	if number < 1 {
		return Descriptor{}, fmt.Errorf("%w: level %d", ErrInvalidParams, number)
	}
	if viewportWidth <= 0 || viewportHeight <= 0 {
		return Descriptor{}, fmt.Errorf("%w: viewport %vx%v", ErrInvalidParams, viewportWidth, viewportHeight)
	}

	cols, rows := b.Dimensions(number)
	lvl := Level{
		Number:     number,
		Cols:       cols,
		Rows:       rows,
		CellWidth:  viewportWidth / float64(cols),
		CellHeight: viewportHeight / float64(rows),
	}

	grid, err := maze.New(cols, rows, r)
	if err != nil {
		return Descriptor{}, fmt.Errorf("generating level %d: %w", number, err)
	}

	candidates := hazard.Candidates(cols, rows, lvl.CellWidth, lvl.CellHeight, b.params.SafeRadius)
	hazards := b.placer.Place(candidates, b.params.HazardDensity, number, r)

	unit := math.Min(lvl.CellWidth, lvl.CellHeight)
	bodies := boundaryWalls(viewportWidth, viewportHeight, unit*wallRatio)
	bodies = append(bodies, gridWalls(grid, lvl, unit*wallRatio)...)
	for _, h := range hazards {
		bodies = append(bodies, hazardBody(h, unit*hazardRatio, b.params.HazardSpin))
	}
	bodies = append(bodies,
		playerBody(lvl, unit*playerRatio),
		goalBody(lvl, viewportWidth, viewportHeight, unit*goalRatio),
	)

	return Descriptor{
		Level:   lvl,
		Grid:    grid,
		Hazards: hazards,
		Bodies:  bodies,
	}, nil
}
