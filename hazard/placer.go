/*
Package hazard selects the lethal trap cells of a level.

Placement shuffles the eligible candidates with the level's random source and accepts them in
order until the density target is met. Below a configurable level no two accepted hazards may be
orthogonal neighbours; from that level on the spacing rule is lifted.
*/
package hazard

import (
	"math"
	"slices"

	"github.com/beka-birhanu/gravity-maze/rng"
)

const (
	// DefaultSpacingLevel is the first level where adjacent hazards are allowed.
	DefaultSpacingLevel = 10

	// initialRotation puts the square on its corner.
	initialRotation = math.Pi / 4
)

// Hazard is a placed trap. RotationPhase is visual only.
type Hazard struct {
	GridX         int
	GridY         int
	PixelX        float64
	PixelY        float64
	RotationPhase float64
}

// Placer chooses hazards from a candidate pool.
type Placer struct {
	spacingUntilLevel int
}

// NewPlacer creates a Placer that enforces spacing while level < spacingUntilLevel.
func NewPlacer(spacingUntilLevel int) *Placer {
	return &Placer{spacingUntilLevel: spacingUntilLevel}
}

// Place runs the default placer.
func Place(candidates []Candidate, density float64, level int, r rng.Random) []Hazard {
	return NewPlacer(DefaultSpacingLevel).Place(candidates, density, level, r)
}

// Place shuffles a copy of candidates and accepts up to floor(len*density) of them.
// The result may be shorter than the target when spacing starves the pool.
func (p *Placer) Place(candidates []Candidate, density float64, level int, r rng.Random) []Hazard {
	pool := slices.Clone(candidates)
	rng.Shuffle(r, pool)

	target := Target(len(pool), density)
	hazards := make([]Hazard, 0, target)
	spaced := level < p.spacingUntilLevel

	for _, c := range pool {
		if len(hazards) >= target {
			break
		}
		if spaced && adjacent(hazards, c) {
			continue
		}

		hazards = append(hazards, Hazard{
			GridX:         c.GridX,
			GridY:         c.GridY,
			PixelX:        c.PixelX,
			PixelY:        c.PixelY,
			RotationPhase: initialRotation,
		})
	}

	return hazards
}

// Target is the number of hazards a pool of n candidates aims for.
func Target(n int, density float64) int {
	target := int(math.Floor(float64(n) * density))
	if target < 0 {
		return 0
	}
	return target
}

// adjacent reports whether c is within Manhattan distance 1 of an accepted hazard.
func adjacent(hazards []Hazard, c Candidate) bool {
	for _, h := range hazards {
		if abs(h.GridX-c.GridX)+abs(h.GridY-c.GridY) <= 1 {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
