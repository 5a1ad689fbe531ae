package hazard

import (
	"math"
	"testing"

	"github.com/beka-birhanu/gravity-maze/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridPool builds a cols x rows block of candidates without the safety filter.
func gridPool(cols, rows int) []Candidate {
	pool := make([]Candidate, 0, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			pool = append(pool, Candidate{GridX: x, GridY: y, PixelX: float64(x) + 0.5, PixelY: float64(y) + 0.5})
		}
	}
	return pool
}

func manhattan(a, b Hazard) int {
	return abs(a.GridX-b.GridX) + abs(a.GridY-b.GridY)
}

func TestCandidates(t *testing.T) {
	t.Run("Start and goal surroundings are excluded", func(t *testing.T) {
		cols, rows := 10, 8
		for _, c := range Candidates(cols, rows, 10, 10, DefaultSafeRadius) {
			assert.Greater(t, math.Hypot(float64(c.GridX), float64(c.GridY)), DefaultSafeRadius)
			assert.Greater(t, math.Hypot(float64(cols-1-c.GridX), float64(rows-1-c.GridY)), DefaultSafeRadius)
		}
	})

	t.Run("Pixel position is the cell centre", func(t *testing.T) {
		pool := Candidates(10, 8, 20, 30, DefaultSafeRadius)
		require.NotEmpty(t, pool)
		c := pool[0]
		assert.InDelta(t, float64(c.GridX)*20+10, c.PixelX, 1e-9)
		assert.InDelta(t, float64(c.GridY)*30+15, c.PixelY, 1e-9)
	})

	t.Run("Degenerate grids yield nothing", func(t *testing.T) {
		assert.Empty(t, Candidates(1, 1, 10, 10, DefaultSafeRadius))
		assert.Empty(t, Candidates(3, 3, 10, 10, DefaultSafeRadius))
	})

	t.Run("Corner cells are never eligible", func(t *testing.T) {
		for _, c := range Candidates(12, 12, 1, 1, DefaultSafeRadius) {
			assert.False(t, c.GridX == 0 && c.GridY == 0)
			assert.False(t, c.GridX == 11 && c.GridY == 11)
			assert.False(t, c.GridX == 2 && c.GridY == 0, "distance exactly 2 is not eligible")
		}
	})
}

func TestPlace(t *testing.T) {
	t.Run("Forty candidates at fifteen percent without spacing", func(t *testing.T) {
		pool := gridPool(8, 5)
		require.Len(t, pool, 40)
		assert.Equal(t, 6, Target(len(pool), 0.15))

		hazards := Place(pool, 0.15, 10, rng.New(1))
		assert.Len(t, hazards, 6)
	})

	t.Run("Forty candidates at fifteen percent with spacing", func(t *testing.T) {
		for seed := int64(1); seed <= 20; seed++ {
			hazards := Place(gridPool(8, 5), 0.15, 3, rng.New(seed))
			assert.LessOrEqual(t, len(hazards), 6)

			for i := range hazards {
				for j := i + 1; j < len(hazards); j++ {
					assert.Greater(t, manhattan(hazards[i], hazards[j]), 1)
				}
			}
		}
	})

	t.Run("Spacing disabled accepts adjacent candidates", func(t *testing.T) {
		row := gridPool(10, 1)
		hazards := Place(row, 1, DefaultSpacingLevel, rng.New(5))
		assert.Len(t, hazards, 10)
	})

	t.Run("Spacing starves a contiguous row", func(t *testing.T) {
		row := gridPool(10, 1)
		hazards := Place(row, 1, DefaultSpacingLevel-1, rng.New(5))
		assert.LessOrEqual(t, len(hazards), 5)
		assert.NotEmpty(t, hazards)
	})

	t.Run("Never exceeds the target", func(t *testing.T) {
		pool := gridPool(9, 9)
		for _, density := range []float64{0, 0.01, 0.1, 0.33, 0.5, 1} {
			for seed := int64(1); seed <= 5; seed++ {
				hazards := Place(pool, density, 12, rng.New(seed))
				assert.LessOrEqual(t, len(hazards), Target(len(pool), density))
			}
		}
	})

	t.Run("Zero density and empty pool", func(t *testing.T) {
		assert.Empty(t, Place(gridPool(5, 5), 0, 1, rng.New(1)))
		assert.Empty(t, Place(nil, 0.5, 1, rng.New(1)))
		assert.Empty(t, Place(gridPool(5, 5), -0.5, 1, rng.New(1)))
	})

	t.Run("Deterministic for a fixed seed", func(t *testing.T) {
		pool := Candidates(15, 12, 8, 8, DefaultSafeRadius)
		a := Place(pool, 0.15, 4, rng.New(77))
		b := Place(pool, 0.15, 4, rng.New(77))
		assert.Equal(t, a, b)
	})

	t.Run("Caller pool is left untouched", func(t *testing.T) {
		pool := gridPool(6, 6)
		before := append([]Candidate(nil), pool...)
		Place(pool, 0.5, 1, rng.New(3))
		assert.Equal(t, before, pool)
	})

	t.Run("Hazards start rotated onto a corner", func(t *testing.T) {
		hazards := Place(gridPool(6, 6), 0.2, 1, rng.New(3))
		require.NotEmpty(t, hazards)
		for _, h := range hazards {
			assert.InDelta(t, math.Pi/4, h.RotationPhase, 1e-12)
		}
	})

	t.Run("Custom spacing threshold", func(t *testing.T) {
		placer := NewPlacer(3)
		hazards := placer.Place(gridPool(10, 1), 1, 3, rng.New(2))
		assert.Len(t, hazards, 10)
	})
}
