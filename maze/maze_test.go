package maze

import (
	"testing"

	"github.com/beka-birhanu/gravity-maze/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Spanning tree for a range of sizes", func(t *testing.T) {
		for _, size := range [][2]int{{1, 1}, {1, 7}, {6, 1}, {2, 2}, {5, 9}, {19, 17}} {
			for seed := int64(1); seed <= 5; seed++ {
				m, err := New(size[0], size[1], rng.New(seed))
				require.NoError(t, err)

				cells := size[0] * size[1]
				assert.Equal(t, cells-1, m.Passages(), "passages for %v seed %d", size, seed)
				assert.Equal(t, cells, m.Reachable(CellPosition{}), "reachable for %v seed %d", size, seed)
			}
		}
	})

	t.Run("Ten by eight with seed one", func(t *testing.T) {
		m, err := New(10, 8, rng.New(1))
		require.NoError(t, err)

		assert.Equal(t, 79, m.Passages())
		assert.Equal(t, 80, m.Reachable(CellPosition{Row: 0, Col: 0}))
	})

	t.Run("Same seed gives identical grid", func(t *testing.T) {
		a, err := New(12, 9, rng.New(99))
		require.NoError(t, err)
		b, err := New(12, 9, rng.New(99))
		require.NoError(t, err)

		assert.Equal(t, a.Grid, b.Grid)
		assert.Equal(t, a.String(), b.String())
	})

	t.Run("Every cell is visited with its coordinates set", func(t *testing.T) {
		m, err := New(4, 3, rng.New(3))
		require.NoError(t, err)

		for y, row := range m.Grid {
			for x, cell := range row {
				assert.True(t, cell.Visited)
				assert.Equal(t, x, cell.X)
				assert.Equal(t, y, cell.Y)
			}
		}
	})

	t.Run("Edge cells never open outward", func(t *testing.T) {
		m, err := New(7, 5, rng.New(11))
		require.NoError(t, err)

		for y := 0; y < m.Height; y++ {
			assert.False(t, m.Grid[y][m.Width-1].PassageRight)
		}
		for x := 0; x < m.Width; x++ {
			assert.False(t, m.Grid[m.Height-1][x].PassageBottom)
		}
	})

	t.Run("Invalid dimensions", func(t *testing.T) {
		_, err := New(0, 5, rng.New(1))
		assert.ErrorIs(t, err, ErrInvalidDimensions)

		_, err = New(3, -1, rng.New(1))
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	})
}

func TestString(t *testing.T) {
	m, err := New(1, 1, rng.New(1))
	require.NoError(t, err)

	assert.Equal(t, "+---+\n|   |\n+---+\n", m.String())
}

func TestReachableOutOfBounds(t *testing.T) {
	m, err := New(3, 3, rng.New(1))
	require.NoError(t, err)

	assert.Equal(t, 0, m.Reachable(CellPosition{Row: 5, Col: 0}))
}
