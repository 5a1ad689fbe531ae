package terminal

import (
	"math"

	"github.com/beka-birhanu/gravity-maze/game"
	"github.com/beka-birhanu/gravity-maze/physics"
)

// YScale is the number of world units per terminal row. Terminal cells are about twice as
// tall as they are wide, so one row spans two units and the maze keeps its proportions.
const YScale = 2.0

// Glyph is one drawn terminal cell.
type Glyph struct {
	Rune rune
	Tag  physics.Tag
}

// Raster is a frame flattened onto a grid of terminal cells.
type Raster struct {
	Cols  int
	Rows  int
	cells []Glyph
}

// drawOrder puts the player on top.
var drawOrder = []physics.Tag{physics.TagWall, physics.TagGoal, physics.TagHazard, physics.TagPlayer}

// Rasterize draws the bodies of f onto cols x rows cells.
func Rasterize(f game.Frame, cols, rows int) Raster {
	r := Raster{Cols: max(cols, 0), Rows: max(rows, 0)}
	r.cells = make([]Glyph, r.Cols*r.Rows)

	for _, tag := range drawOrder {
		for _, p := range f.Poses {
			if p.Tag != tag || len(p.Vertices) == 0 {
				continue
			}
			r.fill(p, glyphFor(p))
		}
	}

	if arrow, ok := gravityArrow(f.Gravity); ok && r.Cols > 0 && r.Rows > 0 {
		cx, cy := r.Cols/2, r.Rows/2
		if r.At(cx, cy).Tag == "" {
			r.set(cx, cy, Glyph{Rune: arrow})
		}
	}
	return r
}

// At returns the glyph at column x, row y. Empty cells have a zero Rune.
func (r Raster) At(x, y int) Glyph {
	if x < 0 || y < 0 || x >= r.Cols || y >= r.Rows {
		return Glyph{}
	}
	return r.cells[y*r.Cols+x]
}

func (r Raster) set(x, y int, g Glyph) {
	if x < 0 || y < 0 || x >= r.Cols || y >= r.Rows {
		return
	}
	r.cells[y*r.Cols+x] = g
}

// fill covers every cell whose centre falls inside the pose's bounds. Bodies thinner than a
// cell still cover the nearest one.
func (r Raster) fill(p physics.Pose, g Glyph) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, v := range p.Vertices {
		minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
		minY, maxY = math.Min(minY, v.Y/YScale), math.Max(maxY, v.Y/YScale)
	}

	x0, x1 := span(minX, maxX)
	y0, y1 := span(minY, maxY)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.set(x, y, g)
		}
	}
}

func span(lo, hi float64) (int, int) {
	first := int(math.Ceil(lo - 0.5))
	last := int(math.Floor(hi - 0.5))
	if last < first {
		mid := int(math.Floor((lo + hi) / 2))
		return mid, mid
	}
	return first, last
}

func glyphFor(p physics.Pose) Glyph {
	switch p.Tag {
	case physics.TagWall:
		return Glyph{Rune: '█', Tag: p.Tag}
	case physics.TagGoal:
		return Glyph{Rune: '▒', Tag: p.Tag}
	case physics.TagPlayer:
		return Glyph{Rune: '●', Tag: p.Tag}
	case physics.TagHazard:
		phase := math.Mod(math.Abs(p.Rotation), math.Pi/2)
		if phase > math.Pi/8 && phase < 3*math.Pi/8 {
			return Glyph{Rune: '◆', Tag: p.Tag}
		}
		return Glyph{Rune: '■', Tag: p.Tag}
	}
	return Glyph{Rune: '?', Tag: p.Tag}
}

func gravityArrow(g physics.Vec) (rune, bool) {
	switch {
	case g.X == 0 && g.Y == 0:
		return 0, false
	case math.Abs(g.X) > math.Abs(g.Y):
		if g.X > 0 {
			return '→', true
		}
		return '←', true
	case g.Y > 0:
		return '↓', true
	default:
		return '↑', true
	}
}
