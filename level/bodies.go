package level

import (
	"github.com/beka-birhanu/gravity-maze/hazard"
	"github.com/beka-birhanu/gravity-maze/maze"
	"github.com/beka-birhanu/gravity-maze/physics"
)

func wall(x, y, w, h float64) physics.BodyDescriptor {
	return physics.BodyDescriptor{
		Tag:      physics.TagWall,
		Position: physics.Vec{X: x, Y: y},
		Width:    w,
		Height:   h,
		Static:   true,
	}
}

// boundaryWalls frames the viewport from outside: top, bottom, left, right.
func boundaryWalls(w, h, t float64) []physics.BodyDescriptor {
	return []physics.BodyDescriptor{
		wall(w/2, -t/2, w, t),
		wall(w/2, h+t/2, w, t),
		wall(-t/2, h/2, t, h),
		wall(w+t/2, h/2, t, h),
	}
}

// gridWalls emits one wall per closed right or bottom edge, row by row.
func gridWalls(grid *maze.Maze, lvl Level, t float64) []physics.BodyDescriptor {
	var walls []physics.BodyDescriptor
	for y, row := range grid.Grid {
		for x, cell := range row {
			cx := float64(x)*lvl.CellWidth + lvl.CellWidth/2
			cy := float64(y)*lvl.CellHeight + lvl.CellHeight/2

			if !cell.PassageRight {
				walls = append(walls, wall(cx+lvl.CellWidth/2, cy, t, lvl.CellHeight+t))
			}
			if !cell.PassageBottom {
				walls = append(walls, wall(cx, cy+lvl.CellHeight/2, lvl.CellWidth+t, t))
			}
		}
	}
	return walls
}

func hazardBody(h hazard.Hazard, size, spin float64) physics.BodyDescriptor {
	return physics.BodyDescriptor{
		Tag:      physics.TagHazard,
		Position: physics.Vec{X: h.PixelX, Y: h.PixelY},
		Width:    size,
		Height:   size,
		Angle:    h.RotationPhase,
		Static:   true,
		Sensor:   true,
		Spin:     spin,
	}
}

func playerBody(lvl Level, size float64) physics.BodyDescriptor {
	return physics.BodyDescriptor{
		Tag:         physics.TagPlayer,
		Position:    physics.Vec{X: lvl.CellWidth / 2, Y: lvl.CellHeight / 2},
		Width:       size,
		Height:      size,
		Restitution: playerRestitution,
		AirFriction: playerAirFriction,
	}
}

func goalBody(lvl Level, w, h, size float64) physics.BodyDescriptor {
	return physics.BodyDescriptor{
		Tag:      physics.TagGoal,
		Position: physics.Vec{X: w - lvl.CellWidth/2, Y: h - lvl.CellHeight/2},
		Width:    size,
		Height:   size,
		Static:   true,
		Sensor:   true,
	}
}
