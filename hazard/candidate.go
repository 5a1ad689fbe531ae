package hazard

import "math"

// DefaultSafeRadius is the grid distance around start and goal kept free of hazards.
const DefaultSafeRadius = 2.0

// Candidate is an interior cell eligible for trap placement.
type Candidate struct {
	GridX  int     // Column of the cell
	GridY  int     // Row of the cell
	PixelX float64 // Horizontal centre of the cell in world units
	PixelY float64 // Vertical centre of the cell in world units
}

// Candidates lists every cell whose Euclidean grid distance from both (0,0) and
// (cols-1,rows-1) exceeds safeRadius, in row-major order.
func Candidates(cols, rows int, cellWidth, cellHeight, safeRadius float64) []Candidate {
	var result []Candidate
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			distStart := math.Hypot(float64(x), float64(y))
			distEnd := math.Hypot(float64(cols-1-x), float64(rows-1-y))
			if distStart <= safeRadius || distEnd <= safeRadius {
				continue
			}

			result = append(result, Candidate{
				GridX:  x,
				GridY:  y,
				PixelX: float64(x)*cellWidth + cellWidth/2,
				PixelY: float64(y)*cellHeight + cellHeight/2,
			})
		}
	}
	return result
}
