package aabb

import (
	"math"

	"github.com/beka-birhanu/gravity-maze/physics"
)

// penetration returns the push that moves a out of b along the axis of least overlap.
// ok is false when the boxes are apart.
func penetration(a, b *body) (normal physics.Vec, depth float64, ok bool) {
	aMin, aMax := a.bounds()
	bMin, bMax := b.bounds()

	overlapX := math.Min(aMax.X, bMax.X) - math.Max(aMin.X, bMin.X)
	overlapY := math.Min(aMax.Y, bMax.Y) - math.Max(aMin.Y, bMin.Y)
	if overlapX <= 0 || overlapY <= 0 {
		return physics.Vec{}, 0, false
	}

	if overlapX < overlapY {
		normal = physics.Vec{X: 1}
		if a.position.X < b.position.X {
			normal.X = -1
		}
		return normal, overlapX, true
	}

	normal = physics.Vec{Y: 1}
	if a.position.Y < b.position.Y {
		normal.Y = -1
	}
	return normal, overlapY, true
}

// resolve separates dynamic body a from solid body b and reflects the approaching velocity.
func resolve(a, b *body) {
	normal, depth, ok := penetration(a, b)
	if !ok {
		return
	}

	restitution := math.Max(a.desc.Restitution, b.desc.Restitution)

	if b.dynamic() {
		a.position = a.position.Add(normal.Scale(depth / 2))
		b.position = b.position.Sub(normal.Scale(depth / 2))

		closing := a.velocity.Sub(b.velocity).Dot(normal)
		if closing < 0 {
			impulse := normal.Scale(-(1 + restitution) * closing / 2)
			a.velocity = a.velocity.Add(impulse)
			b.velocity = b.velocity.Sub(impulse)
		}
		return
	}

	a.position = a.position.Add(normal.Scale(depth))
	if closing := a.velocity.Dot(normal); closing < 0 {
		a.velocity = a.velocity.Sub(normal.Scale((1 + restitution) * closing))
	}
}

// touching reports whether two bodies are in contact. Solid pairs count resting contact;
// pairs involving a sensor are tested on their rotated outlines.
func touching(a, b *body) bool {
	if a.desc.Sensor || b.desc.Sensor {
		return polygonsOverlap(a.vertices(), b.vertices())
	}

	aMin, aMax := a.bounds()
	bMin, bMax := b.bounds()
	return math.Min(aMax.X, bMax.X)-math.Max(aMin.X, bMin.X) >= -contactSlop &&
		math.Min(aMax.Y, bMax.Y)-math.Max(aMin.Y, bMin.Y) >= -contactSlop
}

// polygonsOverlap runs the separating axis test on two convex polygons.
func polygonsOverlap(a, b []physics.Vec) bool {
	for _, poly := range [][]physics.Vec{a, b} {
		for i := range poly {
			edge := poly[(i+1)%len(poly)].Sub(poly[i])
			axis := physics.Vec{X: -edge.Y, Y: edge.X}

			aMin, aMax := project(a, axis)
			bMin, bMax := project(b, axis)
			if aMax <= bMin || bMax <= aMin {
				return false
			}
		}
	}
	return true
}

func project(poly []physics.Vec, axis physics.Vec) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range poly {
		p := v.Dot(axis)
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	return lo, hi
}
