package aabb

import (
	"math"

	"github.com/beka-birhanu/gravity-maze/physics"
)

type body struct {
	handle   physics.Handle
	desc     physics.BodyDescriptor
	position physics.Vec
	velocity physics.Vec
	angle    float64
}

func newBody(handle physics.Handle, d physics.BodyDescriptor) *body {
	return &body{
		handle:   handle,
		desc:     d,
		position: d.Position,
		angle:    d.Angle,
	}
}

func (b *body) dynamic() bool {
	return !b.desc.Static
}

func (b *body) vertices() []physics.Vec {
	return b.desc.Vertices(b.position, b.angle)
}

// bounds returns the axis-aligned box around the rotated outline.
func (b *body) bounds() (minV, maxV physics.Vec) {
	verts := b.vertices()
	minV, maxV = verts[0], verts[0]
	for _, v := range verts[1:] {
		minV.X = math.Min(minV.X, v.X)
		minV.Y = math.Min(minV.Y, v.Y)
		maxV.X = math.Max(maxV.X, v.X)
		maxV.Y = math.Max(maxV.Y, v.Y)
	}
	return minV, maxV
}

func (b *body) pose() physics.Pose {
	return physics.Pose{
		Handle:   b.handle,
		Tag:      b.desc.Tag,
		Position: b.position,
		Rotation: b.angle,
		Vertices: b.vertices(),
		Sensor:   b.desc.Sensor,
	}
}
