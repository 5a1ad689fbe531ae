package game

import (
	"github.com/beka-birhanu/gravity-maze/level"
	"github.com/beka-birhanu/gravity-maze/physics"
	"github.com/google/uuid"
)

// Frame is what one simulation tick publishes to renderers.
type Frame struct {
	SessionID uuid.UUID      `json:"sessionId"`
	Tick      uint64         `json:"tick"`
	Snapshot  Snapshot       `json:"state"`
	Level     level.Level    `json:"level"`
	Gravity   physics.Vec    `json:"gravity"`
	Poses     []physics.Pose `json:"bodies"`
}
