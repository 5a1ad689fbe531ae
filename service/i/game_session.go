package i

import (
	"github.com/beka-birhanu/gravity-maze/game"
	"github.com/google/uuid"
)

// GameSession is a running game that outer surfaces can observe and steer.
type GameSession interface {
	// ID returns the session identifier.
	ID() uuid.UUID

	// Latest returns the most recently published frame.
	Latest() game.Frame

	// Submit queues a command. It reports false when the command was dropped.
	Submit(game.Command) bool
}
