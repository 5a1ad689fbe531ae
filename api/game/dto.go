// Package gameapi exposes the running session over HTTP.
package gameapi

import (
	"github.com/beka-birhanu/gravity-maze/game"
	"github.com/beka-birhanu/gravity-maze/service/i"
)

// CommandRequest asks the session to apply a command such as "left" or "retry".
type CommandRequest struct {
	Command string `json:"command" binding:"required"`
}

// CommandResponse reports whether the command was queued.
type CommandResponse struct {
	Command  string `json:"command"`
	Accepted bool   `json:"accepted"`
}

// SessionResponse is the current state of the session.
type SessionResponse struct {
	ID    string        `json:"id"`
	Tick  uint64        `json:"tick"`
	State game.Snapshot `json:"state"`
	Cols  int           `json:"cols"`
	Rows  int           `json:"rows"`
	Frame *game.Frame   `json:"frame,omitempty"`
}

// LeaderboardResponse lists the best runs.
type LeaderboardResponse struct {
	Entries []i.ScoreEntry `json:"entries"`
}
