package game

// Status is the phase of the current level.
type Status int

const (
	Playing       Status = iota // Level is live
	Transitioning               // Outcome detected, guard armed
	Clear                       // Goal reached, next level pending
	GameOver                    // Hazard hit, same level pending
)

// Messages shown while a transition is pending.
const (
	ClearMessage    = "STAGE CLEAR!"
	GameOverMessage = "GAME OVER"
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Transitioning:
		return "transitioning"
	case Clear:
		return "clear"
	case GameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Message is the banner text for the status.
func (s Status) Message() string {
	switch s {
	case Clear:
		return ClearMessage
	case GameOver:
		return GameOverMessage
	default:
		return ""
	}
}

// GameState persists across levels for one session.
type GameState struct {
	Status    Status
	Level     int
	Deaths    int
	PlayerHit bool
}

// Transitioning reports whether the re-entrancy guard is armed.
func (s GameState) Transitioning() bool {
	return s.Status != Playing
}

// Snapshot is the read-only view handed to renderers and the status API.
type Snapshot struct {
	Level         int    `json:"level"`
	Deaths        int    `json:"deaths"`
	Status        string `json:"status"`
	Message       string `json:"message"`
	Transitioning bool   `json:"transitioning"`
	PlayerHit     bool   `json:"playerHit"`
}

func (s GameState) snapshot() Snapshot {
	return Snapshot{
		Level:         s.Level,
		Deaths:        s.Deaths,
		Status:        s.Status.String(),
		Message:       s.Status.Message(),
		Transitioning: s.Transitioning(),
		PlayerHit:     s.PlayerHit,
	}
}
