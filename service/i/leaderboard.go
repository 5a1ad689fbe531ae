package i

import "context"

// ScoreEntry is one leaderboard row.
type ScoreEntry struct {
	Player string `json:"player"`
	Level  int    `json:"level"`
	Deaths int    `json:"deaths"`
}

// Leaderboard keeps the best level reached per player.
type Leaderboard interface {
	// RecordClear stores a cleared level. Lower levels never replace a better score.
	RecordClear(ctx context.Context, player string, level, deaths int) error

	// Top returns up to n entries, best first.
	Top(ctx context.Context, n int) ([]ScoreEntry, error)
}
