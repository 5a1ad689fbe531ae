package i

// Cue is a short sound effect.
type Cue int

const (
	CueClear Cue = iota + 1
	CueDeath
	CueTilt
)

// SoundPlayer plays cues without blocking the caller.
type SoundPlayer interface {
	Play(Cue)
}
