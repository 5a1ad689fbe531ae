package i

// Logger is the component logger used by services.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}
