package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beka-birhanu/gravity-maze/gravity"
)

// ErrUnknownCommand is returned when a command name cannot be parsed.
var ErrUnknownCommand = errors.New("unknown command")

// CommandKind is the type of an input command.
type CommandKind int

const (
	CommandGravity CommandKind = iota + 1
	CommandRetry
	CommandQuit
)

// Command is a discrete input event.
type Command struct {
	Kind      CommandKind
	Direction gravity.Direction // Set for CommandGravity
}

// Tilt builds a gravity command.
func Tilt(d gravity.Direction) Command {
	return Command{Kind: CommandGravity, Direction: d}
}

// Retry builds a retry command.
func Retry() Command {
	return Command{Kind: CommandRetry}
}

// Quit builds a quit command.
func Quit() Command {
	return Command{Kind: CommandQuit}
}

func (c Command) String() string {
	switch c.Kind {
	case CommandGravity:
		return c.Direction.String()
	case CommandRetry:
		return "retry"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// ParseCommand reads a command name such as "left" or "retry".
func ParseCommand(name string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up":
		return Tilt(gravity.Up), nil
	case "down":
		return Tilt(gravity.Down), nil
	case "left":
		return Tilt(gravity.Left), nil
	case "right":
		return Tilt(gravity.Right), nil
	case "retry", "r":
		return Retry(), nil
	case "quit", "q":
		return Quit(), nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}
