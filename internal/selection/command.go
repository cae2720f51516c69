package selection

import (
	"fmt"
	"strings"
)

// Command is a discrete manipulation of the selected instance. Mapping keys or
// buttons to commands is the input layer's job.
type Command int

const (
	Forward Command = iota
	Backward
	Left
	Right
	Up
	Down
	RotatePositive
	RotateNegative
)

var commandNames = [...]string{
	"forward", "backward", "left", "right", "up", "down", "rotate-positive", "rotate-negative",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return fmt.Sprintf("Command(%d)", int(c))
	}
	return commandNames[c]
}

// Commands returns every command in declaration order.
func Commands() []Command {
	out := make([]Command, len(commandNames))
	for i := range out {
		out[i] = Command(i)
	}
	return out
}

// ParseCommand accepts a command name as printed by String (case-insensitive).
func ParseCommand(s string) (Command, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range commandNames {
		if n == s {
			return Command(i), nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", s)
}

// IsRotation reports whether c turns the instance rather than moving it.
func (c Command) IsRotation() bool {
	return c == RotatePositive || c == RotateNegative
}
