// Package console is the line editor behind the in-window terminal: it buffers
// typed text and runs submitted lines through the command registry.
package console

import (
	"strings"
	"unicode/utf8"

	"room-planner/internal/commands"
	"room-planner/internal/logger"
)

// Prompt prefixes the input line and echoed commands.
const Prompt = "> "

// Console holds the current input line.
type Console struct {
	log *logger.Logger
	reg *commands.Registry
	buf string
}

// New returns an empty console.
func New(log *logger.Logger, reg *commands.Registry) *Console {
	return &Console{log: log, reg: reg}
}

// Input returns the text typed so far.
func (c *Console) Input() string {
	return c.buf
}

// Type appends s to the input line.
func (c *Console) Type(s string) {
	c.buf += s
}

// Backspace removes the last rune of the input line.
func (c *Console) Backspace() {
	if c.buf == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(c.buf)
	c.buf = c.buf[:len(c.buf)-size]
}

// Submit echoes the input line, clears it and executes it. Errors are logged as warnings.
func (c *Console) Submit() {
	line := strings.TrimSpace(c.buf)
	c.buf = ""
	if line == "" {
		return
	}
	c.log.Log(Prompt + line)
	if err := c.reg.ExecuteLine(line); err != nil {
		c.log.Warn(err.Error())
	}
}

// Lines returns the log lines, most recent last.
func (c *Console) Lines() []string {
	return c.log.Lines()
}

// Tail returns the last n lines of lines.
func Tail(lines []string, n int) []string {
	if len(lines) > n {
		return lines[len(lines)-n:]
	}
	return lines
}

// Clip shortens s to n bytes, marking the cut with "...".
func Clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
