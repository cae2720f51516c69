package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-planner/internal/commands"
	"room-planner/internal/logger"
)

func newConsole(t *testing.T) (*Console, *logger.Logger, *[]string) {
	t.Helper()
	log, err := logger.New(logger.Options{FilePath: "-"})
	require.NoError(t, err)
	var ran []string
	reg := commands.NewRegistry()
	reg.Register("echo", "echo <words>", nil, func(args []string) error {
		ran = append(ran, strings.Join(args, " "))
		return nil
	})
	return New(log, reg), log, &ran
}

func TestSubmitRunsCommand(t *testing.T) {
	con, log, ran := newConsole(t)
	con.Type("/echo hi there")
	con.Submit()

	assert.Equal(t, []string{"hi there"}, *ran)
	assert.Empty(t, con.Input())
	lines := log.Lines()
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0], "] > /echo hi there"))
}

func TestSubmitLogsUnknownCommand(t *testing.T) {
	con, log, ran := newConsole(t)
	con.Type("jump")
	con.Submit()

	assert.Empty(t, *ran)
	lines := log.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "WARNING:")
	assert.Contains(t, lines[1], "jump")
}

func TestSubmitBlankLine(t *testing.T) {
	con, log, _ := newConsole(t)
	con.Type("   ")
	con.Submit()
	assert.Empty(t, log.Lines())
}

func TestBackspaceRemovesRune(t *testing.T) {
	con, _, _ := newConsole(t)
	con.Type("wall #ffé")
	con.Backspace()
	assert.Equal(t, "wall #ff", con.Input())

	con.buf = ""
	con.Backspace()
	assert.Empty(t, con.Input())
}

func TestTailAndClip(t *testing.T) {
	assert.Equal(t, []string{"b", "c"}, Tail([]string{"a", "b", "c"}, 2))
	assert.Equal(t, []string{"a"}, Tail([]string{"a"}, 2))
	assert.Equal(t, "abcdefg", Clip("abcdefg", 7))
	assert.Equal(t, "abc...", Clip("abcdefghij", 6))
}
