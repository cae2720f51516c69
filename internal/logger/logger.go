package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// DefaultFilePath is the planner log file, relative to the working directory.
	DefaultFilePath = "logs/planner.log"
	// MaxLines is how many recent lines Lines keeps.
	MaxLines = 500
)

// Options configures New. Zero values pick the defaults.
type Options struct {
	Level      string // logrus level name; "info" when empty
	FilePath   string // rotating log file; DefaultFilePath when empty, "-" disables the file
	MaxSizeMB  int
	MaxBackups int
	Console    io.Writer // optional extra sink, e.g. os.Stderr
}

// Logger is a logrus logger that also keeps the last MaxLines formatted lines in
// memory so the in-window terminal can show recent output.
type Logger struct {
	*logrus.Logger
	mu    sync.Mutex
	lines []string // ring buffer; next is the slot the next line goes into once full
	next  int
}

// New returns a Logger writing to a rotating file (and Options.Console when set).
// The log directory is created if needed.
func New(opts Options) (*Logger, error) {
	lvl := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		lvl = parsed
	}

	var sinks []io.Writer
	path := opts.FilePath
	if path == "" {
		path = DefaultFilePath
	}
	if path != "-" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		sinks = append(sinks, &lumberjack.Logger{
			Filename:   path,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 3),
		})
	}
	if opts.Console != nil {
		sinks = append(sinks, opts.Console)
	}

	base := logrus.New()
	base.SetLevel(lvl)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	switch len(sinks) {
	case 0:
		base.SetOutput(io.Discard)
	case 1:
		base.SetOutput(sinks[0])
	default:
		base.SetOutput(io.MultiWriter(sinks...))
	}

	l := &Logger{Logger: base}
	base.AddHook(&linesHook{l: l})
	return l, nil
}

// Log records a plain line at info level, e.g. a command typed into the terminal.
func (l *Logger) Log(line string) {
	l.Info(line)
}

// Lines returns a copy of the recorded lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.lines))
	out = append(out, l.lines[l.next:]...)
	return append(out, l.lines[:l.next]...)
}

func (l *Logger) record(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.lines) < MaxLines {
		l.lines = append(l.lines, line)
		return
	}
	l.lines[l.next] = line
	l.next = (l.next + 1) % MaxLines
}

// linesHook mirrors entries into Logger.lines as "[timestamp] message key=value".
type linesHook struct {
	l *Logger
}

func (h *linesHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *linesHook) Fire(e *logrus.Entry) error {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(e.Time.Format("2006-01-02 15:04:05"))
	b.WriteString("] ")
	if e.Level <= logrus.WarnLevel {
		b.WriteString(strings.ToUpper(e.Level.String()))
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	for _, k := range sortedKeys(e.Data) {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	h.l.record(b.String())
	return nil
}

func sortedKeys(f logrus.Fields) []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func orDefault(v, d int) int {
	if v <= 0 {
		return d
	}
	return v
}
