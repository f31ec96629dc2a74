// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const permission = 0o664

// Builder collects logger options. The zero value logs at info to stdout.
type Builder struct {
	writer io.Writer
	path   string
	level  zerolog.Level
}

// Logger is a built logger and the file behind it, if any.
type Logger struct {
	zerolog.Logger
	file *os.File
}

func New() *Builder {
	return &Builder{level: zerolog.InfoLevel}
}

// FromPath appends to the file at path. It wins over FromBuffer.
func (b *Builder) FromPath(path string) *Builder {
	b.path = path
	return b
}

func (b *Builder) FromBuffer(w io.Writer) *Builder {
	b.writer = w
	return b
}

func (b *Builder) Level(level zerolog.Level) *Builder {
	b.level = level
	return b
}

func (b *Builder) Make() (*Logger, error) {
	out := &Logger{}
	w := b.writer
	if w == nil {
		w = os.Stdout
	}
	if b.path != "" {
		f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out.file = f
		w = zerolog.SyncWriter(f)
	}
	out.Logger = zerolog.New(w).Level(b.level).With().Timestamp().Logger()
	return out, nil
}

// Close closes the log file. It is a no-op for stream loggers.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel accepts debug, info, warn and error, case-insensitively.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
}
