// Package logging provides the Logger capability passed through the
// composition root. The default implementation writes through zerolog.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the sink every component logs to. Arguments after msg are
// key/value pairs.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

// Options selects the output format and level.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // console or json
	Out    io.Writer

	// File, when set, also receives JSON lines, rotated at MaxSizeMB.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

type zlogger struct {
	zl zerolog.Logger
}

// New returns a zerolog backed Logger. Unknown levels fall back to info.
func New(opts Options) Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if !strings.EqualFold(opts.Format, "json") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
	}

	if opts.File != "" {
		out = zerolog.MultiLevelWriter(out, rotating(opts))
	}

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return &zlogger{zl: zerolog.New(out).Level(level).With().Timestamp().Logger()}
}

func rotating(opts Options) io.Writer {
	size := opts.MaxSizeMB
	if size <= 0 {
		size = 10
	}
	backups := opts.MaxBackups
	if backups <= 0 {
		backups = 3
	}
	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    size,
		MaxBackups: backups,
	}
}

// Nop discards everything.
func Nop() Logger {
	return &zlogger{zl: zerolog.Nop()}
}

// OrNop returns l, or Nop when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop()
	}
	return l
}

func (l *zlogger) Debug(msg string, keyvals ...any) { write(l.zl.Debug(), msg, keyvals) }
func (l *zlogger) Info(msg string, keyvals ...any)  { write(l.zl.Info(), msg, keyvals) }
func (l *zlogger) Warn(msg string, keyvals ...any)  { write(l.zl.Warn(), msg, keyvals) }
func (l *zlogger) Error(msg string, keyvals ...any) { write(l.zl.Error(), msg, keyvals) }

func write(e *zerolog.Event, msg string, keyvals []any) {
	if e == nil {
		return
	}
	if len(keyvals)%2 == 1 {
		keyvals = append(keyvals, "(missing)")
	}
	if len(keyvals) > 0 {
		e = e.Fields(keyvals)
	}
	e.Msg(msg)
}
