// Package logger holds the process-wide zerolog logger. Init configures it
// once at startup; Get and Component hand it out afterwards.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options mirrors the LOG_* settings.
type Options struct {
	// Level falls back to info when empty or unknown.
	Level string
	// Pretty switches stdout to zerolog's console writer. The file sink
	// always gets JSON.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// File, when set, also writes JSON lines to a size-rotated file.
	File string
}

// File rotation limits for Options.File.
const (
	fileMaxSizeMB  = 50
	fileMaxBackups = 5
	fileMaxAgeDays = 14
)

var (
	instance    zerolog.Logger
	once        sync.Once
	initialized bool
)

// Init builds the logger on first call and returns it. Later calls return
// the existing logger unchanged.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		var out io.Writer = os.Stdout
		if opts.Output != nil {
			out = opts.Output
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
		}
		if opts.File != "" {
			out = zerolog.MultiLevelWriter(out, fileWriter(opts.File))
		}

		lvl := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(lvl)

		instance = zerolog.New(out).
			Level(lvl).
			With().
			Timestamp().
			Str("service", "twittoo-api").
			Logger()

		initialized = true
	})
	return instance
}

func fileWriter(path string) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    fileMaxSizeMB,
		MaxBackups: fileMaxBackups,
		MaxAge:     fileMaxAgeDays,
		Compress:   true,
	}
}

// Get panics when Init has not run.
func Get() zerolog.Logger {
	if !initialized {
		panic("logger: Get called before Init")
	}
	return instance
}

// Component derives a child logger tagged with the subsystem name.
func Component(parent zerolog.Logger, name string) zerolog.Logger {
	return parent.With().Str("component", name).Logger()
}

// Reset forgets the logger so the next Init rebuilds it. Tests only.
func Reset() {
	once = sync.Once{}
	instance = zerolog.Logger{}
	initialized = false
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
