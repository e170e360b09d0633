// Package log provides the structured logger used across the DKG core.
// It wraps zerolog behind a small package-level API so call sites never
// touch the underlying logger type directly.
package log

import (
	"cmp"
	"fmt"
	"os"
	"path"
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"

	// RFC3339Milli matches time.RFC3339Nano but with 3 fixed-width decimals.
	RFC3339Milli = "2006-01-02T15:04:05.000Z07:00"
)

var (
	log   zerolog.Logger
	logMu sync.RWMutex
)

func init() {
	// $LOG_LEVEL/$LOG_OUTPUT let a test binary or the caller's driver
	// override verbosity without threading a flag through every package.
	Init(cmp.Or(os.Getenv("LOG_LEVEL"), "info"), cmp.Or(os.Getenv("LOG_OUTPUT"), "stderr"))
}

// Init (re)configures the global logger. output is "stdout", "stderr", or
// a file path.
func Init(level, output string) {
	var out zerolog.ConsoleWriter
	switch output {
	case "stdout":
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: RFC3339Milli}
	case "stderr":
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: RFC3339Milli}
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			panic(fmt.Sprintf("cannot open log output %q: %v", output, err))
		}
		out = zerolog.ConsoleWriter{Out: f, TimeFormat: RFC3339Milli, NoColor: true}
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	logger := zerolog.New(out).With().Timestamp().Caller().Logger()
	zerolog.CallerSkipFrameCount = 3
	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		return fmt.Sprintf("%s/%s:%d", path.Base(path.Dir(file)), path.Base(file), line)
	}

	switch level {
	case LevelDebug:
		logger = logger.Level(zerolog.DebugLevel)
	case LevelInfo:
		logger = logger.Level(zerolog.InfoLevel)
	case LevelWarn:
		logger = logger.Level(zerolog.WarnLevel)
	case LevelError:
		logger = logger.Level(zerolog.ErrorLevel)
	default:
		panic(fmt.Sprintf("invalid log level: %q", level))
	}

	setLogger(logger)
}

func getLogger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return log
}

func setLogger(logger zerolog.Logger) {
	logMu.Lock()
	log = logger
	logMu.Unlock()
}

// Logger returns the current global logger.
func Logger() *zerolog.Logger {
	l := getLogger()
	return &l
}

// EnablePanicOnError installs a hook that panics on the first Error-level
// log, for use in tests that must fail loudly on any core-level error
// rather than let the state machine silently swallow it as an accusation.
// Returns the previous logger so it can be restored with RestoreLogger.
func EnablePanicOnError(testName string) zerolog.Logger {
	previous := getLogger()
	setLogger(previous.Hook(panicOnErrorHook{testName: testName}))
	return previous
}

// RestoreLogger restores a logger previously returned by EnablePanicOnError.
func RestoreLogger(previous zerolog.Logger) {
	setLogger(previous)
}

type panicOnErrorHook struct{ testName string }

func (h panicOnErrorHook) Run(_ *zerolog.Event, level zerolog.Level, msg string) {
	if level >= zerolog.ErrorLevel {
		panic(fmt.Sprintf("error log during test %s: %s", h.testName, msg))
	}
}

func Debug(args ...any) { getLogger().Debug().Msg(fmt.Sprint(args...)) }
func Info(args ...any)  { getLogger().Info().Msg(fmt.Sprint(args...)) }
func Warn(args ...any)  { getLogger().Warn().Msg(fmt.Sprint(args...)) }
func Error(args ...any) { getLogger().Error().Msg(fmt.Sprint(args...)) }

func Fatal(args ...any) {
	getLogger().Fatal().Msg(fmt.Sprint(args...) + "\n" + string(debug.Stack()))
	panic("unreachable")
}

func Debugf(tmpl string, args ...any) { getLogger().Debug().Msgf(tmpl, args...) }
func Infof(tmpl string, args ...any)  { getLogger().Info().Msgf(tmpl, args...) }
func Warnf(tmpl string, args ...any)  { getLogger().Warn().Msgf(tmpl, args...) }
func Errorf(tmpl string, args ...any) { getLogger().Error().Msgf(tmpl, args...) }

// Infow logs an info message with structured key-value fields, e.g.
// log.Infow("phase transition", "participant", id, "phase", phase, "block", block)
func Infow(msg string, keyvalues ...any) { getLogger().Info().Fields(keyvalues).Msg(msg) }
func Warnw(msg string, keyvalues ...any) { getLogger().Warn().Fields(keyvalues).Msg(msg) }

// Errorw logs an error with an attached err field.
func Errorw(err error, msg string, keyvalues ...any) {
	getLogger().Error().Err(err).Fields(keyvalues).Msg(msg)
}

// PhaseTransition logs a participant's move into a new protocol phase.
// It exists as a single call site so every phase change is logged with
// the same field names.
func PhaseTransition(participant uint64, phase string, block uint64) {
	Infow("phase transition", "participant", participant, "phase", phase, "block", block)
}

// Accusation logs a locally-raised or locally-verified accusation.
func Accusation(disputer, issuer uint64, valid bool) {
	Infow("accusation", "disputer", disputer, "issuer", issuer, "valid", valid)
}
