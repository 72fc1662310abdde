// Package log wraps zerolog behind a small structured-logging API used
// throughout i18nsync. Call InitLogger once at startup, then use the
// package-level helpers or chain fields with WithField/WithFields/WithError.
package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
	With().Timestamp().Logger().Level(zerolog.InfoLevel)

// InitLogger configures the global logger. When pretty is true, output is
// rendered with zerolog's console writer; otherwise raw JSON lines are
// written to output.
func InitLogger(output io.Writer, level zerolog.Level, pretty bool) {
	if pretty {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.Kitchen}
	}
	logger = zerolog.New(output).With().Timestamp().Logger().Level(level)
}

// SetGlobalField attaches a field to every subsequent log line, e.g. a run ID.
func SetGlobalField(key string, value interface{}) {
	logger = logger.With().Interface(key, value).Logger()
}

// Entry accumulates fields and an optional error before emitting a line.
type Entry struct {
	fields map[string]interface{}
	err    error
}

func newEntry() *Entry {
	return &Entry{fields: make(map[string]interface{})}
}

func WithField(key string, value interface{}) *Entry {
	return newEntry().WithField(key, value)
}

func WithFields(fields map[string]interface{}) *Entry {
	return newEntry().WithFields(fields)
}

func WithError(err error) *Entry {
	return newEntry().WithError(err)
}

func (e *Entry) WithField(key string, value interface{}) *Entry {
	e.fields[key] = value
	return e
}

func (e *Entry) WithFields(fields map[string]interface{}) *Entry {
	for k, v := range fields {
		e.fields[k] = v
	}
	return e
}

func (e *Entry) WithError(err error) *Entry {
	e.err = err
	return e
}

func (e *Entry) Debug(msg string) { e.emit(logger.Debug(), msg) }
func (e *Entry) Info(msg string)  { e.emit(logger.Info(), msg) }
func (e *Entry) Warn(msg string)  { e.emit(logger.Warn(), msg) }
func (e *Entry) Error(msg string) { e.emit(logger.Error(), msg) }

func (e *Entry) emit(ev *zerolog.Event, msg string) {
	if e.err != nil {
		ev = ev.Err(e.err)
	}
	ev.Fields(e.fields).Msg(msg)
}

func Debug(msg string) { logger.Debug().Msg(msg) }
func Info(msg string)  { logger.Info().Msg(msg) }
func Warn(msg string)  { logger.Warn().Msg(msg) }
func Error(msg string) { logger.Error().Msg(msg) }
