// Package logging wires zerolog into the calculation engine's Logger
// interface and standardizes process-level logger setup.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// Setup configures the process logger. Pretty output is for terminals;
// production emits JSON with unix timestamps.
func Setup(pretty bool) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if pretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// EngineAdapter exposes a zerolog.Logger through the engine's Logger
// interface.
type EngineAdapter struct {
	l zerolog.Logger
}

// NewEngineAdapter wraps a zerolog logger.
func NewEngineAdapter(l zerolog.Logger) EngineAdapter {
	return EngineAdapter{l: l}
}

func (a EngineAdapter) Debugf(format string, args ...any) { a.l.Debug().Msgf(format, args...) }
func (a EngineAdapter) Infof(format string, args ...any)  { a.l.Info().Msgf(format, args...) }
func (a EngineAdapter) Warnf(format string, args ...any)  { a.l.Warn().Msgf(format, args...) }
func (a EngineAdapter) Errorf(format string, args ...any) { a.l.Error().Msgf(format, args...) }
