// Package logger provides a configured zerolog logger for the command line.
package logger

import (
	"errors"
	"io"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

type stackTracer interface{ StackTrace() pkgerrors.StackTrace }

// New returns a console logger writing to w at level. Error events that
// call .Stack() render the first pkg/errors stack found in the chain, so a
// transport failure shows where it was raised rather than where it was logged.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		var st stackTracer
		if !errors.As(err, &st) {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().
		Str("component", "opensearch").
		Timestamp().
		Logger()
}
