package opensearch

import (
	"os"

	"github.com/rs/zerolog"
)

// debugLogger returns l at debug level. A disabled logger (the default
// zerolog.Nop) is replaced by a console logger on stderr so that
// OPENSEARCH_DEBUG=true works without code changes.
func debugLogger(l zerolog.Logger) zerolog.Logger {
	if l.GetLevel() == zerolog.Disabled {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
			With().Timestamp().Str("component", "opensearch").Logger()
	}
	return l.Level(zerolog.DebugLevel)
}

// debugLoggingRequested checks if HTTP debug logging should be enabled.
//
// Activation methods:
//   - OPENSEARCH_DEBUG=true (SDK-specific flag)
//   - DEBUG=true (general debug flag, common in development workflows)
func debugLoggingRequested() bool {
	return os.Getenv("OPENSEARCH_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
