package sevenzlist

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// DebugEnv enables debug logging to stderr when set to a non-empty value.
const DebugEnv = "SEVENZ_DEBUG"

var logger atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.New(os.Stderr).With().Timestamp().Str("pkg", "sevenzlist").Logger().Level(zerolog.Disabled)
	if os.Getenv(DebugEnv) != "" {
		l = l.Level(zerolog.DebugLevel)
	}
	logger.Store(&l)
}

// Logger returns the package logger.
func Logger() zerolog.Logger { return *logger.Load() }

// SetLogger replaces the package logger.
func SetLogger(l zerolog.Logger) { logger.Store(&l) }

// SetLogLevel changes the level of the package logger.
func SetLogLevel(level string) error {
	var lvl zerolog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "info":
		lvl = zerolog.InfoLevel
	case "warn", "warning":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	case "disabled", "none", "off":
		lvl = zerolog.Disabled
	default:
		return fmt.Errorf("invalid log level %q: must be one of: debug, info, warn, error, disabled", level)
	}
	l := Logger().Level(lvl)
	logger.Store(&l)
	return nil
}
