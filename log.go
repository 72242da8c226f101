package piafwd

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// SetLogging installs the default logger at the given verbosity.
// Logs go to stderr; stdout is reserved for the forwarded port.
func SetLogging(v string) *slog.Logger {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	logLevel := &slog.LevelVar{}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		AddSource:  true,
		TimeFormat: time.Kitchen,
		Level:      logLevel,
	}))
	slog.SetDefault(logger)
	switch v {
	case "DEBUG":
		logLevel.Set(slog.LevelDebug)
	case "INFO":
		logLevel.Set(slog.LevelInfo)
	case "WARN":
		logLevel.Set(slog.LevelWarn)
	case "ERROR":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
	}
	slog.SetLogLoggerLevel(slog.LevelDebug)
	slog.Debug("Logging level set to", "level", logLevel.Level())
	return logger
}
