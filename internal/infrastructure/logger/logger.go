package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"supportchat/internal/config"
)

// New constructs the service logger from level and format configuration.
// Unknown levels fall back to info rather than failing startup.
func New(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var log zerolog.Logger
	switch cfg.LogFormat {
	case "json":
		log = zerolog.New(os.Stdout).With().Timestamp().Logger()
	default:
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		log = zerolog.New(consoleWriter).With().Timestamp().Logger()
	}

	return log.Level(level).With().Str("service", cfg.ServiceName).Logger()
}
