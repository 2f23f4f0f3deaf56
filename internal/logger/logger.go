package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/lshigami/examlens/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init configures the global zerolog logger. It is safe to call before the
// config is loaded; Configure refines it afterwards.
func Init() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// Configure applies level and output settings. Release mode logs JSON to
// stdout; a configured file is written through a rotating lumberjack writer.
func Configure(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var console io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if cfg.Server.Mode == "release" {
		console = os.Stdout
	}

	writers := []io.Writer{console}
	if cfg.Log.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		})
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().Timestamp().Caller().Logger()
	log.Debug().Str("level", level.String()).Str("file", cfg.Log.File).Msg("Logger configured")
}
