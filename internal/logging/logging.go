// Package logging configures zerolog and bridges it into gin and gorm.
package logging

import (
	"io"
	stdlog "log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/logger"
)

// Setup sets the global zerolog level and output. format is "json" or
// "console"; anything else falls back to console.
func Setup(level, format string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = os.Stderr
	if format != "json" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// Component returns a child of the global logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// GormLogger routes gorm's SQL logging through zerolog.
func GormLogger(level string) logger.Interface {
	gormLevel := logger.Warn
	switch strings.ToLower(level) {
	case "debug", "trace":
		gormLevel = logger.Info
	case "error":
		gormLevel = logger.Error
	}

	sqlLog := Component("gorm")
	return logger.New(
		stdlog.New(sqlLog, "", 0),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
