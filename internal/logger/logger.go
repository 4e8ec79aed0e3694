// Package logger настраивает глобальный zerolog-логгер.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// Init направляет логи в stderr: stdout занят результатом команд.
func Init(level, environment string) {
	InitWithWriter(os.Stderr, level, environment)
}

func InitWithWriter(w io.Writer, level, environment string) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w}).With().Caller().Logger()

	lvl := ParseLevel(level, environment)
	zerolog.SetGlobalLevel(lvl)
	log.Debug().Str("level", lvl.String()).Str("environment", environment).Msg("logger initialized")
}

// ParseLevel выбирает уровень: dev и test включают всё, иначе LOG_LEVEL.
func ParseLevel(level, environment string) zerolog.Level {
	switch strings.ToLower(environment) {
	case "dev", "test":
		return zerolog.TraceLevel
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
