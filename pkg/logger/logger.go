// Package logx configures the process-wide zerolog logger.
package logx

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Debug        bool `split_words:"true" default:"false"`
	PrettyFormat bool `split_words:"true" default:"false"`
}

func Init(conf Config) {
	out := io.Writer(os.Stdout)
	if conf.PrettyFormat {
		out = zerolog.NewConsoleWriter()
	}

	level := zerolog.InfoLevel
	if conf.Debug {
		level = zerolog.DebugLevel
	}

	log.Logger = zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Caller().
		Stack().
		Logger()
}
