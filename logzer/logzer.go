// Package logzer configures the zerolog output for memthol tools.
package logzer

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type config struct {
	colors     bool
	level      zerolog.Level
	timeFormat string
	logfile    *LogFile
}

// Option defines writer option
type Option func(*config)

// WithColors defines console colors
func WithColors(colors bool) Option {
	return func(c *config) {
		c.colors = colors
	}
}

// WithLevel defines global log level
func WithLevel(level zerolog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithTimeFormat defines timestamp format
func WithTimeFormat(format string) Option {
	return func(c *config) {
		c.timeFormat = format
	}
}

// WithLogFile defines file output in addition to stdout
func WithLogFile(f *LogFile) Option {
	return func(c *config) {
		c.logfile = f
	}
}

// NewLoggerWriter applies options and returns writer for zerolog.New
func NewLoggerWriter(opts ...Option) io.Writer {
	c := config{level: zerolog.InfoLevel}
	for _, optFn := range opts {
		optFn(&c)
	}
	zerolog.SetGlobalLevel(c.level)

	var w io.Writer = os.Stdout
	if c.colors {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: c.timeFormat}
	}
	if c.logfile != nil {
		w = zerolog.MultiLevelWriter(w, c.logfile)
	}
	return w
}
