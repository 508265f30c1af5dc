// Package logger configures the process-wide zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Output formats
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// File holds the rolling log file settings.
type File struct {
	Enabled    bool
	Path       string
	Name       string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// Config holds the logger settings.
type Config struct {
	Level        string // trace, debug, info, warn, error
	Format       string // json or console
	ReportCaller bool
	ServiceName  string
	File         File

	// Out overrides stdout for the console writer. Used by tests.
	Out io.Writer
}

var (
	// ErrServiceNameIsEmpty is returned if Config.ServiceName was not defined.
	ErrServiceNameIsEmpty = errors.New("logger service name can not be empty")
	// ErrUnknownFormat is returned for a format other than json or console.
	ErrUnknownFormat = errors.New("logger format must be json or console")
)

// Init the global zerolog logger.
// Console output is always enabled; the rolling file is added when configured.
func Init(cfg Config) error {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return errors.Wrap(err, fmt.Sprintf("log level %s is not supported", cfg.Level))
		}
		level = parsed
	}

	if cfg.ServiceName == "" {
		return ErrServiceNameIsEmpty
	}

	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatConsole {
		return ErrUnknownFormat
	}

	// print stacks of pkg/errors values at trace level
	stack := level == zerolog.TraceLevel
	if stack {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
	}

	zerolog.SetGlobalLevel(level)

	writers := []io.Writer{newConsoleWriter(cfg, format)}
	if cfg.File.Enabled {
		fw, err := newRollingFile(cfg.File)
		if err != nil {
			return err
		}
		writers = append(writers, fw)
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Hook(NewPrometheusHook(cfg.ServiceName)).
		With().
		Timestamp().
		Str("service", cfg.ServiceName)

	if stack {
		ctx = ctx.Stack()
	}
	if cfg.ReportCaller {
		ctx = ctx.Caller()
	}

	log.Logger = ctx.Logger()
	zerolog.DefaultContextLogger = &log.Logger

	return nil
}

func newConsoleWriter(cfg Config, format string) io.Writer {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	if format == FormatConsole {
		return zerolog.ConsoleWriter{Out: out, TimeFormat: zerolog.TimeFieldFormat}
	}

	return out
}

// newRollingFile uses lumberjack to create a size-rotated log file.
func newRollingFile(cfg File) (io.Writer, error) {
	if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
		return nil, errors.Wrapf(err, "can't create log directory %s", cfg.Path)
	}

	name := cfg.Name
	if name == "" {
		name = "preferences.log"
	}

	return &lumberjack.Logger{
		Filename:   path.Join(cfg.Path, name),
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxAge,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  false,
		Compress:   false,
	}, nil
}
