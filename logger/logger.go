// Package logger configures the process-wide zerolog logger and its file rotation
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/amirphl/Rentora/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init configures the global logger from cfg and returns the writer it logs to, so the
// HTTP access log can share the same sink.
func Init(cfg config.LoggingConfig, development bool) io.Writer {
	w := Writer(cfg)
	if development || cfg.Console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	log.Logger = New(w, cfg.Level, cfg.EnableCaller)
	return w
}

// New builds a logger writing JSON lines to w at the given level. Unknown levels fall back to info.
func New(w io.Writer, level string, withCaller bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	ctx := zerolog.New(w).Level(lvl).With().Timestamp()
	if withCaller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// Writer returns the sink selected by cfg.Output: stdout, a rotating file, or both
func Writer(cfg config.LoggingConfig) io.Writer {
	switch cfg.Output {
	case "file":
		return rotatingFile(cfg)
	case "both":
		return io.MultiWriter(os.Stdout, rotatingFile(cfg))
	default:
		return os.Stdout
	}
}

func rotatingFile(cfg config.LoggingConfig) io.Writer {
	return &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
