package logger

import (
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logger. Helpers are no-ops while it is nil.
var Logger *log.Logger

// Config holds logger configuration.
type Config struct {
	Debug bool
	// File, when set, receives a rotated copy of every line.
	File string
}

// Init initializes the global logger.
func Init(cfg Config) error {
	var writer io.Writer = os.Stderr
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return err
		}
		writer = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "habitbot",
	})
	return nil
}

// Standard adapts the global logger for libraries that expect a *log.Logger.
func Standard() *stdlog.Logger {
	if Logger == nil {
		return stdlog.New(io.Discard, "", 0)
	}
	return Logger.StandardLog(log.StandardLogOptions{ForceLevel: log.WarnLevel})
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
