// Package logger is the process-wide console logger. It writes to stderr so
// that stdout only carries command output (--dry-run SSML, --list-voices,
// --stats); --log-filename switches it to a rotated plain-text file.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultLevel applies when --log-level is empty or unknown.
const DefaultLevel = zerolog.InfoLevel

var (
	output  io.Writer = os.Stderr
	logFile *lumberjack.Logger
	logger  zerolog.Logger
)

func init() {
	zerolog.SetGlobalLevel(DefaultLevel)
	initLogger()
}

// Setup applies the --log-level and --log-filename flags. The returned func
// closes the log file and is safe to call when no file was opened.
func Setup(level, filename string) (func(), error) {
	SetLevel(level)
	if filename == "" {
		return func() {}, nil
	}
	if err := SetOutputFile(filename); err != nil {
		return func() {}, err
	}
	return CloseLogFile, nil
}

// SetLevel accepts debug, info, warn or error.
func SetLevel(level string) {
	lvl := DefaultLevel
	switch level {
	case "debug", "info", "warn", "error":
		lvl, _ = zerolog.ParseLevel(level)
	}
	zerolog.SetGlobalLevel(lvl)
}

// CurrentLevel reports the level set by SetLevel.
func CurrentLevel() zerolog.Level {
	return zerolog.GlobalLevel()
}

// SetOutputFile sends log output to filename, rotated at 10 MB with three
// backups kept for four weeks.
func SetOutputFile(filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile = &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
	output = logFile
	initLogger()
	return nil
}

// SetOutput redirects log output to w.
func SetOutput(w io.Writer) {
	output = w
	initLogger()
}

// CloseLogFile returns logging to stderr.
func CloseLogFile() {
	if logFile == nil {
		return
	}
	logFile.Close()
	logFile = nil
	output = os.Stderr
	initLogger()
}

func initLogger() {
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: "15:04:05",
		NoColor:    logFile != nil,
	}).With().Timestamp().Logger()
}

func Debug(msg string) { logger.Debug().Msg(msg) }

func Debugf(format string, v ...interface{}) { logger.Debug().Msgf(format, v...) }

func Info(msg string) { logger.Info().Msg(msg) }

func Infof(format string, v ...interface{}) { logger.Info().Msgf(format, v...) }

func Warn(msg string) { logger.Warn().Msg(msg) }

func Warnf(format string, v ...interface{}) { logger.Warn().Msgf(format, v...) }

// Error logs msg with err attached as the "error" field.
func Error(msg string, err error) { logger.Error().Err(err).Msg(msg) }

func Errorf(format string, err error, v ...interface{}) { logger.Error().Err(err).Msgf(format, v...) }
