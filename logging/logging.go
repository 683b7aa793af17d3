// Package logging configures the zerolog logger shared by every command.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// logFile is relative to the XDG state directory.
const logFile = "nix-tinker/nix-tinker.log"

// Level maps a -v count onto a zerolog level.
func Level(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	}

	return zerolog.TraceLevel
}

// SetupLogger configures the global logger for the given verbosity. Logs
// go to stderr and are appended to a file under the XDG state directory
// when it can be opened.
func SetupLogger(verbosity int) {
	zerolog.SetGlobalLevel(Level(verbosity))

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}}

	path, err := xdg.StateFile(logFile)
	var file *os.File
	if err == nil {
		file, err = openLogFile(path)
	}

	if file != nil {
		writers = append(writers, file)
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("Logging to console only")
	}

	log.Debug().Int("verbosity", verbosity).Str("logFile", path).Msg("Logger initialized")
}

func openLogFile(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

// GetLogger returns a logger tagged with the given component name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
