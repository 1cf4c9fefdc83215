// Package logging adapts the teacher's internal/logger package for a
// CLI-only engine: the same zerolog setup (console writer, LOG_LEVEL/
// LOG_FILE env vars, UTC millisecond timestamps) minus the HTTP
// request-ID plumbing nothing here needs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const milliTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Init configures the global zerolog logger. LOG_LEVEL selects the level
// (default "info"); LOG_FILE, if set, additionally appends to that file.
func Init() {
	zerolog.TimeFieldFormat = milliTimeFormat
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }

	const callerWidth = 30
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		path := fmt.Sprintf("%s:%d", filepath.Base(file), line)
		if len(path) >= callerWidth {
			return path[len(path)-callerWidth:]
		}
		return path + strings.Repeat(" ", callerWidth-len(path))
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: milliTimeFormat,
		NoColor:    true,
	}

	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		f, ferr := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if ferr == nil {
			output = io.MultiWriter(output, f)
		}
	}

	log.Logger = log.Output(output).With().Caller().Logger()
}

// Get returns the global logger instance.
func Get() zerolog.Logger {
	return log.Logger
}
