package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// setupLogger configures a console logger on stderr
func setupLogger(debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}
