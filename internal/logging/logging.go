// Package logging wires slog up with the console, per-run log file,
// and optional Graylog sinks, and stamps records with live playback
// context.
package logging

import (
	"fmt"
	"path/filepath"
	"time"
)

// LogFilePath builds the per-run log file path under logsDir, named
// after the app and the run's start time.
func LogFilePath(logsDir, appName string, startedAt time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", appName, startedAt.Format("20060102_150405")),
	)
}
