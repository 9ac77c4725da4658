package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "crossroads.log"

	// maxLogSize rotates the previous log aside before appending
	maxLogSize = 10 << 20
)

// setupLogging builds the process logger. The terminal owns stdout while the
// simulation is drawn, so interactive runs log to a file with -debug and
// nowhere otherwise. Headless runs log to stderr.
// The returned file is nil unless one was opened
func setupLogging(debug, headless bool, level slog.Level, stderr io.Writer) (*slog.Logger, *os.File, error) {
	opts := &slog.HandlerOptions{Level: level}
	if debug {
		opts.Level = slog.LevelDebug
	}

	if headless {
		return slog.New(slog.NewTextHandler(stderr, opts)), nil, nil
	}
	if !debug {
		return slog.New(slog.DiscardHandler), nil, nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	path := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("crossroads-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(path, rotated); err != nil {
			return nil, nil, fmt.Errorf("rotating log file: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), f, nil
}
