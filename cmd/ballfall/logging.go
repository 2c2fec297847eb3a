package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logDir        = "logs"
	logFileName   = "ballfall.log"
	maxLogSizeMB  = 10
	maxLogSize    = maxLogSizeMB * 1024 * 1024
	maxLogBackups = 5
)

// setupLogging routes the standard logger to logs/ballfall.log when debug is set and discards it otherwise
// A log reaching maxLogSize is rotated to a timestamped name. The returned logger is nil when logging is off
func setupLogging(debug bool) *lumberjack.Logger {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "log dir: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	out := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		LocalTime:  true,
	}
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	// First write opens the file, rotating an oversized one left by a previous run
	log.Printf("logging: %s", logPath)
	return out
}
