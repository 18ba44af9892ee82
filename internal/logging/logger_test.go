package logging

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "test.log")

	logger, err := New(logPath, "debug")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Info("hello")
	logger.Sync()

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Fatal("Log file was not created")
	}
}

func TestNewLoggerUnknownLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	// Unknown levels fall back to info
	logger, err := New(logPath, "shouty")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Expected debug to be disabled at fallback level")
	}
}
