package logger

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("debug message")
	Info("info message", "user", "u1")
	Warn("warning message")
	Error("error message")

	if child := With("user", "u1"); child == nil {
		t.Error("With() returned nil after Init")
	}
	if Output() == io.Discard {
		t.Error("Output() still discards after Init")
	}
}

func TestInitConsoleMode(t *testing.T) {
	if err := Init(Config{Console: true, ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Failed to initialize logger in console mode: %v", err)
	}
	if Logger.GetLevel().String() != "info" {
		t.Errorf("console level = %s, want info", Logger.GetLevel())
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	Debug("debug message")
	Info("info message")
	Warn("warning message")
	Error("error message")

	if With("k", "v") != nil {
		t.Error("With() should return nil when Logger is nil")
	}
}
