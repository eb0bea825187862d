package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	debugLogger, err := New(true, "test")
	if err != nil {
		t.Fatalf("New(debug) failed: %v", err)
	}
	if !debugLogger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug logger should enable debug level")
	}

	quiet, err := New(false, "test")
	if err != nil {
		t.Fatalf("New(production) failed: %v", err)
	}
	if quiet.Core().Enabled(zapcore.InfoLevel) {
		t.Error("production logger should not enable info level")
	}
	if !quiet.Core().Enabled(zapcore.WarnLevel) {
		t.Error("production logger should enable warn level")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
	l := Nop()
	if OrNop(l) != l {
		t.Error("OrNop should return the given logger")
	}
}
