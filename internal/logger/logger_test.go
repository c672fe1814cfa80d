package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewSelectsLevelByEnvironment(t *testing.T) {
	prod, err := New("production")
	if err != nil {
		t.Fatalf("production logger: %v", err)
	}
	if prod.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("production logger should not emit debug")
	}
	dev := Must("development")
	if !dev.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("development logger should emit debug")
	}
}
