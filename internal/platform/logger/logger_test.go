package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithAddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &Logger{SugaredLogger: zap.New(core).Sugar()}

	log.With("component", "store").Info("ready", "tables", 7)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "store" || fields["tables"] != int64(7) {
		t.Fatalf("fields = %v", fields)
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"development", "production", "PROD", ""} {
		log, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		log.Debug("mode selected", "mode", mode)
	}
}
