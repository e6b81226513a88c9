package obs

import (
	"context"
	"errors"
	"logistics-backoffice/internal/platform/logger"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &logger.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestTimeLogsSuccessAtDebug(t *testing.T) {
	log, logs := observed()
	ctx := WithRequestID(context.Background(), "req-1")

	var err error
	Time(ctx, log, "shipments.List")(&err)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Level != zapcore.DebugLevel {
		t.Fatalf("level = %v, want debug", e.Level)
	}
	fields := e.ContextMap()
	if fields["op"] != "shipments.List" || fields["req_id"] != "req-1" {
		t.Fatalf("fields = %v", fields)
	}
}

func TestTimeLogsFailureAtWarn(t *testing.T) {
	log, logs := observed()

	err := errors.New("boom")
	Time(context.Background(), log, "dashboard.Compute")(&err)

	entries := logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(entries) != 1 {
		t.Fatalf("got %d warn entries, want 1", len(entries))
	}
}

func TestTimeToleratesNilLogger(t *testing.T) {
	var err error
	Time(context.Background(), nil, "noop")(&err)
}

func TestRequestIDMissing(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("RequestID = %q, want empty", got)
	}
}
