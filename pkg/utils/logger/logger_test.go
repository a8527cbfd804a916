package logger_test

import (
	"context"
	"path/filepath"
	"testing"

	"wan/pkg/utils/contextkey"
	"wan/pkg/utils/logger"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerRejectsBadConfig(t *testing.T) {
	if _, err := logger.NewLogger(logger.Config{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := logger.NewLogger(logger.Config{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wan.log")
	l, err := logger.NewLogger(logger.Config{Level: "debug", Format: "json", OutputPath: path})
	if err != nil {
		t.Fatalf("new logger failed: %v", err)
	}
	_ = l.Sync()
}

func TestContextFieldsAttached(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger.ReplaceGlobal(zap.New(core))
	t.Cleanup(func() { logger.ReplaceGlobal(zap.NewNop()) })

	ctx := context.WithValue(context.Background(), contextkey.InvocationID, "inv-1")
	ctx = context.WithValue(ctx, contextkey.Command, "compile")
	logger.Debug(ctx, "request sent", zap.String("path", "/api/compile.json"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["invocation_id"] != "inv-1" {
		t.Errorf("invocation_id = %v", fields["invocation_id"])
	}
	if fields["command"] != "compile" {
		t.Errorf("command = %v", fields["command"])
	}
	if fields["path"] != "/api/compile.json" {
		t.Errorf("path = %v", fields["path"])
	}
}
