package logger

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetLogger_NopBeforeInit(t *testing.T) {
	SetLogger(nil)
	if GetLogger() == nil {
		t.Fatal("expected no-op logger before init")
	}
	// must not panic
	Warn(context.Background(), "warn before init")
}

func TestInitAndContextLogging(t *testing.T) {
	once = sync.Once{}
	Init("development")
	if GetLogger() == nil {
		t.Fatal("expected logger initialized")
	}

	ctx := context.WithValue(context.Background(), "request_id", "req-1")
	Info(ctx, "info")
	Debug(ctx, "debug")
	Warn(ctx, "warn")
	Error(ctx, "error")
	LogRequest(ctx, "GET", "/health", 200, 10*time.Millisecond, "127.0.0.1")
	LogRequest(ctx, "GET", "/health", 503, 10*time.Millisecond, "127.0.0.1")
	Sync()
}

func TestInit_Production(t *testing.T) {
	SetLogger(nil)
	once = sync.Once{}
	Init("production")
	if GetLogger() == nil {
		t.Fatal("expected production logger")
	}
}

func TestWithContext_AttachesRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	Info(context.WithValue(context.Background(), RequestIDKey, "typed-req-id"), "typed")
	Info(context.WithValue(context.Background(), "request_id", "gin-req-id"), "gin")
	Info(nil, "no context") //nolint:staticcheck

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["request_id"]; got != "typed-req-id" {
		t.Fatalf("unexpected typed request id: %v", got)
	}
	if got := entries[1].ContextMap()["request_id"]; got != "gin-req-id" {
		t.Fatalf("unexpected gin request id: %v", got)
	}
	if _, ok := entries[2].ContextMap()["request_id"]; ok {
		t.Fatal("expected no request id without context")
	}
}
