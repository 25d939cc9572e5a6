package logging

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFieldConstructors(t *testing.T) {
	cases := []struct {
		name  string
		field Field
		key   string
	}{
		{"string", String("brand", "Nike"), "brand"},
		{"int", Int("count", 3), "count"},
		{"float64", Float64("score", 0.87), "score"},
		{"bool", Bool("degraded", true), "degraded"},
		{"duration", Duration("elapsed", time.Second), "elapsed"},
		{"any", Any("payload", struct{}{}), "payload"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.field.Key != tc.key {
				t.Errorf("key = %q, want %q", tc.field.Key, tc.key)
			}
		})
	}
}

func TestErrField(t *testing.T) {
	if f := Err(nil); f.Value != "<nil>" {
		t.Errorf("Err(nil).Value = %v, want <nil>", f.Value)
	}
	if f := Err(errors.New("boom")); f.Value != "boom" {
		t.Errorf("Err(err).Value = %v, want boom", f.Value)
	}
}

func TestZapLoggerEmitsFields(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	log := NewLoggerFromCore(core)

	log.Info("scored listing", String("brand", "Nike"), Int("score", 72))

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Message != "scored listing" {
		t.Errorf("message = %q", entries[0].Message)
	}
	fields := entries[0].ContextMap()
	if fields["brand"] != "Nike" {
		t.Errorf("brand field = %v", fields["brand"])
	}
}

func TestWithAttachesFields(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	log := NewLoggerFromCore(core).With(String("component", "cache"))

	log.Warn("stale entry served")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["component"] != "cache" {
		t.Error("With() field missing from child logger output")
	}
}

func TestParseLevelDefaults(t *testing.T) {
	if parseLevel("verbose") != zapcore.InfoLevel {
		t.Error("unknown level should default to info")
	}
	if parseLevel("debug") != zapcore.DebugLevel {
		t.Error("debug should parse to DebugLevel")
	}
}

func TestNewLoggerDefaults(t *testing.T) {
	log, err := NewLogger(LogConfig{})
	if err != nil {
		t.Fatalf("NewLogger with empty config: %v", err)
	}
	if log == nil {
		t.Fatal("NewLogger returned nil logger")
	}
}

func TestNopLoggerIsSilentAndChainable(t *testing.T) {
	log := NewNopLogger()
	log.Info("ignored")
	child := log.With(String("k", "v")).Named("sub")
	child.Error("also ignored")
}

func TestDefaultLoggerSwap(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	core, observed := observer.New(zapcore.DebugLevel)
	SetDefault(NewLoggerFromCore(core))
	Default().Info("through default")

	if observed.Len() != 1 {
		t.Errorf("expected 1 observed entry, got %d", observed.Len())
	}

	// nil is rejected, not installed
	SetDefault(nil)
	if Default() == nil {
		t.Error("SetDefault(nil) must not clear the default logger")
	}
}

//Personal.AI order the ending
