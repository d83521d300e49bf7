package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerWritesJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info").WithRequestID("req-1").WithError(errors.New("boom"))
	l.Info("trip created", "trip_id", 7)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if entry["request_id"] != "req-1" || entry["error"] != "boom" || entry["msg"] != "trip created" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "error")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info line written at error level: %s", buf.String())
	}
}

func TestContextRoundTrip(t *testing.T) {
	l := Discard()
	ctx := l.WithContext(context.Background())
	if FromContext(ctx) != l {
		t.Fatal("expected logger stored in context")
	}
	if FromContext(context.Background()) == nil {
		t.Fatal("expected default logger")
	}
}
