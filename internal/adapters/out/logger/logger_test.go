package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/suchimauz/coaching-slot-picker/internal/core/ports/out"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestConsoleLoggerWritesEventAndModule(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLoggerWithWriter(time.UTC, &buf).
		WithModule("SlotPickerService").
		WithFields(out.LogFields{"pickerId": "p-1"})

	log.Warn("picker.slot.chosen", out.LogFields{"date": "2024-06-10"})

	output := buf.String()
	for _, want := range []string{"[WARN]", "[SlotPickerService]", `"event": "picker.slot.chosen"`, `"pickerId": "p-1"`, `"date": "2024-06-10"`} {
		if !strings.Contains(output, want) {
			t.Errorf("output %q does not contain %q", output, want)
		}
	}
}

func TestConsoleLoggerWithFieldsDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base := NewConsoleLoggerWithWriter(time.UTC, &buf)
	base.WithFields(out.LogFields{"requestId": "r-1"})

	base.Info("app.starting", nil)

	if strings.Contains(buf.String(), "requestId") {
		t.Errorf("fields of derived logger leaked into parent: %s", buf.String())
	}
}

func TestZapLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := WrapZapLogger(zap.New(core)).
		WithModule("BackendAdapter").
		WithFields(out.LogFields{"env": "test"})

	log.Error("backend.calendar.fetch_failed", out.LogFields{"status": 503})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}

	entry := entries[0]
	if entry.Message != "backend.calendar.fetch_failed" || entry.Level != zapcore.ErrorLevel {
		t.Errorf("entry = %s %s", entry.Level, entry.Message)
	}

	fields := entry.ContextMap()
	if fields["module"] != "BackendAdapter" || fields["env"] != "test" {
		t.Errorf("context = %v", fields)
	}
	if status, ok := fields["status"].(int64); !ok || status != 503 {
		t.Errorf("status field = %#v", fields["status"])
	}
}

func TestZapLoggerRespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := WrapZapLogger(zap.New(core))

	log.Debug("cache.months.get.miss", out.LogFields{"month": "2024-06"})
	log.Info("calendar.month.fetched", nil)

	if logs.Len() != 1 {
		t.Errorf("entries = %d, want only info", logs.Len())
	}
}
