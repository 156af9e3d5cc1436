package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestDerivedLoggerEmitsRepeatedly(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: LevelDebug, Output: &buf, Service: "test"})

	derived := base.WithError(errors.New("boom")).WithField("product_id", "prod_1")
	derived.Info("first")
	derived.Info("second")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	for i, entry := range entries {
		if entry.Error != "boom" {
			t.Errorf("entry %d lost error field: %+v", i, entry)
		}
		if entry.Fields["product_id"] != "prod_1" {
			t.Errorf("entry %d lost product_id: %+v", i, entry)
		}
	}
}

func TestPromotedFieldsLeaveGenericMap(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: LevelDebug, Output: &buf, Service: "test"})

	derived := base.WithField("request_id", "req_1").WithField("route", "/admin")
	derived.Info("handled")
	derived.Info("handled again")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	for i, entry := range entries {
		if entry.RequestID != "req_1" {
			t.Errorf("entry %d request_id = %q", i, entry.RequestID)
		}
		if _, ok := entry.Fields["request_id"]; ok {
			t.Errorf("entry %d carries request_id in both places", i)
		}
		if entry.Fields["route"] != "/admin" {
			t.Errorf("entry %d lost route: %+v", i, entry)
		}
	}
}
