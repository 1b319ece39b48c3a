package log

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestNewNop_Discards(t *testing.T) {
	l := NewNop()
	// Must not panic or write anywhere.
	l.Debug("ignored", map[string]any{"k": "v"})
	l.Info("ignored", nil)
	l.Warn("ignored", nil)
	l.Error("ignored", nil)
	if err := l.Sync(); err != nil {
		t.Errorf("Sync failed: %v", err)
	}
}

func TestNewFileLogger_WritesJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.jsonl")

	l, err := NewFileLogger(path, "gpt-5", "low")
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	l.Info("stream event", map[string]any{"kind": "text_delta", "bytes": 17})
	l.Error("artifact write failed", map[string]any{"name": "last-output.md"})
	if err := l.Sync(); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer func() { _ = f.Close() }()

	var records []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("line %d not JSON: %v", len(records)+1, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan log: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}

	first := records[0]
	if first["message"] != "stream event" {
		t.Errorf("message = %v, want %q", first["message"], "stream event")
	}
	if first["level"] != "info" {
		t.Errorf("level = %v, want %q", first["level"], "info")
	}
	if first["model"] != "gpt-5" {
		t.Errorf("model = %v, want %q", first["model"], "gpt-5")
	}
	if first["verbosity"] != "low" {
		t.Errorf("verbosity = %v, want %q", first["verbosity"], "low")
	}
	if _, ok := first["timestamp"]; !ok {
		t.Error("record missing timestamp")
	}

	if records[1]["level"] != "error" {
		t.Errorf("second level = %v, want %q", records[1]["level"], "error")
	}
}

func TestNewFileLogger_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.jsonl")

	for i := 0; i < 2; i++ {
		l, err := NewFileLogger(path, "gpt-5", "low")
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		l.Info("run", nil)
		if err := l.Sync(); err != nil {
			t.Fatalf("Sync failed: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer func() { _ = f.Close() }()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	if count != 2 {
		t.Errorf("lines = %d, want 2 (got %q)", count, data)
	}
}

func TestNewFileLogger_BadPath(t *testing.T) {
	_, err := NewFileLogger(filepath.Join(t.TempDir(), "missing-dir", "debug.jsonl"), "gpt-5", "low")
	if err == nil {
		t.Fatal("NewFileLogger succeeded, want error")
	}
}
