package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTraceWritesJSONLinesWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trace.log")
	Configure(path)
	SetTraceEnabled(true)
	t.Cleanup(func() {
		SetTraceEnabled(false)
		Configure("")
	})

	Trace("backend.invoke", map[string]interface{}{"op": "ping"})

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open trace log: %v", err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		t.Fatalf("expected one trace entry")
	}
	var entry struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry.Event != "backend.invoke" {
		t.Fatalf("expected event backend.invoke, got %q", entry.Event)
	}
	if entry.Payload["op"] != "ping" {
		t.Fatalf("expected op ping, got %v", entry.Payload["op"])
	}
}

func TestTraceDisabledWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	Configure(path)
	SetTraceEnabled(false)
	t.Cleanup(func() { Configure("") })

	Trace("ignored", nil)

	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no log file, stat err = %v", err)
	}
}

func TestErrorAppendsMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	Configure(path)
	t.Cleanup(func() { Configure("") })

	Error(errors.New("backend unavailable"))
	Error(nil)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 1 {
		t.Fatalf("expected one line, got %d: %q", got, data)
	}
	if !strings.Contains(string(data), "backend unavailable") {
		t.Fatalf("expected message in log, got %q", data)
	}
}

func TestRedact(t *testing.T) {
	if Redact("") != "" {
		t.Fatalf("empty secret should stay empty")
	}
	if got := Redact("hunter2"); got == "hunter2" || got == "" {
		t.Fatalf("expected masked value, got %q", got)
	}
}
