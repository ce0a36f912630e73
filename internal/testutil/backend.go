package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// RequireShell aborts the calling test when /bin/sh scripts cannot run.
func RequireShell(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("skipping: sh not available")
	}
	return path
}

// FakeBackend is a throwaway backend script that records its stdin.
type FakeBackend struct {
	Path      string
	StdinPath string
}

// WriteBackendScript writes a backend that consumes stdin, prints stdout
// verbatim and exits with exitCode.
func WriteBackendScript(t *testing.T, stdout string, exitCode int) FakeBackend {
	t.Helper()
	body := fmt.Sprintf("printf '%%s' %s\nexit %d\n", shellQuote(stdout), exitCode)
	return WriteBackendScriptBody(t, body)
}

// WriteBackendScriptBody writes a backend whose behaviour after stdin has
// been recorded is the given shell body.
func WriteBackendScriptBody(t *testing.T, body string) FakeBackend {
	t.Helper()
	RequireShell(t)
	dir := t.TempDir()
	fake := FakeBackend{
		Path:      filepath.Join(dir, "portal-backend"),
		StdinPath: filepath.Join(dir, "stdin"),
	}
	script := "#!/bin/sh\ncat > " + shellQuote(fake.StdinPath) + "\n" + body
	if err := os.WriteFile(fake.Path, []byte(script), 0o755); err != nil {
		t.Fatalf("write backend script: %v", err)
	}
	return fake
}

// Stdin returns what the backend read from its input stream.
func (f FakeBackend) Stdin(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(f.StdinPath)
	if err != nil {
		t.Fatalf("read recorded stdin: %v", err)
	}
	return string(data)
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
