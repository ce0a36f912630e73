package backend

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/atomicstack/portal-keepalive/internal/logging/events"
)

// DefaultName is the backend executable looked up when none is configured.
const DefaultName = "portal-backend"

// Resolve locates the backend executable. Bare names are searched on PATH
// and then next to the running binary; paths are checked as given.
func Resolve(path string) (string, error) {
	resolved, err := resolve(path)
	events.Backend.Resolve(path, resolved, err)
	return resolved, err
}

func resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("%w: no backend configured", ErrUnavailable)
	}
	if strings.ContainsRune(path, os.PathSeparator) {
		if err := checkExecutable(path); err != nil {
			return "", err
		}
		return path, nil
	}
	if found, err := exec.LookPath(path); err == nil {
		return found, nil
	}
	if exe, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(exe), path)
		if checkExecutable(sibling) == nil {
			return sibling, nil
		}
	}
	return "", fmt.Errorf("%w: %s not found on PATH", ErrUnavailable, path)
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrUnavailable, path)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%w: %s is not executable", ErrUnavailable, path)
	}
	return nil
}
