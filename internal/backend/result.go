package backend

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnavailable means the backend executable could not be started.
	ErrUnavailable = errors.New("backend unavailable")
	// ErrTimeout means the backend was killed after exceeding its deadline.
	ErrTimeout = errors.New("backend timed out")
	// ErrCanceled means the caller abandoned the call.
	ErrCanceled = errors.New("backend call canceled")
	// ErrInvalidArgument means the request could not be framed.
	ErrInvalidArgument = errors.New("invalid backend argument")
	// ErrMissingToken means a successful login printed no token line.
	ErrMissingToken = errors.New("backend output has no session token")
)

// Result is the outcome of one backend invocation. OK mirrors a zero exit
// status; Output is returned either way so failures stay diagnosable.
type Result struct {
	RequestID string
	OK        bool
	Output    string
	Stderr    string
	ExitCode  int
	Err       error
	Duration  time.Duration
}

// Lines splits Output into its lines.
func (r Result) Lines() []string {
	if r.Output == "" {
		return nil
	}
	return strings.Split(r.Output, "\n")
}

// Token returns line index 1 of a login result.
func (r Result) Token() (string, error) {
	lines := r.Lines()
	if len(lines) < 2 {
		return "", ErrMissingToken
	}
	token := strings.TrimSpace(lines[1])
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// Message is the text shown to the user for a failed call.
func (r Result) Message() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	if strings.TrimSpace(r.Output) != "" {
		return r.Output
	}
	if r.Stderr != "" {
		return r.Stderr
	}
	if r.OK {
		return ""
	}
	return fmt.Sprintf("backend exited with status %d", r.ExitCode)
}

// Unavailable reports whether the backend could not be started at all.
func (r Result) Unavailable() bool {
	return errors.Is(r.Err, ErrUnavailable)
}

// Failed builds a failed result for a request that never ran.
func Failed(req Request, err error) Result {
	return Result{RequestID: req.ID, ExitCode: -1, Err: err}
}

func normalizeOutput(raw []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lines := make([]string, 0, 4)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if scanner.Err() != nil {
		return strings.TrimRight(string(raw), "\n")
	}
	return strings.Join(lines, "\n")
}
