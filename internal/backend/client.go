package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/atomicstack/portal-keepalive/internal/logging/events"
)

const (
	DefaultTimeout   = 30 * time.Second
	defaultWaitDelay = 2 * time.Second
)

// Client runs the backend executable once per request.
type Client struct {
	path      string
	timeout   time.Duration
	waitDelay time.Duration
	env       []string
}

type Option func(*Client)

// WithTimeout bounds each invocation. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithEnv replaces the environment handed to the backend.
func WithEnv(env []string) Option {
	return func(c *Client) { c.env = append([]string(nil), env...) }
}

// NewClient returns a client for the executable at path.
func NewClient(path string, opts ...Option) *Client {
	c := &Client{path: path, timeout: DefaultTimeout, waitDelay: defaultWaitDelay}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path reports the executable the client spawns.
func (c *Client) Path() string {
	return c.path
}

// Invoke writes req to a fresh backend process and waits for it to exit.
// It never returns an error: every failure is folded into the Result.
func (c *Client) Invoke(ctx context.Context, req Request) Result {
	start := time.Now()
	events.Backend.Invoke(req.ID, req.Redacted())
	res := c.run(ctx, req)
	res.RequestID = req.ID
	res.Duration = time.Since(start)
	events.Backend.Result(req.ID, res.OK, res.ExitCode, res.Duration, res.Stderr, res.Err)
	return res
}

func (c *Client) run(ctx context.Context, req Request) Result {
	if err := req.Validate(); err != nil {
		return Failed(req, err)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.path)
	cmd.Stdin = bytes.NewReader(req.Bytes())
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = c.waitDelay
	if c.env != nil {
		cmd.Env = c.env
	}

	err := cmd.Run()
	res := Result{
		Output:   normalizeOutput(stdout.Bytes()),
		Stderr:   strings.TrimSpace(stderr.String()),
		ExitCode: -1,
	}
	switch {
	case err == nil:
		res.OK = true
		res.ExitCode = 0
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.Err = fmt.Errorf("%w after %s", ErrTimeout, c.timeout)
	case errors.Is(ctx.Err(), context.Canceled):
		res.Err = ErrCanceled
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else if isUnavailable(err) {
			res.Err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		} else {
			res.Err = fmt.Errorf("run backend: %w", err)
		}
	}
	return res
}

func isUnavailable(err error) bool {
	return errors.Is(err, exec.ErrNotFound) ||
		errors.Is(err, exec.ErrDot) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission)
}
