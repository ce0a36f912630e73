package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/portal-keepalive/internal/app"
	"github.com/atomicstack/portal-keepalive/internal/backend"
	"github.com/atomicstack/portal-keepalive/internal/credentials"
	"github.com/atomicstack/portal-keepalive/internal/keepalive"
	"github.com/atomicstack/portal-keepalive/internal/logging"
	"github.com/atomicstack/portal-keepalive/internal/ui"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envBackend      = "PORTAL_KEEPALIVE_BACKEND"
	envCredentials  = "PORTAL_KEEPALIVE_CREDENTIALS"
	envPingInterval = "PORTAL_KEEPALIVE_PING_INTERVAL"
	envTick         = "PORTAL_KEEPALIVE_TICK"
	envTimeout      = "PORTAL_KEEPALIVE_TIMEOUT"
	envShowFooter   = "PORTAL_KEEPALIVE_FOOTER"
	envTrace        = "PORTAL_KEEPALIVE_TRACE"
	envLogFile      = "PORTAL_KEEPALIVE_LOG_FILE"
)

// Error reports invalid configuration. The process exits with status 2.
type Error struct {
	Err error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// IsConfigError reports whether err came from configuration parsing.
func IsConfigError(err error) bool {
	var cfgErr *Error
	return errors.As(err, &cfgErr)
}

// Values holds flag destinations bound to a flag set. Environment values are
// the defaults, so explicit flags win.
type Values struct {
	backend      string
	credentials  string
	pingInterval time.Duration
	tick         time.Duration
	timeout      time.Duration
	footer       bool
	trace        bool
	logFile      string
}

// Bind registers the application flags on fs.
func Bind(fs *pflag.FlagSet, environ []string) *Values {
	env := parseEnv(environ)
	v := &Values{}
	fs.StringVar(&v.backend, "backend", envOrDefault(env, envBackend, backend.DefaultName), "backend executable name or path")
	fs.StringVar(&v.credentials, "credentials", envOrDefault(env, envCredentials, ""), "credentials file (default $HOME/.portal-keepalive.toml)")
	fs.DurationVar(&v.pingInterval, "ping-interval", envOrDuration(env, envPingInterval, keepalive.DefaultInterval), "time between keepalive pings")
	fs.DurationVar(&v.tick, "tick", envOrDuration(env, envTick, ui.DefaultTickInterval), "clock tick driving the keepalive check")
	fs.DurationVar(&v.timeout, "timeout", envOrDuration(env, envTimeout, backend.DefaultTimeout), "maximum duration of one backend call")
	fs.BoolVar(&v.footer, "footer", envOrBool(env, envShowFooter, true), "show the key hint footer")
	fs.BoolVar(&v.trace, "trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	fs.StringVar(&v.logFile, "log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	return v
}

// Resolve validates the parsed values and builds a Config.
func (v *Values) Resolve(args []string) (Config, error) {
	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"ping-interval", v.pingInterval},
		{"tick", v.tick},
		{"timeout", v.timeout},
	} {
		if d.value <= 0 {
			return Config{}, &Error{Err: fmt.Errorf("%s must be > 0 (got %s)", d.name, d.value)}
		}
	}
	if strings.TrimSpace(v.backend) == "" {
		return Config{}, &Error{Err: errors.New("backend must not be empty")}
	}
	credPath := v.credentials
	if strings.TrimSpace(credPath) == "" {
		path, err := credentials.DefaultPath()
		if err != nil {
			return Config{}, &Error{Err: err}
		}
		credPath = path
	}
	logFile := v.logFile
	if strings.TrimSpace(logFile) == "" {
		logFile = logging.DefaultPath()
	}

	cfg := Config{
		App: app.Config{
			BackendPath:     v.backend,
			CredentialsPath: credPath,
			PingInterval:    v.pingInterval,
			TickInterval:    v.tick,
			Timeout:         v.timeout,
			ShowFooter:      v.footer,
		},
		Logging: Logging{
			FilePath: logFile,
			Trace:    v.trace,
		},
		Flags: map[string]string{
			"backend":      v.backend,
			"credentials":  credPath,
			"pingInterval": v.pingInterval.String(),
			"tick":         v.tick.String(),
			"timeout":      v.timeout.String(),
			"footer":       strconv.FormatBool(v.footer),
			"trace":        strconv.FormatBool(v.trace),
			"logFile":      logFile,
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("portal-keepalive", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	v := Bind(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, &Error{Err: err}
	}
	return v.Resolve(args)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
