package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/portal-keepalive/internal/app"
	"github.com/atomicstack/portal-keepalive/internal/config"
	"github.com/atomicstack/portal-keepalive/internal/logging"
	"github.com/atomicstack/portal-keepalive/internal/logging/events"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	root := newRootCmd(os.Environ())
	if err := root.Execute(); err != nil {
		if config.IsConfigError(err) {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(2)
		}
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(environ []string) *cobra.Command {
	var checkLogin bool
	root := &cobra.Command{
		Use:           "portal-keepalive",
		Short:         "Log in to a captive portal and keep the session alive",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
	}
	values := config.Bind(root.PersistentFlags(), environ)
	setup := func(args []string) (config.Config, error) {
		cfg, err := values.Resolve(args)
		if err != nil {
			return config.Config{}, err
		}
		logging.Configure(cfg.Logging.FilePath)
		logging.SetTraceEnabled(cfg.Logging.Trace)
		traceStartup(cfg)
		return cfg, nil
	}
	root.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := setup(os.Args[1:])
		if err != nil {
			return err
		}
		err = app.Run(cfg.App)
		events.App.Exit("program", err)
		return err
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &config.Error{Err: err}
	})

	forget := &cobra.Command{
		Use:   "forget",
		Short: "Clear the saved credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(os.Args[1:])
			if err != nil {
				return err
			}
			return app.Forget(cfg.App, cmd.OutOrStdout())
		},
	}
	check := &cobra.Command{
		Use:   "check",
		Short: "Resolve the backend and report where it lives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(os.Args[1:])
			if err != nil {
				return err
			}
			return app.Check(cmd.Context(), cfg.App, cmd.OutOrStdout(), checkLogin)
		},
	}
	check.Flags().BoolVar(&checkLogin, "login", false, "also log in with the saved credentials and log out again")
	root.AddCommand(forget, check)
	return root
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging. Only the
// credentials path is recorded, never its contents.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
