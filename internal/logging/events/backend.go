package events

import (
	"time"

	"github.com/atomicstack/portal-keepalive/internal/logging"
)

type BackendTracer struct{}

var Backend = BackendTracer{}

func (BackendTracer) Resolve(path, resolved string, err error) {
	payload := map[string]interface{}{"path": path, "resolved": resolved}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("backend.resolve", payload)
}

// Invoke records a request about to be written to the backend. args must
// already be redacted.
func (BackendTracer) Invoke(id string, args []string) {
	logging.Trace("backend.invoke", map[string]interface{}{"id": id, "args": args})
}

func (BackendTracer) Result(id string, ok bool, exitCode int, elapsed time.Duration, stderr string, err error) {
	payload := map[string]interface{}{
		"id":       id,
		"ok":       ok,
		"exitCode": exitCode,
		"elapsed":  elapsed.String(),
	}
	if stderr != "" {
		payload["stderr"] = stderr
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("backend.result", payload)
}
