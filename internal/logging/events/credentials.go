package events

import "github.com/atomicstack/portal-keepalive/internal/logging"

type CredentialsTracer struct{}

var Credentials = CredentialsTracer{}

func (CredentialsTracer) Load(path string, hasSaved, stale bool) {
	logging.Trace("credentials.load", map[string]interface{}{"path": path, "saved": hasSaved, "stale": stale})
}

func (CredentialsTracer) Save(path, username string) {
	logging.Trace("credentials.save", map[string]interface{}{"path": path, "username": username})
}

func (CredentialsTracer) Forget(path string) {
	logging.Trace("credentials.forget", map[string]interface{}{"path": path})
}
