package events

import "github.com/atomicstack/portal-keepalive/internal/logging"

type ConnectionTracer struct{}

var Connection = ConnectionTracer{}

func (ConnectionTracer) Transition(op, from, to, lastError string) {
	payload := map[string]interface{}{"op": op, "from": from, "to": to}
	if lastError != "" {
		payload["lastError"] = lastError
	}
	logging.Trace("connection.transition", payload)
}

func (ConnectionTracer) PingDue(username string, sinceLastAttempt string) {
	logging.Trace("connection.ping.due", map[string]interface{}{"username": username, "since": sinceLastAttempt})
}

func (ConnectionTracer) Unavailable(reason string) {
	logging.Trace("connection.unavailable", map[string]interface{}{"reason": reason})
}
