package events

import "github.com/atomicstack/portal-keepalive/internal/logging"

type UITracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Command = CommandTracer{}
)

func (UITracer) Screen(from, to string) {
	logging.Trace("ui.screen", map[string]interface{}{"from": from, "to": to})
}

func (UITracer) MenuEnter(menuID, option string) {
	logging.Trace("menu.enter", map[string]interface{}{"menu": menuID, "option": option})
}

func (UITracer) MenuCursor(menuID string, cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"menu": menuID, "cursor": cursor})
}

func (UITracer) KeyIgnored(key, reason string) {
	logging.Trace("ui.key.ignored", map[string]interface{}{"key": key, "reason": reason})
}

func (UITracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("ui.error", map[string]interface{}{"error": err.Error()})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Cancel(id, label string) {
	logging.Trace("command.cancel", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Stale(id, pending string) {
	logging.Trace("command.stale", map[string]interface{}{"id": id, "pending": pending})
}

func (CommandTracer) Result(id, label string, ok bool) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "ok": ok})
}
