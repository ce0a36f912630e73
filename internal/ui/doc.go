// Package ui contains the Bubble Tea program that drives a captive-portal
// session. Model is the session controller: it is the only writer of the
// session.Session and the screen navigator.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, ticks, backend results, window resizes).
//   - Key presses are translated into navigator keys. The navigator returns
//     effects (login, reconnect, disconnect, credential writes) that the model
//     carries out.
//   - Backend requests run through the internal/ui/command bus as tea.Cmd
//     values. At most one is in flight; its result comes back as a
//     command.ResultMsg and is matched against the pending call by request ID
//     so results of cancelled calls are dropped.
//   - A tick message arrives every tick interval and the keepalive scheduler
//     decides whether a ping is due.
//
// While a call is in flight only exit keys are honoured.
package ui
