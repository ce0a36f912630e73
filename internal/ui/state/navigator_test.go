package state

import (
	"testing"

	"github.com/atomicstack/portal-keepalive/internal/session"
)

func optionsEqual(got, want []Option) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestHomeOptionsDependOnSavedCredentials(t *testing.T) {
	withSaved := NewNavigator("alice", "pw")
	want := []Option{OptionReuseSaved, OptionEnterCredentials, OptionForgetCredentials, OptionQuit}
	if !optionsEqual(withSaved.Home().Options, want) {
		t.Fatalf("unexpected options %v", withSaved.Home().Options)
	}

	for _, saved := range [][2]string{{"", ""}, {"alice", ""}, {"", "pw"}} {
		n := NewNavigator(saved[0], saved[1])
		if !optionsEqual(n.Home().Options, []Option{OptionEnterCredentials, OptionQuit}) {
			t.Fatalf("saved=%q: unexpected options %v", saved, n.Home().Options)
		}
	}
}

func TestCredentialFlowTriggersSingleLogin(t *testing.T) {
	n := NewNavigator("", "")
	if effects := n.Press(KeyEnter); len(effects) != 0 {
		t.Fatalf("expected no effects entering credentials, got %v", effects)
	}
	if n.Screen() != ScreenCredentials || n.Step() != StepUsername {
		t.Fatalf("expected credentials/username, got %s/%d", n.Screen(), n.Step())
	}
	n.SubmitUsername()
	if n.Step() != StepPassword {
		t.Fatalf("expected password step")
	}
	effects := n.SubmitPassword("alice", "pw")
	if n.Screen() != ScreenStatus {
		t.Fatalf("expected status screen, got %s", n.Screen())
	}
	logins := 0
	saves := 0
	for _, e := range effects {
		switch e.Kind {
		case EffectLogin:
			logins++
			if e.Username != "alice" || e.Password != "pw" {
				t.Fatalf("unexpected login effect %#v", e)
			}
		case EffectSaveCredentials:
			saves++
		}
	}
	if logins != 1 || saves != 1 {
		t.Fatalf("expected one login and one save, got %v", effects)
	}
	if again := n.SubmitPassword("alice", "pw"); again != nil {
		t.Fatalf("expected no effects once on status, got %v", again)
	}
}

func TestReuseSavedLogsIn(t *testing.T) {
	n := NewNavigator("alice", "pw")
	effects := n.Press(KeyEnter)
	if n.Screen() != ScreenStatus {
		t.Fatalf("expected status screen, got %s", n.Screen())
	}
	if len(effects) != 1 || effects[0].Kind != EffectLogin || effects[0].Username != "alice" || effects[0].Password != "pw" {
		t.Fatalf("unexpected effects %v", effects)
	}
}

func TestForgetCredentialsExits(t *testing.T) {
	n := NewNavigator("alice", "pw")
	n.Press(KeyDown)
	n.Press(KeyDown)
	effects := n.Press(KeyEnter)
	if n.Screen() != ScreenExit {
		t.Fatalf("expected exit, got %s", n.Screen())
	}
	if len(effects) != 1 || effects[0].Kind != EffectForgetCredentials {
		t.Fatalf("unexpected effects %v", effects)
	}
}

func TestHomeQuitOptionAndKey(t *testing.T) {
	n := NewNavigator("", "")
	n.Press(KeyLast)
	n.Press(KeyEnter)
	if n.Screen() != ScreenExit {
		t.Fatalf("expected exit via quit option, got %s", n.Screen())
	}

	n = NewNavigator("", "")
	n.Press(KeyQuit)
	if n.Screen() != ScreenExit {
		t.Fatalf("expected exit via quit key, got %s", n.Screen())
	}
}

func TestHomeEnterWithoutSelectionDoesNothing(t *testing.T) {
	n := NewNavigator("", "")
	n.Press(KeyDeselect)
	if effects := n.Press(KeyEnter); effects != nil || n.Screen() != ScreenHome {
		t.Fatalf("expected no transition, got %s %v", n.Screen(), effects)
	}
}

func TestEscapeExitsFromEveryScreen(t *testing.T) {
	setups := map[string]func(*Navigator){
		"home":        func(*Navigator) {},
		"credentials": func(n *Navigator) { n.Press(KeyEnter) },
		"password": func(n *Navigator) {
			n.Press(KeyEnter)
			n.SubmitUsername()
		},
		"status": func(n *Navigator) {
			n.Press(KeyEnter)
			n.SubmitUsername()
			n.SubmitPassword("a", "b")
		},
		"disconnecting": func(n *Navigator) {
			n.Press(KeyEnter)
			n.SubmitUsername()
			n.SubmitPassword("a", "b")
			n.Press(KeyQuit)
		},
	}
	for name, setup := range setups {
		n := NewNavigator("", "")
		setup(n)
		n.Press(KeyEsc)
		if n.Screen() != ScreenExit {
			t.Fatalf("%s: expected exit, got %s", name, n.Screen())
		}
	}
}

func statusNavigator() *Navigator {
	n := NewNavigator("alice", "pw")
	n.Press(KeyEnter)
	return n
}

func TestStatusMenuFollowsConnectionState(t *testing.T) {
	n := statusNavigator()
	cases := []struct {
		state session.State
		want  []Option
	}{
		{session.Connecting, nil},
		{session.Connected, []Option{OptionDisconnect}},
		{session.Disconnected, []Option{OptionReconnect, OptionDisconnect}},
		{session.Uninitialized, []Option{OptionReconnect, OptionDisconnect}},
	}
	for _, tc := range cases {
		n.SyncStatusMenu(tc.state)
		if !optionsEqual(n.Status().Options, tc.want) {
			t.Fatalf("state %s: expected %v, got %v", tc.state, tc.want, n.Status().Options)
		}
	}
}

func TestStatusMenuRecomputeIsIdempotent(t *testing.T) {
	n := statusNavigator()
	if !n.SyncStatusMenu(session.Disconnected) {
		t.Fatalf("expected first sync to rebuild")
	}
	n.Press(KeyDown)
	before := append([]Option(nil), n.Status().Options...)
	if n.SyncStatusMenu(session.Disconnected) {
		t.Fatalf("expected second sync with same state to be a no-op")
	}
	if !optionsEqual(n.Status().Options, before) {
		t.Fatalf("options changed: %v -> %v", before, n.Status().Options)
	}
	if n.Status().Cursor != 1 {
		t.Fatalf("expected highlight preserved at 1, got %d", n.Status().Cursor)
	}
}

func TestStatusReconnectStaysOnStatus(t *testing.T) {
	n := statusNavigator()
	n.SyncStatusMenu(session.Disconnected)
	effects := n.Press(KeyEnter)
	if len(effects) != 1 || effects[0].Kind != EffectReconnect {
		t.Fatalf("expected reconnect effect, got %v", effects)
	}
	if n.Screen() != ScreenStatus {
		t.Fatalf("expected to stay on status, got %s", n.Screen())
	}
}

func TestStatusDisconnect(t *testing.T) {
	n := statusNavigator()
	n.SyncStatusMenu(session.Connected)
	effects := n.Press(KeyEnter)
	if len(effects) != 1 || effects[0].Kind != EffectDisconnect {
		t.Fatalf("expected disconnect effect, got %v", effects)
	}
	if n.Screen() != ScreenDisconnecting {
		t.Fatalf("expected disconnecting, got %s", n.Screen())
	}

	n = statusNavigator()
	n.SyncStatusMenu(session.Connecting)
	effects = n.Press(KeyQuit)
	if len(effects) != 1 || effects[0].Kind != EffectDisconnect || n.Screen() != ScreenDisconnecting {
		t.Fatalf("expected quit to disconnect while connecting, got %s %v", n.Screen(), effects)
	}
}

func TestDisconnectingIgnoresOtherKeys(t *testing.T) {
	n := statusNavigator()
	n.Press(KeyQuit)
	for _, key := range []Key{KeyEnter, KeyUp, KeyDown, KeyOther} {
		if effects := n.Press(key); effects != nil || n.Screen() != ScreenDisconnecting {
			t.Fatalf("key %d: expected to stay disconnecting, got %s %v", key, n.Screen(), effects)
		}
	}
	n.Press(KeyQuit)
	if n.Screen() != ScreenExit {
		t.Fatalf("expected quit to exit, got %s", n.Screen())
	}
}

func TestExitIsTerminal(t *testing.T) {
	n := NewNavigator("alice", "pw")
	n.Exit()
	for _, key := range []Key{KeyEnter, KeyQuit, KeyEsc, KeyDown} {
		if effects := n.Press(key); effects != nil || n.Screen() != ScreenExit {
			t.Fatalf("expected exit to be terminal")
		}
	}
}
