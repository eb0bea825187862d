package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/structuresh/structure/internal/mocks"
	"github.com/structuresh/structure/internal/ports"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(t *testing.T, apps ...ports.TUIAppInfo) (*Model, *mocks.MockTUIService) {
	t.Helper()
	svc := mocks.NewMockTUIService()
	svc.Apps = apps
	m, err := NewModel(svc)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	return m, svc
}

// press sends k and feeds any resulting command's message back into the model.
func press(m *Model, k tea.KeyMsg) *Model {
	updated, cmd := m.Update(k)
	m = updated.(*Model)
	if cmd != nil {
		if msg := cmd(); msg != nil {
			updated, _ = m.Update(msg)
			m = updated.(*Model)
		}
	}
	return m
}

func TestNewModelSortsApps(t *testing.T) {
	m, svc := newTestModel(t,
		ports.TUIAppInfo{Name: "zeta", Status: "running"},
		ports.TUIAppInfo{Name: "alpha", Status: "stopped"},
	)

	if len(m.apps) != 2 {
		t.Fatalf("apps = %d, expected 2", len(m.apps))
	}
	if m.apps[0].Name != "alpha" {
		t.Errorf("apps[0] = %q, expected %q", m.apps[0].Name, "alpha")
	}
	if m.view != AppsView {
		t.Errorf("view = %v, expected AppsView", m.view)
	}
	if svc.ListAppsCalls != 1 {
		t.Errorf("ListAppsCalls = %d, expected 1", svc.ListAppsCalls)
	}
}

func TestNewModelListError(t *testing.T) {
	svc := mocks.NewMockTUIService()
	svc.AppsError = errors.New("offline")

	if _, err := NewModel(svc); err == nil {
		t.Error("NewModel should fail when apps cannot be listed")
	}
}

func TestModelNavigation(t *testing.T) {
	m, _ := newTestModel(t,
		ports.TUIAppInfo{Name: "a"},
		ports.TUIAppInfo{Name: "b"},
		ports.TUIAppInfo{Name: "c"},
	)

	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Errorf("cursor = %d, expected 1", m.cursor)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Errorf("cursor = %d, expected 2 (at boundary)", m.cursor)
	}

	m = press(m, runeKey('k'))
	if m.cursor != 1 {
		t.Errorf("cursor = %d, expected 1", m.cursor)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected 0 (at boundary)", m.cursor)
	}
}

func TestLifecycleKeys(t *testing.T) {
	tests := []struct {
		key    rune
		status string
		verb   string
	}{
		{'r', "reload", "Running"},
		{'s', "stopped", "Stopping"},
		{'R', "reload", "Reloading"},
	}

	for _, tt := range tests {
		m, svc := newTestModel(t, ports.TUIAppInfo{Name: "web", Status: "running"})

		m = press(m, runeKey(tt.key))

		if len(svc.SetStatusCalls) != 1 {
			t.Fatalf("key %q: SetStatusCalls = %d, expected 1", tt.key, len(svc.SetStatusCalls))
		}
		call := svc.SetStatusCalls[0]
		if call.App != "web" || call.Status != tt.status {
			t.Errorf("key %q: call = %+v, expected web/%s", tt.key, call, tt.status)
		}
		if m.statusErr || !strings.Contains(m.statusMsg, tt.verb) {
			t.Errorf("key %q: status = %q (err=%v)", tt.key, m.statusMsg, m.statusErr)
		}
		if svc.ListAppsCalls != 2 {
			t.Errorf("key %q: apps should be reloaded after an action", tt.key)
		}
	}
}

func TestLifecycleError(t *testing.T) {
	m, svc := newTestModel(t, ports.TUIAppInfo{Name: "web"})
	svc.StatusErrors["web"] = errors.New("busy")

	m = press(m, runeKey('s'))

	if !m.statusErr {
		t.Error("statusErr should be set")
	}
	if !strings.Contains(m.statusMsg, "busy") {
		t.Errorf("statusMsg = %q, expected to mention the error", m.statusMsg)
	}
}

func TestLifecycleWithoutApps(t *testing.T) {
	m, svc := newTestModel(t)

	m = press(m, runeKey('r'))

	if len(svc.SetStatusCalls) != 0 {
		t.Errorf("SetStatusCalls = %d, expected 0", len(svc.SetStatusCalls))
	}
	if m.statusMsg != "No app selected" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestRemoveConfirm(t *testing.T) {
	m, svc := newTestModel(t, ports.TUIAppInfo{Name: "a"}, ports.TUIAppInfo{Name: "b"})
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})

	m = press(m, runeKey('x'))
	if m.view != ConfirmRemoveView {
		t.Fatalf("view = %v, expected ConfirmRemoveView", m.view)
	}
	if !strings.Contains(m.View(), "Remove b?") {
		t.Error("confirmation prompt should name the app")
	}

	m = press(m, runeKey('y'))
	if m.view != AppsView {
		t.Errorf("view = %v, expected AppsView", m.view)
	}
	if len(svc.RemoveCalls) != 1 || svc.RemoveCalls[0] != "b" {
		t.Errorf("RemoveCalls = %v, expected [b]", svc.RemoveCalls)
	}
	if len(m.apps) != 1 || m.cursor != 0 {
		t.Errorf("apps = %v cursor = %d after removal", m.apps, m.cursor)
	}
}

func TestRemoveCancel(t *testing.T) {
	m, svc := newTestModel(t, ports.TUIAppInfo{Name: "a"})

	m = press(m, runeKey('x'))
	m = press(m, runeKey('n'))

	if m.view != AppsView {
		t.Errorf("view = %v, expected AppsView", m.view)
	}
	if len(svc.RemoveCalls) != 0 {
		t.Errorf("RemoveCalls = %v, expected none", svc.RemoveCalls)
	}
}

func TestViewRendersApps(t *testing.T) {
	m, _ := newTestModel(t,
		ports.TUIAppInfo{Name: "web", Status: "running", URL: "https://web-me.structure.sh"},
	)
	m.width, m.height = 100, 30

	out := m.View()
	for _, want := range []string{"structure", "NAME", "web", "Running", "https://web-me.structure.sh", "[q] quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestViewEmpty(t *testing.T) {
	m, _ := newTestModel(t)
	if !strings.Contains(m.View(), "You don't have any apps yet") {
		t.Error("empty view should explain how to deploy")
	}
}

func TestQuitClearsView(t *testing.T) {
	m, _ := newTestModel(t, ports.TUIAppInfo{Name: "a"})

	updated, cmd := m.Update(runeKey('q'))
	m = updated.(*Model)
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestWindowSize(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	m = updated.(*Model)
	if m.width != 100 || m.height != 50 {
		t.Errorf("size = %dx%d, expected 100x50", m.width, m.height)
	}
}

func TestWithTeatest(t *testing.T) {
	m, _ := newTestModel(t,
		ports.TUIAppInfo{Name: "app-alpha", Status: "running"},
		ports.TUIAppInfo{Name: "app-beta", Status: "stopped"},
	)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	tm.Send(tea.KeyMsg{Type: tea.KeyDown})
	tm.Send(runeKey('q'))

	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))

	final := tm.FinalModel(t).(*Model)
	if final.cursor != 1 {
		t.Errorf("cursor = %d, expected 1", final.cursor)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		max      int
		expected string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 6, "hello…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.max); got != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q", tt.input, tt.max, got, tt.expected)
		}
	}
}

func TestTitleCase(t *testing.T) {
	if got := titleCase("running"); got != "Running" {
		t.Errorf("titleCase = %q, expected %q", got, "Running")
	}
	if got := titleCase(""); got != "-" {
		t.Errorf("titleCase(\"\") = %q, expected %q", got, "-")
	}
}
