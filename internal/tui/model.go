package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/structuresh/structure/internal/ports"
)

// View represents the current view state
type View int

const (
	AppsView          View = iota
	ConfirmRemoveView // Waiting for y/n on removal
)

// Lifecycle statuses sent to the platform.
const (
	statusReload  = "reload"
	statusStopped = "stopped"
)

// AppItem represents an application in the list
type AppItem struct {
	Name   string
	Status string
	URL    string
}

// Model is the main TUI model
type Model struct {
	service  ports.TUIService
	view     View
	width    int
	height   int
	quitting bool

	apps   []AppItem
	cursor int

	// App awaiting removal confirmation
	pendingRemove string

	// Status message
	statusMsg string
	statusErr bool
}

// Key bindings
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Run     key.Binding
	Stop    key.Binding
	Reload  key.Binding
	Remove  key.Binding
	Refresh key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Run: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "run"),
	),
	Stop: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stop"),
	),
	Reload: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "reload"),
	),
	Remove: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "remove"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "refresh"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "yes"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n", "no"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// NewModel creates a model and loads the app list from svc.
func NewModel(svc ports.TUIService) (*Model, error) {
	m := &Model{
		service: svc,
		view:    AppsView,
	}
	if err := m.loadApps(); err != nil {
		return nil, err
	}
	return m, nil
}

// loadApps refreshes the app list, keeping the cursor in range.
func (m *Model) loadApps() error {
	infos, err := m.service.ListApps()
	if err != nil {
		return err
	}

	m.apps = m.apps[:0]
	for _, info := range infos {
		m.apps = append(m.apps, AppItem{Name: info.Name, Status: info.Status, URL: info.URL})
	}
	sort.Slice(m.apps, func(i, j int) bool { return m.apps[i].Name < m.apps[j].Name })

	if m.cursor >= len(m.apps) {
		m.cursor = len(m.apps) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return nil
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusMsg:
		m.handleStatusMsg(msg)
		return m, nil

	case tea.KeyMsg:
		if m.view == ConfirmRemoveView {
			return m.updateConfirm(msg)
		}

		// Clear status on any key
		m.statusMsg = ""
		m.statusErr = false

		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			m.moveCursor(-1)

		case key.Matches(msg, keys.Down):
			m.moveCursor(1)

		case key.Matches(msg, keys.Run):
			return m, m.setStatus(statusReload, "Running")

		case key.Matches(msg, keys.Stop):
			return m, m.setStatus(statusStopped, "Stopping")

		case key.Matches(msg, keys.Reload):
			return m, m.setStatus(statusReload, "Reloading")

		case key.Matches(msg, keys.Refresh):
			return m, func() tea.Msg { return statusMsg{msg: "Refreshed"} }

		case key.Matches(msg, keys.Remove):
			if app, ok := m.selected(); ok {
				m.pendingRemove = app
				m.view = ConfirmRemoveView
			}
		}
	}

	return m, nil
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Confirm):
		app := m.pendingRemove
		m.pendingRemove = ""
		m.view = AppsView
		return m, m.removeApp(app)

	case key.Matches(msg, keys.Cancel), key.Matches(msg, keys.Quit):
		m.pendingRemove = ""
		m.view = AppsView
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.apps) {
		m.cursor = len(m.apps) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selected() (string, bool) {
	if len(m.apps) == 0 {
		return "", false
	}
	return m.apps[m.cursor].Name, true
}

func (m *Model) setStatus(status, verb string) tea.Cmd {
	app, ok := m.selected()
	if !ok {
		return func() tea.Msg { return statusMsg{err: true, msg: "No app selected"} }
	}
	svc := m.service
	return func() tea.Msg {
		if err := svc.SetStatus(app, status); err != nil {
			return statusMsg{err: true, msg: fmt.Sprintf("%s %s failed: %v", verb, app, err)}
		}
		return statusMsg{msg: fmt.Sprintf("✓ %s %s", verb, app)}
	}
}

func (m *Model) removeApp(app string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		if err := svc.RemoveApp(app); err != nil {
			return statusMsg{err: true, msg: fmt.Sprintf("Removing %s failed: %v", app, err)}
		}
		return statusMsg{msg: fmt.Sprintf("✓ Removed %s", app)}
	}
}

type statusMsg struct {
	msg string
	err bool
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return appStyle.Render(m.renderAppsView())
}

func (m *Model) renderAppsView() string {
	var b strings.Builder

	// Title
	title := titleStyle.Render(" ▲ structure ")
	b.WriteString(title)
	b.WriteString("\n\n")

	if len(m.apps) == 0 {
		b.WriteString(dimStyle.Render("You don't have any apps yet; run `structure deploy` in a project folder to get started."))
		b.WriteString("\n")
	} else {
		header := fmt.Sprintf("  %-28s %-10s %s", "NAME", "STATUS", "URL")
		b.WriteString(dimStyle.Render(header))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(strings.Repeat("─", 70)))
		b.WriteString("\n")
	}

	// List items
	visibleHeight := m.height - 10
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	start := 0
	if m.cursor >= visibleHeight {
		start = m.cursor - visibleHeight + 1
	}

	for i := start; i < len(m.apps) && i < start+visibleHeight; i++ {
		a := m.apps[i]
		cursor := "  "
		style := normalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = selectedStyle
		}

		status := fmt.Sprintf("%-10s", titleCase(a.Status))
		if a.Status == "running" {
			status = successBadge.Render(status)
		} else {
			status = warningBadge.Render(status)
		}

		b.WriteString(style.Render(fmt.Sprintf("%s%-28s ", cursor, truncate(a.Name, 28))))
		b.WriteString(status)
		b.WriteString(" ")
		b.WriteString(dimStyle.Render(a.URL))
		b.WriteString("\n")
	}

	// Pad to fixed height
	for i := len(m.apps); i < visibleHeight; i++ {
		b.WriteString("\n")
	}

	// Status
	b.WriteString("\n")
	switch {
	case m.view == ConfirmRemoveView:
		b.WriteString(errorBadge.Render(fmt.Sprintf("Remove %s? This cannot be undone.", m.pendingRemove)))
	case m.statusMsg != "":
		if m.statusErr {
			b.WriteString(errorBadge.Render(m.statusMsg))
		} else {
			b.WriteString(successBadge.Render(m.statusMsg))
		}
	}
	b.WriteString("\n")

	// Help
	help := "[↑/↓] navigate  [r] run  [s] stop  [R] reload  [x] remove  [g] refresh  [q] quit"
	if m.view == ConfirmRemoveView {
		help = "[y] remove  [n] cancel"
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

// Run starts the TUI
func Run(svc ports.TUIService) error {
	m, err := NewModel(svc)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// Helper functions
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func titleCase(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// handleStatusMsg records the result and reloads apps to reflect changes.
func (m *Model) handleStatusMsg(msg statusMsg) {
	m.statusMsg = msg.msg
	m.statusErr = msg.err
	if err := m.loadApps(); err != nil && !msg.err {
		m.statusMsg = fmt.Sprintf("Refresh failed: %v", err)
		m.statusErr = true
	}
}
