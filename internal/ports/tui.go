package ports

// TUIAppInfo contains application metadata for display.
type TUIAppInfo struct {
	Name   string
	Status string
	URL    string
}

// TUIService provides operations needed by the TUI.
// This abstraction allows the TUI to be tested without a remote service.
type TUIService interface {
	// ListApps returns all applications owned by the logged-in user.
	ListApps() ([]TUIAppInfo, error)

	// SetStatus requests a lifecycle transition ("reload" or "stopped").
	SetStatus(app, status string) error

	// RemoveApp removes an application.
	RemoveApp(app string) error
}
