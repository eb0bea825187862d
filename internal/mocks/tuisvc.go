package mocks

import (
	"github.com/structuresh/structure/internal/ports"
)

// MockTUIService implements ports.TUIService for testing.
type MockTUIService struct {
	// Apps is the list of apps to return
	Apps []ports.TUIAppInfo
	// AppsError is the error to return from ListApps
	AppsError error

	// StatusErrors maps app names to SetStatus errors
	StatusErrors map[string]error
	// RemoveErrors maps app names to RemoveApp errors
	RemoveErrors map[string]error

	// Call tracking
	ListAppsCalls  int
	SetStatusCalls []StatusCall
	RemoveCalls    []string
}

// StatusCall records parameters of a SetStatus call.
type StatusCall struct {
	App    string
	Status string
}

// NewMockTUIService creates a new mock TUI service.
func NewMockTUIService() *MockTUIService {
	return &MockTUIService{
		StatusErrors: make(map[string]error),
		RemoveErrors: make(map[string]error),
	}
}

// ListApps returns the configured apps.
func (m *MockTUIService) ListApps() ([]ports.TUIAppInfo, error) {
	m.ListAppsCalls++
	if m.AppsError != nil {
		return nil, m.AppsError
	}
	return m.Apps, nil
}

// SetStatus records the call and returns the configured error.
func (m *MockTUIService) SetStatus(app, status string) error {
	m.SetStatusCalls = append(m.SetStatusCalls, StatusCall{App: app, Status: status})
	return m.StatusErrors[app]
}

// RemoveApp records the call and returns the configured error.
func (m *MockTUIService) RemoveApp(app string) error {
	m.RemoveCalls = append(m.RemoveCalls, app)
	if err := m.RemoveErrors[app]; err != nil {
		return err
	}
	kept := m.Apps[:0]
	for _, a := range m.Apps {
		if a.Name != app {
			kept = append(kept, a)
		}
	}
	m.Apps = kept
	return nil
}

// Compile-time check that MockTUIService implements ports.TUIService.
var _ ports.TUIService = (*MockTUIService)(nil)
