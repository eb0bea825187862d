// Package tuisvc provides the real implementation of ports.TUIService.
package tuisvc

import (
	"context"

	"github.com/structuresh/structure/internal/api"
	"github.com/structuresh/structure/internal/ports"
)

// Client is the subset of the API client the dashboard needs.
type Client interface {
	Apps(ctx context.Context) (*api.AppsResponse, error)
	SetStatus(ctx context.Context, app, status string) error
	RemoveApp(ctx context.Context, app string) error
}

// Service implements ports.TUIService on top of the platform API.
type Service struct {
	client Client
	ctx    context.Context
}

// New creates a TUI service. ctx bounds every call made on behalf of the UI.
func New(ctx context.Context, client Client) *Service {
	return &Service{client: client, ctx: ctx}
}

// ListApps returns all applications with their public URLs.
func (s *Service) ListApps() ([]ports.TUIAppInfo, error) {
	resp, err := s.client.Apps(s.ctx)
	if err != nil {
		return nil, err
	}

	apps := make([]ports.TUIAppInfo, 0, len(resp.Apps))
	for name, status := range resp.Apps {
		apps = append(apps, ports.TUIAppInfo{
			Name:   name,
			Status: status,
			URL:    AppURL(name, resp.Username),
		})
	}
	return apps, nil
}

// SetStatus requests a lifecycle transition.
func (s *Service) SetStatus(app, status string) error {
	return s.client.SetStatus(s.ctx, app, status)
}

// RemoveApp removes an application.
func (s *Service) RemoveApp(app string) error {
	return s.client.RemoveApp(s.ctx, app)
}

// AppURL is the public address of an app owned by username.
func AppURL(name, username string) string {
	return "https://" + name + "-" + username + ".structure.sh"
}

// Compile-time check that Service implements ports.TUIService.
var _ ports.TUIService = (*Service)(nil)
