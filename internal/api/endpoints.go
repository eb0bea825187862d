package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// UploadField is the multipart field holding the deploy archive.
const UploadField = "src.zip"

// Login exchanges credentials for an API token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{
		"email":    {email},
		"password": {password},
		"client":   {"cli"},
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/login", strings.NewReader(form.Encode()), false)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out struct {
		APIToken string `json:"api_token"`
	}
	if err := c.doJSON(req, &out); err != nil {
		return "", err
	}
	return out.APIToken, nil
}

// CreateApp registers a new application and returns the server's message.
func (c *Client) CreateApp(ctx context.Context, name, language string) (string, error) {
	var out envelope
	err := c.postJSON(ctx, "/cli/createApplication", map[string]string{
		"application_name": name,
		"language":         language,
	}, &out)
	return out.Message, err
}

// DeployResponse is the result of an upload.
type DeployResponse struct {
	Message string `json:"message"`
	// URL is the host the app will be served on, without scheme.
	URL string `json:"url"`
}

// Deploy uploads archive as the new source of app with the given type.
func (c *Client) Deploy(ctx context.Context, app, appType, filename string, archive io.Reader) (*DeployResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(UploadField, filename)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, archive); err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing form: %w", err)
	}

	endpoint := fmt.Sprintf("/cli/%s/deploy/%s", url.PathEscape(app), url.PathEscape(appType))
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, &buf, true)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out DeployResponse
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetStatus requests a lifecycle transition such as "reload" or "stopped".
func (c *Client) SetStatus(ctx context.Context, app, status string) error {
	return c.postJSON(ctx, fmt.Sprintf("/cli/%s/status", url.PathEscape(app)), map[string]string{
		"application_name": app,
		"status":           status,
	}, nil)
}

// RemoveApp deletes an application.
func (c *Client) RemoveApp(ctx context.Context, app string) error {
	return c.postJSON(ctx, "/cli/removeApplication", map[string]string{
		"application_name": app,
	}, nil)
}

// AppsResponse lists the user's applications.
type AppsResponse struct {
	// Apps maps application name to status.
	Apps     map[string]string `json:"apps"`
	Username string            `json:"username"`
}

// Apps returns the user's applications and their statuses.
func (c *Client) Apps(ctx context.Context) (*AppsResponse, error) {
	var out AppsResponse
	if err := c.postJSON(ctx, "/cli/apps", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LogsResponse is one page of application logs.
type LogsResponse struct {
	Logs json.RawMessage `json:"logs"`
	// NextCheck is the cursor for the next poll; nil ends a stream.
	NextCheck *float64 `json:"next_check"`
}

// Text renders Logs as printable text. Both a single string and a list of
// lines are accepted.
func (r *LogsResponse) Text() string {
	if len(r.Logs) == 0 || string(r.Logs) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Logs, &s); err == nil {
		return s
	}
	var lines []string
	if err := json.Unmarshal(r.Logs, &lines); err == nil {
		return strings.Join(lines, "\n")
	}
	return string(r.Logs)
}

// Logs returns log output of app newer than since.
func (c *Client) Logs(ctx context.Context, app string, since float64) (*LogsResponse, error) {
	var out LogsResponse
	err := c.postJSON(ctx, fmt.Sprintf("/cli/%s/logs", url.PathEscape(app)), map[string]float64{
		"since_timestamp": since,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SSHInfo is the address of an application's SSH endpoint.
type SSHInfo struct {
	IP   string `json:"ip"`
	Port any    `json:"port"`
}

// PortString renders Port whether the server sent it as a number or string.
func (s *SSHInfo) PortString() string {
	switch p := s.Port.(type) {
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%d", int64(p))
	default:
		return fmt.Sprint(p)
	}
}

// SSHInfo returns where to connect for a shell in app.
func (c *Client) SSHInfo(ctx context.Context, app string) (*SSHInfo, error) {
	var out SSHInfo
	if err := c.getJSON(ctx, fmt.Sprintf("/cli/%s/ssh", url.PathEscape(app)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddSSHKey authorizes publicKey for SSH access to app.
func (c *Client) AddSSHKey(ctx context.Context, app, publicKey string) (string, error) {
	var out envelope
	err := c.postJSON(ctx, fmt.Sprintf("/cli/%s/ssh", url.PathEscape(app)), map[string]string{
		"public_key": publicKey,
	}, &out)
	return out.Message, err
}

// Pull downloads the deployed source of app as zip bytes.
func (c *Client) Pull(ctx context.Context, app string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/cli/%s/pull", url.PathEscape(app)), nil, true)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/zip")

	status, data, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		var env envelope
		if json.Unmarshal(data, &env) == nil && env.Message != "" {
			return nil, &Error{Status: status, Message: env.Message}
		}
		return nil, &Error{Status: status, Message: RequestFailed}
	}
	return data, nil
}

// LatestVersion returns the newest released CLI version.
func (c *Client) LatestVersion(ctx context.Context) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/cli/version", nil, false)
	if err != nil {
		return "", err
	}
	var out struct {
		Version string `json:"version"`
	}
	if err := c.doJSON(req, &out); err != nil {
		return "", err
	}
	return out.Version, nil
}
