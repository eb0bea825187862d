package deploy

import (
	"path/filepath"
	"strings"

	"github.com/structuresh/structure/internal/ports"
)

// AppType identifies the runtime stack an application is deployed on.
type AppType string

const (
	Flask   AppType = "flask"
	Express AppType = "express"
	Docker  AppType = "docker"
	Static  AppType = "static"
)

// Marker files that identify a stack.
const (
	FlaskMarker  = "app.py"
	NodeMarker   = "package.json"
	DockerMarker = "Dockerfile"
	StaticMarker = "index.html"
)

// DisplayName is the user-facing label of t.
func (t AppType) DisplayName() string {
	if t == Express {
		return "Node"
	}
	s := string(t)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// GuessType infers the stack from the marker filenames present in a project.
// A static site is only assumed when no other marker exists. With several
// non-static markers the guess is docker when a Dockerfile is among them and
// there is no guess otherwise.
func GuessType(markers []string) (AppType, bool) {
	present := make(map[string]bool, len(markers))
	for _, m := range markers {
		present[m] = true
	}

	var candidates []AppType
	if present[FlaskMarker] {
		candidates = append(candidates, Flask)
	}
	if present[NodeMarker] {
		candidates = append(candidates, Express)
	}
	if present[DockerMarker] {
		candidates = append(candidates, Docker)
	}

	switch len(candidates) {
	case 0:
		if present[StaticMarker] {
			return Static, true
		}
		return "", false
	case 1:
		return candidates[0], true
	default:
		if present[DockerMarker] {
			return Docker, true
		}
		return "", false
	}
}

// DetectMarkers returns the marker files that exist as regular files in dir.
func DetectMarkers(fs ports.FileSystem, dir string) []string {
	var found []string
	for _, name := range []string{FlaskMarker, NodeMarker, DockerMarker, StaticMarker} {
		info, err := fs.Stat(filepath.Join(dir, name))
		if err != nil || info.IsDir() {
			continue
		}
		found = append(found, name)
	}
	return found
}
