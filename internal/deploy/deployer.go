// Package deploy resolves what to deploy from a project directory, packages
// it and uploads the archive.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/structuresh/structure/internal/api"
	"github.com/structuresh/structure/internal/bundle"
	"github.com/structuresh/structure/internal/config"
	"github.com/structuresh/structure/internal/logging"
	"github.com/structuresh/structure/internal/ports"
	"go.uber.org/zap"
)

var (
	// ErrNoAppName means neither an argument nor structure.yaml named the app.
	ErrNoAppName = errors.New("no application name given")
	// ErrNoNameInConfig means structure.yaml exists but has no name.
	ErrNoNameInConfig = errors.New("no application name in structure.yaml")
	// ErrInvalidName means the application name has disallowed characters.
	ErrInvalidName = errors.New("application names can only include letters, numbers, and dashes")
	// ErrUnknownType means the stack was neither given nor detectable.
	ErrUnknownType = errors.New("application type could not be determined")
	// ErrRestrictedDir means the project directory is a protected location.
	ErrRestrictedDir = errors.New("refusing to deploy a protected folder")
)

// TypeSource says where the application type came from.
type TypeSource int

const (
	// TypeFromFlag means the type was passed with --type.
	TypeFromFlag TypeSource = iota
	// TypeFromConfig means the type came from structure.yaml.
	TypeFromConfig
	// TypeDetected means the type was guessed from marker files.
	TypeDetected
)

// Target is a resolved deployment destination.
type Target struct {
	App        string
	Type       AppType
	TypeSource TypeSource
}

// Uploader sends a packaged archive to the platform.
type Uploader interface {
	Deploy(ctx context.Context, app, appType, filename string, archive io.Reader) (*api.DeployResponse, error)
}

// Hooks receive progress while a deploy runs. Nil hooks are skipped.
type Hooks struct {
	// Resolved is called once the target is known.
	Resolved func(Target)
	// Packaged is called after the archive is written, before upload.
	Packaged func(*bundle.Result)
}

// Outcome is the result of a successful deploy.
type Outcome struct {
	Target   Target
	Package  *bundle.Result
	Response *api.DeployResponse
}

// Deployer runs the deploy flow for a project directory.
type Deployer struct {
	fs       ports.FileSystem
	packager *bundle.Packager
	uploader Uploader
	home     string
	logger   *zap.Logger
	hooks    Hooks
}

// New creates a Deployer. home is the user's home directory used for the
// restricted-folder check.
func New(fs ports.FileSystem, packager *bundle.Packager, uploader Uploader, home string, logger *zap.Logger, hooks Hooks) *Deployer {
	return &Deployer{
		fs:       fs,
		packager: packager,
		uploader: uploader,
		home:     home,
		logger:   logging.OrNop(logger),
		hooks:    hooks,
	}
}

// Resolve determines the app name and type for dir. Explicit arguments take
// precedence over structure.yaml, which takes precedence over detection.
func (d *Deployer) Resolve(dir, app, appType string) (Target, error) {
	appCfg, err := config.LoadAppConfig(dir)
	if err != nil {
		d.logger.Debug("Ignoring unreadable app config", zap.String("dir", dir), zap.Error(err))
		appCfg = nil
	}

	if app == "" {
		switch {
		case appCfg == nil:
			return Target{}, ErrNoAppName
		case appCfg.Name == "":
			return Target{}, ErrNoNameInConfig
		default:
			app = appCfg.Name
		}
	}
	if !ValidName(app) {
		return Target{}, fmt.Errorf("%w: %q", ErrInvalidName, app)
	}

	target := Target{App: app}
	switch {
	case appType != "":
		target.Type, target.TypeSource = AppType(appType), TypeFromFlag
	case appCfg != nil && appCfg.Type != "":
		target.Type, target.TypeSource = AppType(appCfg.Type), TypeFromConfig
	default:
		guess, ok := GuessType(DetectMarkers(d.fs, dir))
		if !ok {
			return Target{}, ErrUnknownType
		}
		target.Type, target.TypeSource = guess, TypeDetected
	}
	return target, nil
}

// Deploy resolves, packages and uploads dir. The archive is removed
// afterwards whatever the outcome.
func (d *Deployer) Deploy(ctx context.Context, dir, app, appType string) (*Outcome, error) {
	target, err := d.Resolve(dir, app, appType)
	if err != nil {
		return nil, err
	}
	if d.hooks.Resolved != nil {
		d.hooks.Resolved(target)
	}

	if IsRestricted(d.fs, dir, d.home) {
		return nil, ErrRestrictedDir
	}

	archivePath := d.packager.ArchivePath(dir)
	defer func() {
		if err := d.packager.Cleanup(archivePath); err != nil {
			d.logger.Warn("Could not remove archive", zap.String("path", archivePath), zap.Error(err))
		}
	}()

	result, err := d.packager.Package(dir)
	if err != nil {
		return nil, err
	}
	if d.hooks.Packaged != nil {
		d.hooks.Packaged(result)
	}

	f, err := d.fs.Open(result.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	resp, err := d.uploader.Deploy(ctx, target.App, string(target.Type), filepath.Base(result.ArchivePath), f)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("Deploy accepted",
		zap.String("app", target.App),
		zap.String("type", string(target.Type)),
		zap.String("sha256", result.SHA256))
	return &Outcome{Target: target, Package: result, Response: resp}, nil
}
