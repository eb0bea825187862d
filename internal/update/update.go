// Package update decides when to look for a newer CLI release and records
// when it last did.
package update

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/structuresh/structure/internal/logging"
	"github.com/structuresh/structure/internal/ports"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// StateFile is the name of the check-time file in the home directory.
const StateFile = ".structure-config.yaml"

// State is the persisted update-check state.
type State struct {
	// LastChecked is unix seconds of the last check.
	LastChecked int64 `yaml:"last_checked"`
}

// VersionSource reports the newest released version.
type VersionSource interface {
	LatestVersion(ctx context.Context) (string, error)
}

// DefaultStatePath returns ~/.structure-config.yaml.
func DefaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return StateFile
	}
	return filepath.Join(home, StateFile)
}

// Checker runs at most one version check per interval.
type Checker struct {
	fs       ports.FileSystem
	path     string
	interval time.Duration
	source   VersionSource
	logger   *zap.Logger
	now      func() time.Time
}

// NewChecker creates a Checker persisting its state at path.
func NewChecker(fs ports.FileSystem, path string, interval time.Duration, source VersionSource, logger *zap.Logger) *Checker {
	return &Checker{
		fs:       fs,
		path:     path,
		interval: interval,
		source:   source,
		logger:   logging.OrNop(logger),
		now:      time.Now,
	}
}

// Due reports whether the interval has passed since the last check. A missing
// state file is created with a zero time, which makes the first run due.
func (c *Checker) Due() bool {
	state, err := c.load()
	if errors.Is(err, os.ErrNotExist) {
		if err := c.save(State{}); err != nil {
			c.logger.Debug("Could not create update state", zap.String("path", c.path), zap.Error(err))
			return false
		}
		state, err = &State{}, nil
	}
	if err != nil {
		c.logger.Debug("Could not read update state", zap.String("path", c.path), zap.Error(err))
		return false
	}

	last := time.Unix(state.LastChecked, 0)
	return c.now().Sub(last) > c.interval
}

// Check fetches the latest version when a check is due and returns a notice
// when it differs from current. Failures produce no notice.
func (c *Checker) Check(ctx context.Context, current string) string {
	if current == "" || current == "dev" || !c.Due() {
		return ""
	}

	latest, err := c.source.LatestVersion(ctx)
	if err != nil {
		c.logger.Debug("Version check failed", zap.Error(err))
		return ""
	}

	if err := c.save(State{LastChecked: c.now().Unix()}); err != nil {
		c.logger.Debug("Could not record update check", zap.Error(err))
	}

	if latest == "" || latest == current {
		return ""
	}
	return fmt.Sprintf("A new version of structure is available: %s (you have %s).", latest, current)
}

func (c *Checker) load() (*State, error) {
	data, err := c.fs.ReadFile(c.path)
	if err != nil {
		return nil, err
	}
	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", c.path, err)
	}
	return &state, nil
}

func (c *Checker) save(state State) error {
	data, err := yaml.Marshal(&state)
	if err != nil {
		return err
	}
	return c.fs.WriteFile(c.path, data, 0644)
}
