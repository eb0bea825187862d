package rules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/structuresh/structure/internal/config"
	"github.com/structuresh/structure/internal/logging"
	"github.com/structuresh/structure/internal/ports"
	"go.uber.org/zap"
)

// WarnFunc receives non-fatal, user-facing warnings.
type WarnFunc func(message string)

// Collector gathers rule sources for a project root.
//
// Reading is best-effort: an absent or unreadable source contributes no
// patterns and is never reported as an error. This also hides permission
// problems on the ignore files, which is accepted.
type Collector struct {
	fs     ports.FileSystem
	cfg    config.Packaging
	logger *zap.Logger
	warn   WarnFunc
}

// NewCollector creates a Collector reading through fs with the given settings.
// warn may be nil.
func NewCollector(fs ports.FileSystem, cfg config.Packaging, logger *zap.Logger, warn WarnFunc) *Collector {
	if warn == nil {
		warn = func(string) {}
	}
	return &Collector{
		fs:     fs,
		cfg:    cfg,
		logger: logging.OrNop(logger),
		warn:   warn,
	}
}

// DefaultRules returns the always-applied exclusion patterns.
func (c *Collector) DefaultRules() RuleSet {
	return New(c.cfg.DefaultRules...)
}

// ReadIgnoreFile returns the patterns of the repository ignore file in root.
func (c *Collector) ReadIgnoreFile(root string) RuleSet {
	return c.readPatterns(filepath.Join(root, c.cfg.IgnoreFile))
}

// ReadIncludeFile returns the patterns of the re-include file in root.
// When the file is absent but a misnamed variant exists, a warning naming
// the expected file is emitted and no patterns are returned.
func (c *Collector) ReadIncludeFile(root string) RuleSet {
	path := filepath.Join(root, c.cfg.IncludeFile)
	if _, err := c.fs.Stat(path); err == nil {
		return c.readPatterns(path)
	}

	for _, name := range c.cfg.MisnamedIncludeFiles {
		if _, err := c.fs.Stat(filepath.Join(root, name)); err == nil {
			c.warn(fmt.Sprintf("Found a file named `%s`. To use it, please name it `%s`", name, c.cfg.IncludeFile))
		}
	}
	return RuleSet{}
}

// Collect reads every source under root and returns the effective RuleSet.
func (c *Collector) Collect(root string) RuleSet {
	defaults := c.DefaultRules()
	ignored := c.ReadIgnoreFile(root)
	included := c.ReadIncludeFile(root)

	effective := Combine(defaults, ignored, included)
	c.logger.Debug("Collected rules",
		zap.String("root", root),
		zap.Int("defaults", defaults.Len()),
		zap.Int("ignored", ignored.Len()),
		zap.Int("included", included.Len()),
		zap.Int("effective", effective.Len()))
	return effective
}

// Combine returns (defaults ∪ ignored) − included.
func Combine(defaults, ignored, included RuleSet) RuleSet {
	return defaults.Union(ignored).Subtract(included)
}

// readPatterns returns the trimmed, non-empty lines of path.
func (c *Collector) readPatterns(path string) RuleSet {
	data, err := c.fs.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.logger.Debug("Ignoring unreadable rules file", zap.String("path", path), zap.Error(err))
		}
		return RuleSet{}
	}
	return New(ParseLines(string(data))...)
}

// ParseLines splits content into whitespace-trimmed, non-empty lines.
func ParseLines(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
