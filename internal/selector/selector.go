// Package selector walks a project tree and returns the files a RuleSet
// leaves in the deployment bundle.
package selector

import (
	"os"
	"path/filepath"

	"github.com/structuresh/structure/internal/logging"
	"github.com/structuresh/structure/internal/ports"
	"github.com/structuresh/structure/internal/rules"
	"go.uber.org/zap"
)

// FileCandidate is a file chosen for archiving.
type FileCandidate struct {
	// Path is the absolute filesystem path.
	Path string
	// Name is the project-relative, slash-separated archive name.
	Name string
}

// Selector filters a project tree through an effective RuleSet.
type Selector struct {
	fs        ports.FileSystem
	pruneDirs map[string]struct{}
	logger    *zap.Logger
}

// New creates a Selector. Directories whose base name is in pruneDirs are
// never entered.
func New(fs ports.FileSystem, pruneDirs []string, logger *zap.Logger) *Selector {
	prune := make(map[string]struct{}, len(pruneDirs))
	for _, d := range pruneDirs {
		prune[d] = struct{}{}
	}
	return &Selector{
		fs:        fs,
		pruneDirs: prune,
		logger:    logging.OrNop(logger),
	}
}

// Select returns the regular files under root not excluded by rs, in walk
// order. Links to regular files are selected under the link's name; linked
// directories are not entered. Entries that cannot be read are logged and
// skipped.
func (s *Selector) Select(root string, rs rules.RuleSet) ([]FileCandidate, error) {
	matcher, err := rules.Compile(rs, s.logger)
	if err != nil {
		return nil, err
	}

	var files []FileCandidate
	err = s.fs.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			s.logger.Debug("Skipping unreadable entry", zap.String("path", path), zap.Error(walkErr))
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info == nil {
			return nil
		}

		if info.IsDir() {
			if path == root {
				return nil
			}
			if _, ok := s.pruneDirs[info.Name()]; ok {
				s.logger.Debug("Pruned directory", zap.String("path", path))
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 {
			target, err := s.fs.Stat(path)
			if err != nil {
				s.logger.Debug("Skipping dangling link", zap.String("path", path), zap.Error(err))
				return nil
			}
			if !target.Mode().IsRegular() {
				return nil
			}
		} else if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			s.logger.Debug("Skipping entry outside root", zap.String("path", path), zap.Error(err))
			return nil
		}
		name := filepath.ToSlash(rel)

		if matcher.Excluded(name) {
			return nil
		}

		files = append(files, FileCandidate{Path: path, Name: name})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Selected files", zap.String("root", root), zap.Int("count", len(files)))
	return files, nil
}
