// Package bundle turns a project directory into the zip archive uploaded on
// deploy: it collects rules, selects files, enforces the size policy and
// writes the archive.
package bundle

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/structuresh/structure/internal/config"
	"github.com/structuresh/structure/internal/logging"
	"github.com/structuresh/structure/internal/ports"
	"github.com/structuresh/structure/internal/rules"
	"github.com/structuresh/structure/internal/selector"
	"go.uber.org/zap"
)

// Result describes a written archive.
type Result struct {
	ArchivePath string
	Files       []selector.FileCandidate
	FileCount   int
	Size        SizeReport
	// Warning is the size advisory, empty when none applies.
	Warning string
	// SHA256 of the archive, empty when it could not be computed.
	SHA256 string
}

// Packager runs the packaging pipeline for a project root.
type Packager struct {
	fs       ports.FileSystem
	archiver ports.Archiver
	cfg      config.Packaging
	logger   *zap.Logger
	warn     rules.WarnFunc
}

// NewPackager creates a Packager. warn receives non-fatal rule warnings and
// may be nil.
func NewPackager(fs ports.FileSystem, archiver ports.Archiver, cfg config.Packaging, logger *zap.Logger, warn rules.WarnFunc) *Packager {
	return &Packager{
		fs:       fs,
		archiver: archiver,
		cfg:      cfg,
		logger:   logging.OrNop(logger),
		warn:     warn,
	}
}

// ArchivePath returns where the archive for root is written.
func (p *Packager) ArchivePath(root string) string {
	return filepath.Join(root, p.cfg.ArchiveName)
}

// Policy returns the size policy of the configured thresholds.
func (p *Packager) Policy() Policy {
	return Policy{MaxBytes: p.cfg.MaxBytes, WarnBytes: p.cfg.WarnBytes}
}

// Select runs rule collection and file selection without writing anything.
func (p *Packager) Select(root string) ([]selector.FileCandidate, error) {
	rs := rules.NewCollector(p.fs, p.cfg, p.logger, p.warn).Collect(root)
	return selector.New(p.fs, p.cfg.PruneDirs, p.logger).Select(root, rs)
}

// Package removes any stale archive, selects files under root, checks the
// size policy and writes the archive. On a size rejection no archive exists
// afterwards. The written archive is read back to confirm it holds every
// selected file. On a write failure the partial archive is left for Cleanup.
func (p *Packager) Package(root string) (*Result, error) {
	archivePath := p.ArchivePath(root)
	if err := p.remove(archivePath); err != nil {
		return nil, fmt.Errorf("removing stale archive: %w", err)
	}

	files, err := p.Select(root)
	if err != nil {
		return nil, fmt.Errorf("selecting files: %w", err)
	}

	size := TotalSize(p.fs, files)
	warning, err := p.Policy().Check(size)
	if err != nil {
		return nil, err
	}

	count, err := p.Create(files, archivePath)
	if err != nil {
		return nil, err
	}
	if err := p.Verify(archivePath, files); err != nil {
		return nil, err
	}

	result := &Result{
		ArchivePath: archivePath,
		Files:       files,
		FileCount:   count,
		Size:        size,
		Warning:     warning,
	}

	checksum, err := p.checksum(archivePath)
	if err != nil {
		p.logger.Debug("Could not checksum archive", zap.String("path", archivePath), zap.Error(err))
	} else {
		result.SHA256 = checksum
	}

	p.logger.Debug("Archive written",
		zap.String("path", archivePath),
		zap.Int("files", count),
		zap.Int64("bytes", size.Bytes),
		zap.String("sha256", result.SHA256))
	return result, nil
}

// Create writes files into a fresh archive at outputPath.
func (p *Packager) Create(files []selector.FileCandidate, outputPath string) (int, error) {
	entries := make([]ports.ArchiveEntry, len(files))
	for i, f := range files {
		entries[i] = ports.ArchiveEntry{Path: f.Path, Name: f.Name}
	}

	count, err := p.archiver.Create(outputPath, entries)
	if err != nil {
		return count, &ArchiveWriteError{Path: outputPath, Err: err}
	}
	return count, nil
}

// Cleanup removes the archive at path. A missing archive is not an error.
func (p *Packager) Cleanup(path string) error {
	return p.remove(path)
}

func (p *Packager) remove(path string) error {
	if err := p.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// checksum returns the hex SHA-256 of the file at path.
func (p *Packager) checksum(path string) (string, error) {
	f, err := p.fs.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
