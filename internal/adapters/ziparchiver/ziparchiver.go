// Package ziparchiver provides an archiver adapter using the archive/zip package.
package ziparchiver

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/structuresh/structure/internal/ports"
)

// ZipArchiver implements ports.Archiver using archive/zip.
type ZipArchiver struct{}

// New creates a new ZipArchiver adapter.
func New() *ZipArchiver {
	return &ZipArchiver{}
}

// Create writes entries into a new deflate zip archive at destPath, replacing
// any file already there. Returns the number of files archived.
//
// Any failure aborts the archive; the partially written file is left on disk
// for the caller to remove.
func (a *ZipArchiver) Create(destPath string, entries []ports.ArchiveEntry) (int, error) {
	if err := os.Remove(destPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("removing stale archive: %w", err)
	}

	zipFile, err := os.Create(destPath)
	if err != nil {
		return 0, err
	}

	w := zip.NewWriter(zipFile)
	fileCount := 0

	for _, entry := range entries {
		if err := addFile(w, entry); err != nil {
			_ = w.Close()       // Best effort cleanup on error path
			_ = zipFile.Close() // Best effort cleanup on error path
			return fileCount, fmt.Errorf("adding %s: %w", entry.Name, err)
		}
		fileCount++
	}

	// Close zip writer first to flush data
	if closeErr := w.Close(); closeErr != nil {
		_ = zipFile.Close() // Best effort cleanup on error path
		return 0, fmt.Errorf("closing zip writer: %w", closeErr)
	}

	// Then close the file
	if closeErr := zipFile.Close(); closeErr != nil {
		return 0, fmt.Errorf("closing zip file: %w", closeErr)
	}

	return fileCount, nil
}

// addFile copies one file into the archive under its entry name.
func addFile(w *zip.Writer, entry ports.ArchiveEntry) error {
	info, err := os.Stat(entry.Path)
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = filepath.ToSlash(entry.Name)
	header.Method = zip.Deflate

	writer, err := w.CreateHeader(header)
	if err != nil {
		return err
	}

	file, err := os.Open(entry.Path)
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(writer, file)
	_ = file.Close() // Explicitly ignore close error - data already copied

	return copyErr
}

// MaxEntrySize bounds the uncompressed size of a single extracted file.
const MaxEntrySize = 1 << 30

// Extract unpacks a zip archive into destDir. Entries that are symlinks,
// that resolve outside destDir or that exceed MaxEntrySize abort the
// extraction.
func (a *ZipArchiver) Extract(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	root, err := filepath.Abs(destDir)
	if err != nil {
		return fmt.Errorf("resolving destination path: %w", err)
	}
	root = filepath.Clean(root)

	for _, f := range r.File {
		target := filepath.Join(root, filepath.FromSlash(f.Name))
		switch {
		case f.Mode()&os.ModeSymlink != 0:
			return fmt.Errorf("refusing symlink entry %s", f.Name)
		case !isWithinDir(root, target):
			return fmt.Errorf("entry %s escapes the destination", f.Name)
		case f.UncompressedSize64 > MaxEntrySize:
			return fmt.Errorf("entry %s is %d bytes, limit is %d", f.Name, f.UncompressedSize64, MaxEntrySize)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		if err := writeEntry(f, target); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}
	return nil
}

// writeEntry copies one archived file to target, never writing more than
// the size the entry declares.
func writeEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0644
	}
	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	limit := int64(f.UncompressedSize64)
	n, err := io.Copy(dst, io.LimitReader(src, limit+1))
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	if n > limit {
		return errors.New("entry is larger than its declared size")
	}
	return nil
}

// isWithinDir reports whether target is root or below it. Both must be
// clean absolute paths.
func isWithinDir(root, target string) bool {
	return target == root || strings.HasPrefix(target, root+string(filepath.Separator))
}

// List returns a map of entry names to their info from the archive.
func (a *ZipArchiver) List(zipPath string) (map[string]ports.FileInfo, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	files := make(map[string]ports.FileInfo)
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}

		// Safe conversion: check for overflow before uint64 -> int64
		size := int64(0)
		if f.UncompressedSize64 <= math.MaxInt64 {
			size = int64(f.UncompressedSize64)
		}
		files[f.Name] = ports.FileInfo{
			Size:  size,
			CRC32: f.CRC32,
		}
	}

	return files, nil
}

// Compile-time check that ZipArchiver implements ports.Archiver.
var _ ports.Archiver = (*ZipArchiver)(nil)
