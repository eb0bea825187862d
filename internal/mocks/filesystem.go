// Package mocks provides mock implementations for testing.
package mocks

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/structuresh/structure/internal/ports"
)

// MockFileSystem implements ports.FileSystem for testing.
type MockFileSystem struct {
	// Files maps paths to file contents for ReadFile/WriteFile
	Files map[string][]byte
	// Stats maps paths to FileInfo for Stat
	Stats map[string]os.FileInfo
	// Errors maps paths to errors (for simulating failures)
	Errors map[string]error
	// WalkEntries contains entries to return during Walk, in walk order
	WalkEntries []WalkEntry
	// Removed records paths passed to Remove
	Removed []string
}

// WalkEntry represents a file or directory entry for Walk testing.
type WalkEntry struct {
	Path string
	Info os.FileInfo
	Err  error
}

// NewMockFileSystem creates a new mock filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files:  make(map[string][]byte),
		Stats:  make(map[string]os.FileInfo),
		Errors: make(map[string]error),
	}
}

// AddFile registers a regular file with content and adds it to the walk order.
func (m *MockFileSystem) AddFile(path string, content []byte) {
	m.Files[path] = content
	info := &mockFileInfo{name: filepath.Base(path), size: int64(len(content)), mode: 0644}
	m.Stats[path] = info
	m.WalkEntries = append(m.WalkEntries, WalkEntry{Path: path, Info: info})
}

// AddDir registers a directory and adds it to the walk order.
func (m *MockFileSystem) AddDir(path string) {
	info := &mockFileInfo{name: filepath.Base(path), isDir: true, mode: os.ModeDir | 0755}
	m.Stats[path] = info
	m.WalkEntries = append(m.WalkEntries, WalkEntry{Path: path, Info: info})
}

// Stat returns file info for the named file.
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	if info, ok := m.Stats[name]; ok {
		return info, nil
	}
	// Check if we have file content (implies file exists)
	if _, ok := m.Files[name]; ok {
		return &mockFileInfo{name: filepath.Base(name), size: int64(len(m.Files[name]))}, nil
	}
	return nil, os.ErrNotExist
}

// WriteFile writes data to the named file, creating it if necessary.
func (m *MockFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	if err, ok := m.Errors[name]; ok {
		return err
	}
	m.Files[name] = data
	return nil
}

// ReadFile reads the named file and returns the contents.
func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	if content, ok := m.Files[name]; ok {
		return content, nil
	}
	return nil, os.ErrNotExist
}

// Remove removes the named file or empty directory.
func (m *MockFileSystem) Remove(name string) error {
	m.Removed = append(m.Removed, name)
	if err, ok := m.Errors[name]; ok {
		return err
	}
	_, hasFile := m.Files[name]
	_, hasStat := m.Stats[name]
	if !hasFile && !hasStat {
		return os.ErrNotExist
	}
	delete(m.Files, name)
	delete(m.Stats, name)
	return nil
}

// Open opens the named file for reading.
func (m *MockFileSystem) Open(name string) (fs.File, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	if _, ok := m.Files[name]; !ok {
		return nil, os.ErrNotExist
	}
	return &mockFile{name: name, content: m.Files[name]}, nil
}

// Walk replays WalkEntries under root in order, honouring SkipDir and SkipAll.
func (m *MockFileSystem) Walk(root string, fn ports.WalkFunc) error {
	var skipped []string
	for _, entry := range m.WalkEntries {
		if entry.Path != root && !strings.HasPrefix(entry.Path, root+"/") {
			continue
		}
		if underAny(entry.Path, skipped) {
			continue
		}
		if err := fn(entry.Path, entry.Info, entry.Err); err != nil {
			if errors.Is(err, filepath.SkipAll) {
				return nil
			}
			if errors.Is(err, filepath.SkipDir) {
				if entry.Info != nil && entry.Info.IsDir() {
					skipped = append(skipped, entry.Path)
				}
				continue
			}
			return err
		}
	}
	return nil
}

func underAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// mockFileInfo implements os.FileInfo for testing.
type mockFileInfo struct {
	name    string
	size    int64
	mode    os.FileMode
	modTime time.Time
	isDir   bool
}

func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return fi.size }
func (fi *mockFileInfo) Mode() os.FileMode  { return fi.mode }
func (fi *mockFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *mockFileInfo) IsDir() bool        { return fi.isDir }
func (fi *mockFileInfo) Sys() interface{}   { return nil }

// mockFile implements fs.File for testing.
type mockFile struct {
	name    string
	content []byte
	offset  int
}

func (f *mockFile) Stat() (fs.FileInfo, error) {
	return &mockFileInfo{name: f.name, size: int64(len(f.content))}, nil
}

func (f *mockFile) Read(p []byte) (int, error) {
	if f.offset >= len(f.content) {
		return 0, io.EOF
	}
	n := copy(p, f.content[f.offset:])
	f.offset += n
	return n, nil
}

func (f *mockFile) Close() error { return nil }

// Compile-time check that MockFileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*MockFileSystem)(nil)
