package mocks

import (
	"github.com/structuresh/structure/internal/ports"
)

// MockArchiver implements ports.Archiver for testing.
type MockArchiver struct {
	// CreateCalls records calls to Create
	CreateCalls []CreateCall
	// ExtractCalls records calls to Extract
	ExtractCalls []ExtractCall
	// ListResults maps zip paths to file listings
	ListResults map[string]map[string]ports.FileInfo
	// Errors maps method calls to errors
	Errors map[string]error
}

// CreateCall records parameters of a Create call.
type CreateCall struct {
	DestPath string
	Entries  []ports.ArchiveEntry
}

// ExtractCall records parameters of an Extract call.
type ExtractCall struct {
	ZipPath string
	DestDir string
}

// NewMockArchiver creates a new mock archiver.
func NewMockArchiver() *MockArchiver {
	return &MockArchiver{
		ListResults: make(map[string]map[string]ports.FileInfo),
		Errors:      make(map[string]error),
	}
}

// Create records the call and reports every entry as archived.
// The listing for destPath is updated so List reflects the last Create.
func (m *MockArchiver) Create(destPath string, entries []ports.ArchiveEntry) (int, error) {
	m.CreateCalls = append(m.CreateCalls, CreateCall{
		DestPath: destPath,
		Entries:  entries,
	})
	if err, ok := m.Errors["Create"]; ok {
		return 0, err
	}
	listing := make(map[string]ports.FileInfo, len(entries))
	for _, e := range entries {
		listing[e.Name] = ports.FileInfo{}
	}
	m.ListResults[destPath] = listing
	return len(entries), nil
}

// Extract records the call.
func (m *MockArchiver) Extract(zipPath, destDir string) error {
	m.ExtractCalls = append(m.ExtractCalls, ExtractCall{
		ZipPath: zipPath,
		DestDir: destDir,
	})
	if err, ok := m.Errors["Extract"]; ok {
		return err
	}
	return nil
}

// List returns the configured listing for zipPath.
func (m *MockArchiver) List(zipPath string) (map[string]ports.FileInfo, error) {
	if err, ok := m.Errors["List"]; ok {
		return nil, err
	}
	if result, ok := m.ListResults[zipPath]; ok {
		return result, nil
	}
	return make(map[string]ports.FileInfo), nil
}

// Compile-time check that MockArchiver implements ports.Archiver.
var _ ports.Archiver = (*MockArchiver)(nil)
