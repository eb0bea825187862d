package mocks

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/structuresh/structure/internal/ports"
)

func TestMockFileSystem(t *testing.T) {
	mockFS := NewMockFileSystem()

	// Test WriteFile and ReadFile
	mockFS.WriteFile("/test/file.txt", []byte("hello"), 0644)
	content, err := mockFS.ReadFile("/test/file.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(content) != "hello" {
		t.Errorf("content = %q, expected %q", string(content), "hello")
	}

	// Test Stat after WriteFile
	info, err := mockFS.Stat("/test/file.txt")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() != 5 {
		t.Errorf("size = %d, expected 5", info.Size())
	}

	// Test ReadFile for non-existent file
	_, err = mockFS.ReadFile("/nonexistent")
	if err == nil {
		t.Error("ReadFile should fail for non-existent file")
	}

	// Test error injection
	mockFS.Errors["/error/path"] = errors.New("injected error")
	_, err = mockFS.ReadFile("/error/path")
	if err == nil || err.Error() != "injected error" {
		t.Errorf("Expected injected error, got: %v", err)
	}
}

func TestMockFileSystemOpen(t *testing.T) {
	mockFS := NewMockFileSystem()
	mockFS.AddFile("/p/a.txt", []byte("abc"))

	f, err := mockFS.Open("/p/a.txt")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "abc" {
		t.Errorf("content = %q, expected %q", string(data), "abc")
	}
}

func TestMockFileSystemRemove(t *testing.T) {
	mockFS := NewMockFileSystem()
	mockFS.AddFile("/p/a.zip", []byte("zip"))

	if err := mockFS.Remove("/p/a.zip"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := mockFS.Stat("/p/a.zip"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Stat after Remove = %v, expected ErrNotExist", err)
	}
	if err := mockFS.Remove("/p/a.zip"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("second Remove = %v, expected ErrNotExist", err)
	}
	if len(mockFS.Removed) != 2 {
		t.Errorf("Removed = %d, expected 2", len(mockFS.Removed))
	}
}

func TestMockFileSystemWalk(t *testing.T) {
	mockFS := NewMockFileSystem()
	mockFS.AddDir("/project")
	mockFS.AddFile("/project/file1.txt", []byte("1"))
	mockFS.AddDir("/project/skip")
	mockFS.AddFile("/project/skip/hidden.txt", []byte("h"))
	mockFS.AddFile("/project/file2.txt", []byte("2"))
	mockFS.AddFile("/projectx/outside.txt", []byte("x"))

	var visited []string
	err := mockFS.Walk("/project", func(path string, info os.FileInfo, err error) error {
		visited = append(visited, path)
		if info.IsDir() && info.Name() == "skip" {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	expected := []string{"/project", "/project/file1.txt", "/project/skip", "/project/file2.txt"}
	if len(visited) != len(expected) {
		t.Fatalf("Walk visited %v, expected %v", visited, expected)
	}
	for i := range expected {
		if visited[i] != expected[i] {
			t.Errorf("visited[%d] = %q, expected %q", i, visited[i], expected[i])
		}
	}
}

func TestMockArchiver(t *testing.T) {
	archiver := NewMockArchiver()
	entries := []ports.ArchiveEntry{
		{Path: "/src/app.py", Name: "app.py"},
		{Path: "/src/lib/x.py", Name: "lib/x.py"},
	}

	count, err := archiver.Create("/src/out.zip", entries)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Create returned %d, expected 2", count)
	}
	if len(archiver.CreateCalls) != 1 {
		t.Errorf("CreateCalls = %d, expected 1", len(archiver.CreateCalls))
	}

	files, err := archiver.List("/src/out.zip")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if _, ok := files["lib/x.py"]; !ok {
		t.Error("List should reflect the last Create")
	}

	if err := archiver.Extract("/src/out.zip", "/dest"); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(archiver.ExtractCalls) != 1 {
		t.Errorf("ExtractCalls = %d, expected 1", len(archiver.ExtractCalls))
	}

	// Test error injection
	archiver.Errors["Create"] = errors.New("disk full")
	_, err = archiver.Create("/another.zip", nil)
	if err == nil || err.Error() != "disk full" {
		t.Errorf("Expected 'disk full' error, got: %v", err)
	}
}

func TestMockTokenStore(t *testing.T) {
	store := NewMockTokenStore()

	if _, err := store.Get(); !errors.Is(err, ports.ErrTokenNotFound) {
		t.Errorf("Get on empty store = %v, expected ErrTokenNotFound", err)
	}
	if err := store.Set("abc"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if tok, _ := store.Get(); tok != "abc" {
		t.Errorf("Get = %q, expected %q", tok, "abc")
	}
	if err := store.Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if store.Token != "" {
		t.Error("Delete should clear the token")
	}
}

func TestMockShell(t *testing.T) {
	sh := NewMockShell()
	if err := sh.Run("ssh", "app@1.2.3.4", "-p", "2222"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(sh.Calls) != 1 || sh.Calls[0][0] != "ssh" || sh.Calls[0][3] != "2222" {
		t.Errorf("Calls = %v", sh.Calls)
	}
}

func TestMockTUIService(t *testing.T) {
	svc := NewMockTUIService()
	svc.Apps = []ports.TUIAppInfo{{Name: "a"}, {Name: "b"}}

	if err := svc.RemoveApp("a"); err != nil {
		t.Fatalf("RemoveApp failed: %v", err)
	}
	apps, _ := svc.ListApps()
	if len(apps) != 1 || apps[0].Name != "b" {
		t.Errorf("apps after remove = %v", apps)
	}

	svc.StatusErrors["b"] = errors.New("busy")
	if err := svc.SetStatus("b", "stopped"); err == nil {
		t.Error("SetStatus should return injected error")
	}
	if len(svc.SetStatusCalls) != 1 || svc.SetStatusCalls[0].Status != "stopped" {
		t.Errorf("SetStatusCalls = %v", svc.SetStatusCalls)
	}
}
