package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setHome points HOME at a temp dir for the duration of the test.
func setHome(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	return tempDir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q, expected %q", cfg.APIURL, DefaultAPIURL)
	}
	if cfg.Timeout() != 20*time.Second {
		t.Errorf("Timeout = %v, expected 20s", cfg.Timeout())
	}
	if cfg.UpdateInterval() != 12*time.Hour {
		t.Errorf("UpdateInterval = %v, expected 12h", cfg.UpdateInterval())
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
}

func TestTimeoutFallback(t *testing.T) {
	cfg := &Config{TimeoutSeconds: -1, UpdateCheckHours: 0}
	if cfg.Timeout() != 20*time.Second {
		t.Errorf("Timeout = %v, expected fallback 20s", cfg.Timeout())
	}
	if cfg.UpdateInterval() != 12*time.Hour {
		t.Errorf("UpdateInterval = %v, expected fallback 12h", cfg.UpdateInterval())
	}
}

func TestLoadMissingConfig(t *testing.T) {
	setHome(t)
	t.Setenv("STRUCTURE_API_URL", "")
	t.Setenv("STRUCTURE_DEBUG", "")

	// Load config - should return defaults when file missing
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed for missing config: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("Expected default API URL, got %q", cfg.APIURL)
	}
}

func TestLoadValidConfig(t *testing.T) {
	home := setHome(t)
	t.Setenv("STRUCTURE_API_URL", "")
	t.Setenv("STRUCTURE_DEBUG", "")

	configDir := filepath.Join(home, ".structure")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	content := "api_url: https://staging.structure.sh\ntimeout_seconds: 5\ndebug: true\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIURL != "https://staging.structure.sh" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("Timeout = %v, expected 5s", cfg.Timeout())
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
	// Unset keys keep their defaults
	if cfg.UpdateCheckHours != 12 {
		t.Errorf("UpdateCheckHours = %d, expected 12", cfg.UpdateCheckHours)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	home := setHome(t)
	configDir := filepath.Join(home, ".structure")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("api_url: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load should fail for invalid YAML")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	setHome(t)
	t.Setenv("STRUCTURE_API_URL", "http://localhost:8080")
	t.Setenv("STRUCTURE_DEBUG", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIURL != "http://localhost:8080" {
		t.Errorf("APIURL = %q, expected env override", cfg.APIURL)
	}
	if !cfg.Debug {
		t.Error("Debug should be enabled by STRUCTURE_DEBUG")
	}
}

func TestSaveAndReload(t *testing.T) {
	setHome(t)
	t.Setenv("STRUCTURE_API_URL", "")
	t.Setenv("STRUCTURE_DEBUG", "")

	cfg := DefaultConfig()
	cfg.TimeoutSeconds = 42
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(ConfigPath()); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.TimeoutSeconds != 42 {
		t.Errorf("TimeoutSeconds = %d, expected 42", loaded.TimeoutSeconds)
	}
}

func TestExpandPath(t *testing.T) {
	home := setHome(t)

	tests := []struct {
		input    string
		expected string
	}{
		{"~/code", filepath.Join(home, "code")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.input); got != tt.expected {
			t.Errorf("ExpandPath(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestLoadAppConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadAppConfig(dir)
	if err != nil {
		t.Fatalf("LoadAppConfig on missing file failed: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config for missing file, got %+v", cfg)
	}

	content := "name: hello-world\ntype: flask\n"
	if err := os.WriteFile(filepath.Join(dir, AppConfigFile), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write structure.yaml: %v", err)
	}

	cfg, err = LoadAppConfig(dir)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Name != "hello-world" || cfg.Type != "flask" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadAppConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, AppConfigFile), []byte("name: [x"), 0644); err != nil {
		t.Fatalf("Failed to write structure.yaml: %v", err)
	}
	if _, err := LoadAppConfig(dir); err == nil {
		t.Error("LoadAppConfig should fail for invalid YAML")
	}
}

func TestDefaultPackaging(t *testing.T) {
	p := DefaultPackaging()

	if p.MaxBytes != 50_000_000 || p.WarnBytes != 10_000_000 {
		t.Errorf("thresholds = %d/%d", p.MaxBytes, p.WarnBytes)
	}
	if p.ArchiveName != "structure_source.zip" {
		t.Errorf("ArchiveName = %q", p.ArchiveName)
	}

	expected := []string{"structure_source.zip", "node_modules", "venv", "*.pyc", ".DS_Store"}
	for _, pattern := range expected {
		found := false
		for _, r := range p.DefaultRules {
			if r == pattern {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected default rule %q not found", pattern)
		}
	}

	if len(p.PruneDirs) != 1 || p.PruneDirs[0] != "node_modules" {
		t.Errorf("PruneDirs = %v", p.PruneDirs)
	}
}
