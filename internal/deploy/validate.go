package deploy

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/structuresh/structure/internal/ports"
)

var appNamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+[a-zA-Z0-9-]*[a-zA-Z0-9]$`)

// ValidName reports whether name is an acceptable application name: letters,
// digits and dashes, at least two characters, not starting or ending with a
// dash.
func ValidName(name string) bool {
	return appNamePattern.MatchString(name)
}

// RestrictedDirs returns the directories that must never be deployed as a
// whole: the home directory and its Desktop, Downloads and Documents.
func RestrictedDirs(home string) []string {
	return []string{
		home,
		filepath.Join(home, "Desktop"),
		filepath.Join(home, "Downloads"),
		filepath.Join(home, "Documents"),
	}
}

// IsRestricted reports whether dir is one of the restricted directories
// under home. Paths are compared as files so symlinks and differing
// spellings of the same directory are caught.
func IsRestricted(fs ports.FileSystem, dir, home string) bool {
	if home == "" {
		return false
	}
	dirInfo, dirErr := fs.Stat(dir)
	clean := filepath.Clean(dir)

	for _, r := range RestrictedDirs(home) {
		if filepath.Clean(r) == clean {
			return true
		}
		if dirErr != nil {
			continue
		}
		if info, err := fs.Stat(r); err == nil && os.SameFile(dirInfo, info) {
			return true
		}
	}
	return false
}
