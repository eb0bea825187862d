package config

// Packaging holds the settings of the deploy packaging pipeline.
// It is passed explicitly to the rule collector, selector and archiver so
// tests can substitute their own rule lists and thresholds.
type Packaging struct {
	// DefaultRules are always-applied exclusion patterns.
	DefaultRules []string
	// IgnoreFile is the repository ignore file read from the project root.
	IgnoreFile string
	// IncludeFile lists patterns to remove from the exclusion set.
	IncludeFile string
	// MisnamedIncludeFiles trigger a warning when found instead of IncludeFile.
	MisnamedIncludeFiles []string
	// ArchiveName is the archive written into the project root.
	ArchiveName string
	// PruneDirs are directory names never descended into.
	PruneDirs []string
	// MaxBytes rejects selections strictly larger than this.
	MaxBytes int64
	// WarnBytes warns for selections strictly larger than this.
	WarnBytes int64
}

// DefaultArchiveName is the upload archive written to the project root.
const DefaultArchiveName = "structure_source.zip"

// DefaultPackaging returns the built-in exclusion rules, size limits and
// archive name.
func DefaultPackaging() Packaging {
	return Packaging{
		DefaultRules: []string{
			DefaultArchiveName,
			"*.pyc",
			"env/",
			"venv/*",
			"venv",
			".eggs",
			"node_modules",
			"node_modules/*",
			".DS_STORE",
			".DS_Store",
			"npm-debug.log*",
			"yarn-debug.log*",
			"yarn-error.log*",
			".npm",
		},
		IgnoreFile:           ".gitignore",
		IncludeFile:          ".structure-include",
		MisnamedIncludeFiles: []string{"structure-include", ".structure_include"},
		ArchiveName:          DefaultArchiveName,
		PruneDirs:            []string{"node_modules"},
		MaxBytes:             50_000_000,
		WarnBytes:            10_000_000,
	}
}
