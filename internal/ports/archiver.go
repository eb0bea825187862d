package ports

// ArchiveEntry is one file to be written into an archive.
type ArchiveEntry struct {
	// Path is the absolute filesystem path of the source file.
	Path string
	// Name is the slash-separated entry name inside the archive.
	Name string
}

// Archiver abstracts zip archive operations for testability.
// Production code uses ZipArchiver adapter; tests use MockArchiver.
type Archiver interface {
	// Create writes entries into a new zip archive at destPath, replacing
	// any file already there. Returns the number of files archived.
	Create(destPath string, entries []ArchiveEntry) (fileCount int, err error)

	// Extract extracts a zip archive to destDir.
	Extract(zipPath, destDir string) error

	// List returns a map of entry names to their info from the archive.
	List(zipPath string) (map[string]FileInfo, error)
}

// FileInfo contains metadata about a file in an archive.
type FileInfo struct {
	Size  int64
	CRC32 uint32
}
