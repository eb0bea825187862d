package bundle

import (
	"fmt"

	"github.com/structuresh/structure/internal/selector"
)

// Verify checks that the archive at path holds an entry for every file.
func (p *Packager) Verify(path string, files []selector.FileCandidate) error {
	listing, err := p.archiver.List(path)
	if err != nil {
		return &ArchiveWriteError{Path: path, Err: fmt.Errorf("reading back archive: %w", err)}
	}
	for _, f := range files {
		if _, ok := listing[f.Name]; !ok {
			return &ArchiveWriteError{Path: path, Err: fmt.Errorf("archive is missing %s", f.Name)}
		}
	}
	if len(listing) != len(files) {
		return &ArchiveWriteError{Path: path, Err: fmt.Errorf("archive has %d entries, expected %d", len(listing), len(files))}
	}
	return nil
}
