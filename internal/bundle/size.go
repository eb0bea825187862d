package bundle

import (
	"fmt"

	"github.com/structuresh/structure/internal/ports"
	"github.com/structuresh/structure/internal/selector"
)

// SizeReport is the total size of a selection.
type SizeReport struct {
	Bytes int64
	// MB is Bytes in decimal megabytes.
	MB float64
}

// WholeMB is the truncated megabyte figure shown to users.
func (r SizeReport) WholeMB() int64 {
	return r.Bytes / 1_000_000
}

// TotalSize sums the on-disk size of files. Files that can no longer be
// stat'ed are left out of the total.
func TotalSize(fs ports.FileSystem, files []selector.FileCandidate) SizeReport {
	var total int64
	for _, f := range files {
		info, err := fs.Stat(f.Path)
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return SizeReport{Bytes: total, MB: float64(total) / 1e6}
}

// Policy holds the size thresholds of a deployment.
type Policy struct {
	// MaxBytes rejects selections strictly larger than this.
	MaxBytes int64
	// WarnBytes produces an advisory for selections strictly larger than this.
	WarnBytes int64
}

// Check applies the policy to report. It returns a *SizeLimitError when the
// selection is too large, and otherwise an advisory message that is empty
// when no warning applies.
func (p Policy) Check(report SizeReport) (string, error) {
	if report.Bytes > p.MaxBytes {
		return "", &SizeLimitError{Bytes: report.Bytes, LimitBytes: p.MaxBytes}
	}
	if report.Bytes > p.WarnBytes {
		return fmt.Sprintf("The project folder you're trying to deploy is large (%d MB). Deploying may be slow. "+
			"If you have static assets (photos, video, etc.), we recommend hosting them externally.", report.WholeMB()), nil
	}
	return "", nil
}

// FormatSize formats bytes as human-readable decimal units.
func FormatSize(bytes int64) string {
	const unit = 1000
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "kMGTPE"[exp])
}
