// File: scan/scanner.go

package scan

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"

	"greg-hacke/go-imagedb/metadata"
)

// Handler consumes scan events. OnFileProcessed fires once per
// successfully extracted file; OnScanCompleted fires once after the walk.
type Handler interface {
	OnFileProcessed(path string, dirs []metadata.Directory, relativePath string)
	OnScanCompleted() error
}

// FileError records a per-file failure that did not abort the scan
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Stats holds counters from one scan run
type Stats struct {
	FilesScanned   int
	FilesProcessed int
	FilesSkipped   int
	Errors         []FileError
}

// Scanner walks Root sequentially and feeds every supported image file
// through the handlers
type Scanner struct {
	Root     string
	Handlers []Handler
}

// Run performs one scan. Per-file failures are recorded in Stats and skip
// the file; a stopped walk still leaves the handlers with a valid partial
// state.
func (s *Scanner) Run() (Stats, error) {
	var stats Stats

	root, err := filepath.Abs(s.Root)
	if err != nil {
		return stats, fmt.Errorf("cannot resolve root: %w", err)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// metadata directories hold our own dump output
			if d.Name() == "metadata" {
				return filepath.SkipDir
			}
			return nil
		}

		stats.FilesScanned++

		supported, err := isSupported(path)
		if err != nil {
			stats.Errors = append(stats.Errors, FileError{Path: path, Err: err})
			return nil
		}
		if !supported {
			stats.FilesSkipped++
			return nil
		}

		dirs, err := metadata.ExtractFile(path)
		if err != nil {
			stats.Errors = append(stats.Errors, FileError{Path: path, Err: err})
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = d.Name()
		}

		for _, h := range s.Handlers {
			h.OnFileProcessed(path, dirs, rel)
		}
		stats.FilesProcessed++
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("scan failed: %w", err)
	}

	for _, h := range s.Handlers {
		if err := h.OnScanCompleted(); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// isSupported sniffs the file header and accepts image content only
func isSupported(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	// filetype matchers need at most 261 bytes
	header := make([]byte, 261)
	n, err := file.Read(header)
	if n == 0 {
		if err != nil && err != io.EOF {
			return false, fmt.Errorf("cannot read file header: %w", err)
		}
		return false, nil
	}

	return filetype.IsImage(header[:n]), nil
}
