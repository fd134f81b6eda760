// Package scanner wraps the file scanner for use by the CLI, handling
// multi-path scans and repository discovery.
package scanner

import (
	"os"
	"path/filepath"

	"github.com/panbanda/auspex/internal/scanner"
	"github.com/panbanda/auspex/pkg/config"
)

// ScanResult contains the result of a file scan.
type ScanResult struct {
	// Files are the absolute paths of every source file found.
	Files []string
	// Root is the common base directory reports are relative to.
	Root string
	// RepoRoot is the enclosing git repository root, empty when the scan
	// target is not inside a repository.
	RepoRoot string
}

// Service provides file scanning functionality.
type Service struct {
	config *config.Config
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// New creates a new scanner service.
func New(opts ...Option) *Service {
	s := &Service{
		config: config.LoadOrDefault(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanPaths scans the given paths and returns all found source files.
// Directories are scanned recursively; files are kept when the
// configuration includes them. An empty path list means the current
// directory.
func (s *Service) ScanPaths(paths []string) (*ScanResult, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	scan := scanner.NewScanner(s.config)
	result := &ScanResult{}

	for i, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, &PathError{Path: path, Err: err}
		}

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, &PathError{Path: path, Err: err}
		}

		if info.IsDir() {
			found, err := scan.ScanDir(absPath)
			if err != nil {
				return nil, &ScanError{Path: path, Err: err}
			}
			result.Files = append(result.Files, found...)
			if i == 0 {
				result.Root = absPath
			}
		} else {
			ok, err := scan.ScanFile(absPath)
			if err != nil {
				return nil, &ScanError{Path: path, Err: err}
			}
			if ok {
				result.Files = append(result.Files, absPath)
			}
			if i == 0 {
				result.Root = filepath.Dir(absPath)
			}
		}
	}

	result.RepoRoot = scanner.FindGitRoot(result.Root)

	return result, nil
}

// FilterBySize filters files by maximum size.
func (s *Service) FilterBySize(files []string, maxSize int64) ([]string, int) {
	return scanner.FilterBySize(files, maxSize)
}

// PathError indicates an invalid path.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return "invalid path " + e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// ScanError indicates a scanning failure.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return "failed to scan " + e.Path + ": " + e.Err.Error()
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
