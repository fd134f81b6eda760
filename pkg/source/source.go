// Package source abstracts where file content comes from, so the same
// analysis pipeline can run over a working tree or a committed git ref.
package source

import (
	"fmt"
	"os"
	"sync"

	"github.com/panbanda/auspex/internal/vcs"
)

// ContentSource provides file content by path.
type ContentSource interface {
	// Read returns the content of the file at path. The error wraps the
	// underlying cause and names the path, so callers can surface it
	// per-file without re-annotating.
	Read(path string) ([]byte, error)
}

// FilesystemSource reads files from the local working tree.
type FilesystemSource struct{}

// NewFilesystem creates a source that reads from the filesystem.
func NewFilesystem() *FilesystemSource {
	return &FilesystemSource{}
}

func (f *FilesystemSource) Read(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return content, nil
}

// TreeSource reads files from a committed git tree, letting a ref be
// analyzed without checking it out. go-git tree lookups are not safe for
// concurrent use, so reads are serialized; the parallel file pool calls
// Read from many goroutines.
type TreeSource struct {
	tree vcs.Tree
	mu   sync.Mutex
}

// NewTree creates a source that reads from a git tree.
func NewTree(tree vcs.Tree) *TreeSource {
	return &TreeSource{tree: tree}
}

func (t *TreeSource) Read(path string) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	content, err := t.tree.File(path)
	if err != nil {
		return nil, fmt.Errorf("read %s from tree: %w", path, err)
	}
	return content, nil
}

var (
	_ ContentSource = (*FilesystemSource)(nil)
	_ ContentSource = (*TreeSource)(nil)
)
