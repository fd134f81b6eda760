package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/panbanda/auspex/internal/vcs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.js")
	require.NoError(t, os.WriteFile(path, []byte("const x = 1;\n"), 0644))

	src := NewFilesystem()

	content, err := src.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "const x = 1;\n", string(content))

	missing := filepath.Join(dir, "missing.js")
	_, err = src.Read(missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), missing)
}

func TestTreeSource(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("const x = 1;\n"), 0644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("app.js")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	opened, err := vcs.NewGitOpener().PlainOpen(dir)
	require.NoError(t, err)
	tree, err := opened.TreeAt("HEAD")
	require.NoError(t, err)

	src := NewTree(tree)

	content, err := src.Read("app.js")
	require.NoError(t, err)
	assert.Equal(t, "const x = 1;\n", string(content))

	_, err = src.Read("missing.js")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.js")
}

func TestTreeSourceConcurrent(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("const x = 1;\n"), 0644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("app.js")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	opened, err := vcs.NewGitOpener().PlainOpen(dir)
	require.NoError(t, err)
	tree, err := opened.TreeAt("HEAD")
	require.NoError(t, err)

	src := NewTree(tree)

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := src.Read("app.js")
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		assert.NoError(t, <-done)
	}
}

type mapSource map[string][]byte

func (m mapSource) Read(path string) ([]byte, error) {
	if content, ok := m[path]; ok {
		return content, nil
	}
	return nil, os.ErrNotExist
}

// Custom implementations stay interchangeable with the built-in sources.
func TestContentSourceImplementations(t *testing.T) {
	var _ ContentSource = (*FilesystemSource)(nil)
	var _ ContentSource = (*TreeSource)(nil)
	var _ ContentSource = mapSource{}

	src := mapSource{"test.js": []byte("export {};")}
	content, err := src.Read("test.js")
	require.NoError(t, err)
	assert.Equal(t, "export {};", string(content))

	_, err = src.Read("missing.js")
	assert.Error(t, err)
}
