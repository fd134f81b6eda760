// Package vcs provides read-only access to git repositories so analyses
// can run against a committed tree without touching the working copy.
package vcs

import (
	"fmt"
	"io"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Tree provides file content from a single commit.
type Tree interface {
	// File returns the content of the file at path within the tree.
	File(path string) ([]byte, error)
	// Files returns the paths of all files in the tree.
	Files() ([]string, error)
}

// Repository is a read-only view of a git repository.
type Repository interface {
	// Head returns the current branch short name, or the commit hash when
	// the repository is in a detached HEAD state.
	Head() (string, error)
	// TreeAt resolves a revision (branch, tag, or hash) to its tree.
	TreeAt(rev string) (Tree, error)
	// IsDirty reports whether the worktree has uncommitted changes.
	IsDirty() (bool, error)
}

// Opener opens repositories from the filesystem.
type Opener interface {
	// PlainOpen opens the repository containing path, searching parent
	// directories for the .git directory.
	PlainOpen(path string) (Repository, error)
}

// GitOpener opens repositories using go-git.
type GitOpener struct{}

// NewGitOpener creates an opener backed by go-git.
func NewGitOpener() *GitOpener {
	return &GitOpener{}
}

// DefaultOpener is the opener used when no custom opener is injected.
var DefaultOpener Opener = NewGitOpener()

var _ Opener = (*GitOpener)(nil)

// PlainOpen implements Opener.
func (o *GitOpener) PlainOpen(path string) (Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return &gitRepository{repo: repo}, nil
}

type gitRepository struct {
	repo *git.Repository
}

var _ Repository = (*gitRepository)(nil)

func (r *gitRepository) Head() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}
	if ref.Name().IsBranch() {
		return ref.Name().Short(), nil
	}
	return ref.Hash().String(), nil
}

func (r *gitRepository) TreeAt(rev string) (Tree, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %s: %w", rev, err)
	}
	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("loading commit %s: %w", hash, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("loading tree for %s: %w", hash, err)
	}
	return &gitTree{tree: tree}, nil
}

func (r *gitRepository) IsDirty() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("opening worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("checking worktree status: %w", err)
	}
	return !status.IsClean(), nil
}

type gitTree struct {
	tree *object.Tree
}

var _ Tree = (*gitTree)(nil)

func (t *gitTree) File(path string) ([]byte, error) {
	f, err := t.tree.File(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	reader, err := f.Reader()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

func (t *gitTree) Files() ([]string, error) {
	var paths []string
	err := t.tree.Files().ForEach(func(f *object.File) error {
		paths = append(paths, f.Name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking tree: %w", err)
	}
	return paths, nil
}
