// Package git reads provenance information from sibling repositories.
package git

import (
	"errors"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/quantmind-br/sitedocs-go/internal/domain"
)

// Ensure Inspector implements domain.Inspector
var _ domain.Inspector = (*Inspector)(nil)

// Inspector resolves the checked-out revision of a repository using go-git
type Inspector struct{}

// NewInspector creates a new Inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect returns the HEAD revision and branch of the repository containing
// path. Directories outside a git repository, and repositories without
// commits, yield a SourceInfo with only Repository set.
func (i *Inspector) Inspect(path string) (domain.SourceInfo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.SourceInfo{}, err
	}
	info := domain.SourceInfo{Repository: abs}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return info, nil
	}
	if err != nil {
		return info, err
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return info, nil
	}
	if err != nil {
		return info, err
	}

	info.Revision = head.Hash().String()
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}
	return info, nil
}
