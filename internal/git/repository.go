package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	gserrors "gitscope.dev/gitscope/internal/errors"
)

// GoGitOpener opens repositories with go-git.
type GoGitOpener struct{}

// NewOpener returns the default go-git backed Opener.
func NewOpener() Opener {
	return GoGitOpener{}
}

// Open opens the repository at path
func (GoGitOpener) Open(path string) (Repository, error) {
	return OpenRepository(path)
}

// GoGitRepository wraps a go-git repository
type GoGitRepository struct {
	repo *gogit.Repository
	root string
}

// OpenRepository opens a git repository at the given path
func OpenRepository(path string) (*GoGitRepository, error) {
	// Resolve to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, gserrors.NewRepositoryError(path, err)
	}

	if info, err := os.Stat(absPath); err != nil {
		return nil, gserrors.NewRepositoryError(absPath, err)
	} else if !info.IsDir() {
		return nil, gserrors.NewRepositoryError(absPath, fmt.Errorf("not a directory"))
	}

	// Only path itself is a repository; parent directories are not searched
	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: false,
	})
	if err != nil {
		return nil, gserrors.NewRepositoryError(absPath, err)
	}

	// Bare repositories have no worktree; fall back to the opened path
	root := absPath
	if worktree, err := repo.Worktree(); err == nil {
		root = worktree.Filesystem.Root()
	}

	return &GoGitRepository{
		repo: repo,
		root: root,
	}, nil
}

// Root returns the absolute root directory of the working tree
func (r *GoGitRepository) Root() string {
	return r.root
}

// Head returns the branch or commit HEAD points at
func (r *GoGitRepository) Head() (Head, error) {
	ref, err := r.repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return Head{}, fmt.Errorf("failed to read HEAD: %w", err)
	}

	if ref.Type() == plumbing.HashReference {
		return Head{CommitID: ref.Hash().String()}, nil
	}

	head := Head{Branch: ref.Target().Short()}
	resolved, err := r.repo.Reference(ref.Target(), true)
	switch {
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		head.Unborn = true
	case err != nil:
		return Head{}, fmt.Errorf("failed to resolve HEAD: %w", err)
	default:
		head.CommitID = resolved.Hash().String()
	}
	return head, nil
}

// ResolveRevision resolves a ref name, branch, tag or hex id to a full commit id
func (r *GoGitRepository) ResolveRevision(rev string) (string, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", gserrors.NewRevisionResolutionError(rev, err)
	}
	return hash.String(), nil
}

// Commit looks up a commit by full or abbreviated hex id
func (r *GoGitRepository) Commit(id string) (*CommitObject, error) {
	commit, err := r.commitObject(id)
	if err != nil {
		return nil, err
	}
	return toCommitObject(commit), nil
}

// Walk visits commits reachable from fromID, newest first, in go-git's default log order
func (r *GoGitRepository) Walk(ctx context.Context, fromID string, fn func(*CommitObject) error) error {
	hash, err := r.commitHash(fromID)
	if err != nil {
		return err
	}

	iter, err := r.repo.Log(&gogit.LogOptions{From: hash})
	if err != nil {
		return fmt.Errorf("failed to walk history from %s: %w", fromID, err)
	}
	defer iter.Close()

	err = iter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(toCommitObject(commit)); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return storer.ErrStop
			}
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk history from %s: %w", fromID, err)
	}
	return nil
}

// ReadBlob returns the content of path in the given commit, or nil if the path is absent
func (r *GoGitRepository) ReadBlob(commitID, path string) (*Blob, error) {
	commit, err := r.commitObject(commitID)
	if err != nil {
		return nil, err
	}

	file, err := commit.File(path)
	if errors.Is(err, object.ErrFileNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s in %s: %w", path, commitID, err)
	}

	binary, err := file.IsBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s in %s: %w", path, commitID, err)
	}

	reader, err := file.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s in %s: %w", path, commitID, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s in %s: %w", path, commitID, err)
	}

	return &Blob{Data: data, Binary: binary}, nil
}

// ReadWorktreeFile reads a file from the working tree. The bool is false when
// the file does not exist.
func (r *GoGitRepository) ReadWorktreeFile(path string) ([]byte, bool, error) {
	fullPath, err := securejoin.SecureJoin(r.root, filepath.FromSlash(path))
	if err != nil {
		return nil, false, fmt.Errorf("invalid path %s: %w", path, err)
	}

	info, err := os.Lstat(fullPath)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, false, nil
	}

	// Symlinks are compared by their target, as git stores them
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(fullPath)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read link %s: %w", path, err)
		}
		return []byte(target), true, nil
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, true, nil
}

// commitHash turns a full or abbreviated hex id into a hash
func (r *GoGitRepository) commitHash(id string) (plumbing.Hash, error) {
	if plumbing.IsHash(id) {
		return plumbing.NewHash(id), nil
	}
	hash, err := r.repo.ResolveRevision(plumbing.Revision(id))
	if err != nil {
		return plumbing.ZeroHash, gserrors.NewCommitNotFoundError(id, err)
	}
	return *hash, nil
}

func (r *GoGitRepository) commitObject(id string) (*object.Commit, error) {
	hash, err := r.commitHash(id)
	if err != nil {
		return nil, err
	}

	commit, err := r.repo.CommitObject(hash)
	if errors.Is(err, plumbing.ErrObjectNotFound) || errors.Is(err, plumbing.ErrInvalidType) {
		return nil, gserrors.NewCommitNotFoundError(id, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", id, err)
	}
	return commit, nil
}

func (r *GoGitRepository) treeAt(p Point) (*object.Tree, error) {
	switch p.Kind {
	case PointCommit:
		commit, err := r.commitObject(p.CommitID)
		if err != nil {
			return nil, err
		}
		tree, err := commit.Tree()
		if err != nil {
			return nil, fmt.Errorf("failed to get tree of %s: %w", p.CommitID, err)
		}
		return tree, nil
	case PointEmptyTree:
		return nil, nil
	default:
		return nil, fmt.Errorf("%s has no tree object", p)
	}
}

func toCommitObject(commit *object.Commit) *CommitObject {
	obj := &CommitObject{
		ID:      commit.Hash.String(),
		Message: commit.Message,
	}
	if commit.Author.Name != "" || commit.Author.Email != "" {
		obj.Author = &Signature{
			Name:  commit.Author.Name,
			Email: commit.Author.Email,
			When:  commit.Author.When,
		}
	}
	obj.Committer = &Signature{
		Name:  commit.Committer.Name,
		Email: commit.Committer.Email,
		When:  commit.Committer.When,
	}
	for _, parent := range commit.ParentHashes {
		obj.ParentIDs = append(obj.ParentIDs, parent.String())
	}
	return obj
}
