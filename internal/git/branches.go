package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// LocalBranches returns all refs under refs/heads
func (r *GoGitRepository) LocalBranches() ([]Ref, error) {
	return r.listRefs(func(name plumbing.ReferenceName) bool {
		return name.IsBranch()
	}, false)
}

// RemoteBranches returns all refs under refs/remotes, except symbolic ones like origin/HEAD
func (r *GoGitRepository) RemoteBranches() ([]Ref, error) {
	return r.listRefs(func(name plumbing.ReferenceName) bool {
		return name.IsRemote() && !strings.HasSuffix(name.String(), "/HEAD")
	}, true)
}

func (r *GoGitRepository) listRefs(match func(plumbing.ReferenceName) bool, remote bool) ([]Ref, error) {
	refs, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to get references: %w", err)
	}
	defer refs.Close()

	var result []Ref
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if !match(ref.Name()) || ref.Type() != plumbing.HashReference {
			return nil
		}
		result = append(result, Ref{
			Name:   ref.Name().Short(),
			Remote: remote,
			Target: r.peelToCommit(ref.Hash()),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}
	return result, nil
}

// peelToCommit returns the hex id of the commit at hash, or "" if hash does
// not name a readable commit
func (r *GoGitRepository) peelToCommit(hash plumbing.Hash) string {
	commit, err := r.repo.CommitObject(hash)
	if err != nil {
		return ""
	}
	return commit.Hash.String()
}

// FindLocalBranch returns the named local branch, or nil if it does not exist
func (r *GoGitRepository) FindLocalBranch(name string) (*Ref, error) {
	ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve branch %s: %w", name, err)
	}
	return &Ref{
		Name:   name,
		Target: r.peelToCommit(ref.Hash()),
	}, nil
}

// SetHead points HEAD at the named local branch without touching the working tree
func (r *GoGitRepository) SetHead(branchName string) error {
	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(branchName))
	if err := r.repo.Storer.SetReference(head); err != nil {
		return fmt.Errorf("failed to point HEAD at %s: %w", branchName, err)
	}
	return nil
}

// ForceCheckoutHead overwrites the index and working tree with HEAD's tree.
// New files that are in neither HEAD nor prevCommitID are kept on disk, and
// stay staged if they were. An empty prevCommitID means HEAD.
func (r *GoGitRepository) ForceCheckoutHead(prevCommitID string) error {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	prev := head.Hash()
	if prevCommitID != "" {
		prev = plumbing.NewHash(prevCommitID)
	}
	kept, err := r.newFilesOutside(worktree, prev, head.Hash())
	if err != nil {
		return err
	}

	err = worktree.Reset(&gogit.ResetOptions{
		Commit: head.Hash(),
		Mode:   gogit.HardReset,
	})
	if err != nil {
		return fmt.Errorf("failed to reset working tree to %s: %w", head.Hash(), err)
	}

	if err := r.restoreFiles(kept); err != nil {
		return err
	}
	return restageFiles(worktree, kept)
}

// keptFile is an uncommitted new file saved across a hard reset
type keptFile struct {
	rel    string // slash separated, relative to the root
	staged bool
	path   string
	data   []byte
	mode   os.FileMode
	target string // set for symlinks
}

// newFilesOutside snapshots untracked and newly staged files that are in
// neither commit's tree
func (r *GoGitRepository) newFilesOutside(worktree *gogit.Worktree, commits ...plumbing.Hash) ([]keptFile, error) {
	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	trees := make([]*object.Tree, 0, len(commits))
	for _, hash := range commits {
		c, err := r.repo.CommitObject(hash)
		if err != nil {
			return nil, fmt.Errorf("failed to get commit %s: %w", hash, err)
		}
		tree, err := c.Tree()
		if err != nil {
			return nil, fmt.Errorf("failed to get tree of %s: %w", hash, err)
		}
		trees = append(trees, tree)
	}

	inAnyTree := func(path string) bool {
		for _, tree := range trees {
			if _, err := tree.FindEntry(path); err == nil {
				return true
			}
		}
		return false
	}

	var kept []keptFile
	for path, fs := range status {
		if fs.Worktree != gogit.Untracked && fs.Staging != gogit.Added {
			continue
		}
		if inAnyTree(path) {
			continue
		}

		fullPath, err := securejoin.SecureJoin(r.root, filepath.FromSlash(path))
		if err != nil {
			return nil, fmt.Errorf("invalid path %s: %w", path, err)
		}
		info, err := os.Lstat(fullPath)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}

		file := keptFile{
			rel:    path,
			staged: fs.Staging == gogit.Added,
			path:   fullPath,
			mode:   info.Mode().Perm(),
		}
		if info.Mode()&os.ModeSymlink != 0 {
			if file.target, err = os.Readlink(fullPath); err != nil {
				return nil, fmt.Errorf("failed to read link %s: %w", path, err)
			}
		} else if file.data, err = os.ReadFile(fullPath); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		kept = append(kept, file)
	}
	return kept, nil
}

func (r *GoGitRepository) restoreFiles(files []keptFile) error {
	for _, f := range files {
		if _, err := os.Lstat(f.path); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
			return fmt.Errorf("failed to restore %s: %w", f.path, err)
		}
		if f.target != "" {
			if err := os.Symlink(f.target, f.path); err != nil {
				return fmt.Errorf("failed to restore %s: %w", f.path, err)
			}
			continue
		}
		if err := os.WriteFile(f.path, f.data, f.mode); err != nil {
			return fmt.Errorf("failed to restore %s: %w", f.path, err)
		}
	}
	return nil
}

func restageFiles(worktree *gogit.Worktree, files []keptFile) error {
	for _, f := range files {
		if !f.staged {
			continue
		}
		if _, err := worktree.Add(f.rel); err != nil {
			return fmt.Errorf("failed to restage %s: %w", f.rel, err)
		}
	}
	return nil
}
