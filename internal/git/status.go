package git

import (
	"fmt"
	"sort"

	gogit "github.com/go-git/go-git/v5"
)

// Status returns the combined index and worktree flags of every path with a
// non-empty status, sorted by path
func (r *GoGitRepository) Status() ([]StatusEntry, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	entries := make([]StatusEntry, 0, len(status))
	for path, fs := range status {
		flags := stagingFlags(fs.Staging) | worktreeFlags(fs.Worktree)
		if flags == 0 {
			continue
		}
		entries = append(entries, StatusEntry{Path: path, Flags: flags})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

// stagingFlags maps an index status code to flags. go-git reports untracked
// files as '?' on both sides; only the worktree side counts them.
func stagingFlags(code gogit.StatusCode) StatusFlags {
	switch code {
	case gogit.Added, gogit.Copied:
		return IndexNew
	case gogit.Modified:
		return IndexModified
	case gogit.Deleted:
		return IndexDeleted
	case gogit.Renamed:
		return IndexRenamed
	case gogit.UpdatedButUnmerged:
		return Conflicted
	default:
		return 0
	}
}

func worktreeFlags(code gogit.StatusCode) StatusFlags {
	switch code {
	case gogit.Untracked, gogit.Added:
		return WorktreeNew
	case gogit.Modified:
		return WorktreeModified
	case gogit.Deleted:
		return WorktreeDeleted
	case gogit.Renamed:
		return WorktreeRenamed
	case gogit.UpdatedButUnmerged:
		return Conflicted
	default:
		return 0
	}
}
