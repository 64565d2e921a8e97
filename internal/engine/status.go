package engine

import (
	"context"

	"github.com/samber/lo"

	"gitscope.dev/gitscope/internal/git"
)

// checkoutBlockingFlags are the changes a forced checkout could destroy.
// New files, staged or not, do not block.
const checkoutBlockingFlags = git.IndexModified | git.WorktreeModified | git.IndexDeleted | git.WorktreeDeleted

// GetWorkingChanges lists every path with uncommitted changes, with line
// counts against HEAD where they can be computed
func (e *engineImpl) GetWorkingChanges(ctx context.Context, repoPath string) ([]ChangedFile, error) {
	repo, err := e.open(repoPath)
	if err != nil {
		return nil, err
	}

	entries, err := repo.Status()
	if err != nil {
		return nil, err
	}

	files := lo.FilterMap(entries, func(entry git.StatusEntry, _ int) (ChangedFile, bool) {
		status, ok := reconcileStatus(entry.Flags)
		return ChangedFile{Path: entry.Path, Status: status}, ok
	})
	if len(files) == 0 {
		return files, nil
	}

	stats := e.workingLineStats(ctx, repo, lo.Map(files, func(f ChangedFile, _ int) string {
		return f.Path
	}))
	for i := range files {
		if s, ok := stats[files[i].Path]; ok {
			files[i].Additions, files[i].Deletions = s[0], s[1]
		}
	}

	e.logger.Debug("listed working changes", "repo", repoPath, "count", len(files))
	return files, nil
}

// GetWorkingFileDiff returns the hunks of one file between HEAD and the working tree
func (e *engineImpl) GetWorkingFileDiff(ctx context.Context, repoPath, filePath string) (*FileDiff, error) {
	repo, err := e.open(repoPath)
	if err != nil {
		return nil, err
	}

	from, err := headPoint(repo)
	if err != nil {
		return nil, err
	}
	return e.fileDiff(ctx, repo, from, git.WorktreePoint(), filePath)
}

// GetWorkingFileContents returns a file as it is in HEAD and on disk
func (e *engineImpl) GetWorkingFileContents(_ context.Context, repoPath, filePath string) (*FileContents, error) {
	repo, err := e.open(repoPath)
	if err != nil {
		return nil, err
	}

	from, err := headPoint(repo)
	if err != nil {
		return nil, err
	}
	return e.contents(repo, from, git.WorktreePoint(), filePath)
}

// reconcileStatus merges index and worktree flags into one status; first match wins.
// False means the path is not reported.
func reconcileStatus(flags git.StatusFlags) (FileStatus, bool) {
	switch {
	case flags.Has(git.WorktreeNew) && !flags.Has(git.IndexNew):
		return StatusUntracked, true
	case flags.Has(git.IndexNew | git.WorktreeNew):
		return StatusAdded, true
	case flags.Has(git.IndexDeleted | git.WorktreeDeleted):
		return StatusDeleted, true
	case flags.Has(git.IndexModified | git.WorktreeModified):
		return StatusModified, true
	case flags.Has(git.IndexRenamed | git.WorktreeRenamed):
		return StatusRenamed, true
	default:
		return StatusUnmodified, false
	}
}

// blockingPaths returns the paths that make a checkout unsafe
func blockingPaths(entries []git.StatusEntry) []string {
	return lo.FilterMap(entries, func(entry git.StatusEntry, _ int) (string, bool) {
		return entry.Path, entry.Flags.Has(checkoutBlockingFlags)
	})
}

// workingLineStats diffs HEAD against the working tree for paths. Any failure
// yields no stats rather than an error.
func (e *engineImpl) workingLineStats(ctx context.Context, repo git.Repository, paths []string) map[string][2]int {
	head, err := repo.Head()
	if err != nil || head.Unborn {
		e.logger.Debug("line stats unavailable: HEAD not resolvable", "error", err)
		return nil
	}

	deltas, err := repo.Diff(ctx, git.CommitPoint(head.CommitID), git.WorktreePoint(), git.DiffOptions{
		Paths:        paths,
		Patch:        true,
		ContextLines: e.contextLines,
	})
	if err != nil {
		e.logger.Debug("line stats unavailable", "error", err)
		return nil
	}

	stats := make(map[string][2]int, len(deltas))
	for _, d := range deltas {
		if d.PatchErr != nil {
			e.logger.Debug("line stats unavailable", "path", d.Path(), "error", d.PatchErr)
			continue
		}
		additions, deletions := lineStats(d.Hunks)
		stats[d.Path()] = [2]int{additions, deletions}
	}
	return stats
}

// headPoint is HEAD's commit, or the empty tree on an unborn branch
func headPoint(repo git.Repository) (git.Point, error) {
	head, err := repo.Head()
	if err != nil {
		return git.Point{}, err
	}
	if head.Unborn {
		return git.EmptyTree(), nil
	}
	return git.CommitPoint(head.CommitID), nil
}
