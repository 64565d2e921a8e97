package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	gserrors "gitscope.dev/gitscope/internal/errors"
	"gitscope.dev/gitscope/internal/git"
)

// GetCommitFiles returns the files a commit changed relative to its first parent.
// Every file of a root commit is reported as added.
func (e *engineImpl) GetCommitFiles(ctx context.Context, repoPath, commitID string) ([]ChangedFile, error) {
	repo, err := e.open(repoPath)
	if err != nil {
		return nil, err
	}

	from, to, err := commitComparison(repo, commitID)
	if err != nil {
		return nil, err
	}
	return e.changedFiles(ctx, repo, from, to)
}

// GetCommitRangeFiles returns one aggregate set of changes from the oldest
// commit's first parent to the newest commit
func (e *engineImpl) GetCommitRangeFiles(ctx context.Context, repoPath string, commitIDs []string) ([]ChangedFile, error) {
	repo, err := e.open(repoPath)
	if err != nil {
		return nil, err
	}

	from, to, err := rangeComparison(repo, commitIDs)
	if err != nil {
		return nil, err
	}
	return e.changedFiles(ctx, repo, from, to)
}

// GetFileDiff returns the hunks of one file in a commit
func (e *engineImpl) GetFileDiff(ctx context.Context, repoPath, commitID, filePath string) (*FileDiff, error) {
	repo, err := e.open(repoPath)
	if err != nil {
		return nil, err
	}

	from, to, err := commitComparison(repo, commitID)
	if err != nil {
		return nil, err
	}
	return e.fileDiff(ctx, repo, from, to, filePath)
}

// GetCommitRangeFileDiff returns the hunks of one file across a commit range
func (e *engineImpl) GetCommitRangeFileDiff(ctx context.Context, repoPath string, commitIDs []string, filePath string) (*FileDiff, error) {
	repo, err := e.open(repoPath)
	if err != nil {
		return nil, err
	}

	from, to, err := rangeComparison(repo, commitIDs)
	if err != nil {
		return nil, err
	}
	return e.fileDiff(ctx, repo, from, to, filePath)
}

// commitComparison returns the first parent (or empty tree) and the commit itself
func commitComparison(repo git.Repository, commitID string) (git.Point, git.Point, error) {
	if err := validateCommitID(commitID); err != nil {
		return git.Point{}, git.Point{}, err
	}

	commit, err := repo.Commit(commitID)
	if err != nil {
		return git.Point{}, git.Point{}, err
	}
	return parentPoint(commit), git.CommitPoint(commit.ID), nil
}

// rangeComparison spans from the oldest commit's first parent to the newest commit
func rangeComparison(repo git.Repository, commitIDs []string) (git.Point, git.Point, error) {
	oldest, newest, err := rangeEndpoints(repo, commitIDs)
	if err != nil {
		return git.Point{}, git.Point{}, err
	}
	return parentPoint(oldest), git.CommitPoint(newest.ID), nil
}

// rangeEndpoints picks the oldest and newest commits by committer time. Ties
// go to input order, which lists newer commits first.
func rangeEndpoints(repo git.Repository, commitIDs []string) (*git.CommitObject, *git.CommitObject, error) {
	if len(commitIDs) == 0 {
		return nil, nil, gserrors.NewInvalidRevisionIDError("")
	}

	var oldest, newest *git.CommitObject
	for _, id := range commitIDs {
		if err := validateCommitID(id); err != nil {
			return nil, nil, err
		}
		commit, err := repo.Commit(id)
		if err != nil {
			return nil, nil, err
		}

		when := commitTime(commit)
		if newest == nil || when.After(commitTime(newest)) {
			newest = commit
		}
		if oldest == nil || !when.After(commitTime(oldest)) {
			oldest = commit
		}
	}
	return oldest, newest, nil
}

func commitTime(c *git.CommitObject) time.Time {
	switch {
	case c.Committer != nil:
		return c.Committer.When
	case c.Author != nil:
		return c.Author.When
	default:
		return time.Time{}
	}
}

func parentPoint(c *git.CommitObject) git.Point {
	if len(c.ParentIDs) == 0 {
		return git.EmptyTree()
	}
	return git.CommitPoint(c.ParentIDs[0])
}

func (e *engineImpl) changedFiles(ctx context.Context, repo git.Repository, from, to git.Point) ([]ChangedFile, error) {
	deltas, err := repo.Diff(ctx, from, to, git.DiffOptions{
		Patch:        true,
		ContextLines: e.contextLines,
	})
	if err != nil {
		return nil, err
	}

	files := lo.Map(deltas, func(d git.Delta, _ int) ChangedFile {
		return e.toChangedFile(d)
	})
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	e.logger.Debug("computed changed files", "from", from.String(), "to", to.String(), "count", len(files))
	return files, nil
}

func (e *engineImpl) toChangedFile(d git.Delta) ChangedFile {
	file := ChangedFile{
		Path:   d.Path(),
		Status: toFileStatus(d.Kind),
	}
	if file.Status == StatusRenamed {
		file.OldPath = lo.ToPtr(d.OldPath)
	}

	// Line stats are best effort
	if d.PatchErr != nil {
		e.logger.Debug("line stats unavailable", "path", file.Path, "error", d.PatchErr)
		return file
	}
	file.Additions, file.Deletions = lineStats(d.Hunks)
	return file
}

func (e *engineImpl) fileDiff(ctx context.Context, repo git.Repository, from, to git.Point, filePath string) (*FileDiff, error) {
	deltas, err := repo.Diff(ctx, from, to, git.DiffOptions{
		Paths:        []string{filePath},
		Patch:        true,
		ContextLines: e.contextLines,
	})
	if err != nil {
		return nil, err
	}
	if len(deltas) == 0 {
		return nil, gserrors.NewFileNotInComparisonError(filePath)
	}

	// Prefer the delta that ends at the requested path
	delta, ok := lo.Find(deltas, func(d git.Delta) bool {
		return d.NewPath == filePath
	})
	if !ok {
		delta = deltas[0]
	}
	if delta.PatchErr != nil {
		return nil, fmt.Errorf("failed to build diff for %s: %w", filePath, delta.PatchErr)
	}

	diff := &FileDiff{
		NewPath:  delta.Path(),
		Hunks:    []DiffHunk{},
		IsBinary: delta.Binary,
	}
	if delta.Kind == git.ChangeRenamed || delta.Kind == git.ChangeCopied {
		diff.OldPath = lo.ToPtr(delta.OldPath)
	}
	if delta.Binary {
		return diff, nil
	}

	diff.Hunks = toDiffHunks(delta.Hunks)
	return diff, nil
}

// toFileStatus maps every backend change kind to a FileStatus. Kinds without
// a direct equivalent collapse to Unmodified.
func toFileStatus(kind git.ChangeKind) FileStatus {
	switch kind {
	case git.ChangeAdded:
		return StatusAdded
	case git.ChangeDeleted:
		return StatusDeleted
	case git.ChangeModified:
		return StatusModified
	case git.ChangeRenamed:
		return StatusRenamed
	case git.ChangeCopied:
		return StatusCopied
	default:
		return StatusUnmodified
	}
}

func lineStats(hunks []git.RawHunk) (additions, deletions int) {
	for _, h := range hunks {
		for _, line := range h.Lines {
			switch line.Origin {
			case '+':
				additions++
			case '-':
				deletions++
			}
		}
	}
	return additions, deletions
}

// toDiffHunks classifies every line by its origin marker and numbers it on
// the side(s) it exists on
func toDiffHunks(raw []git.RawHunk) []DiffHunk {
	hunks := make([]DiffHunk, 0, len(raw))
	for _, h := range raw {
		hunk := DiffHunk{
			OldStart: h.OldStart,
			OldLines: h.OldLines,
			NewStart: h.NewStart,
			NewLines: h.NewLines,
			Lines:    make([]DiffLine, 0, len(h.Lines)),
		}

		oldLine, newLine := h.OldStart, h.NewStart
		for _, l := range h.Lines {
			line := DiffLine{Content: l.Content}
			switch l.Origin {
			case '+':
				line.LineType = LineAddition
				line.NewLineNo = lo.ToPtr(newLine)
				newLine++
			case '-':
				line.LineType = LineDeletion
				line.OldLineNo = lo.ToPtr(oldLine)
				oldLine++
			default:
				line.LineType = LineContext
				line.OldLineNo = lo.ToPtr(oldLine)
				line.NewLineNo = lo.ToPtr(newLine)
				oldLine++
				newLine++
			}
			hunk.Lines = append(hunk.Lines, line)
		}
		hunks = append(hunks, hunk)
	}
	return hunks
}
