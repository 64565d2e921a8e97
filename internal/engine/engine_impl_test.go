package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gitscope.dev/gitscope/internal/engine"
	gserrors "gitscope.dev/gitscope/internal/errors"
	"gitscope.dev/gitscope/internal/git"
	"gitscope.dev/gitscope/testhelpers"
)

const (
	repoPath = "/repo"
	idA      = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	idB      = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	idC      = "cccccccccccccccccccccccccccccccccccccccc"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func sig(minutes int) *git.Signature {
	return &git.Signature{Name: "Test User", Email: "test@example.com", When: epoch.Add(time.Duration(minutes) * time.Minute)}
}

// newFake returns a fake with history A <- B <- C on main
func newFake() *testhelpers.FakeRepo {
	f := testhelpers.NewFakeRepo(repoPath)
	f.AddCommit(&git.CommitObject{ID: idA, Message: "first\n", Author: sig(1), Committer: sig(1)})
	f.AddCommit(&git.CommitObject{ID: idB, Message: "second\r\nbody\n", Author: sig(2), Committer: sig(2), ParentIDs: []string{idA}})
	f.AddCommit(&git.CommitObject{ID: idC, Message: "third", Committer: sig(3), ParentIDs: []string{idB}})
	return f
}

func newEngine(f *testhelpers.FakeRepo) engine.Engine {
	return engine.New(testhelpers.NewFakeOpener(f))
}

func TestListCommits(t *testing.T) {
	ctx := context.Background()

	t.Run("newest first with first message line", func(t *testing.T) {
		commits, err := newEngine(newFake()).ListCommits(ctx, repoPath, "", 0)
		require.NoError(t, err)
		require.Len(t, commits, 3)
		require.Equal(t, []string{idC, idB, idA}, []string{commits[0].ID, commits[1].ID, commits[2].ID})
		require.Equal(t, "second", commits[1].Message)
		require.Equal(t, "Test User", commits[1].Author)
		require.Equal(t, sig(2).When.Unix(), commits[1].Timestamp)
	})

	t.Run("missing author defaults", func(t *testing.T) {
		commits, err := newEngine(newFake()).ListCommits(ctx, repoPath, "", 1)
		require.NoError(t, err)
		require.Len(t, commits, 1)
		require.Equal(t, "Unknown", commits[0].Author)
		require.Equal(t, "", commits[0].Email)
	})

	t.Run("limit is a hard cap", func(t *testing.T) {
		commits, err := newEngine(newFake()).ListCommits(ctx, repoPath, "", 2)
		require.NoError(t, err)
		require.Len(t, commits, 2)
	})

	t.Run("configured default limit", func(t *testing.T) {
		e := engine.New(testhelpers.NewFakeOpener(newFake()), engine.WithCommitLimit(1))
		commits, err := e.ListCommits(ctx, repoPath, "", 0)
		require.NoError(t, err)
		require.Len(t, commits, 1)
	})

	t.Run("start ref", func(t *testing.T) {
		commits, err := newEngine(newFake()).ListCommits(ctx, repoPath, idB, 0)
		require.NoError(t, err)
		require.Len(t, commits, 2)
		require.Equal(t, idB, commits[0].ID)
	})

	t.Run("unresolvable start ref", func(t *testing.T) {
		_, err := newEngine(newFake()).ListCommits(ctx, repoPath, "nope", 0)
		require.ErrorIs(t, err, gserrors.ErrRevisionResolution)
	})

	t.Run("not a repository", func(t *testing.T) {
		_, err := newEngine(newFake()).ListCommits(ctx, "/elsewhere", "", 0)
		require.ErrorIs(t, err, gserrors.ErrNotARepository)
	})
}

func TestGetCommitFiles(t *testing.T) {
	ctx := context.Background()

	t.Run("compares against first parent", func(t *testing.T) {
		f := newFake()
		f.SetDiff(git.CommitPoint(idA), git.CommitPoint(idB),
			git.Delta{NewPath: "z.txt", Kind: git.ChangeAdded, Hunks: []git.RawHunk{{Lines: []git.RawLine{{Origin: '+', Content: "z\n"}}}}},
			git.Delta{OldPath: "a.txt", NewPath: "a.txt", Kind: git.ChangeModified, Hunks: []git.RawHunk{{Lines: []git.RawLine{
				{Origin: ' ', Content: "keep\n"},
				{Origin: '-', Content: "old\n"},
				{Origin: '+', Content: "new\n"},
				{Origin: '+', Content: "more\n"},
			}}}},
		)

		files, err := newEngine(f).GetCommitFiles(ctx, repoPath, idB)
		require.NoError(t, err)
		require.Equal(t, []engine.ChangedFile{
			{Path: "a.txt", Status: engine.StatusModified, Additions: 2, Deletions: 1},
			{Path: "z.txt", Status: engine.StatusAdded, Additions: 1},
		}, files)
	})

	t.Run("root commit uses the empty tree", func(t *testing.T) {
		f := newFake()
		f.SetDiff(git.EmptyTree(), git.CommitPoint(idA), git.Delta{NewPath: "README.md", Kind: git.ChangeAdded})

		files, err := newEngine(f).GetCommitFiles(ctx, repoPath, idA)
		require.NoError(t, err)
		require.Len(t, files, 1)
		require.Equal(t, engine.StatusAdded, files[0].Status)
	})

	t.Run("rename carries old path", func(t *testing.T) {
		f := newFake()
		f.SetDiff(git.CommitPoint(idA), git.CommitPoint(idB), git.Delta{OldPath: "old.txt", NewPath: "new.txt", Kind: git.ChangeRenamed})

		files, err := newEngine(f).GetCommitFiles(ctx, repoPath, idB)
		require.NoError(t, err)
		require.Len(t, files, 1)
		require.Equal(t, "new.txt", files[0].Path)
		require.NotNil(t, files[0].OldPath)
		require.Equal(t, "old.txt", *files[0].OldPath)
	})

	t.Run("unmapped kinds collapse to unmodified", func(t *testing.T) {
		f := newFake()
		f.SetDiff(git.CommitPoint(idA), git.CommitPoint(idB), git.Delta{OldPath: "link", NewPath: "link", Kind: git.ChangeTypeChange})

		files, err := newEngine(f).GetCommitFiles(ctx, repoPath, idB)
		require.NoError(t, err)
		require.Equal(t, engine.StatusUnmodified, files[0].Status)
		require.Nil(t, files[0].OldPath)
	})

	t.Run("patch failure degrades line counts to zero", func(t *testing.T) {
		f := newFake()
		f.SetDiff(git.CommitPoint(idA), git.CommitPoint(idB), git.Delta{
			OldPath: "a.txt", NewPath: "a.txt", Kind: git.ChangeModified,
			Hunks:    []git.RawHunk{{Lines: []git.RawLine{{Origin: '+', Content: "x\n"}}}},
			PatchErr: errors.New("boom"),
		})

		files, err := newEngine(f).GetCommitFiles(ctx, repoPath, idB)
		require.NoError(t, err)
		require.Zero(t, files[0].Additions)
		require.Zero(t, files[0].Deletions)
	})

	t.Run("invalid commit id", func(t *testing.T) {
		_, err := newEngine(newFake()).GetCommitFiles(ctx, repoPath, "not-a-hash")
		require.ErrorIs(t, err, gserrors.ErrInvalidRevisionID)
	})

	t.Run("unknown commit", func(t *testing.T) {
		_, err := newEngine(newFake()).GetCommitFiles(ctx, repoPath, "dddddddddddddddddddddddddddddddddddddddd")
		require.ErrorIs(t, err, gserrors.ErrCommitNotFound)
	})
}

func TestGetCommitRangeFiles(t *testing.T) {
	ctx := context.Background()
	f := newFake()
	f.SetDiff(git.EmptyTree(), git.CommitPoint(idC), git.Delta{NewPath: "all.txt", Kind: git.ChangeAdded})
	f.SetDiff(git.CommitPoint(idA), git.CommitPoint(idC), git.Delta{NewPath: "bc.txt", Kind: git.ChangeAdded})

	t.Run("spans oldest parent to newest regardless of order", func(t *testing.T) {
		files, err := newEngine(f).GetCommitRangeFiles(ctx, repoPath, []string{idB, idC})
		require.NoError(t, err)
		require.Len(t, files, 1)
		require.Equal(t, "bc.txt", files[0].Path)

		files, err = newEngine(f).GetCommitRangeFiles(ctx, repoPath, []string{idC, idB})
		require.NoError(t, err)
		require.Equal(t, "bc.txt", files[0].Path)
	})

	t.Run("range including root starts at the empty tree", func(t *testing.T) {
		files, err := newEngine(f).GetCommitRangeFiles(ctx, repoPath, []string{idC, idA})
		require.NoError(t, err)
		require.Equal(t, "all.txt", files[0].Path)
	})

	t.Run("empty range", func(t *testing.T) {
		_, err := newEngine(f).GetCommitRangeFiles(ctx, repoPath, nil)
		require.ErrorIs(t, err, gserrors.ErrInvalidRevisionID)
	})
}

func TestGetFileDiff(t *testing.T) {
	ctx := context.Background()

	t.Run("classifies and numbers lines", func(t *testing.T) {
		f := newFake()
		f.SetDiff(git.CommitPoint(idA), git.CommitPoint(idB), git.Delta{
			OldPath: "a.txt", NewPath: "a.txt", Kind: git.ChangeModified,
			Hunks: []git.RawHunk{{OldStart: 10, OldLines: 3, NewStart: 10, NewLines: 3, Lines: []git.RawLine{
				{Origin: ' ', Content: "ctx\n"},
				{Origin: '-', Content: "old\n"},
				{Origin: '+', Content: "new\n"},
				{Origin: ' ', Content: "tail"},
			}}},
		})

		diff, err := newEngine(f).GetFileDiff(ctx, repoPath, idB, "a.txt")
		require.NoError(t, err)
		require.False(t, diff.IsBinary)
		require.Nil(t, diff.OldPath)
		require.Equal(t, "a.txt", diff.NewPath)
		require.Len(t, diff.Hunks, 1)

		lines := diff.Hunks[0].Lines
		require.Len(t, lines, 4)

		require.Equal(t, engine.LineContext, lines[0].LineType)
		require.Equal(t, 10, *lines[0].OldLineNo)
		require.Equal(t, 10, *lines[0].NewLineNo)

		require.Equal(t, engine.LineDeletion, lines[1].LineType)
		require.Equal(t, "old\n", lines[1].Content)
		require.Equal(t, 11, *lines[1].OldLineNo)
		require.Nil(t, lines[1].NewLineNo)

		require.Equal(t, engine.LineAddition, lines[2].LineType)
		require.Nil(t, lines[2].OldLineNo)
		require.Equal(t, 11, *lines[2].NewLineNo)

		require.Equal(t, 12, *lines[3].OldLineNo)
		require.Equal(t, 12, *lines[3].NewLineNo)
	})

	t.Run("binary has no hunks", func(t *testing.T) {
		f := newFake()
		f.SetDiff(git.CommitPoint(idA), git.CommitPoint(idB), git.Delta{OldPath: "img.png", NewPath: "img.png", Kind: git.ChangeModified, Binary: true})

		diff, err := newEngine(f).GetFileDiff(ctx, repoPath, idB, "img.png")
		require.NoError(t, err)
		require.True(t, diff.IsBinary)
		require.NotNil(t, diff.Hunks)
		require.Empty(t, diff.Hunks)
	})

	t.Run("path not in comparison", func(t *testing.T) {
		f := newFake()
		f.SetDiff(git.CommitPoint(idA), git.CommitPoint(idB), git.Delta{NewPath: "a.txt", Kind: git.ChangeAdded})

		_, err := newEngine(f).GetFileDiff(ctx, repoPath, idB, "other.txt")
		require.ErrorIs(t, err, gserrors.ErrFileNotInComparison)
	})

	t.Run("patch failure is an error", func(t *testing.T) {
		f := newFake()
		f.SetDiff(git.CommitPoint(idA), git.CommitPoint(idB), git.Delta{NewPath: "a.txt", Kind: git.ChangeAdded, PatchErr: errors.New("boom")})

		_, err := newEngine(f).GetFileDiff(ctx, repoPath, idB, "a.txt")
		require.Error(t, err)
		require.Contains(t, err.Error(), "a.txt")
	})

	t.Run("renamed file by new name", func(t *testing.T) {
		f := newFake()
		f.SetDiff(git.CommitPoint(idA), git.CommitPoint(idB), git.Delta{OldPath: "old.txt", NewPath: "new.txt", Kind: git.ChangeRenamed})

		diff, err := newEngine(f).GetFileDiff(ctx, repoPath, idB, "new.txt")
		require.NoError(t, err)
		require.Equal(t, "new.txt", diff.NewPath)
		require.Equal(t, "old.txt", *diff.OldPath)
	})

	t.Run("range", func(t *testing.T) {
		f := newFake()
		f.SetDiff(git.CommitPoint(idA), git.CommitPoint(idC), git.Delta{NewPath: "a.txt", Kind: git.ChangeAdded})

		diff, err := newEngine(f).GetCommitRangeFileDiff(ctx, repoPath, []string{idC, idB}, "a.txt")
		require.NoError(t, err)
		require.Equal(t, "a.txt", diff.NewPath)
	})
}

func TestGetFileContents(t *testing.T) {
	ctx := context.Background()

	t.Run("added file has no old content", func(t *testing.T) {
		f := newFake()
		f.SetBlob(idB, "file.txt", []byte("content"), false)

		contents, err := newEngine(f).GetFileContents(ctx, repoPath, idB, "file.txt")
		require.NoError(t, err)
		require.Nil(t, contents.OldContent)
		require.Equal(t, "content", *contents.NewContent)
		require.False(t, contents.IsBinary)
	})

	t.Run("absent on both sides", func(t *testing.T) {
		_, err := newEngine(newFake()).GetFileContents(ctx, repoPath, idB, "ghost.txt")
		require.ErrorIs(t, err, gserrors.ErrFileNotFound)
	})

	t.Run("binary on one side hides both", func(t *testing.T) {
		f := newFake()
		f.SetBlob(idA, "x", []byte("text"), false)
		f.SetBlob(idB, "x", []byte{0, 1, 2}, true)

		contents, err := newEngine(f).GetFileContents(ctx, repoPath, idB, "x")
		require.NoError(t, err)
		require.True(t, contents.IsBinary)
		require.Nil(t, contents.OldContent)
		require.Nil(t, contents.NewContent)
	})

	t.Run("non utf8 text is an error", func(t *testing.T) {
		f := newFake()
		f.SetBlob(idB, "latin1.txt", []byte{'c', 'a', 'f', 0xe9}, false)

		_, err := newEngine(f).GetFileContents(ctx, repoPath, idB, "latin1.txt")
		require.ErrorIs(t, err, gserrors.ErrNonUTF8Content)
	})

	t.Run("range", func(t *testing.T) {
		f := newFake()
		f.SetBlob(idA, "a.txt", []byte("v1"), false)
		f.SetBlob(idC, "a.txt", []byte("v3"), false)

		contents, err := newEngine(f).GetCommitRangeFileContents(ctx, repoPath, []string{idB, idC}, "a.txt")
		require.NoError(t, err)
		require.Equal(t, "v1", *contents.OldContent)
		require.Equal(t, "v3", *contents.NewContent)
	})
}

func TestWorkingChanges(t *testing.T) {
	ctx := context.Background()

	t.Run("reconciles flags and counts lines", func(t *testing.T) {
		f := newFake()
		f.StatusEntries = []git.StatusEntry{
			{Path: "both-new.txt", Flags: git.IndexNew | git.WorktreeModified},
			{Path: "gone.txt", Flags: git.WorktreeDeleted},
			{Path: "ignored.txt", Flags: git.Ignored},
			{Path: "mod.txt", Flags: git.IndexModified | git.WorktreeModified},
			{Path: "untracked.txt", Flags: git.WorktreeNew},
		}
		f.SetDiff(git.CommitPoint(idC), git.WorktreePoint(),
			git.Delta{OldPath: "mod.txt", NewPath: "mod.txt", Kind: git.ChangeModified, Hunks: []git.RawHunk{{Lines: []git.RawLine{
				{Origin: '-', Content: "a\n"}, {Origin: '+', Content: "b\n"}, {Origin: '+', Content: "c\n"},
			}}}},
		)

		files, err := newEngine(f).GetWorkingChanges(ctx, repoPath)
		require.NoError(t, err)
		require.Equal(t, []engine.ChangedFile{
			{Path: "both-new.txt", Status: engine.StatusAdded},
			{Path: "gone.txt", Status: engine.StatusDeleted},
			{Path: "mod.txt", Status: engine.StatusModified, Additions: 2, Deletions: 1},
			{Path: "untracked.txt", Status: engine.StatusUntracked},
		}, files)
	})

	t.Run("diff failure keeps listing", func(t *testing.T) {
		f := newFake()
		f.StatusEntries = []git.StatusEntry{{Path: "mod.txt", Flags: git.WorktreeModified}}
		f.DiffErr = errors.New("diff exploded")

		files, err := newEngine(f).GetWorkingChanges(ctx, repoPath)
		require.NoError(t, err)
		require.Len(t, files, 1)
		require.Zero(t, files[0].Additions)
	})

	t.Run("unborn head skips line counts", func(t *testing.T) {
		f := testhelpers.NewFakeRepo(repoPath)
		f.StatusEntries = []git.StatusEntry{{Path: "new.txt", Flags: git.IndexNew}}

		files, err := newEngine(f).GetWorkingChanges(ctx, repoPath)
		require.NoError(t, err)
		require.Len(t, files, 1)
		require.Equal(t, engine.StatusAdded, files[0].Status)
		require.Empty(t, f.DiffCalls)
	})

	t.Run("working file contents reads disk", func(t *testing.T) {
		f := newFake()
		f.SetBlob(idC, "a.txt", []byte("old"), false)
		f.Worktree["a.txt"] = []byte("new")

		contents, err := newEngine(f).GetWorkingFileContents(ctx, repoPath, "a.txt")
		require.NoError(t, err)
		require.Equal(t, "old", *contents.OldContent)
		require.Equal(t, "new", *contents.NewContent)
	})

	t.Run("working file with a zero byte is binary", func(t *testing.T) {
		f := newFake()
		f.SetBlob(idC, "a.txt", []byte("old"), false)
		f.Worktree["a.txt"] = []byte("new\x00data")

		contents, err := newEngine(f).GetWorkingFileContents(ctx, repoPath, "a.txt")
		require.NoError(t, err)
		require.True(t, contents.IsBinary)
		require.Nil(t, contents.OldContent)
	})

	t.Run("deleted working file", func(t *testing.T) {
		f := newFake()
		f.SetBlob(idC, "a.txt", []byte("old"), false)

		contents, err := newEngine(f).GetWorkingFileContents(ctx, repoPath, "a.txt")
		require.NoError(t, err)
		require.Equal(t, "old", *contents.OldContent)
		require.Nil(t, contents.NewContent)
	})

	t.Run("working file diff", func(t *testing.T) {
		f := newFake()
		f.SetDiff(git.CommitPoint(idC), git.WorktreePoint(), git.Delta{NewPath: "a.txt", Kind: git.ChangeAdded,
			Hunks: []git.RawHunk{{NewStart: 1, NewLines: 1, Lines: []git.RawLine{{Origin: '+', Content: "a\n"}}}}})

		diff, err := newEngine(f).GetWorkingFileDiff(ctx, repoPath, "a.txt")
		require.NoError(t, err)
		require.Len(t, diff.Hunks, 1)
		require.Equal(t, 1, *diff.Hunks[0].Lines[0].NewLineNo)
	})
}

func TestBranches(t *testing.T) {
	ctx := context.Background()

	t.Run("orders current, local, remote", func(t *testing.T) {
		f := newFake()
		f.HeadState.Branch = "main"
		f.Locals = []git.Ref{{Name: "zeta", Target: idA}, {Name: "main", Target: idC}, {Name: "alpha", Target: idB}}
		f.Remotes = []git.Ref{{Name: "origin/main", Remote: true, Target: idC}, {Name: "origin/alpha", Remote: true}}

		branches, err := newEngine(f).ListBranches(ctx, repoPath)
		require.NoError(t, err)
		require.Equal(t, []engine.Branch{
			{Name: "main", IsCurrent: true, CommitID: idC},
			{Name: "alpha", CommitID: idB},
			{Name: "zeta", CommitID: idA},
			{Name: "origin/alpha", IsRemote: true},
			{Name: "origin/main", IsRemote: true, CommitID: idC},
		}, branches)
	})

	t.Run("detached head marks nothing current", func(t *testing.T) {
		f := newFake()
		f.HeadState = git.Head{CommitID: idB}
		f.Locals = []git.Ref{{Name: "main", Target: idC}}

		branches, err := newEngine(f).ListBranches(ctx, repoPath)
		require.NoError(t, err)
		require.False(t, branches[0].IsCurrent)

		current, err := newEngine(f).GetCurrentBranch(ctx, repoPath)
		require.NoError(t, err)
		require.Equal(t, idB, current)
	})

	t.Run("current branch name", func(t *testing.T) {
		current, err := newEngine(newFake()).GetCurrentBranch(ctx, repoPath)
		require.NoError(t, err)
		require.Equal(t, "main", current)
	})
}

func TestCheckoutBranch(t *testing.T) {
	ctx := context.Background()

	withBranches := func() *testhelpers.FakeRepo {
		f := newFake()
		f.Locals = []git.Ref{{Name: "main", Target: idC}, {Name: "other", Target: idA}}
		return f
	}

	t.Run("blocked by modifications", func(t *testing.T) {
		f := withBranches()
		f.StatusEntries = []git.StatusEntry{
			{Path: "file.txt", Flags: git.WorktreeModified},
			{Path: "new.txt", Flags: git.WorktreeNew},
		}

		err := newEngine(f).CheckoutBranch(ctx, repoPath, "other")
		require.ErrorIs(t, err, gserrors.ErrUncommittedChanges)
		require.Contains(t, err.Error(), "uncommitted changes")
		require.Contains(t, err.Error(), "file.txt")
		require.NotContains(t, err.Error(), "new.txt")
		require.Empty(t, f.HeadSetTo)
		require.Zero(t, f.ForceCheckouts)
	})

	t.Run("blocked by staged deletion", func(t *testing.T) {
		f := withBranches()
		f.StatusEntries = []git.StatusEntry{{Path: "file.txt", Flags: git.IndexDeleted}}

		err := newEngine(f).CheckoutBranch(ctx, repoPath, "other")
		require.ErrorIs(t, err, gserrors.ErrUncommittedChanges)
	})

	t.Run("new files do not block", func(t *testing.T) {
		f := withBranches()
		f.StatusEntries = []git.StatusEntry{
			{Path: "untracked.txt", Flags: git.WorktreeNew},
			{Path: "staged.txt", Flags: git.IndexNew},
		}

		require.NoError(t, newEngine(f).CheckoutBranch(ctx, repoPath, "other"))
		require.Equal(t, "other", f.HeadSetTo)
		require.Equal(t, 1, f.ForceCheckouts)
		require.Equal(t, []string{idC}, f.CheckoutPrevIDs)
	})

	t.Run("unborn head passes no previous commit", func(t *testing.T) {
		f := testhelpers.NewFakeRepo(repoPath)
		f.Locals = []git.Ref{{Name: "other", Target: idA}}

		require.NoError(t, newEngine(f).CheckoutBranch(ctx, repoPath, "other"))
		require.Equal(t, []string{""}, f.CheckoutPrevIDs)
	})

	t.Run("missing branch", func(t *testing.T) {
		f := withBranches()
		err := newEngine(f).CheckoutBranch(ctx, repoPath, "nope")
		require.ErrorIs(t, err, gserrors.ErrBranchNotFound)
		require.Empty(t, f.HeadSetTo)
	})

	t.Run("failed tree checkout is surfaced", func(t *testing.T) {
		f := withBranches()
		f.ForceCheckoutErr = errors.New("disk full")

		err := newEngine(f).CheckoutBranch(ctx, repoPath, "other")
		require.ErrorIs(t, err, gserrors.ErrCheckoutInconsistent)
		require.Contains(t, err.Error(), "disk full")
		require.Equal(t, "other", f.HeadSetTo)
	})
}

func TestValidateRepo(t *testing.T) {
	info, err := newEngine(newFake()).ValidateRepo(context.Background(), repoPath)
	require.NoError(t, err)
	require.Equal(t, &engine.RepoInfo{Path: "/repo", Name: "repo", CurrentBranch: "main"}, info)

	_, err = newEngine(newFake()).ValidateRepo(context.Background(), "/missing")
	require.ErrorIs(t, err, gserrors.ErrNotARepository)
}

func TestEngineIsStateless(t *testing.T) {
	f := newFake()
	opener := testhelpers.NewFakeOpener(f)
	e := engine.New(opener)

	_, err := e.GetCurrentBranch(context.Background(), repoPath)
	require.NoError(t, err)
	_, err = e.ListCommits(context.Background(), repoPath, "", 0)
	require.NoError(t, err)
	require.Equal(t, 2, opener.Opens)
}
