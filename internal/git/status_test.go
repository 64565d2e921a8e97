package git_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitscope.dev/gitscope/internal/git"
	"gitscope.dev/gitscope/testhelpers"
)

func TestStatus(t *testing.T) {
	scene := testhelpers.NewRepo(t, func(s *testhelpers.Scene) error {
		if err := s.Repo.WriteFile("modified.txt", "a\n"); err != nil {
			return err
		}
		if err := s.Repo.WriteFile("deleted.txt", "a\n"); err != nil {
			return err
		}
		return s.Repo.CommitAll("initial")
	})
	require.NoError(t, scene.Repo.WriteFile("modified.txt", "b\n"))
	require.NoError(t, scene.Repo.DeleteFile("deleted.txt"))
	require.NoError(t, scene.Repo.WriteFile("staged.txt", "s\n"))
	require.NoError(t, scene.Repo.Stage("staged.txt"))
	require.NoError(t, scene.Repo.WriteFile("untracked.txt", "u\n"))

	entries, err := openRepo(t, scene.Dir).Status()
	require.NoError(t, err)

	flags := map[string]git.StatusFlags{}
	var paths []string
	for _, e := range entries {
		flags[e.Path] = e.Flags
		paths = append(paths, e.Path)
	}
	require.Equal(t, []string{"deleted.txt", "modified.txt", "staged.txt", "untracked.txt"}, paths)

	require.True(t, flags["modified.txt"].Has(git.WorktreeModified))
	require.True(t, flags["deleted.txt"].Has(git.WorktreeDeleted))
	require.True(t, flags["staged.txt"].Has(git.IndexNew))
	require.True(t, flags["untracked.txt"].Has(git.WorktreeNew))
	require.False(t, flags["untracked.txt"].Has(git.IndexNew))
}
