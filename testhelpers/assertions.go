// Package testhelpers provides testing utilities for gitscope, including a
// scene system, Git repository helpers, and custom assertions.
package testhelpers

import (
	"os/exec"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. Use it in test setup where errors are not
// expected.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectBranches asserts that the repository has exactly the expected local branches.
func ExpectBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	cmd := exec.Command("git", "-C", repo.Dir,
		"for-each-ref", "refs/heads/", "--format=%(refname:short)")
	output, err := cmd.Output()
	require.NoError(t, err, "Failed to list branches")

	filtered := []string{}
	for _, b := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if b = strings.TrimSpace(b); b != "" {
			filtered = append(filtered, b)
		}
	}

	sort.Strings(filtered)
	sort.Strings(expected)

	require.Equal(t, expected, filtered, "Branches do not match")
}

// ExpectCurrentBranch asserts the branch HEAD points at.
func ExpectCurrentBranch(t *testing.T, repo *GitRepo, expected string) {
	t.Helper()

	branch, err := repo.CurrentBranchName()
	require.NoError(t, err)
	require.Equal(t, expected, branch, "Current branch does not match")
}

// ExpectFileContent asserts the on-disk content of a path in the working tree.
func ExpectFileContent(t *testing.T, repo *GitRepo, path, expected string) {
	t.Helper()

	content, err := repo.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, expected, content, "Content of %s does not match", path)
}

// ExpectCleanWorktree asserts that git status reports no tracked changes.
func ExpectCleanWorktree(t *testing.T, repo *GitRepo) {
	t.Helper()

	output, err := repo.RunGitCommandAndGetOutput("status", "--porcelain", "--untracked-files=no")
	require.NoError(t, err)
	require.Empty(t, output, "Working tree has tracked changes")
}
