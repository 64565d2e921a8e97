// Package scenario provides a high-level test scenario that combines a real
// repository with an Engine to give integration tests a terse API.
package scenario

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gitscope.dev/gitscope/internal/engine"
	"gitscope.dev/gitscope/testhelpers"
)

// Scenario combines a repository fixture with an Engine.
type Scenario struct {
	T       *testing.T
	Scene   *testhelpers.Scene
	Engine  engine.Engine
	Context context.Context

	// commits records ids by message, for tests that refer to them by name
	commits map[string]string
	clock   time.Time
}

// NewScenario creates a scenario on a fresh repository under t.TempDir.
// Safe for parallel tests.
func NewScenario(t *testing.T, setup testhelpers.SceneSetup) *Scenario {
	t.Helper()

	return &Scenario{
		T:       t,
		Scene:   testhelpers.NewRepo(t, setup),
		Engine:  engine.New(nil),
		Context: context.Background(),
		commits: make(map[string]string),
		clock:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Dir returns the repository path.
func (s *Scenario) Dir() string {
	return s.Scene.Dir
}

// Write writes a file without committing it.
func (s *Scenario) Write(path, content string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.WriteFile(path, content))
	return s
}

// WriteBytes writes raw bytes without committing them.
func (s *Scenario) WriteBytes(path string, content []byte) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.WriteFileBytes(path, content))
	return s
}

// Delete removes a file from disk.
func (s *Scenario) Delete(path string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.DeleteFile(path))
	return s
}

// Stage adds paths to the index.
func (s *Scenario) Stage(paths ...string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.Stage(paths...))
	return s
}

// Commit stages everything and commits it one minute after the previous
// scenario commit, so committer times are strictly increasing.
func (s *Scenario) Commit(message string) *Scenario {
	s.T.Helper()
	s.clock = s.clock.Add(time.Minute)
	require.NoError(s.T, s.Scene.Repo.CommitAllAt(message, s.clock))
	s.commits[message] = testhelpers.Must(s.Scene.Repo.GetCurrentSHA())
	return s
}

// CommitFile writes one file and commits everything.
func (s *Scenario) CommitFile(path, content, message string) *Scenario {
	s.T.Helper()
	return s.Write(path, content).Commit(message)
}

// ID returns the id of the commit created with message.
func (s *Scenario) ID(message string) string {
	s.T.Helper()
	id, ok := s.commits[message]
	require.True(s.T, ok, "no commit with message %q", message)
	return id
}

// CreateBranch creates and checks out a new branch.
func (s *Scenario) CreateBranch(name string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.CreateAndCheckoutBranch(name))
	return s
}

// Checkout checks out a branch with the git binary.
func (s *Scenario) Checkout(branch string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.CheckoutBranch(branch))
	return s
}

// RunGit runs a git command in the scenario's repository.
func (s *Scenario) RunGit(args ...string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.RunGitCommand(args...))
	return s
}
