package engine

import (
	"context"
)

// HistoryReader enumerates commit history
type HistoryReader interface {
	// ListCommits walks history from startRef (HEAD when empty), newest first.
	// A limit of zero or less uses the configured default.
	ListCommits(ctx context.Context, repoPath, startRef string, limit int) ([]Commit, error)
}

// DiffReader computes changed-file sets and per-file hunks for commits and commit ranges
type DiffReader interface {
	GetCommitFiles(ctx context.Context, repoPath, commitID string) ([]ChangedFile, error)
	GetCommitRangeFiles(ctx context.Context, repoPath string, commitIDs []string) ([]ChangedFile, error)
	GetFileDiff(ctx context.Context, repoPath, commitID, filePath string) (*FileDiff, error)
	GetCommitRangeFileDiff(ctx context.Context, repoPath string, commitIDs []string, filePath string) (*FileDiff, error)
}

// ContentReader reconstructs before and after file contents
type ContentReader interface {
	GetFileContents(ctx context.Context, repoPath, commitID, filePath string) (*FileContents, error)
	GetCommitRangeFileContents(ctx context.Context, repoPath string, commitIDs []string, filePath string) (*FileContents, error)
}

// WorkingTreeReader inspects uncommitted changes against HEAD
type WorkingTreeReader interface {
	GetWorkingChanges(ctx context.Context, repoPath string) ([]ChangedFile, error)
	GetWorkingFileDiff(ctx context.Context, repoPath, filePath string) (*FileDiff, error)
	GetWorkingFileContents(ctx context.Context, repoPath, filePath string) (*FileContents, error)
}

// BranchManager lists branches and switches between them
// Concurrent checkouts against the same working tree must be serialized by the caller
type BranchManager interface {
	// GetCurrentBranch returns the branch name, or the full commit id when HEAD is detached
	GetCurrentBranch(ctx context.Context, repoPath string) (string, error)
	ListBranches(ctx context.Context, repoPath string) ([]Branch, error)
	CheckoutBranch(ctx context.Context, repoPath, branchName string) error
}

// RepoValidator checks that a path opens as a repository
type RepoValidator interface {
	ValidateRepo(ctx context.Context, path string) (*RepoInfo, error)
}

// Engine is the full set of repository operations.
// Safe for concurrent use; each call opens its own repository handle.
type Engine interface {
	HistoryReader
	DiffReader
	ContentReader
	WorkingTreeReader
	BranchManager
	RepoValidator
}
