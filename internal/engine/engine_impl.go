package engine

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"

	gserrors "gitscope.dev/gitscope/internal/errors"
	"gitscope.dev/gitscope/internal/git"
)

const (
	// DefaultCommitLimit caps ListCommits when no limit is given
	DefaultCommitLimit = 100
)

var commitIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{4,40}$`)

// engineImpl holds only call-independent settings; repositories are opened per call
type engineImpl struct {
	opener       git.Opener
	logger       *slog.Logger
	commitLimit  int
	contextLines int
}

// Option configures an engine
type Option func(*engineImpl)

// WithLogger sets the logger used for debug output and best-effort fallbacks
func WithLogger(logger *slog.Logger) Option {
	return func(e *engineImpl) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCommitLimit sets the default ListCommits cap
func WithCommitLimit(limit int) Option {
	return func(e *engineImpl) {
		if limit > 0 {
			e.commitLimit = limit
		}
	}
}

// WithContextLines sets the number of unchanged lines around each hunk
func WithContextLines(lines int) Option {
	return func(e *engineImpl) {
		if lines > 0 {
			e.contextLines = lines
		}
	}
}

// New creates an engine. A nil opener uses the go-git backend.
func New(opener git.Opener, opts ...Option) Engine {
	if opener == nil {
		opener = git.NewOpener()
	}

	e := &engineImpl{
		opener:       opener,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		commitLimit:  DefaultCommitLimit,
		contextLines: git.DefaultContextLines,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *engineImpl) open(repoPath string) (git.Repository, error) {
	repo, err := e.opener.Open(repoPath)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// ValidateRepo opens path and summarizes the repository
func (e *engineImpl) ValidateRepo(_ context.Context, path string) (*RepoInfo, error) {
	repo, err := e.open(path)
	if err != nil {
		return nil, err
	}

	current, err := currentBranchName(repo)
	if err != nil {
		return nil, err
	}

	root := repo.Root()
	return &RepoInfo{
		Path:          root,
		Name:          filepath.Base(root),
		CurrentBranch: current,
	}, nil
}

// validateCommitID rejects ids that cannot be hex object ids
func validateCommitID(id string) error {
	if !commitIDPattern.MatchString(id) {
		return gserrors.NewInvalidRevisionIDError(id)
	}
	return nil
}
