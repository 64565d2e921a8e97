package engine

import (
	"context"
	"strings"

	"gitscope.dev/gitscope/internal/git"
)

const unknownAuthor = "Unknown"

// ListCommits walks history reachable from startRef, newest first, and stops at the limit
func (e *engineImpl) ListCommits(ctx context.Context, repoPath, startRef string, limit int) ([]Commit, error) {
	repo, err := e.open(repoPath)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = e.commitLimit
	}
	if startRef == "" {
		startRef = "HEAD"
	}

	from, err := repo.ResolveRevision(startRef)
	if err != nil {
		return nil, err
	}

	commits := make([]Commit, 0, min(limit, e.commitLimit))
	err = repo.Walk(ctx, from, func(c *git.CommitObject) error {
		commits = append(commits, toCommit(c))
		if len(commits) >= limit {
			return git.ErrStopWalk
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("listed commits", "repo", repoPath, "from", startRef, "count", len(commits))
	return commits, nil
}

func toCommit(c *git.CommitObject) Commit {
	commit := Commit{
		ID:      c.ID,
		Message: firstLine(c.Message),
		Author:  unknownAuthor,
	}
	switch {
	case c.Author != nil:
		commit.Author = c.Author.Name
		commit.Email = c.Author.Email
		commit.Timestamp = c.Author.When.Unix()
	case c.Committer != nil:
		commit.Timestamp = c.Committer.When.Unix()
	}
	return commit
}

func firstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimSuffix(line, "\r")
}
