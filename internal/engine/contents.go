package engine

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/go-enry/go-enry/v2"

	gserrors "gitscope.dev/gitscope/internal/errors"
	"gitscope.dev/gitscope/internal/git"
)

// GetFileContents returns a file as it was in the commit's first parent and in the commit
func (e *engineImpl) GetFileContents(_ context.Context, repoPath, commitID, filePath string) (*FileContents, error) {
	repo, err := e.open(repoPath)
	if err != nil {
		return nil, err
	}

	from, to, err := commitComparison(repo, commitID)
	if err != nil {
		return nil, err
	}
	return e.contents(repo, from, to, filePath)
}

// GetCommitRangeFileContents returns a file as it was before the oldest and after the newest commit
func (e *engineImpl) GetCommitRangeFileContents(_ context.Context, repoPath string, commitIDs []string, filePath string) (*FileContents, error) {
	repo, err := e.open(repoPath)
	if err != nil {
		return nil, err
	}

	from, to, err := rangeComparison(repo, commitIDs)
	if err != nil {
		return nil, err
	}
	return e.contents(repo, from, to, filePath)
}

// contentSide is one point's view of a file
type contentSide struct {
	data    []byte
	present bool
	binary  bool
}

func (e *engineImpl) contents(repo git.Repository, before, after git.Point, filePath string) (*FileContents, error) {
	oldSide, err := resolveSide(repo, before, filePath)
	if err != nil {
		return nil, err
	}
	newSide, err := resolveSide(repo, after, filePath)
	if err != nil {
		return nil, err
	}

	if !oldSide.present && !newSide.present {
		return nil, gserrors.NewFileNotFoundError(filePath)
	}
	// Binary on either side hides both
	if oldSide.binary || newSide.binary {
		return &FileContents{IsBinary: true}, nil
	}

	result := &FileContents{}
	if result.OldContent, err = decodeText(oldSide, filePath); err != nil {
		return nil, err
	}
	if result.NewContent, err = decodeText(newSide, filePath); err != nil {
		return nil, err
	}
	return result, nil
}

// resolveSide reads path at one comparison point. A missing path is not an error.
func resolveSide(repo git.Repository, p git.Point, filePath string) (contentSide, error) {
	switch p.Kind {
	case git.PointCommit:
		blob, err := repo.ReadBlob(p.CommitID, filePath)
		if err != nil {
			return contentSide{}, err
		}
		if blob == nil {
			return contentSide{}, nil
		}
		return contentSide{data: blob.Data, present: true, binary: blob.Binary}, nil

	case git.PointWorktree:
		data, ok, err := repo.ReadWorktreeFile(filePath)
		if err != nil {
			return contentSide{}, err
		}
		if !ok {
			return contentSide{}, nil
		}
		// A zero byte in the first 8000 bytes marks binary, as git does
		return contentSide{data: data, present: true, binary: enry.IsBinary(data)}, nil

	case git.PointEmptyTree:
		return contentSide{}, nil

	default:
		return contentSide{}, fmt.Errorf("unknown comparison point %s", p)
	}
}

func decodeText(side contentSide, filePath string) (*string, error) {
	if !side.present {
		return nil, nil
	}
	if !utf8.Valid(side.data) {
		return nil, gserrors.NewNonUTF8ContentError(filePath)
	}
	text := string(side.data)
	return &text, nil
}
