package engine

import (
	"context"
	"sort"

	"github.com/samber/lo"

	gserrors "gitscope.dev/gitscope/internal/errors"
	"gitscope.dev/gitscope/internal/git"
)

// GetCurrentBranch returns the branch HEAD points at, or the commit id when detached
func (e *engineImpl) GetCurrentBranch(_ context.Context, repoPath string) (string, error) {
	repo, err := e.open(repoPath)
	if err != nil {
		return "", err
	}
	return currentBranchName(repo)
}

func currentBranchName(repo git.Repository) (string, error) {
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	if head.Detached() {
		return head.CommitID, nil
	}
	return head.Branch, nil
}

// ListBranches returns the current branch first, then local and then remote
// branches, each group sorted by name
func (e *engineImpl) ListBranches(_ context.Context, repoPath string) ([]Branch, error) {
	repo, err := e.open(repoPath)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, err
	}
	locals, err := repo.LocalBranches()
	if err != nil {
		return nil, err
	}
	remotes, err := repo.RemoteBranches()
	if err != nil {
		return nil, err
	}

	branches := lo.Map(locals, func(ref git.Ref, _ int) Branch {
		return Branch{
			Name:      ref.Name,
			IsCurrent: !head.Detached() && ref.Name == head.Branch,
			CommitID:  ref.Target,
		}
	})
	branches = append(branches, lo.Map(remotes, func(ref git.Ref, _ int) Branch {
		return Branch{
			Name:     ref.Name,
			IsRemote: true,
			CommitID: ref.Target,
		}
	})...)

	for _, b := range branches {
		if b.CommitID == "" {
			e.logger.Debug("branch tip not resolvable", "branch", b.Name)
		}
	}

	sortBranches(branches)
	return branches, nil
}

func sortBranches(branches []Branch) {
	group := func(b Branch) int {
		switch {
		case b.IsCurrent:
			return 0
		case !b.IsRemote:
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(branches, func(i, j int) bool {
		gi, gj := group(branches[i]), group(branches[j])
		if gi != gj {
			return gi < gj
		}
		return branches[i].Name < branches[j].Name
	})
}

// CheckoutBranch switches to a local branch. It refuses when tracked files
// have uncommitted modifications or deletions, then points HEAD at the
// branch and force-overwrites the index and working tree.
func (e *engineImpl) CheckoutBranch(_ context.Context, repoPath, branchName string) error {
	repo, err := e.open(repoPath)
	if err != nil {
		return err
	}

	entries, err := repo.Status()
	if err != nil {
		return err
	}
	if blocking := blockingPaths(entries); len(blocking) > 0 {
		return gserrors.NewUncommittedChangesError(branchName, blocking)
	}

	if branchName == "" {
		return gserrors.NewBranchNotFoundError(branchName)
	}
	ref, err := repo.FindLocalBranch(branchName)
	if err != nil {
		return err
	}
	if ref == nil {
		return gserrors.NewBranchNotFoundError(branchName)
	}

	prev, err := repo.Head()
	if err != nil {
		return err
	}
	if err := repo.SetHead(branchName); err != nil {
		return err
	}
	// HEAD has moved; a failure from here on is not rolled back
	if err := repo.ForceCheckoutHead(prev.CommitID); err != nil {
		return gserrors.NewCheckoutError(branchName, err)
	}

	e.logger.Debug("checked out branch", "repo", repoPath, "branch", branchName)
	return nil
}
