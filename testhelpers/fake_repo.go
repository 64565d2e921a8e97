package testhelpers

import (
	"context"
	"errors"
	"fmt"
	"time"

	gserrors "gitscope.dev/gitscope/internal/errors"
	"gitscope.dev/gitscope/internal/git"
)

// FakeRepo is an in-memory git.Repository for unit tests. Zero values
// describe an empty repository on an unborn main branch.
type FakeRepo struct {
	RootDir string

	// HeadState is what Head returns; HeadErr overrides it
	HeadState git.Head
	HeadErr   error

	// Commits maps full ids to commits; Revisions maps ref names to ids
	Commits   map[string]*git.CommitObject
	Revisions map[string]string

	// Diffs maps "from..to" (Point.String on both sides) to the deltas of that comparison
	Diffs   map[string][]git.Delta
	DiffErr error

	// Blobs maps commit id and path to content
	Blobs map[string]map[string]*git.Blob
	// Worktree maps paths to on-disk content
	Worktree map[string][]byte

	StatusEntries []git.StatusEntry
	StatusErr     error

	Locals  []git.Ref
	Remotes []git.Ref
	RefsErr error

	SetHeadErr       error
	ForceCheckoutErr error

	// Recorded calls; CheckoutPrevIDs holds the argument of each ForceCheckoutHead
	HeadSetTo       string
	ForceCheckouts  int
	CheckoutPrevIDs []string
	DiffCalls       []git.DiffOptions
}

// NewFakeRepo creates an empty fake repository rooted at dir
func NewFakeRepo(dir string) *FakeRepo {
	return &FakeRepo{
		RootDir:   dir,
		HeadState: git.Head{Branch: "main", Unborn: true},
		Commits:   make(map[string]*git.CommitObject),
		Revisions: make(map[string]string),
		Diffs:     make(map[string][]git.Delta),
		Blobs:     make(map[string]map[string]*git.Blob),
		Worktree:  make(map[string][]byte),
	}
}

// AddCommit registers a commit and moves HEAD's branch to it
func (f *FakeRepo) AddCommit(c *git.CommitObject) {
	f.Commits[c.ID] = c
	f.HeadState.CommitID = c.ID
	f.HeadState.Unborn = false
	f.Revisions["HEAD"] = c.ID
	if f.HeadState.Branch != "" {
		f.Revisions[f.HeadState.Branch] = c.ID
	}
}

// AddLinearHistory appends n commits, each the child of the previous HEAD,
// committed one minute apart from start. It returns their ids oldest first.
func (f *FakeRepo) AddLinearHistory(n int, start time.Time) []string {
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%040x", len(f.Commits)+1)
		sig := &git.Signature{Name: "Test User", Email: "test@example.com", When: start.Add(time.Duration(i) * time.Minute)}
		c := &git.CommitObject{ID: id, Message: fmt.Sprintf("commit %d\n", len(f.Commits)+1), Author: sig, Committer: sig}
		if f.HeadState.CommitID != "" {
			c.ParentIDs = []string{f.HeadState.CommitID}
		}
		f.AddCommit(c)
		ids = append(ids, id)
	}
	return ids
}

// SetBlob stores content for path in commitID
func (f *FakeRepo) SetBlob(commitID, path string, data []byte, binary bool) {
	if f.Blobs[commitID] == nil {
		f.Blobs[commitID] = make(map[string]*git.Blob)
	}
	f.Blobs[commitID][path] = &git.Blob{Data: data, Binary: binary}
}

// SetDiff stores the deltas returned for a comparison
func (f *FakeRepo) SetDiff(from, to git.Point, deltas ...git.Delta) {
	f.Diffs[from.String()+".."+to.String()] = deltas
}

func (f *FakeRepo) Root() string {
	return f.RootDir
}

func (f *FakeRepo) Head() (git.Head, error) {
	return f.HeadState, f.HeadErr
}

func (f *FakeRepo) ResolveRevision(rev string) (string, error) {
	if id, ok := f.Revisions[rev]; ok {
		return id, nil
	}
	if _, ok := f.Commits[rev]; ok {
		return rev, nil
	}
	return "", gserrors.NewRevisionResolutionError(rev, fmt.Errorf("reference not found"))
}

func (f *FakeRepo) Commit(id string) (*git.CommitObject, error) {
	if c, ok := f.Commits[id]; ok {
		return c, nil
	}
	return nil, gserrors.NewCommitNotFoundError(id, fmt.Errorf("object not found"))
}

// Walk follows first parents from fromID
func (f *FakeRepo) Walk(ctx context.Context, fromID string, fn func(*git.CommitObject) error) error {
	id := fromID
	for id != "" {
		if err := ctx.Err(); err != nil {
			return err
		}
		c, err := f.Commit(id)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			if errors.Is(err, git.ErrStopWalk) {
				return nil
			}
			return err
		}
		id = ""
		if len(c.ParentIDs) > 0 {
			id = c.ParentIDs[0]
		}
	}
	return nil
}

func (f *FakeRepo) Diff(_ context.Context, from, to git.Point, opts git.DiffOptions) ([]git.Delta, error) {
	f.DiffCalls = append(f.DiffCalls, opts)
	if f.DiffErr != nil {
		return nil, f.DiffErr
	}

	var result []git.Delta
	for _, d := range f.Diffs[from.String()+".."+to.String()] {
		if !matchesAny(d, opts.Paths) {
			continue
		}
		if !opts.Patch {
			d.Hunks = nil
			d.Binary = false
			d.PatchErr = nil
		}
		result = append(result, d)
	}
	return result, nil
}

func matchesAny(d git.Delta, paths []string) bool {
	if len(paths) == 0 {
		return true
	}
	for _, p := range paths {
		if p == d.OldPath || p == d.NewPath {
			return true
		}
	}
	return false
}

func (f *FakeRepo) ReadBlob(commitID, path string) (*git.Blob, error) {
	if _, ok := f.Commits[commitID]; !ok {
		return nil, gserrors.NewCommitNotFoundError(commitID, fmt.Errorf("object not found"))
	}
	return f.Blobs[commitID][path], nil
}

func (f *FakeRepo) ReadWorktreeFile(path string) ([]byte, bool, error) {
	data, ok := f.Worktree[path]
	return data, ok, nil
}

func (f *FakeRepo) Status() ([]git.StatusEntry, error) {
	return f.StatusEntries, f.StatusErr
}

func (f *FakeRepo) LocalBranches() ([]git.Ref, error) {
	return f.Locals, f.RefsErr
}

func (f *FakeRepo) RemoteBranches() ([]git.Ref, error) {
	return f.Remotes, f.RefsErr
}

func (f *FakeRepo) FindLocalBranch(name string) (*git.Ref, error) {
	for _, ref := range f.Locals {
		if ref.Name == name {
			r := ref
			return &r, nil
		}
	}
	return nil, nil
}

func (f *FakeRepo) SetHead(branchName string) error {
	if f.SetHeadErr != nil {
		return f.SetHeadErr
	}
	f.HeadSetTo = branchName
	f.HeadState.Branch = branchName
	return nil
}

func (f *FakeRepo) ForceCheckoutHead(prevCommitID string) error {
	f.ForceCheckouts++
	f.CheckoutPrevIDs = append(f.CheckoutPrevIDs, prevCommitID)
	return f.ForceCheckoutErr
}

// FakeOpener serves FakeRepos by path
type FakeOpener struct {
	Repos map[string]*FakeRepo
	Opens int
}

// NewFakeOpener creates an opener serving the given repositories by their RootDir
func NewFakeOpener(repos ...*FakeRepo) *FakeOpener {
	o := &FakeOpener{Repos: make(map[string]*FakeRepo)}
	for _, r := range repos {
		o.Repos[r.RootDir] = r
	}
	return o
}

func (o *FakeOpener) Open(path string) (git.Repository, error) {
	o.Opens++
	repo, ok := o.Repos[path]
	if !ok {
		return nil, gserrors.NewRepositoryError(path, fmt.Errorf("repository does not exist"))
	}
	return repo, nil
}
