package git

import (
	"context"
	"errors"
	"time"
)

// ErrStopWalk can be returned from a Walk callback to end the walk early.
var ErrStopWalk = errors.New("stop walk")

// Opener opens repositories by path. Implementations return an error
// matching errors.ErrNotARepository when the path is not a repository.
type Opener interface {
	Open(path string) (Repository, error)
}

// Repository defines the backend operations used by the engine.
// This allows the engine to be used with both go-git and test doubles.
type Repository interface {
	// Repository info
	Root() string
	Head() (Head, error)

	// Commits and history
	ResolveRevision(rev string) (string, error)
	Commit(id string) (*CommitObject, error)
	Walk(ctx context.Context, fromID string, fn func(*CommitObject) error) error

	// Diffs and content
	Diff(ctx context.Context, from, to Point, opts DiffOptions) ([]Delta, error)
	ReadBlob(commitID, path string) (*Blob, error)
	ReadWorktreeFile(path string) ([]byte, bool, error)

	// Working tree state
	Status() ([]StatusEntry, error)

	// Branches
	LocalBranches() ([]Ref, error)
	RemoteBranches() ([]Ref, error)
	FindLocalBranch(name string) (*Ref, error)
	SetHead(branchName string) error
	ForceCheckoutHead(prevCommitID string) error
}

// Head describes what HEAD points at.
type Head struct {
	// Branch is the short branch name, empty when HEAD is detached
	Branch string
	// CommitID is the full hex id HEAD resolves to, empty when unborn
	CommitID string
	// Unborn is true when HEAD names a branch that has no commits yet
	Unborn bool
}

// Detached returns true if HEAD points directly at a commit.
func (h Head) Detached() bool {
	return h.Branch == "" && h.CommitID != ""
}

// Signature identifies the author of a commit.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// CommitObject is the backend's view of one commit.
type CommitObject struct {
	ID        string
	Message   string
	Author    *Signature
	Committer *Signature
	ParentIDs []string
}

// Ref is a branch reference.
type Ref struct {
	// Name is the short name: "main" for local, "origin/main" for remote branches
	Name   string
	Remote bool
	// Target is the full hex id of the tip commit, empty if it could not be resolved
	Target string
}

// PointKind identifies the kind of a comparison point.
type PointKind int

const (
	PointEmptyTree PointKind = iota
	PointCommit
	PointWorktree
)

// Point is one side of a comparison.
type Point struct {
	Kind     PointKind
	CommitID string
}

// EmptyTree returns the comparison point with no files.
func EmptyTree() Point {
	return Point{Kind: PointEmptyTree}
}

// CommitPoint returns the comparison point for a commit's tree.
func CommitPoint(id string) Point {
	return Point{Kind: PointCommit, CommitID: id}
}

// WorktreePoint returns the comparison point for the working tree and index.
func WorktreePoint() Point {
	return Point{Kind: PointWorktree}
}

func (p Point) String() string {
	switch p.Kind {
	case PointCommit:
		return p.CommitID
	case PointWorktree:
		return "worktree"
	default:
		return "empty tree"
	}
}

// ChangeKind is the backend's classification of a delta or status entry.
type ChangeKind int

const (
	ChangeUnmodified ChangeKind = iota
	ChangeAdded
	ChangeDeleted
	ChangeModified
	ChangeRenamed
	ChangeCopied
	ChangeTypeChange
	ChangeUntracked
	ChangeIgnored
	ChangeUnreadable
	ChangeConflicted
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeDeleted:
		return "deleted"
	case ChangeModified:
		return "modified"
	case ChangeRenamed:
		return "renamed"
	case ChangeCopied:
		return "copied"
	case ChangeTypeChange:
		return "typechange"
	case ChangeUntracked:
		return "untracked"
	case ChangeIgnored:
		return "ignored"
	case ChangeUnreadable:
		return "unreadable"
	case ChangeConflicted:
		return "conflicted"
	default:
		return "unmodified"
	}
}

// DiffOptions restricts and shapes a Diff call.
type DiffOptions struct {
	// Paths restricts the comparison to deltas touching one of these paths
	Paths []string
	// Patch requests hunks for every delta
	Patch bool
	// ContextLines is the number of unchanged lines around each hunk (default 3)
	ContextLines int
}

// Delta is one file's change within a comparison.
type Delta struct {
	OldPath string
	NewPath string
	Kind    ChangeKind
	Binary  bool
	Hunks   []RawHunk
	// PatchErr is set when hunks were requested but the patch could not be built
	PatchErr error
}

// Path returns the new path, or the old path for deletions.
func (d Delta) Path() string {
	if d.NewPath != "" {
		return d.NewPath
	}
	return d.OldPath
}

// RawHunk is one hunk as emitted by the backend.
type RawHunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Header   string
	Lines    []RawLine
}

// RawLine is one hunk line with its origin marker ('+', '-' or ' ').
// Content includes the trailing newline when the source line had one.
type RawLine struct {
	Origin  byte
	Content string
}

// Blob is a file's content resolved from the object store.
type Blob struct {
	Data   []byte
	Binary bool
}

// StatusFlags are the combined index and worktree change bits of a path.
type StatusFlags uint16

const (
	IndexNew StatusFlags = 1 << iota
	IndexModified
	IndexDeleted
	IndexRenamed
	IndexTypeChange
	WorktreeNew
	WorktreeModified
	WorktreeDeleted
	WorktreeRenamed
	WorktreeTypeChange
	Ignored
	Conflicted
)

// Has returns true if any of the given bits are set.
func (f StatusFlags) Has(bits StatusFlags) bool {
	return f&bits != 0
}

// StatusEntry is the status of one path.
type StatusEntry struct {
	Path  string
	Flags StatusFlags
}
