package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/go-git/go-git/v5/plumbing/filemode"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// Diff compares two points. The working tree may only appear on the new
// side. Renames are detected between trees but not against the working tree.
func (r *GoGitRepository) Diff(ctx context.Context, from, to Point, opts DiffOptions) ([]Delta, error) {
	if from.Kind == PointWorktree {
		return nil, fmt.Errorf("cannot diff from %s", from)
	}
	if to.Kind == PointWorktree {
		return r.diffWorktree(ctx, from, opts)
	}
	return r.diffTrees(ctx, from, to, opts)
}

func (r *GoGitRepository) diffTrees(ctx context.Context, from, to Point, opts DiffOptions) ([]Delta, error) {
	fromTree, err := r.treeAt(from)
	if err != nil {
		return nil, err
	}
	toTree, err := r.treeAt(to)
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTreeWithOptions(ctx, fromTree, toTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to diff %s..%s: %w", from, to, err)
	}

	deltas := make([]Delta, 0, len(changes))
	for _, change := range changes {
		if !touchesPaths(change.From.Name, change.To.Name, opts.Paths) {
			continue
		}

		delta, err := changeDelta(change)
		if err != nil {
			return nil, err
		}
		if opts.Patch {
			delta.Binary, delta.Hunks, delta.PatchErr = changeHunks(ctx, change, opts.ContextLines)
		}
		deltas = append(deltas, delta)
	}
	return deltas, nil
}

func changeDelta(change *object.Change) (Delta, error) {
	action, err := change.Action()
	if err != nil {
		return Delta{}, fmt.Errorf("failed to classify change: %w", err)
	}

	delta := Delta{
		OldPath: change.From.Name,
		NewPath: change.To.Name,
	}
	switch action {
	case merkletrie.Insert:
		delta.Kind = ChangeAdded
	case merkletrie.Delete:
		delta.Kind = ChangeDeleted
	default:
		switch {
		case change.From.Name != change.To.Name:
			delta.Kind = ChangeRenamed
		case modeClass(change.From.TreeEntry.Mode) != modeClass(change.To.TreeEntry.Mode):
			delta.Kind = ChangeTypeChange
		default:
			delta.Kind = ChangeModified
		}
	}
	return delta, nil
}

// modeClass groups regular and executable files together
func modeClass(mode filemode.FileMode) filemode.FileMode {
	if mode == filemode.Executable || mode == filemode.Deprecated {
		return filemode.Regular
	}
	return mode
}

func changeHunks(ctx context.Context, change *object.Change, contextLines int) (bool, []RawHunk, error) {
	binary, err := changeIsBinary(change)
	if err != nil {
		return false, nil, err
	}
	if binary {
		return true, nil, nil
	}

	patch, err := change.PatchContext(ctx)
	if err != nil {
		return false, nil, fmt.Errorf("failed to build patch: %w", err)
	}
	// Empty files and mode-only changes have no chunks, which the encoder
	// would render as a binary patch
	if !hasChunks(patch) {
		return false, nil, nil
	}

	hunks, err := hunksFromPatch(patch, contextLines)
	return false, hunks, err
}

// changeIsBinary sniffs the blob on each side of change, the same check ReadBlob uses
func changeIsBinary(change *object.Change) (bool, error) {
	from, to, err := change.Files()
	if err != nil {
		return false, fmt.Errorf("failed to read blobs: %w", err)
	}
	for _, f := range []*object.File{from, to} {
		if f == nil {
			continue
		}
		binary, err := f.IsBinary()
		if err != nil {
			return false, fmt.Errorf("failed to inspect %s: %w", f.Name, err)
		}
		if binary {
			return true, nil
		}
	}
	return false, nil
}

func hasChunks(patch fdiff.Patch) bool {
	for _, fp := range patch.FilePatches() {
		if len(fp.Chunks()) > 0 {
			return true
		}
	}
	return false
}

// diffWorktree compares a tree with the files on disk. Candidates are the
// paths git status reports plus any explicitly requested paths.
func (r *GoGitRepository) diffWorktree(ctx context.Context, from Point, opts DiffOptions) ([]Delta, error) {
	fromTree, err := r.treeAt(from)
	if err != nil {
		return nil, err
	}

	status, err := r.Status()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var candidates []string
	add := func(path string) {
		if seen[path] || !touchesPaths(path, path, opts.Paths) {
			return
		}
		seen[path] = true
		candidates = append(candidates, path)
	}
	for _, entry := range status {
		if entry.Flags.Has(Ignored) {
			continue
		}
		add(entry.Path)
	}
	for _, path := range opts.Paths {
		add(path)
	}
	sort.Strings(candidates)

	var deltas []Delta
	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		delta, ok, err := r.worktreeDelta(fromTree, path, opts)
		if err != nil {
			return nil, err
		}
		if ok {
			deltas = append(deltas, delta)
		}
	}
	return deltas, nil
}

func (r *GoGitRepository) worktreeDelta(tree *object.Tree, path string, opts DiffOptions) (Delta, bool, error) {
	var old *object.File
	if tree != nil {
		file, err := tree.File(path)
		switch {
		case errors.Is(err, object.ErrFileNotFound), errors.Is(err, object.ErrDirectoryNotFound):
		case err != nil:
			return Delta{}, false, fmt.Errorf("failed to look up %s: %w", path, err)
		default:
			old = file
		}
	}

	newData, exists, err := r.ReadWorktreeFile(path)
	if err != nil {
		return Delta{}, false, err
	}
	if old == nil && !exists {
		return Delta{}, false, nil
	}

	var oldData []byte
	if old != nil {
		oldData, err = fileData(old)
		if err != nil {
			return Delta{}, false, err
		}
	}

	delta := Delta{}
	switch {
	case old == nil:
		delta.Kind = ChangeAdded
		delta.NewPath = path
	case !exists:
		delta.Kind = ChangeDeleted
		delta.OldPath = path
	default:
		if string(oldData) == string(newData) {
			return Delta{}, false, nil
		}
		delta.Kind = ChangeModified
		delta.OldPath = path
		delta.NewPath = path
	}

	if !opts.Patch {
		return delta, true, nil
	}

	oldMode, oldBinary := filemode.Regular, false
	if old != nil {
		oldMode = old.Mode
		if oldBinary, err = old.IsBinary(); err != nil {
			delta.PatchErr = fmt.Errorf("failed to inspect %s: %w", path, err)
			return delta, true, nil
		}
	}
	if !exists {
		newData = nil
	} else if newData == nil {
		newData = []byte{}
	}

	patch, err := newWorktreePatch(path, oldData, oldMode, oldBinary, newData)
	if err != nil {
		delta.PatchErr = fmt.Errorf("failed to build patch for %s: %w", path, err)
		return delta, true, nil
	}
	delta.Binary = patch.binary
	if !patch.binary {
		delta.Hunks, delta.PatchErr = hunksFromPatch(patch, opts.ContextLines)
	}
	return delta, true, nil
}

func fileData(file *object.File) ([]byte, error) {
	reader, err := file.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// touchesPaths reports whether either side of a change is in paths. An empty
// filter matches everything.
func touchesPaths(oldPath, newPath string, paths []string) bool {
	if len(paths) == 0 {
		return true
	}
	for _, p := range paths {
		if p == oldPath || p == newPath {
			return true
		}
	}
	return false
}
