package git

import (
	"bytes"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/utils/binary"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// worktreePatch is a single-file patch between a tree blob and a file on disk.
// It implements go-git's diff.Patch so it can go through the unified encoder.
type worktreePatch struct {
	from   fdiff.File
	to     fdiff.File
	binary bool
	chunks []fdiff.Chunk
}

func (p *worktreePatch) FilePatches() []fdiff.FilePatch {
	return []fdiff.FilePatch{p}
}

func (p *worktreePatch) Message() string {
	return ""
}

func (p *worktreePatch) IsBinary() bool {
	return p.binary
}

func (p *worktreePatch) Files() (fdiff.File, fdiff.File) {
	return p.from, p.to
}

func (p *worktreePatch) Chunks() []fdiff.Chunk {
	return p.chunks
}

type patchFile struct {
	path string
	mode filemode.FileMode
	hash plumbing.Hash
}

func (f patchFile) Hash() plumbing.Hash     { return f.hash }
func (f patchFile) Mode() filemode.FileMode { return f.mode }
func (f patchFile) Path() string            { return f.path }

type textChunk struct {
	content string
	op      fdiff.Operation
}

func (c textChunk) Content() string       { return c.content }
func (c textChunk) Type() fdiff.Operation { return c.op }

// newWorktreePatch builds the patch for one path. oldData is nil when the
// path is absent from the tree, newData is nil when it is absent on disk.
func newWorktreePatch(path string, oldData []byte, oldMode filemode.FileMode, oldBinary bool, newData []byte) (*worktreePatch, error) {
	p := &worktreePatch{binary: oldBinary}

	if oldData != nil {
		p.from = patchFile{
			path: path,
			mode: oldMode,
			hash: plumbing.ComputeHash(plumbing.BlobObject, oldData),
		}
	}

	if newData != nil {
		mode := filemode.Regular
		if oldData != nil {
			mode = oldMode
		}
		p.to = patchFile{
			path: path,
			mode: mode,
			hash: plumbing.ComputeHash(plumbing.BlobObject, newData),
		}

		newBinary, err := binary.IsBinary(bytes.NewReader(newData))
		if err != nil {
			return nil, err
		}
		p.binary = p.binary || newBinary
	}

	if !p.binary {
		p.chunks = lineChunks(string(oldData), string(newData))
	}
	return p, nil
}

// lineChunks computes a line-level diff the same way go-git does for tree patches
func lineChunks(src, dst string) []fdiff.Chunk {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	srcRunes, dstRunes, lines := dmp.DiffLinesToRunes(src, dst)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(srcRunes, dstRunes, false), lines)

	chunks := make([]fdiff.Chunk, 0, len(diffs))
	for _, d := range diffs {
		var op fdiff.Operation
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = fdiff.Add
		case diffmatchpatch.DiffDelete:
			op = fdiff.Delete
		default:
			op = fdiff.Equal
		}
		chunks = append(chunks, textChunk{content: d.Text, op: op})
	}
	return chunks
}
