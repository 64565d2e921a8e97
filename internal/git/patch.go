package git

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
)

// DefaultContextLines is the number of unchanged lines shown around each hunk
const DefaultContextLines = fdiff.DefaultContextLines

// hunksFromPatch renders a patch in unified format and parses it back into hunks
func hunksFromPatch(patch fdiff.Patch, contextLines int) ([]RawHunk, error) {
	if contextLines <= 0 {
		contextLines = DefaultContextLines
	}

	var buf bytes.Buffer
	if err := fdiff.NewUnifiedEncoder(&buf, contextLines).Encode(patch); err != nil {
		return nil, fmt.Errorf("failed to encode patch: %w", err)
	}
	return ParseHunks(buf.String())
}

// ParseHunks parses unified diff output into hunks. Lines keep their origin
// marker and their trailing newline, if any.
func ParseHunks(raw string) ([]RawHunk, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	files, _, err := gitdiff.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse patch: %w", err)
	}

	var hunks []RawHunk
	for _, file := range files {
		for _, frag := range file.TextFragments {
			hunk := RawHunk{
				OldStart: int(frag.OldPosition),
				OldLines: int(frag.OldLines),
				NewStart: int(frag.NewPosition),
				NewLines: int(frag.NewLines),
				Header:   hunkHeader(frag),
				Lines:    make([]RawLine, 0, len(frag.Lines)),
			}
			for _, line := range frag.Lines {
				hunk.Lines = append(hunk.Lines, RawLine{
					Origin:  origin(line.Op),
					Content: line.Line,
				})
			}
			hunks = append(hunks, hunk)
		}
	}
	return hunks, nil
}

func origin(op gitdiff.LineOp) byte {
	switch op {
	case gitdiff.OpAdd:
		return '+'
	case gitdiff.OpDelete:
		return '-'
	default:
		return ' '
	}
}

func hunkHeader(frag *gitdiff.TextFragment) string {
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", frag.OldPosition, frag.OldLines, frag.NewPosition, frag.NewLines)
	if frag.Comment != "" {
		header += " " + frag.Comment
	}
	return header
}
