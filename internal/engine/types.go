package engine

import (
	"encoding/json"
	"fmt"
)

// Commit is one historical revision as shown in a commit list
type Commit struct {
	ID        string `json:"id"`
	Message   string `json:"message"` // First line only
	Author    string `json:"author"`
	Email     string `json:"email"`
	Timestamp int64  `json:"timestamp"` // Author time, seconds since epoch
}

// FileStatus classifies a file's change
type FileStatus int

const (
	// StatusUnmodified is also the fallback for change kinds without a better mapping
	StatusUnmodified FileStatus = iota
	StatusAdded
	StatusModified
	StatusDeleted
	StatusRenamed
	StatusCopied
	StatusUntracked
)

var fileStatusNames = map[FileStatus]string{
	StatusUnmodified: "Unmodified",
	StatusAdded:      "Added",
	StatusModified:   "Modified",
	StatusDeleted:    "Deleted",
	StatusRenamed:    "Renamed",
	StatusCopied:     "Copied",
	StatusUntracked:  "Untracked",
}

func (s FileStatus) String() string {
	if name, ok := fileStatusNames[s]; ok {
		return name
	}
	return fileStatusNames[StatusUnmodified]
}

// MarshalJSON encodes the status by name
func (s FileStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a status name
func (s *FileStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for status, n := range fileStatusNames {
		if n == name {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown file status %q", name)
}

// ChangedFile is one file's change within a comparison
type ChangedFile struct {
	Path      string     `json:"path"`
	Status    FileStatus `json:"status"`
	Additions int        `json:"additions"`
	Deletions int        `json:"deletions"`
	OldPath   *string    `json:"old_path"` // Only set for renames
}

// LineType classifies a diff line
type LineType int

const (
	LineContext LineType = iota
	LineAddition
	LineDeletion
)

func (t LineType) String() string {
	switch t {
	case LineAddition:
		return "Addition"
	case LineDeletion:
		return "Deletion"
	default:
		return "Context"
	}
}

// MarshalJSON encodes the line type by name
func (t LineType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a line type name
func (t *LineType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "Context":
		*t = LineContext
	case "Addition":
		*t = LineAddition
	case "Deletion":
		*t = LineDeletion
	default:
		return fmt.Errorf("unknown line type %q", name)
	}
	return nil
}

// DiffLine is one line inside a hunk. Content has no marker and keeps its
// trailing newline, if any.
type DiffLine struct {
	Content   string   `json:"content"`
	LineType  LineType `json:"line_type"`
	OldLineNo *int     `json:"old_line_no"` // nil for additions
	NewLineNo *int     `json:"new_line_no"` // nil for deletions
}

// DiffHunk is one contiguous change region
type DiffHunk struct {
	OldStart int        `json:"old_start"`
	OldLines int        `json:"old_lines"`
	NewStart int        `json:"new_start"`
	NewLines int        `json:"new_lines"`
	Lines    []DiffLine `json:"lines"`
}

// FileDiff is the full diff of one file in one comparison. Binary diffs
// never carry hunks.
type FileDiff struct {
	OldPath  *string    `json:"old_path"`
	NewPath  string     `json:"new_path"`
	Hunks    []DiffHunk `json:"hunks"`
	IsBinary bool       `json:"is_binary"`
}

// FileContents is the before and after text of one file. A nil side means
// the file does not exist at that point; both are nil for binary files.
type FileContents struct {
	OldContent *string `json:"old_content"`
	NewContent *string `json:"new_content"`
	IsBinary   bool    `json:"is_binary"`
}

// Branch is one local or remote-tracking branch
type Branch struct {
	Name      string `json:"name"`
	IsCurrent bool   `json:"is_current"`
	IsRemote  bool   `json:"is_remote"`
	CommitID  string `json:"commit_id"` // Empty if the tip could not be resolved
}

// RepoInfo is a validated repository summary
type RepoInfo struct {
	Path          string `json:"path"`
	Name          string `json:"name"`
	CurrentBranch string `json:"current_branch"`
}
