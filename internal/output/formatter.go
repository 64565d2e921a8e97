package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/aquilax/truncate"
	"github.com/dustin/go-humanize"
	"github.com/gertd/go-pluralize"

	"gitscope.dev/gitscope/internal/engine"
)

// MaxSubjectWidth is where commit subjects are cut in one-line listings
const MaxSubjectWidth = 72

var plural = pluralize.NewClient()

// ShortID abbreviates a commit id for display
func ShortID(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}

// FormatCommit renders one commit as a single log line
func FormatCommit(c engine.Commit, now time.Time) string {
	when := humanize.RelTime(time.Unix(c.Timestamp, 0), now, "ago", "from now")
	subject := truncate.Truncate(c.Message, MaxSubjectWidth, "...", truncate.PositionEnd)
	return fmt.Sprintf("%s %s %s",
		modifiedStyle.Render(ShortID(c.ID)),
		subject,
		ColorDim(fmt.Sprintf("(%s, %s)", c.Author, when)),
	)
}

// FormatCommits renders a commit list, one commit per line
func FormatCommits(commits []engine.Commit, now time.Time) string {
	var b strings.Builder
	for _, c := range commits {
		b.WriteString(FormatCommit(c, now))
		b.WriteByte('\n')
	}
	return b.String()
}

func statusLetter(status engine.FileStatus) string {
	switch status {
	case engine.StatusAdded:
		return addedStyle.Render("A")
	case engine.StatusDeleted:
		return deletedStyle.Render("D")
	case engine.StatusModified:
		return modifiedStyle.Render("M")
	case engine.StatusRenamed:
		return renamedStyle.Render("R")
	case engine.StatusCopied:
		return renamedStyle.Render("C")
	case engine.StatusUntracked:
		return addedStyle.Render("?")
	default:
		return " "
	}
}

// FormatChangedFile renders one changed file with its line stats
func FormatChangedFile(f engine.ChangedFile) string {
	path := f.Path
	if f.OldPath != nil {
		path = *f.OldPath + " → " + f.Path
	}
	return fmt.Sprintf("%s %s %s %s",
		statusLetter(f.Status),
		path,
		addedStyle.Render(fmt.Sprintf("+%d", f.Additions)),
		deletedStyle.Render(fmt.Sprintf("-%d", f.Deletions)),
	)
}

// FormatChangedFiles renders a file list followed by a totals line
func FormatChangedFiles(files []engine.ChangedFile) string {
	if len(files) == 0 {
		return ColorDim("No changes") + "\n"
	}

	var b strings.Builder
	additions, deletions := 0, 0
	for _, f := range files {
		b.WriteString(FormatChangedFile(f))
		b.WriteByte('\n')
		additions += f.Additions
		deletions += f.Deletions
	}
	b.WriteString(ColorDim(fmt.Sprintf("%s changed, %s, %s",
		plural.Pluralize("file", len(files), true),
		plural.Pluralize("insertion", additions, true),
		plural.Pluralize("deletion", deletions, true),
	)))
	b.WriteByte('\n')
	return b.String()
}

// FormatFileDiff renders a file diff in unified style
func FormatFileDiff(d engine.FileDiff) string {
	var b strings.Builder

	oldPath := d.NewPath
	if d.OldPath != nil {
		oldPath = *d.OldPath
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("--- %s\n+++ %s", oldPath, d.NewPath)))
	b.WriteByte('\n')

	if d.IsBinary {
		b.WriteString(ColorDim("Binary file differs"))
		b.WriteByte('\n')
		return b.String()
	}

	for _, h := range d.Hunks {
		b.WriteString(hunkStyle.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)))
		b.WriteByte('\n')
		for _, l := range h.Lines {
			content := strings.TrimSuffix(l.Content, "\n")
			switch l.LineType {
			case engine.LineAddition:
				b.WriteString(addedStyle.Render("+" + content))
			case engine.LineDeletion:
				b.WriteString(deletedStyle.Render("-" + content))
			default:
				b.WriteString(" " + content)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FormatFileContents renders the before and after sides of a file
func FormatFileContents(c engine.FileContents) string {
	if c.IsBinary {
		return ColorDim("Binary file") + "\n"
	}

	var b strings.Builder
	side := func(label string, content *string) {
		b.WriteString(headerStyle.Render(label))
		b.WriteByte('\n')
		if content == nil {
			b.WriteString(ColorDim("(absent)"))
			b.WriteByte('\n')
			return
		}
		b.WriteString(*content)
		if *content != "" && !strings.HasSuffix(*content, "\n") {
			b.WriteByte('\n')
		}
	}
	side("=== before", c.OldContent)
	side("=== after", c.NewContent)
	return b.String()
}

// FormatBranch renders one branch line
func FormatBranch(br engine.Branch) string {
	marker := "  "
	if br.IsCurrent {
		marker = "* "
	}
	name := ColorBranchName(br.Name, br.IsCurrent)
	if br.IsRemote {
		name = ColorDim(br.Name)
	}
	return marker + name + " " + ColorDim(ShortID(br.CommitID))
}

// FormatBranches renders a branch list
func FormatBranches(branches []engine.Branch) string {
	var b strings.Builder
	for _, br := range branches {
		b.WriteString(FormatBranch(br))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatRepoInfo renders a validated repository summary
func FormatRepoInfo(info engine.RepoInfo) string {
	return fmt.Sprintf("%s %s\n%s\n", headerStyle.Render(info.Name), ColorBranchName(info.CurrentBranch, true), ColorDim(info.Path))
}
