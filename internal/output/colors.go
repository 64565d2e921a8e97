package output

import "github.com/charmbracelet/lipgloss"

// ANSI palette shared by the formatters
var (
	colorAdded    = lipgloss.Color("2")
	colorDeleted  = lipgloss.Color("1")
	colorModified = lipgloss.Color("3")
	colorRenamed  = lipgloss.Color("5")
	colorCurrent  = lipgloss.Color("6")
	colorBranch   = lipgloss.Color("12")
	colorDim      = lipgloss.Color("8")
)

var (
	addedStyle    = lipgloss.NewStyle().Foreground(colorAdded)
	deletedStyle  = lipgloss.NewStyle().Foreground(colorDeleted)
	modifiedStyle = lipgloss.NewStyle().Foreground(colorModified)
	renamedStyle  = lipgloss.NewStyle().Foreground(colorRenamed)
	currentStyle  = lipgloss.NewStyle().Foreground(colorCurrent).Bold(true)
	branchStyle   = lipgloss.NewStyle().Foreground(colorBranch)
	dimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	hunkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
)

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return dimStyle.Render(text)
}

// ColorBranchName colors a branch name based on whether it's current
func ColorBranchName(branchName string, isCurrent bool) string {
	if isCurrent {
		return currentStyle.Render(branchName + " (current)")
	}
	return branchStyle.Render(branchName)
}
