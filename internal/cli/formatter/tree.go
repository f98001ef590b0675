package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeNode is one line of a taxonomy tree.
type TreeNode struct {
	Title    string
	Level    int
	IsLast   bool
	Inactive bool
	// Badge is shown right-aligned, e.g. an item count on a category.
	Badge string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderTree renders nodes with box-drawing connectors. Level 0 nodes are
// roots. Badges line up in one column.
func RenderTree(nodes []TreeNode) string {
	if len(nodes) == 0 {
		return ""
	}

	contents := make([]string, len(nodes))
	width := 0
	// lastAt[l] records whether the most recent node at level l closed its
	// siblings, which decides between a pipe and a blank further down.
	lastAt := map[int]bool{}
	for i, n := range nodes {
		var prefix strings.Builder
		if n.Level > 0 {
			for l := 1; l < n.Level; l++ {
				if lastAt[l] {
					prefix.WriteString(treeBlank)
				} else {
					prefix.WriteString(treePipe)
				}
			}
			if n.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}
		lastAt[n.Level] = n.IsLast

		title := n.Title
		switch {
		case n.Inactive:
			title = Dim(title + " (inactive)")
		case n.Level == 0:
			title = StyleHeader.Render(title)
		case n.Badge != "":
			title = Bold(title)
		}
		contents[i] = StyleDim.Render(prefix.String()) + title
		if w := lipgloss.Width(contents[i]); w > width {
			width = w
		}
	}

	var b strings.Builder
	for i, n := range nodes {
		b.WriteString(contents[i])
		if n.Badge != "" {
			pad := width - lipgloss.Width(contents[i])
			b.WriteString(strings.Repeat(" ", pad) + "  " + StyleBlue.Render("[ "+n.Badge+" ]"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
