package formatter

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/prodline/internal/domain"
)

// FormatTaxonomy renders every branch as a tree, marking inactive names.
func FormatTaxonomy(tax domain.Taxonomy, flags domain.ActiveFlags) string {
	var nodes []TreeNode
	for _, key := range domain.AllBranches {
		nodes = append(nodes, TreeNode{Title: string(key)})

		switch br := tax[key].(type) {
		case domain.FlatBranch:
			nodes = appendLeaves(nodes, 1, br.Items, flags)
		case domain.CategoryBranch:
			for i, c := range br.Categories {
				nodes = append(nodes, TreeNode{
					Title: c.Name, Level: 1, IsLast: i == len(br.Categories)-1,
					Badge: plural(len(c.Items), "item"),
				})
				nodes = appendLeaves(nodes, 2, c.Items, flags)
			}
		case domain.MachineBranch:
			for i, m := range br.Machines {
				nodes = append(nodes, TreeNode{
					Title: m.Name, Level: 1, IsLast: i == len(br.Machines)-1,
					Badge: plural(len(m.Parts), "part"),
				})
				nodes = appendLeaves(nodes, 2, m.Parts, flags)
			}
		}
	}
	return RenderTree(nodes)
}

func appendLeaves(nodes []TreeNode, level int, names []string, flags domain.ActiveFlags) []TreeNode {
	for i, name := range names {
		nodes = append(nodes, TreeNode{
			Title:    name,
			Level:    level,
			IsLast:   i == len(names)-1,
			Inactive: !flags.IsActive(name),
		})
	}
	return nodes
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// FormatTargets renders one stored target map in name order.
func FormatTargets(title string, m domain.TargetMap) string {
	if len(m) == 0 {
		return RenderBox(title, Dim("No targets set."))
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	rows := make([][]string, 0, len(names))
	for _, n := range names {
		rows = append(rows, []string{n, itoa(m[n])})
	}
	body := RenderTable([]string{"MODEL", "QUANTITY"}, rows, AlignRight(1), WithFooter("Total", itoa(m.Total())))
	return RenderBox(title, body)
}
