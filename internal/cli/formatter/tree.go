package formatter

import (
	"strings"

	"github.com/alexanderramin/jobwbs/internal/aggregate"
	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeSpace  = "   "
)

// treeNode is one line of the WBS tree: a service line, a task under it,
// or a subtask under the task.
type treeNode struct {
	title    string
	items    []*domain.LineItem
	children []*treeNode
}

func (n *treeNode) child(title string) *treeNode {
	for _, c := range n.children {
		if c.title == title {
			return c
		}
	}
	c := &treeNode{title: title}
	n.children = append(n.children, c)
	return c
}

// buildWBSTree groups items by service line, task and subtask, keeping the
// order in which each group first appears.
func buildWBSTree(items []*domain.LineItem) *treeNode {
	root := &treeNode{}
	for _, li := range items {
		sl := root.child(li.ServiceLine)
		task := sl.child(li.WBSTask)
		sl.items = append(sl.items, li)
		task.items = append(task.items, li)
		if strings.TrimSpace(li.WBSSubtask) != "" {
			sub := task.child(li.WBSSubtask)
			sub.items = append(sub.items, li)
		}
	}
	return root
}

type treeLine struct {
	content string
	badge   string
}

// FormatWBSTree renders items as a service line > task > subtask tree with
// the budgeted revenue of every branch right-aligned.
func FormatWBSTree(items []*domain.LineItem) string {
	if len(items) == 0 {
		return Dim("No WBS line items.")
	}

	var lines []treeLine
	var walk func(n *treeNode, prefix string, depth int)
	walk = func(n *treeNode, prefix string, depth int) {
		for i, c := range n.children {
			last := i == len(n.children)-1
			connector, indent := treeBranch, treePipe
			if last {
				connector, indent = treeCorner, treeSpace
			}

			title := Text(c.title)
			switch depth {
			case 0:
				title = StyleHeader.Render(c.title)
				connector, indent = "", ""
			case 1:
				title = StyleBold.Render(c.title)
			}

			revenue := aggregate.SumTotals(c.items).Revenue
			lines = append(lines, treeLine{
				content: prefix + connector + title,
				badge:   StyleBlue.Render(Money(revenue)),
			})
			walk(c, prefix+indent, depth+1)
		}
	}
	walk(buildWBSTree(items), "", 0)

	width := 0
	for _, l := range lines {
		if w := lipgloss.Width(l.content); w > width {
			width = w
		}
	}

	var b strings.Builder
	for _, l := range lines {
		pad := width - lipgloss.Width(l.content)
		b.WriteString(l.content + strings.Repeat(" ", pad) + "  " + l.badge + "\n")
	}
	return b.String()
}
