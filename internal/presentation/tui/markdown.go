package tui

import (
	"fmt"
	"strings"

	"github.com/partstack/bomtree/pkg/domain"
)

// Outline renders an assembly tree as a markdown bullet list, one node per
// line, ready for NewRenderer or plain output.
func Outline(root *domain.TreeNode, metrics domain.Metrics) string {
	var sb strings.Builder

	if root == nil {
		return ""
	}

	sb.WriteString(fmt.Sprintf("# %s\n\n", root.Part.Name))
	if root.Part.IPN != "" {
		sb.WriteString(fmt.Sprintf("IPN `%s`\n\n", root.Part.IPN))
	}

	for _, child := range root.Children {
		outlineNode(&sb, child, 0)
	}
	if len(root.Children) == 0 {
		sb.WriteString("_No bill of materials lines._\n")
	}

	sb.WriteString(fmt.Sprintf("\nDepth %d, %d nodes.\n", metrics.MaxDepth, metrics.TotalNodes))
	return sb.String()
}

func outlineNode(sb *strings.Builder, node *domain.TreeNode, indent int) {
	prefix := strings.Repeat("  ", indent)

	line := fmt.Sprintf("%s- **%s**", prefix, node.Part.Name)
	if node.Part.IPN != "" {
		line += fmt.Sprintf(" `%s`", node.Part.IPN)
	}
	if node.Edge != nil {
		if node.Edge.Quantity != nil {
			line += fmt.Sprintf(" x%s", node.Edge.Quantity.String())
		}
		if node.Edge.Reference != "" {
			line += fmt.Sprintf(" (%s)", node.Edge.Reference)
		}
	}
	if node.Cycle {
		line += " *(cycle)*"
	}
	sb.WriteString(line + "\n")

	if node.Edge != nil {
		for _, sub := range node.Edge.Substitutes {
			sb.WriteString(fmt.Sprintf("%s  - substitute: %s\n", prefix, sub.Name))
		}
	}

	for _, child := range node.Children {
		outlineNode(sb, child, indent+1)
	}
}
