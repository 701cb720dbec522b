package graph

import (
	"fmt"
	"strings"

	"github.com/partstack/bomtree/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart syntax string from an
// assembly tree. It applies semantic styling:
// - Assembly: [[Subroutine]]
// - Component: [Rectangle]
// - Cycle back-reference: dotted arrow into a styled node
// Edge labels carry the line quantity when one is set.
func GenerateMermaid(root *domain.TreeNode) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	if root == nil {
		return sb.String()
	}

	w := &mermaidWriter{sb: &sb, seq: make(map[int]int)}
	w.node(root, "")

	sb.WriteString("\n    classDef cycle fill:#ffebee,stroke:#c62828,stroke-width:2px,color:#000;\n")
	for _, id := range w.cycles {
		sb.WriteString(fmt.Sprintf("    class %s cycle;\n", id))
	}

	return sb.String()
}

type mermaidWriter struct {
	sb *strings.Builder
	// seq counts appearances per part so repeated parts get distinct
	// Mermaid identifiers.
	seq    map[int]int
	cycles []string
}

func (w *mermaidWriter) node(node *domain.TreeNode, parentID string) {
	id := w.nextID(node.Part.ID)

	opener, closer := "[", "]"
	if node.Part.Assembly {
		opener, closer = "[[", "]]"
	}
	sb := w.sb
	sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, escapeLabel(node.Part.Name), closer))

	if parentID != "" {
		arrow := "-->"
		if node.Cycle {
			arrow = "-.->"
		}
		if node.Edge != nil && node.Edge.Quantity != nil {
			label := escapeLabel("x" + node.Edge.Quantity.String())
			if node.Cycle {
				arrow = fmt.Sprintf("-. \"%s\" .->", label)
			} else {
				arrow = fmt.Sprintf("-- \"%s\" -->", label)
			}
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", parentID, arrow, id))
	}

	if node.Cycle {
		w.cycles = append(w.cycles, id)
	}

	for _, child := range node.Children {
		w.node(child, id)
	}
}

func (w *mermaidWriter) nextID(partID int) string {
	n := w.seq[partID]
	w.seq[partID] = n + 1
	if n == 0 {
		return fmt.Sprintf("p%d", partID)
	}
	return fmt.Sprintf("p%d_%d", partID, n)
}

func escapeLabel(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}
