package domain

import "github.com/shopspring/decimal"

// EdgeMetadata carries the BOM-line data attached to a non-root tree node.
// The synthetic root node has no incoming edge and therefore a nil Edge.
type EdgeMetadata struct {
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	Reference   string           `json:"reference,omitempty"`
	Note        string           `json:"note,omitempty"`
	Substitutes []PartSummary    `json:"substitutes,omitempty"`
}

// TreeNode is one position in a built BOM tree. Trees are constructed fresh
// per request from the repository snapshot and are never written back.
//
// Cycle==true means the node's part id already appears among its ancestors;
// such nodes are leaves by construction, even if the part has further BOM
// edges. A node truncated by the depth limit also has no children but keeps
// Cycle==false, so the two cases stay distinguishable.
type TreeNode struct {
	Part     Part          `json:"part"`
	Edge     *EdgeMetadata `json:"edge,omitempty"`
	Children []*TreeNode   `json:"children"`
	Cycle    bool          `json:"cycle,omitempty"`
	Depth    int           `json:"depth"`
}

// Metrics summarizes a built tree: the greatest depth reached by any node
// (root's direct children sit at depth 1) and the total node count excluding
// the root itself.
type Metrics struct {
	MaxDepth   int `json:"max_depth"`
	TotalNodes int `json:"total_nodes"`
}

// ComputeMetrics walks the tree once and derives its Metrics.
// A root with no children yields (0, 0).
func ComputeMetrics(root *TreeNode) Metrics {
	if root == nil {
		return Metrics{}
	}
	depth, count := collectMetrics(root.Children, 0)
	return Metrics{MaxDepth: depth, TotalNodes: count}
}

func collectMetrics(nodes []*TreeNode, depth int) (maxDepth, count int) {
	maxDepth = depth
	for _, node := range nodes {
		count++
		childDepth, childCount := collectMetrics(node.Children, depth+1)
		count += childCount
		if childDepth > maxDepth {
			maxDepth = childDepth
		}
	}
	return maxDepth, count
}
