package graph

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/partstack/bomtree/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	two := decimal.NewFromInt(2)
	root := &domain.TreeNode{
		Part: domain.Part{ID: 1, Name: "Gearbox", Assembly: true},
		Children: []*domain.TreeNode{
			{
				Part:  domain.Part{ID: 2, Name: "Axle"},
				Edge:  &domain.EdgeMetadata{Quantity: &two},
				Depth: 1,
			},
		},
	}

	out := GenerateMermaid(root)

	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, `p1[["Gearbox"]]`)
	assert.Contains(t, out, `p2["Axle"]`)
	assert.Contains(t, out, `p1 -- "x2" --> p2`)
}

func TestGenerateMermaid_Cycle(t *testing.T) {
	root := &domain.TreeNode{
		Part: domain.Part{ID: 1, Name: "A", Assembly: true},
		Children: []*domain.TreeNode{
			{
				Part:  domain.Part{ID: 1, Name: "A", Assembly: true},
				Edge:  &domain.EdgeMetadata{},
				Cycle: true,
				Depth: 1,
			},
		},
	}

	out := GenerateMermaid(root)

	// Repeated part gets a distinct identifier and cycle styling.
	assert.Contains(t, out, "p1 -.-> p1_1")
	assert.Contains(t, out, "class p1_1 cycle;")
}

func TestGenerateMermaid_EscapesQuotes(t *testing.T) {
	root := &domain.TreeNode{
		Part: domain.Part{ID: 9, Name: `5" Bolt`},
	}

	out := GenerateMermaid(root)

	assert.Contains(t, out, `p9["5' Bolt"]`)
}

func TestGenerateMermaid_Nil(t *testing.T) {
	assert.Equal(t, "graph TD\n", GenerateMermaid(nil))
}
