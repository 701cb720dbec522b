package builder_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partstack/bomtree/pkg/adapters/memory"
	"github.com/partstack/bomtree/pkg/builder"
	"github.com/partstack/bomtree/pkg/domain"
	"github.com/partstack/bomtree/pkg/ports"
)

func qty(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// countingRepo counts BOM-edge fetches per parent to verify memoization.
type countingRepo struct {
	ports.PartRepository
	edgeCalls map[int]int
}

func counting(repo ports.PartRepository) *countingRepo {
	return &countingRepo{PartRepository: repo, edgeCalls: make(map[int]int)}
}

func (c *countingRepo) GetBomEdges(ctx context.Context, partID int) ([]domain.BomEdge, error) {
	c.edgeCalls[partID]++
	return c.PartRepository.GetBomEdges(ctx, partID)
}

func TestBuild_NotFound(t *testing.T) {
	b := builder.New(memory.NewRepository())

	tree, err := b.Build(context.Background(), 123, builder.DefaultOptions())
	assert.ErrorIs(t, err, domain.ErrPartNotFound)
	assert.Nil(t, tree)
}

// Root part A has one edge to B (qty 2), B has one edge back to A.
// The repeated A must be flagged as a cycle leaf; metrics are (2, 2).
func TestBuild_CycleBackToAncestor(t *testing.T) {
	repo := memory.Seed(
		[]domain.Part{
			{ID: 1, Name: "A", Assembly: true},
			{ID: 2, Name: "B", Assembly: true},
		},
		[]domain.BomEdge{
			{ParentID: 1, SubPartID: 2, Quantity: qty("2")},
			{ParentID: 2, SubPartID: 1},
		},
	)

	tree, err := builder.New(repo).Build(context.Background(), 1, builder.DefaultOptions())
	require.NoError(t, err)

	require.Len(t, tree.Children, 1)
	b := tree.Children[0]
	assert.Equal(t, "B", b.Part.Name)
	assert.False(t, b.Cycle)
	require.NotNil(t, b.Edge)
	require.NotNil(t, b.Edge.Quantity)
	assert.True(t, b.Edge.Quantity.Equal(decimal.NewFromInt(2)))

	require.Len(t, b.Children, 1)
	back := b.Children[0]
	assert.Equal(t, "A", back.Part.Name)
	assert.True(t, back.Cycle)
	assert.Empty(t, back.Children)

	assert.Equal(t, domain.Metrics{MaxDepth: 2, TotalNodes: 2}, domain.ComputeMetrics(tree))
}

// Depth truncation must stay distinguishable from cycle detection: the node
// at the limit has no children and Cycle == false.
func TestBuild_DepthTruncation(t *testing.T) {
	repo := memory.Seed(
		[]domain.Part{
			{ID: 1, Name: "A", Assembly: true},
			{ID: 2, Name: "B", Assembly: true},
			{ID: 3, Name: "C"},
		},
		[]domain.BomEdge{
			{ParentID: 1, SubPartID: 2},
			{ParentID: 2, SubPartID: 3},
		},
	)

	tree, err := builder.New(repo).Build(context.Background(), 1, builder.Options{MaxDepth: 1})
	require.NoError(t, err)

	require.Len(t, tree.Children, 1)
	b := tree.Children[0]
	assert.Empty(t, b.Children)
	assert.False(t, b.Cycle)
	assert.Equal(t, 1, b.Depth)
}

func TestBuild_MaxDepthZero(t *testing.T) {
	repo := memory.Seed(
		[]domain.Part{
			{ID: 1, Name: "A", Assembly: true},
			{ID: 2, Name: "B"},
		},
		[]domain.BomEdge{{ParentID: 1, SubPartID: 2}},
	)

	tree, err := builder.New(repo).Build(context.Background(), 1, builder.Options{MaxDepth: 0})
	require.NoError(t, err)
	assert.Empty(t, tree.Children)
	assert.False(t, tree.Cycle)
	assert.Equal(t, domain.Metrics{}, domain.ComputeMetrics(tree))
}

func TestBuild_MaxDepthClamped(t *testing.T) {
	parts := []domain.Part{{ID: 1, Name: "p1", Assembly: true}}
	var edges []domain.BomEdge
	for i := 2; i <= 40; i++ {
		parts = append(parts, domain.Part{ID: i, Name: fmt.Sprintf("p%02d", i), Assembly: true})
		edges = append(edges, domain.BomEdge{ParentID: i - 1, SubPartID: i})
	}
	repo := memory.Seed(parts, edges)

	tree, err := builder.New(repo).Build(context.Background(), 1, builder.Options{MaxDepth: 1000})
	require.NoError(t, err)

	metrics := domain.ComputeMetrics(tree)
	assert.Equal(t, domain.AbsoluteMaxDepth, metrics.MaxDepth)
}

// The same part may legitimately appear in multiple independent branches.
// The ancestor set is path-local, so neither occurrence is a cycle.
func TestBuild_SiblingBranchesIndependent(t *testing.T) {
	repo := memory.Seed(
		[]domain.Part{
			{ID: 1, Name: "Root", Assembly: true},
			{ID: 2, Name: "Left", Assembly: true},
			{ID: 3, Name: "Right", Assembly: true},
			{ID: 4, Name: "Shared", Assembly: true},
			{ID: 5, Name: "Deep"},
		},
		[]domain.BomEdge{
			{ParentID: 1, SubPartID: 2},
			{ParentID: 1, SubPartID: 3},
			{ParentID: 2, SubPartID: 4},
			{ParentID: 3, SubPartID: 4},
			{ParentID: 4, SubPartID: 5},
		},
	)
	counted := counting(repo)

	tree, err := builder.New(counted).Build(context.Background(), 1, builder.DefaultOptions())
	require.NoError(t, err)

	require.Len(t, tree.Children, 2)
	for _, branch := range tree.Children {
		require.Len(t, branch.Children, 1)
		shared := branch.Children[0]
		assert.Equal(t, "Shared", shared.Part.Name)
		assert.False(t, shared.Cycle)
		require.Len(t, shared.Children, 1, "shared part must expand in both branches")
	}

	// Each occurrence of "Shared" is a distinct path position.
	assert.Equal(t, domain.Metrics{MaxDepth: 3, TotalNodes: 6}, domain.ComputeMetrics(tree))

	// Edges for "Shared" were fetched once, served from the memo the second time.
	assert.Equal(t, 1, counted.edgeCalls[4])
}

func TestBuild_ChildOrdering(t *testing.T) {
	repo := memory.Seed(
		[]domain.Part{
			{ID: 1, Name: "Root", Assembly: true},
			{ID: 10, Name: "zeta"},
			{ID: 11, Name: "Alpha"},
			{ID: 12, Name: "beta"},
			{ID: 13, Name: "alpha"},
		},
		[]domain.BomEdge{
			{ParentID: 1, SubPartID: 10},
			{ParentID: 1, SubPartID: 11},
			{ParentID: 1, SubPartID: 12},
			{ParentID: 1, SubPartID: 13},
		},
	)

	tree, err := builder.New(repo).Build(context.Background(), 1, builder.DefaultOptions())
	require.NoError(t, err)

	names := make([]string, 0, len(tree.Children))
	for _, child := range tree.Children {
		names = append(names, child.Part.Name)
	}
	// Case-insensitive ascending; equal names ordered by part id.
	assert.Equal(t, []string{"Alpha", "alpha", "beta", "zeta"}, names)
}

func TestBuild_Substitutes(t *testing.T) {
	repo := memory.Seed(
		[]domain.Part{
			{ID: 1, Name: "Root", Assembly: true},
			{ID: 2, Name: "Bolt"},
			{ID: 3, Name: "Alt Bolt", IPN: "ALT-1"},
			{ID: 4, Name: "Alt Bolt 2"},
		},
		[]domain.BomEdge{
			{ParentID: 1, SubPartID: 2, Substitutes: []int{3, 4}},
		},
	)
	b := builder.New(repo)
	ctx := context.Background()

	// Off by default.
	tree, err := b.Build(ctx, 1, builder.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, tree.Children, 1)
	assert.Empty(t, tree.Children[0].Edge.Substitutes)

	// On request: exactly the two summaries, no recursive expansion.
	opts := builder.DefaultOptions()
	opts.IncludeSubstitutes = true
	tree, err = b.Build(ctx, 1, opts)
	require.NoError(t, err)
	require.Len(t, tree.Children, 1)

	subs := tree.Children[0].Edge.Substitutes
	require.Len(t, subs, 2)
	assert.Equal(t, domain.PartSummary{ID: 3, Name: "Alt Bolt", IPN: "ALT-1"}, subs[0])
	assert.Equal(t, domain.PartSummary{ID: 4, Name: "Alt Bolt 2"}, subs[1])
}

func TestBuild_DanglingSubPart(t *testing.T) {
	repo := memory.Seed(
		[]domain.Part{{ID: 1, Name: "Root", Assembly: true}},
		[]domain.BomEdge{{ParentID: 1, SubPartID: 99, Reference: "R9"}},
	)

	tree, err := builder.New(repo).Build(context.Background(), 1, builder.DefaultOptions())
	require.NoError(t, err)

	require.Len(t, tree.Children, 1)
	missing := tree.Children[0]
	assert.Equal(t, builder.MissingPartName, missing.Part.Name)
	assert.Equal(t, 99, missing.Part.ID)
	assert.Equal(t, "R9", missing.Edge.Reference)
	assert.Empty(t, missing.Children)
}

func TestBuild_AbsentQuantity(t *testing.T) {
	repo := memory.Seed(
		[]domain.Part{
			{ID: 1, Name: "Root", Assembly: true},
			{ID: 2, Name: "Child"},
		},
		[]domain.BomEdge{{ParentID: 1, SubPartID: 2}},
	)

	tree, err := builder.New(repo).Build(context.Background(), 1, builder.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, tree.Children, 1)
	assert.Nil(t, tree.Children[0].Edge.Quantity)
}

func TestBuild_NodeBudget(t *testing.T) {
	parts := []domain.Part{{ID: 1, Name: "Root", Assembly: true}}
	var edges []domain.BomEdge
	for i := 0; i < 100; i++ {
		id := 100 + i
		parts = append(parts, domain.Part{ID: id, Name: "leaf"})
		edges = append(edges, domain.BomEdge{ParentID: 1, SubPartID: id})
	}
	repo := memory.Seed(parts, edges)

	opts := builder.DefaultOptions()
	opts.NodeBudget = 10
	tree, err := builder.New(repo).Build(context.Background(), 1, opts)
	require.NoError(t, err)

	metrics := domain.ComputeMetrics(tree)
	assert.Equal(t, 10, metrics.TotalNodes)
	// Budget truncation looks like depth truncation, never like a cycle.
	for _, child := range tree.Children {
		assert.False(t, child.Cycle)
	}
}

// For acyclic graphs the node count equals the number of edges transitively
// reachable within the depth limit.
func TestBuild_AcyclicNodeCount(t *testing.T) {
	repo := memory.Seed(
		[]domain.Part{
			{ID: 1, Name: "A", Assembly: true},
			{ID: 2, Name: "B", Assembly: true},
			{ID: 3, Name: "C", Assembly: true},
			{ID: 4, Name: "D"},
		},
		[]domain.BomEdge{
			{ParentID: 1, SubPartID: 2},
			{ParentID: 1, SubPartID: 3},
			{ParentID: 2, SubPartID: 4},
			{ParentID: 3, SubPartID: 4},
		},
	)

	tree, err := builder.New(repo).Build(context.Background(), 1, builder.DefaultOptions())
	require.NoError(t, err)

	// 4 reachable edge path-positions: B, C, and D twice.
	assert.Equal(t, 4, domain.ComputeMetrics(tree).TotalNodes)
}
