package ports

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partstack/bomtree/pkg/domain"
)

// ContractFixture returns the canonical dataset every PartRepository
// implementation must be seeded with before running the contract suite.
func ContractFixture() ([]domain.Part, []domain.BomEdge) {
	qty := decimal.NewFromInt(2)

	parts := []domain.Part{
		{ID: 1, Name: "Gearbox", IPN: "GBX-001", Assembly: true, Revision: "B"},
		{ID: 2, Name: "axle", Assembly: false},
		{ID: 3, Name: "Bearing", IPN: "BRG-010", Assembly: false},
		{ID: 4, Name: "Bushing", Assembly: false},
	}
	edges := []domain.BomEdge{
		{ParentID: 1, SubPartID: 2, Quantity: &qty, Reference: "A1"},
		{ParentID: 1, SubPartID: 3, Note: "press fit", Substitutes: []int{4}},
	}
	return parts, edges
}

// RunPartRepositoryContract verifies that a PartRepository implementation
// adheres to the interface contract. The repository must be pre-seeded with
// ContractFixture data.
func RunPartRepositoryContract(t *testing.T, repo PartRepository) {
	ctx := context.Background()

	t.Run("GetPart", func(t *testing.T) {
		part, err := repo.GetPart(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Gearbox", part.Name)
		assert.Equal(t, "GBX-001", part.IPN)
		assert.True(t, part.Assembly)
	})

	t.Run("GetPart NotFound", func(t *testing.T) {
		_, err := repo.GetPart(ctx, 9999)
		assert.ErrorIs(t, err, domain.ErrPartNotFound)
	})

	t.Run("GetBomEdges", func(t *testing.T) {
		edges, err := repo.GetBomEdges(ctx, 1)
		require.NoError(t, err)
		require.Len(t, edges, 2)

		byChild := make(map[int]domain.BomEdge, len(edges))
		for _, e := range edges {
			assert.Equal(t, 1, e.ParentID)
			byChild[e.SubPartID] = e
		}
		require.Contains(t, byChild, 2)
		require.Contains(t, byChild, 3)
		require.NotNil(t, byChild[2].Quantity)
		assert.True(t, byChild[2].Quantity.Equal(decimal.NewFromInt(2)))
		assert.Equal(t, "A1", byChild[2].Reference)
		assert.Equal(t, "press fit", byChild[3].Note)
		assert.Equal(t, []int{4}, byChild[3].Substitutes)
	})

	t.Run("GetBomEdges Leaf", func(t *testing.T) {
		edges, err := repo.GetBomEdges(ctx, 2)
		require.NoError(t, err)
		assert.Empty(t, edges)
	})

	t.Run("ListAssemblies", func(t *testing.T) {
		assemblies, err := repo.ListAssemblies(ctx, 0)
		require.NoError(t, err)
		require.Len(t, assemblies, 1)
		assert.Equal(t, 1, assemblies[0].ID)
	})

	t.Run("ListAssemblies Limit", func(t *testing.T) {
		assemblies, err := repo.ListAssemblies(ctx, 1)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(assemblies), 1)
	})
}
