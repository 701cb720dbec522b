package ports

import (
	"context"

	"github.com/partstack/bomtree/pkg/domain"
)

// PartRepository is the read-only lookup capability the tree builder consumes.
// This allows the storage layer (YAML dataset, memory, cached) to be decoupled
// from the core.
//
// Implementations must return domain.ErrPartNotFound (possibly wrapped) when
// an id does not resolve. The backing data is treated as an immutable snapshot
// for the duration of one build; the repository performs no writes.
type PartRepository interface {
	// GetPart resolves a part by id.
	GetPart(ctx context.Context, id int) (domain.Part, error)

	// GetBomEdges returns all BOM edges whose parent is partID.
	// A part without a BOM yields an empty slice, not an error.
	GetBomEdges(ctx context.Context, partID int) ([]domain.BomEdge, error)

	// ListAssemblies returns parts flagged as assemblies, ordered by name
	// (case-insensitive ascending), capped at limit when limit > 0.
	ListAssemblies(ctx context.Context, limit int) ([]domain.Part, error)
}
