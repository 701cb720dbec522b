// Package memory provides an in-memory PartRepository, used as the backing
// store for YAML datasets and as a fixture store in tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/partstack/bomtree/pkg/domain"
)

// Repository implements ports.PartRepository in memory.
// Safe for concurrent use; reads hand out copies so callers cannot mutate
// the stored snapshot.
type Repository struct {
	mu    sync.RWMutex
	parts map[int]domain.Part
	edges map[int][]domain.BomEdge
}

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{
		parts: make(map[int]domain.Part),
		edges: make(map[int][]domain.BomEdge),
	}
}

// Seed creates a repository pre-populated with the given parts and edges.
func Seed(parts []domain.Part, edges []domain.BomEdge) *Repository {
	repo := NewRepository()
	for _, p := range parts {
		repo.AddPart(p)
	}
	for _, e := range edges {
		repo.AddEdge(e)
	}
	return repo
}

// AddPart inserts or replaces a part.
func (r *Repository) AddPart(part domain.Part) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parts[part.ID] = part
}

// AddEdge appends a BOM edge under its parent part.
func (r *Repository) AddEdge(edge domain.BomEdge) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.edges[edge.ParentID] = append(r.edges[edge.ParentID], edge)
}

// GetPart resolves a part by id.
func (r *Repository) GetPart(ctx context.Context, id int) (domain.Part, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	part, ok := r.parts[id]
	if !ok {
		return domain.Part{}, domain.ErrPartNotFound
	}
	return part, nil
}

// GetBomEdges returns the BOM edges whose parent is partID.
func (r *Repository) GetBomEdges(ctx context.Context, partID int) ([]domain.BomEdge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	edges := r.edges[partID]
	out := make([]domain.BomEdge, len(edges))
	copy(out, edges)
	return out, nil
}

// ListAssemblies returns assembly parts ordered by name, case-insensitive.
func (r *Repository) ListAssemblies(ctx context.Context, limit int) ([]domain.Part, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Part, 0)
	for _, p := range r.parts {
		if p.Assembly {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a := strings.ToLower(out[i].Name)
		b := strings.ToLower(out[j].Name)
		if a == b {
			return out[i].ID < out[j].ID
		}
		return a < b
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
