// Package builder implements the BOM tree builder: a pure, request-scoped
// walk of the parent/sub-part relation with cycle detection and bounded depth.
package builder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/partstack/bomtree/pkg/domain"
	"github.com/partstack/bomtree/pkg/ports"
)

// DefaultNodeBudget bounds the total node count of one build. The depth clamp
// alone does not bound fan-out, so very wide graphs are truncated like a
// depth-limit hit rather than exhausting memory.
const DefaultNodeBudget = 50000

// MissingPartName labels a node whose sub-part id does not resolve.
// Dangling edges are rendered, not treated as errors.
const MissingPartName = "(missing)"

// Options control a single tree build.
// The zero value builds a root-only tree; use DefaultOptions for the
// documented defaults.
type Options struct {
	// MaxDepth bounds recursion. It is clamped into [0, domain.AbsoluteMaxDepth].
	MaxDepth int

	// IncludeSubstitutes resolves substitute parts on every edge as summaries,
	// without expanding their own BOMs.
	IncludeSubstitutes bool

	// NodeBudget caps the total number of nodes; <= 0 means DefaultNodeBudget.
	NodeBudget int
}

// DefaultOptions returns the documented build defaults.
func DefaultOptions() Options {
	return Options{MaxDepth: domain.DefaultMaxDepth, NodeBudget: DefaultNodeBudget}
}

// Builder constructs BOM trees from a PartRepository snapshot.
// It holds no per-build state and is safe for concurrent use.
type Builder struct {
	repo ports.PartRepository
}

// New creates a Builder on top of the given repository.
func New(repo ports.PartRepository) *Builder {
	return &Builder{repo: repo}
}

// Build constructs the tree rooted at rootPartID.
//
// It returns domain.ErrPartNotFound when the root id does not resolve.
// Every other data irregularity (absent quantity, dangling edge, missing
// substitute) is represented in the output rather than reported as an error.
func (b *Builder) Build(ctx context.Context, rootPartID int, opts Options) (*domain.TreeNode, error) {
	root, err := b.repo.GetPart(ctx, rootPartID)
	if err != nil {
		return nil, err
	}

	opts.MaxDepth = domain.ClampDepth(opts.MaxDepth)
	if opts.NodeBudget <= 0 {
		opts.NodeBudget = DefaultNodeBudget
	}

	walk := &walker{
		repo:   b.repo,
		opts:   opts,
		edges:  make(map[int][]domain.BomEdge),
		budget: opts.NodeBudget,
	}
	return walk.node(ctx, root, nil, 0, nil)
}

// walker carries the state of one build invocation. The edge memo is local to
// the walker, never shared across builds.
type walker struct {
	repo   ports.PartRepository
	opts   Options
	edges  map[int][]domain.BomEdge
	budget int
}

// node assembles the subtree for part. The ancestor set tracks only the path
// from the root to the current node; it is copied on every descent so sibling
// branches cannot see each other's visited state.
func (w *walker) node(ctx context.Context, part domain.Part, edge *domain.EdgeMetadata, depth int, ancestors map[int]struct{}) (*domain.TreeNode, error) {
	node := &domain.TreeNode{Part: part, Edge: edge, Depth: depth}

	// Depth-limit truncation is silent: no children, Cycle stays false.
	if depth >= w.opts.MaxDepth || w.budget <= 0 {
		return node, nil
	}

	next := make(map[int]struct{}, len(ancestors)+1)
	for id := range ancestors {
		next[id] = struct{}{}
	}
	next[part.ID] = struct{}{}

	children, err := w.resolveChildren(ctx, part.ID)
	if err != nil {
		return nil, err
	}

	for _, child := range children {
		if w.budget <= 0 {
			break
		}
		w.budget--

		meta, err := w.metadata(ctx, child.edge)
		if err != nil {
			return nil, err
		}

		if _, seen := next[child.sub.ID]; seen {
			// Cycle back to an ancestor: emit a leaf, never expand the edge.
			node.Children = append(node.Children, &domain.TreeNode{
				Part:  child.sub,
				Edge:  meta,
				Depth: depth + 1,
				Cycle: true,
			})
			continue
		}

		subtree, err := w.node(ctx, child.sub, meta, depth+1, next)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, subtree)
	}

	return node, nil
}

type childEdge struct {
	edge domain.BomEdge
	sub  domain.Part
}

// resolveChildren fetches and memoizes the BOM edges for one parent, resolves
// their sub-parts and sorts them by sub-part name (case-insensitive ascending,
// part id as tie-break for deterministic output).
func (w *walker) resolveChildren(ctx context.Context, parentID int) ([]childEdge, error) {
	edges, ok := w.edges[parentID]
	if !ok {
		var err error
		edges, err = w.repo.GetBomEdges(ctx, parentID)
		if err != nil {
			return nil, fmt.Errorf("fetching BOM edges for part %d: %w", parentID, err)
		}
		w.edges[parentID] = edges
	}

	children := make([]childEdge, 0, len(edges))
	for _, edge := range edges {
		sub, err := w.repo.GetPart(ctx, edge.SubPartID)
		if err != nil {
			if errors.Is(err, domain.ErrPartNotFound) {
				sub = domain.Part{ID: edge.SubPartID, Name: MissingPartName}
			} else {
				return nil, fmt.Errorf("resolving sub-part %d: %w", edge.SubPartID, err)
			}
		}
		children = append(children, childEdge{edge: edge, sub: sub})
	}

	sort.SliceStable(children, func(i, j int) bool {
		a := strings.ToLower(children[i].sub.Name)
		b := strings.ToLower(children[j].sub.Name)
		if a == b {
			return children[i].sub.ID < children[j].sub.ID
		}
		return a < b
	})

	return children, nil
}

// metadata maps a BOM edge onto the node metadata, optionally resolving
// substitute summaries. Unresolvable substitutes are skipped.
func (w *walker) metadata(ctx context.Context, edge domain.BomEdge) (*domain.EdgeMetadata, error) {
	meta := &domain.EdgeMetadata{
		Quantity:  edge.Quantity,
		Reference: edge.Reference,
		Note:      edge.Note,
	}

	if !w.opts.IncludeSubstitutes {
		return meta, nil
	}

	for _, id := range edge.Substitutes {
		sub, err := w.repo.GetPart(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrPartNotFound) {
				continue
			}
			return nil, fmt.Errorf("resolving substitute %d: %w", id, err)
		}
		meta.Substitutes = append(meta.Substitutes, sub.Summary())
	}

	return meta, nil
}
