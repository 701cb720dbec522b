/*
Package bomtree builds Bill-of-Materials assembly trees for inventory parts.

Given a root part, a read-only part/BOM repository and traversal limits, it
produces an immutable tree of nodes mirroring the "part contains sub-parts"
relation, annotated with cycle markers and per-edge metadata (quantity,
reference, note, substitutes).

# Concept

The core is a single pure walk: starting at the root part, it fetches the BOM
edges per parent (memoized within one build), descends with a copy of the
ancestor path so sibling branches stay independent, flags edges that point
back to an ancestor as cycles instead of expanding them, and truncates
silently at a clamped depth limit. The resulting TreeNode structure and its
(max depth, total nodes) metrics are consumed by the presentation adapters:
HTTP (JSON + HTML), MCP, Mermaid graphs, markdown outlines and CSV export.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/partstack/bomtree"
		"github.com/partstack/bomtree/pkg/adapters/file"
		"github.com/partstack/bomtree/pkg/domain"
	)

	func main() {
		repo, err := file.Load("./parts.yaml")
		if err != nil {
			log.Fatal(err)
		}

		svc := bomtree.New(repo)
		tree, err := svc.BuildTreeDefault(context.Background(), 1)
		if err != nil {
			log.Fatal(err)
		}

		metrics := domain.ComputeMetrics(tree)
		fmt.Printf("depth=%d nodes=%d\n", metrics.MaxDepth, metrics.TotalNodes)
	}

Storage is pluggable through ports.PartRepository: an in-memory repository,
a YAML dataset loader and a Redis read-through cache ship in pkg/adapters.
*/
package bomtree
