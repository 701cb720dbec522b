// Package domain contains the core data model for BOM trees: parts, BOM
// edges, built tree nodes and their derived metrics.
//
// Everything here is a plain value type. Parts and edges are read-only inputs
// owned by an external data store; TreeNode is the freshly constructed,
// immutable output of one build.
package domain
