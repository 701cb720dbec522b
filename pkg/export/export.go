// Package export flattens assembly trees into tabular form and writes them
// out as CSV, with pluggable hooks for filtering and header rewriting.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mitchellh/mapstructure"

	"github.com/partstack/bomtree/pkg/domain"
)

// Row is one flattened line of a tree export. The root occupies level 0 and
// carries no quantity or reference; every other row describes the bill of
// materials line that linked it to its parent.
type Row struct {
	Level     int
	PartID    int
	Name      string
	IPN       string
	Quantity  string
	Reference string
	Note      string
	Cycle     bool
}

// Hooks customize one export run. All methods receive and return the working
// data so implementations can be chained; BaseHooks passes everything
// through unchanged.
type Hooks interface {
	// FilterRows drops or rewrites rows before serialization.
	FilterRows(rows []Row) []Row

	// UpdateHeaders adjusts the header row. The context map carries
	// request-scoped values such as the part name.
	UpdateHeaders(headers []string, context map[string]any) []string

	// ExportRows transforms the surviving rows just before serialization.
	ExportRows(rows []Row) []Row
}

// BaseHooks is the no-op Hooks implementation. Embed it to override only
// the methods you need.
type BaseHooks struct{}

func (BaseHooks) FilterRows(rows []Row) []Row { return rows }

func (BaseHooks) UpdateHeaders(headers []string, _ map[string]any) []string { return headers }

func (BaseHooks) ExportRows(rows []Row) []Row { return rows }

var defaultHeaders = []string{"level", "part_id", "name", "ipn", "quantity", "reference", "note", "cycle"}

// Flatten walks the tree in document order and returns one Row per node.
func Flatten(root *domain.TreeNode) []Row {
	if root == nil {
		return nil
	}
	var rows []Row
	flattenNode(root, &rows)
	return rows
}

func flattenNode(node *domain.TreeNode, rows *[]Row) {
	row := Row{
		Level:  node.Depth,
		PartID: node.Part.ID,
		Name:   node.Part.Name,
		IPN:    node.Part.IPN,
		Cycle:  node.Cycle,
	}
	if node.Edge != nil {
		if node.Edge.Quantity != nil {
			row.Quantity = node.Edge.Quantity.String()
		}
		row.Reference = node.Edge.Reference
		row.Note = node.Edge.Note
	}
	*rows = append(*rows, row)

	for _, child := range node.Children {
		flattenNode(child, rows)
	}
}

// WriteCSV serializes the tree to w. A nil hooks falls back to BaseHooks.
func WriteCSV(w io.Writer, root *domain.TreeNode, hooks Hooks, context map[string]any) error {
	if hooks == nil {
		hooks = BaseHooks{}
	}

	headers := hooks.UpdateHeaders(append([]string(nil), defaultHeaders...), context)
	rows := hooks.ExportRows(hooks.FilterRows(Flatten(root)))

	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for _, row := range rows {
		cycle := ""
		if row.Cycle {
			cycle = "true"
		}
		record := []string{
			strconv.Itoa(row.Level),
			strconv.Itoa(row.PartID),
			row.Name,
			row.IPN,
			row.Quantity,
			row.Reference,
			row.Note,
			cycle,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Options describe one export request. They are decoded from loosely typed
// maps so CLI flags and config files can share a single shape.
type Options struct {
	Format             string `mapstructure:"format"`
	FilenameTemplate   string `mapstructure:"filename_template"`
	MaxDepth           int    `mapstructure:"max_depth"`
	IncludeSubstitutes bool   `mapstructure:"include_substitutes"`
}

// DecodeOptions builds Options from a raw map, applying defaults for
// anything absent.
func DecodeOptions(raw map[string]any) (Options, error) {
	opts := Options{
		Format:   "csv",
		MaxDepth: domain.DefaultMaxDepth,
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Options{}, fmt.Errorf("build decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Options{}, fmt.Errorf("decode export options: %w", err)
	}
	if opts.Format == "" {
		opts.Format = "csv"
	}
	opts.MaxDepth = domain.ClampDepth(opts.MaxDepth)
	return opts, nil
}
