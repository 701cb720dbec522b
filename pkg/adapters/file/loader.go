// Package file loads a part/BOM dataset from a YAML document and exposes it
// as an in-memory PartRepository. The dataset is read once; the resulting
// repository is the immutable snapshot trees are built from.
package file

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/partstack/bomtree/pkg/adapters/memory"
	"github.com/partstack/bomtree/pkg/domain"
)

// datasetDoc is the on-disk shape:
//
//	parts:
//	  - id: 1
//	    name: Drive Unit
//	    ipn: DRV-100
//	    assembly: true
//	bom:
//	  - parent: 1
//	    sub_part: 2
//	    quantity: 2.5
//	    reference: M3x8
//	    substitutes: [5]
type datasetDoc struct {
	Parts []domain.Part `yaml:"parts"`
	Bom   []edgeDoc     `yaml:"bom"`
}

type edgeDoc struct {
	Parent      int       `yaml:"parent"`
	SubPart     int       `yaml:"sub_part"`
	Quantity    *quantity `yaml:"quantity"`
	Reference   string    `yaml:"reference"`
	Note        string    `yaml:"note"`
	Substitutes []int     `yaml:"substitutes"`
}

// quantity accepts YAML ints, floats and quoted strings alike.
type quantity struct {
	decimal.Decimal
}

func (q *quantity) UnmarshalYAML(value *yaml.Node) error {
	d, err := decimal.NewFromString(value.Value)
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", value.Value, err)
	}
	q.Decimal = d
	return nil
}

// Load reads and validates a YAML dataset from path.
func Load(path string) (*memory.Repository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	repo, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return repo, nil
}

// Parse decodes and validates a YAML dataset.
// Every BOM edge must reference declared parts; substitutes likewise.
func Parse(data []byte) (*memory.Repository, error) {
	var doc datasetDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}

	known := make(map[int]struct{}, len(doc.Parts))
	for i, part := range doc.Parts {
		if part.Name == "" {
			return nil, fmt.Errorf("part at index %d has no name", i)
		}
		if _, dup := known[part.ID]; dup {
			return nil, fmt.Errorf("duplicate part id %d", part.ID)
		}
		known[part.ID] = struct{}{}
	}

	repo := memory.NewRepository()
	for _, part := range doc.Parts {
		repo.AddPart(part)
	}

	for i, edge := range doc.Bom {
		if _, ok := known[edge.Parent]; !ok {
			return nil, fmt.Errorf("bom entry %d: unknown parent part %d", i, edge.Parent)
		}
		if _, ok := known[edge.SubPart]; !ok {
			return nil, fmt.Errorf("bom entry %d: unknown sub-part %d", i, edge.SubPart)
		}
		for _, sub := range edge.Substitutes {
			if _, ok := known[sub]; !ok {
				return nil, fmt.Errorf("bom entry %d: unknown substitute part %d", i, sub)
			}
		}

		var qty *decimal.Decimal
		if edge.Quantity != nil {
			q := edge.Quantity.Decimal
			qty = &q
		}
		repo.AddEdge(domain.BomEdge{
			ParentID:    edge.Parent,
			SubPartID:   edge.SubPart,
			Quantity:    qty,
			Reference:   edge.Reference,
			Note:        edge.Note,
			Substitutes: edge.Substitutes,
		})
	}

	return repo, nil
}
