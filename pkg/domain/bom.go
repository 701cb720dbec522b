package domain

import "github.com/shopspring/decimal"

// BomEdge is one line of a bill of materials: "parent part requires Quantity
// of sub-part". A nil Quantity means the quantity is unspecified, not zero.
// Substitutes lists part ids that are acceptable in place of the sub-part.
type BomEdge struct {
	ParentID    int              `json:"parent" yaml:"parent"`
	SubPartID   int              `json:"sub_part" yaml:"sub_part"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Reference   string           `json:"reference,omitempty" yaml:"reference,omitempty"`
	Note        string           `json:"note,omitempty" yaml:"note,omitempty"`
	Substitutes []int            `json:"substitutes,omitempty" yaml:"substitutes,omitempty"`
}
