package http

import (
	"github.com/shopspring/decimal"

	"github.com/partstack/bomtree/pkg/domain"
)

// treeJSON maps a built tree onto the wire shape:
//
//	{id, name, ipn, assembly, revision, url, children: [...]}
//
// Non-root nodes additionally carry quantity/reference/note (null when
// absent), cycle: true on cycle leaves, and substitutes when resolved.
// Maps keep the null-vs-missing distinction the shape requires; json.Marshal
// sorts map keys, so output stays deterministic.
func treeJSON(node *domain.TreeNode) map[string]any {
	out := map[string]any{
		"id":       node.Part.ID,
		"name":     node.Part.Name,
		"ipn":      nullable(node.Part.IPN),
		"assembly": node.Part.Assembly,
		"revision": nullable(node.Part.Revision),
		"url":      node.Part.URL(),
	}

	if node.Edge != nil {
		out["quantity"] = decimalToFloat(node.Edge.Quantity)
		out["reference"] = nullable(node.Edge.Reference)
		out["note"] = nullable(node.Edge.Note)
		if len(node.Edge.Substitutes) > 0 {
			subs := make([]map[string]any, 0, len(node.Edge.Substitutes))
			for _, sub := range node.Edge.Substitutes {
				subs = append(subs, map[string]any{
					"id":   sub.ID,
					"name": sub.Name,
					"ipn":  nullable(sub.IPN),
					"url":  sub.URL(),
				})
			}
			out["substitutes"] = subs
		}
	}

	if node.Cycle {
		out["cycle"] = true
	}

	children := make([]map[string]any, 0, len(node.Children))
	for _, child := range node.Children {
		children = append(children, treeJSON(child))
	}
	out["children"] = children

	return out
}

func partJSON(part domain.Part) map[string]any {
	return map[string]any{
		"id":          part.ID,
		"name":        part.Name,
		"ipn":         nullable(part.IPN),
		"assembly":    part.Assembly,
		"revision":    nullable(part.Revision),
		"description": nullable(part.Description),
		"url":         part.URL(),
	}
}

// nullable maps the empty string onto JSON null.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// decimalToFloat converts a quantity to a JSON number, keeping nil intact.
func decimalToFloat(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	f, _ := d.Float64()
	return f
}
