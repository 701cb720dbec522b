package domain

import "fmt"

// Part is an inventory item, possibly an "assembly" composed of other parts.
// Optional fields (IPN, Revision, Description) use the empty string to mean
// "absent"; nothing in the core distinguishes empty from missing.
type Part struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	IPN         string `json:"ipn,omitempty" yaml:"ipn,omitempty"`
	Assembly    bool   `json:"assembly" yaml:"assembly"`
	Revision    string `json:"revision,omitempty" yaml:"revision,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// URL returns the canonical detail-page path for the part.
func (p Part) URL() string {
	return fmt.Sprintf("/part/%d/", p.ID)
}

// Summary reduces the part to the lightweight view used for substitute listings.
func (p Part) Summary() PartSummary {
	return PartSummary{ID: p.ID, Name: p.Name, IPN: p.IPN}
}

// PartSummary is a lightweight view of a Part (id, name, optional IPN).
// Substitutes are resolved to summaries only; their own BOMs are never expanded.
type PartSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	IPN  string `json:"ipn,omitempty"`
}

// URL returns the canonical detail-page path for the summarized part.
func (p PartSummary) URL() string {
	return fmt.Sprintf("/part/%d/", p.ID)
}
