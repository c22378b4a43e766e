// Package catalog defines the purchasable project types, feature add-ons and
// per-service options, together with price calculation over them.
package catalog

import "fmt"

// Currency identifies one of the two price columns a catalog entry is
// authored in. Amounts are whole units (euros / francs), not cents.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyXAF Currency = "XAF"
)

func ParseCurrency(s string) (Currency, error) {
	switch Currency(s) {
	case CurrencyEUR, CurrencyXAF:
		return Currency(s), nil
	default:
		return "", fmt.Errorf("unknown currency %q", s)
	}
}

// Price carries both authored amounts. The two columns are independent;
// neither is derived from the other by conversion.
type Price struct {
	EUR int `yaml:"eur" json:"eur"`
	XAF int `yaml:"xaf" json:"xaf"`
}

// In returns the authored amount for the given currency.
func (p Price) In(currency Currency) int {
	if currency == CurrencyXAF {
		return p.XAF
	}
	return p.EUR
}

// ProjectType is a quotable project category (showcase site, e-commerce, ...).
type ProjectType struct {
	ID          string `yaml:"id" json:"id"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
	Price       Price  `yaml:"price" json:"price"`
}

// Feature is an optional add-on selectable in the quote wizard.
type Feature struct {
	ID          string `yaml:"id" json:"id"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
	Price       Price  `yaml:"price" json:"price"`
}

// ServiceOption is a per-service add-on in the customize-order flow.
// ExtraDays may be negative for express-delivery options.
type ServiceOption struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Price       Price  `json:"price"`
	ExtraDays   int    `json:"extra_days"`
}

type Catalog struct {
	ProjectTypes []ProjectType `yaml:"project_types" json:"project_types"`
	Features     []Feature     `yaml:"features" json:"features"`
}

// ProjectType returns the entry with the given id, or nil.
func (c *Catalog) ProjectType(id string) *ProjectType {
	for i := range c.ProjectTypes {
		if c.ProjectTypes[i].ID == id {
			return &c.ProjectTypes[i]
		}
	}
	return nil
}

// Feature returns the entry with the given id, or nil.
func (c *Catalog) Feature(id string) *Feature {
	for i := range c.Features {
		if c.Features[i].ID == id {
			return &c.Features[i]
		}
	}
	return nil
}

// FeatureLabels maps selected feature ids to their display labels, in
// selection order. Unknown ids are skipped; orders persist labels, not ids.
func (c *Catalog) FeatureLabels(ids []string) []string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if feature := c.Feature(id); feature != nil {
			labels = append(labels, feature.Label)
		}
	}
	return labels
}
