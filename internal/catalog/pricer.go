package catalog

// Package catalog provides price calculation functionality.
//
// All calculations are pure integer arithmetic over authored per-currency
// amounts. Switching currency re-reads the other price column for every
// selected entry; it never multiplies a previously computed total by a rate.
// The only multiplicative conversion in the system lives at the payment
// gateway boundary (internal/payment).

type Pricer struct{}

func NewPricer() *Pricer {
	return &Pricer{}
}

// QuotePricing is the derived pricing for a quote wizard selection.
// It is recomputed on every read and never stored.
type QuotePricing struct {
	Currency    Currency `json:"currency"`
	BasePrice   int      `json:"base_price"`
	AddonsTotal int      `json:"addons_total"`
	Total       int      `json:"total"`
}

// OrderPricing is the derived pricing for a customize-order selection.
// Both currency totals are carried because the flow displays both at once.
type OrderPricing struct {
	TotalEUR  int `json:"total_eur"`
	TotalXAF  int `json:"total_xaf"`
	TotalDays int `json:"total_days"`
}

// QuoteTotal computes the quote wizard total for the active currency.
// An empty project type contributes 0, as does any feature id missing from
// the catalog (stale selections must not fail pricing).
func (p *Pricer) QuoteTotal(cat *Catalog, projectTypeID string, featureIDs []string, currency Currency) QuotePricing {
	pricing := QuotePricing{Currency: currency}

	if projectType := cat.ProjectType(projectTypeID); projectType != nil {
		pricing.BasePrice = projectType.Price.In(currency)
	}

	for _, id := range featureIDs {
		if feature := cat.Feature(id); feature != nil {
			pricing.AddonsTotal += feature.Price.In(currency)
		}
	}

	pricing.Total = pricing.BasePrice + pricing.AddonsTotal
	return pricing
}

// OrderTotal computes the customize-order totals for a service with the
// given base price and delivery days plus the selected options. Delivery is
// floored at one day: express options may reduce it but never below that.
func (p *Pricer) OrderTotal(basePrice Price, baseDays int, options []ServiceOption, selectedIDs []string) OrderPricing {
	pricing := OrderPricing{
		TotalEUR: basePrice.EUR,
		TotalXAF: basePrice.XAF,
	}

	days := baseDays
	for _, id := range selectedIDs {
		if option := findOption(options, id); option != nil {
			pricing.TotalEUR += option.Price.EUR
			pricing.TotalXAF += option.Price.XAF
			days += option.ExtraDays
		}
	}

	if days < 1 {
		days = 1
	}
	pricing.TotalDays = days

	return pricing
}

// SelectedOptionLabels maps selected option ids to labels, skipping unknown
// ids. Orders persist labels, not ids.
func SelectedOptionLabels(options []ServiceOption, selectedIDs []string) []string {
	labels := make([]string, 0, len(selectedIDs))
	for _, id := range selectedIDs {
		if option := findOption(options, id); option != nil {
			labels = append(labels, option.Label)
		}
	}
	return labels
}

func findOption(options []ServiceOption, id string) *ServiceOption {
	for i := range options {
		if options[i].ID == id {
			return &options[i]
		}
	}
	return nil
}
