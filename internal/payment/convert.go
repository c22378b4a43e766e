// Package payment handles the handoff to the Lygos payment gateway.
package payment

import (
	"fmt"

	"github.com/devaistudio/portfolio/internal/catalog"
)

// The gateway settles in XAF only. Catalog prices are authored per
// currency and never converted for display; this fixed rate exists solely
// to produce a gateway amount for quotes priced in EUR. It is an
// approximation, not a live rate.
const xafPerEUR = 655

// AmountConverter produces the XAF amount sent to the gateway from a
// quote's stored amount and currency.
type AmountConverter struct{}

// NewAmountConverter creates an AmountConverter.
func NewAmountConverter() *AmountConverter {
	return &AmountConverter{}
}

// GatewayAmount converts amount to XAF. XAF amounts pass through
// unchanged; EUR amounts are multiplied by the fixed rate.
func (c *AmountConverter) GatewayAmount(amount int, currency catalog.Currency) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("amount must be non-negative, got %d", amount)
	}

	switch currency {
	case catalog.CurrencyXAF:
		return amount, nil
	case catalog.CurrencyEUR:
		return amount * xafPerEUR, nil
	default:
		return 0, fmt.Errorf("unsupported currency: %s", currency)
	}
}

// FormatAmount renders an amount with the symbol the site uses for the
// given currency.
func FormatAmount(amount int, currency catalog.Currency) string {
	if currency == catalog.CurrencyEUR {
		return fmt.Sprintf("%d €", amount)
	}
	return fmt.Sprintf("%d FCFA", amount)
}
