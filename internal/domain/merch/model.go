package merch

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyName     = errors.New("product name cannot be empty")
	ErrNegativePrice = errors.New("product price cannot be negative")
)

// Product is an item in the studio shop. Prices are in cents.
type Product struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
	CreatedAt   time.Time
}

// Validate checks if the Product has valid data.
// PRE: Product struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.PriceCents < 0 {
		return ErrNegativePrice
	}
	return nil
}

// PriceLabel renders the price as shown in the shop, e.g. "Ksh1500.00".
func (p *Product) PriceLabel() string {
	return fmt.Sprintf("Ksh%d.%02d", p.PriceCents/100, p.PriceCents%100)
}
