package pricing

import (
	"errors"
	"strings"
)

// Known services on the services page.
const (
	ServiceOneOnOne  = "one-on-one"
	ServiceOnline    = "online"
	ServiceNutrition = "nutrition"
)

// Domain errors
var (
	ErrEmptyServiceID = errors.New("service ID cannot be empty")
	ErrEmptyTierName  = errors.New("pricing tier name cannot be empty")
	ErrEmptyTierPrice = errors.New("pricing tier price cannot be empty")
)

// Tier is one price option of a service. Price is display text, e.g. "Ksh 8,000/month".
type Tier struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	Note  string `json:"note,omitempty"`
}

// Service holds the pricing tiers of one service.
type Service struct {
	ID    string
	Tiers []Tier
}

// Validate checks if the Service has valid data.
// PRE: Service struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Service) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrEmptyServiceID
	}
	for _, t := range s.Tiers {
		if strings.TrimSpace(t.Name) == "" {
			return ErrEmptyTierName
		}
		if strings.TrimSpace(t.Price) == "" {
			return ErrEmptyTierPrice
		}
	}
	return nil
}
