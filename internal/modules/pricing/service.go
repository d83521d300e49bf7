// README: Fare calculator: base fare plus a per-kilometre rate.
package pricing

import (
	"errors"
	"math"
)

var ErrInvalidRates = errors.New("fare rates must be finite and non-negative")

type Calculator struct {
	rates Rates
}

func NewCalculator(r Rates) (*Calculator, error) {
	if !validRate(r.BaseFare) || !validRate(r.RatePerKm) {
		return nil, ErrInvalidRates
	}
	return &Calculator{rates: r}, nil
}

// Fare expects a finite positive distance; callers validate it first.
func (c *Calculator) Fare(distanceKm float64) float64 {
	return c.rates.BaseFare + c.rates.RatePerKm*distanceKm
}

func (c *Calculator) Quote(distanceKm float64) Quote {
	return Quote{
		DistanceKm: distanceKm,
		BaseFare:   c.rates.BaseFare,
		RatePerKm:  c.rates.RatePerKm,
		Fare:       c.Fare(distanceKm),
	}
}

// Rates returns the rates the calculator was built with.
func (c *Calculator) Rates() Rates {
	return c.rates
}

func validRate(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
