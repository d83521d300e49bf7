package pricing

import (
	"math"
	"testing"
)

func TestCalculator_Fare(t *testing.T) {
	tests := []struct {
		name     string
		rates    Rates
		distance float64
		want     float64
	}{
		{"default rates 3.5km", Rates{BaseFare: 200, RatePerKm: 500}, 3.5, 1950},
		{"default rates 5km", Rates{BaseFare: 200, RatePerKm: 500}, 5, 2700},
		{"alternate revision 3.5km", Rates{BaseFare: 500, RatePerKm: 100}, 3.5, 850},
		{"fractional distance", Rates{BaseFare: 200, RatePerKm: 500}, 0.01, 205},
		{"zero base fare", Rates{BaseFare: 0, RatePerKm: 120}, 10, 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCalculator(tt.rates)
			if err != nil {
				t.Fatalf("NewCalculator() error = %v", err)
			}
			got := c.Fare(tt.distance)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Fare(%v) = %v, want %v", tt.distance, got, tt.want)
			}
		})
	}
}

func TestCalculator_Deterministic(t *testing.T) {
	c, _ := NewCalculator(Rates{BaseFare: 200, RatePerKm: 500})
	first := c.Fare(12.34)
	for i := 0; i < 100; i++ {
		if got := c.Fare(12.34); got != first {
			t.Fatalf("Fare is not deterministic: %v != %v", got, first)
		}
	}
}

func TestCalculator_Quote(t *testing.T) {
	c, _ := NewCalculator(Rates{BaseFare: 200, RatePerKm: 500})
	q := c.Quote(3.5)
	if q.DistanceKm != 3.5 || q.BaseFare != 200 || q.RatePerKm != 500 || q.Fare != 1950 {
		t.Fatalf("unexpected quote: %+v", q)
	}
}

func TestNewCalculator_RejectsInvalidRates(t *testing.T) {
	bad := []Rates{
		{BaseFare: -1, RatePerKm: 500},
		{BaseFare: 200, RatePerKm: -0.5},
		{BaseFare: math.NaN(), RatePerKm: 500},
		{BaseFare: 200, RatePerKm: math.Inf(1)},
	}
	for _, r := range bad {
		if _, err := NewCalculator(r); err != ErrInvalidRates {
			t.Errorf("NewCalculator(%+v) error = %v, want ErrInvalidRates", r, err)
		}
	}
}

func TestCalculator_Rates(t *testing.T) {
	want := Rates{BaseFare: 500, RatePerKm: 100}
	c, err := NewCalculator(want)
	if err != nil {
		t.Fatalf("NewCalculator() error = %v", err)
	}
	if got := c.Rates(); got != want {
		t.Fatalf("Rates() = %+v, want %+v", got, want)
	}
}
