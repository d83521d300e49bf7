// README: Fare rates and quote definitions.
package pricing

// Rates are process-wide and fixed after startup.
type Rates struct {
	BaseFare  float64
	RatePerKm float64
}

type Quote struct {
	DistanceKm float64 `json:"distance_km"`
	BaseFare   float64 `json:"base_fare"`
	RatePerKm  float64 `json:"rate_per_km"`
	Fare       float64 `json:"fare"`
}
