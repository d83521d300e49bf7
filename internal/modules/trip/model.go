// README: Trip aggregate, ownership key, and service inputs.
package trip

import (
	"time"

	"ojoto/internal/types"
)

// Status is opaque to this module; only the initial value is set here.
type Status string

const StatusPending Status = "pending"

type Trip struct {
	ID                 int64        `json:"id"`
	PassengerID        types.ID     `json:"passenger_id"`
	OriginAddress      string       `json:"origin_address"`
	DestinationAddress string       `json:"destination_address"`
	Origin             *types.Point `json:"origin,omitempty"`
	Destination        *types.Point `json:"destination,omitempty"`
	DistanceKm         float64      `json:"distance_km"`
	Fare               float64      `json:"fare"`
	Date               string       `json:"date"`
	Time               string       `json:"time"`
	Status             Status       `json:"status"`
	CreatedAt          time.Time    `json:"created_at"`
}

// Key addresses a trip through its owner. Stores never look a trip up by id alone.
type Key struct {
	PassengerID types.ID
	TripID      int64
}

func (t *Trip) Key() Key {
	return Key{PassengerID: t.PassengerID, TripID: t.ID}
}

type CreateInput struct {
	OriginAddress      string
	DestinationAddress string
	Date               string
	Time               string
	DistanceKm         Number
	OriginLat          Number
	OriginLng          Number
	DestLat            Number
	DestLng            Number
}

// Patch is a partial update. Nil pointers and unsent numbers leave the stored value alone.
// Fare is never patched directly; it follows distance.
type Patch struct {
	OriginAddress      *string
	DestinationAddress *string
	Date               *string
	Time               *string
	DistanceKm         Number
	OriginLat          Number
	OriginLng          Number
	DestLat            Number
	DestLng            Number
}

// Changes is a validated Patch as handed to the store.
type Changes struct {
	OriginAddress      *string
	DestinationAddress *string
	Date               *string
	Time               *string
	Origin             *types.Point
	Destination        *types.Point
	DistanceKm         *float64
	Fare               *float64
}

func (c Changes) Empty() bool {
	return c.OriginAddress == nil && c.DestinationAddress == nil &&
		c.Date == nil && c.Time == nil &&
		c.Origin == nil && c.Destination == nil &&
		c.DistanceKm == nil && c.Fare == nil
}
