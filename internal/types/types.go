// README: Common value objects shared across modules.
package types

// ID identifies a user. Local accounts use their numeric id as text,
// Firebase accounts use their UID.
type ID string

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
