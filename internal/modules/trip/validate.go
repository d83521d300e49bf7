// README: Booking payload validation: presence first, then numeric coercion, then range and format.
package trip

import (
	"strings"
	"time"

	"ojoto/internal/types"
	"ojoto/internal/validation"
)

const (
	fieldOriginAddress      = "origin_address"
	fieldDestinationAddress = "destination_address"
	fieldDate               = "date"
	fieldTime               = "time"
	fieldDistance           = "distance_km"
	fieldOriginLat          = "origin_lat"
	fieldOriginLng          = "origin_lng"
	fieldDestLat            = "dest_lat"
	fieldDestLng            = "dest_lng"
)

var timeLayouts = []string{"15:04", "15:04:05"}

type booking struct {
	originAddress      string
	destinationAddress string
	date               string
	time               string
	distanceKm         float64
	origin             *types.Point
	destination        *types.Point
}

func validateCreate(in CreateInput, requireCoordinates bool) (booking, error) {
	required := []struct {
		field   string
		present bool
	}{
		{fieldOriginAddress, notBlank(in.OriginAddress)},
		{fieldDestinationAddress, notBlank(in.DestinationAddress)},
		{fieldDate, notBlank(in.Date)},
		{fieldTime, notBlank(in.Time)},
		{fieldDistance, in.DistanceKm.Present()},
	}
	if requireCoordinates {
		required = append(required, []struct {
			field   string
			present bool
		}{
			{fieldOriginLat, in.OriginLat.Present()},
			{fieldOriginLng, in.OriginLng.Present()},
			{fieldDestLat, in.DestLat.Present()},
			{fieldDestLng, in.DestLng.Present()},
		}...)
	}
	for _, r := range required {
		if !r.present {
			return booking{}, types.Required(r.field)
		}
	}

	b := booking{
		originAddress:      strings.TrimSpace(in.OriginAddress),
		destinationAddress: strings.TrimSpace(in.DestinationAddress),
		date:               strings.TrimSpace(in.Date),
		time:               strings.TrimSpace(in.Time),
	}
	var err error
	if b.distanceKm, err = ParseDistance(in.DistanceKm); err != nil {
		return booking{}, err
	}
	if err = checkDate(b.date); err != nil {
		return booking{}, err
	}
	if err = checkTime(b.time); err != nil {
		return booking{}, err
	}
	if b.origin, err = point(fieldOriginLat, fieldOriginLng, in.OriginLat, in.OriginLng); err != nil {
		return booking{}, err
	}
	if b.destination, err = point(fieldDestLat, fieldDestLng, in.DestLat, in.DestLng); err != nil {
		return booking{}, err
	}
	return b, nil
}

func validatePatch(p Patch) (Changes, error) {
	var ch Changes
	var err error
	if ch.OriginAddress, err = patchText(fieldOriginAddress, p.OriginAddress); err != nil {
		return Changes{}, err
	}
	if ch.DestinationAddress, err = patchText(fieldDestinationAddress, p.DestinationAddress); err != nil {
		return Changes{}, err
	}
	if ch.Date, err = patchText(fieldDate, p.Date); err != nil {
		return Changes{}, err
	}
	if ch.Date != nil {
		if err = checkDate(*ch.Date); err != nil {
			return Changes{}, err
		}
	}
	if ch.Time, err = patchText(fieldTime, p.Time); err != nil {
		return Changes{}, err
	}
	if ch.Time != nil {
		if err = checkTime(*ch.Time); err != nil {
			return Changes{}, err
		}
	}
	if p.DistanceKm.Sent() {
		d, err := ParseDistance(p.DistanceKm)
		if err != nil {
			return Changes{}, err
		}
		ch.DistanceKm = &d
	}
	if ch.Origin, err = point(fieldOriginLat, fieldOriginLng, p.OriginLat, p.OriginLng); err != nil {
		return Changes{}, err
	}
	if ch.Destination, err = point(fieldDestLat, fieldDestLng, p.DestLat, p.DestLng); err != nil {
		return Changes{}, err
	}
	return ch, nil
}

// ParseDistance coerces a distance and requires it to be strictly positive.
func ParseDistance(n Number) (float64, error) {
	d, err := n.Float()
	if err != nil {
		return 0, types.Invalid(fieldDistance, "must be a number")
	}
	if d <= 0 {
		return 0, types.Invalid(fieldDistance, "must be a positive number")
	}
	return d, nil
}

func patchText(field string, v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil, types.Invalid(field, "must not be empty")
	}
	return &s, nil
}

func checkDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return types.Invalid(fieldDate, "must be formatted as YYYY-MM-DD")
	}
	return nil
}

func checkTime(s string) error {
	for _, layout := range timeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return nil
		}
	}
	return types.Invalid(fieldTime, "must be formatted as HH:MM or HH:MM:SS")
}

// point returns nil when neither coordinate was sent; a half pair is an error.
func point(latField, lngField string, lat, lng Number) (*types.Point, error) {
	if !lat.Present() && !lng.Present() {
		return nil, nil
	}
	if !lat.Present() {
		return nil, types.Required(latField)
	}
	if !lng.Present() {
		return nil, types.Required(lngField)
	}
	la, err := lat.Float()
	if err != nil {
		return nil, types.Invalid(latField, "must be a number")
	}
	ln, err := lng.Float()
	if err != nil {
		return nil, types.Invalid(lngField, "must be a number")
	}
	if err := validation.Var(latField, la, "latitude"); err != nil {
		return nil, err
	}
	if err := validation.Var(lngField, ln, "longitude"); err != nil {
		return nil, err
	}
	return &types.Point{Lat: la, Lng: ln}, nil
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}
