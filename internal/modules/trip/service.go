// README: Trip service validates bookings, prices them, and scopes every store call to the owner.
package trip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ojoto/internal/logging"
	"ojoto/internal/types"
)

// Fares computes the fare for a validated distance.
type Fares interface {
	Fare(distanceKm float64) float64
}

type Options struct {
	RequireCoordinates bool
	// Cache is optional; nil disables read-through caching.
	Cache Cache
}

type Service struct {
	store Store
	fares Fares
	opts  Options
}

func NewService(store Store, fares Fares, opts Options) *Service {
	return &Service{store: store, fares: fares, opts: opts}
}

var (
	ErrNotFound    = errors.New("trip not found")
	ErrNoPassenger = errors.New("missing passenger identity")
)

func (s *Service) Create(ctx context.Context, passengerID types.ID, in CreateInput) (*Trip, error) {
	if passengerID == "" {
		return nil, ErrNoPassenger
	}
	b, err := validateCreate(in, s.opts.RequireCoordinates)
	if err != nil {
		return nil, err
	}

	t := &Trip{
		PassengerID:        passengerID,
		OriginAddress:      b.originAddress,
		DestinationAddress: b.destinationAddress,
		Origin:             b.origin,
		Destination:        b.destination,
		DistanceKm:         b.distanceKm,
		Fare:               s.fares.Fare(b.distanceKm),
		Date:               b.date,
		Time:               b.time,
		Status:             StatusPending,
		CreatedAt:          time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("trip: create: %w", err)
	}
	logging.FromContext(ctx).Info("trip created",
		"trip_id", t.ID, "passenger_id", string(passengerID), "distance_km", t.DistanceKm, "fare", t.Fare)
	return t, nil
}

// List returns the passenger's trips in ascending id order. The slice is never nil.
func (s *Service) List(ctx context.Context, passengerID types.ID) ([]Trip, error) {
	if passengerID == "" {
		return nil, ErrNoPassenger
	}
	trips, err := s.store.ListByPassenger(ctx, passengerID)
	if err != nil {
		return nil, fmt.Errorf("trip: list: %w", err)
	}
	if trips == nil {
		trips = []Trip{}
	}
	return trips, nil
}

func (s *Service) Get(ctx context.Context, passengerID types.ID, tripID int64) (*Trip, error) {
	if passengerID == "" {
		return nil, ErrNoPassenger
	}
	key := Key{PassengerID: passengerID, TripID: tripID}
	var (
		gen  int64
		fill bool
	)
	if s.opts.Cache != nil {
		t, g, err := s.opts.Cache.Get(ctx, key)
		switch {
		case err != nil:
			logging.FromContext(ctx).WithError(err).Warn("trip cache read failed", "trip_id", tripID)
		case t != nil:
			return t, nil
		default:
			gen, fill = g, true
		}
	}

	t, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("trip: get: %w", err)
	}
	if fill {
		if err := s.opts.Cache.Fill(ctx, t, gen); err != nil {
			logging.FromContext(ctx).WithError(err).Warn("trip cache write failed", "trip_id", tripID)
		}
	}
	return t, nil
}

// Update applies p to the owner's trip. A new distance always reprices the trip.
func (s *Service) Update(ctx context.Context, passengerID types.ID, tripID int64, p Patch) (*Trip, error) {
	if passengerID == "" {
		return nil, ErrNoPassenger
	}
	ch, err := validatePatch(p)
	if err != nil {
		return nil, err
	}
	if ch.DistanceKm != nil {
		fare := s.fares.Fare(*ch.DistanceKm)
		ch.Fare = &fare
	}

	key := Key{PassengerID: passengerID, TripID: tripID}
	if ch.Empty() {
		t, err := s.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("trip: update: %w", err)
		}
		return t, nil
	}
	if err := s.invalidate(ctx, key); err != nil {
		return nil, fmt.Errorf("trip: update: %w", err)
	}
	t, err := s.store.Update(ctx, key, ch)
	if err != nil {
		return nil, fmt.Errorf("trip: update: %w", err)
	}
	if err := s.invalidate(ctx, key); err != nil {
		return nil, fmt.Errorf("trip: update: %w", err)
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, passengerID types.ID, tripID int64) error {
	if passengerID == "" {
		return ErrNoPassenger
	}
	key := Key{PassengerID: passengerID, TripID: tripID}
	if err := s.invalidate(ctx, key); err != nil {
		return fmt.Errorf("trip: delete: %w", err)
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("trip: delete: %w", err)
	}
	if err := s.invalidate(ctx, key); err != nil {
		return fmt.Errorf("trip: delete: %w", err)
	}
	logging.FromContext(ctx).Info("trip deleted", "trip_id", tripID, "passenger_id", string(passengerID))
	return nil
}

// invalidate runs before and after each mutation; failures reach the caller.
func (s *Service) invalidate(ctx context.Context, key Key) error {
	if s.opts.Cache == nil {
		return nil
	}
	if err := s.opts.Cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("invalidate cache: %w", err)
	}
	return nil
}
