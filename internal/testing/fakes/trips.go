// Package fakes provides in-memory stores for tests.
package fakes

import (
	"context"
	"errors"
	"sort"
	"sync"

	"ojoto/internal/modules/trip"
	"ojoto/internal/types"
)

// TripStore is an in-memory trip.Store that honours the owner filter.
type TripStore struct {
	mu     sync.Mutex
	nextID int64
	trips  map[int64]trip.Trip

	// Err, when set, is returned by every call.
	Err error
}

func NewTripStore() *TripStore {
	return &TripStore{trips: make(map[int64]trip.Trip)}
}

func (s *TripStore) Create(_ context.Context, t *trip.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.nextID++
	t.ID = s.nextID
	s.trips[t.ID] = clone(*t)
	return nil
}

func (s *TripStore) ListByPassenger(_ context.Context, passengerID types.ID) ([]trip.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []trip.Trip{}
	for _, t := range s.trips {
		if t.PassengerID == passengerID {
			out = append(out, clone(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *TripStore) Get(_ context.Context, key trip.Key) (*trip.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	t, ok := s.owned(key)
	if !ok {
		return nil, trip.ErrNotFound
	}
	c := clone(t)
	return &c, nil
}

func (s *TripStore) Update(_ context.Context, key trip.Key, ch trip.Changes) (*trip.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	t, ok := s.owned(key)
	if !ok {
		return nil, trip.ErrNotFound
	}
	setString(&t.OriginAddress, ch.OriginAddress)
	setString(&t.DestinationAddress, ch.DestinationAddress)
	setString(&t.Date, ch.Date)
	setString(&t.Time, ch.Time)
	if ch.DistanceKm != nil {
		t.DistanceKm = *ch.DistanceKm
	}
	if ch.Fare != nil {
		t.Fare = *ch.Fare
	}
	if ch.Origin != nil {
		p := *ch.Origin
		t.Origin = &p
	}
	if ch.Destination != nil {
		p := *ch.Destination
		t.Destination = &p
	}
	s.trips[t.ID] = t
	c := clone(t)
	return &c, nil
}

func (s *TripStore) Delete(_ context.Context, key trip.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.owned(key); !ok {
		return trip.ErrNotFound
	}
	delete(s.trips, key.TripID)
	return nil
}

// Len reports how many trips are stored across all owners.
func (s *TripStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.trips)
}

func (s *TripStore) owned(key trip.Key) (trip.Trip, bool) {
	t, ok := s.trips[key.TripID]
	if !ok || t.PassengerID != key.PassengerID {
		return trip.Trip{}, false
	}
	return t, true
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func clone(t trip.Trip) trip.Trip {
	if t.Origin != nil {
		p := *t.Origin
		t.Origin = &p
	}
	if t.Destination != nil {
		p := *t.Destination
		t.Destination = &p
	}
	return t
}

// ErrStoreDown simulates a persistence failure.
var ErrStoreDown = errors.New("store unavailable")
