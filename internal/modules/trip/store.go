// README: Trip store backed by PostgreSQL; every statement filters on (id, passenger_id).
package trip

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ojoto/internal/types"
)

type Store interface {
	// Create persists t and fills in t.ID.
	Create(ctx context.Context, t *Trip) error
	ListByPassenger(ctx context.Context, passengerID types.ID) ([]Trip, error)
	Get(ctx context.Context, key Key) (*Trip, error)
	Update(ctx context.Context, key Key, ch Changes) (*Trip, error)
	Delete(ctx context.Context, key Key) error
}

type PGStore struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

const tripColumns = `id, passenger_id, origin_address, destination_address,
       origin_lat, origin_lng, dest_lat, dest_lng,
       distance_km, fare, trip_date, trip_time, status, created_at`

func (s *PGStore) Create(ctx context.Context, t *Trip) error {
	oLat, oLng := coords(t.Origin)
	dLat, dLng := coords(t.Destination)
	return s.db.QueryRow(ctx, `
        INSERT INTO trips (
            passenger_id, origin_address, destination_address,
            origin_lat, origin_lng, dest_lat, dest_lng,
            distance_km, fare, trip_date, trip_time, status, created_at
        ) VALUES (
            $1, $2, $3,
            $4, $5, $6, $7,
            $8, $9, $10, $11, $12, $13
        )
        RETURNING id`,
		string(t.PassengerID), t.OriginAddress, t.DestinationAddress,
		oLat, oLng, dLat, dLng,
		t.DistanceKm, t.Fare, t.Date, t.Time, string(t.Status), t.CreatedAt,
	).Scan(&t.ID)
}

func (s *PGStore) ListByPassenger(ctx context.Context, passengerID types.ID) ([]Trip, error) {
	rows, err := s.db.Query(ctx, `
        SELECT `+tripColumns+`
        FROM trips
        WHERE passenger_id = $1
        ORDER BY id`, string(passengerID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (s *PGStore) Get(ctx context.Context, key Key) (*Trip, error) {
	row := s.db.QueryRow(ctx, `
        SELECT `+tripColumns+`
        FROM trips
        WHERE id = $1 AND passenger_id = $2`,
		key.TripID, string(key.PassengerID),
	)
	return notFound(scanTrip(row))
}

func (s *PGStore) Update(ctx context.Context, key Key, ch Changes) (*Trip, error) {
	oLat, oLng := coords(ch.Origin)
	dLat, dLng := coords(ch.Destination)
	row := s.db.QueryRow(ctx, `
        UPDATE trips
        SET origin_address      = COALESCE($3, origin_address),
            destination_address = COALESCE($4, destination_address),
            trip_date           = COALESCE($5, trip_date),
            trip_time           = COALESCE($6, trip_time),
            distance_km         = COALESCE($7, distance_km),
            fare                = COALESCE($8, fare),
            origin_lat          = COALESCE($9, origin_lat),
            origin_lng          = COALESCE($10, origin_lng),
            dest_lat            = COALESCE($11, dest_lat),
            dest_lng            = COALESCE($12, dest_lng)
        WHERE id = $1 AND passenger_id = $2
        RETURNING `+tripColumns,
		key.TripID, string(key.PassengerID),
		ch.OriginAddress, ch.DestinationAddress, ch.Date, ch.Time,
		ch.DistanceKm, ch.Fare,
		oLat, oLng, dLat, dLng,
	)
	return notFound(scanTrip(row))
}

func (s *PGStore) Delete(ctx context.Context, key Key) error {
	tag, err := s.db.Exec(ctx, `
        DELETE FROM trips
        WHERE id = $1 AND passenger_id = $2`,
		key.TripID, string(key.PassengerID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTrip(row pgx.Row) (*Trip, error) {
	var t Trip
	var passengerID, status string
	var oLat, oLng, dLat, dLng *float64
	err := row.Scan(
		&t.ID, &passengerID, &t.OriginAddress, &t.DestinationAddress,
		&oLat, &oLng, &dLat, &dLng,
		&t.DistanceKm, &t.Fare, &t.Date, &t.Time, &status, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.PassengerID = types.ID(passengerID)
	t.Status = Status(status)
	t.Origin = toPoint(oLat, oLng)
	t.Destination = toPoint(dLat, dLng)
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

func notFound(t *Trip, err error) (*Trip, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

func coords(p *types.Point) (lat, lng *float64) {
	if p == nil {
		return nil, nil
	}
	la, ln := p.Lat, p.Lng
	return &la, &ln
}

func toPoint(lat, lng *float64) *types.Point {
	if lat == nil || lng == nil {
		return nil
	}
	return &types.Point{Lat: *lat, Lng: *lng}
}
