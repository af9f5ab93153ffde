package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tide-outfitters/tide/backend/internal/domain"
)

const selectTrips = `
		SELECT t.trip_id, t.location_id, t.start_time, t.end_time,
		       k.trip_kind_id, k.name, k.description, k.guided, k.meal_provided
		FROM trip t
		JOIN trip_kind k ON k.trip_kind_id = t.trip_kind_id`

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// FindTrip retrieves a trip and its kind by trip id.
func (r *pgTripRepo) FindTrip(ctx context.Context, id uuid.UUID) (domain.Trip, bool, error) {
	q, args := compileQuery(selectTrips, []predicate{eq("t.trip_id", id)}, "")

	t, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, false, nil
		}
		return domain.Trip{}, false, storeError(domain.EntityTrip, "repo.TripRepo.FindTrip", err)
	}
	return t, true, nil
}

// FindTrips returns the trips matching all set filter fields, ordered by id.
// Empty filters return an empty result without querying.
func (r *pgTripRepo) FindTrips(ctx context.Context, filters domain.TripFilters) ([]domain.Trip, error) {
	const op = "repo.TripRepo.FindTrips"

	if filters.IsEmpty() {
		return []domain.Trip{}, nil
	}

	q, args := compileQuery(selectTrips, tripPredicates(filters), "t.trip_id")

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, storeError(domain.EntityTrip, op, err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, storeError(domain.EntityTrip, op, fmt.Errorf("scan: %w", err))
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(domain.EntityTrip, op, fmt.Errorf("rows: %w", err))
	}
	return trips, nil
}
