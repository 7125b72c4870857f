package repositories

import (
	"context"

	"tripbook/internal/domain/models"
	"tripbook/internal/store"
	"tripbook/internal/utils"
)

type TripRepository struct {
	R store.Runner
}

// TripSummary is a trip joined with its occupancy for listing screens.
type TripSummary struct {
	models.Trip
	DriverName     string `json:"driverName"`
	FromPlace      string `json:"fromPlace"`
	ToPlace        string `json:"toPlace"`
	Capacity       int    `json:"capacity"`
	PassengerCount int    `json:"passengerCount"`
	SeatsLeft      int    `json:"seatsLeft"`
}

func (r TripRepository) GetByCode(ctx context.Context, code string) (models.Trip, bool, error) {
	rows, err := r.R.Query(ctx, `
		SELECT id, code, route_id, driver_id, plate, has_ac, created_at
		FROM trips
		WHERE code = ?
		LIMIT 1`, code)
	if err != nil {
		return models.Trip{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return models.Trip{}, false, rows.Err()
	}
	t, err := scanTrip(rows)
	if err != nil {
		return models.Trip{}, false, err
	}
	return t, true, nil
}

// GetOrCreate returns the trip bound to code, creating it on first use.
// Repeated bookings with the same code land on the same trip.
func (r TripRepository) GetOrCreate(ctx context.Context, code string, routeID, driverID int64, plate string, hasAC bool) (models.Trip, error) {
	if t, found, err := r.GetByCode(ctx, code); err != nil || found {
		return t, err
	}

	createdAt := utils.FormatDateTime(utils.NowUTC())
	res, err := r.R.Exec(ctx, `
		INSERT INTO trips (code, route_id, driver_id, plate, has_ac, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		code, routeID, driverID, plate, boolToInt(hasAC), createdAt)
	if err != nil {
		return models.Trip{}, err
	}
	return models.Trip{
		ID:        res.LastInsertID,
		Code:      code,
		RouteID:   routeID,
		DriverID:  driverID,
		Plate:     plate,
		HasAC:     hasAC,
		CreatedAt: createdAt,
	}, nil
}

// SeatsLeft recomputes capacity minus the committed passenger count.
func (r TripRepository) SeatsLeft(ctx context.Context, tripID int64) (int, error) {
	rows, err := r.R.Query(ctx, `
		SELECT v.capacity - (SELECT COUNT(*) FROM passengers p WHERE p.trip_id = t.id)
		FROM trips t
		JOIN routes r ON r.id = t.route_id
		JOIN vehicles v ON v.id = r.vehicle_id
		WHERE t.id = ?`, tripID)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, errTripNotFound(tripID)
	}
	var left int
	if err := rows.Scan(&left); err != nil {
		return 0, err
	}
	return left, nil
}

func (r TripRepository) List(ctx context.Context) ([]TripSummary, error) {
	rows, err := r.R.Query(ctx, `
		SELECT t.id, t.code, t.route_id, t.driver_id, t.plate, t.has_ac, t.created_at,
		       d.name,
		       pf.name, pt.name,
		       v.capacity,
		       (SELECT COUNT(*) FROM passengers p WHERE p.trip_id = t.id)
		FROM trips t
		JOIN drivers d ON d.id = t.driver_id
		JOIN routes r ON r.id = t.route_id
		JOIN places pf ON pf.id = r.from_place_id
		JOIN places pt ON pt.id = r.to_place_id
		JOIN vehicles v ON v.id = r.vehicle_id
		ORDER BY t.created_at DESC, t.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []TripSummary{}
	for rows.Next() {
		var s TripSummary
		var hasAC int
		if err := rows.Scan(
			&s.ID, &s.Code, &s.RouteID, &s.DriverID, &s.Plate, &hasAC, &s.CreatedAt,
			&s.DriverName, &s.FromPlace, &s.ToPlace, &s.Capacity, &s.PassengerCount,
		); err != nil {
			return nil, err
		}
		s.HasAC = hasAC != 0
		s.SeatsLeft = s.Capacity - s.PassengerCount
		list = append(list, s)
	}
	return list, rows.Err()
}

// Delete removes the trip together with its passengers. The cascade runs
// inside the engine, so the pair can never be observed half-deleted.
func (r TripRepository) Delete(ctx context.Context, tripID int64) (bool, error) {
	res, err := r.R.Exec(ctx, `DELETE FROM trips WHERE id = ?`, tripID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected > 0, nil
}

func scanTrip(rows interface {
	Scan(dest ...any) error
}) (models.Trip, error) {
	var t models.Trip
	var hasAC int
	if err := rows.Scan(&t.ID, &t.Code, &t.RouteID, &t.DriverID, &t.Plate, &hasAC, &t.CreatedAt); err != nil {
		return models.Trip{}, err
	}
	t.HasAC = hasAC != 0
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
