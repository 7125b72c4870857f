package repositories

import (
	"context"

	"tripbook/internal/domain"
	"tripbook/internal/domain/models"
	"tripbook/internal/store"
)

type PassengerRepository struct {
	R store.Runner
}

// InsertGuarded inserts a passenger only while the trip is below its
// vehicle's seat capacity. The count check and the insert are one
// statement, so no interleaving can observe a state in between; a full
// vehicle reports CapacityExceededError and inserts nothing.
func (r PassengerRepository) InsertGuarded(ctx context.Context, tripID int64, name, phone, gender string) (int64, error) {
	res, err := r.R.Exec(ctx, `
		INSERT INTO passengers (trip_id, name, phone, gender)
		SELECT t.id, ?, ?, ?
		FROM trips t
		JOIN routes r ON r.id = t.route_id
		JOIN vehicles v ON v.id = r.vehicle_id
		WHERE t.id = ?
		  AND (SELECT COUNT(*) FROM passengers p WHERE p.trip_id = t.id) < v.capacity`,
		name, phone, gender, tripID)
	if err != nil {
		return 0, err
	}
	if res.RowsAffected == 0 {
		return 0, domain.CapacityExceededError{TripID: tripID}
	}
	return res.LastInsertID, nil
}

func (r PassengerRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.Passenger, error) {
	rows, err := r.R.Query(ctx, `
		SELECT id, trip_id, name, phone, gender
		FROM passengers
		WHERE trip_id = ?
		ORDER BY id ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Passenger{}
	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(&p.ID, &p.TripID, &p.Name, &p.Phone, &p.Gender); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r PassengerRepository) CountByTrip(ctx context.Context, tripID int64) (int, error) {
	rows, err := r.R.Query(ctx, `
		SELECT COUNT(*) FROM passengers WHERE trip_id = ?`, tripID)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, err
		}
	}
	return n, rows.Err()
}

func (r PassengerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.R.Exec(ctx, `DELETE FROM passengers WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected > 0, nil
}
