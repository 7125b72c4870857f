package repositories

import (
	"context"

	"tripbook/internal/domain/models"
	"tripbook/internal/store"
)

type RouteRepository struct {
	R store.Runner
}

// Upsert writes one direction of a route; fares replace the stored ones
// when the (from, to, vehicle) triple already exists.
func (r RouteRepository) Upsert(ctx context.Context, fromPlaceID, toPlaceID, vehicleID int64, fareAC, fareNonAC *int64) error {
	_, err := r.R.Exec(ctx, `
		INSERT INTO routes (from_place_id, to_place_id, vehicle_id, fare_ac, fare_non_ac)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (from_place_id, to_place_id, vehicle_id)
		DO UPDATE SET fare_ac = excluded.fare_ac, fare_non_ac = excluded.fare_non_ac`,
		fromPlaceID, toPlaceID, vehicleID, nullableInt(fareAC), nullableInt(fareNonAC))
	return err
}

func (r RouteRepository) GetByID(ctx context.Context, id int64) (models.Route, bool, error) {
	rows, err := r.R.Query(ctx, `
		SELECT r.id, r.from_place_id, r.to_place_id, r.vehicle_id, r.fare_ac, r.fare_non_ac,
		       pf.name, pt.name
		FROM routes r
		JOIN places pf ON pf.id = r.from_place_id
		JOIN places pt ON pt.id = r.to_place_id
		WHERE r.id = ?
		LIMIT 1`, id)
	if err != nil {
		return models.Route{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return models.Route{}, false, rows.Err()
	}
	rt, err := scanRoute(rows)
	if err != nil {
		return models.Route{}, false, err
	}
	return rt, true, nil
}

// GetByTriple finds one direction by its natural key.
func (r RouteRepository) GetByTriple(ctx context.Context, fromPlaceID, toPlaceID, vehicleID int64) (models.Route, bool, error) {
	rows, err := r.R.Query(ctx, `
		SELECT r.id, r.from_place_id, r.to_place_id, r.vehicle_id, r.fare_ac, r.fare_non_ac,
		       pf.name, pt.name
		FROM routes r
		JOIN places pf ON pf.id = r.from_place_id
		JOIN places pt ON pt.id = r.to_place_id
		WHERE r.from_place_id = ? AND r.to_place_id = ? AND r.vehicle_id = ?
		LIMIT 1`, fromPlaceID, toPlaceID, vehicleID)
	if err != nil {
		return models.Route{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return models.Route{}, false, rows.Err()
	}
	rt, err := scanRoute(rows)
	if err != nil {
		return models.Route{}, false, err
	}
	return rt, true, nil
}

func (r RouteRepository) List(ctx context.Context) ([]models.Route, error) {
	rows, err := r.R.Query(ctx, `
		SELECT r.id, r.from_place_id, r.to_place_id, r.vehicle_id, r.fare_ac, r.fare_non_ac,
		       pf.name, pt.name
		FROM routes r
		JOIN places pf ON pf.id = r.from_place_id
		JOIN places pt ON pt.id = r.to_place_id
		ORDER BY pf.name ASC, pt.name ASC, r.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rt)
	}
	return list, rows.Err()
}

func scanRoute(rows interface {
	Scan(dest ...any) error
}) (models.Route, error) {
	var rt models.Route
	if err := rows.Scan(
		&rt.ID, &rt.FromPlaceID, &rt.ToPlaceID, &rt.VehicleID,
		&rt.FareAC, &rt.FareNonAC, &rt.FromPlace, &rt.ToPlace,
	); err != nil {
		return models.Route{}, err
	}
	return rt, nil
}

func nullableInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
