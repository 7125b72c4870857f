package repositories

import (
	"context"

	"tripbook/internal/domain/models"
	"tripbook/internal/store"
)

// DriverRepository treats the phone number as the driver's natural key:
// the same phone is never inserted twice, it is refreshed in place.
type DriverRepository struct {
	R store.Runner
}

func (r DriverRepository) GetByPhone(ctx context.Context, phone string) (models.Driver, bool, error) {
	rows, err := r.R.Query(ctx, `
		SELECT id, name, phone, plate
		FROM drivers
		WHERE phone = ?
		LIMIT 1`, phone)
	if err != nil {
		return models.Driver{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return models.Driver{}, false, rows.Err()
	}
	var d models.Driver
	if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.Plate); err != nil {
		return models.Driver{}, false, err
	}
	return d, true, nil
}

// Upsert refreshes name and plate for a known phone, or inserts a new
// driver row and returns the generated id.
func (r DriverRepository) Upsert(ctx context.Context, name, phone, plate string) (int64, error) {
	existing, found, err := r.GetByPhone(ctx, phone)
	if err != nil {
		return 0, err
	}
	if found {
		_, err := r.R.Exec(ctx, `
			UPDATE drivers SET name = ?, plate = ? WHERE id = ?`,
			name, plate, existing.ID)
		if err != nil {
			return 0, err
		}
		return existing.ID, nil
	}

	res, err := r.R.Exec(ctx, `
		INSERT INTO drivers (name, phone, plate) VALUES (?, ?, ?)`,
		name, phone, plate)
	if err != nil {
		return 0, err
	}
	return res.LastInsertID, nil
}

func (r DriverRepository) List(ctx context.Context) ([]models.Driver, error) {
	rows, err := r.R.Query(ctx, `
		SELECT id, name, phone, plate
		FROM drivers
		ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Driver{}
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.Plate); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
