package repositories

import (
	"context"

	"tripbook/internal/domain/models"
	"tripbook/internal/store"
)

type VehicleRepository struct {
	R store.Runner
}

func (r VehicleRepository) List(ctx context.Context) ([]models.Vehicle, error) {
	rows, err := r.R.Query(ctx, `
		SELECT id, type, capacity
		FROM vehicles
		ORDER BY type ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.Type, &v.Capacity); err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r VehicleRepository) GetByID(ctx context.Context, id int64) (models.Vehicle, bool, error) {
	rows, err := r.R.Query(ctx, `
		SELECT id, type, capacity
		FROM vehicles
		WHERE id = ?
		LIMIT 1`, id)
	if err != nil {
		return models.Vehicle{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return models.Vehicle{}, false, rows.Err()
	}
	var v models.Vehicle
	if err := rows.Scan(&v.ID, &v.Type, &v.Capacity); err != nil {
		return models.Vehicle{}, false, err
	}
	return v, true, nil
}

func (r VehicleRepository) Create(ctx context.Context, vehicleType string, capacity int) (int64, error) {
	res, err := r.R.Exec(ctx, `
		INSERT INTO vehicles (type, capacity) VALUES (?, ?)`,
		vehicleType, capacity)
	if err != nil {
		return 0, err
	}
	return res.LastInsertID, nil
}

func (r VehicleRepository) Update(ctx context.Context, id int64, vehicleType string, capacity int) (bool, error) {
	res, err := r.R.Exec(ctx, `
		UPDATE vehicles SET type = ?, capacity = ? WHERE id = ?`,
		vehicleType, capacity, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected > 0, nil
}

func (r VehicleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.R.Exec(ctx, `DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected > 0, nil
}
