package repositories

import (
	"context"

	"tripbook/internal/domain/models"
	"tripbook/internal/store"
)

type PlaceRepository struct {
	R store.Runner
}

func (r PlaceRepository) List(ctx context.Context) ([]models.Place, error) {
	rows, err := r.R.Query(ctx, `
		SELECT id, name, state_id
		FROM places
		ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Place{}
	for rows.Next() {
		var p models.Place
		if err := rows.Scan(&p.ID, &p.Name, &p.StateID); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r PlaceRepository) Create(ctx context.Context, name string, stateID int64) (int64, error) {
	res, err := r.R.Exec(ctx, `
		INSERT INTO places (name, state_id) VALUES (?, ?)`, name, stateID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertID, nil
}

func (r PlaceRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.R.Exec(ctx, `DELETE FROM places WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected > 0, nil
}
