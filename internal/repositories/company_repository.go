package repositories

import (
	"context"

	"tripbook/internal/domain/models"
	"tripbook/internal/store"
)

type CompanyRepository struct {
	R store.Runner
}

func (r CompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	rows, err := r.R.Query(ctx, `
		SELECT id, name FROM companies ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Company{}
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r CompanyRepository) Create(ctx context.Context, name string) (int64, error) {
	res, err := r.R.Exec(ctx, `INSERT INTO companies (name) VALUES (?)`, name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertID, nil
}

func (r CompanyRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.R.Exec(ctx, `DELETE FROM companies WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected > 0, nil
}
