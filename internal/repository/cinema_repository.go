package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cinetour/internal/model"
)

// CinemaRepo reads the cinemas table.  Cinemas are maintained by an import
// job outside this service.
type CinemaRepo struct {
	db *sql.DB
}

func NewCinemaRepo(db *sql.DB) *CinemaRepo {
	return &CinemaRepo{db: db}
}

// ListAll returns all cinemas ordered by name.
func (r *CinemaRepo) ListAll(ctx context.Context) ([]model.Cinema, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, address, website FROM cinemas ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Cinema, 0)
	for rows.Next() {
		var c model.Cinema
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.Website); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
