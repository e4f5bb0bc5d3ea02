package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinetour/internal/model"
)

// TourRepo stores tours.  A programme has at most one tour
// (uq_tours_programme).
type TourRepo struct{ db *sql.DB }

func NewTourRepo(db *sql.DB) *TourRepo { return &TourRepo{db: db} }

const tourSelect = `SELECT t.id, t.programme_id, t.host_id, u.username, t.body, t.created_at
FROM tours t
JOIN users u ON u.id = t.host_id`

func scanTour(row rowScanner) (model.Tour, error) {
	var t model.Tour
	err := row.Scan(&t.ID, &t.ProgrammeID, &t.HostID, &t.HostUsername, &t.Body, &t.CreatedAt)
	return t, err
}

// ListWithProgramme returns every tour joined with its screening, earliest
// screening first.  The programme columns come first so scanProgramme can
// be reused; the tour body and creation time follow.
func (r *TourRepo) ListWithProgramme(ctx context.Context) ([]model.Tour, []model.Programme, error) {
	const q = "SELECT " + programmeColumns + ", t.body, t.created_at\n" + programmeFrom + `
JOIN tours t ON t.programme_id = p.id
JOIN users u ON u.id = t.host_id
ORDER BY p.starts_at, t.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var (
		tours      = make([]model.Tour, 0)
		programmes = make([]model.Programme, 0)
	)
	for rows.Next() {
		var t model.Tour
		p, err := scanProgramme(rows, &t.Body, &t.CreatedAt)
		if err != nil {
			return nil, nil, err
		}
		t.ID = p.Tour.ID
		t.ProgrammeID = p.ID
		t.HostID = p.Tour.HostID
		t.HostUsername = p.Tour.HostUsername
		tours = append(tours, t)
		programmes = append(programmes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return tours, programmes, nil
}

// GetByID returns a tour or ErrTourNotFound.
func (r *TourRepo) GetByID(ctx context.Context, id uint64) (model.Tour, error) {
	t, err := scanTour(r.db.QueryRowContext(ctx, tourSelect+" WHERE t.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Tour{}, ErrTourNotFound
	}
	return t, err
}

// Create stores a tour for programmeID hosted by hostID.  ErrTourExists is
// returned when the programme already has one; ErrProgrammeNotFound when
// the programme (or host) row is missing.
func (r *TourRepo) Create(ctx context.Context, programmeID, hostID uint64, body string) (model.Tour, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO tours (programme_id, host_id, body) VALUES (?, ?, ?)", programmeID, hostID, body)
	if err != nil {
		switch {
		case isDuplicate(err):
			return model.Tour{}, ErrTourExists
		case isMissingReference(err):
			return model.Tour{}, ErrProgrammeNotFound
		}
		return model.Tour{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Tour{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Delete removes a tour and returns it.  ErrTourNotFound when missing.
func (r *TourRepo) Delete(ctx context.Context, id uint64) (model.Tour, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Tour{}, err
	}
	defer func() { _ = tx.Rollback() }()

	t, err := scanTour(tx.QueryRowContext(ctx, tourSelect+" WHERE t.id = ? FOR UPDATE", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Tour{}, ErrTourNotFound
		}
		return model.Tour{}, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM tours WHERE id = ?", id); err != nil {
		return model.Tour{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Tour{}, err
	}
	return t, nil
}
