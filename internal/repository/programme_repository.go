package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinetour/internal/model"
)

// ProgrammeRepo reads screenings together with their cinema, film and tour.
type ProgrammeRepo struct{ db *sql.DB }

func NewProgrammeRepo(db *sql.DB) *ProgrammeRepo { return &ProgrammeRepo{db: db} }

// Column list and base joins shared by programme and tour queries.  The
// tour columns are NULL when nobody hosts a tour for the screening.
const (
	programmeColumns = `p.id, p.starts_at,
       c.id, c.name,
       f.id, f.title, f.genre, f.english_friendly,
       t.id, t.host_id, u.username`
	programmeFrom = `FROM programmes p
JOIN cinemas c ON c.id = p.cinema_id
JOIN films f   ON f.id = p.film_id`
	programmeSelect = "SELECT " + programmeColumns + "\n" + programmeFrom + `
LEFT JOIN tours t ON t.programme_id = p.id
LEFT JOIN users u ON u.id = t.host_id`
)

// scanProgramme reads one programmeSelect row.  extra receives any columns
// appended after the programme ones.
func scanProgramme(row rowScanner, extra ...any) (model.Programme, error) {
	var (
		p        model.Programme
		tourID   sql.NullInt64
		hostID   sql.NullInt64
		hostName sql.NullString
	)
	dest := []any{
		&p.ID, &p.StartsAt,
		&p.Cinema.ID, &p.Cinema.Name,
		&p.Film.ID, &p.Film.Title, &p.Film.Genre, &p.Film.EnglishFriendly,
		&tourID, &hostID, &hostName,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return model.Programme{}, err
	}
	if tourID.Valid {
		p.Tour = &model.ProgrammeTour{
			ID:           uint64(tourID.Int64),
			HostID:       uint64(hostID.Int64),
			HostUsername: hostName.String,
		}
	}
	return p, nil
}

// ListUpcoming returns screenings that have not started yet, earliest first.
func (r *ProgrammeRepo) ListUpcoming(ctx context.Context) ([]model.Programme, error) {
	rows, err := r.db.QueryContext(ctx, programmeSelect+`
WHERE p.starts_at >= UTC_TIMESTAMP()
ORDER BY p.starts_at, p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Programme, 0)
	for rows.Next() {
		p, err := scanProgramme(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns one screening or ErrProgrammeNotFound.
func (r *ProgrammeRepo) GetByID(ctx context.Context, id uint64) (model.Programme, error) {
	p, err := scanProgramme(r.db.QueryRowContext(ctx, programmeSelect+`
WHERE p.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Programme{}, ErrProgrammeNotFound
	}
	return p, err
}
