package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/cinetour/internal/model"
)

// UserRepo covers the users table and the profile aggregate built on it.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = "id, username, first_name, last_name, email, self_description"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.SelfDescription)
	return u, err
}

// ListPublic returns every user with private fields removed, ordered by id.
func (r *UserRepo) ListPublic(ctx context.Context) ([]model.PublicUser, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.PublicUser, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u.Public())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a user by id or returns ErrUserNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByUsername fetches a user by exact username or returns ErrUserNotFound.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.TrimSpace(username)
	u, err := scanUser(r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = ? LIMIT 1", username))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetProfile builds the profile aggregate for a user.  ErrUserNotFound is
// returned when the user row is gone.
func (r *UserRepo) GetProfile(ctx context.Context, userID uint64) (model.Profile, error) {
	const q = `SELECT u.id, u.created_at,
	                  (SELECT COUNT(*) FROM friends f WHERE f.owner_id = u.id),
	                  (SELECT COUNT(*) FROM tours t WHERE t.host_id = u.id)
	           FROM users u WHERE u.id = ?`
	var p model.Profile
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&p.UserID, &p.MemberSince, &p.FriendCount, &p.HostedTourCount)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, ErrUserNotFound
	}
	return p, err
}

// Update overwrites the editable fields and returns the stored row.  The
// unique username key turns a concurrent claim into ErrUsernameTaken.
func (r *UserRepo) Update(ctx context.Context, id uint64, upd model.ProfileUpdate) (model.User, error) {
	const q = `UPDATE users
	           SET username = ?, first_name = ?, last_name = ?, email = ?, self_description = ?
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q,
		upd.Username, upd.FirstName, upd.LastName, upd.Email, upd.SelfDescription, id); err != nil {
		if isDuplicate(err) {
			return model.User{}, ErrUsernameTaken
		}
		return model.User{}, err
	}
	// MySQL reports zero affected rows for an unchanged row, so existence is
	// checked by reading it back.
	return r.GetByID(ctx, id)
}

// Delete removes a user and returns the row as it was.  Sessions, friend
// edges in both directions and hosted tours go with it through the
// ON DELETE CASCADE foreign keys.
func (r *UserRepo) Delete(ctx context.Context, id uint64) (model.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.User{}, err
	}
	defer func() { _ = tx.Rollback() }()

	u, err := scanUser(tx.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ? FOR UPDATE", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
		return model.User{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.User{}, err
	}
	return u, nil
}
