package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinetour/internal/model"
)

// SessionRepo reads the sessions table.  Sessions are written by the login
// flow, which lives outside this service; only the SHA-256 hash of each
// token is stored.
type SessionRepo struct{ db *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

// UserBySessionHash returns the owner of an unexpired session.  ok is false
// when the hash is unknown or the session has expired.
func (r *SessionRepo) UserBySessionHash(ctx context.Context, tokenHash string) (model.User, bool, error) {
	const q = `SELECT u.id, u.username, u.first_name, u.last_name, u.email, u.self_description
	           FROM sessions s
	           JOIN users u ON u.id = s.user_id
	           WHERE s.token_hash = ? AND s.expires_at > UTC_TIMESTAMP()
	           LIMIT 1`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, tokenHash).
		Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.SelfDescription)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, false, nil
		}
		return model.User{}, false, err
	}
	return u, true, nil
}
