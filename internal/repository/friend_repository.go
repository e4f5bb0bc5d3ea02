package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinetour/internal/model"
)

// FriendRepo stores directed friend edges.  The uq_friends_pair key is the
// only guard against two concurrent inserts of the same pair.
type FriendRepo struct{ db *sql.DB }

func NewFriendRepo(db *sql.DB) *FriendRepo { return &FriendRepo{db: db} }

// ListByOwner returns the edges owned by ownerID joined with the friend's
// public fields, oldest first.  An owner without friends yields an empty
// slice, not an error.
func (r *FriendRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Friend, error) {
	const q = `SELECT f.id, f.owner_id, f.friend_id, f.created_at, u.username, u.first_name, u.last_name
	           FROM friends f
	           JOIN users u ON u.id = f.friend_id
	           WHERE f.owner_id = ?
	           ORDER BY f.id`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Friend, 0)
	for rows.Next() {
		var f model.Friend
		if err := rows.Scan(&f.ID, &f.OwnerID, &f.FriendID, &f.CreatedAt, &f.Username, &f.FirstName, &f.LastName); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts the edge (ownerID, friendID).  It returns ErrFriendExists
// when the pair is already stored and ErrUserNotFound when either identity
// does not exist.
func (r *FriendRepo) Create(ctx context.Context, ownerID, friendID uint64) (model.FriendEdge, error) {
	res, err := r.db.ExecContext(ctx, "INSERT INTO friends (owner_id, friend_id) VALUES (?, ?)", ownerID, friendID)
	if err != nil {
		switch {
		case isDuplicate(err):
			return model.FriendEdge{}, ErrFriendExists
		case isMissingReference(err):
			return model.FriendEdge{}, ErrUserNotFound
		case isCheckViolation(err):
			return model.FriendEdge{}, ErrSelfFriend
		}
		return model.FriendEdge{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.FriendEdge{}, err
	}

	// Read back created_at so callers get the stored record.
	edge := model.FriendEdge{ID: uint64(id)}
	if err := r.db.QueryRowContext(ctx,
		"SELECT owner_id, friend_id, created_at FROM friends WHERE id = ?", edge.ID).
		Scan(&edge.OwnerID, &edge.FriendID, &edge.CreatedAt); err != nil {
		return model.FriendEdge{}, err
	}
	return edge, nil
}

// Delete removes the edge (ownerID, friendID) and returns it.  A missing
// edge yields ErrFriendNotFound.
func (r *FriendRepo) Delete(ctx context.Context, ownerID, friendID uint64) (model.FriendEdge, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.FriendEdge{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var edge model.FriendEdge
	err = tx.QueryRowContext(ctx,
		"SELECT id, owner_id, friend_id, created_at FROM friends WHERE owner_id = ? AND friend_id = ? FOR UPDATE",
		ownerID, friendID).Scan(&edge.ID, &edge.OwnerID, &edge.FriendID, &edge.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.FriendEdge{}, ErrFriendNotFound
		}
		return model.FriendEdge{}, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM friends WHERE id = ?", edge.ID); err != nil {
		return model.FriendEdge{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.FriendEdge{}, err
	}
	return edge, nil
}
