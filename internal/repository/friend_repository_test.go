package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendCreateReturnsStoredEdge(t *testing.T) {
	db, mock := newMock(t)
	created := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO friends").WithArgs(1, 2).WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectQuery("SELECT owner_id, friend_id, created_at FROM friends WHERE id = ?").
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id", "friend_id", "created_at"}).AddRow(1, 2, created))

	edge, err := NewFriendRepo(db).Create(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), edge.ID)
	assert.Equal(t, uint64(1), edge.OwnerID)
	assert.Equal(t, uint64(2), edge.FriendID)
	assert.Equal(t, created, edge.CreatedAt)
}

func TestFriendCreateTranslatesDriverErrors(t *testing.T) {
	cases := []struct {
		number uint16
		want   error
	}{
		{1062, ErrFriendExists},
		{1452, ErrUserNotFound},
		{3819, ErrSelfFriend},
	}
	for _, tc := range cases {
		db, mock := newMock(t)
		mock.ExpectExec("INSERT INTO friends").
			WillReturnError(&mysql.MySQLError{Number: tc.number, Message: "rejected"})

		_, err := NewFriendRepo(db).Create(context.Background(), 1, 2)
		assert.ErrorIs(t, err, tc.want)
	}
}

func TestFriendCreatePassesThroughOtherErrors(t *testing.T) {
	db, mock := newMock(t)
	boom := errors.New("connection reset")
	mock.ExpectExec("INSERT INTO friends").WillReturnError(boom)

	_, err := NewFriendRepo(db).Create(context.Background(), 1, 2)
	assert.ErrorIs(t, err, boom)
}

func TestFriendDeleteRemovesExistingEdge(t *testing.T) {
	db, mock := newMock(t)
	created := time.Date(2026, time.October, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, owner_id, friend_id, created_at FROM friends WHERE owner_id = \\? AND friend_id = \\? FOR UPDATE").
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "friend_id", "created_at"}).AddRow(5, 1, 2, created))
	mock.ExpectExec("DELETE FROM friends WHERE id = ?").WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	edge, err := NewFriendRepo(db).Delete(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), edge.ID)
}

func TestFriendDeleteMissingEdge(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM friends WHERE owner_id").
		WithArgs(1, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "friend_id", "created_at"}))
	mock.ExpectRollback()

	_, err := NewFriendRepo(db).Delete(context.Background(), 1, 3)
	assert.ErrorIs(t, err, ErrFriendNotFound)
}

func TestFriendListByOwnerEmpty(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM friends f").
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "friend_id", "created_at", "username", "first_name", "last_name"}))

	friends, err := NewFriendRepo(db).ListByOwner(context.Background(), 4)
	require.NoError(t, err)
	assert.NotNil(t, friends)
	assert.Empty(t, friends)
}

func TestFriendListByOwnerJoinsFriendFields(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery("FROM friends f").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "friend_id", "created_at", "username", "first_name", "last_name"}).
			AddRow(3, 1, 2, now, "jonas", "Jonas", "Berg"))

	friends, err := NewFriendRepo(db).ListByOwner(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, uint64(2), friends[0].FriendID)
	assert.Equal(t, "jonas", friends[0].Username)
}
