// Package repository contains the MySQL data access layer.  Each
// repository wraps a *sql.DB, returns domain records from internal/model
// and reports the expected failure cases through the sentinel errors below
// so services can tell them apart from infrastructure failures.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrUserNotFound is returned when no users row matches.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when the unique username key rejects a write.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrFriendExists is returned when the (owner_id, friend_id) pair already exists.
	ErrFriendExists = errors.New("friend already added")
	// ErrSelfFriend is returned when the store's check constraint rejects owner_id = friend_id.
	ErrSelfFriend = errors.New("cannot add yourself as a friend")
	// ErrFriendNotFound is returned when the edge to delete does not exist.
	ErrFriendNotFound = errors.New("friend not found")
	// ErrProgrammeNotFound is returned when no programmes row matches.
	ErrProgrammeNotFound = errors.New("programme not found")
	// ErrTourNotFound is returned when no tours row matches.
	ErrTourNotFound = errors.New("tour not found")
	// ErrTourExists is returned when a programme already has a tour.
	ErrTourExists = errors.New("programme already has a tour")
)

// MySQL server error numbers the repositories translate.
const (
	errDuplicateEntry  = 1062
	errNoReferencedRow = 1452
	errCheckConstraint = 3819
)

func mysqlErrNumber(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}

func isDuplicate(err error) bool { return mysqlErrNumber(err) == errDuplicateEntry }

func isMissingReference(err error) bool { return mysqlErrNumber(err) == errNoReferencedRow }

func isCheckViolation(err error) bool { return mysqlErrNumber(err) == errCheckConstraint }
