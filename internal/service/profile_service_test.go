package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinetour/internal/apperr"
	"github.com/iliyamo/cinetour/internal/model"
	"github.com/iliyamo/cinetour/internal/queue"
	"github.com/iliyamo/cinetour/internal/testsupport"
)

func validUpdate(username string) model.ProfileUpdate {
	return model.ProfileUpdate{
		Username:        username,
		FirstName:       "Carol",
		LastName:        "Chen",
		Email:           "carol@example.org",
		SelfDescription: "Late shows only",
	}
}

func TestProfileGet(t *testing.T) {
	db := testsupport.Seed()
	svc := NewProfileService(db.Users(), nil, nil)
	friends := NewFriendService(db.Friends(), nil, nil)
	_, err := friends.Add(context.Background(), alice.ID, bob.ID, alice)
	require.NoError(t, err)

	view, err := svc.Get(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", view.User.Email)
	assert.Equal(t, 1, view.Profile.FriendCount)
}

func TestProfileGetMissingIsBadRequest(t *testing.T) {
	svc := NewProfileService(testsupport.Seed().Users(), nil, nil)
	_, err := svc.Get(context.Background(), model.User{ID: 999})
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
}

func TestProfileUpdate(t *testing.T) {
	db := testsupport.Seed()
	pub := &testsupport.Publisher{}
	svc := NewProfileService(db.Users(), pub, nil)
	carol := model.User{ID: testsupport.CarolID}

	user, err := svc.Update(context.Background(), carol, validUpdate("  carol_c "))
	require.NoError(t, err)
	assert.Equal(t, "carol_c", user.Username)
	assert.Equal(t, "carol@example.org", user.Email)
	assert.Equal(t, []string{queue.EventProfileUpdated}, pub.Types())
}

func TestProfileUpdateKeepsOwnUsername(t *testing.T) {
	svc := NewProfileService(testsupport.Seed().Users(), nil, nil)
	user, err := svc.Update(context.Background(), model.User{ID: testsupport.CarolID}, validUpdate("carol"))
	require.NoError(t, err)
	assert.Equal(t, "carol", user.Username)
}

func TestProfileUpdateUsernameTakenLeavesRecord(t *testing.T) {
	db := testsupport.Seed()
	svc := NewProfileService(db.Users(), nil, nil)
	before, _ := db.User(testsupport.CarolID)

	_, err := svc.Update(context.Background(), model.User{ID: testsupport.CarolID}, validUpdate("alice"))
	assert.ErrorIs(t, err, apperr.ErrConflict)

	after, _ := db.User(testsupport.CarolID)
	assert.Equal(t, before, after)
}

func TestProfileUpdateValidation(t *testing.T) {
	db := testsupport.Seed()
	svc := NewProfileService(db.Users(), nil, nil)

	cases := map[string]func(*model.ProfileUpdate){
		"empty username":   func(u *model.ProfileUpdate) { u.Username = "" },
		"blank first name": func(u *model.ProfileUpdate) { u.FirstName = "   " },
		"missing last":     func(u *model.ProfileUpdate) { u.LastName = "" },
		"bad email":        func(u *model.ProfileUpdate) { u.Email = "not-an-email" },
		"no description":   func(u *model.ProfileUpdate) { u.SelfDescription = "" },
	}
	for name, mutate := range cases {
		upd := validUpdate("carol")
		mutate(&upd)
		_, err := svc.Update(context.Background(), model.User{ID: testsupport.CarolID}, upd)
		assert.ErrorIs(t, err, apperr.ErrBadRequest, name)
	}
	assert.Equal(t, int64(0), db.Calls())
}

func TestNormalizeProfileMessageUsesJSONName(t *testing.T) {
	upd := validUpdate("carol")
	upd.SelfDescription = ""
	_, err := NormalizeProfile(upd)
	require.Error(t, err)
	assert.Equal(t, "selfDescription is required", apperr.Message(err))
}

func TestProfileDelete(t *testing.T) {
	db := testsupport.Seed()
	pub := &testsupport.Publisher{}
	svc := NewProfileService(db.Users(), pub, nil)

	user, err := svc.Delete(context.Background(), bob)
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	_, ok := db.User(bob.ID)
	assert.False(t, ok)

	_, err = svc.Delete(context.Background(), bob)
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
	assert.Equal(t, []string{queue.EventProfileDeleted}, pub.Types())
}

func TestProfileStoreFailure(t *testing.T) {
	db := testsupport.Seed()
	db.Err = errors.New("timeout")
	svc := NewProfileService(db.Users(), nil, nil)

	_, err := svc.Update(context.Background(), alice, validUpdate("alice"))
	assert.ErrorIs(t, err, apperr.ErrInternal)
	_, err = svc.Delete(context.Background(), alice)
	assert.ErrorIs(t, err, apperr.ErrInternal)
}
