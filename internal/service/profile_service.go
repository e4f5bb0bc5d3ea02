package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/iliyamo/cinetour/internal/apperr"
	"github.com/iliyamo/cinetour/internal/model"
	"github.com/iliyamo/cinetour/internal/queue"
	"github.com/iliyamo/cinetour/internal/repository"
)

// UserStore is the identity storage contract used by the profile and
// directory operations.
type UserStore interface {
	ListPublic(ctx context.Context) ([]model.PublicUser, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetProfile(ctx context.Context, userID uint64) (model.Profile, error)
	Update(ctx context.Context, id uint64, upd model.ProfileUpdate) (model.User, error)
	Delete(ctx context.Context, id uint64) (model.User, error)
}

// ProfileService reads and changes the acting identity's own record.  It
// never takes a target id: the actor is the target.
type ProfileService struct {
	users UserStore
	notifier
}

func NewProfileService(users UserStore, pub queue.Publisher, logger *slog.Logger) *ProfileService {
	return &ProfileService{users: users, notifier: newNotifier(pub, logger)}
}

// NormalizeProfile trims every field and validates the result.  Handlers
// call it before authorizing so a bad body is a 400 regardless of session.
func NormalizeProfile(upd model.ProfileUpdate) (model.ProfileUpdate, error) {
	upd.Username = strings.TrimSpace(upd.Username)
	upd.FirstName = strings.TrimSpace(upd.FirstName)
	upd.LastName = strings.TrimSpace(upd.LastName)
	upd.Email = strings.TrimSpace(upd.Email)
	upd.SelfDescription = strings.TrimSpace(upd.SelfDescription)
	if err := validate.Struct(upd); err != nil {
		return model.ProfileUpdate{}, validationError(err)
	}
	return upd, nil
}

// Get returns the actor's record and profile.  A missing record is a
// BadRequest, matching the status clients already handle.
func (s *ProfileService) Get(ctx context.Context, actor model.User) (model.ProfileView, error) {
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.ProfileView{}, apperr.BadRequest("Profile not found")
		}
		return model.ProfileView{}, apperr.Internal("get user", err)
	}
	profile, err := s.users.GetProfile(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.ProfileView{}, apperr.BadRequest("Profile not found")
		}
		return model.ProfileView{}, apperr.Internal("get profile", err)
	}
	return model.ProfileView{User: user, Profile: profile}, nil
}

// Update validates upd, checks that the username is free or already the
// actor's, and persists it.  On conflict the record is left untouched.
func (s *ProfileService) Update(ctx context.Context, actor model.User, upd model.ProfileUpdate) (model.User, error) {
	upd, err := NormalizeProfile(upd)
	if err != nil {
		return model.User{}, err
	}

	holder, err := s.users.GetByUsername(ctx, upd.Username)
	switch {
	case err == nil:
		if holder.ID != actor.ID {
			return model.User{}, apperr.Conflict("Username already taken")
		}
	case errors.Is(err, repository.ErrUserNotFound):
	default:
		return model.User{}, apperr.Internal("check username", err)
	}

	user, err := s.users.Update(ctx, actor.ID, upd)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrUsernameTaken):
		// Lost a race with another claim on the same username.
		return model.User{}, apperr.Conflict("Username already taken")
	case errors.Is(err, repository.ErrUserNotFound):
		return model.User{}, apperr.BadRequest("Profile not found")
	default:
		return model.User{}, apperr.Internal("update user", err)
	}
	s.notify(ctx, queue.EventProfileUpdated, actor.ID, actor.ID)
	return user, nil
}

// Delete removes the actor's identity; the store cascades to sessions,
// friend edges and hosted tours.
func (s *ProfileService) Delete(ctx context.Context, actor model.User) (model.User, error) {
	user, err := s.users.Delete(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, apperr.BadRequest("Profile not found")
		}
		return model.User{}, apperr.Internal("delete user", err)
	}
	s.notify(ctx, queue.EventProfileDeleted, actor.ID, actor.ID)
	return user, nil
}
