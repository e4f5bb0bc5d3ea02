package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/iliyamo/cinetour/internal/apperr"
	"github.com/iliyamo/cinetour/internal/auth"
	"github.com/iliyamo/cinetour/internal/model"
	"github.com/iliyamo/cinetour/internal/queue"
	"github.com/iliyamo/cinetour/internal/repository"
)

// FriendStore is the friend edge storage contract.
type FriendStore interface {
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Friend, error)
	Create(ctx context.Context, ownerID, friendID uint64) (model.FriendEdge, error)
	Delete(ctx context.Context, ownerID, friendID uint64) (model.FriendEdge, error)
}

// FriendService manages directed friend edges.  Re-adding an existing edge
// is a Conflict; removing a missing one is NotFound.
type FriendService struct {
	store FriendStore
	notifier
}

// errSelfEdge covers both directions: an edge to yourself can be neither
// added nor removed.
const errSelfEdge = "friendId must differ from userId"

func NewFriendService(store FriendStore, pub queue.Publisher, logger *slog.Logger) *FriendService {
	return &FriendService{store: store, notifier: newNotifier(pub, logger)}
}

// FriendID validates the friendId of a request body against the owner.
// It runs before authorization so a malformed body is always a 400.
func FriendID(ownerID uint64, raw *float64) (uint64, error) {
	if raw == nil {
		return 0, apperr.BadRequest("friendId is required")
	}
	id, ok := auth.IdentityFromNumber(*raw)
	if !ok {
		return 0, apperr.BadRequest("friendId must be a positive integer")
	}
	if id == ownerID {
		return 0, apperr.BadRequest(errSelfEdge)
	}
	return id, nil
}

// List returns the friends of ownerID.  The list is public.
func (s *FriendService) List(ctx context.Context, ownerID uint64) ([]model.Friend, error) {
	if ownerID == 0 {
		return nil, apperr.BadRequest("Invalid id")
	}
	friends, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal("list friends", err)
	}
	return friends, nil
}

// checkEdge applies the rules shared by Add and Remove.
func checkEdge(ownerID, friendID uint64, actor model.User) error {
	if ownerID == 0 || friendID == 0 {
		return apperr.BadRequest("Invalid id")
	}
	if ownerID == friendID {
		return apperr.BadRequest(errSelfEdge)
	}
	if actor.ID != ownerID {
		return apperr.Forbidden("You can only change your own friends")
	}
	return nil
}

// Add creates the edge ownerID -> friendID on behalf of actor.
func (s *FriendService) Add(ctx context.Context, ownerID, friendID uint64, actor model.User) (model.FriendEdge, error) {
	if err := checkEdge(ownerID, friendID, actor); err != nil {
		return model.FriendEdge{}, err
	}
	edge, err := s.store.Create(ctx, ownerID, friendID)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrFriendExists):
		return model.FriendEdge{}, apperr.Conflict("Already friends")
	case errors.Is(err, repository.ErrUserNotFound):
		return model.FriendEdge{}, apperr.NotFound("User not found")
	case errors.Is(err, repository.ErrSelfFriend):
		return model.FriendEdge{}, apperr.BadRequest(errSelfEdge)
	default:
		return model.FriendEdge{}, apperr.Internal("create friend", err)
	}
	s.notify(ctx, queue.EventFriendAdded, actor.ID, friendID)
	return edge, nil
}

// Remove deletes the edge ownerID -> friendID on behalf of actor and
// returns the removed record.
func (s *FriendService) Remove(ctx context.Context, ownerID, friendID uint64, actor model.User) (model.FriendEdge, error) {
	if err := checkEdge(ownerID, friendID, actor); err != nil {
		return model.FriendEdge{}, err
	}
	edge, err := s.store.Delete(ctx, ownerID, friendID)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrFriendNotFound):
		return model.FriendEdge{}, apperr.NotFound("Friend not found")
	default:
		return model.FriendEdge{}, apperr.Internal("delete friend", err)
	}
	s.notify(ctx, queue.EventFriendRemoved, actor.ID, friendID)
	return edge, nil
}
