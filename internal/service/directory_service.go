package service

import (
	"context"

	"github.com/iliyamo/cinetour/internal/apperr"
	"github.com/iliyamo/cinetour/internal/model"
)

// CinemaStore lists venues.
type CinemaStore interface {
	ListAll(ctx context.Context) ([]model.Cinema, error)
}

// DirectoryService serves the public lists: users and cinemas.
type DirectoryService struct {
	users   UserStore
	cinemas CinemaStore
}

func NewDirectoryService(users UserStore, cinemas CinemaStore) *DirectoryService {
	return &DirectoryService{users: users, cinemas: cinemas}
}

func (s *DirectoryService) Users(ctx context.Context) ([]model.PublicUser, error) {
	users, err := s.users.ListPublic(ctx)
	if err != nil {
		return nil, apperr.Internal("list users", err)
	}
	return users, nil
}

func (s *DirectoryService) Cinemas(ctx context.Context) ([]model.Cinema, error) {
	cinemas, err := s.cinemas.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal("list cinemas", err)
	}
	return cinemas, nil
}
