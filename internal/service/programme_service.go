package service

import (
	"context"
	"errors"

	"github.com/iliyamo/cinetour/internal/apperr"
	"github.com/iliyamo/cinetour/internal/model"
	"github.com/iliyamo/cinetour/internal/programme"
	"github.com/iliyamo/cinetour/internal/repository"
)

// ProgrammeStore is the read-only screening storage contract.
type ProgrammeStore interface {
	ListUpcoming(ctx context.Context) ([]model.Programme, error)
	GetByID(ctx context.Context, id uint64) (model.Programme, error)
}

type ProgrammeService struct {
	store ProgrammeStore
}

func NewProgrammeService(store ProgrammeStore) *ProgrammeService {
	return &ProgrammeService{store: store}
}

// List returns upcoming screenings matching f, plus the distinct cinema
// and film names across all of them.
func (s *ProgrammeService) List(ctx context.Context, f programme.Filter) (model.ProgrammeListing, error) {
	ps, err := s.store.ListUpcoming(ctx)
	if err != nil {
		return model.ProgrammeListing{}, apperr.Internal("list programmes", err)
	}
	programme.SortByStart(ps)
	all := programme.ReduceAll(ps)
	return model.ProgrammeListing{
		Programmes: f.Apply(all),
		Cinemas:    programme.CinemaNames(all),
		Films:      programme.FilmTitles(all),
	}, nil
}

// Get returns one reduced screening.
func (s *ProgrammeService) Get(ctx context.Context, id uint64) (model.ReducedProgramme, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProgrammeNotFound) {
			return model.ReducedProgramme{}, apperr.NotFound("Programme not found")
		}
		return model.ReducedProgramme{}, apperr.Internal("get programme", err)
	}
	return programme.Reduce(p), nil
}
