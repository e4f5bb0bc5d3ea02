package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/iliyamo/cinetour/internal/apperr"
	"github.com/iliyamo/cinetour/internal/model"
	"github.com/iliyamo/cinetour/internal/programme"
	"github.com/iliyamo/cinetour/internal/queue"
	"github.com/iliyamo/cinetour/internal/repository"
)

// TourStore is the tour storage contract.
type TourStore interface {
	ListWithProgramme(ctx context.Context) ([]model.Tour, []model.Programme, error)
	GetByID(ctx context.Context, id uint64) (model.Tour, error)
	Create(ctx context.Context, programmeID, hostID uint64, body string) (model.Tour, error)
	Delete(ctx context.Context, id uint64) (model.Tour, error)
}

// TourService lets a user host a tour for a screening.  The host is always
// the acting identity.
type TourService struct {
	tours      TourStore
	programmes ProgrammeStore
	notifier
}

func NewTourService(tours TourStore, programmes ProgrammeStore, pub queue.Publisher, logger *slog.Logger) *TourService {
	return &TourService{tours: tours, programmes: programmes, notifier: newNotifier(pub, logger)}
}

// NormalizeTour trims the body and validates the request.
func NormalizeTour(in model.TourCreate) (model.TourCreate, error) {
	in.Body = strings.TrimSpace(in.Body)
	if err := validate.Struct(in); err != nil {
		return model.TourCreate{}, validationError(err)
	}
	return in, nil
}

// List returns every tour with its reduced screening.
func (s *TourService) List(ctx context.Context) ([]model.TourDetail, error) {
	tours, ps, err := s.tours.ListWithProgramme(ctx)
	if err != nil {
		return nil, apperr.Internal("list tours", err)
	}
	out := make([]model.TourDetail, 0, len(tours))
	for i, t := range tours {
		out = append(out, model.TourDetail{Tour: t, Programme: programme.Reduce(ps[i])})
	}
	return out, nil
}

// Create hosts a tour for in.ProgrammeID as actor.
func (s *TourService) Create(ctx context.Context, actor model.User, in model.TourCreate) (model.TourDetail, error) {
	in, err := NormalizeTour(in)
	if err != nil {
		return model.TourDetail{}, err
	}

	p, err := s.programmes.GetByID(ctx, in.ProgrammeID)
	if err != nil {
		if errors.Is(err, repository.ErrProgrammeNotFound) {
			return model.TourDetail{}, apperr.NotFound("Programme not found")
		}
		return model.TourDetail{}, apperr.Internal("get programme", err)
	}
	if p.Tour != nil {
		return model.TourDetail{}, apperr.Conflict("This screening already has a tour")
	}

	t, err := s.tours.Create(ctx, in.ProgrammeID, actor.ID, in.Body)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrTourExists):
		return model.TourDetail{}, apperr.Conflict("This screening already has a tour")
	case errors.Is(err, repository.ErrProgrammeNotFound):
		return model.TourDetail{}, apperr.NotFound("Programme not found")
	default:
		return model.TourDetail{}, apperr.Internal("create tour", err)
	}

	p.Tour = &model.ProgrammeTour{ID: t.ID, HostID: t.HostID, HostUsername: t.HostUsername}
	s.notify(ctx, queue.EventTourCreated, actor.ID, t.ID)
	return model.TourDetail{Tour: t, Programme: programme.Reduce(p)}, nil
}

// Delete cancels a tour.  Only its host may do so.
func (s *TourService) Delete(ctx context.Context, actor model.User, tourID uint64) (model.Tour, error) {
	t, err := s.tours.GetByID(ctx, tourID)
	if err != nil {
		if errors.Is(err, repository.ErrTourNotFound) {
			return model.Tour{}, apperr.NotFound("Tour not found")
		}
		return model.Tour{}, apperr.Internal("get tour", err)
	}
	if t.HostID != actor.ID {
		return model.Tour{}, apperr.Forbidden("Only the host can cancel a tour")
	}
	deleted, err := s.tours.Delete(ctx, tourID)
	if err != nil {
		if errors.Is(err, repository.ErrTourNotFound) {
			return model.Tour{}, apperr.NotFound("Tour not found")
		}
		return model.Tour{}, apperr.Internal("delete tour", err)
	}
	s.notify(ctx, queue.EventTourDeleted, actor.ID, tourID)
	return deleted, nil
}
