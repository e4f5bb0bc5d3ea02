// Package programme turns stored screenings into the flat records the
// listing and tour pages display.  Nothing here performs I/O.
package programme

import (
	"sort"

	"github.com/iliyamo/cinetour/internal/model"
)

// Display layouts.  DateLayout renders like "Thu Oct 15".
const (
	DateLayout = "Mon Jan 02"
	TimeLayout = "15:04"
)

// Reduce flattens a nested programme record.  The tour fields are set only
// when a tour exists for the screening.
func Reduce(p model.Programme) model.ReducedProgramme {
	out := model.ReducedProgramme{
		ProgrammeID:     p.ID,
		Date:            p.StartsAt.Format(DateLayout),
		Time:            p.StartsAt.Format(TimeLayout),
		FilmID:          p.Film.ID,
		FilmTitle:       p.Film.Title,
		CinemaName:      p.Cinema.Name,
		Genre:           p.Film.Genre,
		EnglishFriendly: p.Film.EnglishFriendly,
	}
	if p.Tour != nil {
		id := p.Tour.ID
		out.TourID = &id
		out.Username = p.Tour.HostUsername
	}
	return out
}

// ReduceAll applies Reduce to every record, preserving order.
func ReduceAll(ps []model.Programme) []model.ReducedProgramme {
	out := make([]model.ReducedProgramme, 0, len(ps))
	for _, p := range ps {
		out = append(out, Reduce(p))
	}
	return out
}

// Filter narrows a listing.  Empty fields match everything; EnglishOnly
// keeps only english friendly screenings.
type Filter struct {
	Day         string
	Cinema      string
	Film        string
	EnglishOnly bool
}

// Apply returns the records matching f.  The input slice is not modified.
func (f Filter) Apply(in []model.ReducedProgramme) []model.ReducedProgramme {
	out := make([]model.ReducedProgramme, 0, len(in))
	for _, p := range in {
		if f.Day != "" && p.Date != f.Day {
			continue
		}
		if f.Cinema != "" && p.CinemaName != f.Cinema {
			continue
		}
		if f.Film != "" && p.FilmTitle != f.Film {
			continue
		}
		if f.EnglishOnly && !p.EnglishFriendly {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortByStart orders stored programmes by start time, then id.
func SortByStart(ps []model.Programme) {
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].StartsAt.Equal(ps[j].StartsAt) {
			return ps[i].ID < ps[j].ID
		}
		return ps[i].StartsAt.Before(ps[j].StartsAt)
	})
}

// CinemaNames returns the distinct cinema names in first-seen order.
func CinemaNames(in []model.ReducedProgramme) []string {
	return distinct(in, func(p model.ReducedProgramme) string { return p.CinemaName })
}

// FilmTitles returns the distinct film titles in first-seen order.
func FilmTitles(in []model.ReducedProgramme) []string {
	return distinct(in, func(p model.ReducedProgramme) string { return p.FilmTitle })
}

func distinct(in []model.ReducedProgramme, key func(model.ReducedProgramme) string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0)
	for _, p := range in {
		k := key(p)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
