package model

import "time"

// Programme is one screening as loaded from the store, with the cinema,
// film and optional tour nested the way the joins produce them.
type Programme struct {
	ID       uint64
	StartsAt time.Time
	Cinema   ProgrammeCinema
	Film     ProgrammeFilm
	Tour     *ProgrammeTour // nil when nobody hosts a tour for it
}

type ProgrammeCinema struct {
	ID   uint64
	Name string
}

type ProgrammeFilm struct {
	ID              uint64
	Title           string
	Genre           string
	EnglishFriendly bool
}

type ProgrammeTour struct {
	ID           uint64
	HostID       uint64
	HostUsername string
}

// ReducedProgramme is the flat display record used by the listing and the
// tour creation page.
type ReducedProgramme struct {
	ProgrammeID     uint64  `json:"programmeId"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	FilmID          uint64  `json:"filmId"`
	FilmTitle       string  `json:"filmTitle"`
	CinemaName      string  `json:"cinemaName"`
	Genre           string  `json:"genre"`
	EnglishFriendly bool    `json:"englishfriendly"`
	TourID          *uint64 `json:"tourId,omitempty"`
	Username        string  `json:"username,omitempty"`
}

// ProgrammeListing is the GET /programmes response.  Cinemas and Films list
// the distinct names across all upcoming screenings so a client can offer
// them as filter choices.
type ProgrammeListing struct {
	Programmes []ReducedProgramme `json:"programmes"`
	Cinemas    []string           `json:"cinemas"`
	Films      []string           `json:"films"`
}
