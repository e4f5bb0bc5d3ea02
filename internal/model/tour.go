package model

import "time"

// Tour is a group viewing hosted by one user for one programme.
type Tour struct {
	ID           uint64    `json:"id"`
	ProgrammeID  uint64    `json:"programmeId"`
	HostID       uint64    `json:"hostId"`
	HostUsername string    `json:"hostUsername,omitempty"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TourDetail pairs a tour with the screening it belongs to.
type TourDetail struct {
	Tour
	Programme ReducedProgramme `json:"programme"`
}

// TourCreate is the POST /tours body.  The host is never part of it: the
// session decides who hosts.
type TourCreate struct {
	ProgrammeID uint64 `json:"programmeId" validate:"required"`
	Body        string `json:"body" validate:"required,max=100"`
}
