package model

import "time"

// User represents an identity record as stored in the `users` table.
// Only its owner may change it, through the profile endpoints.
//
// Fields:
//  ID              – primary key identifier of the user.
//  Username        – unique, non-empty handle.
//  FirstName       – given name.
//  LastName        – family name.
//  Email           – contact address; never exposed in public listings.
//  SelfDescription – free text shown on the profile and tour pages.
type User struct {
	ID              uint64 `json:"id"`
	Username        string `json:"username"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	SelfDescription string `json:"selfDescription"`
}

// Public strips private fields for listings such as GET /users.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:              u.ID,
		Username:        u.Username,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		SelfDescription: u.SelfDescription,
	}
}

// PublicUser is the shape of another identity visible to anyone.
type PublicUser struct {
	ID              uint64 `json:"id"`
	Username        string `json:"username"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	SelfDescription string `json:"selfDescription"`
}

// Profile aggregates what the profile page shows besides the user row.
type Profile struct {
	UserID          uint64    `json:"userId"`
	FriendCount     int       `json:"friendCount"`
	HostedTourCount int       `json:"hostedTourCount"`
	MemberSince     time.Time `json:"memberSince"`
}

// ProfileUpdate carries the fields accepted by PUT /profile.  All of them
// are required and must be non-empty.
type ProfileUpdate struct {
	Username        string `json:"username" validate:"required,max=64"`
	FirstName       string `json:"firstName" validate:"required,max=100"`
	LastName        string `json:"lastName" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email,max=255"`
	SelfDescription string `json:"selfDescription" validate:"required,max=500"`
}

// ProfileView is the GET /profile response: the caller's own record plus
// the profile aggregates.
type ProfileView struct {
	User    User    `json:"user"`
	Profile Profile `json:"profile"`
}
