package model

import "time"

// FriendEdge is a directed relation: OwnerID added FriendID as a friend.
// The pair is unique and OwnerID never equals FriendID.
type FriendEdge struct {
	ID        uint64    `json:"id"`
	OwnerID   uint64    `json:"ownerId"`
	FriendID  uint64    `json:"friendId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Friend is an edge joined with the public fields of the friend identity,
// as returned by GET /friends/{userId}.
type Friend struct {
	FriendEdge
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
