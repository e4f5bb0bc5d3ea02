// Package queue defines activity events and moves them over RabbitMQ.
package queue

import "time"

// Event types published after a successful mutation.
const (
	EventFriendAdded    = "friend.added"
	EventFriendRemoved  = "friend.removed"
	EventProfileUpdated = "profile.updated"
	EventProfileDeleted = "profile.deleted"
	EventTourCreated    = "tour.created"
	EventTourDeleted    = "tour.deleted"
)

// ActivityEvent records who did what to which resource.  TargetID is the
// friend, tour or user the action applied to.
type ActivityEvent struct {
	Type       string    `json:"type"`
	ActorID    uint64    `json:"actor_id"`
	TargetID   uint64    `json:"target_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent stamps an event with the current UTC time.
func NewEvent(typ string, actorID, targetID uint64) ActivityEvent {
	return ActivityEvent{Type: typ, ActorID: actorID, TargetID: targetID, OccurredAt: time.Now().UTC()}
}
