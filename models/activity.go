package models

import "time"

// ActivityEvent is an audit-trail entry for a booking lifecycle action.
// Recording is best-effort; a failed write never fails the action itself.
type ActivityEvent struct {
	ID         string         `bson:"id" json:"id"`
	BookingID  string         `bson:"booking_id" json:"bookingId"`
	ActorID    string         `bson:"actor_id" json:"actorId"`
	Action     string         `bson:"action" json:"action"` // e.g. "booking_created", "status_updated"
	FromStatus BookingStatus  `bson:"from_status,omitempty" json:"fromStatus,omitempty"`
	ToStatus   BookingStatus  `bson:"to_status,omitempty" json:"toStatus,omitempty"`
	Detail     map[string]any `bson:"detail,omitempty" json:"detail,omitempty"`
	CreatedAt  time.Time      `bson:"created_at" json:"createdAt"`
}
