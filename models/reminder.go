package models

// ReminderPayload is the queued payload for a booking reminder task. Delivery
// itself is handled by the notification boundary.
type ReminderPayload struct {
	BookingID   string `json:"bookingId"`
	RecipientID string `json:"recipientId"`
	Target      string `json:"target"` // "customer" or "professional"
	Title       string `json:"title"`
	Body        string `json:"body"`
	FireDate    string `json:"fireDate"`
}
