package models

import "time"

// BookingRequest is the creation payload submitted by a customer. The
// professional is already chosen; no matching or dispatch happens here.
type BookingRequest struct {
	ProfessionalID   string           `json:"professionalId"`
	ProfessionalType ProfessionalType `json:"professionalType"`
	ServiceCategory  string           `json:"serviceCategory"`
	Description      string           `json:"description"`
	EstimatedPrice   float64          `json:"estimatedPrice"`
	ServiceAddress   Address          `json:"serviceAddress"`

	ScheduledDate     time.Time `json:"scheduledDate"`
	EstimatedDuration int       `json:"estimatedDuration"` // minutes

	ProjectDetails  *ProjectDetails `json:"projectDetails,omitempty"`
	ReferenceImages []string        `json:"referenceImages,omitempty"`
}

// StatusUpdateRequest asks for a status transition on an existing booking.
// Notes are mapped into the cancellation reason when the requested status is
// cancelled.
type StatusUpdateRequest struct {
	Status BookingStatus `json:"status"`
	Notes  string        `json:"notes,omitempty"`
}

// CancelRequest is the dedicated cancellation payload.
type CancelRequest struct {
	Reason string `json:"reason"`
}

// ProgressPhotosRequest attaches work-in-progress photo URLs to an artist
// booking.
type ProgressPhotosRequest struct {
	Photos []string `json:"photos"`
}
