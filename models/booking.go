package models

import "time"

// BookingStatus is the lifecycle state of a booking. Values are stored and
// serialized in lowercase snake case.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusRejected   BookingStatus = "rejected"
	StatusDisputed   BookingStatus = "disputed"
)

// ProfessionalType determines which payload fields are mandatory on a booking.
type ProfessionalType string

const (
	TypeHandyman ProfessionalType = "handyman"
	TypeArtist   ProfessionalType = "artist"
)

// SlotFreeingStatuses are the statuses that release a professional's calendar
// slot. A booking in any other status still holds its occupied interval and
// must be considered by the conflict detector.
var SlotFreeingStatuses = []BookingStatus{StatusCancelled, StatusRejected}

// MaxCancellationReasonLength caps the free-text reason stored on cancellation.
const MaxCancellationReasonLength = 500

// ProjectDetails describes an artistic project. Mandatory for artist bookings,
// absent for handyman bookings.
type ProjectDetails struct {
	ProjectType         string `bson:"project_type" json:"projectType"`
	DurationEstimate    string `bson:"duration_estimate" json:"durationEstimate"`
	PriceRange          string `bson:"price_range" json:"priceRange"`
	SpecialRequirements string `bson:"special_requirements,omitempty" json:"specialRequirements,omitempty"`
	Materials           string `bson:"materials,omitempty" json:"materials,omitempty"`
}

// Booking represents a scheduled engagement between a customer and a
// professional. It is never physically deleted; cancellation and rejection are
// terminal statuses, not removals.
type Booking struct {
	ID               string           `bson:"id" json:"id"`
	CustomerID       string           `bson:"customer_id" json:"customerId"`
	ProfessionalID   string           `bson:"professional_id" json:"professionalId"`
	ProfessionalType ProfessionalType `bson:"professional_type" json:"professionalType"`

	ServiceCategory string  `bson:"service_category" json:"serviceCategory"`
	Description     string  `bson:"description" json:"description"`
	EstimatedPrice  float64 `bson:"estimated_price" json:"estimatedPrice"`
	ServiceAddress  Address `bson:"service_address" json:"serviceAddress"`

	ScheduledDate     time.Time `bson:"scheduled_date" json:"scheduledDate"`
	EstimatedDuration int       `bson:"estimated_duration" json:"estimatedDuration"` // minutes

	// Artist-only payload.
	ProjectDetails  *ProjectDetails `bson:"project_details,omitempty" json:"projectDetails,omitempty"`
	ReferenceImages []string        `bson:"reference_images,omitempty" json:"referenceImages,omitempty"`

	Status             BookingStatus `bson:"status" json:"status"`
	PaymentStatus      string        `bson:"payment_status" json:"paymentStatus"` // consulted, never mutated here
	StartedAt          *time.Time    `bson:"started_at,omitempty" json:"startedAt,omitempty"`
	CompletedAt        *time.Time    `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	CancelledAt        *time.Time    `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
	CancellationReason string        `bson:"cancellation_reason,omitempty" json:"cancellationReason,omitempty"`
	ProgressPhotos     []string      `bson:"progress_photos,omitempty" json:"progressPhotos,omitempty"`

	Version   int       `bson:"version" json:"-"` // optimistic concurrency guard
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// OccupiedInterval returns the half-open time window this booking reserves on
// the professional's calendar.
func (b *Booking) OccupiedInterval() Interval {
	return NewInterval(b.ScheduledDate, b.EstimatedDuration)
}

// HoldsSlot reports whether the booking still occupies its interval.
func (b *Booking) HoldsSlot() bool {
	for _, s := range SlotFreeingStatuses {
		if b.Status == s {
			return false
		}
	}
	return true
}

// IsParty reports whether the given user is one of the booking's two parties.
func (b *Booking) IsParty(userID string) bool {
	return userID != "" && (userID == b.CustomerID || userID == b.ProfessionalID)
}
