package booking

import (
	"strings"
	"time"
	"unicode/utf8"

	"craftlink/models"
)

// Validator performs structural validation of booking requests before any
// conflict check or persistence attempt.
type Validator struct {
	Clock Clock
	// MinLeadTime is how far in the future a booking must start. Zero means
	// only "not in the past".
	MinLeadTime time.Duration
}

// ValidateCreate checks the creation payload. The error messages are part of
// the client contract; in particular the artist-payload message must contain
// "Project details are required".
func (v *Validator) ValidateCreate(req models.BookingRequest) error {
	if strings.TrimSpace(req.ProfessionalID) == "" {
		return NewValidationError("professionalId is required")
	}
	switch req.ProfessionalType {
	case models.TypeHandyman, models.TypeArtist:
	default:
		return NewValidationError("professionalType must be %q or %q", models.TypeHandyman, models.TypeArtist)
	}
	if strings.TrimSpace(req.ServiceCategory) == "" {
		return NewValidationError("serviceCategory is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return NewValidationError("description is required")
	}
	if req.EstimatedPrice < 0 {
		return NewValidationError("estimatedPrice must not be negative")
	}
	if strings.TrimSpace(req.ServiceAddress.Street) == "" || strings.TrimSpace(req.ServiceAddress.City) == "" {
		return NewValidationError("serviceAddress with street and city is required")
	}
	if req.ScheduledDate.IsZero() {
		return NewValidationError("scheduledDate is required")
	}
	if req.EstimatedDuration <= 0 {
		return NewValidationError("estimatedDuration must be a positive number of minutes")
	}

	earliest := v.Clock.Now().Add(v.MinLeadTime)
	if !req.ScheduledDate.After(earliest) {
		return NewValidationError("scheduledDate must be in the future")
	}

	if req.ProfessionalType == models.TypeArtist {
		if err := validateProjectDetails(req.ProjectDetails); err != nil {
			return err
		}
	}
	return nil
}

func validateProjectDetails(pd *models.ProjectDetails) error {
	if pd == nil {
		return NewValidationError("Project details are required for artist bookings")
	}
	if strings.TrimSpace(pd.ProjectType) == "" ||
		strings.TrimSpace(pd.DurationEstimate) == "" ||
		strings.TrimSpace(pd.PriceRange) == "" {
		return NewValidationError("Project details are required: project type, duration estimate and price range must be set")
	}
	return nil
}

// validateCancellationReason enforces the stricter reason rules of the
// dedicated cancellation entry point.
func validateCancellationReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return NewValidationError("cancellation reason is required")
	}
	if utf8.RuneCountInString(reason) > models.MaxCancellationReasonLength {
		return NewValidationError("cancellation reason must not exceed %d characters", models.MaxCancellationReasonLength)
	}
	return nil
}
