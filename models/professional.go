package models

import "time"

// WorkingWindow is a working-hours window on a weekday, in minutes from
// midnight.
type WorkingWindow struct {
	Day   time.Weekday `bson:"day" json:"day"`
	Start int          `bson:"start" json:"start"`
	End   int          `bson:"end" json:"end"`
}

// Professional is the bookable party. This core reads it to gate booking
// creation; profile and catalogue management live elsewhere.
type Professional struct {
	ID           string           `bson:"id" json:"id"`
	Name         string           `bson:"name" json:"name"`
	Type         ProfessionalType `bson:"type" json:"type"`
	Available    bool             `bson:"available" json:"available"`
	WorkingHours []WorkingWindow  `bson:"working_hours,omitempty" json:"workingHours,omitempty"`
	UpdatedAt    time.Time        `bson:"updated_at" json:"updatedAt"`
}
