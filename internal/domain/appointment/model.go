package appointment

import (
	"time"

	"github.com/google/uuid"
)

// SessionMinutes is the fixed length of a therapy session.
const SessionMinutes = 50

// SessionLength is SessionMinutes as a duration.
const SessionLength = SessionMinutes * time.Minute

const (
	StatusScheduled = "agendado"
	StatusFinished  = "finalizado"
	StatusCancelled = "cancelado"
)

// Appointment is a single booked session. Appointments created as part of a
// recurring block share a GroupID and carry a SequenceIndex ordering them
// within the block; one-off appointments have neither.
type Appointment struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	ProfessionalID   uuid.UUID  `db:"professional_id" json:"professional_id"`
	PatientID        uuid.UUID  `db:"patient_id" json:"patient_id"`
	StartsAt         time.Time  `db:"starts_at" json:"starts_at"`
	EndsAt           time.Time  `db:"ends_at" json:"ends_at"`
	GroupID          *uuid.UUID `db:"group_id" json:"group_id,omitempty"`
	SequenceIndex    *int       `db:"sequence_index" json:"sequence_index,omitempty"`
	Status           string     `db:"status" json:"status"`
	RenewalDismissed bool       `db:"renewal_dismissed" json:"renewal_dismissed"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// ValidStatus reports whether s is one of the known appointment statuses.
func ValidStatus(s string) bool {
	return s == StatusScheduled || s == StatusFinished || s == StatusCancelled
}

// Blocks reports whether the appointment occupies the professional's time.
// Cancelled sessions free their slot.
func (a *Appointment) Blocks() bool {
	return a.Status != StatusCancelled
}

// Overlaps reports whether the appointment intersects the half-open
// interval [start, end).
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartsAt.Before(end) && a.EndsAt.After(start)
}

// InGroup reports whether the appointment belongs to a recurring block.
func (a *Appointment) InGroup() bool {
	return a.GroupID != nil
}
