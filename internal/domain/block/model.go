package block

import (
	"time"

	"github.com/google/uuid"

	"github.com/agenda/agenda/internal/domain/appointment"
)

// Frequency is the cadence of a recurring block.
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
)

// frequencyIntervalDays maps each cadence to its spacing in days. New
// cadences only need a row here.
var frequencyIntervalDays = map[Frequency]int{
	FrequencyWeekly:   7,
	FrequencyBiweekly: 14,
}

// IntervalDays returns the spacing for the frequency, and false for an
// unknown cadence.
func (f Frequency) IntervalDays() (int, bool) {
	d, ok := frequencyIntervalDays[f]
	return d, ok
}

// inferFrequency recovers a group's cadence from the spacing of its last
// two appointments. Single-appointment groups default to weekly.
func inferFrequency(group []*appointment.Appointment) Frequency {
	if len(group) < 2 {
		return FrequencyWeekly
	}
	last := group[len(group)-1]
	prev := group[len(group)-2]
	if int(last.StartsAt.Sub(prev.StartsAt).Hours()/24) >= 14 {
		return FrequencyBiweekly
	}
	return FrequencyWeekly
}

// CreateRequest describes one recurring block to be booked.
type CreateRequest struct {
	PatientID      uuid.UUID `json:"patient_id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	StartDate      string    `json:"start_date"` // YYYY-MM-DD
	StartTime      string    `json:"start_time"` // HH:MM
	Frequency      Frequency `json:"frequency"`
	SessionCount   int       `json:"session_count"`
}

// RenewableGroup is a block whose last session is approaching and which has
// not been dismissed.
type RenewableGroup struct {
	GroupID         uuid.UUID               `json:"group_id"`
	PatientID       uuid.UUID               `json:"patient_id"`
	SessionCount    int                     `json:"session_count"`
	LastAppointment appointment.Appointment `json:"last_appointment"`
}

// firstStart combines the request's date and time in loc.
func (r *CreateRequest) firstStart(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", r.StartDate+" "+r.StartTime, loc)
}
