package planner

import "github.com/google/uuid"

const (
	ShiftMorning   = "morning"
	ShiftAfternoon = "afternoon"
)

// TherapyNeed is one treatment requirement for a patient.
type TherapyNeed struct {
	Specialty       string `json:"specialty"`
	WeeklyFrequency int    `json:"weekly_frequency"`
}

// Preference narrows candidate generation. Both fields are advisory: an
// unknown shift or a preferred-professional list with no qualified match
// leaves the candidate set untouched.
type Preference struct {
	Shift                    string      `json:"shift,omitempty"`
	PreferredProfessionalIDs []uuid.UUID `json:"preferred_professional_ids,omitempty"`
}

// SchedulePattern is a scored weekly slot suggestion. It is derived, never
// persisted, and deliberately unranked; callers classify scores themselves.
type SchedulePattern struct {
	Specialty        string    `json:"specialty"`
	ProfessionalID   uuid.UUID `json:"professional_id"`
	ProfessionalName string    `json:"professional_name"`
	Weekday          string    `json:"weekday"`
	TimeOfDay        string    `json:"time_of_day"`
	ConsistencyScore float64   `json:"consistency_score"`
}
