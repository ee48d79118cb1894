package directory

import (
	"time"

	"github.com/google/uuid"
)

// Availability is a professional's normalized working pattern: the
// weekdays they attend and their daily working window.
type Availability struct {
	ProfessionalID uuid.UUID
	Name           string
	Specialty      string
	Weekdays       []time.Weekday
	WindowStart    Clock
	WindowEnd      Clock
}

// BuildAvailability normalizes one professional. ok is false when the
// working window is missing or unparsable, or when no valid weekday is
// configured — such professionals are unavailable for candidate
// generation, which is not an input error.
func BuildAvailability(p *Professional) (Availability, bool) {
	if p.WindowStart == "" || p.WindowEnd == "" {
		return Availability{}, false
	}
	start, err := ParseClock(p.WindowStart)
	if err != nil {
		return Availability{}, false
	}
	end, err := ParseClock(p.WindowEnd)
	if err != nil {
		return Availability{}, false
	}
	if end <= start {
		return Availability{}, false
	}

	var weekdays []time.Weekday
	seen := make(map[time.Weekday]bool)
	for _, token := range p.ActiveWeekdays {
		wd, ok := ParseWeekday(token)
		if !ok || seen[wd] {
			continue
		}
		seen[wd] = true
		weekdays = append(weekdays, wd)
	}
	if len(weekdays) == 0 {
		return Availability{}, false
	}

	return Availability{
		ProfessionalID: p.ID,
		Name:           p.Name,
		Specialty:      p.Specialty,
		Weekdays:       weekdays,
		WindowStart:    start,
		WindowEnd:      end,
	}, true
}

// BuildIndex normalizes all active professionals, silently dropping
// inactive ones and those without a well-formed window.
func BuildIndex(professionals []*Professional) []Availability {
	var index []Availability
	for _, p := range professionals {
		if p.Status != StatusActive {
			continue
		}
		av, ok := BuildAvailability(p)
		if !ok {
			continue
		}
		index = append(index, av)
	}
	return index
}

// AttendsOn reports whether the availability covers the given weekday.
func (a Availability) AttendsOn(wd time.Weekday) bool {
	for _, d := range a.Weekdays {
		if d == wd {
			return true
		}
	}
	return false
}

// FitsSession reports whether a session of the given length starting at
// start lies entirely inside the working window.
func (a Availability) FitsSession(start Clock, minutes int) bool {
	return start >= a.WindowStart && start.AddMinutes(minutes) <= a.WindowEnd
}
