package planner

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agenda/agenda/internal/domain/appointment"
	"github.com/agenda/agenda/internal/domain/directory"
	"github.com/agenda/agenda/internal/platform/apperr"
)

// Generator enumerates therapy-need x professional x weekday x slot
// combinations and scores each one. Output order is unspecified and
// patterns are not ranked here.
type Generator struct {
	professionals directory.ProfessionalRepository
	appointments  appointment.Repository
	horizonWeeks  int
	now           func() time.Time
}

func NewGenerator(professionals directory.ProfessionalRepository, appointments appointment.Repository, horizonWeeks int) *Generator {
	if horizonWeeks <= 0 {
		horizonWeeks = DefaultHorizonWeeks
	}
	return &Generator{
		professionals: professionals,
		appointments:  appointments,
		horizonWeeks:  horizonWeeks,
		now:           time.Now,
	}
}

// Generate produces one pattern per viable (professional, weekday, slot)
// for every need. Bookings are fetched once per professional and the whole
// enumeration runs in memory; combination counts stay in the hundreds.
func (g *Generator) Generate(ctx context.Context, needs []TherapyNeed, prefs Preference) ([]SchedulePattern, error) {
	if len(needs) == 0 {
		return nil, apperr.Validationf("at least one therapy need is required")
	}
	for _, n := range needs {
		if n.Specialty == "" {
			return nil, apperr.Validationf("therapy need without specialty")
		}
		if n.WeeklyFrequency < 1 {
			return nil, apperr.Validationf("weekly frequency must be at least 1")
		}
	}
	if prefs.Shift != "" && prefs.Shift != ShiftMorning && prefs.Shift != ShiftAfternoon {
		return nil, apperr.Validationf("invalid shift: %s", prefs.Shift)
	}

	active, err := g.professionals.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	now := g.now()
	bookings := map[uuid.UUID][]*appointment.Appointment{}

	var patterns []SchedulePattern
	for _, need := range needs {
		candidates := qualify(active, need.Specialty)
		candidates = applyPreference(candidates, prefs.PreferredProfessionalIDs)

		for _, p := range candidates {
			av, ok := directory.BuildAvailability(p)
			if !ok {
				continue
			}
			existing, ok := bookings[p.ID]
			if !ok {
				from := now
				to := now.AddDate(0, 0, g.horizonWeeks*7+1)
				existing, err = g.appointments.ListForProfessionalInRange(ctx, p.ID, from, to)
				if err != nil {
					return nil, err
				}
				bookings[p.ID] = existing
			}

			for _, weekday := range av.Weekdays {
				for _, slot := range slotGrid(av, prefs.Shift) {
					patterns = append(patterns, SchedulePattern{
						Specialty:        need.Specialty,
						ProfessionalID:   p.ID,
						ProfessionalName: p.Name,
						Weekday:          weekday.String(),
						TimeOfDay:        slot.String(),
						ConsistencyScore: ScoreAgainst(existing, weekday, slot, g.horizonWeeks, now),
					})
				}
			}
		}
	}
	return patterns, nil
}

func qualify(professionals []*directory.Professional, specialty string) []*directory.Professional {
	var out []*directory.Professional
	for _, p := range professionals {
		if p.MatchesSpecialty(specialty) {
			out = append(out, p)
		}
	}
	return out
}

// applyPreference narrows to the preferred professionals only when the
// intersection is non-empty; an unmatched preference never empties the set.
func applyPreference(candidates []*directory.Professional, preferred []uuid.UUID) []*directory.Professional {
	if len(preferred) == 0 {
		return candidates
	}
	wanted := make(map[uuid.UUID]bool, len(preferred))
	for _, id := range preferred {
		wanted[id] = true
	}
	var out []*directory.Professional
	for _, p := range candidates {
		if wanted[p.ID] {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return candidates
	}
	return out
}

// slotGrid enumerates hourly starts inside the working window. Only slots
// whose full 50 minutes fit before windowEnd are emitted; partial slots
// never are.
func slotGrid(av directory.Availability, shift string) []directory.Clock {
	var slots []directory.Clock
	start := av.WindowStart
	if start%60 != 0 {
		start = directory.Clock((start/60 + 1) * 60)
	}
	for slot := start; av.FitsSession(slot, appointment.SessionMinutes); slot += 60 {
		switch shift {
		case ShiftMorning:
			if slot.Hour() >= 12 {
				continue
			}
		case ShiftAfternoon:
			if slot.Hour() < 12 {
				continue
			}
		}
		slots = append(slots, slot)
	}
	return slots
}
