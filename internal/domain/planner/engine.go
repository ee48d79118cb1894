package planner

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agenda/agenda/internal/domain/appointment"
	"github.com/agenda/agenda/internal/domain/directory"
)

// DefaultHorizonWeeks is the conflict-scanning lookahead used when no
// horizon is configured.
const DefaultHorizonWeeks = 12

// Engine scores candidate weekly slots against existing bookings. The score
// is advisory only: nothing is locked, and a concurrent booking can still
// take the slot before the caller commits.
type Engine struct {
	appointments appointment.Repository
	horizonWeeks int
	now          func() time.Time
}

func NewEngine(appointments appointment.Repository, horizonWeeks int) *Engine {
	if horizonWeeks <= 0 {
		horizonWeeks = DefaultHorizonWeeks
	}
	return &Engine{appointments: appointments, horizonWeeks: horizonWeeks, now: time.Now}
}

// Score evaluates the recurring slot (weekday, timeOfDay) for one
// professional over the configured horizon and returns
// 1 - conflictWeeks/horizonWeeks.
func (e *Engine) Score(ctx context.Context, professionalID uuid.UUID, weekday time.Weekday, timeOfDay directory.Clock) (float64, error) {
	now := e.now()
	from, to := e.horizonRange(now)
	existing, err := e.appointments.ListForProfessionalInRange(ctx, professionalID, from, to)
	if err != nil {
		return 0, err
	}
	return ScoreAgainst(existing, weekday, timeOfDay, e.horizonWeeks, now), nil
}

// horizonRange is the window that covers every candidate instance the
// engine will test, padded by a day on the far end.
func (e *Engine) horizonRange(now time.Time) (time.Time, time.Time) {
	return now, now.AddDate(0, 0, e.horizonWeeks*7+1)
}

// ScoreAgainst is the pure scoring core: for each of horizonWeeks
// forthcoming instances of weekday, a week counts as conflicted when any
// blocking appointment overlaps the candidate's half-open 50-minute
// interval.
func ScoreAgainst(existing []*appointment.Appointment, weekday time.Weekday, timeOfDay directory.Clock, horizonWeeks int, now time.Time) float64 {
	first := nextWeekday(now, weekday)
	conflicts := 0
	for week := 0; week < horizonWeeks; week++ {
		day := first.AddDate(0, 0, week*7)
		start := day.Add(time.Duration(timeOfDay) * time.Minute)
		end := start.Add(appointment.SessionLength)
		for _, a := range existing {
			if a.Blocks() && a.Overlaps(start, end) {
				conflicts++
				break
			}
		}
	}
	return 1 - float64(conflicts)/float64(horizonWeeks)
}

// nextWeekday returns midnight of the first date with the given weekday
// strictly after now's date.
func nextWeekday(now time.Time, weekday time.Weekday) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for {
		day = day.AddDate(0, 0, 1)
		if day.Weekday() == weekday {
			return day
		}
	}
}
