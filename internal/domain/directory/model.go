package directory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Professional maps to the professional table. ActiveWeekdays holds
// lowercase tokens ("mon".."fri"); WindowStart/WindowEnd are "HH:MM"
// strings as captured by the registration form, parsed lazily by the
// availability index.
type Professional struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Specialty      string    `db:"specialty" json:"specialty"`
	ActiveWeekdays []string  `db:"active_weekdays" json:"active_weekdays"`
	WindowStart    string    `db:"window_start" json:"window_start"`
	WindowEnd      string    `db:"window_end" json:"window_end"`
	Status         string    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// MatchesSpecialty reports whether this professional is qualified for the
// requested specialty. Matching is substring containment over folded
// free-text names ("fonoaudiologia" matches "Fonoaudiologia Infantil").
// TODO: replace with a normalized specialty table once profiles stop
// carrying free text.
func (p *Professional) MatchesSpecialty(specialty string) bool {
	return strings.Contains(FoldText(p.Specialty), FoldText(specialty))
}

// Patient maps to the patient table.
type Patient struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	GuardianName *string `db:"guardian_name" json:"guardian_name,omitempty"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

var weekdayTokens = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
}

// ParseWeekday resolves a clinic weekday token. Weekend tokens are not
// recognized: the clinic schedules Monday through Friday only.
func ParseWeekday(token string) (time.Weekday, bool) {
	wd, ok := weekdayTokens[strings.ToLower(strings.TrimSpace(token))]
	return wd, ok
}

// Clock is a time of day in minutes since midnight.
type Clock int

// ParseClock parses "HH:MM" (24h).
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// AddMinutes returns the clock shifted forward by n minutes.
func (c Clock) AddMinutes(n int) Clock { return c + Clock(n) }

// Hour returns the hour component.
func (c Clock) Hour() int { return int(c) / 60 }

var accentFolder = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
)

// FoldText lowercases and strips the Portuguese accents that appear in
// clinic specialty names, so matching is insensitive to both.
func FoldText(s string) string {
	return accentFolder.Replace(strings.ToLower(strings.TrimSpace(s)))
}
