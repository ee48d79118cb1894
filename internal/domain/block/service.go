package block

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/agenda/agenda/internal/domain/appointment"
	"github.com/agenda/agenda/internal/domain/directory"
	"github.com/agenda/agenda/internal/platform/apperr"
)

// DefaultLookaheadDays is the renewal-detection window used when none is
// configured.
const DefaultLookaheadDays = 14

// Service manages the lifecycle of recurring appointment blocks: creation,
// renewal detection at the group tail, renewal, and dismissal.
type Service struct {
	appointments  appointment.Repository
	professionals directory.ProfessionalRepository
	patients      directory.PatientRepository
	lookaheadDays int
	now           func() time.Time
}

func NewService(appointments appointment.Repository, professionals directory.ProfessionalRepository, patients directory.PatientRepository, lookaheadDays int) *Service {
	if lookaheadDays <= 0 {
		lookaheadDays = DefaultLookaheadDays
	}
	return &Service{
		appointments:  appointments,
		professionals: professionals,
		patients:      patients,
		lookaheadDays: lookaheadDays,
		now:           time.Now,
	}
}

// CreateBlock books a whole recurring block atomically. When any
// precondition fails, zero appointments are persisted.
func (s *Service) CreateBlock(ctx context.Context, req *CreateRequest) ([]*appointment.Appointment, error) {
	if req.PatientID == uuid.Nil {
		return nil, apperr.Validationf("patient_id is required")
	}
	if req.ProfessionalID == uuid.Nil {
		return nil, apperr.Validationf("professional_id is required")
	}
	if req.SessionCount < 1 {
		return nil, apperr.Validationf("session_count must be at least 1")
	}
	interval, ok := req.Frequency.IntervalDays()
	if !ok {
		return nil, apperr.Validationf("invalid frequency: %s", req.Frequency)
	}
	first, err := req.firstStart(s.now().Location())
	if err != nil {
		return nil, apperr.Validationf("invalid start date/time")
	}

	if _, err := s.patients.GetByID(ctx, req.PatientID); err != nil {
		return nil, err
	}
	if _, err := s.professionals.GetByID(ctx, req.ProfessionalID); err != nil {
		return nil, err
	}

	groupID := uuid.New()
	appts := make([]*appointment.Appointment, 0, req.SessionCount)
	for i := 0; i < req.SessionCount; i++ {
		start := first.AddDate(0, 0, i*interval)
		seq := i
		appts = append(appts, &appointment.Appointment{
			ProfessionalID: req.ProfessionalID,
			PatientID:      req.PatientID,
			StartsAt:       start,
			EndsAt:         start.Add(appointment.SessionLength),
			GroupID:        &groupID,
			SequenceIndex:  &seq,
			Status:         appointment.StatusScheduled,
		})
	}

	if err := s.appointments.CreateBatch(ctx, appts); err != nil {
		return nil, err
	}
	log.Info().
		Str("group_id", groupID.String()).
		Int("sessions", req.SessionCount).
		Str("frequency", string(req.Frequency)).
		Msg("recurring block created")
	return appts, nil
}

// DetectRenewable lists groups whose final scheduled session starts within
// the lookahead window and has not been dismissed. A nil patientID means
// all patients.
func (s *Service) DetectRenewable(ctx context.Context, patientID *uuid.UUID) ([]*RenewableGroup, error) {
	now := s.now()
	candidates, err := s.appointments.ListRenewalCandidates(ctx, patientID, now, now.AddDate(0, 0, s.lookaheadDays))
	if err != nil {
		return nil, err
	}
	out := make([]*RenewableGroup, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, &RenewableGroup{
			GroupID:         *c.GroupID,
			PatientID:       c.PatientID,
			SessionCount:    c.GroupSize,
			LastAppointment: c.Appointment,
		})
	}
	return out, nil
}

// Renew appends additionalSessions appointments to the tail appointment's
// group. Every new slot is hard-checked against existing bookings: any
// overlap aborts the whole renewal with a conflict, unlike the planner's
// advisory scoring.
func (s *Service) Renew(ctx context.Context, appointmentID uuid.UUID, additionalSessions int) ([]*appointment.Appointment, error) {
	if additionalSessions < 1 {
		return nil, apperr.Validationf("additional_sessions must be at least 1")
	}

	tail, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !tail.InGroup() {
		return nil, apperr.Validationf("appointment does not belong to a recurring block")
	}

	group, err := s.appointments.ListGroup(ctx, *tail.GroupID)
	if err != nil {
		return nil, err
	}
	last := group[len(group)-1]
	if last.ID != tail.ID {
		return nil, apperr.Validationf("only the last appointment of a block can be renewed")
	}

	interval, _ := inferFrequency(group).IntervalDays()
	nextSeq := *last.SequenceIndex + 1

	from := last.StartsAt
	to := last.StartsAt.AddDate(0, 0, additionalSessions*interval+1)
	existing, err := s.appointments.ListForProfessionalInRange(ctx, last.ProfessionalID, from, to)
	if err != nil {
		return nil, err
	}

	appts := make([]*appointment.Appointment, 0, additionalSessions)
	for i := 1; i <= additionalSessions; i++ {
		start := last.StartsAt.AddDate(0, 0, i*interval)
		end := start.Add(appointment.SessionLength)
		for _, a := range existing {
			if a.Blocks() && a.Overlaps(start, end) {
				return nil, apperr.Conflictf("slot %s already booked", start.Format("2006-01-02 15:04"))
			}
		}
		seq := nextSeq
		nextSeq++
		appts = append(appts, &appointment.Appointment{
			ProfessionalID: last.ProfessionalID,
			PatientID:      last.PatientID,
			StartsAt:       start,
			EndsAt:         end,
			GroupID:        last.GroupID,
			SequenceIndex:  &seq,
			Status:         appointment.StatusScheduled,
		})
	}

	if err := s.appointments.CreateBatch(ctx, appts); err != nil {
		return nil, err
	}
	log.Info().
		Str("group_id", tail.GroupID.String()).
		Int("sessions", additionalSessions).
		Msg("recurring block renewed")
	return appts, nil
}

// Dismiss marks the appointment's renewal offer as declined. Dismissing an
// already-dismissed appointment is a no-op success.
func (s *Service) Dismiss(ctx context.Context, appointmentID uuid.UUID) error {
	a, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if a.RenewalDismissed {
		return nil
	}
	return s.appointments.SetRenewalDismissed(ctx, appointmentID, true)
}
