package block

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/agenda/agenda/internal/domain/appointment"
	"github.com/agenda/agenda/internal/domain/directory"
	"github.com/agenda/agenda/internal/platform/apperr"
)

type mockApptRepo struct {
	all []*appointment.Appointment
}

func (m *mockApptRepo) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	for _, a := range m.all {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperr.NotFoundf("appointment not found")
}

func (m *mockApptRepo) CreateBatch(ctx context.Context, appts []*appointment.Appointment) error {
	for _, a := range appts {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
	}
	m.all = append(m.all, appts...)
	return nil
}

func (m *mockApptRepo) ListForProfessionalInRange(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	for _, a := range m.all {
		if a.ProfessionalID == professionalID && a.Overlaps(from, to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApptRepo) ListGroup(ctx context.Context, groupID uuid.UUID) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	for _, a := range m.all {
		if a.GroupID != nil && *a.GroupID == groupID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].SequenceIndex < *out[j].SequenceIndex })
	return out, nil
}

func (m *mockApptRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*appointment.Appointment, int, error) {
	return nil, 0, nil
}

func (m *mockApptRepo) ListByProfessional(ctx context.Context, professionalID uuid.UUID, limit, offset int) ([]*appointment.Appointment, int, error) {
	return nil, 0, nil
}

func (m *mockApptRepo) SetRenewalDismissed(ctx context.Context, id uuid.UUID, dismissed bool) error {
	a, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.RenewalDismissed = dismissed
	return nil
}

func (m *mockApptRepo) ListRenewalCandidates(ctx context.Context, patientID *uuid.UUID, from, to time.Time) ([]*appointment.TailCandidate, error) {
	groups := map[uuid.UUID][]*appointment.Appointment{}
	for _, a := range m.all {
		if a.GroupID != nil {
			groups[*a.GroupID] = append(groups[*a.GroupID], a)
		}
	}
	var out []*appointment.TailCandidate
	for _, group := range groups {
		tail := group[0]
		for _, a := range group {
			if *a.SequenceIndex > *tail.SequenceIndex {
				tail = a
			}
		}
		if tail.Status != appointment.StatusScheduled || tail.RenewalDismissed {
			continue
		}
		if tail.StartsAt.Before(from) || !tail.StartsAt.Before(to) {
			continue
		}
		if patientID != nil && tail.PatientID != *patientID {
			continue
		}
		out = append(out, &appointment.TailCandidate{Appointment: *tail, GroupSize: len(group)})
	}
	return out, nil
}

type mockProRepo struct{ ids map[uuid.UUID]bool }

func (m *mockProRepo) Create(ctx context.Context, p *directory.Professional) error { return nil }
func (m *mockProRepo) GetByID(ctx context.Context, id uuid.UUID) (*directory.Professional, error) {
	if !m.ids[id] {
		return nil, apperr.NotFoundf("professional not found")
	}
	return &directory.Professional{ID: id, Status: directory.StatusActive}, nil
}
func (m *mockProRepo) Update(ctx context.Context, p *directory.Professional) error { return nil }
func (m *mockProRepo) Delete(ctx context.Context, id uuid.UUID) error              { return nil }
func (m *mockProRepo) List(ctx context.Context, limit, offset int) ([]*directory.Professional, int, error) {
	return nil, 0, nil
}
func (m *mockProRepo) ListActive(ctx context.Context) ([]*directory.Professional, error) {
	return nil, nil
}

type mockPatientRepo struct{ ids map[uuid.UUID]bool }

func (m *mockPatientRepo) Create(ctx context.Context, p *directory.Patient) error { return nil }
func (m *mockPatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*directory.Patient, error) {
	if !m.ids[id] {
		return nil, apperr.NotFoundf("patient not found")
	}
	return &directory.Patient{ID: id, Status: directory.StatusActive}, nil
}
func (m *mockPatientRepo) Update(ctx context.Context, p *directory.Patient) error { return nil }
func (m *mockPatientRepo) Delete(ctx context.Context, id uuid.UUID) error         { return nil }
func (m *mockPatientRepo) List(ctx context.Context, limit, offset int) ([]*directory.Patient, int, error) {
	return nil, 0, nil
}

type fixture struct {
	svc            *Service
	appts          *mockApptRepo
	patientID      uuid.UUID
	professionalID uuid.UUID
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		appts:          &mockApptRepo{},
		patientID:      uuid.New(),
		professionalID: uuid.New(),
	}
	f.svc = NewService(f.appts,
		&mockProRepo{ids: map[uuid.UUID]bool{f.professionalID: true}},
		&mockPatientRepo{ids: map[uuid.UUID]bool{f.patientID: true}},
		14)
	f.svc.now = func() time.Time { return now }
	return f
}

func (f *fixture) createBlock(t *testing.T, date, clock string, freq Frequency, sessions int) []*appointment.Appointment {
	t.Helper()
	appts, err := f.svc.CreateBlock(context.Background(), &CreateRequest{
		PatientID:      f.patientID,
		ProfessionalID: f.professionalID,
		StartDate:      date,
		StartTime:      clock,
		Frequency:      freq,
		SessionCount:   sessions,
	})
	if err != nil {
		t.Fatalf("CreateBlock failed: %v", err)
	}
	return appts
}

func TestCreateBlock_WeeklySpacing(t *testing.T) {
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)

	appts := f.createBlock(t, "2025-10-10", "10:00", FrequencyWeekly, 4)

	if len(appts) != 4 {
		t.Fatalf("expected 4 appointments, got %d", len(appts))
	}
	wantDates := []string{"2025-10-10", "2025-10-17", "2025-10-24", "2025-10-31"}
	groupID := *appts[0].GroupID
	for i, a := range appts {
		if a.StartsAt.Format("2006-01-02") != wantDates[i] {
			t.Errorf("session %d on %s, want %s", i, a.StartsAt.Format("2006-01-02"), wantDates[i])
		}
		if a.StartsAt.Format("15:04") != "10:00" || a.EndsAt.Format("15:04") != "10:50" {
			t.Errorf("session %d runs %s-%s, want 10:00-10:50",
				i, a.StartsAt.Format("15:04"), a.EndsAt.Format("15:04"))
		}
		if *a.GroupID != groupID {
			t.Errorf("session %d has a different group id", i)
		}
		if *a.SequenceIndex != i {
			t.Errorf("session %d has sequence %d", i, *a.SequenceIndex)
		}
		if a.Status != appointment.StatusScheduled {
			t.Errorf("session %d status %s", i, a.Status)
		}
	}
}

func TestCreateBlock_BiweeklySpacing(t *testing.T) {
	f := newFixture(time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC))

	appts := f.createBlock(t, "2025-10-10", "10:00", FrequencyBiweekly, 3)

	wantDates := []string{"2025-10-10", "2025-10-24", "2025-11-07"}
	for i, a := range appts {
		if a.StartsAt.Format("2006-01-02") != wantDates[i] {
			t.Errorf("session %d on %s, want %s", i, a.StartsAt.Format("2006-01-02"), wantDates[i])
		}
	}
}

func TestCreateBlock_UnknownEntitiesWriteNothing(t *testing.T) {
	f := newFixture(time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	req := &CreateRequest{
		PatientID:      uuid.New(), // unknown
		ProfessionalID: f.professionalID,
		StartDate:      "2025-10-10",
		StartTime:      "10:00",
		Frequency:      FrequencyWeekly,
		SessionCount:   4,
	}
	if _, err := f.svc.CreateBlock(ctx, req); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not_found, got %v", err)
	}

	req.PatientID = f.patientID
	req.ProfessionalID = uuid.New() // unknown
	if _, err := f.svc.CreateBlock(ctx, req); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not_found, got %v", err)
	}

	if len(f.appts.all) != 0 {
		t.Errorf("expected zero persisted appointments, found %d", len(f.appts.all))
	}
}

func TestCreateBlock_Validation(t *testing.T) {
	f := newFixture(time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	cases := []struct {
		name string
		req  CreateRequest
	}{
		{"missing patient", CreateRequest{ProfessionalID: f.professionalID, StartDate: "2025-10-10", StartTime: "10:00", Frequency: FrequencyWeekly, SessionCount: 1}},
		{"zero sessions", CreateRequest{PatientID: f.patientID, ProfessionalID: f.professionalID, StartDate: "2025-10-10", StartTime: "10:00", Frequency: FrequencyWeekly}},
		{"bad frequency", CreateRequest{PatientID: f.patientID, ProfessionalID: f.professionalID, StartDate: "2025-10-10", StartTime: "10:00", Frequency: "monthly", SessionCount: 1}},
		{"bad date", CreateRequest{PatientID: f.patientID, ProfessionalID: f.professionalID, StartDate: "10/10/2025", StartTime: "10:00", Frequency: FrequencyWeekly, SessionCount: 1}},
	}
	for _, tc := range cases {
		req := tc.req
		if _, err := f.svc.CreateBlock(ctx, &req); !apperr.IsKind(err, apperr.KindValidation) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestDetectRenewable(t *testing.T) {
	now := time.Date(2025, 10, 25, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)

	// Tail on 2025-10-31 is 6 days away: inside the 14-day window.
	inWindow := f.createBlock(t, "2025-10-10", "10:00", FrequencyWeekly, 4)
	// Tail on 2025-12-26 is far outside the window.
	f.createBlock(t, "2025-12-05", "11:00", FrequencyWeekly, 4)

	groups, err := f.svc.DetectRenewable(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 renewable group, got %d", len(groups))
	}
	g := groups[0]
	if g.GroupID != *inWindow[0].GroupID {
		t.Error("wrong group detected")
	}
	if g.LastAppointment.ID != inWindow[3].ID {
		t.Error("expected the max-sequence appointment as tail")
	}
	if g.SessionCount != 4 {
		t.Errorf("group size = %d, want 4", g.SessionCount)
	}
}

func TestDetectRenewable_SkipsDismissed(t *testing.T) {
	now := time.Date(2025, 10, 25, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)
	ctx := context.Background()

	appts := f.createBlock(t, "2025-10-10", "10:00", FrequencyWeekly, 4)
	if err := f.svc.Dismiss(ctx, appts[3].ID); err != nil {
		t.Fatalf("dismiss failed: %v", err)
	}

	groups, err := f.svc.DetectRenewable(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("dismissed group still detected: %d groups", len(groups))
	}
}

func TestDetectRenewable_PatientFilter(t *testing.T) {
	now := time.Date(2025, 10, 25, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)

	f.createBlock(t, "2025-10-10", "10:00", FrequencyWeekly, 4)

	other := uuid.New()
	groups, err := f.svc.DetectRenewable(context.Background(), &other)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("expected no groups for unrelated patient, got %d", len(groups))
	}
}

func TestRenew_AppendsToGroup(t *testing.T) {
	now := time.Date(2025, 10, 25, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)
	ctx := context.Background()

	appts := f.createBlock(t, "2025-10-10", "10:00", FrequencyWeekly, 4)
	tail := appts[3] // 2025-10-31

	added, err := f.svc.Renew(ctx, tail.ID, 2)
	if err != nil {
		t.Fatalf("renew failed: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("expected 2 new appointments, got %d", len(added))
	}
	wantDates := []string{"2025-11-07", "2025-11-14"}
	for i, a := range added {
		if a.StartsAt.Format("2006-01-02") != wantDates[i] {
			t.Errorf("renewed session %d on %s, want %s", i, a.StartsAt.Format("2006-01-02"), wantDates[i])
		}
		if *a.GroupID != *tail.GroupID {
			t.Error("renewed session left the group")
		}
		if *a.SequenceIndex != 4+i {
			t.Errorf("renewed session %d has sequence %d, want %d", i, *a.SequenceIndex, 4+i)
		}
	}
}

func TestRenew_InfersBiweeklyCadence(t *testing.T) {
	now := time.Date(2025, 10, 25, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)

	appts := f.createBlock(t, "2025-10-10", "10:00", FrequencyBiweekly, 2) // 10-10, 10-24
	added, err := f.svc.Renew(context.Background(), appts[1].ID, 1)
	if err != nil {
		t.Fatalf("renew failed: %v", err)
	}
	if got := added[0].StartsAt.Format("2006-01-02"); got != "2025-11-07" {
		t.Errorf("biweekly renewal on %s, want 2025-11-07", got)
	}
}

func TestRenew_ConflictAbortsEverything(t *testing.T) {
	now := time.Date(2025, 10, 25, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)
	ctx := context.Background()

	appts := f.createBlock(t, "2025-10-10", "10:00", FrequencyWeekly, 4)
	total := len(f.appts.all)

	// Occupy the second renewal slot (2025-11-14 10:00).
	blocker := time.Date(2025, 11, 14, 10, 0, 0, 0, time.UTC)
	f.appts.all = append(f.appts.all, &appointment.Appointment{
		ID:             uuid.New(),
		ProfessionalID: f.professionalID,
		PatientID:      uuid.New(),
		StartsAt:       blocker,
		EndsAt:         blocker.Add(appointment.SessionLength),
		Status:         appointment.StatusScheduled,
	})
	total++

	_, err := f.svc.Renew(ctx, appts[3].ID, 2)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(f.appts.all) != total {
		t.Errorf("conflicting renewal persisted appointments: %d, want %d", len(f.appts.all), total)
	}
}

func TestRenew_CancelledBookingDoesNotConflict(t *testing.T) {
	now := time.Date(2025, 10, 25, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)

	appts := f.createBlock(t, "2025-10-10", "10:00", FrequencyWeekly, 4)

	blocker := time.Date(2025, 11, 7, 10, 0, 0, 0, time.UTC)
	f.appts.all = append(f.appts.all, &appointment.Appointment{
		ID:             uuid.New(),
		ProfessionalID: f.professionalID,
		PatientID:      uuid.New(),
		StartsAt:       blocker,
		EndsAt:         blocker.Add(appointment.SessionLength),
		Status:         appointment.StatusCancelled,
	})

	if _, err := f.svc.Renew(context.Background(), appts[3].ID, 1); err != nil {
		t.Errorf("cancelled booking should not block renewal: %v", err)
	}
}

func TestRenew_RejectsNonTail(t *testing.T) {
	now := time.Date(2025, 10, 25, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)

	appts := f.createBlock(t, "2025-10-10", "10:00", FrequencyWeekly, 4)

	_, err := f.svc.Renew(context.Background(), appts[1].ID, 1)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("expected validation error for mid-group renewal, got %v", err)
	}
}

func TestDismiss_Idempotent(t *testing.T) {
	now := time.Date(2025, 10, 25, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)
	ctx := context.Background()

	appts := f.createBlock(t, "2025-10-10", "10:00", FrequencyWeekly, 2)
	tail := appts[1]

	if err := f.svc.Dismiss(ctx, tail.ID); err != nil {
		t.Fatalf("first dismiss failed: %v", err)
	}
	if err := f.svc.Dismiss(ctx, tail.ID); err != nil {
		t.Fatalf("second dismiss failed: %v", err)
	}
	if !tail.RenewalDismissed {
		t.Error("expected renewal_dismissed to stay true")
	}

	if err := f.svc.Dismiss(ctx, uuid.New()); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not_found for unknown appointment, got %v", err)
	}
}
