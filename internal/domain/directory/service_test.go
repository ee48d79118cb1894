package directory

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/agenda/agenda/internal/platform/apperr"
)

type mockProfessionalRepo struct {
	professionals map[uuid.UUID]*Professional
}

func newMockProfessionalRepo() *mockProfessionalRepo {
	return &mockProfessionalRepo{professionals: make(map[uuid.UUID]*Professional)}
}

func (m *mockProfessionalRepo) Create(ctx context.Context, p *Professional) error {
	m.professionals[p.ID] = p
	return nil
}

func (m *mockProfessionalRepo) GetByID(ctx context.Context, id uuid.UUID) (*Professional, error) {
	p, ok := m.professionals[id]
	if !ok {
		return nil, apperr.NotFoundf("professional %s not found", id)
	}
	return p, nil
}

func (m *mockProfessionalRepo) Update(ctx context.Context, p *Professional) error {
	if _, ok := m.professionals[p.ID]; !ok {
		return apperr.NotFoundf("professional %s not found", p.ID)
	}
	m.professionals[p.ID] = p
	return nil
}

func (m *mockProfessionalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.professionals, id)
	return nil
}

func (m *mockProfessionalRepo) List(ctx context.Context, limit, offset int) ([]*Professional, int, error) {
	out := make([]*Professional, 0, len(m.professionals))
	for _, p := range m.professionals {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *mockProfessionalRepo) ListActive(ctx context.Context) ([]*Professional, error) {
	out := make([]*Professional, 0, len(m.professionals))
	for _, p := range m.professionals {
		if p.Status == StatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockPatientRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockPatientRepo) Create(ctx context.Context, p *Patient) error {
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, apperr.NotFoundf("patient %s not found", id)
	}
	return p, nil
}

func (m *mockPatientRepo) Update(ctx context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return apperr.NotFoundf("patient %s not found", p.ID)
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.patients, id)
	return nil
}

func (m *mockPatientRepo) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	out := make([]*Patient, 0, len(m.patients))
	for _, p := range m.patients {
		out = append(out, p)
	}
	return out, len(out), nil
}

func newTestService() (*Service, *mockProfessionalRepo, *mockPatientRepo) {
	pros := newMockProfessionalRepo()
	pats := newMockPatientRepo()
	return NewService(pros, pats), pros, pats
}

func TestCreateProfessional_Validation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	err := svc.CreateProfessional(ctx, &Professional{Specialty: "Fonoaudiologia"})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("expected validation error for missing name, got %v", err)
	}

	err = svc.CreateProfessional(ctx, &Professional{Name: "Ana"})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("expected validation error for missing specialty, got %v", err)
	}

	err = svc.CreateProfessional(ctx, &Professional{
		Name:           "Ana",
		Specialty:      "Fonoaudiologia",
		ActiveWeekdays: []string{"sat"},
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("expected validation error for weekend token, got %v", err)
	}
}

func TestCreateProfessional_Defaults(t *testing.T) {
	svc, repo, _ := newTestService()

	p := &Professional{
		Name:           "Ana",
		Specialty:      "Fonoaudiologia",
		ActiveWeekdays: []string{"mon", "wed"},
		WindowStart:    "08:00",
		WindowEnd:      "12:00",
	}
	if err := svc.CreateProfessional(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != StatusActive {
		t.Errorf("expected default status active, got %s", p.Status)
	}
	if _, ok := repo.professionals[p.ID]; !ok {
		t.Error("expected professional persisted")
	}
}

func TestAvailabilityIndex_ExcludesUnusable(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	usable := &Professional{ID: uuid.New(), Name: "Ana", Specialty: "Fono",
		ActiveWeekdays: []string{"mon"}, WindowStart: "08:00", WindowEnd: "12:00", Status: StatusActive}
	inactive := &Professional{ID: uuid.New(), Name: "Bia", Specialty: "Fono",
		ActiveWeekdays: []string{"mon"}, WindowStart: "08:00", WindowEnd: "12:00", Status: StatusInactive}
	broken := &Professional{ID: uuid.New(), Name: "Carla", Specialty: "Fono",
		ActiveWeekdays: []string{"mon"}, WindowStart: "bad", WindowEnd: "12:00", Status: StatusActive}
	repo.professionals[usable.ID] = usable
	repo.professionals[inactive.ID] = inactive
	repo.professionals[broken.ID] = broken

	index, err := svc.AvailabilityIndex(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(index) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(index))
	}
	if index[0].ProfessionalID != usable.ID {
		t.Errorf("unexpected professional in index: %s", index[0].Name)
	}
}

func TestCreatePatient(t *testing.T) {
	svc, _, repo := newTestService()
	ctx := context.Background()

	if err := svc.CreatePatient(ctx, &Patient{}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("expected validation error for missing name, got %v", err)
	}

	p := &Patient{Name: "João"}
	if err := svc.CreatePatient(ctx, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != StatusActive {
		t.Errorf("expected default status active, got %s", p.Status)
	}
	if _, ok := repo.patients[p.ID]; !ok {
		t.Error("expected patient persisted")
	}
}
