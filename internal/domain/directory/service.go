package directory

import (
	"context"

	"github.com/google/uuid"

	"github.com/agenda/agenda/internal/platform/apperr"
)

type Service struct {
	professionals ProfessionalRepository
	patients      PatientRepository
}

func NewService(professionals ProfessionalRepository, patients PatientRepository) *Service {
	return &Service{professionals: professionals, patients: patients}
}

// -- Professional --

func (s *Service) CreateProfessional(ctx context.Context, p *Professional) error {
	if err := validateProfessional(p); err != nil {
		return err
	}
	return s.professionals.Create(ctx, p)
}

func (s *Service) GetProfessional(ctx context.Context, id uuid.UUID) (*Professional, error) {
	return s.professionals.GetByID(ctx, id)
}

func (s *Service) UpdateProfessional(ctx context.Context, p *Professional) error {
	if err := validateProfessional(p); err != nil {
		return err
	}
	return s.professionals.Update(ctx, p)
}

func (s *Service) DeleteProfessional(ctx context.Context, id uuid.UUID) error {
	return s.professionals.Delete(ctx, id)
}

func (s *Service) ListProfessionals(ctx context.Context, limit, offset int) ([]*Professional, int, error) {
	return s.professionals.List(ctx, limit, offset)
}

// AvailabilityIndex returns the normalized availability of every active
// professional. Professionals without a well-formed working window are
// absent from the result, not errors.
func (s *Service) AvailabilityIndex(ctx context.Context) ([]Availability, error) {
	active, err := s.professionals.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return BuildIndex(active), nil
}

func validateProfessional(p *Professional) error {
	if p.Name == "" {
		return apperr.Validationf("name is required")
	}
	if p.Specialty == "" {
		return apperr.Validationf("specialty is required")
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	if p.Status != StatusActive && p.Status != StatusInactive {
		return apperr.Validationf("invalid status: %s", p.Status)
	}
	for _, token := range p.ActiveWeekdays {
		if _, ok := ParseWeekday(token); !ok {
			return apperr.Validationf("invalid weekday: %s", token)
		}
	}
	return nil
}

// -- Patient --

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return apperr.Validationf("name is required")
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return apperr.Validationf("name is required")
	}
	return s.patients.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}
