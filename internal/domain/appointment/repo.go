package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TailCandidate is the last appointment of a recurring group together with
// the size of that group, as loaded by ListRenewalCandidates.
type TailCandidate struct {
	Appointment
	GroupSize int `db:"group_size" json:"group_size"`
}

// Repository persists appointments. Batch creation is all-or-nothing: either
// every appointment in the slice lands or none of them do.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	CreateBatch(ctx context.Context, appts []*Appointment) error
	ListForProfessionalInRange(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*Appointment, error)
	ListGroup(ctx context.Context, groupID uuid.UUID) ([]*Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	ListByProfessional(ctx context.Context, professionalID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	SetRenewalDismissed(ctx context.Context, id uuid.UUID, dismissed bool) error
	ListRenewalCandidates(ctx context.Context, patientID *uuid.UUID, from, to time.Time) ([]*TailCandidate, error)
}
