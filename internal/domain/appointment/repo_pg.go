package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agenda/agenda/internal/platform/apperr"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const apptCols = `id, professional_id, patient_id, starts_at, ends_at, group_id, sequence_index, status, renewal_dismissed, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.ProfessionalID, &a.PatientID, &a.StartsAt, &a.EndsAt,
		&a.GroupID, &a.SequenceIndex, &a.Status, &a.RenewalDismissed, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFoundf("appointment not found")
	}
	return &a, err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.pool.QueryRow(ctx, `SELECT `+apptCols+` FROM appointment WHERE id = $1`, id))
}

// CreateBatch inserts every appointment inside a single transaction so a
// partial block can never be persisted.
func (r *repoPG) CreateBatch(ctx context.Context, appts []*Appointment) error {
	if len(appts) == 0 {
		return nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, a := range appts {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO appointment (id, professional_id, patient_id, starts_at, ends_at, group_id, sequence_index, status, renewal_dismissed)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			a.ID, a.ProfessionalID, a.PatientID, a.StartsAt, a.EndsAt,
			a.GroupID, a.SequenceIndex, a.Status, a.RenewalDismissed)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *repoPG) ListForProfessionalInRange(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptCols+` FROM appointment
		WHERE professional_id = $1 AND starts_at < $3 AND ends_at > $2
		ORDER BY starts_at`,
		professionalID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *repoPG) ListGroup(ctx context.Context, groupID uuid.UUID) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptCols+` FROM appointment
		WHERE group_id = $1
		ORDER BY sequence_index`,
		groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return r.listPaged(ctx, `patient_id`, patientID, limit, offset)
}

func (r *repoPG) ListByProfessional(ctx context.Context, professionalID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return r.listPaged(ctx, `professional_id`, professionalID, limit, offset)
}

func (r *repoPG) listPaged(ctx context.Context, col string, id uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointment WHERE `+col+` = $1`, id).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptCols+` FROM appointment
		WHERE `+col+` = $1
		ORDER BY starts_at DESC LIMIT $2 OFFSET $3`,
		id, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collect(rows)
	return items, total, err
}

func (r *repoPG) SetRenewalDismissed(ctx context.Context, id uuid.UUID, dismissed bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointment SET renewal_dismissed = $2, updated_at = NOW()
		WHERE id = $1`,
		id, dismissed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("appointment not found")
	}
	return nil
}

// ListRenewalCandidates returns, for each recurring group whose final
// appointment starts inside [from, to), that final appointment plus the
// group size. The MAX subquery guarantees a mid-group appointment that
// happens to land in the window never surfaces as a tail.
func (r *repoPG) ListRenewalCandidates(ctx context.Context, patientID *uuid.UUID, from, to time.Time) ([]*TailCandidate, error) {
	query := `
		SELECT ` + apptCols + `,
			(SELECT COUNT(*) FROM appointment g WHERE g.group_id = a.group_id) AS group_size
		FROM appointment a
		WHERE a.group_id IS NOT NULL
		  AND a.renewal_dismissed = FALSE
		  AND a.status = '` + StatusScheduled + `'
		  AND a.sequence_index = (SELECT MAX(m.sequence_index) FROM appointment m WHERE m.group_id = a.group_id)
		  AND a.starts_at >= $1 AND a.starts_at < $2`
	args := []any{from, to}
	if patientID != nil {
		query += ` AND a.patient_id = $3`
		args = append(args, *patientID)
	}
	query += ` ORDER BY a.starts_at`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*TailCandidate
	for rows.Next() {
		var c TailCandidate
		err := rows.Scan(&c.ID, &c.ProfessionalID, &c.PatientID, &c.StartsAt, &c.EndsAt,
			&c.GroupID, &c.SequenceIndex, &c.Status, &c.RenewalDismissed,
			&c.CreatedAt, &c.UpdatedAt, &c.GroupSize)
		if err != nil {
			return nil, err
		}
		items = append(items, &c)
	}
	return items, rows.Err()
}

func collect(rows pgx.Rows) ([]*Appointment, error) {
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
