package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agenda/agenda/internal/platform/apperr"
)

// =========== Professional Repository ===========

type professionalRepoPG struct{ pool *pgxpool.Pool }

func NewProfessionalRepoPG(pool *pgxpool.Pool) ProfessionalRepository {
	return &professionalRepoPG{pool: pool}
}

const profCols = `id, name, specialty, active_weekdays, window_start, window_end, status, created_at, updated_at`

func scanProfessional(row pgx.Row) (*Professional, error) {
	var p Professional
	err := row.Scan(&p.ID, &p.Name, &p.Specialty, &p.ActiveWeekdays,
		&p.WindowStart, &p.WindowEnd, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFoundf("professional not found")
	}
	return &p, err
}

func (r *professionalRepoPG) Create(ctx context.Context, p *Professional) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO professional (id, name, specialty, active_weekdays, window_start, window_end, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.Name, p.Specialty, p.ActiveWeekdays, p.WindowStart, p.WindowEnd, p.Status)
	return err
}

func (r *professionalRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Professional, error) {
	return scanProfessional(r.pool.QueryRow(ctx, `SELECT `+profCols+` FROM professional WHERE id = $1`, id))
}

func (r *professionalRepoPG) Update(ctx context.Context, p *Professional) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE professional SET name=$2, specialty=$3, active_weekdays=$4,
			window_start=$5, window_end=$6, status=$7, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.Specialty, p.ActiveWeekdays, p.WindowStart, p.WindowEnd, p.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("professional not found")
	}
	return nil
}

func (r *professionalRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM professional WHERE id = $1`, id)
	return err
}

func (r *professionalRepoPG) List(ctx context.Context, limit, offset int) ([]*Professional, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM professional`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+profCols+` FROM professional ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Professional
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *professionalRepoPG) ListActive(ctx context.Context) ([]*Professional, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+profCols+` FROM professional WHERE status = $1 ORDER BY name`, StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Professional
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// =========== Patient Repository ===========

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

const patientCols = `id, name, guardian_name, status, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.GuardianName, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFoundf("patient not found")
	}
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patient (id, name, guardian_name, status)
		VALUES ($1,$2,$3,$4)`,
		p.ID, p.Name, p.GuardianName, p.Status)
	return err
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patient SET name=$2, guardian_name=$3, status=$4, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.GuardianName, p.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("patient not found")
	}
	return nil
}

func (r *patientRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	return err
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}
