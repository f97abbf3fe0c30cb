package visit

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hims/hims/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const cols = `id, patient_id, doctor_id, hospital_id, visit_number, visit_date,
	visit_type, chief_complaint, symptoms, diagnosis, treatment_plan, notes,
	status, created_at, updated_at, created_by`

// summaryCols joins the patient registry and the staff directory for the
// typed list projection.
const summaryCols = `v.id, v.patient_id, v.doctor_id, v.hospital_id, v.visit_number, v.visit_date,
	v.visit_type, v.chief_complaint, v.symptoms, v.diagnosis, v.treatment_plan, v.notes,
	v.status, v.created_at, v.updated_at, v.created_by,
	p.patient_number, p.first_name, p.last_name, du.first_name, du.last_name`

const summaryFrom = ` FROM visit v
	JOIN patient p ON p.id = v.patient_id
	JOIN hospital_user d ON d.id = v.doctor_id
	JOIN app_user du ON du.id = d.user_id`

func (r *repoPG) Create(ctx context.Context, v *Visit) error {
	v.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO visit (
			id, patient_id, doctor_id, hospital_id, visit_number, visit_date,
			visit_type, chief_complaint, symptoms, diagnosis, treatment_plan, notes,
			status, created_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		v.ID, v.PatientID, v.DoctorID, v.HospitalID, v.VisitNumber, v.VisitDate,
		v.VisitType, v.ChiefComplaint, v.Symptoms, v.Diagnosis, v.TreatmentPlan, v.Notes,
		v.Status, v.CreatedBy,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Visit, error) {
	return scanVisit(r.conn(ctx).QueryRow(ctx,
		`SELECT `+cols+` FROM visit WHERE id = $1`, id))
}

func (r *repoPG) GetSummary(ctx context.Context, id uuid.UUID) (*Summary, error) {
	row := r.conn(ctx).QueryRow(ctx, `SELECT `+summaryCols+summaryFrom+` WHERE v.id = $1`, id)
	s, err := scanSummary(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

func (r *repoPG) Update(ctx context.Context, v *Visit) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE visit SET
			visit_type=$2, chief_complaint=$3, symptoms=$4, diagnosis=$5,
			treatment_plan=$6, notes=$7, status=$8, updated_at=NOW()
		WHERE id = $1`,
		v.ID, v.VisitType, v.ChiefComplaint, v.Symptoms, v.Diagnosis,
		v.TreatmentPlan, v.Notes, v.Status,
	)
	return err
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE visit SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

func (r *repoPG) List(ctx context.Context, hospitalID uuid.UUID, filter ListFilter, limit, offset int) ([]*Summary, int, error) {
	where := ` WHERE v.hospital_id = $1`
	args := []interface{}{hospitalID}
	if filter.DoctorID != nil {
		args = append(args, *filter.DoctorID)
		where += fmt.Sprintf(" AND v.doctor_id = $%d", len(args))
	}
	if filter.PatientID != nil {
		args = append(args, *filter.PatientID)
		where += fmt.Sprintf(" AND v.patient_id = $%d", len(args))
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*)`+summaryFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+summaryCols+summaryFrom+where+
			fmt.Sprintf(` ORDER BY v.visit_date DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var summaries []*Summary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, s)
	}
	return summaries, total, nil
}

func scanVisit(row pgx.Row) (*Visit, error) {
	var v Visit
	err := row.Scan(&v.ID, &v.PatientID, &v.DoctorID, &v.HospitalID, &v.VisitNumber,
		&v.VisitDate, &v.VisitType, &v.ChiefComplaint, &v.Symptoms, &v.Diagnosis,
		&v.TreatmentPlan, &v.Notes, &v.Status, &v.CreatedAt, &v.UpdatedAt, &v.CreatedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func scanSummary(row pgx.Row) (*Summary, error) {
	var s Summary
	err := row.Scan(&s.ID, &s.PatientID, &s.DoctorID, &s.HospitalID, &s.VisitNumber,
		&s.VisitDate, &s.VisitType, &s.ChiefComplaint, &s.Symptoms, &s.Diagnosis,
		&s.TreatmentPlan, &s.Notes, &s.Status, &s.CreatedAt, &s.UpdatedAt, &s.CreatedBy,
		&s.PatientNumber, &s.PatientFirstName, &s.PatientLastName,
		&s.DoctorFirstName, &s.DoctorLastName)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
