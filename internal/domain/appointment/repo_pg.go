package appointment

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

const cols = `id, patient_id, doctor_id, hospital_id, appointment_date,
	duration_minutes, reason, status, created_at, updated_at, created_by`

const summaryCols = `a.id, a.patient_id, a.doctor_id, a.hospital_id, a.appointment_date,
	a.duration_minutes, a.reason, a.status, a.created_at, a.updated_at, a.created_by,
	p.patient_number, p.first_name, p.last_name, du.first_name, du.last_name`

const summaryFrom = ` FROM appointment a
	JOIN patient p ON p.id = a.patient_id
	JOIN hospital_user d ON d.id = a.doctor_id
	JOIN app_user du ON du.id = d.user_id`

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointment (
			id, patient_id, doctor_id, hospital_id, appointment_date,
			duration_minutes, reason, status, created_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		a.ID, a.PatientID, a.DoctorID, a.HospitalID, a.AppointmentDate,
		a.DurationMinutes, a.Reason, a.Status, a.CreatedBy,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+cols+` FROM appointment WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment SET
			appointment_date=$2, duration_minutes=$3, reason=$4, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.AppointmentDate, a.DurationMinutes, a.Reason,
	)
	return err
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE appointment SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

func (r *repoPG) List(ctx context.Context, hospitalID uuid.UUID, filter ListFilter, limit, offset int) ([]*Summary, int, error) {
	where := ` WHERE a.hospital_id = $1`
	args := []interface{}{hospitalID}
	if filter.DoctorID != nil {
		args = append(args, *filter.DoctorID)
		where += fmt.Sprintf(" AND a.doctor_id = $%d", len(args))
	}
	if filter.PatientID != nil {
		args = append(args, *filter.PatientID)
		where += fmt.Sprintf(" AND a.patient_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND a.status = $%d", len(args))
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*)`+summaryFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+summaryCols+summaryFrom+where+
			fmt.Sprintf(` ORDER BY a.appointment_date ASC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var summaries []*Summary
	for rows.Next() {
		var s Summary
		err := rows.Scan(&s.ID, &s.PatientID, &s.DoctorID, &s.HospitalID, &s.AppointmentDate,
			&s.DurationMinutes, &s.Reason, &s.Status, &s.CreatedAt, &s.UpdatedAt, &s.CreatedBy,
			&s.PatientNumber, &s.PatientFirstName, &s.PatientLastName,
			&s.DoctorFirstName, &s.DoctorLastName)
		if err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, &s)
	}
	return summaries, total, nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.HospitalID, &a.AppointmentDate,
		&a.DurationMinutes, &a.Reason, &a.Status, &a.CreatedAt, &a.UpdatedAt, &a.CreatedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
