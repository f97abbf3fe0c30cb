package patient

import (
	"context"
	"errors"

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

const cols = `id, user_id, hospital_id, patient_number, date_of_birth, gender,
	contact_number, emergency_contact_name, emergency_contact_number, address,
	blood_group, allergies, medical_history, first_name, last_name,
	created_at, updated_at, created_by, deleted_at`

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (
			id, user_id, hospital_id, patient_number, date_of_birth, gender,
			contact_number, emergency_contact_name, emergency_contact_number, address,
			blood_group, allergies, medical_history, first_name, last_name, created_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		p.ID, p.UserID, p.HospitalID, p.PatientNumber, p.DateOfBirth, p.Gender,
		p.ContactNumber, p.EmergencyContactName, p.EmergencyContactNumber, p.Address,
		p.BloodGroup, p.Allergies, p.MedicalHistory, p.FirstName, p.LastName, p.CreatedBy,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+cols+` FROM patient WHERE id = $1 AND deleted_at IS NULL`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET
			date_of_birth=$2, gender=$3, contact_number=$4,
			emergency_contact_name=$5, emergency_contact_number=$6, address=$7,
			blood_group=$8, allergies=$9, medical_history=$10,
			first_name=$11, last_name=$12, updated_at=NOW()
		WHERE id = $1 AND deleted_at IS NULL`,
		p.ID, p.DateOfBirth, p.Gender, p.ContactNumber,
		p.EmergencyContactName, p.EmergencyContactNumber, p.Address,
		p.BloodGroup, p.Allergies, p.MedicalHistory,
		p.FirstName, p.LastName,
	)
	return err
}

func (r *repoPG) SoftDelete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE patient SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM patient
		WHERE hospital_id = $1 AND deleted_at IS NULL`, hospitalID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+cols+` FROM patient
		WHERE hospital_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		hospitalID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectPatients(rows, total)
}

func (r *repoPG) Search(ctx context.Context, hospitalID uuid.UUID, query string, limit, offset int) ([]*Patient, int, error) {
	pattern := "%" + query + "%"
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM patient
		WHERE hospital_id = $1 AND deleted_at IS NULL
		  AND (patient_number ILIKE $2 OR contact_number ILIKE $2)`,
		hospitalID, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+cols+` FROM patient
		WHERE hospital_id = $1 AND deleted_at IS NULL
		  AND (patient_number ILIKE $2 OR contact_number ILIKE $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		hospitalID, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectPatients(rows, total)
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.UserID, &p.HospitalID, &p.PatientNumber, &p.DateOfBirth,
		&p.Gender, &p.ContactNumber, &p.EmergencyContactName, &p.EmergencyContactNumber,
		&p.Address, &p.BloodGroup, &p.Allergies, &p.MedicalHistory,
		&p.FirstName, &p.LastName, &p.CreatedAt, &p.UpdatedAt, &p.CreatedBy, &p.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPatients(rows pgx.Rows, total int) ([]*Patient, int, error) {
	var patients []*Patient
	for rows.Next() {
		var p Patient
		err := rows.Scan(&p.ID, &p.UserID, &p.HospitalID, &p.PatientNumber, &p.DateOfBirth,
			&p.Gender, &p.ContactNumber, &p.EmergencyContactName, &p.EmergencyContactNumber,
			&p.Address, &p.BloodGroup, &p.Allergies, &p.MedicalHistory,
			&p.FirstName, &p.LastName, &p.CreatedAt, &p.UpdatedAt, &p.CreatedBy, &p.DeletedAt)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, &p)
	}
	return patients, total, nil
}
