package prescription

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

const cols = `id, visit_id, prescribed_by, medication_name, generic_name,
	dosage, frequency, duration, quantity_prescribed, instructions, status,
	created_at, updated_at, created_by`

func (r *repoPG) CreateBatch(ctx context.Context, batch []*Prescription) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		for _, p := range batch {
			p.ID = uuid.New()
			_, err := r.conn(ctx).Exec(ctx, `
				INSERT INTO prescription (
					id, visit_id, prescribed_by, medication_name, generic_name,
					dosage, frequency, duration, quantity_prescribed, instructions,
					status, created_by
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
				p.ID, p.VisitID, p.PrescribedBy, p.MedicationName, p.GenericName,
				p.Dosage, p.Frequency, p.Duration, p.QuantityPrescribed, p.Instructions,
				p.Status, p.CreatedBy,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return scanPrescription(r.conn(ctx).QueryRow(ctx,
		`SELECT `+cols+` FROM prescription WHERE id = $1`, id))
}

func (r *repoPG) ListByVisit(ctx context.Context, visitID uuid.UUID) ([]*Prescription, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+cols+` FROM prescription WHERE visit_id = $1 ORDER BY created_at DESC`, visitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ps []*Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}

const pendingCols = `pr.id, pr.visit_id, pr.prescribed_by, pr.medication_name, pr.generic_name,
	pr.dosage, pr.frequency, pr.duration, pr.quantity_prescribed, pr.instructions, pr.status,
	pr.created_at, pr.updated_at, pr.created_by,
	v.visit_number, p.patient_number, p.first_name, p.last_name, du.first_name, du.last_name`

const pendingFrom = ` FROM prescription pr
	JOIN visit v ON v.id = pr.visit_id
	JOIN patient p ON p.id = v.patient_id
	JOIN hospital_user d ON d.id = v.doctor_id
	JOIN app_user du ON du.id = d.user_id`

func (r *repoPG) ListPending(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*PendingItem, int, error) {
	where := ` WHERE v.hospital_id = $1 AND pr.status IN ('pending', 'partially_filled')`

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*)`+pendingFrom+where, hospitalID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+pendingCols+pendingFrom+where+` ORDER BY pr.created_at DESC LIMIT $2 OFFSET $3`,
		hospitalID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*PendingItem
	for rows.Next() {
		var it PendingItem
		err := rows.Scan(&it.ID, &it.VisitID, &it.PrescribedBy, &it.MedicationName, &it.GenericName,
			&it.Dosage, &it.Frequency, &it.Duration, &it.QuantityPrescribed, &it.Instructions,
			&it.Status, &it.CreatedAt, &it.UpdatedAt, &it.CreatedBy,
			&it.VisitNumber, &it.PatientNumber, &it.PatientFirstName, &it.PatientLastName,
			&it.DoctorFirstName, &it.DoctorLastName)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, &it)
	}
	return items, total, nil
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE prescription SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

func (r *repoPG) SumFulfilled(ctx context.Context, id uuid.UUID) (int, error) {
	var sum int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity_fulfilled), 0)
		FROM prescription_fulfillment WHERE prescription_id = $1`, id).Scan(&sum)
	return sum, err
}

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.VisitID, &p.PrescribedBy, &p.MedicationName, &p.GenericName,
		&p.Dosage, &p.Frequency, &p.Duration, &p.QuantityPrescribed, &p.Instructions,
		&p.Status, &p.CreatedAt, &p.UpdatedAt, &p.CreatedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
