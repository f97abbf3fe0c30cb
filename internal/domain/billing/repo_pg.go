package billing

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

const cols = `id, visit_id, hospital_id, bill_number, total_amount, paid_amount,
	status, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, b *Bill) error {
	b.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO bill (
			id, visit_id, hospital_id, bill_number, total_amount, paid_amount, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		b.ID, b.VisitID, b.HospitalID, b.BillNumber, b.TotalAmount, b.PaidAmount, b.Status,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return scanBill(r.conn(ctx).QueryRow(ctx,
		`SELECT `+cols+` FROM bill WHERE id = $1`, id))
}

func (r *repoPG) GetByVisit(ctx context.Context, visitID uuid.UUID) (*Bill, error) {
	return scanBill(r.conn(ctx).QueryRow(ctx,
		`SELECT `+cols+` FROM bill WHERE visit_id = $1`, visitID))
}

func (r *repoPG) AddPayment(ctx context.Context, id uuid.UUID, amount float64) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE bill SET
			paid_amount = paid_amount + $2,
			status = CASE WHEN paid_amount + $2 >= total_amount THEN 'paid'
			              ELSE 'partially_paid' END,
			updated_at = NOW()
		WHERE id = $1 AND paid_amount + $2 <= total_amount`,
		id, amount)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *repoPG) List(ctx context.Context, hospitalID uuid.UUID, status string, limit, offset int) ([]*Bill, int, error) {
	where := ` WHERE hospital_id = $1`
	args := []interface{}{hospitalID}
	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM bill`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+cols+` FROM bill`+where+
			fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bills []*Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, 0, err
		}
		bills = append(bills, b)
	}
	return bills, total, nil
}

func scanBill(row pgx.Row) (*Bill, error) {
	var b Bill
	err := row.Scan(&b.ID, &b.VisitID, &b.HospitalID, &b.BillNumber, &b.TotalAmount,
		&b.PaidAmount, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
