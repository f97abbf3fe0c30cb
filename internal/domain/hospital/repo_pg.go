package hospital

import (
	"context"

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

const cols = `id, name, logo_url, address, contact_email, contact_phone, settings,
	created_at, updated_at, deleted_at`

func (r *repoPG) Create(ctx context.Context, h *Hospital) error {
	h.ID = uuid.New()
	if h.Settings == nil {
		h.Settings = map[string]interface{}{}
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO hospital (id, name, logo_url, address, contact_email, contact_phone, settings)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		h.ID, h.Name, h.LogoURL, h.Address, h.ContactEmail, h.ContactPhone, h.Settings,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Hospital, error) {
	return scanHospital(r.conn(ctx).QueryRow(ctx,
		`SELECT `+cols+` FROM hospital WHERE id = $1 AND deleted_at IS NULL`, id))
}

func (r *repoPG) Update(ctx context.Context, h *Hospital) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE hospital SET
			name=$2, logo_url=$3, address=$4, contact_email=$5, contact_phone=$6,
			settings=$7, updated_at=NOW()
		WHERE id = $1 AND deleted_at IS NULL`,
		h.ID, h.Name, h.LogoURL, h.Address, h.ContactEmail, h.ContactPhone, h.Settings,
	)
	return err
}

func (r *repoPG) SoftDelete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE hospital SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Hospital, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM hospital WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+cols+` FROM hospital WHERE deleted_at IS NULL ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var hs []*Hospital
	for rows.Next() {
		var h Hospital
		if err := rows.Scan(&h.ID, &h.Name, &h.LogoURL, &h.Address, &h.ContactEmail,
			&h.ContactPhone, &h.Settings, &h.CreatedAt, &h.UpdatedAt, &h.DeletedAt); err != nil {
			return nil, 0, err
		}
		hs = append(hs, &h)
	}
	return hs, total, nil
}

func scanHospital(row pgx.Row) (*Hospital, error) {
	var h Hospital
	err := row.Scan(&h.ID, &h.Name, &h.LogoURL, &h.Address, &h.ContactEmail,
		&h.ContactPhone, &h.Settings, &h.CreatedAt, &h.UpdatedAt, &h.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}
