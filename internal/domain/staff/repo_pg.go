package staff

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hims/hims/internal/platform/auth"
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

const userCols = `id, email, first_name, last_name, phone, email_verified,
	created_at, updated_at, deleted_at`

const memberCols = `id, hospital_id, user_id, role, employee_id, department,
	created_at, updated_at, created_by, deleted_at`

// memberJoinCols selects the membership plus the user contact fields, table-
// qualified for the directory join.
const memberJoinCols = `hu.id, hu.hospital_id, hu.user_id, hu.role, hu.employee_id, hu.department,
	hu.created_at, hu.updated_at, hu.created_by, hu.deleted_at,
	u.email, u.first_name, u.last_name, u.phone`

func (r *repoPG) CreateUser(ctx context.Context, u *User) error {
	u.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO app_user (id, email, first_name, last_name, phone, email_verified)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		u.ID, u.Email, u.FirstName, u.LastName, u.Phone, u.EmailVerified,
	)
	return err
}

func (r *repoPG) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return scanUser(r.conn(ctx).QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE id = $1 AND deleted_at IS NULL`, id))
}

func (r *repoPG) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(r.conn(ctx).QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE email = $1 AND deleted_at IS NULL`, email))
}

func (r *repoPG) CreateMembership(ctx context.Context, hu *HospitalUser) error {
	hu.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO hospital_user (id, hospital_id, user_id, role, employee_id, department, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		hu.ID, hu.HospitalID, hu.UserID, hu.Role, hu.EmployeeID, hu.Department, hu.CreatedBy,
	)
	return err
}

func (r *repoPG) GetMembership(ctx context.Context, id uuid.UUID) (*HospitalUser, error) {
	return scanMember(r.conn(ctx).QueryRow(ctx,
		`SELECT `+memberCols+` FROM hospital_user WHERE id = $1 AND deleted_at IS NULL`, id))
}

func (r *repoPG) GetMembershipByUser(ctx context.Context, userID, hospitalID uuid.UUID) (*HospitalUser, error) {
	return scanMember(r.conn(ctx).QueryRow(ctx, `
		SELECT `+memberCols+` FROM hospital_user
		WHERE user_id = $1 AND hospital_id = $2 AND deleted_at IS NULL`,
		userID, hospitalID))
}

func (r *repoPG) UpdateMembership(ctx context.Context, hu *HospitalUser) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE hospital_user SET
			role=$2, employee_id=$3, department=$4, updated_at=NOW()
		WHERE id = $1 AND deleted_at IS NULL`,
		hu.ID, hu.Role, hu.EmployeeID, hu.Department,
	)
	return err
}

func (r *repoPG) SoftDeleteMembership(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE hospital_user SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*StaffMember, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM hospital_user hu
		WHERE hu.hospital_id = $1 AND hu.deleted_at IS NULL`, hospitalID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+memberJoinCols+`
		FROM hospital_user hu
		JOIN app_user u ON u.id = hu.user_id
		WHERE hu.hospital_id = $1 AND hu.deleted_at IS NULL
		ORDER BY hu.created_at DESC LIMIT $2 OFFSET $3`,
		hospitalID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectMembers(rows, total)
}

func (r *repoPG) ListByRole(ctx context.Context, hospitalID uuid.UUID, role auth.Role, limit, offset int) ([]*StaffMember, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM hospital_user hu
		WHERE hu.hospital_id = $1 AND hu.role = $2 AND hu.deleted_at IS NULL`,
		hospitalID, role).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+memberJoinCols+`
		FROM hospital_user hu
		JOIN app_user u ON u.id = hu.user_id
		WHERE hu.hospital_id = $1 AND hu.role = $2 AND hu.deleted_at IS NULL
		ORDER BY hu.created_at DESC LIMIT $3 OFFSET $4`,
		hospitalID, role, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectMembers(rows, total)
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Phone,
		&u.EmailVerified, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func scanMember(row pgx.Row) (*HospitalUser, error) {
	var hu HospitalUser
	err := row.Scan(&hu.ID, &hu.HospitalID, &hu.UserID, &hu.Role, &hu.EmployeeID,
		&hu.Department, &hu.CreatedAt, &hu.UpdatedAt, &hu.CreatedBy, &hu.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &hu, nil
}

func collectMembers(rows pgx.Rows, total int) ([]*StaffMember, int, error) {
	var members []*StaffMember
	for rows.Next() {
		var m StaffMember
		err := rows.Scan(&m.ID, &m.HospitalID, &m.UserID, &m.Role, &m.EmployeeID,
			&m.Department, &m.CreatedAt, &m.UpdatedAt, &m.CreatedBy, &m.DeletedAt,
			&m.Email, &m.FirstName, &m.LastName, &m.Phone)
		if err != nil {
			return nil, 0, err
		}
		members = append(members, &m)
	}
	return members, total, nil
}
