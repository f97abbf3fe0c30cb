package pharmacy

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

const itemCols = `id, hospital_id, medication_name, generic_name, category,
	manufacturer, batch_number, expiry_date, stock_quantity, reorder_threshold,
	unit_price, created_at, updated_at, created_by, deleted_at`

func (r *repoPG) CreateItem(ctx context.Context, item *Inventory) error {
	item.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO inventory (
			id, hospital_id, medication_name, generic_name, category,
			manufacturer, batch_number, expiry_date, stock_quantity,
			reorder_threshold, unit_price, created_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		item.ID, item.HospitalID, item.MedicationName, item.GenericName, item.Category,
		item.Manufacturer, item.BatchNumber, item.ExpiryDate, item.StockQuantity,
		item.ReorderThreshold, item.UnitPrice, item.CreatedBy,
	)
	return err
}

func (r *repoPG) GetItem(ctx context.Context, id uuid.UUID) (*Inventory, error) {
	return scanItem(r.conn(ctx).QueryRow(ctx,
		`SELECT `+itemCols+` FROM inventory WHERE id = $1 AND deleted_at IS NULL`, id))
}

func (r *repoPG) UpdateItem(ctx context.Context, item *Inventory) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE inventory SET
			medication_name = $2, generic_name = $3, category = $4,
			manufacturer = $5, batch_number = $6, expiry_date = $7,
			reorder_threshold = $8, unit_price = $9, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`,
		item.ID, item.MedicationName, item.GenericName, item.Category,
		item.Manufacturer, item.BatchNumber, item.ExpiryDate,
		item.ReorderThreshold, item.UnitPrice,
	)
	return err
}

func (r *repoPG) SoftDeleteItem(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE inventory SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Inventory, int, error) {
	return r.listWhere(ctx, ` WHERE hospital_id = $1 AND deleted_at IS NULL`,
		` ORDER BY medication_name ASC`, []interface{}{hospitalID}, limit, offset)
}

func (r *repoPG) LowStock(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Inventory, int, error) {
	return r.listWhere(ctx,
		` WHERE hospital_id = $1 AND deleted_at IS NULL AND stock_quantity < reorder_threshold`,
		` ORDER BY stock_quantity ASC`, []interface{}{hospitalID}, limit, offset)
}

func (r *repoPG) Search(ctx context.Context, hospitalID uuid.UUID, query string, limit, offset int) ([]*Inventory, int, error) {
	return r.listWhere(ctx,
		` WHERE hospital_id = $1 AND deleted_at IS NULL
			AND (medication_name ILIKE $2 OR generic_name ILIKE $2)`,
		` ORDER BY medication_name ASC`, []interface{}{hospitalID, "%" + query + "%"}, limit, offset)
}

func (r *repoPG) listWhere(ctx context.Context, where, order string, args []interface{}, limit, offset int) ([]*Inventory, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM inventory`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+itemCols+` FROM inventory`+where+order+
			fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Inventory
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, total, nil
}

// DecrementStock is the only write path that reduces stock. The guard in
// the WHERE clause makes over-dispensing impossible even under concurrent
// fulfillment.
func (r *repoPG) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE inventory SET stock_quantity = stock_quantity - $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL AND stock_quantity >= $2`,
		id, quantity)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *repoPG) RestockItem(ctx context.Context, id uuid.UUID, quantity int) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE inventory SET stock_quantity = stock_quantity + $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`,
		id, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const fulfillmentCols = `id, prescription_id, inventory_id, pharmacist_id,
	quantity_fulfilled, fulfilled_at, notes, created_at`

func (r *repoPG) CreateFulfillment(ctx context.Context, f *Fulfillment) error {
	f.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO prescription_fulfillment (
			id, prescription_id, inventory_id, pharmacist_id,
			quantity_fulfilled, fulfilled_at, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		f.ID, f.PrescriptionID, f.InventoryID, f.PharmacistID,
		f.QuantityFulfilled, f.FulfilledAt, f.Notes,
	)
	return err
}

func (r *repoPG) ListFulfillments(ctx context.Context, prescriptionID uuid.UUID) ([]*Fulfillment, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+fulfillmentCols+` FROM prescription_fulfillment
		WHERE prescription_id = $1 ORDER BY fulfilled_at ASC`, prescriptionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs []*Fulfillment
	for rows.Next() {
		var f Fulfillment
		err := rows.Scan(&f.ID, &f.PrescriptionID, &f.InventoryID, &f.PharmacistID,
			&f.QuantityFulfilled, &f.FulfilledAt, &f.Notes, &f.CreatedAt)
		if err != nil {
			return nil, err
		}
		fs = append(fs, &f)
	}
	return fs, nil
}

func scanItem(row pgx.Row) (*Inventory, error) {
	var it Inventory
	err := row.Scan(&it.ID, &it.HospitalID, &it.MedicationName, &it.GenericName, &it.Category,
		&it.Manufacturer, &it.BatchNumber, &it.ExpiryDate, &it.StockQuantity, &it.ReorderThreshold,
		&it.UnitPrice, &it.CreatedAt, &it.UpdatedAt, &it.CreatedBy, &it.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}
