package pharmacy

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("inventory item not found")

type Repository interface {
	CreateItem(ctx context.Context, item *Inventory) error
	GetItem(ctx context.Context, id uuid.UUID) (*Inventory, error)
	UpdateItem(ctx context.Context, item *Inventory) error
	SoftDeleteItem(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Inventory, int, error)
	// LowStock returns items with stock_quantity < reorder_threshold,
	// lowest stock first.
	LowStock(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Inventory, int, error)
	// Search matches medication_name or generic_name, case-insensitive
	// substring.
	Search(ctx context.Context, hospitalID uuid.UUID, query string, limit, offset int) ([]*Inventory, int, error)

	// DecrementStock subtracts quantity only when enough stock remains.
	// Returns false, nil when the conditional update matched no row.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error)
	// RestockItem adds quantity to the current stock.
	RestockItem(ctx context.Context, id uuid.UUID, quantity int) error

	CreateFulfillment(ctx context.Context, f *Fulfillment) error
	ListFulfillments(ctx context.Context, prescriptionID uuid.UUID) ([]*Fulfillment, error)
}
