package pharmacy

import (
	"time"

	"github.com/google/uuid"
)

// Inventory maps to the inventory table: one medication line held by a
// hospital. Stock only moves through fulfillment events and never goes
// negative.
type Inventory struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	HospitalID        uuid.UUID  `db:"hospital_id" json:"hospital_id"`
	MedicationName    string     `db:"medication_name" json:"medication_name"`
	GenericName       *string    `db:"generic_name" json:"generic_name,omitempty"`
	Category          *string    `db:"category" json:"category,omitempty"`
	Manufacturer      *string    `db:"manufacturer" json:"manufacturer,omitempty"`
	BatchNumber       *string    `db:"batch_number" json:"batch_number,omitempty"`
	ExpiryDate        *time.Time `db:"expiry_date" json:"expiry_date,omitempty"`
	StockQuantity     int        `db:"stock_quantity" json:"stock_quantity"`
	ReorderThreshold  int        `db:"reorder_threshold" json:"reorder_threshold"`
	UnitPrice         *float64   `db:"unit_price" json:"unit_price,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
	CreatedBy         *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
	DeletedAt         *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// Fulfillment records one act of dispensing against a prescription,
// optionally matched to an inventory line.
type Fulfillment struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	PrescriptionID    uuid.UUID  `db:"prescription_id" json:"prescription_id"`
	InventoryID       *uuid.UUID `db:"inventory_id" json:"inventory_id,omitempty"`
	PharmacistID      uuid.UUID  `db:"pharmacist_id" json:"pharmacist_id"`
	QuantityFulfilled int        `db:"quantity_fulfilled" json:"quantity_fulfilled"`
	FulfilledAt       time.Time  `db:"fulfilled_at" json:"fulfilled_at"`
	Notes             *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
}
