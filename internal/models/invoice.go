package models

import "time"

// Invoice statuses
const (
	InvoiceUnpaid    = "unpaid"
	InvoicePaid      = "paid"
	InvoiceCancelled = "cancelled"
)

// Invoice represents a bill issued to a patient
type Invoice struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	InvoiceNumber string     `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	PatientID     uint       `gorm:"not null;index" json:"patient_id"`
	AdmissionID   *uint      `gorm:"index" json:"admission_id,omitempty"`
	TotalAmount   float64    `gorm:"type:decimal(12,2);default:0" json:"total_amount"`
	Status        string     `gorm:"type:enum('unpaid','paid','cancelled');default:'unpaid'" json:"status"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	// Relationships
	Patient Patient       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Items   []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// TableName specifies the table name for Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is one billed line on an invoice
type InvoiceItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	InvoiceID   uint    `gorm:"not null;index" json:"invoice_id"`
	Description string  `gorm:"size:255;not null" json:"description"`
	Category    string  `gorm:"type:enum('room','procedure','medicine','lab','other');default:'other'" json:"category"`
	Quantity    int     `gorm:"default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"type:decimal(10,2);default:0" json:"unit_price"`
	Amount      float64 `gorm:"type:decimal(12,2);default:0" json:"amount"`
}

// TableName specifies the table name for InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
