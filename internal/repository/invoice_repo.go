package repository

import (
	"errors"

	"hospital-backend/internal/models"

	"gorm.io/gorm"
)

// ErrInvoiceNotFound is returned when no matching invoice row exists
var ErrInvoiceNotFound = errors.New("invoice not found")

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepo(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// CreateInvoice creates an invoice and its line items in one transaction
func (r *InvoiceRepository) CreateInvoice(invoice *models.Invoice) error {
	return r.db.Create(invoice).Error
}

// GetInvoiceByID retrieves an invoice with its items
func (r *InvoiceRepository) GetInvoiceByID(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.Preload("Items").Preload("Patient").First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// ListInvoicesByPatientID retrieves invoices for a patient, newest first,
// with pagination
func (r *InvoiceRepository) ListInvoicesByPatientID(patientID uint, offset, limit int) ([]models.Invoice, int64, error) {
	query := r.db.Model(&models.Invoice{}).Where("patient_id = ?", patientID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoices []models.Invoice
	err := query.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&invoices).Error
	return invoices, total, err
}

// UpdateInvoice updates an existing invoice
func (r *InvoiceRepository) UpdateInvoice(invoice *models.Invoice) error {
	return r.db.Save(invoice).Error
}
