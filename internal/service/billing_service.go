package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"hospital-backend/internal/models"
	"hospital-backend/internal/repository"

	"github.com/google/uuid"
)

// Built-in fallback tariffs, used when the hospital configuration carries
// no ward_tariffs map at all
var defaultWardTariffs = map[string]float64{
	models.WardGeneral:     1000,
	models.WardSemiPrivate: 2000,
	models.WardPrivate:     3000,
	models.WardICU:         5000,
}

// fallbackDailyRate applies to ward categories with no configured rate
const fallbackDailyRate = 1000

const millisPerDay = 24 * 60 * 60 * 1000

// TariffDefaultsProvider supplies the hospital-wide ward tariff defaults.
// The config repository implements it; tests stub it.
type TariffDefaultsProvider interface {
	GetWardTariffDefaults() (map[string]float64, error)
}

// BillingAdmissionStore is the slice of the admission repository the
// charge computation needs
type BillingAdmissionStore interface {
	GetAdmissionWithWard(id uint) (*models.Admission, error)
	GetAdmissionByID(id uint) (*models.Admission, error)
}

// InvoiceStore is the slice of the invoice repository used by billing
type InvoiceStore interface {
	CreateInvoice(invoice *models.Invoice) error
	GetInvoiceByID(id uint) (*models.Invoice, error)
	ListInvoicesByPatientID(patientID uint, offset, limit int) ([]models.Invoice, int64, error)
	UpdateInvoice(invoice *models.Invoice) error
}

// AuditWriter records audit log entries for mutating actions
type AuditWriter interface {
	CreateAuditLog(userID *uint, action string, details string) error
}

// ChargeDetails records which tariff inputs produced a preview, for
// auditability and display
type ChargeDetails struct {
	WardType     string  `json:"wardType,omitempty"`
	TariffPerDay float64 `json:"tariffPerDay,omitempty"`
	DaysCharged  int     `json:"daysCharged,omitempty"`
}

// ChargesPreview is the computed, non-persisted billing estimate for an
// admission. Procedure, medicine, lab and other charges are placeholders
// until those subsystems feed billing.
type ChargesPreview struct {
	RoomCharges      float64       `json:"roomCharges"`
	ProcedureCharges float64       `json:"procedureCharges"`
	MedicineCharges  float64       `json:"medicineCharges"`
	LabCharges       float64       `json:"labCharges"`
	OtherCharges     float64       `json:"otherCharges"`
	TotalAmount      float64       `json:"totalAmount"`
	Details          ChargeDetails `json:"details"`
}

type BillingService struct {
	admissionRepo BillingAdmissionStore
	tariffs       TariffDefaultsProvider
	invoiceRepo   InvoiceStore
	auditRepo     AuditWriter
	now           func() time.Time
}

func NewBillingService(admissionRepo BillingAdmissionStore, tariffs TariffDefaultsProvider, invoiceRepo InvoiceStore, auditRepo AuditWriter) *BillingService {
	return &BillingService{
		admissionRepo: admissionRepo,
		tariffs:       tariffs,
		invoiceRepo:   invoiceRepo,
		auditRepo:     auditRepo,
		now:           time.Now,
	}
}

// ResolveWardTariff determines the daily rate for a ward: an explicit
// per-ward override wins, then the configured rate for its category, then
// the built-in default table, then the flat fallback for unknown categories.
func (s *BillingService) ResolveWardTariff(ward *models.Ward) (float64, error) {
	if ward.DailyRate != nil {
		return *ward.DailyRate, nil
	}

	tariffs, err := s.tariffs.GetWardTariffDefaults()
	if err != nil {
		return 0, fmt.Errorf("failed to load ward tariff defaults: %w", err)
	}
	if tariffs == nil {
		tariffs = defaultWardTariffs
	}

	if rate, ok := tariffs[ward.Category]; ok {
		return rate, nil
	}
	return fallbackDailyRate, nil
}

// ChargesPreviewFor computes the current charges estimate for an admission.
// A missing admission yields a zeroed preview rather than an error, so the
// endpoint never breaks a client polling it.
func (s *BillingService) ChargesPreviewFor(admissionID uint) (*ChargesPreview, error) {
	admission, err := s.admissionRepo.GetAdmissionWithWard(admissionID)
	if err != nil {
		if errors.Is(err, repository.ErrAdmissionNotFound) {
			return &ChargesPreview{}, nil
		}
		return nil, err
	}

	return s.computeCharges(admission)
}

// computeCharges accrues room charges for a stay in 24-hour blocks.
// The billing window always ends at the current wall clock, matching the
// established preview behavior: a discharged stay previewed later still
// accrues against now, not its discharge date.
func (s *BillingService) computeCharges(admission *models.Admission) (*ChargesPreview, error) {
	elapsed := s.now().Sub(admission.AdmittedAt).Milliseconds()
	daysCharged := int(math.Ceil(float64(elapsed) / float64(millisPerDay)))
	if daysCharged < 1 {
		// any stay bills a minimum of one full day
		daysCharged = 1
	}

	tariff, err := s.ResolveWardTariff(&admission.Ward)
	if err != nil {
		return nil, err
	}

	roomCharges := float64(daysCharged) * tariff

	preview := &ChargesPreview{
		RoomCharges: roomCharges,
		TotalAmount: roomCharges,
		Details: ChargeDetails{
			WardType:     admission.Ward.Category,
			TariffPerDay: tariff,
			DaysCharged:  daysCharged,
		},
	}
	preview.TotalAmount = preview.RoomCharges + preview.ProcedureCharges +
		preview.MedicineCharges + preview.LabCharges + preview.OtherCharges
	return preview, nil
}

// CreateInvoiceForAdmission issues an invoice for an admission, with the
// accrued room charges as its only line item
func (s *BillingService) CreateInvoiceForAdmission(admissionID uint, actorID uint) (*models.Invoice, error) {
	admission, err := s.admissionRepo.GetAdmissionByID(admissionID)
	if err != nil {
		return nil, err
	}

	charges, err := s.computeCharges(admission)
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		InvoiceNumber: newInvoiceNumber(),
		PatientID:     admission.PatientID,
		AdmissionID:   &admission.ID,
		TotalAmount:   charges.TotalAmount,
		Status:        models.InvoiceUnpaid,
		Items: []models.InvoiceItem{
			{
				Description: fmt.Sprintf("Room charges - %s ward, %d day(s)", admission.Ward.Category, charges.Details.DaysCharged),
				Category:    "room",
				Quantity:    charges.Details.DaysCharged,
				UnitPrice:   charges.Details.TariffPerDay,
				Amount:      charges.RoomCharges,
			},
		},
	}

	if err := s.invoiceRepo.CreateInvoice(invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "invoice_created",
		fmt.Sprintf("Invoice %s issued for admission %d", invoice.InvoiceNumber, admission.ID))

	return invoice, nil
}

// MarkInvoicePaid settles an unpaid invoice
func (s *BillingService) MarkInvoicePaid(invoiceID uint, actorID uint) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetInvoiceByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != models.InvoiceUnpaid {
		return nil, fmt.Errorf("invoice is %s, only unpaid invoices can be settled", invoice.Status)
	}

	paidAt := s.now()
	invoice.Status = models.InvoicePaid
	invoice.PaidAt = &paidAt
	if err := s.invoiceRepo.UpdateInvoice(invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "invoice_paid",
		fmt.Sprintf("Invoice %s marked paid", invoice.InvoiceNumber))

	return invoice, nil
}

// GetInvoice retrieves an invoice with its items
func (s *BillingService) GetInvoice(id uint) (*models.Invoice, error) {
	return s.invoiceRepo.GetInvoiceByID(id)
}

// ListInvoicesByPatient retrieves a patient's invoices
func (s *BillingService) ListInvoicesByPatient(patientID uint, offset, limit int) ([]models.Invoice, int64, error) {
	return s.invoiceRepo.ListInvoicesByPatientID(patientID, offset, limit)
}

func newInvoiceNumber() string {
	return "INV-" + strings.ToUpper(uuid.New().String()[:8])
}
