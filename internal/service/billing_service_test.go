package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"hospital-backend/internal/models"
	"hospital-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tariffStub struct {
	tariffs map[string]float64
	err     error
}

func (s *tariffStub) GetWardTariffDefaults() (map[string]float64, error) {
	return s.tariffs, s.err
}

type billingAdmissionStub struct {
	admission *models.Admission
	err       error
}

func (s *billingAdmissionStub) GetAdmissionWithWard(id uint) (*models.Admission, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.admission, nil
}

func (s *billingAdmissionStub) GetAdmissionByID(id uint) (*models.Admission, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.admission, nil
}

type invoiceStoreStub struct {
	created *models.Invoice
	stored  *models.Invoice
	updated *models.Invoice
}

func (s *invoiceStoreStub) CreateInvoice(invoice *models.Invoice) error {
	invoice.ID = 1
	s.created = invoice
	return nil
}

func (s *invoiceStoreStub) GetInvoiceByID(id uint) (*models.Invoice, error) {
	if s.stored == nil {
		return nil, repository.ErrInvoiceNotFound
	}
	return s.stored, nil
}

func (s *invoiceStoreStub) ListInvoicesByPatientID(patientID uint, offset, limit int) ([]models.Invoice, int64, error) {
	return nil, 0, nil
}

func (s *invoiceStoreStub) UpdateInvoice(invoice *models.Invoice) error {
	s.updated = invoice
	return nil
}

type auditStub struct {
	actions []string
}

func (s *auditStub) CreateAuditLog(userID *uint, action string, details string) error {
	s.actions = append(s.actions, action)
	return nil
}

func floatPtr(f float64) *float64 { return &f }

func newTestBillingService(admissions *billingAdmissionStub, tariffs *tariffStub, invoices *invoiceStoreStub, now time.Time) *BillingService {
	svc := NewBillingService(admissions, tariffs, invoices, &auditStub{})
	svc.now = func() time.Time { return now }
	return svc
}

func TestResolveWardTariff_OverrideWins(t *testing.T) {
	svc := newTestBillingService(nil, &tariffStub{tariffs: map[string]float64{models.WardPrivate: 2500}}, nil, time.Now())

	ward := &models.Ward{Category: models.WardPrivate, DailyRate: floatPtr(4200)}
	rate, err := svc.ResolveWardTariff(ward)

	require.NoError(t, err)
	assert.Equal(t, 4200.0, rate)
}

func TestResolveWardTariff_ConfiguredCategory(t *testing.T) {
	svc := newTestBillingService(nil, &tariffStub{tariffs: map[string]float64{models.WardGeneral: 1500}}, nil, time.Now())

	rate, err := svc.ResolveWardTariff(&models.Ward{Category: models.WardGeneral})

	require.NoError(t, err)
	assert.Equal(t, 1500.0, rate)
}

func TestResolveWardTariff_BuiltinDefaults(t *testing.T) {
	// No configured tariff map at all falls through to the built-in table
	svc := newTestBillingService(nil, &tariffStub{tariffs: nil}, nil, time.Now())

	cases := map[string]float64{
		models.WardGeneral:     1000,
		models.WardSemiPrivate: 2000,
		models.WardPrivate:     3000,
		models.WardICU:         5000,
	}
	for category, want := range cases {
		rate, err := svc.ResolveWardTariff(&models.Ward{Category: category})
		require.NoError(t, err)
		assert.Equal(t, want, rate, "category %s", category)
	}
}

func TestResolveWardTariff_UnknownCategoryFallsBack(t *testing.T) {
	svc := newTestBillingService(nil, &tariffStub{tariffs: map[string]float64{models.WardICU: 5000}}, nil, time.Now())

	rate, err := svc.ResolveWardTariff(&models.Ward{Category: "DELUXE"})

	require.NoError(t, err)
	assert.Equal(t, float64(fallbackDailyRate), rate)
}

func TestResolveWardTariff_ProviderError(t *testing.T) {
	svc := newTestBillingService(nil, &tariffStub{err: errors.New("db down")}, nil, time.Now())

	_, err := svc.ResolveWardTariff(&models.Ward{Category: models.WardGeneral})

	assert.Error(t, err)
}

func TestChargesPreview_MinimumOneDay(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	admissions := &billingAdmissionStub{admission: &models.Admission{
		ID:         1,
		AdmittedAt: now.Add(-time.Hour),
		Ward:       models.Ward{Category: models.WardGeneral},
	}}
	svc := newTestBillingService(admissions, &tariffStub{}, nil, now)

	preview, err := svc.ChargesPreviewFor(1)

	require.NoError(t, err)
	assert.Equal(t, 1, preview.Details.DaysCharged)
	assert.Equal(t, 1000.0, preview.RoomCharges)
	assert.Equal(t, 1000.0, preview.TotalAmount)
}

func TestChargesPreview_PartialDayRoundsUp(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	admissions := &billingAdmissionStub{admission: &models.Admission{
		ID:         1,
		AdmittedAt: now.Add(-(24*time.Hour + time.Second)),
		Ward:       models.Ward{Category: models.WardGeneral},
	}}
	svc := newTestBillingService(admissions, &tariffStub{}, nil, now)

	preview, err := svc.ChargesPreviewFor(1)

	require.NoError(t, err)
	assert.Equal(t, 2, preview.Details.DaysCharged)
	assert.Equal(t, 2000.0, preview.RoomCharges)
}

func TestChargesPreview_ConfiguredPrivateWard(t *testing.T) {
	// Admitted midnight Jan 1, previewed 01:00 Jan 3: 49 elapsed hours
	// bill as three day blocks at the configured private rate
	now := time.Date(2024, 1, 3, 1, 0, 0, 0, time.UTC)
	admissions := &billingAdmissionStub{admission: &models.Admission{
		ID:         7,
		AdmittedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Ward:       models.Ward{Category: models.WardPrivate},
	}}
	tariffs := &tariffStub{tariffs: map[string]float64{models.WardPrivate: 2500}}
	svc := newTestBillingService(admissions, tariffs, nil, now)

	preview, err := svc.ChargesPreviewFor(7)

	require.NoError(t, err)
	assert.Equal(t, 3, preview.Details.DaysCharged)
	assert.Equal(t, 2500.0, preview.Details.TariffPerDay)
	assert.Equal(t, models.WardPrivate, preview.Details.WardType)
	assert.Equal(t, 7500.0, preview.RoomCharges)
	assert.Equal(t, 7500.0, preview.TotalAmount)
	assert.Zero(t, preview.MedicineCharges)
	assert.Zero(t, preview.LabCharges)
}

func TestChargesPreview_UnknownAdmissionYieldsZeroedPreview(t *testing.T) {
	admissions := &billingAdmissionStub{err: repository.ErrAdmissionNotFound}
	svc := newTestBillingService(admissions, &tariffStub{}, nil, time.Now())

	preview, err := svc.ChargesPreviewFor(999)

	require.NoError(t, err)
	assert.Equal(t, &ChargesPreview{}, preview)
}

func TestChargesPreview_StoreErrorPropagates(t *testing.T) {
	admissions := &billingAdmissionStub{err: errors.New("connection reset")}
	svc := newTestBillingService(admissions, &tariffStub{}, nil, time.Now())

	preview, err := svc.ChargesPreviewFor(1)

	assert.Error(t, err)
	assert.Nil(t, preview)
}

func TestChargesPreview_DischargedStayStillAccruesToNow(t *testing.T) {
	// The billing window ends at the current clock even after discharge,
	// so a preview taken later keeps growing
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	dischargedAt := now.Add(-48 * time.Hour)
	admissions := &billingAdmissionStub{admission: &models.Admission{
		ID:           3,
		AdmittedAt:   now.Add(-120 * time.Hour),
		DischargedAt: &dischargedAt,
		Status:       models.AdmissionDischarged,
		Ward:         models.Ward{Category: models.WardGeneral},
	}}
	svc := newTestBillingService(admissions, &tariffStub{}, nil, now)

	preview, err := svc.ChargesPreviewFor(3)

	require.NoError(t, err)
	assert.Equal(t, 5, preview.Details.DaysCharged)
}

func TestCreateInvoiceForAdmission(t *testing.T) {
	now := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	admissions := &billingAdmissionStub{admission: &models.Admission{
		ID:         4,
		PatientID:  12,
		AdmittedAt: now.Add(-30 * time.Hour),
		Ward:       models.Ward{Category: models.WardICU},
	}}
	invoices := &invoiceStoreStub{}
	svc := newTestBillingService(admissions, &tariffStub{}, invoices, now)

	invoice, err := svc.CreateInvoiceForAdmission(4, 99)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(invoice.InvoiceNumber, "INV-"))
	assert.Equal(t, uint(12), invoice.PatientID)
	assert.Equal(t, models.InvoiceUnpaid, invoice.Status)
	assert.Equal(t, 10000.0, invoice.TotalAmount)
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, "room", invoice.Items[0].Category)
	assert.Equal(t, 2, invoice.Items[0].Quantity)
	assert.Equal(t, 5000.0, invoice.Items[0].UnitPrice)
	assert.NotNil(t, invoices.created)
}

func TestMarkInvoicePaid(t *testing.T) {
	now := time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC)
	invoices := &invoiceStoreStub{stored: &models.Invoice{
		ID:            2,
		InvoiceNumber: "INV-AB12CD34",
		Status:        models.InvoiceUnpaid,
	}}
	svc := newTestBillingService(nil, &tariffStub{}, invoices, now)

	invoice, err := svc.MarkInvoicePaid(2, 99)

	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, invoice.Status)
	require.NotNil(t, invoice.PaidAt)
	assert.Equal(t, now, *invoice.PaidAt)
	assert.NotNil(t, invoices.updated)
}

func TestMarkInvoicePaid_RejectsSettledInvoice(t *testing.T) {
	invoices := &invoiceStoreStub{stored: &models.Invoice{
		ID:     2,
		Status: models.InvoicePaid,
	}}
	svc := newTestBillingService(nil, &tariffStub{}, invoices, time.Now())

	_, err := svc.MarkInvoicePaid(2, 99)

	assert.Error(t, err)
	assert.Nil(t, invoices.updated)
}
