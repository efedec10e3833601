package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hospital-backend/internal/models"
	"hospital-backend/internal/repository"
	"hospital-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBillingAdmissions struct {
	admission *models.Admission
	err       error
}

func (f *fakeBillingAdmissions) GetAdmissionWithWard(id uint) (*models.Admission, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.admission, nil
}

func (f *fakeBillingAdmissions) GetAdmissionByID(id uint) (*models.Admission, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.admission, nil
}

type fakeTariffs struct{}

func (fakeTariffs) GetWardTariffDefaults() (map[string]float64, error) { return nil, nil }

type fakeAudit struct{}

func (fakeAudit) CreateAuditLog(userID *uint, action string, details string) error { return nil }

type fakeAdmissions struct {
	admission *models.Admission
	statsErr  error
}

func (f *fakeAdmissions) ListAdmissions(status string, wardID uint, offset, limit int) ([]models.Admission, int64, error) {
	return nil, 0, nil
}

func (f *fakeAdmissions) GetAdmissionByID(id uint) (*models.Admission, error) {
	if f.admission == nil {
		return nil, repository.ErrAdmissionNotFound
	}
	return f.admission, nil
}

func (f *fakeAdmissions) GetActiveAdmissionByPatientID(patientID uint) (*models.Admission, error) {
	return nil, repository.ErrAdmissionNotFound
}

func (f *fakeAdmissions) CreateAdmission(admission *models.Admission) error { return nil }
func (f *fakeAdmissions) UpdateAdmission(admission *models.Admission) error { return nil }
func (f *fakeAdmissions) CountAdmissions() (int64, error)                   { return 25, f.statsErr }
func (f *fakeAdmissions) CountAdmissionsByStatus(status string) (int64, error) {
	return 8, nil
}
func (f *fakeAdmissions) CountDischargedBetween(start, end time.Time) (int64, error) {
	return 3, nil
}
func (f *fakeAdmissions) CountAdmissionsByType() ([]models.TypeCount, error) {
	return []models.TypeCount{{AdmissionType: models.AdmissionTypePlanned, Count: 25}}, nil
}
func (f *fakeAdmissions) CountAdmittedByWard() ([]models.WardCount, error) {
	return []models.WardCount{{WardName: "ICU A", Count: 8}}, nil
}
func (f *fakeAdmissions) ListStayWindows() ([]models.StayWindow, error) { return nil, nil }

type fakeBeds struct{}

func (fakeBeds) GetWardByID(id uint) (*models.Ward, error) { return nil, repository.ErrWardNotFound }
func (fakeBeds) GetBedByID(id uint) (*models.Bed, error)   { return nil, repository.ErrBedNotFound }
func (fakeBeds) SetBedOccupied(id uint, occupied bool) error {
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupAdmissionRouter(admissions *fakeAdmissions, billing *fakeBillingAdmissions) *gin.Engine {
	gin.SetMode(gin.TestMode)

	admissionService := service.NewAdmissionService(admissions, fakeBeds{}, fakeAudit{})
	billingService := service.NewBillingService(billing, fakeTariffs{}, nil, fakeAudit{})
	h := NewAdmissionHandler(admissionService, billingService)

	r := gin.New()
	r.GET("/admissions/stats", h.Stats)
	r.GET("/admissions/:id", h.GetAdmission)
	r.GET("/admissions/:id/charges-preview", h.ChargesPreview)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestChargesPreviewEndpoint(t *testing.T) {
	rate := 3000.0
	billing := &fakeBillingAdmissions{admission: &models.Admission{
		ID:         1,
		AdmittedAt: time.Now().Add(-time.Hour),
		Ward:       models.Ward{Category: models.WardPrivate, DailyRate: &rate},
	}}
	r := setupAdmissionRouter(&fakeAdmissions{}, billing)

	w, env := doRequest(t, r, http.MethodGet, "/admissions/1/charges-preview")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	var data struct {
		Charges service.ChargesPreview `json:"charges"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 1, data.Charges.Details.DaysCharged)
	assert.Equal(t, 3000.0, data.Charges.RoomCharges)
	assert.Equal(t, 3000.0, data.Charges.TotalAmount)
	assert.Equal(t, models.WardPrivate, data.Charges.Details.WardType)
}

func TestChargesPreviewEndpoint_UnknownAdmission(t *testing.T) {
	// The endpoint stays green for unknown IDs, returning an all-zero preview
	billing := &fakeBillingAdmissions{err: repository.ErrAdmissionNotFound}
	r := setupAdmissionRouter(&fakeAdmissions{}, billing)

	w, env := doRequest(t, r, http.MethodGet, "/admissions/999/charges-preview")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	var data struct {
		Charges service.ChargesPreview `json:"charges"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Zero(t, data.Charges.TotalAmount)
	assert.Zero(t, data.Charges.Details.DaysCharged)
}

func TestChargesPreviewEndpoint_StoreFailure(t *testing.T) {
	billing := &fakeBillingAdmissions{err: errors.New("connection reset")}
	r := setupAdmissionRouter(&fakeAdmissions{}, billing)

	w, env := doRequest(t, r, http.MethodGet, "/admissions/1/charges-preview")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Failed to compute charges", env.Message)
}

func TestChargesPreviewEndpoint_InvalidID(t *testing.T) {
	r := setupAdmissionRouter(&fakeAdmissions{}, &fakeBillingAdmissions{})

	w, env := doRequest(t, r, http.MethodGet, "/admissions/abc/charges-preview")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestStatsEndpoint(t *testing.T) {
	r := setupAdmissionRouter(&fakeAdmissions{}, &fakeBillingAdmissions{})

	w, env := doRequest(t, r, http.MethodGet, "/admissions/stats")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	var stats service.AdmissionStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(25), stats.TotalAdmissions)
	assert.Equal(t, int64(8), stats.CurrentlyAdmitted)
	assert.Equal(t, int64(3), stats.DischargedToday)
	assert.Equal(t, int64(8), stats.ByWard["ICU A"])
	assert.Zero(t, stats.AverageStayDuration)
}

func TestStatsEndpoint_Failure(t *testing.T) {
	r := setupAdmissionRouter(&fakeAdmissions{statsErr: errors.New("db down")}, &fakeBillingAdmissions{})

	w, env := doRequest(t, r, http.MethodGet, "/admissions/stats")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, env.Success)
}

func TestGetAdmissionEndpoint_NotFound(t *testing.T) {
	r := setupAdmissionRouter(&fakeAdmissions{}, &fakeBillingAdmissions{})

	w, env := doRequest(t, r, http.MethodGet, "/admissions/42")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "admission not found", env.Message)
}
