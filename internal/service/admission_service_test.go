package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hospital-backend/internal/models"
	"hospital-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type admissionStoreStub struct {
	active    *models.Admission
	byID      *models.Admission
	created   *models.Admission
	updated   *models.Admission
	createErr error

	total           int64
	totalErr        error
	admitted        int64
	discharged      int64
	dischargedStart time.Time
	dischargedEnd   time.Time
	typeCounts      []models.TypeCount
	wardCounts      []models.WardCount
	stays           []models.StayWindow
	staysErr        error
}

func (s *admissionStoreStub) ListAdmissions(status string, wardID uint, offset, limit int) ([]models.Admission, int64, error) {
	return nil, 0, nil
}

func (s *admissionStoreStub) GetAdmissionByID(id uint) (*models.Admission, error) {
	if s.byID == nil {
		return nil, repository.ErrAdmissionNotFound
	}
	return s.byID, nil
}

func (s *admissionStoreStub) GetActiveAdmissionByPatientID(patientID uint) (*models.Admission, error) {
	if s.active == nil {
		return nil, repository.ErrAdmissionNotFound
	}
	return s.active, nil
}

func (s *admissionStoreStub) CreateAdmission(admission *models.Admission) error {
	if s.createErr != nil {
		return s.createErr
	}
	admission.ID = 1
	s.created = admission
	return nil
}

func (s *admissionStoreStub) UpdateAdmission(admission *models.Admission) error {
	s.updated = admission
	return nil
}

func (s *admissionStoreStub) CountAdmissions() (int64, error) {
	return s.total, s.totalErr
}

func (s *admissionStoreStub) CountAdmissionsByStatus(status string) (int64, error) {
	return s.admitted, nil
}

func (s *admissionStoreStub) CountDischargedBetween(start, end time.Time) (int64, error) {
	s.dischargedStart = start
	s.dischargedEnd = end
	return s.discharged, nil
}

func (s *admissionStoreStub) CountAdmissionsByType() ([]models.TypeCount, error) {
	return s.typeCounts, nil
}

func (s *admissionStoreStub) CountAdmittedByWard() ([]models.WardCount, error) {
	return s.wardCounts, nil
}

func (s *admissionStoreStub) ListStayWindows() ([]models.StayWindow, error) {
	return s.stays, s.staysErr
}

type bedStoreStub struct {
	wards     map[uint]*models.Ward
	beds      map[uint]*models.Bed
	occupancy map[uint]bool
}

func newBedStoreStub() *bedStoreStub {
	return &bedStoreStub{
		wards:     map[uint]*models.Ward{},
		beds:      map[uint]*models.Bed{},
		occupancy: map[uint]bool{},
	}
}

func (s *bedStoreStub) GetWardByID(id uint) (*models.Ward, error) {
	ward, ok := s.wards[id]
	if !ok {
		return nil, repository.ErrWardNotFound
	}
	return ward, nil
}

func (s *bedStoreStub) GetBedByID(id uint) (*models.Bed, error) {
	bed, ok := s.beds[id]
	if !ok {
		return nil, repository.ErrBedNotFound
	}
	return bed, nil
}

func (s *bedStoreStub) SetBedOccupied(id uint, occupied bool) error {
	s.occupancy[id] = occupied
	return nil
}

func newTestAdmissionService(admissions *admissionStoreStub, beds *bedStoreStub, now time.Time) *AdmissionService {
	svc := NewAdmissionService(admissions, beds, &auditStub{})
	svc.now = func() time.Time { return now }
	return svc
}

func dayMillis(days float64) time.Duration {
	return time.Duration(days*float64(millisPerDay)) * time.Millisecond
}

func TestAverageStayDays_NoDischargedStays(t *testing.T) {
	assert.Equal(t, 0.0, averageStayDays(nil))
	assert.Equal(t, 0.0, averageStayDays([]models.StayWindow{}))
}

func TestAverageStayDays_RoundsTwoDecimals(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	stays := []models.StayWindow{
		{AdmittedAt: base, DischargedAt: base.Add(dayMillis(3.456))},
		{AdmittedAt: base, DischargedAt: base.Add(dayMillis(5.001))},
	}

	// (3.456 + 5.001) / 2 = 4.2285
	assert.Equal(t, 4.23, averageStayDays(stays))
}

func TestStats_Aggregates(t *testing.T) {
	now := time.Date(2024, 4, 15, 14, 30, 0, 0, time.UTC)
	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	admissions := &admissionStoreStub{
		total:      25,
		admitted:   8,
		discharged: 3,
		typeCounts: []models.TypeCount{
			{AdmissionType: models.AdmissionTypeEmergency, Count: 10},
			{AdmissionType: models.AdmissionTypePlanned, Count: 15},
		},
		wardCounts: []models.WardCount{
			{WardName: "West General", Count: 5},
			{WardName: "ICU A", Count: 3},
		},
		stays: []models.StayWindow{
			{AdmittedAt: base, DischargedAt: base.Add(dayMillis(4))},
		},
	}
	svc := newTestAdmissionService(admissions, newBedStoreStub(), now)

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(25), stats.TotalAdmissions)
	assert.Equal(t, int64(8), stats.CurrentlyAdmitted)
	assert.Equal(t, int64(3), stats.DischargedToday)
	assert.Equal(t, map[string]int64{"emergency": 10, "planned": 15}, stats.ByType)
	assert.Equal(t, map[string]int64{"West General": 5, "ICU A": 3}, stats.ByWard)
	assert.Equal(t, 4.0, stats.AverageStayDuration)
}

func TestStats_DischargedTodayWindow(t *testing.T) {
	now := time.Date(2024, 4, 15, 14, 30, 45, 0, time.UTC)
	admissions := &admissionStoreStub{}
	svc := newTestAdmissionService(admissions, newBedStoreStub(), now)

	_, err := svc.Stats(context.Background())

	require.NoError(t, err)
	wantStart := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, wantStart, admissions.dischargedStart)
	assert.Equal(t, wantStart.Add(24*time.Hour), admissions.dischargedEnd)
}

func TestStats_AnyFailureAborts(t *testing.T) {
	admissions := &admissionStoreStub{staysErr: errors.New("scan failed")}
	svc := newTestAdmissionService(admissions, newBedStoreStub(), time.Now())

	stats, err := svc.Stats(context.Background())

	assert.Error(t, err)
	assert.Nil(t, stats)
}

func TestAdmitPatient_ClaimsBed(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	admissions := &admissionStoreStub{}
	beds := newBedStoreStub()
	beds.wards[1] = &models.Ward{ID: 1, Category: models.WardGeneral}
	beds.beds[10] = &models.Bed{ID: 10, WardID: 1}
	svc := newTestAdmissionService(admissions, beds, now)

	admission, err := svc.AdmitPatient(&AdmitRequest{
		PatientID: 5, WardID: 1, BedID: 10, DoctorID: 2,
	}, 99)

	require.NoError(t, err)
	assert.Equal(t, models.AdmissionAdmitted, admission.Status)
	assert.Equal(t, models.AdmissionTypePlanned, admission.AdmissionType)
	assert.Equal(t, now, admission.AdmittedAt)
	assert.Nil(t, admission.DischargedAt)
	assert.True(t, beds.occupancy[10])
}

func TestAdmitPatient_RejectsSecondActiveStay(t *testing.T) {
	admissions := &admissionStoreStub{active: &models.Admission{ID: 3, PatientID: 5}}
	svc := newTestAdmissionService(admissions, newBedStoreStub(), time.Now())

	_, err := svc.AdmitPatient(&AdmitRequest{PatientID: 5, WardID: 1, BedID: 10, DoctorID: 2}, 99)

	assert.EqualError(t, err, "patient is already admitted")
}

func TestAdmitPatient_RejectsOccupiedBed(t *testing.T) {
	beds := newBedStoreStub()
	beds.wards[1] = &models.Ward{ID: 1}
	beds.beds[10] = &models.Bed{ID: 10, WardID: 1, Occupied: true}
	svc := newTestAdmissionService(&admissionStoreStub{}, beds, time.Now())

	_, err := svc.AdmitPatient(&AdmitRequest{PatientID: 5, WardID: 1, BedID: 10, DoctorID: 2}, 99)

	assert.EqualError(t, err, "bed is already occupied")
}

func TestAdmitPatient_RejectsBedFromOtherWard(t *testing.T) {
	beds := newBedStoreStub()
	beds.wards[1] = &models.Ward{ID: 1}
	beds.beds[10] = &models.Bed{ID: 10, WardID: 2}
	svc := newTestAdmissionService(&admissionStoreStub{}, beds, time.Now())

	_, err := svc.AdmitPatient(&AdmitRequest{PatientID: 5, WardID: 1, BedID: 10, DoctorID: 2}, 99)

	assert.EqualError(t, err, "bed does not belong to the requested ward")
}

func TestAdmitPatient_UnknownWard(t *testing.T) {
	svc := newTestAdmissionService(&admissionStoreStub{}, newBedStoreStub(), time.Now())

	_, err := svc.AdmitPatient(&AdmitRequest{PatientID: 5, WardID: 7, BedID: 10, DoctorID: 2}, 99)

	assert.ErrorIs(t, err, repository.ErrWardNotFound)
}

func TestTransferAdmission_SwapsBeds(t *testing.T) {
	admissions := &admissionStoreStub{byID: &models.Admission{
		ID: 1, PatientID: 5, WardID: 1, BedID: 10, Status: models.AdmissionAdmitted,
	}}
	beds := newBedStoreStub()
	beds.wards[2] = &models.Ward{ID: 2}
	beds.beds[20] = &models.Bed{ID: 20, WardID: 2}
	svc := newTestAdmissionService(admissions, beds, time.Now())

	admission, err := svc.TransferAdmission(1, 2, 20, 99)

	require.NoError(t, err)
	assert.Equal(t, uint(2), admission.WardID)
	assert.Equal(t, uint(20), admission.BedID)
	assert.False(t, beds.occupancy[10])
	assert.True(t, beds.occupancy[20])
}

func TestDischargeAdmission_SetsTimestampAndFreesBed(t *testing.T) {
	now := time.Date(2024, 5, 3, 16, 0, 0, 0, time.UTC)
	admissions := &admissionStoreStub{byID: &models.Admission{
		ID: 1, PatientID: 5, WardID: 1, BedID: 10,
		Status:     models.AdmissionAdmitted,
		AdmittedAt: now.Add(-72 * time.Hour),
	}}
	beds := newBedStoreStub()
	svc := newTestAdmissionService(admissions, beds, now)

	admission, err := svc.DischargeAdmission(1, "recovered", 99)

	require.NoError(t, err)
	assert.Equal(t, models.AdmissionDischarged, admission.Status)
	require.NotNil(t, admission.DischargedAt)
	assert.Equal(t, now, *admission.DischargedAt)
	assert.Equal(t, "recovered", admission.Notes)
	assert.False(t, beds.occupancy[10])
	assert.NotNil(t, admissions.updated)
}

func TestDischargeAdmission_AlreadyDischarged(t *testing.T) {
	discharged := time.Now()
	admissions := &admissionStoreStub{byID: &models.Admission{
		ID: 1, Status: models.AdmissionDischarged, DischargedAt: &discharged,
	}}
	svc := newTestAdmissionService(admissions, newBedStoreStub(), time.Now())

	_, err := svc.DischargeAdmission(1, "", 99)

	assert.EqualError(t, err, "admission is already discharged")
}
