package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"hospital-backend/internal/models"
	"hospital-backend/internal/repository"

	"golang.org/x/sync/errgroup"
)

// AdmissionStore is the slice of the admission repository the admission
// lifecycle and statistics need
type AdmissionStore interface {
	ListAdmissions(status string, wardID uint, offset, limit int) ([]models.Admission, int64, error)
	GetAdmissionByID(id uint) (*models.Admission, error)
	GetActiveAdmissionByPatientID(patientID uint) (*models.Admission, error)
	CreateAdmission(admission *models.Admission) error
	UpdateAdmission(admission *models.Admission) error
	CountAdmissions() (int64, error)
	CountAdmissionsByStatus(status string) (int64, error)
	CountDischargedBetween(start, end time.Time) (int64, error)
	CountAdmissionsByType() ([]models.TypeCount, error)
	CountAdmittedByWard() ([]models.WardCount, error)
	ListStayWindows() ([]models.StayWindow, error)
}

// BedStore is the slice of the ward repository admission transfers need
type BedStore interface {
	GetWardByID(id uint) (*models.Ward, error)
	GetBedByID(id uint) (*models.Bed, error)
	SetBedOccupied(id uint, occupied bool) error
}

// AdmissionStats is the hospital-wide admission summary
type AdmissionStats struct {
	TotalAdmissions     int64            `json:"totalAdmissions"`
	CurrentlyAdmitted   int64            `json:"currentlyAdmitted"`
	DischargedToday     int64            `json:"dischargedToday"`
	ByType              map[string]int64 `json:"byType"`
	ByWard              map[string]int64 `json:"byWard"`
	AverageStayDuration float64          `json:"averageStayDuration"`
}

// AdmitRequest carries the inputs for admitting a patient
type AdmitRequest struct {
	PatientID     uint   `json:"patient_id" binding:"required"`
	WardID        uint   `json:"ward_id" binding:"required"`
	BedID         uint   `json:"bed_id" binding:"required"`
	DoctorID      uint   `json:"doctor_id" binding:"required"`
	AdmissionType string `json:"admission_type"`
	Notes         string `json:"notes"`
}

type AdmissionService struct {
	admissionRepo AdmissionStore
	wardRepo      BedStore
	auditRepo     AuditWriter
	now           func() time.Time
}

func NewAdmissionService(admissionRepo AdmissionStore, wardRepo BedStore, auditRepo AuditWriter) *AdmissionService {
	return &AdmissionService{
		admissionRepo: admissionRepo,
		wardRepo:      wardRepo,
		auditRepo:     auditRepo,
		now:           time.Now,
	}
}

// ListAdmissions retrieves admissions with optional status/ward filters
func (s *AdmissionService) ListAdmissions(status string, wardID uint, offset, limit int) ([]models.Admission, int64, error) {
	return s.admissionRepo.ListAdmissions(status, wardID, offset, limit)
}

// GetAdmission retrieves a single admission
func (s *AdmissionService) GetAdmission(id uint) (*models.Admission, error) {
	return s.admissionRepo.GetAdmissionByID(id)
}

// AdmitPatient opens a new inpatient stay, claiming the requested bed
func (s *AdmissionService) AdmitPatient(req *AdmitRequest, actorID uint) (*models.Admission, error) {
	// One active stay per patient
	existing, err := s.admissionRepo.GetActiveAdmissionByPatientID(req.PatientID)
	if err != nil && !errors.Is(err, repository.ErrAdmissionNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("patient is already admitted")
	}

	if _, err := s.wardRepo.GetWardByID(req.WardID); err != nil {
		return nil, err
	}

	bed, err := s.wardRepo.GetBedByID(req.BedID)
	if err != nil {
		return nil, err
	}
	if bed.WardID != req.WardID {
		return nil, errors.New("bed does not belong to the requested ward")
	}
	if bed.Occupied {
		return nil, errors.New("bed is already occupied")
	}

	admissionType := req.AdmissionType
	if admissionType == "" {
		admissionType = models.AdmissionTypePlanned
	}

	admission := &models.Admission{
		PatientID:     req.PatientID,
		WardID:        req.WardID,
		BedID:         req.BedID,
		DoctorID:      req.DoctorID,
		AdmissionType: admissionType,
		Status:        models.AdmissionAdmitted,
		AdmittedAt:    s.now(),
		Notes:         req.Notes,
	}

	if err := s.admissionRepo.CreateAdmission(admission); err != nil {
		return nil, fmt.Errorf("failed to create admission: %w", err)
	}

	if err := s.wardRepo.SetBedOccupied(bed.ID, true); err != nil {
		return nil, fmt.Errorf("failed to mark bed occupied: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "patient_admitted",
		fmt.Sprintf("Patient %d admitted to ward %d, bed %d", req.PatientID, req.WardID, req.BedID))

	return admission, nil
}

// TransferAdmission moves an active stay to another ward/bed
func (s *AdmissionService) TransferAdmission(id, newWardID, newBedID uint, actorID uint) (*models.Admission, error) {
	admission, err := s.admissionRepo.GetAdmissionByID(id)
	if err != nil {
		return nil, err
	}
	if admission.Status != models.AdmissionAdmitted {
		return nil, errors.New("only active admissions can be transferred")
	}

	if _, err := s.wardRepo.GetWardByID(newWardID); err != nil {
		return nil, err
	}

	newBed, err := s.wardRepo.GetBedByID(newBedID)
	if err != nil {
		return nil, err
	}
	if newBed.WardID != newWardID {
		return nil, errors.New("bed does not belong to the requested ward")
	}
	if newBed.Occupied {
		return nil, errors.New("bed is already occupied")
	}

	oldBedID := admission.BedID
	admission.WardID = newWardID
	admission.BedID = newBedID
	if err := s.admissionRepo.UpdateAdmission(admission); err != nil {
		return nil, fmt.Errorf("failed to update admission: %w", err)
	}

	if err := s.wardRepo.SetBedOccupied(oldBedID, false); err != nil {
		return nil, fmt.Errorf("failed to release previous bed: %w", err)
	}
	if err := s.wardRepo.SetBedOccupied(newBedID, true); err != nil {
		return nil, fmt.Errorf("failed to mark bed occupied: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "admission_transferred",
		fmt.Sprintf("Admission %d moved to ward %d, bed %d", id, newWardID, newBedID))

	return admission, nil
}

// DischargeAdmission closes an active stay and releases its bed
func (s *AdmissionService) DischargeAdmission(id uint, notes string, actorID uint) (*models.Admission, error) {
	admission, err := s.admissionRepo.GetAdmissionByID(id)
	if err != nil {
		return nil, err
	}
	if admission.Status != models.AdmissionAdmitted {
		return nil, errors.New("admission is already discharged")
	}

	dischargedAt := s.now()
	admission.Status = models.AdmissionDischarged
	admission.DischargedAt = &dischargedAt
	if notes != "" {
		admission.Notes = notes
	}

	if err := s.admissionRepo.UpdateAdmission(admission); err != nil {
		return nil, fmt.Errorf("failed to update admission: %w", err)
	}

	if err := s.wardRepo.SetBedOccupied(admission.BedID, false); err != nil {
		return nil, fmt.Errorf("failed to release bed: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "patient_discharged",
		fmt.Sprintf("Admission %d discharged", id))

	return admission, nil
}

// Stats aggregates hospital-wide admission statistics. The six reads are
// independent and fan out concurrently; any failure aborts the whole
// aggregation with no partial result.
func (s *AdmissionService) Stats(ctx context.Context) (*AdmissionStats, error) {
	var (
		total           int64
		admitted        int64
		dischargedToday int64
		typeCounts      []models.TypeCount
		wardCounts      []models.WardCount
		stays           []models.StayWindow
	)

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = s.admissionRepo.CountAdmissions()
		return err
	})
	g.Go(func() (err error) {
		admitted, err = s.admissionRepo.CountAdmissionsByStatus(models.AdmissionAdmitted)
		return err
	})
	g.Go(func() (err error) {
		dischargedToday, err = s.admissionRepo.CountDischargedBetween(dayStart, dayEnd)
		return err
	})
	g.Go(func() (err error) {
		typeCounts, err = s.admissionRepo.CountAdmissionsByType()
		return err
	})
	g.Go(func() (err error) {
		wardCounts, err = s.admissionRepo.CountAdmittedByWard()
		return err
	})
	g.Go(func() (err error) {
		stays, err = s.admissionRepo.ListStayWindows()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &AdmissionStats{
		TotalAdmissions:     total,
		CurrentlyAdmitted:   admitted,
		DischargedToday:     dischargedToday,
		ByType:              make(map[string]int64, len(typeCounts)),
		ByWard:              make(map[string]int64, len(wardCounts)),
		AverageStayDuration: averageStayDays(stays),
	}
	for _, tc := range typeCounts {
		stats.ByType[tc.AdmissionType] = tc.Count
	}
	for _, wc := range wardCounts {
		stats.ByWard[wc.WardName] = wc.Count
	}

	return stats, nil
}

// averageStayDays computes the mean discharged-stay length in days,
// rounded to two decimals. Zero discharged stays averages to 0.
func averageStayDays(stays []models.StayWindow) float64 {
	if len(stays) == 0 {
		return 0
	}

	var totalMillis int64
	for _, stay := range stays {
		totalMillis += stay.DischargedAt.Sub(stay.AdmittedAt).Milliseconds()
	}

	avgDays := float64(totalMillis) / float64(len(stays)) / float64(millisPerDay)
	return math.Round(avgDays*100) / 100
}
