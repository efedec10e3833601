package service

import (
	"errors"
	"fmt"
	"time"

	"hospital-backend/internal/models"
	"hospital-backend/internal/repository"
)

type LabTestService struct {
	labTestRepo *repository.LabTestRepository
	patientRepo *repository.PatientRepository
	auditRepo   *repository.AuditRepository
}

func NewLabTestService(labTestRepo *repository.LabTestRepository, patientRepo *repository.PatientRepository, auditRepo *repository.AuditRepository) *LabTestService {
	return &LabTestService{
		labTestRepo: labTestRepo,
		patientRepo: patientRepo,
		auditRepo:   auditRepo,
	}
}

// OrderLabTest records a newly ordered investigation
func (s *LabTestService) OrderLabTest(test *models.LabTest, doctorID uint) error {
	if test.TestName == "" {
		return errors.New("test name is required")
	}
	if _, err := s.patientRepo.GetPatientByID(test.PatientID); err != nil {
		return err
	}

	test.DoctorID = doctorID
	test.Status = models.LabTestOrdered
	if err := s.labTestRepo.CreateLabTest(test); err != nil {
		return fmt.Errorf("failed to create lab test: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&doctorID, "lab_test_ordered",
		fmt.Sprintf("Lab test %s ordered for patient %d", test.TestName, test.PatientID))

	return nil
}

// GetLabTest retrieves a single lab test
func (s *LabTestService) GetLabTest(id uint) (*models.LabTest, error) {
	return s.labTestRepo.GetLabTestByID(id)
}

// EnterResult records the result and completes the test
func (s *LabTestService) EnterResult(id uint, result, referenceRange string, actorID uint) (*models.LabTest, error) {
	if result == "" {
		return nil, errors.New("result is required")
	}

	test, err := s.labTestRepo.GetLabTestByID(id)
	if err != nil {
		return nil, err
	}
	if test.Status == models.LabTestCompleted {
		return nil, errors.New("lab test is already completed")
	}

	completedAt := time.Now()
	test.Result = result
	if referenceRange != "" {
		test.ReferenceRange = referenceRange
	}
	test.Status = models.LabTestCompleted
	test.CompletedAt = &completedAt

	if err := s.labTestRepo.UpdateLabTest(test); err != nil {
		return nil, fmt.Errorf("failed to update lab test: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "lab_result_entered",
		fmt.Sprintf("Result entered for lab test %d", id))

	return test, nil
}

// ListLabTestsByPatient retrieves a patient's lab tests
func (s *LabTestService) ListLabTestsByPatient(patientID uint, status string, offset, limit int) ([]models.LabTest, int64, error) {
	return s.labTestRepo.ListLabTestsByPatientID(patientID, status, offset, limit)
}
