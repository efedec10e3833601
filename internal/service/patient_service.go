package service

import (
	"errors"
	"fmt"
	"strings"

	"hospital-backend/internal/models"
	"hospital-backend/internal/repository"

	"github.com/google/uuid"
)

type PatientService struct {
	patientRepo *repository.PatientRepository
	auditRepo   *repository.AuditRepository
}

func NewPatientService(patientRepo *repository.PatientRepository, auditRepo *repository.AuditRepository) *PatientService {
	return &PatientService{
		patientRepo: patientRepo,
		auditRepo:   auditRepo,
	}
}

// SearchPatients retrieves patients matching an optional name/MRN term
func (s *PatientService) SearchPatients(term string, offset, limit int) ([]models.Patient, int64, error) {
	return s.patientRepo.SearchPatients(term, offset, limit)
}

// GetPatient retrieves a single patient
func (s *PatientService) GetPatient(id uint) (*models.Patient, error) {
	return s.patientRepo.GetPatientByID(id)
}

// CreatePatient registers a new patient, generating an MRN when absent
func (s *PatientService) CreatePatient(patient *models.Patient, actorID uint) error {
	if patient.FirstName == "" || patient.LastName == "" {
		return errors.New("first and last name are required")
	}

	if patient.MRN == "" {
		patient.MRN = newMRN()
	} else if existing, err := s.patientRepo.GetPatientByMRN(patient.MRN); err == nil && existing != nil {
		return errors.New("a patient with this MRN already exists")
	}

	patient.IsActive = true
	if err := s.patientRepo.CreatePatient(patient); err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "patient_created",
		fmt.Sprintf("Patient %s registered", patient.MRN))

	return nil
}

// UpdatePatient updates an existing patient record
func (s *PatientService) UpdatePatient(patient *models.Patient, actorID uint) error {
	existing, err := s.patientRepo.GetPatientByID(patient.ID)
	if err != nil {
		return err
	}

	// MRN is immutable once assigned
	patient.MRN = existing.MRN
	patient.IsActive = true

	if err := s.patientRepo.UpdatePatient(patient); err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "patient_updated",
		fmt.Sprintf("Patient %s updated", patient.MRN))

	return nil
}

// DeletePatient soft deletes a patient record
func (s *PatientService) DeletePatient(id uint, actorID uint) error {
	patient, err := s.patientRepo.GetPatientByID(id)
	if err != nil {
		return err
	}

	if err := s.patientRepo.SoftDeletePatient(id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "patient_deleted",
		fmt.Sprintf("Patient %s deactivated", patient.MRN))

	return nil
}

func newMRN() string {
	return "MRN-" + strings.ToUpper(uuid.New().String()[:8])
}
