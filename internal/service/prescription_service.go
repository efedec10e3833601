package service

import (
	"errors"
	"fmt"
	"strings"

	"hospital-backend/internal/models"
)

// Safety warning types
const (
	WarningInteraction = "interaction"
	WarningAllergy     = "allergy"
)

// SafetyWarning is one advisory produced by the prescription safety check.
// Warnings never block prescription creation; the prescriber decides.
type SafetyWarning struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// PrescriptionStore is the slice of the prescription repository the
// service needs
type PrescriptionStore interface {
	CreatePrescription(prescription *models.Prescription) error
	GetPrescriptionByID(id uint) (*models.Prescription, error)
	ListPrescriptionsByPatientID(patientID uint, offset, limit int) ([]models.Prescription, int64, error)
}

// MedicineReader resolves prescribed medicines and known interactions
type MedicineReader interface {
	GetMedicinesByIDs(ids []uint) ([]models.Medicine, error)
	FindInteractions(genericNames []string) ([]models.DrugInteraction, error)
}

// PatientReader fetches patient records for allergy cross-referencing
type PatientReader interface {
	GetPatientByID(id uint) (*models.Patient, error)
}

// PrescriptionItemRequest is one requested medicine line
type PrescriptionItemRequest struct {
	MedicineID   uint   `json:"medicine_id" binding:"required"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	DurationDays int    `json:"duration_days"`
}

// PrescriptionRequest carries the inputs for creating a prescription
type PrescriptionRequest struct {
	PatientID uint                      `json:"patient_id" binding:"required"`
	Items     []PrescriptionItemRequest `json:"items" binding:"required,min=1"`
	Notes     string                    `json:"notes"`
}

// PrescriptionResult pairs the saved prescription with its safety warnings
type PrescriptionResult struct {
	Prescription *models.Prescription `json:"prescription"`
	Warnings     []SafetyWarning      `json:"warnings"`
}

type PrescriptionService struct {
	prescriptionRepo PrescriptionStore
	medicineRepo     MedicineReader
	patientRepo      PatientReader
	auditRepo        AuditWriter
}

func NewPrescriptionService(prescriptionRepo PrescriptionStore, medicineRepo MedicineReader, patientRepo PatientReader, auditRepo AuditWriter) *PrescriptionService {
	return &PrescriptionService{
		prescriptionRepo: prescriptionRepo,
		medicineRepo:     medicineRepo,
		patientRepo:      patientRepo,
		auditRepo:        auditRepo,
	}
}

// CreatePrescription saves a prescription after running the safety check.
// Warnings are returned alongside the saved record, never as a rejection.
func (s *PrescriptionService) CreatePrescription(req *PrescriptionRequest, doctorID uint) (*PrescriptionResult, error) {
	patient, err := s.patientRepo.GetPatientByID(req.PatientID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.MedicineID)
	}

	medicines, err := s.medicineRepo.GetMedicinesByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(medicines) != len(ids) {
		return nil, errors.New("one or more medicines not found")
	}

	warnings, err := s.SafetyCheck(patient, medicines)
	if err != nil {
		return nil, err
	}

	prescription := &models.Prescription{
		PatientID: req.PatientID,
		DoctorID:  doctorID,
		Notes:     req.Notes,
	}
	for _, item := range req.Items {
		prescription.Items = append(prescription.Items, models.PrescriptionItem{
			MedicineID:   item.MedicineID,
			Dosage:       item.Dosage,
			Frequency:    item.Frequency,
			DurationDays: item.DurationDays,
		})
	}

	if err := s.prescriptionRepo.CreatePrescription(prescription); err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&doctorID, "prescription_created",
		fmt.Sprintf("Prescription %d created for patient %d with %d warning(s)",
			prescription.ID, req.PatientID, len(warnings)))

	return &PrescriptionResult{Prescription: prescription, Warnings: warnings}, nil
}

// SafetyCheck cross-references the prescribed medicines against the known
// drug-interaction table and the patient's recorded allergies
func (s *PrescriptionService) SafetyCheck(patient *models.Patient, medicines []models.Medicine) ([]SafetyWarning, error) {
	warnings := []SafetyWarning{}

	names := make([]string, 0, len(medicines))
	for _, m := range medicines {
		names = append(names, interactionKey(m))
	}

	if len(names) > 1 {
		interactions, err := s.medicineRepo.FindInteractions(names)
		if err != nil {
			return nil, fmt.Errorf("failed to look up drug interactions: %w", err)
		}
		for _, interaction := range interactions {
			warnings = append(warnings, SafetyWarning{
				Type:     WarningInteraction,
				Severity: interaction.Severity,
				Message: fmt.Sprintf("%s interacts with %s: %s",
					interaction.DrugA, interaction.DrugB, interaction.Description),
			})
		}
	}

	for _, allergy := range splitAllergies(patient.Allergies) {
		for _, m := range medicines {
			if strings.Contains(strings.ToLower(m.Name), allergy) ||
				strings.Contains(strings.ToLower(m.GenericName), allergy) {
				warnings = append(warnings, SafetyWarning{
					Type:     WarningAllergy,
					Severity: "severe",
					Message:  fmt.Sprintf("Patient has a recorded allergy matching %s", m.Name),
				})
			}
		}
	}

	return warnings, nil
}

// GetPrescription retrieves a prescription with its items
func (s *PrescriptionService) GetPrescription(id uint) (*models.Prescription, error) {
	return s.prescriptionRepo.GetPrescriptionByID(id)
}

// ListPrescriptionsByPatient retrieves a patient's prescriptions
func (s *PrescriptionService) ListPrescriptionsByPatient(patientID uint, offset, limit int) ([]models.Prescription, int64, error) {
	return s.prescriptionRepo.ListPrescriptionsByPatientID(patientID, offset, limit)
}

// interactionKey selects the name used for interaction matching, preferring
// the generic name
func interactionKey(m models.Medicine) string {
	if m.GenericName != "" {
		return strings.ToLower(m.GenericName)
	}
	return strings.ToLower(m.Name)
}

func splitAllergies(allergies string) []string {
	if allergies == "" {
		return nil
	}

	out := []string{}
	for _, a := range strings.Split(allergies, ",") {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}
