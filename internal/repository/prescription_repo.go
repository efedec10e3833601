package repository

import (
	"errors"

	"hospital-backend/internal/models"

	"gorm.io/gorm"
)

// ErrPrescriptionNotFound is returned when no matching prescription row exists
var ErrPrescriptionNotFound = errors.New("prescription not found")

type PrescriptionRepository struct {
	db *gorm.DB
}

func NewPrescriptionRepo(db *gorm.DB) *PrescriptionRepository {
	return &PrescriptionRepository{db: db}
}

// CreatePrescription creates a prescription and its items in one transaction
func (r *PrescriptionRepository) CreatePrescription(prescription *models.Prescription) error {
	return r.db.Create(prescription).Error
}

// GetPrescriptionByID retrieves a prescription with items and medicines
func (r *PrescriptionRepository) GetPrescriptionByID(id uint) (*models.Prescription, error) {
	var prescription models.Prescription
	err := r.db.Preload("Items").Preload("Items.Medicine").
		Preload("Patient").Preload("Doctor").
		First(&prescription, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPrescriptionNotFound
		}
		return nil, err
	}
	return &prescription, nil
}

// ListPrescriptionsByPatientID retrieves prescriptions for a patient,
// newest first, with pagination
func (r *PrescriptionRepository) ListPrescriptionsByPatientID(patientID uint, offset, limit int) ([]models.Prescription, int64, error) {
	query := r.db.Model(&models.Prescription{}).Where("patient_id = ?", patientID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var prescriptions []models.Prescription
	err := query.Preload("Items").Preload("Items.Medicine").Preload("Doctor").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&prescriptions).Error
	return prescriptions, total, err
}
