package repository

import (
	"errors"

	"hospital-backend/internal/models"

	"gorm.io/gorm"
)

// ErrPatientNotFound is returned when no matching patient row exists
var ErrPatientNotFound = errors.New("patient not found")

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepo(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// SearchPatients retrieves active patients, optionally filtered by a
// name/MRN search term, with pagination
func (r *PatientRepository) SearchPatients(term string, offset, limit int) ([]models.Patient, int64, error) {
	query := r.db.Model(&models.Patient{}).Where("is_active = ?", true)
	if term != "" {
		like := "%" + term + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR mrn LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var patients []models.Patient
	err := query.Order("last_name ASC, first_name ASC").
		Offset(offset).Limit(limit).
		Find(&patients).Error
	return patients, total, err
}

// GetPatientByID retrieves an active patient by ID
func (r *PatientRepository) GetPatientByID(id uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return &patient, nil
}

// GetPatientByMRN retrieves an active patient by medical record number
func (r *PatientRepository) GetPatientByMRN(mrn string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.Where("mrn = ? AND is_active = ?", mrn, true).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return &patient, nil
}

// CreatePatient creates a new patient record
func (r *PatientRepository) CreatePatient(patient *models.Patient) error {
	return r.db.Create(patient).Error
}

// UpdatePatient updates an existing patient record
func (r *PatientRepository) UpdatePatient(patient *models.Patient) error {
	return r.db.Save(patient).Error
}

// SoftDeletePatient soft deletes a patient by setting is_active to false
func (r *PatientRepository) SoftDeletePatient(id uint) error {
	return r.db.Model(&models.Patient{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
