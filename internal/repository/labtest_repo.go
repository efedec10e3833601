package repository

import (
	"errors"

	"hospital-backend/internal/models"

	"gorm.io/gorm"
)

// ErrLabTestNotFound is returned when no matching lab test row exists
var ErrLabTestNotFound = errors.New("lab test not found")

type LabTestRepository struct {
	db *gorm.DB
}

func NewLabTestRepo(db *gorm.DB) *LabTestRepository {
	return &LabTestRepository{db: db}
}

// CreateLabTest records a newly ordered lab test
func (r *LabTestRepository) CreateLabTest(test *models.LabTest) error {
	return r.db.Create(test).Error
}

// GetLabTestByID retrieves a lab test by ID
func (r *LabTestRepository) GetLabTestByID(id uint) (*models.LabTest, error) {
	var test models.LabTest
	err := r.db.Preload("Patient").Preload("Doctor").First(&test, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLabTestNotFound
		}
		return nil, err
	}
	return &test, nil
}

// UpdateLabTest updates an existing lab test
func (r *LabTestRepository) UpdateLabTest(test *models.LabTest) error {
	return r.db.Save(test).Error
}

// ListLabTestsByPatientID retrieves lab tests for a patient, newest first,
// with pagination
func (r *LabTestRepository) ListLabTestsByPatientID(patientID uint, status string, offset, limit int) ([]models.LabTest, int64, error) {
	query := r.db.Model(&models.LabTest{}).Where("patient_id = ?", patientID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tests []models.LabTest
	err := query.Preload("Doctor").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&tests).Error
	return tests, total, err
}
