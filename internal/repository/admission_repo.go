package repository

import (
	"errors"
	"time"

	"hospital-backend/internal/models"

	"gorm.io/gorm"
)

// ErrAdmissionNotFound is returned when no matching admission row exists
var ErrAdmissionNotFound = errors.New("admission not found")

type AdmissionRepository struct {
	db *gorm.DB
}

func NewAdmissionRepo(db *gorm.DB) *AdmissionRepository {
	return &AdmissionRepository{db: db}
}

// ListAdmissions retrieves admissions filtered by optional status and
// ward, newest first, with pagination
func (r *AdmissionRepository) ListAdmissions(status string, wardID uint, offset, limit int) ([]models.Admission, int64, error) {
	query := r.db.Model(&models.Admission{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if wardID != 0 {
		query = query.Where("ward_id = ?", wardID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var admissions []models.Admission
	err := query.Preload("Patient").Preload("Ward").Preload("Bed").
		Order("admitted_at DESC").
		Offset(offset).Limit(limit).
		Find(&admissions).Error
	return admissions, total, err
}

// GetAdmissionByID retrieves an admission by ID
func (r *AdmissionRepository) GetAdmissionByID(id uint) (*models.Admission, error) {
	var admission models.Admission
	err := r.db.Preload("Patient").Preload("Ward").Preload("Bed").
		First(&admission, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdmissionNotFound
		}
		return nil, err
	}
	return &admission, nil
}

// GetAdmissionWithWard retrieves an admission with only its ward preloaded,
// which is all the charge computation needs
func (r *AdmissionRepository) GetAdmissionWithWard(id uint) (*models.Admission, error) {
	var admission models.Admission
	err := r.db.Preload("Ward").First(&admission, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdmissionNotFound
		}
		return nil, err
	}
	return &admission, nil
}

// GetActiveAdmissionByPatientID retrieves the currently-admitted stay for a patient
func (r *AdmissionRepository) GetActiveAdmissionByPatientID(patientID uint) (*models.Admission, error) {
	var admission models.Admission
	err := r.db.Where("patient_id = ? AND status = ?", patientID, models.AdmissionAdmitted).
		First(&admission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdmissionNotFound
		}
		return nil, err
	}
	return &admission, nil
}

// CreateAdmission creates a new admission
func (r *AdmissionRepository) CreateAdmission(admission *models.Admission) error {
	return r.db.Create(admission).Error
}

// UpdateAdmission updates an existing admission
func (r *AdmissionRepository) UpdateAdmission(admission *models.Admission) error {
	return r.db.Save(admission).Error
}

// CountAdmissions counts all admissions ever recorded
func (r *AdmissionRepository) CountAdmissions() (int64, error) {
	var count int64
	err := r.db.Model(&models.Admission{}).Count(&count).Error
	return count, err
}

// CountAdmissionsByStatus counts admissions with the given status
func (r *AdmissionRepository) CountAdmissionsByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Admission{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// CountDischargedBetween counts admissions discharged within [start, end)
func (r *AdmissionRepository) CountDischargedBetween(start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Admission{}).
		Where("status = ? AND discharged_at >= ? AND discharged_at < ?",
			models.AdmissionDischarged, start, end).
		Count(&count).Error
	return count, err
}

// CountAdmissionsByType counts admissions grouped by admission type
func (r *AdmissionRepository) CountAdmissionsByType() ([]models.TypeCount, error) {
	var counts []models.TypeCount
	err := r.db.Model(&models.Admission{}).
		Select("admission_type, COUNT(*) AS count").
		Group("admission_type").
		Scan(&counts).Error
	return counts, err
}

// CountAdmittedByWard counts currently-admitted stays grouped by ward name
func (r *AdmissionRepository) CountAdmittedByWard() ([]models.WardCount, error) {
	var counts []models.WardCount
	err := r.db.Model(&models.Admission{}).
		Select("wards.name AS ward_name, COUNT(*) AS count").
		Joins("INNER JOIN wards ON wards.id = admissions.ward_id").
		Where("admissions.status = ?", models.AdmissionAdmitted).
		Group("wards.name").
		Scan(&counts).Error
	return counts, err
}

// ListStayWindows retrieves (admitted_at, discharged_at) pairs for all
// discharged admissions
func (r *AdmissionRepository) ListStayWindows() ([]models.StayWindow, error) {
	var windows []models.StayWindow
	err := r.db.Model(&models.Admission{}).
		Select("admitted_at, discharged_at").
		Where("status = ? AND discharged_at IS NOT NULL", models.AdmissionDischarged).
		Scan(&windows).Error
	return windows, err
}
