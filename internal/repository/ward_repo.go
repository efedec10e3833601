package repository

import (
	"errors"

	"hospital-backend/internal/models"

	"gorm.io/gorm"
)

// ErrWardNotFound is returned when no matching ward row exists
var ErrWardNotFound = errors.New("ward not found")

// ErrBedNotFound is returned when no matching bed row exists
var ErrBedNotFound = errors.New("bed not found")

type WardRepository struct {
	db *gorm.DB
}

func NewWardRepo(db *gorm.DB) *WardRepository {
	return &WardRepository{db: db}
}

// GetAllWards retrieves all active wards
func (r *WardRepository) GetAllWards() ([]models.Ward, error) {
	var wards []models.Ward
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&wards).Error
	return wards, err
}

// GetWardByID retrieves an active ward by ID
func (r *WardRepository) GetWardByID(id uint) (*models.Ward, error) {
	var ward models.Ward
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&ward).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWardNotFound
		}
		return nil, err
	}
	return &ward, nil
}

// CreateWard creates a new ward
func (r *WardRepository) CreateWard(ward *models.Ward) error {
	return r.db.Create(ward).Error
}

// UpdateWard updates an existing ward
func (r *WardRepository) UpdateWard(ward *models.Ward) error {
	return r.db.Save(ward).Error
}

// SoftDeleteWard soft deletes a ward by setting is_active to false
func (r *WardRepository) SoftDeleteWard(id uint) error {
	return r.db.Model(&models.Ward{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// GetBedsByWardID retrieves all active beds in a ward
func (r *WardRepository) GetBedsByWardID(wardID uint) ([]models.Bed, error) {
	var beds []models.Bed
	err := r.db.Where("ward_id = ? AND is_active = ?", wardID, true).
		Order("bed_number ASC").
		Find(&beds).Error
	return beds, err
}

// GetAvailableBedsByWardID retrieves unoccupied active beds in a ward
func (r *WardRepository) GetAvailableBedsByWardID(wardID uint) ([]models.Bed, error) {
	var beds []models.Bed
	err := r.db.Where("ward_id = ? AND occupied = ? AND is_active = ?", wardID, false, true).
		Order("bed_number ASC").
		Find(&beds).Error
	return beds, err
}

// GetBedByID retrieves an active bed by ID
func (r *WardRepository) GetBedByID(id uint) (*models.Bed, error) {
	var bed models.Bed
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&bed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBedNotFound
		}
		return nil, err
	}
	return &bed, nil
}

// CreateBed creates a new bed in a ward
func (r *WardRepository) CreateBed(bed *models.Bed) error {
	return r.db.Create(bed).Error
}

// SetBedOccupied flips the occupied flag of a bed
func (r *WardRepository) SetBedOccupied(id uint, occupied bool) error {
	return r.db.Model(&models.Bed{}).
		Where("id = ?", id).
		Update("occupied", occupied).Error
}
