package repository

import (
	"errors"

	"hospital-backend/internal/models"

	"gorm.io/gorm"
)

// ErrMedicineNotFound is returned when no matching medicine row exists
var ErrMedicineNotFound = errors.New("medicine not found")

// ErrInsufficientStock is returned when a stock adjustment would go negative
var ErrInsufficientStock = errors.New("insufficient stock")

type MedicineRepository struct {
	db *gorm.DB
}

func NewMedicineRepo(db *gorm.DB) *MedicineRepository {
	return &MedicineRepository{db: db}
}

// SearchMedicines retrieves active medicines, optionally filtered by name,
// with pagination
func (r *MedicineRepository) SearchMedicines(term string, offset, limit int) ([]models.Medicine, int64, error) {
	query := r.db.Model(&models.Medicine{}).Where("is_active = ?", true)
	if term != "" {
		like := "%" + term + "%"
		query = query.Where("name LIKE ? OR generic_name LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var medicines []models.Medicine
	err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&medicines).Error
	return medicines, total, err
}

// GetMedicineByID retrieves an active medicine by ID
func (r *MedicineRepository) GetMedicineByID(id uint) (*models.Medicine, error) {
	var medicine models.Medicine
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&medicine).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMedicineNotFound
		}
		return nil, err
	}
	return &medicine, nil
}

// GetMedicinesByIDs retrieves active medicines matching the given IDs
func (r *MedicineRepository) GetMedicinesByIDs(ids []uint) ([]models.Medicine, error) {
	var medicines []models.Medicine
	err := r.db.Where("id IN ? AND is_active = ?", ids, true).Find(&medicines).Error
	return medicines, err
}

// CreateMedicine creates a new medicine
func (r *MedicineRepository) CreateMedicine(medicine *models.Medicine) error {
	return r.db.Create(medicine).Error
}

// UpdateMedicine updates an existing medicine
func (r *MedicineRepository) UpdateMedicine(medicine *models.Medicine) error {
	return r.db.Save(medicine).Error
}

// SoftDeleteMedicine soft deletes a medicine by setting is_active to false
func (r *MedicineRepository) SoftDeleteMedicine(id uint) error {
	return r.db.Model(&models.Medicine{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// AdjustStock changes stock by delta atomically, refusing adjustments
// that would take stock below zero
func (r *MedicineRepository) AdjustStock(id uint, delta int) error {
	result := r.db.Model(&models.Medicine{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// GetLowStockMedicines retrieves active medicines at or below their reorder level
func (r *MedicineRepository) GetLowStockMedicines() ([]models.Medicine, error) {
	var medicines []models.Medicine
	err := r.db.Where("is_active = ? AND stock <= reorder_level", true).
		Order("stock ASC").
		Find(&medicines).Error
	return medicines, err
}

// FindInteractions retrieves known interactions among the given generic
// names, matching either direction of each recorded pair
func (r *MedicineRepository) FindInteractions(genericNames []string) ([]models.DrugInteraction, error) {
	var interactions []models.DrugInteraction
	err := r.db.Where("drug_a IN ? AND drug_b IN ?", genericNames, genericNames).
		Find(&interactions).Error
	return interactions, err
}
