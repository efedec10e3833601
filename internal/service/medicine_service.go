package service

import (
	"errors"
	"fmt"

	"hospital-backend/internal/models"
	"hospital-backend/internal/repository"
)

type MedicineService struct {
	medicineRepo *repository.MedicineRepository
	auditRepo    *repository.AuditRepository
}

func NewMedicineService(medicineRepo *repository.MedicineRepository, auditRepo *repository.AuditRepository) *MedicineService {
	return &MedicineService{
		medicineRepo: medicineRepo,
		auditRepo:    auditRepo,
	}
}

// SearchMedicines retrieves medicines matching an optional name term
func (s *MedicineService) SearchMedicines(term string, offset, limit int) ([]models.Medicine, int64, error) {
	return s.medicineRepo.SearchMedicines(term, offset, limit)
}

// GetMedicine retrieves a single medicine
func (s *MedicineService) GetMedicine(id uint) (*models.Medicine, error) {
	return s.medicineRepo.GetMedicineByID(id)
}

// CreateMedicine adds a new inventory item
func (s *MedicineService) CreateMedicine(medicine *models.Medicine, actorID uint) error {
	if medicine.Name == "" {
		return errors.New("medicine name is required")
	}

	medicine.IsActive = true
	if err := s.medicineRepo.CreateMedicine(medicine); err != nil {
		return fmt.Errorf("failed to create medicine: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "medicine_created",
		fmt.Sprintf("Medicine %s added to inventory", medicine.Name))

	return nil
}

// UpdateMedicine updates an existing medicine
func (s *MedicineService) UpdateMedicine(medicine *models.Medicine, actorID uint) error {
	if _, err := s.medicineRepo.GetMedicineByID(medicine.ID); err != nil {
		return err
	}

	medicine.IsActive = true
	if err := s.medicineRepo.UpdateMedicine(medicine); err != nil {
		return fmt.Errorf("failed to update medicine: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "medicine_updated",
		fmt.Sprintf("Medicine %s updated", medicine.Name))

	return nil
}

// DeleteMedicine soft deletes a medicine
func (s *MedicineService) DeleteMedicine(id uint, actorID uint) error {
	medicine, err := s.medicineRepo.GetMedicineByID(id)
	if err != nil {
		return err
	}

	if err := s.medicineRepo.SoftDeleteMedicine(id); err != nil {
		return fmt.Errorf("failed to delete medicine: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "medicine_deleted",
		fmt.Sprintf("Medicine %s deactivated", medicine.Name))

	return nil
}

// AdjustStock applies a positive (restock) or negative (dispense) stock delta
func (s *MedicineService) AdjustStock(id uint, delta int, actorID uint) (*models.Medicine, error) {
	if delta == 0 {
		return nil, errors.New("stock delta must be non-zero")
	}
	if _, err := s.medicineRepo.GetMedicineByID(id); err != nil {
		return nil, err
	}

	if err := s.medicineRepo.AdjustStock(id, delta); err != nil {
		return nil, err
	}

	medicine, err := s.medicineRepo.GetMedicineByID(id)
	if err != nil {
		return nil, err
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "stock_adjusted",
		fmt.Sprintf("Medicine %s stock adjusted by %d to %d", medicine.Name, delta, medicine.Stock))

	return medicine, nil
}

// GetLowStockMedicines retrieves medicines at or below their reorder level
func (s *MedicineService) GetLowStockMedicines() ([]models.Medicine, error) {
	return s.medicineRepo.GetLowStockMedicines()
}
