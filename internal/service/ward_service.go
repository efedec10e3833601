package service

import (
	"errors"
	"fmt"

	"hospital-backend/internal/models"
	"hospital-backend/internal/repository"
)

type WardService struct {
	wardRepo  *repository.WardRepository
	auditRepo *repository.AuditRepository
}

func NewWardService(wardRepo *repository.WardRepository, auditRepo *repository.AuditRepository) *WardService {
	return &WardService{
		wardRepo:  wardRepo,
		auditRepo: auditRepo,
	}
}

// GetAllWards retrieves all active wards
func (s *WardService) GetAllWards() ([]models.Ward, error) {
	return s.wardRepo.GetAllWards()
}

// GetWard retrieves a single ward
func (s *WardService) GetWard(id uint) (*models.Ward, error) {
	return s.wardRepo.GetWardByID(id)
}

// CreateWard creates a new ward
func (s *WardService) CreateWard(ward *models.Ward, actorID uint) error {
	if ward.Name == "" {
		return errors.New("ward name is required")
	}
	if !validWardCategory(ward.Category) {
		return errors.New("invalid ward category")
	}

	ward.IsActive = true
	if err := s.wardRepo.CreateWard(ward); err != nil {
		return fmt.Errorf("failed to create ward: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "ward_created",
		fmt.Sprintf("Ward %s (%s) created", ward.Name, ward.Category))

	return nil
}

// UpdateWard updates an existing ward
func (s *WardService) UpdateWard(ward *models.Ward, actorID uint) error {
	if _, err := s.wardRepo.GetWardByID(ward.ID); err != nil {
		return err
	}
	if !validWardCategory(ward.Category) {
		return errors.New("invalid ward category")
	}

	ward.IsActive = true
	if err := s.wardRepo.UpdateWard(ward); err != nil {
		return fmt.Errorf("failed to update ward: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "ward_updated",
		fmt.Sprintf("Ward %s updated", ward.Name))

	return nil
}

// DeleteWard soft deletes a ward
func (s *WardService) DeleteWard(id uint, actorID uint) error {
	ward, err := s.wardRepo.GetWardByID(id)
	if err != nil {
		return err
	}

	if err := s.wardRepo.SoftDeleteWard(id); err != nil {
		return fmt.Errorf("failed to delete ward: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "ward_deleted",
		fmt.Sprintf("Ward %s deactivated", ward.Name))

	return nil
}

// GetBeds retrieves beds in a ward, optionally only unoccupied ones
func (s *WardService) GetBeds(wardID uint, availableOnly bool) ([]models.Bed, error) {
	if _, err := s.wardRepo.GetWardByID(wardID); err != nil {
		return nil, err
	}
	if availableOnly {
		return s.wardRepo.GetAvailableBedsByWardID(wardID)
	}
	return s.wardRepo.GetBedsByWardID(wardID)
}

// CreateBed adds a bed to a ward
func (s *WardService) CreateBed(bed *models.Bed, actorID uint) error {
	if bed.BedNumber == "" {
		return errors.New("bed number is required")
	}
	if _, err := s.wardRepo.GetWardByID(bed.WardID); err != nil {
		return err
	}

	bed.IsActive = true
	bed.Occupied = false
	if err := s.wardRepo.CreateBed(bed); err != nil {
		return fmt.Errorf("failed to create bed: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "bed_created",
		fmt.Sprintf("Bed %s added to ward %d", bed.BedNumber, bed.WardID))

	return nil
}

func validWardCategory(category string) bool {
	switch category {
	case models.WardGeneral, models.WardSemiPrivate, models.WardPrivate, models.WardICU:
		return true
	}
	return false
}
