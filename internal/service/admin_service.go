package service

import (
	"encoding/json"
	"fmt"

	"hospital-backend/internal/models"
	"hospital-backend/internal/repository"
)

// AdminService covers hospital-wide configuration and audit log access
type AdminService struct {
	configRepo *repository.ConfigRepository
	auditRepo  *repository.AuditRepository
}

func NewAdminService(configRepo *repository.ConfigRepository, auditRepo *repository.AuditRepository) *AdminService {
	return &AdminService{
		configRepo: configRepo,
		auditRepo:  auditRepo,
	}
}

// GetSettings retrieves the decoded hospital settings; a missing config
// row yields the zero settings value
func (s *AdminService) GetSettings() (models.HospitalSettings, error) {
	config, err := s.configRepo.GetConfig()
	if err != nil {
		return models.HospitalSettings{}, err
	}
	if config == nil {
		return models.HospitalSettings{}, nil
	}
	return config.DecodeSettings()
}

// UpdateSettings replaces the hospital settings blob
func (s *AdminService) UpdateSettings(settings models.HospitalSettings, actorID uint) error {
	blob, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	config, err := s.configRepo.GetConfig()
	if err != nil {
		return err
	}
	if config == nil {
		config = &models.HospitalConfig{}
	}
	config.Settings = string(blob)

	if err := s.configRepo.SaveConfig(config); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "settings_updated", "Hospital settings updated")

	return nil
}

// ListAuditLogs retrieves audit logs, newest first
func (s *AdminService) ListAuditLogs(offset, limit int) ([]models.AuditLog, int64, error) {
	return s.auditRepo.ListAuditLogs(offset, limit)
}
