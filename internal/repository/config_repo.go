package repository

import (
	"errors"

	"hospital-backend/internal/models"

	"gorm.io/gorm"
)

type ConfigRepository struct {
	db *gorm.DB
}

func NewConfigRepo(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// GetConfig retrieves the singleton hospital configuration row. Returns
// (nil, nil) when no row exists yet; the absence of configuration is not
// an error for callers with built-in defaults.
func (r *ConfigRepository) GetConfig() (*models.HospitalConfig, error) {
	var config models.HospitalConfig
	err := r.db.Order("id ASC").First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

// SaveConfig inserts or replaces the singleton configuration row
func (r *ConfigRepository) SaveConfig(config *models.HospitalConfig) error {
	return r.db.Save(config).Error
}

// GetWardTariffDefaults extracts the ward-category-to-rate map from the
// settings blob. Returns nil when no configuration or no tariff map is
// set, leaving fallback to the caller.
func (r *ConfigRepository) GetWardTariffDefaults() (map[string]float64, error) {
	config, err := r.GetConfig()
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, nil
	}

	settings, err := config.DecodeSettings()
	if err != nil {
		return nil, err
	}
	return settings.WardTariffs, nil
}
