package models

import (
	"encoding/json"
	"time"
)

// HospitalConfig is a singleton row holding hospital-wide settings as a
// nested JSON blob. The first row wins; writes replace the blob.
type HospitalConfig struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Settings  string    `gorm:"type:json" json:"-"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for HospitalConfig model
func (HospitalConfig) TableName() string {
	return "hospital_config"
}

// HospitalSettings is the decoded shape of the settings blob
type HospitalSettings struct {
	HospitalName string             `json:"hospital_name,omitempty"`
	WardTariffs  map[string]float64 `json:"ward_tariffs,omitempty"`
}

// DecodeSettings parses the settings blob. An empty blob decodes to the
// zero value rather than an error.
func (c *HospitalConfig) DecodeSettings() (HospitalSettings, error) {
	var settings HospitalSettings
	if c.Settings == "" {
		return settings, nil
	}
	err := json.Unmarshal([]byte(c.Settings), &settings)
	return settings, err
}
