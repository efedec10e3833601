package repository

import (
	"hospital-backend/internal/models"

	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateAuditLog creates a new audit log entry
func (r *AuditRepository) CreateAuditLog(userID *uint, action string, details string) error {
	log := &models.AuditLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	}
	return r.db.Create(log).Error
}

// ListAuditLogs retrieves audit logs, newest first, with pagination
func (r *AuditRepository) ListAuditLogs(offset, limit int) ([]models.AuditLog, int64, error) {
	var total int64
	if err := r.db.Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	err := r.db.Preload("User").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&logs).Error
	return logs, total, err
}
