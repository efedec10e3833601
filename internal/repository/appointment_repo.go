package repository

import (
	"errors"
	"time"

	"hospital-backend/internal/models"

	"gorm.io/gorm"
)

// ErrAppointmentNotFound is returned when no matching appointment row exists
var ErrAppointmentNotFound = errors.New("appointment not found")

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// ListAppointments retrieves appointments filtered by optional patient,
// doctor and status, newest first, with pagination
func (r *AppointmentRepository) ListAppointments(patientID, doctorID uint, status string, offset, limit int) ([]models.Appointment, int64, error) {
	query := r.db.Model(&models.Appointment{})
	if patientID != 0 {
		query = query.Where("patient_id = ?", patientID)
	}
	if doctorID != 0 {
		query = query.Where("doctor_id = ?", doctorID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []models.Appointment
	err := query.Preload("Patient").Preload("Doctor").
		Order("scheduled_at DESC").
		Offset(offset).Limit(limit).
		Find(&appointments).Error
	return appointments, total, err
}

// GetAppointmentByID retrieves an appointment by ID
func (r *AppointmentRepository) GetAppointmentByID(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.Preload("Patient").Preload("Doctor").First(&appointment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return &appointment, nil
}

// CreateAppointment creates a new appointment
func (r *AppointmentRepository) CreateAppointment(appointment *models.Appointment) error {
	return r.db.Create(appointment).Error
}

// UpdateAppointment updates an existing appointment
func (r *AppointmentRepository) UpdateAppointment(appointment *models.Appointment) error {
	return r.db.Save(appointment).Error
}

// CreateConsultation records the consultation for an appointment
func (r *AppointmentRepository) CreateConsultation(consultation *models.Consultation) error {
	return r.db.Create(consultation).Error
}

// GetConsultationByAppointmentID retrieves the consultation attached to an appointment
func (r *AppointmentRepository) GetConsultationByAppointmentID(appointmentID uint) (*models.Consultation, error) {
	var consultation models.Consultation
	err := r.db.Where("appointment_id = ?", appointmentID).First(&consultation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return &consultation, nil
}

// MarkStaleScheduledAsNoShow flips scheduled appointments older than the
// cutoff to no_show, returning the number of rows updated
func (r *AppointmentRepository) MarkStaleScheduledAsNoShow(cutoff time.Time) (int64, error) {
	result := r.db.Model(&models.Appointment{}).
		Where("status = ? AND scheduled_at < ?", models.AppointmentScheduled, cutoff).
		Update("status", models.AppointmentNoShow)
	return result.RowsAffected, result.Error
}
