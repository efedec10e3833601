package service

import (
	"errors"
	"fmt"
	"time"

	"hospital-backend/internal/models"
	"hospital-backend/internal/repository"
)

type AppointmentService struct {
	appointmentRepo *repository.AppointmentRepository
	patientRepo     *repository.PatientRepository
	userRepo        *repository.UserRepository
	auditRepo       *repository.AuditRepository
}

func NewAppointmentService(appointmentRepo *repository.AppointmentRepository, patientRepo *repository.PatientRepository, userRepo *repository.UserRepository, auditRepo *repository.AuditRepository) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		userRepo:        userRepo,
		auditRepo:       auditRepo,
	}
}

// ListAppointments retrieves appointments with optional filters
func (s *AppointmentService) ListAppointments(patientID, doctorID uint, status string, offset, limit int) ([]models.Appointment, int64, error) {
	return s.appointmentRepo.ListAppointments(patientID, doctorID, status, offset, limit)
}

// GetAppointment retrieves a single appointment
func (s *AppointmentService) GetAppointment(id uint) (*models.Appointment, error) {
	return s.appointmentRepo.GetAppointmentByID(id)
}

// CreateAppointment books an appointment after validating patient and doctor
func (s *AppointmentService) CreateAppointment(appointment *models.Appointment, actorID uint) error {
	if _, err := s.patientRepo.GetPatientByID(appointment.PatientID); err != nil {
		return err
	}

	doctor, err := s.userRepo.FindUserByID(appointment.DoctorID)
	if err != nil {
		return err
	}
	if doctor.Role != models.RoleDoctor {
		return errors.New("appointments can only be booked with a doctor")
	}

	if appointment.ScheduledAt.IsZero() {
		return errors.New("scheduled time is required")
	}

	appointment.Status = models.AppointmentScheduled
	if err := s.appointmentRepo.CreateAppointment(appointment); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "appointment_created",
		fmt.Sprintf("Appointment %d booked for patient %d", appointment.ID, appointment.PatientID))

	return nil
}

// CancelAppointment cancels a scheduled appointment
func (s *AppointmentService) CancelAppointment(id uint, actorID uint) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetAppointmentByID(id)
	if err != nil {
		return nil, err
	}
	if appointment.Status != models.AppointmentScheduled {
		return nil, fmt.Errorf("cannot cancel a %s appointment", appointment.Status)
	}

	appointment.Status = models.AppointmentCancelled
	if err := s.appointmentRepo.UpdateAppointment(appointment); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "appointment_cancelled",
		fmt.Sprintf("Appointment %d cancelled", id))

	return appointment, nil
}

// RecordConsultation stores the clinical outcome and completes the appointment
func (s *AppointmentService) RecordConsultation(appointmentID uint, diagnosis, notes string, doctorID uint) (*models.Consultation, error) {
	appointment, err := s.appointmentRepo.GetAppointmentByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.Status != models.AppointmentScheduled {
		return nil, fmt.Errorf("cannot record a consultation for a %s appointment", appointment.Status)
	}
	if appointment.DoctorID != doctorID {
		return nil, errors.New("only the assigned doctor can record the consultation")
	}

	consultation := &models.Consultation{
		AppointmentID: appointmentID,
		Diagnosis:     diagnosis,
		Notes:         notes,
	}
	if err := s.appointmentRepo.CreateConsultation(consultation); err != nil {
		return nil, fmt.Errorf("failed to create consultation: %w", err)
	}

	appointment.Status = models.AppointmentCompleted
	if err := s.appointmentRepo.UpdateAppointment(appointment); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&doctorID, "consultation_recorded",
		fmt.Sprintf("Consultation recorded for appointment %d", appointmentID))

	return consultation, nil
}

// GetConsultation retrieves the consultation for an appointment
func (s *AppointmentService) GetConsultation(appointmentID uint) (*models.Consultation, error) {
	return s.appointmentRepo.GetConsultationByAppointmentID(appointmentID)
}

// MarkStaleAsNoShow is called by the background sweeper to flip scheduled
// appointments past the grace window to no_show
func (s *AppointmentService) MarkStaleAsNoShow(cutoff time.Time) (int64, error) {
	return s.appointmentRepo.MarkStaleScheduledAsNoShow(cutoff)
}
