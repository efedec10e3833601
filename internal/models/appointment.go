package models

import "time"

// Appointment statuses
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

// Appointment represents an outpatient visit booking
type Appointment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PatientID   uint      `gorm:"not null;index" json:"patient_id"`
	DoctorID    uint      `gorm:"not null;index" json:"doctor_id"`
	ScheduledAt time.Time `gorm:"not null;index" json:"scheduled_at"`
	Reason      string    `gorm:"type:text" json:"reason,omitempty"`
	Status      string    `gorm:"type:enum('scheduled','completed','cancelled','no_show');default:'scheduled'" json:"status"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// Consultation records the clinical outcome of an appointment
type Consultation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AppointmentID uint      `gorm:"not null;uniqueIndex" json:"appointment_id"`
	Diagnosis     string    `gorm:"type:text" json:"diagnosis"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

// TableName specifies the table name for Consultation model
func (Consultation) TableName() string {
	return "consultations"
}
