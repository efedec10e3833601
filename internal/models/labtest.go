package models

import "time"

// Lab test statuses
const (
	LabTestOrdered    = "ordered"
	LabTestInProgress = "in_progress"
	LabTestCompleted  = "completed"
)

// LabTest represents one ordered laboratory investigation
type LabTest struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	PatientID      uint       `gorm:"not null;index" json:"patient_id"`
	DoctorID       uint       `gorm:"not null;index" json:"doctor_id"`
	TestName       string     `gorm:"size:255;not null" json:"test_name"`
	Status         string     `gorm:"type:enum('ordered','in_progress','completed');default:'ordered'" json:"status"`
	Result         string     `gorm:"type:text" json:"result,omitempty"`
	ReferenceRange string     `gorm:"size:255" json:"reference_range,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// TableName specifies the table name for LabTest model
func (LabTest) TableName() string {
	return "lab_tests"
}
