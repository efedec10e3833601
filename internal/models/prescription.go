package models

import "time"

// Prescription represents a set of medicines prescribed during a visit
type Prescription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PatientID uint      `gorm:"not null;index" json:"patient_id"`
	DoctorID  uint      `gorm:"not null;index" json:"doctor_id"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relationships
	Patient Patient            `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User               `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Items   []PrescriptionItem `gorm:"foreignKey:PrescriptionID" json:"items,omitempty"`
}

// TableName specifies the table name for Prescription model
func (Prescription) TableName() string {
	return "prescriptions"
}

// PrescriptionItem is one medicine line on a prescription
type PrescriptionItem struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	PrescriptionID uint   `gorm:"not null;index" json:"prescription_id"`
	MedicineID     uint   `gorm:"not null;index" json:"medicine_id"`
	Dosage         string `gorm:"size:100" json:"dosage"`
	Frequency      string `gorm:"size:100" json:"frequency"`
	DurationDays   int    `gorm:"default:0" json:"duration_days"`

	Medicine Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
}

// TableName specifies the table name for PrescriptionItem model
func (PrescriptionItem) TableName() string {
	return "prescription_items"
}
