package models

import "time"

// Admission statuses
const (
	AdmissionAdmitted   = "admitted"
	AdmissionDischarged = "discharged"
)

// Admission types
const (
	AdmissionTypeEmergency = "emergency"
	AdmissionTypePlanned   = "planned"
	AdmissionTypeTransfer  = "transfer"
)

// Admission represents one inpatient stay, from admission to discharge.
// Rows are never hard-deleted; discharge flips the status and sets
// DischargedAt, which must not precede AdmittedAt.
type Admission struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	PatientID     uint       `gorm:"not null;index" json:"patient_id"`
	WardID        uint       `gorm:"not null;index" json:"ward_id"`
	BedID         uint       `gorm:"not null;index" json:"bed_id"`
	DoctorID      uint       `gorm:"not null;index" json:"doctor_id"`
	AdmissionType string     `gorm:"type:enum('emergency','planned','transfer');default:'planned'" json:"admission_type"`
	Status        string     `gorm:"type:enum('admitted','discharged');default:'admitted';index" json:"status"`
	AdmittedAt    time.Time  `gorm:"not null" json:"admitted_at"`
	DischargedAt  *time.Time `json:"discharged_at,omitempty"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Ward    Ward    `gorm:"foreignKey:WardID" json:"ward,omitempty"`
	Bed     Bed     `gorm:"foreignKey:BedID" json:"bed,omitempty"`
	Doctor  User    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// TableName specifies the table name for Admission model
func (Admission) TableName() string {
	return "admissions"
}

// StayWindow is a scan target for discharged stays, used by the
// statistics aggregation
type StayWindow struct {
	AdmittedAt   time.Time `json:"admitted_at"`
	DischargedAt time.Time `json:"discharged_at"`
}

// TypeCount is a scan target for GROUP BY admission_type counts
type TypeCount struct {
	AdmissionType string `json:"admission_type"`
	Count         int64  `json:"count"`
}

// WardCount is a scan target for per-ward occupancy counts
type WardCount struct {
	WardName string `json:"ward_name"`
	Count    int64  `json:"count"`
}
