package models

import "time"

// Patient represents a registered patient record
type Patient struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	MRN         string     `gorm:"size:50;uniqueIndex;not null" json:"mrn"`
	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	LastName    string     `gorm:"size:100;not null" json:"last_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      string     `gorm:"type:enum('male','female','other');default:'other'" json:"gender"`
	Phone       string     `gorm:"size:30" json:"phone,omitempty"`
	Address     string     `gorm:"type:text" json:"address,omitempty"`
	BloodGroup  string     `gorm:"size:5" json:"blood_group,omitempty"`
	Allergies   string     `gorm:"type:text;comment:comma-separated allergy list" json:"allergies,omitempty"`
	CreatedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
}

// TableName specifies the table name for Patient model
func (Patient) TableName() string {
	return "patients"
}
