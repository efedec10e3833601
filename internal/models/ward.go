package models

import "time"

// Ward categories used for tariff resolution
const (
	WardGeneral     = "GENERAL"
	WardSemiPrivate = "SEMI_PRIVATE"
	WardPrivate     = "PRIVATE"
	WardICU         = "ICU"
)

// Ward represents a physical care unit within the hospital
type Ward struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Category  string    `gorm:"type:enum('GENERAL','SEMI_PRIVATE','PRIVATE','ICU');default:'GENERAL'" json:"category"`
	Capacity  int       `gorm:"default:0" json:"capacity"`
	DailyRate *float64  `gorm:"type:decimal(10,2);comment:explicit per-ward tariff override" json:"daily_rate,omitempty"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
}

// TableName specifies the table name for Ward model
func (Ward) TableName() string {
	return "wards"
}

// Bed represents a single bed inside a ward
type Bed struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	WardID    uint      `gorm:"not null;index" json:"ward_id"`
	BedNumber string    `gorm:"size:20;not null" json:"bed_number"`
	Occupied  bool      `gorm:"default:false" json:"occupied"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`

	Ward Ward `gorm:"foreignKey:WardID" json:"ward,omitempty"`
}

// TableName specifies the table name for Bed model
func (Bed) TableName() string {
	return "beds"
}
