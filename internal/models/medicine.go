package models

import "time"

// Medicine represents one inventory item in the pharmacy
type Medicine struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:255;not null;index" json:"name"`
	GenericName  string     `gorm:"size:255;index" json:"generic_name"`
	UnitPrice    float64    `gorm:"type:decimal(10,2);default:0" json:"unit_price"`
	Stock        int        `gorm:"default:0" json:"stock"`
	ReorderLevel int        `gorm:"default:10" json:"reorder_level"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	CreatedAt    time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
}

// TableName specifies the table name for Medicine model
func (Medicine) TableName() string {
	return "medicines"
}

// DrugInteraction records a known interaction between two drugs,
// keyed by generic name in both directions
type DrugInteraction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DrugA       string    `gorm:"size:255;not null;index" json:"drug_a"`
	DrugB       string    `gorm:"size:255;not null;index" json:"drug_b"`
	Severity    string    `gorm:"type:enum('mild','moderate','severe');default:'moderate'" json:"severity"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName specifies the table name for DrugInteraction model
func (DrugInteraction) TableName() string {
	return "drug_interactions"
}
