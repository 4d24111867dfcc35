package types

import "time"

// CostCenter is keyed by a 9-character accounting code.
type CostCenter struct {
	Code        string    `gorm:"type:char(9);primaryKey;column:code" json:"code"`
	Description string    `gorm:"size:80;not null;column:description" json:"description"`
	Active      bool      `gorm:"not null;default:true;column:active" json:"active"`
	CreatedAt   time.Time `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;column:updated_at" json:"updated_at"`
	CreatedBy   string    `gorm:"size:40;column:created_by" json:"created_by,omitempty"`
	UpdatedBy   string    `gorm:"size:40;column:updated_by" json:"updated_by,omitempty"`
}

func (CostCenter) TableName() string { return "cost_center" }
