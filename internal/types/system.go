package types

import "time"

// System is a registered subsystem of the suite, keyed by a 10-character code.
type System struct {
	Code      string    `gorm:"type:char(10);primaryKey;column:code" json:"code"`
	Name      string    `gorm:"size:80;not null;column:name" json:"name"`
	Active    bool      `gorm:"not null;default:true;column:active" json:"active"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at" json:"updated_at"`
	CreatedBy string    `gorm:"size:40;column:created_by" json:"created_by,omitempty"`
	UpdatedBy string    `gorm:"size:40;column:updated_by" json:"updated_by,omitempty"`
}

func (System) TableName() string { return "system" }
