package types

import "time"

// Municipality is keyed by the 7-digit IBGE code.
type Municipality struct {
	Code      string    `gorm:"type:char(7);primaryKey;column:code" json:"code"`
	Name      string    `gorm:"size:80;not null;column:name" json:"name"`
	State     string    `gorm:"type:char(2);not null;column:state" json:"state"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at" json:"updated_at"`
	CreatedBy string    `gorm:"size:40;column:created_by" json:"created_by,omitempty"`
	UpdatedBy string    `gorm:"size:40;column:updated_by" json:"updated_by,omitempty"`
}

func (Municipality) TableName() string { return "municipality" }
