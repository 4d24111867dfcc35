package types

import "time"

// Bank is keyed by the 3-digit clearing code assigned by the central bank.
// The code is immutable once assigned.
type Bank struct {
	Code      string    `gorm:"type:char(3);primaryKey;column:code" json:"code"`
	Name      string    `gorm:"size:60;not null;column:name" json:"name"`
	Active    bool      `gorm:"not null;default:true;column:active" json:"active"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at" json:"updated_at"`
	CreatedBy string    `gorm:"size:40;column:created_by" json:"created_by,omitempty"`
	UpdatedBy string    `gorm:"size:40;column:updated_by" json:"updated_by,omitempty"`
}

func (Bank) TableName() string { return "bank" }

// BankBranch is keyed by (bank code, 4-digit branch code), mirroring the
// legacy composite-key convention.
type BankBranch struct {
	BankCode  string    `gorm:"type:char(3);primaryKey;column:bank_code" json:"bank_code"`
	Code      string    `gorm:"type:char(4);primaryKey;column:code" json:"code"`
	Name      string    `gorm:"size:60;not null;column:name" json:"name"`
	City      string    `gorm:"size:60;column:city" json:"city"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at" json:"updated_at"`
	CreatedBy string    `gorm:"size:40;column:created_by" json:"created_by,omitempty"`
	UpdatedBy string    `gorm:"size:40;column:updated_by" json:"updated_by,omitempty"`
}

func (BankBranch) TableName() string { return "bank_branch" }
