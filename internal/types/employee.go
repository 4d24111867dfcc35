package types

import "time"

// Employee is keyed by the 6-digit payroll registration number. Bank, branch
// and union links make employees the dependent children that block parent
// deletes at the application layer.
type Employee struct {
	Registration string    `gorm:"type:char(6);primaryKey;column:registration" json:"registration"`
	Name         string    `gorm:"size:80;not null;column:name" json:"name"`
	BankCode     string    `gorm:"type:char(3);column:bank_code" json:"bank_code"`
	BranchCode   string    `gorm:"type:char(4);column:branch_code" json:"branch_code"`
	UnionCode    string    `gorm:"type:char(5);column:union_code" json:"union_code"`
	Active       bool      `gorm:"not null;default:true;column:active" json:"active"`
	CreatedAt    time.Time `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;column:updated_at" json:"updated_at"`
	CreatedBy    string    `gorm:"size:40;column:created_by" json:"created_by,omitempty"`
	UpdatedBy    string    `gorm:"size:40;column:updated_by" json:"updated_by,omitempty"`
}

func (Employee) TableName() string { return "employee" }
