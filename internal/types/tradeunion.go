package types

import "time"

// TradeUnion is keyed by a 5-character internal code; CNPJ is the 14-digit
// national registry number.
type TradeUnion struct {
	Code      string    `gorm:"type:char(5);primaryKey;column:code" json:"code"`
	Name      string    `gorm:"size:80;not null;column:name" json:"name"`
	CNPJ      string    `gorm:"type:char(14);column:cnpj" json:"cnpj"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at" json:"updated_at"`
	CreatedBy string    `gorm:"size:40;column:created_by" json:"created_by,omitempty"`
	UpdatedBy string    `gorm:"size:40;column:updated_by" json:"updated_by,omitempty"`
}

func (TradeUnion) TableName() string { return "trade_union" }
