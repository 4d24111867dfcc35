package types

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Login     string    `gorm:"size:40;uniqueIndex;not null;column:login" json:"login"`
	Name      string    `gorm:"size:80;not null;column:name" json:"name"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	Active    bool      `gorm:"not null;default:true;column:active" json:"active"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "user" }

// UserPermission grants a set of action letters for one function code.
type UserPermission struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	FunctionCode string    `gorm:"size:20;primaryKey;column:function_code" json:"function_code"`
	Actions      string    `gorm:"size:8;not null;column:actions" json:"actions"`
}

func (UserPermission) TableName() string { return "user_permission" }
