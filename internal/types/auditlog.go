package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog is the append-only write trail. Detail holds the mutated payload
// as JSON so the access-control screens can show what changed.
type AuditLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID   uuid.UUID      `gorm:"type:uuid;index;column:actor_id" json:"actor_id"`
	Actor     string         `gorm:"size:40;column:actor" json:"actor"`
	Action    string         `gorm:"size:20;not null;column:action" json:"action"`
	Resource  string         `gorm:"size:30;not null;index;column:resource" json:"resource"`
	RecordKey string         `gorm:"size:30;column:record_key" json:"record_key"`
	Detail    datatypes.JSON `gorm:"column:detail" json:"detail,omitempty"`
	CreatedAt time.Time      `gorm:"not null;index;column:created_at" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_log" }
