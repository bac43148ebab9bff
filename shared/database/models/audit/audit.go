package audit

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is one committed tenancy change.
type AuditLog struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	EventType      string         `json:"event_type" gorm:"type:varchar(64);not null;index"`
	EntityType     string         `json:"entity_type" gorm:"type:varchar(32);not null"`
	EntityID       string         `json:"entity_id" gorm:"type:varchar(64);not null;index"`
	OrganizationID string         `json:"organization_id,omitempty" gorm:"type:varchar(64);index"`
	Data           map[string]any `json:"data,omitempty" gorm:"serializer:json;type:text"`
	RequestID      string         `json:"request_id,omitempty" gorm:"type:varchar(100)"`
	OccurredAt     time.Time      `json:"occurred_at" gorm:"not null;index"`
	CreatedAt      time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}
