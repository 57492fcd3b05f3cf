package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is an entry in the activity log.
type AuditRecord struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	EntityType EntityType
	EntityID   *uuid.UUID
	Action     AuditAction
	Changes    map[string]any
	CreatedAt  time.Time
}

// Notification is a message for one user produced as a side-effect of a
// bulk operation.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Kind      string
	Title     string
	Payload   map[string]any
	CreatedAt time.Time
}
