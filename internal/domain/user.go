package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a member of a course production team.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Role      UserRole
	CreatedAt time.Time
	UpdatedAt time.Time
}
