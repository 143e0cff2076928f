package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles.
const (
	RoleFounder    = "founder"
	RoleSalesman   = "salesman"
	RoleAccounting = "accounting"
)

// Profile stores system users with role-based access.
type Profile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
