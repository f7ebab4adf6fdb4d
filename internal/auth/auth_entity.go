package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account statuses. Only ACTIVE users may log in or restore a
// session; the rest are rejected even with valid credentials.
const (
	StatusActive      = "ACTIVE"
	StatusPending     = "PENDING"
	StatusRemoved     = "REMOVED"
	StatusSelfRemoved = "SELF_REMOVED"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    *uuid.UUID `gorm:"type:uuid;index"` // nil for individual accounts
	Name         string     `gorm:"type:varchar(255);not null"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password     string     `gorm:"type:varchar(255);not null"`
	Role         string     `gorm:"type:varchar(20);not null;default:'EMPLOYEE'"`
	Status       string     `gorm:"type:varchar(20);not null;default:'PENDING'"`
	AuthProvider string     `gorm:"type:varchar(20);not null;default:'password'"`
	PhotoURL     string     `gorm:"type:varchar(512)"`
	MemberNumber *int64     `gorm:"index"` // assigned at approval, shown in exports
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
