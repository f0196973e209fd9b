package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleCitizen = "citizen"
	RoleCleaner = "cleaner"
	RoleAdmin   = "admin"
)

func ValidRole(role string) bool {
	return role == RoleCitizen || role == RoleCleaner || role == RoleAdmin
}

// StartingCredits is granted to every new account.
const StartingCredits = 150

type User struct {
	ID        string         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;not null" json:"username"`
	Password  string         `gorm:"not null" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	Role      string         `gorm:"default:'citizen'" json:"role"`
	Zone      string         `json:"zone,omitempty"`
	Credits   int            `gorm:"default:150" json:"credits"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
