package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a booking account. Anonymous prebooks create one keyed by
// mobile number with a generated password, marked pre-verified.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	LastName     string    `gorm:"column:last_name"`
	Mobile       string    `gorm:"column:mobile;not null;uniqueIndex"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Verified     bool      `gorm:"column:verified;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
