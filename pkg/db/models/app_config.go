package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tripbazaar/travel-backend/pkg/types"
)

// AppConfig is the single admin-managed configuration row. The
// cancellation charge must be present for cancellations to proceed.
type AppConfig struct {
	ID                 uuid.UUID                 `gorm:"type:uuid;primaryKey"`
	CancellationCharge *types.CancellationCharge `gorm:"column:cancellation_charge;type:jsonb;serializer:json"`
	UpdatedAt          time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *AppConfig) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (AppConfig) TableName() string {
	return "app_config"
}
