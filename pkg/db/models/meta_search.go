package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MetaSearch records an inbound referral from a meta-search vendor
// (price comparison sites). Package searches attach the reference to
// the hotel row so downstream bookings can be attributed.
type MetaSearch struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Vendor            string    `gorm:"column:vendor"`
	VendorReferenceID string    `gorm:"column:vendor_reference_id;index"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (m *MetaSearch) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
