package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tripbazaar/travel-backend/pkg/types"
)

// BookingPolicy stores one supplier booking-policy response with its
// priced package, keyed by (booking_policy_id, transaction_identifier).
// Created once per bookingpolicy call, read-only afterward.
type BookingPolicy struct {
	ID                    uuid.UUID              `gorm:"type:uuid;primaryKey"`
	BookingPolicyID       string                 `gorm:"column:booking_policy_id;index:idx_policy_txn"`
	TransactionIdentifier string                 `gorm:"column:transaction_identifier;index:idx_policy_txn"`
	Policy                types.BookingPolicyDoc `gorm:"column:policy;type:jsonb;serializer:json"`
	Search                types.Search           `gorm:"column:search;type:jsonb;serializer:json"`
	HotelID               uuid.UUID              `gorm:"column:hotel_id;type:uuid;not null"`
	Hotel                 *Hotel                 `gorm:"foreignKey:HotelID"`
	CreatedAt             time.Time              `gorm:"column:created_at;autoCreateTime"`
}

func (p *BookingPolicy) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
