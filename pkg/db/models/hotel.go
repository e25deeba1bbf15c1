package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tripbazaar/travel-backend/pkg/types"
)

// Hotel materializes one supplier hotel result for one search call.
// Rows are written per search and never deduplicated or reaped; the
// booking flow references them by id within the search session.
type Hotel struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SupplierID            string          `gorm:"column:supplier_id;index"`
	Name                  string          `gorm:"column:name;not null"`
	OriginalName          string          `gorm:"column:original_name"`
	StarRating            int             `gorm:"column:star_rating"`
	Region                json.RawMessage `gorm:"column:region;type:jsonb"`
	Rates                 types.Rates     `gorm:"column:rates;type:jsonb;serializer:json"`
	MetaSearchReferenceID *uuid.UUID      `gorm:"column:meta_search_reference_id;type:uuid"`
	CreatedAt             time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (h *Hotel) BeforeCreate(*gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// PackageByBookingKey resolves a stored package by its supplier
// booking key.
func (h *Hotel) PackageByBookingKey(key string) *types.HotelPackage {
	for i := range h.Rates.Packages {
		if h.Rates.Packages[i].BookingKey == key {
			return &h.Rates.Packages[i]
		}
	}
	return nil
}
