package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tripbazaar/travel-backend/pkg/enums"
	"github.com/tripbazaar/travel-backend/pkg/types"
)

// Transaction is the aggregate booking record, owned by the booking
// lifecycle service. Created at prebook (status 0), mutated on payment
// confirmation (1) and cancellation (2), never deleted.
type Transaction struct {
	ID                    uuid.UUID              `gorm:"type:uuid;primaryKey"`
	UserID                *uuid.UUID             `gorm:"column:user_id;type:uuid;index"`
	TransactionIdentifier string                 `gorm:"column:transaction_identifier;index"`
	Search                types.Search           `gorm:"column:search;type:jsonb;serializer:json"`
	BookingPolicy         types.BookingPolicyDoc `gorm:"column:booking_policy;type:jsonb;serializer:json"`
	ContactDetail         types.ContactDetail    `gorm:"column:contact_detail;type:jsonb;serializer:json"`
	Coupon                types.Coupon           `gorm:"column:coupon;type:jsonb;serializer:json"`
	Hotel                 HotelSnapshot          `gorm:"column:hotel;type:jsonb;serializer:json"`
	HotelPackage          types.HotelPackage     `gorm:"column:hotel_package;type:jsonb;serializer:json"`
	Pricing               types.PricingBreakdown `gorm:"column:pricing;type:jsonb;serializer:json"`
	Status                enums.BookingStatus    `gorm:"column:status;not null;default:0"`
	PrebookResponse       *types.PrebookDoc      `gorm:"column:prebook_response;type:jsonb;serializer:json"`
	PaymentResponse       *types.PaymentSnapshot `gorm:"column:payment_response;type:jsonb;serializer:json"`
	BookResponse          *types.BookSnapshot    `gorm:"column:book_response;type:jsonb;serializer:json"`
	CancelResponse        *types.CancelDoc       `gorm:"column:cancel_response;type:jsonb;serializer:json"`
	CreatedAt             time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

// HotelSnapshot freezes the hotel identity inside a transaction.
type HotelSnapshot struct {
	HotelID      uuid.UUID `json:"hotel_id"`
	SupplierID   string    `json:"supplier_id"`
	Name         string    `json:"name"`
	OriginalName string    `json:"original_name,omitempty"`
	StarRating   int       `json:"star_rating"`
}

func (t *Transaction) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
