package transactions

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/tripbazaar/travel-backend/pkg/enums"
	"github.com/tripbazaar/travel-backend/pkg/types"
)

// HotelView is the persisted hotel snapshot without rates.
type HotelView struct {
	HotelID      uuid.UUID `json:"hotel_id"`
	SupplierID   string    `json:"supplier_id"`
	Name         string    `json:"name"`
	OriginalName string    `json:"original_name,omitempty"`
	StarRating   int       `json:"star_rating"`
}

// PrebookView exposes only the package summary of the stored prebook
// response. The supplier booking id stays server side.
type PrebookView struct {
	Data PrebookViewData `json:"data"`
}

type PrebookViewData struct {
	Package types.PrebookPackage `json:"package"`
}

// CancelView trims the stored cancel response to the fields shown in
// booking history.
type CancelView struct {
	Data *CancelViewData `json:"data,omitempty"`
}

type CancelViewData struct {
	CancellationDetails types.CancellationDetails `json:"cancellation_details"`
	CancellationPolicy  json.RawMessage           `json:"cancellation_policy,omitempty"`
}

// BookView wraps the supplier book payload for the history listing.
type BookView struct {
	Data json.RawMessage `json:"data,omitempty"`
}

// Entry is one booking in the caller's history.
type Entry struct {
	BookingID          uuid.UUID              `json:"bookingId"`
	Search             types.Search           `json:"search"`
	Hotel              HotelView              `json:"hotel"`
	CancellationPolicy json.RawMessage        `json:"cancellation_policy,omitempty"`
	ContactDetails     types.ContactDetail    `json:"contact_details"`
	Coupon             types.Coupon           `json:"coupon"`
	HotelPackage       types.HotelPackage     `json:"hotel_package"`
	Status             enums.BookingStatus    `json:"status"`
	Pricing            types.PricingBreakdown `json:"pricing"`
	PrebookResponse    *PrebookView           `json:"prebook_response,omitempty"`
	PaymentResponse    *types.PaymentSnapshot `json:"payment_response"`
	BookResponse       BookView               `json:"book_response"`
	CancelResponse     CancelView             `json:"cancel_response"`
	CreatedAt          time.Time              `json:"created_at"`
}
