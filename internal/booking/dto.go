package booking

import (
	"github.com/google/uuid"

	"github.com/tripbazaar/travel-backend/pkg/types"
)

// PolicyInput requests a booking policy for one stored hotel package.
type PolicyInput struct {
	TransactionID string
	Search        types.Search
	BookingKey    string
	HotelID       uuid.UUID
}

// PolicyResult echoes the supplier policy, package already marked up.
type PolicyResult struct {
	TransactionIdentifier string                 `json:"transaction_identifier"`
	Data                  types.BookingPolicyDoc `json:"data"`
}

// RoomGuest is one explicitly named guest for a room.
type RoomGuest struct {
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	Mobile      string `json:"mobile"`
	Nationality string `json:"nationality"`
}

// PrebookInput requests a provisional reservation. AuthedUserID is set
// when a verified bearer token accompanied the request; otherwise the
// contact mobile drives the anonymous identity flow.
type PrebookInput struct {
	BookingPolicyID string
	TransactionID   string
	Contact         types.ContactDetail
	Coupon          types.Coupon
	Guests          []RoomGuest
	AuthedUserID    *uuid.UUID
}

// PrebookResult reports the created transaction and the supplier
// prebook document.
type PrebookResult struct {
	TransactionID uuid.UUID        `json:"transactionid"`
	Data          types.PrebookDoc `json:"data"`
}

// CancelResult is the enriched cancel response returned to the
// client, with the supplier penalty internals stripped.
type CancelResult struct {
	Data types.CancelDoc `json:"data"`
}
