package types

import (
	"encoding/json"

	"github.com/tripbazaar/travel-backend/pkg/enums"
)

// ContactDetail is the booking contact person.
type ContactDetail struct {
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
}

// Coupon is a client-supplied discount descriptor.
type Coupon struct {
	Code  string           `json:"code,omitempty"`
	Type  enums.ChargeType `json:"type"`
	Value float64          `json:"value"`
}

// CancellationCharge is the admin-configured charge applied on top of
// the supplier penalty when a booking is cancelled.
type CancellationCharge struct {
	Type  enums.ChargeType `json:"type"`
	Value float64          `json:"value"`
}

// GuestName identifies the lead guest for one room.
type GuestName struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	ContactNo   string `json:"contact_no,omitempty"`
	Email       string `json:"email,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Salutation  string `json:"salutation,omitempty"`
}

// BookingPolicyDoc is the supplier booking-policy document. Fields we
// do not interpret stay raw.
type BookingPolicyDoc struct {
	BookingPolicyID    string          `json:"booking_policy_id"`
	CancellationPolicy json.RawMessage `json:"cancellation_policy,omitempty"`
	Package            HotelPackage    `json:"package"`
	Extra              json.RawMessage `json:"extra,omitempty"`
}

// PrebookPackage is the package summary echoed by the supplier on prebook.
type PrebookPackage struct {
	AdultCount   int             `json:"adult_count"`
	ChildCount   int             `json:"child_count"`
	RoomCount    int             `json:"room_count"`
	CheckInDate  string          `json:"check_in_date"`
	CheckOutDate string          `json:"check_out_date"`
	RateType     string          `json:"rate_type,omitempty"`
	RoomDetails  json.RawMessage `json:"room_details,omitempty"`
}

// PrebookDoc is the supplier prebook response payload.
type PrebookDoc struct {
	BookingID string         `json:"booking_id"`
	Package   PrebookPackage `json:"package"`
}

// Money is an amount in the supplier's penalty currency.
type Money struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// CancellationDetails is the supplier cancellation payload, enriched
// locally with the computed penalty and refund before persistence.
type CancellationDetails struct {
	APIPenalty           *Money  `json:"api_penalty,omitempty"`
	APIPenaltyPercentage float64 `json:"api_penalty_percentage,omitempty"`

	Penalty            *Money  `json:"penalty,omitempty"`
	Refund             *Money  `json:"refund,omitempty"`
	CancellationCharge float64 `json:"cancellation_charge,omitempty"`
	PenaltyPercentage  float64 `json:"penalty_percentage,omitempty"`
}

// CancelDoc is the supplier cancel response payload.
type CancelDoc struct {
	CancellationDetails CancellationDetails `json:"cancellation_details"`
	CancellationPolicy  json.RawMessage     `json:"cancellation_policy,omitempty"`
}

// PaymentSnapshot captures the payment collaborator's confirmation
// payload. Written by the payment flow, read by invoice generation.
type PaymentSnapshot struct {
	Data json.RawMessage `json:"data,omitempty"`
}

// BookSnapshot captures the supplier book response recorded at
// payment confirmation time.
type BookSnapshot struct {
	Data json.RawMessage `json:"data,omitempty"`
}

// PricingBreakdown is computed once per prebook, never supplier
// sourced. Ceiled values are integer currency units; pass-through
// charges keep the supplier precision.
type PricingBreakdown struct {
	BaseAmountDiscountIncluded int64   `json:"base_amount_discount_included"`
	BaseAmountDiscountExcluded int64   `json:"base_amount_discount_excluded"`
	CouponDiscount             int64   `json:"coupon_discount"`
	ClientDiscount             int64   `json:"client_discount"`
	ServiceCharges             float64 `json:"service_charges"`
	ProcessingFee              float64 `json:"processing_fee"`
	GST                        float64 `json:"gst"`
	TotalChargeableAmount      int64   `json:"total_chargeable_amount"`
	ActualRoomRate             float64 `json:"actual_room_rate"`
	ClientCommission           float64 `json:"client_commission"`
	BaseAmountMarkupExcluded   int64   `json:"base_amount_markup_excluded"`
	MarkupApplied              int64   `json:"markup_applied"`
	Currency                   string  `json:"currency"`
}
