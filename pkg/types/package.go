package types

// RoomInfo describes the room behind one package.
type RoomInfo struct {
	RoomType      string `json:"room_type"`
	Food          string `json:"food"`
	Description   string `json:"description,omitempty"`
	NonRefundable *bool  `json:"non_refundable,omitempty"`
}

// Refundable resolves the refundability flag. A missing flag is
// treated as non-refundable.
func (r RoomInfo) Refundable() bool {
	if r.NonRefundable == nil {
		return false
	}
	return !*r.NonRefundable
}

// HotelPackage is one priced room package as returned by the
// supplier, identified by its booking key within a search window.
// The markup applier mutates the monetary fields in place.
type HotelPackage struct {
	BookingKey              string   `json:"booking_key"`
	RoomRate                float64  `json:"room_rate"`
	ClientCommission        float64  `json:"client_commission"`
	BaseAmount              float64  `json:"base_amount"`
	ChargeableRate          float64  `json:"chargeable_rate"`
	ChargeableRateCurrency  string   `json:"chargeable_rate_currency"`
	ServiceCharge           float64  `json:"service_charge"`
	ProcessingFee           float64  `json:"processing_fee"`
	GST                     float64  `json:"gst"`
	GuestDiscountPercentage float64  `json:"guest_discount_percentage,omitempty"`
	RoomDetails             RoomInfo `json:"room_details"`
}

// Rates groups the packages on a hotel result.
type Rates struct {
	Packages []HotelPackage `json:"packages"`
}
