package types

import "strconv"

// RoomDetail is one room line of a search. The child fields are
// omitted entirely when the room carries no children (supplier
// contract: zero-child entries must not be serialized).
type RoomDetail struct {
	AdultCount int   `json:"adult_count"`
	ChildCount int   `json:"child_count,omitempty"`
	Children   []int `json:"children,omitempty"`
}

// Search mirrors the supplier "search" object that spans the whole
// search->book conversation.
type Search struct {
	SourceMarket          string       `json:"source_market"`
	Type                  string       `json:"type"`
	ID                    string       `json:"id"`
	Name                  string       `json:"name"`
	CheckInDate           string       `json:"check_in_date"`
	CheckOutDate          string       `json:"check_out_date"`
	TotalAdultCount       string       `json:"total_adult_count"`
	TotalChildCount       string       `json:"total_child_count"`
	TotalRoomCount        string       `json:"total_room_count"`
	Details               []RoomDetail `json:"details"`
	TransactionIdentifier string       `json:"transaction_identifier,omitempty"`
}

// RoomCount parses the serialized room count, defaulting to zero.
func (s Search) RoomCount() int {
	n, err := strconv.Atoi(s.TotalRoomCount)
	if err != nil {
		return 0
	}
	return n
}

// NormalizeRoomDetails builds a fresh room-detail slice from caller
// input, dropping child fields for rooms without children. The input
// slice is never mutated.
func NormalizeRoomDetails(details []RoomDetail) (normalized []RoomDetail, totalAdults, totalChildren int) {
	normalized = make([]RoomDetail, 0, len(details))
	for _, room := range details {
		totalAdults += room.AdultCount
		out := RoomDetail{AdultCount: room.AdultCount}
		if room.ChildCount > 0 {
			totalChildren += room.ChildCount
			out.ChildCount = room.ChildCount
			out.Children = append([]int(nil), room.Children...)
		}
		normalized = append(normalized, out)
	}
	return normalized, totalAdults, totalChildren
}
