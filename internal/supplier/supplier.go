package supplier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tripbazaar/travel-backend/pkg/enums"
	"github.com/tripbazaar/travel-backend/pkg/types"
)

// ErrUpstream wraps every gateway failure: network error, non-2xx,
// malformed body, open circuit. Callers decide how to propagate; no
// retries happen at this layer.
var ErrUpstream = errors.New("supplier upstream failure")

// MaxRegionIDs is the hard cap on comma-separated region ids the
// upstream accepts in one request.
const MaxRegionIDs = 50

// API is the gateway surface consumed by the search and booking services.
type API interface {
	Autosuggest(ctx context.Context, term string) ([]Suggestion, error)
	SearchHotels(ctx context.Context, search types.Search) (*SearchResult, error)
	SearchPackages(ctx context.Context, search types.Search) (*SearchResult, error)
	BookingPolicy(ctx context.Context, transactionID string, search types.Search, pkg types.HotelPackage) (*BookingPolicyResult, error)
	Prebook(ctx context.Context, req PrebookRequest) (*PrebookResult, error)
	Cancel(ctx context.Context, bookingID string) (*CancelResult, error)
}

// Suggestion is the normalized autosuggest item. The upstream returns
// a dynamic-shape union split by result kind; it is resolved here once
// and never re-inspected downstream.
type Suggestion struct {
	Kind                  enums.SuggestionKind `json:"kind"`
	ID                    string               `json:"id"`
	Name                  string               `json:"name"`
	DisplayName           string               `json:"displayName"`
	HotelCount            int                  `json:"hotelCount,omitempty"`
	TransactionIdentifier string               `json:"transaction_identifier"`
}

// Hotel is one hotel entry of an upstream search result.
type Hotel struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	OriginalName string          `json:"originalName,omitempty"`
	StarRating   int             `json:"starRating"`
	Region       json.RawMessage `json:"region,omitempty"`
	Rates        types.Rates     `json:"rates"`
}

// SearchResult is the decoded upstream search payload, shared by the
// hotel-search and package-search operations.
type SearchResult struct {
	TransactionIdentifier string          `json:"transaction_identifier"`
	Search                types.Search    `json:"search"`
	Region                json.RawMessage `json:"region,omitempty"`
	Hotels                []Hotel         `json:"hotels"`
	TotalHotelsCount      int             `json:"totalHotelsCount"`
	CurrentPackagesCount  int             `json:"currentPackagesCount"`
	TotalPackagesCount    int             `json:"totalPackagesCount"`
	Page                  int             `json:"page"`
	PerPage               int             `json:"perPage"`
	TotalPages            int             `json:"totalPages"`
	Status                string          `json:"status"`
}

// BookingPolicyResult carries the decoded policy document plus the raw
// body, which the booking flow echoes back to the client unchanged.
type BookingPolicyResult struct {
	TransactionIdentifier string
	Policy                types.BookingPolicyDoc
	Raw                   json.RawMessage
}

// PrebookRequest is the upstream prebook payload built by the booking
// lifecycle service.
type PrebookRequest struct {
	TransactionIdentifier string            `json:"transaction_identifier"`
	BookingPolicyID       string            `json:"booking_policy_id"`
	RoomLeadGuests        []types.GuestName `json:"room_lead_guests"`
	ContactPerson         types.GuestName   `json:"contact_person"`
	Guests                []types.GuestName `json:"guests"`
}

// PrebookResult carries the decoded prebook document plus the raw body.
type PrebookResult struct {
	Doc types.PrebookDoc
	Raw json.RawMessage
}

// CancelResult carries the decoded cancel document.
type CancelResult struct {
	Doc types.CancelDoc
	Raw json.RawMessage
}

// LimitRegionIDs truncates a comma-separated region id string to at
// most max entries. Truncation, never rejection: the upstream fails
// hard on oversized lists.
func LimitRegionIDs(ids string, max int) string {
	if ids == "" || max <= 0 {
		return ids
	}
	parts := strings.Split(ids, ",")
	if len(parts) <= max {
		return ids
	}
	return strings.Join(parts[:max], ",")
}

func upstreamErr(operation string, err error) error {
	return fmt.Errorf("supplier %s: %w: %v", operation, ErrUpstream, err)
}
