package search

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/tripbazaar/travel-backend/internal/supplier"
	"github.com/tripbazaar/travel-backend/pkg/pagination"
	"github.com/tripbazaar/travel-backend/pkg/types"
)

// SuggestInput is the autosuggest request.
type SuggestInput struct {
	Query  string
	Window pagination.Params
}

// SuggestResult is one page of autosuggest items.
type SuggestResult struct {
	Data              []supplier.Suggestion `json:"data"`
	Status            string                `json:"status"`
	CurrentItemsCount int                   `json:"currentItemsCount"`
	TotalItemsCount   int                   `json:"totalItemsCount"`
	Page              int                   `json:"page"`
	PerPage           int                   `json:"perPage"`
	TotalPages        int                   `json:"totalPages"`
}

// Area identifies the searched region or hotel.
type Area struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// PriceRange filters hotels on the lead package base amount.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Filters are the client-side search filters, applied as an
// intersection after markup.
type Filters struct {
	RoomType   []string    `json:"roomType"`
	FoodType   []string    `json:"foodType"`
	Refundable []bool      `json:"refundable"`
	StarRating []int       `json:"starRating"`
	Price      *PriceRange `json:"price"`
}

// HotelSearchInput is the hotel search request.
type HotelSearchInput struct {
	Details               []types.RoomDetail
	Area                  Area
	CheckInDate           string
	CheckOutDate          string
	TransactionIdentifier string
	Filters               Filters
	Window                pagination.Params
}

// HotelView is one hotel of a search result, enriched with the id of
// its materialized row.
type HotelView struct {
	HotelID      uuid.UUID       `json:"hotelId"`
	SupplierID   string          `json:"id"`
	Name         string          `json:"name"`
	OriginalName string          `json:"originalName,omitempty"`
	StarRating   int             `json:"starRating"`
	Region       json.RawMessage `json:"region,omitempty"`
	Rates        types.Rates     `json:"rates"`
}

// Price is the observed base-amount range over the returned page.
type Price struct {
	MinPrice int64 `json:"minPrice"`
	MaxPrice int64 `json:"maxPrice"`
}

// HotelSearchResult is one page of enriched hotels.
type HotelSearchResult struct {
	Search                types.Search    `json:"search"`
	Region                json.RawMessage `json:"region,omitempty"`
	Hotels                []HotelView     `json:"hotels"`
	Price                 Price           `json:"price"`
	CurrentHotelsCount    int             `json:"currentHotelsCount"`
	TotalHotelsCount      int             `json:"totalHotelsCount"`
	Page                  int             `json:"page"`
	PerPage               int             `json:"perPage"`
	TotalPages            int             `json:"totalPages"`
	Status                string          `json:"status"`
	TransactionIdentifier string          `json:"transaction_identifier"`
}

// PackageSearchInput re-prices the packages of one previously found hotel.
type PackageSearchInput struct {
	HotelID               uuid.UUID
	CheckInDate           string
	CheckOutDate          string
	Details               []types.RoomDetail
	TransactionIdentifier string
	ReferenceID           string
}

// PackageSearchResult is the re-priced package list for one hotel.
type PackageSearchResult struct {
	Search                types.Search `json:"search"`
	Hotel                 HotelView    `json:"hotel"`
	CurrentPackagesCount  int          `json:"currentPackagesCount"`
	TotalPackagesCount    int          `json:"totalPackagesCount"`
	Page                  int          `json:"page"`
	PerPage               int          `json:"perPage"`
	TotalPages            int          `json:"totalPages"`
	Status                string       `json:"status"`
	TransactionIdentifier string       `json:"transaction_identifier"`
}
