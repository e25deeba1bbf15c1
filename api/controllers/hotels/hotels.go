package hotels

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tripbazaar/travel-backend/api/responses"
	"github.com/tripbazaar/travel-backend/api/validators"
	internalsearch "github.com/tripbazaar/travel-backend/internal/search"
	pkgerrors "github.com/tripbazaar/travel-backend/pkg/errors"
	"github.com/tripbazaar/travel-backend/pkg/logger"
	"github.com/tripbazaar/travel-backend/pkg/pagination"
	"github.com/tripbazaar/travel-backend/pkg/types"
)

type suggestRequest struct {
	Query             string `json:"query"`
	Page              int    `json:"page"`
	PerPage           int    `json:"perPage"`
	CurrentItemsCount int    `json:"currentItemsCount"`
}

type searchRequest struct {
	Details               []types.RoomDetail     `json:"details"`
	Area                  internalsearch.Area    `json:"area"`
	CheckInDate           string                 `json:"checkindate"`
	CheckOutDate          string                 `json:"checkoutdate"`
	TransactionIdentifier string                 `json:"transaction_identifier"`
	Filters               internalsearch.Filters `json:"filters"`
	Page                  int                    `json:"page"`
	PerPage               int                    `json:"perPage"`
	CurrentHotelsCount    int                    `json:"currentHotelsCount"`
}

type searchPackagesRequest struct {
	HotelID               string             `json:"hotelId"`
	CheckInDate           string             `json:"checkindate"`
	CheckOutDate          string             `json:"checkoutdate"`
	Details               []types.RoomDetail `json:"details"`
	TransactionIdentifier string             `json:"transaction_identifier"`
	ReferenceID           string             `json:"referenceId"`
}

// Suggest serves region/hotel autosuggest.
func Suggest(svc internalsearch.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req suggestRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Suggest(r.Context(), internalsearch.SuggestInput{
			Query: req.Query,
			Window: pagination.Params{
				Page:         req.Page,
				PerPage:      req.PerPage,
				CurrentCount: req.CurrentItemsCount,
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// Search serves paginated hotel search over a region.
func Search(svc internalsearch.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SearchHotels(r.Context(), internalsearch.HotelSearchInput{
			Details:               req.Details,
			Area:                  req.Area,
			CheckInDate:           req.CheckInDate,
			CheckOutDate:          req.CheckOutDate,
			TransactionIdentifier: req.TransactionIdentifier,
			Filters:               req.Filters,
			Window: pagination.Params{
				Page:         req.Page,
				PerPage:      req.PerPage,
				CurrentCount: req.CurrentHotelsCount,
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// SearchPackages re-prices the package list of one stored hotel.
func SearchPackages(svc internalsearch.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchPackagesRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hotelID, err := uuid.Parse(req.HotelID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "hotelId must be a uuid"))
			return
		}

		result, err := svc.SearchPackages(r.Context(), internalsearch.PackageSearchInput{
			HotelID:               hotelID,
			CheckInDate:           req.CheckInDate,
			CheckOutDate:          req.CheckOutDate,
			Details:               req.Details,
			TransactionIdentifier: req.TransactionIdentifier,
			ReferenceID:           req.ReferenceID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
