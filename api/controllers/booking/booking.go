package booking

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tripbazaar/travel-backend/api/middleware"
	"github.com/tripbazaar/travel-backend/api/responses"
	"github.com/tripbazaar/travel-backend/api/validators"
	internalbooking "github.com/tripbazaar/travel-backend/internal/booking"
	internaltxns "github.com/tripbazaar/travel-backend/internal/transactions"
	pkgerrors "github.com/tripbazaar/travel-backend/pkg/errors"
	"github.com/tripbazaar/travel-backend/pkg/logger"
	"github.com/tripbazaar/travel-backend/pkg/types"
)

type policyRequest struct {
	TransactionID string       `json:"transaction_id" validate:"required"`
	Search        types.Search `json:"search"`
	BookingKey    string       `json:"bookingKey" validate:"required"`
	HotelID       string       `json:"hotelId" validate:"required"`
}

type prebookRequest struct {
	BookingPolicyID string                      `json:"booking_policy_id" validate:"required"`
	TransactionID   string                      `json:"transaction_id" validate:"required"`
	Contact         types.ContactDetail         `json:"contactDetail"`
	Coupon          types.Coupon                `json:"coupon"`
	Guests          []internalbooking.RoomGuest `json:"guest"`
}

type cancelRequest struct {
	TransactionID string `json:"transactionId" validate:"required"`
}

// Policy fetches, prices and stores the booking policy for a package.
func Policy(svc internalbooking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req policyRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hotelID, err := uuid.Parse(req.HotelID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "hotelId must be a uuid"))
			return
		}

		result, err := svc.Policy(r.Context(), internalbooking.PolicyInput{
			TransactionID: req.TransactionID,
			Search:        req.Search,
			BookingKey:    req.BookingKey,
			HotelID:       hotelID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// Prebook reserves a policy's package. Anonymous callers are allowed:
// identity resolution happens in the service from the contact details.
func Prebook(svc internalbooking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req prebookRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := internalbooking.PrebookInput{
			BookingPolicyID: req.BookingPolicyID,
			TransactionID:   req.TransactionID,
			Contact:         req.Contact,
			Coupon:          req.Coupon,
			Guests:          req.Guests,
		}
		if callerID := middleware.UserIDFromContext(r.Context()); callerID != uuid.Nil {
			input.AuthedUserID = &callerID
		}

		result, err := svc.Prebook(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// Cancel cancels a booking owned by the caller.
func Cancel(svc internalbooking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cancelRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		transactionID, err := uuid.Parse(req.TransactionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "transactionId must be a uuid"))
			return
		}

		result, err := svc.Cancel(r.Context(), middleware.UserIDFromContext(r.Context()), transactionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// Transactions lists the caller's booking history.
func Transactions(svc internaltxns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.List(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entries)
	}
}

// Invoice serves the invoice PDF for a confirmed booking.
func Invoice(svc internaltxns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transactionID, err := validators.ParseQueryUUID(r, "transactionid")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		raw, err := svc.Invoice(r.Context(), middleware.UserIDFromContext(r.Context()), transactionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePDF(w, raw)
	}
}

// Voucher serves the check-in voucher PDF for a confirmed booking.
func Voucher(svc internaltxns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transactionID, err := validators.ParseQueryUUID(r, "transactionid")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		raw, err := svc.Voucher(r.Context(), middleware.UserIDFromContext(r.Context()), transactionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePDF(w, raw)
	}
}
