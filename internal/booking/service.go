package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tripbazaar/travel-backend/internal/hotels"
	"github.com/tripbazaar/travel-backend/internal/pricing"
	"github.com/tripbazaar/travel-backend/internal/supplier"
	"github.com/tripbazaar/travel-backend/internal/transactions"
	"github.com/tripbazaar/travel-backend/internal/users"
	"github.com/tripbazaar/travel-backend/pkg/config"
	"github.com/tripbazaar/travel-backend/pkg/db/models"
	"github.com/tripbazaar/travel-backend/pkg/enums"
	pkgerrors "github.com/tripbazaar/travel-backend/pkg/errors"
	"github.com/tripbazaar/travel-backend/pkg/logger"
	"github.com/tripbazaar/travel-backend/pkg/types"
)

type markupApplier interface {
	Apply(ctx context.Context, starRating int, pkg *types.HotelPackage) error
}

type notifier interface {
	EnqueueGuest(ctx context.Context, mobile, body string)
	EnqueueAdmin(ctx context.Context, body string)
}

// Service drives the booking lifecycle: policy, prebook, cancel.
type Service interface {
	Policy(ctx context.Context, in PolicyInput) (*PolicyResult, error)
	Prebook(ctx context.Context, in PrebookInput) (*PrebookResult, error)
	Cancel(ctx context.Context, callerID, transactionID uuid.UUID) (*CancelResult, error)
}

type service struct {
	repo     Repository
	hotels   hotels.Repository
	txns     transactions.Repository
	users    users.Service
	gateway  supplier.API
	markup   markupApplier
	notify   notifier
	log      *logger.Logger
	guestNat string
}

// NewService builds the booking lifecycle service.
func NewService(
	repo Repository,
	hotelsRepo hotels.Repository,
	txnsRepo transactions.Repository,
	usersSvc users.Service,
	gateway supplier.API,
	markup markupApplier,
	notify notifier,
	cfg config.BookingConfig,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	if hotelsRepo == nil {
		return nil, fmt.Errorf("hotels repository required")
	}
	if txnsRepo == nil {
		return nil, fmt.Errorf("transactions repository required")
	}
	if usersSvc == nil {
		return nil, fmt.Errorf("users service required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("supplier gateway required")
	}
	if markup == nil {
		return nil, fmt.Errorf("markup applier required")
	}
	if notify == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &service{
		repo:     repo,
		hotels:   hotelsRepo,
		txns:     txnsRepo,
		users:    usersSvc,
		gateway:  gateway,
		markup:   markup,
		notify:   notify,
		log:      logg,
		guestNat: cfg.GuestNationality,
	}, nil
}

// Policy fetches the supplier booking policy for a stored package,
// marks it up and persists it keyed by (policy id, conversation id).
// A markup failure aborts the whole call: no partial policy exists.
func (s *service) Policy(ctx context.Context, in PolicyInput) (*PolicyResult, error) {
	if in.TransactionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction_id is required")
	}
	if in.BookingKey == "" || in.HotelID == uuid.Nil || in.Search.CheckInDate == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search, bookingKey and hotelId are required")
	}
	ctx = s.log.WithTransactionIdentifier(ctx, in.TransactionID)

	hotel, err := s.hotels.FindByID(ctx, in.HotelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "hotel not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading hotel")
	}

	pkg := hotel.PackageByBookingKey(in.BookingKey)
	if pkg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unable to get the booking policy")
	}

	result, err := s.gateway.BookingPolicy(ctx, in.TransactionID, in.Search, *pkg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "booking policy failed")
	}

	if err := s.markup.Apply(ctx, hotel.StarRating, &result.Policy.Package); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "applying markup to policy package")
	}

	record := &models.BookingPolicy{
		BookingPolicyID:       result.Policy.BookingPolicyID,
		TransactionIdentifier: in.TransactionID,
		Policy:                result.Policy,
		Search:                in.Search,
		HotelID:               hotel.ID,
	}
	if _, err := s.repo.CreatePolicy(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting booking policy")
	}

	return &PolicyResult{
		TransactionIdentifier: result.TransactionIdentifier,
		Data:                  result.Policy,
	}, nil
}

// Prebook reserves the policy's package with the supplier and records
// the transaction. Identity resolution allows anonymous callers: an
// account is looked up or provisioned by the contact mobile number.
func (s *service) Prebook(ctx context.Context, in PrebookInput) (*PrebookResult, error) {
	if in.BookingPolicyID == "" || in.TransactionID == "" || in.Contact.Mobile == "" || in.Contact.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking_policy_id, transaction_id and contactDetail required")
	}
	ctx = s.log.WithTransactionIdentifier(ctx, in.TransactionID)

	userID, err := s.resolveUser(ctx, in)
	if err != nil {
		return nil, err
	}

	policy, err := s.repo.FindPolicy(ctx, in.BookingPolicyID, in.TransactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking policy not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading booking policy")
	}
	if policy.Hotel == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "booking policy has no hotel")
	}

	pkg := policy.Policy.Package
	breakdown := pricing.Quote(pkg, in.Coupon)

	req := s.buildPrebookRequest(in, policy)

	result, err := s.gateway.Prebook(ctx, req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "prebook failed")
	}

	transaction := &models.Transaction{
		UserID:                &userID,
		TransactionIdentifier: in.TransactionID,
		Search:                policy.Search,
		BookingPolicy:         policy.Policy,
		ContactDetail:         in.Contact,
		Coupon:                in.Coupon,
		Hotel: models.HotelSnapshot{
			HotelID:      policy.Hotel.ID,
			SupplierID:   policy.Hotel.SupplierID,
			Name:         policy.Hotel.Name,
			OriginalName: policy.Hotel.OriginalName,
			StarRating:   policy.Hotel.StarRating,
		},
		HotelPackage:    pkg,
		Pricing:         breakdown,
		Status:          enums.BookingStatusPrebooked,
		PrebookResponse: &result.Doc,
	}
	if _, err := s.txns.Create(ctx, transaction); err != nil {
		// the supplier-side reservation may already exist; the gap is
		// acknowledged and reported as a generic booking failure
		s.log.Error(ctx, "transaction persistence failed after successful prebook", err)
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cannot book selected hotel")
	}

	return &PrebookResult{
		TransactionID: transaction.ID,
		Data:          result.Doc,
	}, nil
}

func (s *service) resolveUser(ctx context.Context, in PrebookInput) (uuid.UUID, error) {
	if in.AuthedUserID != nil {
		return *in.AuthedUserID, nil
	}

	resolved, err := s.users.EnsureBookingUser(ctx, in.Contact)
	if err != nil {
		return uuid.Nil, err
	}
	if resolved.Created {
		s.notify.EnqueueGuest(ctx, in.Contact.Mobile, fmt.Sprintf(
			"Your TripBazaar account has been created. You can login to your account using your mobile No. and password: %s",
			resolved.TempPassword,
		))
	}
	return resolved.User.ID, nil
}

func (s *service) buildPrebookRequest(in PrebookInput, policy *models.BookingPolicy) supplier.PrebookRequest {
	roomCount := policy.Search.RoomCount()

	// every room defaults to the contact person as lead guest
	leadGuests := make([]types.GuestName, 0, roomCount)
	for i := 0; i < roomCount; i++ {
		leadGuests = append(leadGuests, types.GuestName{
			FirstName:   in.Contact.Name,
			LastName:    in.Contact.LastName,
			Nationality: s.guestNat,
		})
	}

	roomGuests := make([]types.GuestName, 0, len(in.Guests))
	for _, guest := range in.Guests {
		roomGuests = append(roomGuests, types.GuestName{
			FirstName:   guest.FirstName,
			LastName:    guest.LastName,
			ContactNo:   guest.Mobile,
			Nationality: guest.Nationality,
		})
	}

	return supplier.PrebookRequest{
		TransactionIdentifier: in.TransactionID,
		BookingPolicyID:       policy.Policy.BookingPolicyID,
		RoomLeadGuests:        leadGuests,
		ContactPerson: types.GuestName{
			Salutation: "Mr.",
			FirstName:  in.Contact.Name,
			LastName:   in.Contact.LastName,
			Email:      in.Contact.Email,
			ContactNo:  in.Contact.Mobile,
		},
		Guests: roomGuests,
	}
}

// Cancel cancels a supplier booking owned by the caller, computes the
// refund and records the transition. The two notification messages are
// best-effort and never affect the outcome.
func (s *service) Cancel(ctx context.Context, callerID, transactionID uuid.UUID) (*CancelResult, error) {
	ctx = s.log.WithField(ctx, "transaction_id", transactionID.String())

	transaction, err := s.txns.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invalid transaction id, please try again")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading transaction")
	}
	if transaction.UserID == nil || *transaction.UserID != callerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not authorized")
	}
	if transaction.PrebookResponse == nil || transaction.PrebookResponse.BookingID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction has no supplier booking id")
	}

	result, err := s.gateway.Cancel(ctx, transaction.PrebookResponse.BookingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "booking cannot be cancelled, please try again")
	}

	appCfg, err := s.repo.AppConfig(ctx)
	if err != nil || appCfg.CancellationCharge == nil || appCfg.CancellationCharge.Value < 0 {
		s.log.Error(ctx, "cancellation charge configuration unavailable", err)
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "unable to cancel the hotel booking")
	}

	details := result.Doc.CancellationDetails
	currency := transaction.Pricing.Currency
	if details.APIPenalty != nil {
		currency = details.APIPenalty.Currency
	}

	breakdown, err := pricing.ComputeRefund(pricing.RefundInput{
		BaseAmount:           float64(transaction.Pricing.BaseAmountDiscountIncluded),
		CancellationCharge:   *appCfg.CancellationCharge,
		APIPenaltyPercentage: details.APIPenaltyPercentage,
		Currency:             currency,
	})
	if err != nil {
		return nil, err
	}

	enriched := result.Doc
	enriched.CancellationDetails.Penalty = &breakdown.Penalty
	enriched.CancellationDetails.Refund = &breakdown.Refund
	enriched.CancellationDetails.CancellationCharge = breakdown.CancellationCharge
	enriched.CancellationDetails.PenaltyPercentage = breakdown.PenaltyPercentage

	// the prior status is deliberately not checked before the
	// transition; cancelling an unconfirmed booking stays permitted
	if err := s.txns.RecordCancellation(ctx, transaction.ID, &enriched); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting cancellation")
	}

	s.notify.EnqueueGuest(ctx, transaction.ContactDetail.Mobile, fmt.Sprintf(
		"Your hotel %s has been cancelled. Your refund will be processed according to the cancellation policy.",
		transaction.Hotel.OriginalName,
	))
	s.notify.EnqueueAdmin(ctx, fmt.Sprintf(
		"Hello admin, hotel %s has been cancelled. Guest name : %s, Contact no: %s.",
		transaction.Hotel.OriginalName,
		transaction.ContactDetail.Name,
		transaction.ContactDetail.Mobile,
	))

	// the supplier's own penalty fields stay internal
	response := enriched
	response.CancellationDetails.APIPenalty = nil
	response.CancellationDetails.APIPenaltyPercentage = 0

	return &CancelResult{Data: response}, nil
}
