package transactions

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tripbazaar/travel-backend/pkg/db/models"
	"github.com/tripbazaar/travel-backend/pkg/enums"
	pkgerrors "github.com/tripbazaar/travel-backend/pkg/errors"
	"github.com/tripbazaar/travel-backend/pkg/logger"
)

type documentGenerator interface {
	Invoice(transaction *models.Transaction) ([]byte, error)
	Voucher(transaction *models.Transaction) ([]byte, error)
}

// Service serves booking history and confirmed-booking documents.
type Service interface {
	List(ctx context.Context, callerID uuid.UUID) ([]Entry, error)
	Invoice(ctx context.Context, callerID, transactionID uuid.UUID) ([]byte, error)
	Voucher(ctx context.Context, callerID, transactionID uuid.UUID) ([]byte, error)
}

type service struct {
	repo      Repository
	documents documentGenerator
	log       *logger.Logger
}

// NewService builds the transactions service.
func NewService(repo Repository, documents documentGenerator, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("transactions: repository is required")
	}
	if documents == nil {
		return nil, fmt.Errorf("transactions: document generator is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("transactions: logger is required")
	}
	return &service{repo: repo, documents: documents, log: logg}, nil
}

// List returns the caller's bookings, newest first, with the stored
// supplier payloads trimmed to what the history view shows.
func (s *service) List(ctx context.Context, callerID uuid.UUID) ([]Entry, error) {
	records, err := s.repo.ListByUser(ctx, callerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unable to fetch transactions")
	}

	entries := make([]Entry, 0, len(records))
	for i := range records {
		entries = append(entries, toEntry(&records[i]))
	}
	return entries, nil
}

// Invoice renders the payment invoice PDF for a confirmed booking.
func (s *service) Invoice(ctx context.Context, callerID, transactionID uuid.UUID) ([]byte, error) {
	transaction, err := s.authorizedTransaction(ctx, callerID, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.Status != enums.BookingStatusConfirmed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cannot get invoice for incomplete transaction")
	}

	raw, err := s.documents.Invoice(transaction)
	if err != nil {
		s.log.Error(ctx, "invoice generation failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "cannot get invoice for the given transaction")
	}
	return raw, nil
}

// Voucher renders the check-in voucher PDF for a confirmed booking.
func (s *service) Voucher(ctx context.Context, callerID, transactionID uuid.UUID) ([]byte, error) {
	transaction, err := s.authorizedTransaction(ctx, callerID, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.Status != enums.BookingStatusConfirmed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cannot get voucher for incomplete transaction")
	}

	raw, err := s.documents.Voucher(transaction)
	if err != nil {
		s.log.Error(ctx, "voucher generation failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "cannot get voucher for the given transaction")
	}
	return raw, nil
}

func (s *service) authorizedTransaction(ctx context.Context, callerID, transactionID uuid.UUID) (*models.Transaction, error) {
	transaction, err := s.repo.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invalid booking id")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unable to fetch transaction")
	}
	if transaction.UserID == nil || *transaction.UserID != callerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not authorized")
	}
	return transaction, nil
}

func toEntry(transaction *models.Transaction) Entry {
	entry := Entry{
		BookingID: transaction.ID,
		Search:    transaction.Search,
		Hotel: HotelView{
			HotelID:      transaction.Hotel.HotelID,
			SupplierID:   transaction.Hotel.SupplierID,
			Name:         transaction.Hotel.Name,
			OriginalName: transaction.Hotel.OriginalName,
			StarRating:   transaction.Hotel.StarRating,
		},
		CancellationPolicy: transaction.BookingPolicy.CancellationPolicy,
		ContactDetails:     transaction.ContactDetail,
		Coupon:             transaction.Coupon,
		HotelPackage:       transaction.HotelPackage,
		Status:             transaction.Status,
		Pricing:            transaction.Pricing,
		PaymentResponse:    transaction.PaymentResponse,
		CreatedAt:          transaction.CreatedAt,
	}

	if transaction.PrebookResponse != nil {
		view := &PrebookView{}
		view.Data.Package = transaction.PrebookResponse.Package
		entry.PrebookResponse = view
	}
	if transaction.BookResponse != nil {
		entry.BookResponse.Data = transaction.BookResponse.Data
	}
	if transaction.CancelResponse != nil {
		entry.CancelResponse.Data = &CancelViewData{
			CancellationDetails: transaction.CancelResponse.CancellationDetails,
			CancellationPolicy:  transaction.CancelResponse.CancellationPolicy,
		}
	}
	return entry
}
