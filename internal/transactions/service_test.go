package transactions

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tripbazaar/travel-backend/pkg/db/models"
	"github.com/tripbazaar/travel-backend/pkg/enums"
	pkgerrors "github.com/tripbazaar/travel-backend/pkg/errors"
	"github.com/tripbazaar/travel-backend/pkg/logger"
	"github.com/tripbazaar/travel-backend/pkg/types"
)

type stubRepo struct {
	byID    map[uuid.UUID]*models.Transaction
	byUser  map[uuid.UUID][]models.Transaction
	listErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		byID:   map[uuid.UUID]*models.Transaction{},
		byUser: map[uuid.UUID][]models.Transaction{},
	}
}

func (s *stubRepo) WithTx(*gorm.DB) Repository { return s }

func (s *stubRepo) Create(_ context.Context, transaction *models.Transaction) (*models.Transaction, error) {
	s.byID[transaction.ID] = transaction
	return transaction, nil
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Transaction, error) {
	transaction, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return transaction, nil
}

func (s *stubRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.byUser[userID], nil
}

func (s *stubRepo) RecordCancellation(context.Context, uuid.UUID, *types.CancelDoc) error {
	return nil
}

func (s *stubRepo) UpdateStatus(context.Context, uuid.UUID, enums.BookingStatus) error {
	return nil
}

type stubGenerator struct {
	invoiceErr error
	voucherErr error
}

func (s *stubGenerator) Invoice(*models.Transaction) ([]byte, error) {
	if s.invoiceErr != nil {
		return nil, s.invoiceErr
	}
	return []byte("%PDF-invoice"), nil
}

func (s *stubGenerator) Voucher(*models.Transaction) ([]byte, error) {
	if s.voucherErr != nil {
		return nil, s.voucherErr
	}
	return []byte("%PDF-voucher"), nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func confirmedTransaction(userID uuid.UUID) *models.Transaction {
	return &models.Transaction{
		ID:     uuid.New(),
		UserID: &userID,
		Search: types.Search{CheckInDate: "2026-09-10", CheckOutDate: "2026-09-12"},
		Hotel: models.HotelSnapshot{
			HotelID:    uuid.New(),
			SupplierID: "sup-1",
			Name:       "Grand Meridian",
			StarRating: 4,
		},
		BookingPolicy: types.BookingPolicyDoc{
			BookingPolicyID:    "bp-1",
			CancellationPolicy: json.RawMessage(`{"free_until":"2026-09-08"}`),
		},
		Status: enums.BookingStatusConfirmed,
		PrebookResponse: &types.PrebookDoc{
			BookingID: "BKG-42",
			Package: types.PrebookPackage{
				AdultCount:   2,
				RoomCount:    1,
				CheckInDate:  "2026-09-10",
				CheckOutDate: "2026-09-12",
			},
		},
		CancelResponse: &types.CancelDoc{
			CancellationDetails: types.CancellationDetails{PenaltyPercentage: 10},
			CancellationPolicy:  json.RawMessage(`{"free_until":"2026-09-08"}`),
		},
		CreatedAt: time.Now(),
	}
}

func newTestService(t *testing.T, repo Repository, gen documentGenerator) Service {
	t.Helper()
	svc, err := NewService(repo, gen, testLogger())
	require.NoError(t, err)
	return svc
}

func TestList_TrimsStoredPayloads(t *testing.T) {
	userID := uuid.New()
	record := confirmedTransaction(userID)
	repo := newStubRepo()
	repo.byUser[userID] = []models.Transaction{*record}
	svc := newTestService(t, repo, &stubGenerator{})

	entries, err := svc.List(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, record.ID, entry.BookingID)
	assert.Equal(t, "Grand Meridian", entry.Hotel.Name)
	assert.JSONEq(t, `{"free_until":"2026-09-08"}`, string(entry.CancellationPolicy))

	require.NotNil(t, entry.PrebookResponse)
	assert.Equal(t, 2, entry.PrebookResponse.Data.Package.AdultCount)
	raw, err := json.Marshal(entry.PrebookResponse)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "BKG-42")

	require.NotNil(t, entry.CancelResponse.Data)
	assert.Equal(t, 10.0, entry.CancelResponse.Data.CancellationDetails.PenaltyPercentage)
}

func TestList_EmptyHistory(t *testing.T) {
	svc := newTestService(t, newStubRepo(), &stubGenerator{})

	entries, err := svc.List(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInvoice_ReturnsDocument(t *testing.T) {
	userID := uuid.New()
	record := confirmedTransaction(userID)
	repo := newStubRepo()
	repo.byID[record.ID] = record
	svc := newTestService(t, repo, &stubGenerator{})

	raw, err := svc.Invoice(context.Background(), userID, record.ID)

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-invoice"), raw)
}

func TestInvoice_UnknownTransaction(t *testing.T) {
	svc := newTestService(t, newStubRepo(), &stubGenerator{})

	_, err := svc.Invoice(context.Background(), uuid.New(), uuid.New())

	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestInvoice_RejectsOtherUsersTransaction(t *testing.T) {
	record := confirmedTransaction(uuid.New())
	repo := newStubRepo()
	repo.byID[record.ID] = record
	svc := newTestService(t, repo, &stubGenerator{})

	_, err := svc.Invoice(context.Background(), uuid.New(), record.ID)

	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}

func TestInvoice_RejectsIncompleteTransaction(t *testing.T) {
	userID := uuid.New()
	record := confirmedTransaction(userID)
	record.Status = enums.BookingStatusPrebooked
	repo := newStubRepo()
	repo.byID[record.ID] = record
	svc := newTestService(t, repo, &stubGenerator{})

	_, err := svc.Invoice(context.Background(), userID, record.ID)

	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestVoucher_GenerationFailure(t *testing.T) {
	userID := uuid.New()
	record := confirmedTransaction(userID)
	repo := newStubRepo()
	repo.byID[record.ID] = record
	svc := newTestService(t, repo, &stubGenerator{voucherErr: errors.New("font missing")})

	_, err := svc.Voucher(context.Background(), userID, record.ID)

	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestVoucher_ReturnsDocument(t *testing.T) {
	userID := uuid.New()
	record := confirmedTransaction(userID)
	repo := newStubRepo()
	repo.byID[record.ID] = record
	svc := newTestService(t, repo, &stubGenerator{})

	raw, err := svc.Voucher(context.Background(), userID, record.ID)

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-voucher"), raw)
}
