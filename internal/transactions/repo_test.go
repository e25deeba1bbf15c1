package transactions

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tripbazaar/travel-backend/pkg/db/models"
	"github.com/tripbazaar/travel-backend/pkg/enums"
	"github.com/tripbazaar/travel-backend/pkg/types"
)

func setupTransactionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS transactions (
  id TEXT PRIMARY KEY,
  user_id TEXT,
  transaction_identifier TEXT,
  search TEXT,
  booking_policy TEXT,
  contact_detail TEXT,
  coupon TEXT,
  hotel TEXT,
  hotel_package TEXT,
  pricing TEXT,
  status INTEGER NOT NULL DEFAULT 0,
  prebook_response TEXT,
  payment_response TEXT,
  book_response TEXT,
  cancel_response TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func seedTransaction(t *testing.T, repo Repository, userID uuid.UUID) *models.Transaction {
	t.Helper()
	transaction := &models.Transaction{
		UserID:                &userID,
		TransactionIdentifier: "txn-1",
		Search:                types.Search{CheckInDate: "2026-09-10"},
		ContactDetail:         types.ContactDetail{Name: "Asha", Mobile: "9876543210"},
		Pricing:               types.PricingBreakdown{BaseAmountDiscountIncluded: 1000, Currency: "INR"},
		Status:                enums.BookingStatusPrebooked,
		PrebookResponse:       &types.PrebookDoc{BookingID: "BKG-42"},
	}
	created, err := repo.Create(context.Background(), transaction)
	require.NoError(t, err)
	return created
}

func TestRepository_CreateAndFind(t *testing.T) {
	repo := NewRepository(setupTransactionsTestDB(t))
	userID := uuid.New()

	created := seedTransaction(t, repo, userID)
	require.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.FindByID(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, userID, *found.UserID)
	assert.Equal(t, "txn-1", found.TransactionIdentifier)
	assert.Equal(t, int64(1000), found.Pricing.BaseAmountDiscountIncluded)
	require.NotNil(t, found.PrebookResponse)
	assert.Equal(t, "BKG-42", found.PrebookResponse.BookingID)
}

func TestRepository_FindMissing(t *testing.T) {
	repo := NewRepository(setupTransactionsTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_ListByUserNewestFirst(t *testing.T) {
	db := setupTransactionsTestDB(t)
	repo := NewRepository(db)
	userID := uuid.New()

	first := seedTransaction(t, repo, userID)
	second := seedTransaction(t, repo, userID)
	seedTransaction(t, repo, uuid.New())

	// force distinct timestamps; sqlite datetime precision is coarse
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("id = ?", first.ID).
		Update("created_at", "2026-01-01 10:00:00").Error)
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("id = ?", second.ID).
		Update("created_at", "2026-01-02 10:00:00").Error)

	records, err := repo.ListByUser(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].ID)
	assert.Equal(t, first.ID, records[1].ID)
}

func TestRepository_RecordCancellation(t *testing.T) {
	repo := NewRepository(setupTransactionsTestDB(t))
	created := seedTransaction(t, repo, uuid.New())

	response := &types.CancelDoc{
		CancellationDetails: types.CancellationDetails{
			Refund:            &types.Money{Value: 700, Currency: "INR"},
			PenaltyPercentage: 20,
		},
	}
	require.NoError(t, repo.RecordCancellation(context.Background(), created.ID, response))

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.BookingStatusCancelled, found.Status)
	require.NotNil(t, found.CancelResponse)
	assert.Equal(t, 700.0, found.CancelResponse.CancellationDetails.Refund.Value)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo := NewRepository(setupTransactionsTestDB(t))
	created := seedTransaction(t, repo, uuid.New())

	require.NoError(t, repo.UpdateStatus(context.Background(), created.ID, enums.BookingStatusConfirmed))

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.BookingStatusConfirmed, found.Status)
}
