package booking

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

func setupBookingTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	hotels := `
CREATE TABLE IF NOT EXISTS hotels (
  id TEXT PRIMARY KEY,
  supplier_id TEXT,
  name TEXT NOT NULL,
  original_name TEXT,
  star_rating INTEGER,
  region TEXT,
  rates TEXT,
  meta_search_reference_id TEXT,
  created_at DATETIME
);`
	policies := `
CREATE TABLE IF NOT EXISTS booking_policies (
  id TEXT PRIMARY KEY,
  booking_policy_id TEXT,
  transaction_identifier TEXT,
  policy TEXT,
  search TEXT,
  hotel_id TEXT NOT NULL,
  created_at DATETIME
);`
	appConfig := `
CREATE TABLE IF NOT EXISTS app_config (
  id TEXT PRIMARY KEY,
  cancellation_charge TEXT,
  updated_at DATETIME
);`
	for _, ddl := range []string{hotels, policies, appConfig} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func seedPolicyHotel(t *testing.T, db *gorm.DB) *models.Hotel {
	t.Helper()
	hotel := &models.Hotel{
		SupplierID: "sup-1",
		Name:       "Grand Meridian",
		StarRating: 4,
		Rates: types.Rates{Packages: []types.HotelPackage{{
			BookingKey: "bk-1",
			RoomRate:   900,
		}}},
	}
	require.NoError(t, db.Create(hotel).Error)
	return hotel
}

func TestRepository_CreateAndFindPolicy(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewRepository(db)
	hotel := seedPolicyHotel(t, db)

	created, err := repo.CreatePolicy(context.Background(), &models.BookingPolicy{
		BookingPolicyID:       "bp-1",
		TransactionIdentifier: "txn-1",
		Policy: types.BookingPolicyDoc{
			BookingPolicyID: "bp-1",
			Package:         types.HotelPackage{BookingKey: "bk-1", BaseAmount: 1150},
		},
		Search:  types.Search{CheckInDate: "2026-09-10", TotalRoomCount: "2"},
		HotelID: hotel.ID,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.FindPolicy(context.Background(), "bp-1", "txn-1")

	require.NoError(t, err)
	assert.Equal(t, 1150.0, found.Policy.Package.BaseAmount)
	assert.Equal(t, "2", found.Search.TotalRoomCount)
	require.NotNil(t, found.Hotel)
	assert.Equal(t, "Grand Meridian", found.Hotel.Name)
}

func TestRepository_FindPolicyIsKeyedByConversation(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewRepository(db)
	hotel := seedPolicyHotel(t, db)

	_, err := repo.CreatePolicy(context.Background(), &models.BookingPolicy{
		BookingPolicyID:       "bp-1",
		TransactionIdentifier: "txn-1",
		HotelID:               hotel.ID,
	})
	require.NoError(t, err)

	_, err = repo.FindPolicy(context.Background(), "bp-1", "txn-other")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_AppConfig(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewRepository(db)

	_, err := repo.AppConfig(context.Background())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, db.Create(&models.AppConfig{
		CancellationCharge: &types.CancellationCharge{
			Type:  enums.ChargeTypePercentage,
			Value: 5,
		},
	}).Error)

	cfg, err := repo.AppConfig(context.Background())

	require.NoError(t, err)
	require.NotNil(t, cfg.CancellationCharge)
	assert.Equal(t, enums.ChargeTypePercentage, cfg.CancellationCharge.Type)
	assert.Equal(t, 5.0, cfg.CancellationCharge.Value)
}
