package hotels

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tripbazaar/travel-backend/pkg/db/models"
	"github.com/tripbazaar/travel-backend/pkg/types"
)

func setupHotelsTestDB(t *testing.T) *gorm.DB {
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
	metaSearches := `
CREATE TABLE IF NOT EXISTS meta_searches (
  id TEXT PRIMARY KEY,
  vendor TEXT,
  vendor_reference_id TEXT,
  created_at DATETIME
);`
	for _, ddl := range []string{hotels, metaSearches} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func sampleHotels() []models.Hotel {
	return []models.Hotel{
		{
			SupplierID: "sup-1",
			Name:       "Grand Meridian",
			StarRating: 4,
			Rates: types.Rates{Packages: []types.HotelPackage{{
				BookingKey: "bk-1",
				RoomRate:   900,
			}}},
		},
		{
			SupplierID: "sup-2",
			Name:       "Harbour View",
			StarRating: 3,
		},
	}
}

func TestRepository_CreateBatchAssignsIDs(t *testing.T) {
	repo := NewRepository(setupHotelsTestDB(t))
	batch := sampleHotels()

	require.NoError(t, repo.CreateBatch(context.Background(), batch))

	for _, hotel := range batch {
		assert.NotEqual(t, uuid.Nil, hotel.ID)
	}

	found, err := repo.FindByID(context.Background(), batch[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Grand Meridian", found.Name)
	require.Len(t, found.Rates.Packages, 1)
	assert.Equal(t, "bk-1", found.Rates.Packages[0].BookingKey)
}

func TestRepository_CreateBatchEmpty(t *testing.T) {
	repo := NewRepository(setupHotelsTestDB(t))

	assert.NoError(t, repo.CreateBatch(context.Background(), nil))
}

func TestRepository_UpdatePackages(t *testing.T) {
	repo := NewRepository(setupHotelsTestDB(t))
	batch := sampleHotels()
	require.NoError(t, repo.CreateBatch(context.Background(), batch))

	metaID := uuid.New()
	fresh := types.Rates{Packages: []types.HotelPackage{{
		BookingKey: "bk-2",
		RoomRate:   1200,
	}}}
	require.NoError(t, repo.UpdatePackages(context.Background(), batch[0].ID, fresh, &metaID))

	found, err := repo.FindByID(context.Background(), batch[0].ID)
	require.NoError(t, err)
	require.Len(t, found.Rates.Packages, 1)
	assert.Equal(t, "bk-2", found.Rates.Packages[0].BookingKey)
	require.NotNil(t, found.MetaSearchReferenceID)
	assert.Equal(t, metaID, *found.MetaSearchReferenceID)
}

func TestRepository_UpdatePackagesClearsMetaReference(t *testing.T) {
	repo := NewRepository(setupHotelsTestDB(t))
	batch := sampleHotels()
	require.NoError(t, repo.CreateBatch(context.Background(), batch))

	metaID := uuid.New()
	require.NoError(t, repo.UpdatePackages(context.Background(), batch[0].ID, types.Rates{}, &metaID))
	require.NoError(t, repo.UpdatePackages(context.Background(), batch[0].ID, types.Rates{}, nil))

	found, err := repo.FindByID(context.Background(), batch[0].ID)
	require.NoError(t, err)
	assert.Nil(t, found.MetaSearchReferenceID)
}

func TestRepository_FindMetaSearchByReference(t *testing.T) {
	db := setupHotelsTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, db.Create(&models.MetaSearch{
		Vendor:            "comparo",
		VendorReferenceID: "ref-77",
	}).Error)

	found, err := repo.FindMetaSearchByReference(context.Background(), "ref-77")
	require.NoError(t, err)
	assert.Equal(t, "comparo", found.Vendor)

	_, err = repo.FindMetaSearchByReference(context.Background(), "ref-missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
