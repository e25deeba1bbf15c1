package hotels

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tripbazaar/travel-backend/pkg/db/models"
	"github.com/tripbazaar/travel-backend/pkg/types"
)

// Repository defines persistence operations for materialized hotel
// results and meta-search referrals.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateBatch(ctx context.Context, hotels []models.Hotel) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Hotel, error)
	UpdatePackages(ctx context.Context, id uuid.UUID, rates types.Rates, metaSearchID *uuid.UUID) error
	FindMetaSearchByReference(ctx context.Context, referenceID string) (*models.MetaSearch, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a hotels repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateBatch(ctx context.Context, hotels []models.Hotel) error {
	if len(hotels) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&hotels).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Hotel, error) {
	var hotel models.Hotel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&hotel).Error
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *repository) UpdatePackages(ctx context.Context, id uuid.UUID, rates types.Rates, metaSearchID *uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Hotel{}).
		Where("id = ?", id).
		Select("rates", "meta_search_reference_id").
		Updates(&models.Hotel{Rates: rates, MetaSearchReferenceID: metaSearchID}).Error
}

func (r *repository) FindMetaSearchByReference(ctx context.Context, referenceID string) (*models.MetaSearch, error) {
	var record models.MetaSearch
	err := r.db.WithContext(ctx).
		Where("vendor_reference_id = ?", referenceID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
