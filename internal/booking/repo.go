package booking

import (
	"context"

	"gorm.io/gorm"

	"github.com/tripbazaar/travel-backend/pkg/db/models"
)

// Repository defines persistence operations for booking policies and
// the admin configuration row.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreatePolicy(ctx context.Context, policy *models.BookingPolicy) (*models.BookingPolicy, error)
	FindPolicy(ctx context.Context, bookingPolicyID, transactionIdentifier string) (*models.BookingPolicy, error)
	AppConfig(ctx context.Context) (*models.AppConfig, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a booking repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreatePolicy(ctx context.Context, policy *models.BookingPolicy) (*models.BookingPolicy, error) {
	if err := r.db.WithContext(ctx).Create(policy).Error; err != nil {
		return nil, err
	}
	return policy, nil
}

// FindPolicy resolves a stored policy by its composite supplier key,
// preloading the hotel it was priced against.
func (r *repository) FindPolicy(ctx context.Context, bookingPolicyID, transactionIdentifier string) (*models.BookingPolicy, error) {
	var policy models.BookingPolicy
	err := r.db.WithContext(ctx).
		Preload("Hotel").
		Where("booking_policy_id = ? AND transaction_identifier = ?", bookingPolicyID, transactionIdentifier).
		First(&policy).Error
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *repository) AppConfig(ctx context.Context) (*models.AppConfig, error) {
	var cfg models.AppConfig
	if err := r.db.WithContext(ctx).First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}
