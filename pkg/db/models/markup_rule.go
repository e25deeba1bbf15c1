package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MarkupRule configures the margin applied on top of the supplier net
// rate for hotels inside a star-rating band. Percentages are of the
// marked-up base amount.
type MarkupRule struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	MinStarRating     int       `gorm:"column:min_star_rating;not null;default:0"`
	MaxStarRating     int       `gorm:"column:max_star_rating;not null;default:5"`
	MarkupPercentage  float64   `gorm:"column:markup_percentage;not null"`
	ServiceChargePct  float64   `gorm:"column:service_charge_pct;not null;default:0"`
	ProcessingFeeFlat float64   `gorm:"column:processing_fee_flat;not null;default:0"`
	GSTPct            float64   `gorm:"column:gst_pct;not null;default:0"`
	Active            bool      `gorm:"column:active;not null;default:true"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (r *MarkupRule) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Matches reports whether the rule covers the given star rating.
func (r MarkupRule) Matches(starRating int) bool {
	return r.Active && starRating >= r.MinStarRating && starRating <= r.MaxStarRating
}
