package pricing

import (
	"context"

	"gorm.io/gorm"

	"github.com/tripbazaar/travel-backend/pkg/db/models"
)

type ruleRepository struct {
	db *gorm.DB
}

// NewRuleRepository builds a markup-rule source backed by the rule table.
func NewRuleRepository(db *gorm.DB) RuleSource {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) ActiveMarkupRules(ctx context.Context) ([]models.MarkupRule, error) {
	var rules []models.MarkupRule
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("min_star_rating ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}
