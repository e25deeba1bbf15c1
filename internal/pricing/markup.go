package pricing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/tripbazaar/travel-backend/pkg/db/models"
	"github.com/tripbazaar/travel-backend/pkg/types"
)

// ErrNoMarkup signals that no active rule covers the hotel. Callers
// drop the affected package or hotel from the result instead of
// failing the batch.
var ErrNoMarkup = errors.New("no markup rule matches")

// RuleSource supplies the active markup rules.
type RuleSource interface {
	ActiveMarkupRules(ctx context.Context) ([]models.MarkupRule, error)
}

// Applier applies the admin-configured markup and charges to raw
// supplier packages.
type Applier struct {
	rules RuleSource
}

func NewApplier(rules RuleSource) *Applier {
	return &Applier{rules: rules}
}

// Apply marks up one package in place: the supplier net rate (room
// rate plus client commission) gains the configured margin, then
// service charge, processing fee and GST are derived from the new
// base amount.
func (a *Applier) Apply(ctx context.Context, starRating int, pkg *types.HotelPackage) error {
	if pkg == nil {
		return ErrNoMarkup
	}

	rules, err := a.rules.ActiveMarkupRules(ctx)
	if err != nil {
		return err
	}

	var rule *models.MarkupRule
	for i := range rules {
		if rules[i].Matches(starRating) {
			rule = &rules[i]
			break
		}
	}
	if rule == nil {
		return ErrNoMarkup
	}

	net := decimal.NewFromFloat(pkg.RoomRate).Add(decimal.NewFromFloat(pkg.ClientCommission))
	if !net.IsPositive() {
		return ErrNoMarkup
	}

	hundred := decimal.NewFromInt(100)

	markup := decimal.NewFromFloat(rule.MarkupPercentage).Div(hundred).Mul(net)
	base := net.Add(markup)

	serviceCharge := decimal.NewFromFloat(rule.ServiceChargePct).Div(hundred).Mul(base)
	processingFee := decimal.NewFromFloat(rule.ProcessingFeeFlat)
	gst := decimal.NewFromFloat(rule.GSTPct).Div(hundred).Mul(base)

	pkg.BaseAmount = base.InexactFloat64()
	pkg.ServiceCharge = serviceCharge.InexactFloat64()
	pkg.ProcessingFee = processingFee.InexactFloat64()
	pkg.GST = gst.InexactFloat64()
	pkg.ChargeableRate = base.Add(serviceCharge).Add(processingFee).Add(gst).InexactFloat64()
	return nil
}
