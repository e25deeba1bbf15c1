package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/tripbazaar/travel-backend/pkg/enums"
	"github.com/tripbazaar/travel-backend/pkg/errors"
	"github.com/tripbazaar/travel-backend/pkg/types"
)

// Quote derives the client-facing price breakdown from a priced
// package and a coupon. Pure computation: identical inputs always
// yield identical output. Every monetary intermediate is ceiled to
// whole currency units independently before combination.
func Quote(pkg types.HotelPackage, coupon types.Coupon) types.PricingBreakdown {
	base := decimal.NewFromFloat(pkg.BaseAmount)

	baseInc := base.Ceil().IntPart()

	var clientDiscount int64
	if pkg.GuestDiscountPercentage > 0 {
		clientDiscount = decimal.NewFromFloat(pkg.GuestDiscountPercentage).
			Div(decimal.NewFromInt(100)).
			Mul(base).
			Ceil().IntPart()
	}
	baseExc := baseInc - clientDiscount

	var couponDiscount int64
	if coupon.Type == enums.ChargeTypeFixed {
		couponDiscount = decimal.NewFromFloat(coupon.Value).Ceil().IntPart()
	} else {
		couponDiscount = decimal.NewFromFloat(coupon.Value).
			Div(decimal.NewFromInt(100)).
			Mul(decimal.NewFromInt(baseInc)).
			Ceil().IntPart()
	}

	total := decimal.NewFromInt(baseInc).
		Sub(decimal.NewFromInt(couponDiscount)).
		Add(decimal.NewFromFloat(pkg.ServiceCharge)).
		Add(decimal.NewFromFloat(pkg.ProcessingFee)).
		Add(decimal.NewFromFloat(pkg.GST)).
		Ceil().IntPart()

	baseMarkupExc := decimal.NewFromFloat(pkg.RoomRate).
		Add(decimal.NewFromFloat(pkg.ClientCommission)).
		Ceil().IntPart()
	markupApplied := base.Sub(decimal.NewFromInt(baseMarkupExc)).Ceil().IntPart()

	return types.PricingBreakdown{
		BaseAmountDiscountIncluded: baseInc,
		BaseAmountDiscountExcluded: baseExc,
		CouponDiscount:             couponDiscount,
		ClientDiscount:             clientDiscount,
		ServiceCharges:             pkg.ServiceCharge,
		ProcessingFee:              pkg.ProcessingFee,
		GST:                        pkg.GST,
		TotalChargeableAmount:      total,
		ActualRoomRate:             pkg.RoomRate,
		ClientCommission:           pkg.ClientCommission,
		BaseAmountMarkupExcluded:   baseMarkupExc,
		MarkupApplied:              markupApplied,
		Currency:                   pkg.ChargeableRateCurrency,
	}
}

// RefundInput feeds the cancellation refund computation. BaseAmount is
// the stored base_amount_discount_included of the transaction;
// Currency is the supplier's penalty currency.
type RefundInput struct {
	BaseAmount           float64
	CancellationCharge   types.CancellationCharge
	APIPenaltyPercentage float64
	Currency             string
}

// RefundBreakdown is the computed penalty and refund persisted onto
// the cancel response.
type RefundBreakdown struct {
	Penalty            types.Money
	Refund             types.Money
	CancellationCharge float64
	PenaltyPercentage  float64
}

// ComputeRefund derives the refund owed after a cancellation. An
// unrecognized cancellation-charge type fails the whole computation:
// there is no partial cancellation.
func ComputeRefund(in RefundInput) (RefundBreakdown, error) {
	base := decimal.NewFromFloat(in.BaseAmount)

	var charge decimal.Decimal
	switch in.CancellationCharge.Type {
	case enums.ChargeTypePercentage:
		charge = decimal.NewFromFloat(in.CancellationCharge.Value).
			Div(decimal.NewFromInt(100)).
			Mul(base)
	case enums.ChargeTypeFixed:
		charge = decimal.NewFromFloat(in.CancellationCharge.Value)
	default:
		return RefundBreakdown{}, errors.New(errors.CodeInternal, "invalid cancellation charge configuration")
	}

	penalty := decimal.NewFromFloat(in.APIPenaltyPercentage).
		Div(decimal.NewFromInt(100)).
		Mul(base).
		Add(charge)

	refund := base.Sub(penalty)
	if refund.IsNegative() {
		refund = decimal.Zero
	}

	return RefundBreakdown{
		Penalty:            types.Money{Value: penalty.InexactFloat64(), Currency: in.Currency},
		Refund:             types.Money{Value: refund.InexactFloat64(), Currency: in.Currency},
		CancellationCharge: charge.InexactFloat64(),
		PenaltyPercentage:  in.APIPenaltyPercentage,
	}, nil
}
