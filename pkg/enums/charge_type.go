package enums

// ChargeType distinguishes flat versus percentage charges. Used by
// coupons and by the admin-configured cancellation charge.
type ChargeType string

const (
	ChargeTypeFixed      ChargeType = "fixed"
	ChargeTypePercentage ChargeType = "percentage"
)

func (t ChargeType) IsValid() bool {
	return t == ChargeTypeFixed || t == ChargeTypePercentage
}
