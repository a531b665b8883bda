package riskrule

import (
	"fmt"

	"github.com/joripage/lob-engine/pkg/engine/model"
	"github.com/shopspring/decimal"
)

type priceBand struct {
	Ceil  decimal.Decimal
	Floor decimal.Decimal
}

// LimitPriceRule rejects prices outside the symbol's allowed band.
// Symbols without a band are unrestricted.
type LimitPriceRule struct {
	bands map[string]priceBand
}

func NewLimitPriceRule() *LimitPriceRule {
	return &LimitPriceRule{bands: make(map[string]priceBand)}
}

func (r *LimitPriceRule) SetBand(symbol string, floor, ceil decimal.Decimal) {
	r.bands[symbol] = priceBand{Ceil: ceil, Floor: floor}
}

func (r *LimitPriceRule) Check(add *model.AddOrder) error {
	band, ok := r.bands[add.Symbol]
	if !ok {
		return nil
	}
	if add.Price.GreaterThan(band.Ceil) || add.Price.LessThan(band.Floor) {
		return fmt.Errorf("price limit violation: %s outside [%s, %s]", add.Price, band.Floor, band.Ceil)
	}
	return nil
}
