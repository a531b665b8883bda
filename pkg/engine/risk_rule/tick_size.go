package riskrule

import (
	"fmt"

	"github.com/joripage/lob-engine/pkg/engine/model"
	"github.com/shopspring/decimal"
)

// TickSizeRule rejects prices not aligned to the symbol's tick size.
type TickSizeRule struct {
	Default decimal.Decimal
	Ticks   map[string]decimal.Decimal
}

func NewTickSizeRule(def decimal.Decimal, ticks map[string]decimal.Decimal) *TickSizeRule {
	return &TickSizeRule{Default: def, Ticks: ticks}
}

func (r *TickSizeRule) TickFor(symbol string) decimal.Decimal {
	if tick, ok := r.Ticks[symbol]; ok {
		return tick
	}
	return r.Default
}

func (r *TickSizeRule) Check(add *model.AddOrder) error {
	tick := r.TickFor(add.Symbol)
	if tick.Sign() <= 0 {
		return fmt.Errorf("no tick size configured for %s", add.Symbol)
	}
	if !add.Price.Mod(tick).IsZero() {
		return fmt.Errorf("invalid tick size: price %s not aligned to %s", add.Price, tick)
	}
	return nil
}
