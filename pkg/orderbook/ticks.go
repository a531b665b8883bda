package orderbook

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceToTicks converts a decimal price to an integer tick count. The
// book compares prices only as tick counts, so two economically equal
// decimal prices always land on the same level. A price that is not a
// positive multiple of the tick size is rejected rather than rounded.
func PriceToTicks(price, tickSize decimal.Decimal) (int64, error) {
	if tickSize.Sign() <= 0 {
		return 0, fmt.Errorf("%w: tick size %s", ErrInvalidTickSize, tickSize)
	}
	if price.Sign() <= 0 {
		return 0, fmt.Errorf("%w: price %s", ErrInvalidOrder, price)
	}
	if !price.Mod(tickSize).IsZero() {
		return 0, fmt.Errorf("%w: price %s not aligned to tick %s", ErrInvalidTickSize, price, tickSize)
	}
	return price.Div(tickSize).IntPart(), nil
}

// TicksToPrice converts a tick count back to a decimal price for display
// and reporting.
func TicksToPrice(ticks int64, tickSize decimal.Decimal) decimal.Decimal {
	return tickSize.Mul(decimal.NewFromInt(ticks))
}
