package orderbook

import "errors"

var (
	// ErrInvalidOrder rejects a submission with a non-positive price or
	// quantity, or an unknown side. No book state changes on rejection.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrInvalidTickSize rejects a price conversion with a non-positive
	// tick size or a price not aligned to it.
	ErrInvalidTickSize = errors.New("invalid tick size")
)
