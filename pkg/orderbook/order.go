package orderbook

type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

func (s Side) valid() bool {
	return s == BUY || s == SELL
}

// Opposite returns the side an incoming order matches against.
func (s Side) Opposite() Side {
	if s == BUY {
		return SELL
	}
	return BUY
}

// Order is a resting limit order. Price is an integer tick count; decimal
// prices are converted at the boundary (see PriceToTicks).
//
// The next/prev/level fields are the intrusive FIFO links owned by the
// order's price level. They make cancellation an O(1) splice instead of a
// scan, and they double as the registry handle: the book's id map points
// straight at the Order, and the Order knows its level.
type Order struct {
	ID      int64
	Symbol  string
	Side    Side
	Price   int64 // ticks
	Qty     int64 // remaining quantity, > 0 while resting
	OrigQty int64

	next  *Order
	prev  *Order
	level *priceLevel
}
