package orderbook

import "sync"

// Trade is one execution. Price is the resting order's price, so an
// aggressive incoming order receives price improvement. Seq is strictly
// increasing across the whole tape of one book.
type Trade struct {
	Seq         uint64
	Price       int64 // ticks
	Qty         int64
	AggressorID int64
	RestingID   int64
}

// tradeTape is the append-only execution log. The matching engine is the
// only writer; the RWMutex lets diagnostic readers take a consistent
// prefix while matching continues.
type tradeTape struct {
	mu     sync.RWMutex
	trades []Trade
}

func (t *tradeTape) append(tr Trade) {
	t.mu.Lock()
	t.trades = append(t.trades, tr)
	t.mu.Unlock()
}

func (t *tradeTape) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.trades)
}

func (t *tradeTape) snapshot() []Trade {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Trade, len(t.trades))
	copy(out, t.trades)
	return out
}
