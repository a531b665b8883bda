package orderbook

import (
	"fmt"
	"sync"
)

// orderBook is a single-instrument limit order book with strict
// price-time priority. All state, including the id and trade sequence
// counters, belongs to the instance; two books share nothing.
//
// Every call runs to completion under the mutex, so exactly one new
// order or cancel is in flight at any instant and the trade tape is a
// total order over executions.
type orderBook struct {
	symbol string

	bids *bookSide
	asks *bookSide

	// registry: id -> resting order. The Order carries its own level
	// pointer and queue links, so cancellation never scans.
	orders map[int64]*Order

	tape *tradeTape

	nextOrderID  int64
	nextTradeSeq uint64

	callbacks []func([]Trade)

	mu sync.Mutex
}

func newOrderBook(symbol string) *orderBook {
	return &orderBook{
		symbol: symbol,
		bids:   newBookSide(true),
		asks:   newBookSide(false),
		orders: make(map[int64]*Order),
		tape:   &tradeTape{},
	}
}

func (ob *orderBook) registerTradeCallback(fn func([]Trade)) {
	ob.callbacks = append(ob.callbacks, fn)
}

// newOrder assigns the next order id, matches the order against the
// opposite side from the best price inward, and rests any remainder at
// the back of its own price level. The id is returned even on a full
// fill; callers distinguish by registry membership.
func (ob *orderBook) newOrder(side Side, price, qty int64) (int64, error) {
	if !side.valid() {
		return 0, fmt.Errorf("%w: side %q", ErrInvalidOrder, side)
	}
	if price <= 0 {
		return 0, fmt.Errorf("%w: price %d", ErrInvalidOrder, price)
	}
	if qty <= 0 {
		return 0, fmt.Errorf("%w: quantity %d", ErrInvalidOrder, qty)
	}

	ob.mu.Lock()
	defer ob.mu.Unlock()

	ob.nextOrderID++
	order := &Order{
		ID:      ob.nextOrderID,
		Symbol:  ob.symbol,
		Side:    side,
		Price:   price,
		Qty:     qty,
		OrigQty: qty,
	}

	var own, counter *bookSide
	var crosses func(restingPrice int64) bool
	if side == BUY {
		own, counter = ob.bids, ob.asks
		crosses = func(restingPrice int64) bool { return restingPrice <= price }
	} else {
		own, counter = ob.asks, ob.bids
		crosses = func(restingPrice int64) bool { return restingPrice >= price }
	}

	trades := ob.match(order, counter, crosses)

	if order.Qty > 0 {
		own.getOrCreate(order.Price).enqueue(order)
		ob.orders[order.ID] = order
	}

	if len(trades) > 0 {
		for _, cb := range ob.callbacks {
			cb(trades)
		}
	}

	return order.ID, nil
}

func (ob *orderBook) match(order *Order, counter *bookSide, crosses func(int64) bool) []Trade {
	var trades []Trade

	for order.Qty > 0 {
		lvl := counter.best()
		if lvl == nil || !crosses(lvl.price) {
			break
		}

		for order.Qty > 0 && !lvl.empty() {
			resting := lvl.front()

			matchQty := min(order.Qty, resting.Qty)
			order.Qty -= matchQty
			resting.Qty -= matchQty
			lvl.reduce(matchQty)

			ob.nextTradeSeq++
			tr := Trade{
				Seq:         ob.nextTradeSeq,
				Price:       lvl.price,
				Qty:         matchQty,
				AggressorID: order.ID,
				RestingID:   resting.ID,
			}
			ob.tape.append(tr)
			trades = append(trades, tr)

			if resting.Qty == 0 {
				lvl.unlink(resting)
				delete(ob.orders, resting.ID)
			}
		}

		if lvl.empty() {
			counter.remove(lvl.price)
		}
	}

	return trades
}

// cancelOrder removes a resting order. A missing id is a normal outcome,
// not an error: the order may have fully matched or been cancelled
// already.
func (ob *orderBook) cancelOrder(id int64) bool {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	order, ok := ob.orders[id]
	if !ok {
		return false
	}

	lvl := order.level
	lvl.unlink(order)
	if lvl.empty() {
		ob.sideFor(order.Side).remove(lvl.price)
	}
	delete(ob.orders, id)

	return true
}

func (ob *orderBook) sideFor(side Side) *bookSide {
	if side == BUY {
		return ob.bids
	}
	return ob.asks
}

// getOrder returns a copy of a resting order, without its queue links.
func (ob *orderBook) getOrder(id int64) (Order, bool) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	order, ok := ob.orders[id]
	if !ok {
		return Order{}, false
	}
	cp := *order
	cp.next, cp.prev, cp.level = nil, nil, nil
	return cp, true
}

func (ob *orderBook) restingOrderIDs() []int64 {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	ids := make([]int64, 0, len(ob.orders))
	for id := range ob.orders {
		ids = append(ids, id)
	}
	return ids
}

func (ob *orderBook) tradeCount() int {
	return ob.tape.len()
}

func (ob *orderBook) trades() []Trade {
	return ob.tape.snapshot()
}

// LevelSnapshot is one price level as seen by display collaborators.
type LevelSnapshot struct {
	Price      int64
	Qty        int64
	OrderCount int
}

// BookSnapshot lists both sides best-to-worst.
type BookSnapshot struct {
	Symbol string
	Bids   []LevelSnapshot
	Asks   []LevelSnapshot
}

func (ob *orderBook) snapshot() BookSnapshot {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	snap := BookSnapshot{Symbol: ob.symbol}
	collect := func(side *bookSide) []LevelSnapshot {
		out := make([]LevelSnapshot, 0, side.len())
		side.eachBestToWorst(func(lvl *priceLevel) bool {
			out = append(out, LevelSnapshot{
				Price:      lvl.price,
				Qty:        lvl.totalQty,
				OrderCount: lvl.orderCount,
			})
			return true
		})
		return out
	}
	snap.Bids = collect(ob.bids)
	snap.Asks = collect(ob.asks)
	return snap
}
