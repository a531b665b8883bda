package orderbook

import "sync"

// OrderBookManager hosts one independent book per symbol. Books share no
// state, so symbols can be processed by separate writers without any
// cross-book coordination.
type OrderBookManager struct {
	books     sync.Map
	callbacks []func(symbol string, trades []Trade)
}

func NewOrderBookManager() *OrderBookManager {
	return &OrderBookManager{}
}

// NewOrder submits a limit order and returns its id. It returns
// ErrInvalidOrder for a non-positive price or quantity or an unknown
// side, with no state change.
func (s *OrderBookManager) NewOrder(symbol string, side Side, price, qty int64) (int64, error) {
	return s.getOrCreateBook(symbol).newOrder(side, price, qty)
}

// CancelOrder removes a resting order. False means the id is not
// currently resting, which is expected when the order already filled or
// was cancelled before.
func (s *OrderBookManager) CancelOrder(symbol string, orderID int64) bool {
	return s.getOrCreateBook(symbol).cancelOrder(orderID)
}

// RestingOrder looks up a resting order by id in O(1) and returns a
// copy of it.
func (s *OrderBookManager) RestingOrder(symbol string, orderID int64) (Order, bool) {
	return s.getOrCreateBook(symbol).getOrder(orderID)
}

// RestingOrderIDs returns the ids currently resting in the book, in no
// particular order.
func (s *OrderBookManager) RestingOrderIDs(symbol string) []int64 {
	return s.getOrCreateBook(symbol).restingOrderIDs()
}

func (s *OrderBookManager) TradeCount(symbol string) int {
	return s.getOrCreateBook(symbol).tradeCount()
}

// Trades returns a copy of the trade tape so far.
func (s *OrderBookManager) Trades(symbol string) []Trade {
	return s.getOrCreateBook(symbol).trades()
}

func (s *OrderBookManager) Snapshot(symbol string) BookSnapshot {
	return s.getOrCreateBook(symbol).snapshot()
}

func (s *OrderBookManager) RegisterTradeCallback(cb func(symbol string, trades []Trade)) {
	s.callbacks = append(s.callbacks, cb)

	// apply callback to all books
	s.books.Range(func(k, v any) bool {
		symbol := k.(string)
		v.(*orderBook).registerTradeCallback(func(trades []Trade) {
			cb(symbol, trades)
		})
		return true
	})
}

func (s *OrderBookManager) getOrCreateBook(symbol string) *orderBook {
	if val, ok := s.books.Load(symbol); ok {
		return val.(*orderBook)
	}

	book := newOrderBook(symbol)
	for _, cb := range s.callbacks {
		fn := cb
		book.registerTradeCallback(func(trades []Trade) {
			fn(symbol, trades)
		})
	}

	actual, _ := s.books.LoadOrStore(symbol, book)
	return actual.(*orderBook)
}
