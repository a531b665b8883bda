package orderbook

import (
	"errors"
	"testing"
)

func TestSimpleMatch(t *testing.T) {
	ob := newOrderBook("test")

	sellID, err := ob.newOrder(SELL, 100, 10)
	if err != nil {
		t.Fatalf("sell rejected: %v", err)
	}
	buyID, err := ob.newOrder(BUY, 100, 5)
	if err != nil {
		t.Fatalf("buy rejected: %v", err)
	}

	trades := ob.trades()
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	tr := trades[0]
	if tr.Price != 100 || tr.Qty != 5 {
		t.Errorf("incorrect price/qty: %+v", tr)
	}
	if tr.AggressorID != buyID || tr.RestingID != sellID {
		t.Errorf("incorrect order IDs in trade: %+v", tr)
	}

	// seller keeps resting with the remainder
	resting := ob.orders[sellID]
	if resting == nil || resting.Qty != 5 {
		t.Errorf("expected sell resting with qty 5, got %+v", resting)
	}
	if _, ok := ob.orders[buyID]; ok {
		t.Errorf("fully filled buy must not rest")
	}
}

func TestNoMatchDueToPrice(t *testing.T) {
	ob := newOrderBook("test")

	ob.newOrder(SELL, 100, 10)
	ob.newOrder(BUY, 98, 10)

	if n := ob.tradeCount(); n != 0 {
		t.Fatalf("expected no trade, got %d", n)
	}
	if len(ob.restingOrderIDs()) != 2 {
		t.Errorf("both orders should rest")
	}
}

func TestAggressiveBuySweepsAndRests(t *testing.T) {
	ob := newOrderBook("test")

	sellID, _ := ob.newOrder(SELL, 100, 10)
	buyID, _ := ob.newOrder(BUY, 101, 15)

	trades := ob.trades()
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	if trades[0].Price != 100 || trades[0].Qty != 10 {
		t.Errorf("expected trade 10@100, got %+v", trades[0])
	}

	if _, ok := ob.orders[sellID]; ok {
		t.Errorf("sell should be fully removed")
	}
	buy := ob.orders[buyID]
	if buy == nil || buy.Qty != 5 || buy.Price != 101 {
		t.Errorf("expected buy resting 5@101, got %+v", buy)
	}
}

func TestRestOnEmptyBook(t *testing.T) {
	ob := newOrderBook("test")

	id, _ := ob.newOrder(BUY, 99, 5)

	if ob.tradeCount() != 0 {
		t.Fatalf("empty book must not trade")
	}
	found := false
	for _, rid := range ob.restingOrderIDs() {
		if rid == id {
			found = true
		}
	}
	if !found {
		t.Errorf("resting ids must contain %d", id)
	}
}

func TestPriceImprovement(t *testing.T) {
	ob := newOrderBook("test")

	ob.newOrder(SELL, 100, 10)
	ob.newOrder(BUY, 101, 10)

	trades := ob.trades()
	if len(trades) != 1 || trades[0].Price != 100 {
		t.Errorf("aggressor must trade at resting price 100, got %+v", trades)
	}
}

func TestFIFOMatch(t *testing.T) {
	ob := newOrderBook("test")

	s1, _ := ob.newOrder(SELL, 100, 5)
	s2, _ := ob.newOrder(SELL, 100, 5)
	ob.newOrder(BUY, 100, 10)

	trades := ob.trades()
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}
	if trades[0].RestingID != s1 || trades[1].RestingID != s2 {
		t.Errorf("expected FIFO match order, got %+v", trades)
	}
}

func TestMultiLevelMatch(t *testing.T) {
	ob := newOrderBook("test")

	s1, _ := ob.newOrder(SELL, 100, 10)
	s2, _ := ob.newOrder(SELL, 101, 10)
	ob.newOrder(BUY, 101, 20)

	trades := ob.trades()
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}
	if trades[0].Price != 100 || trades[0].RestingID != s1 {
		t.Errorf("first trade must hit best ask 100, got %+v", trades[0])
	}
	if trades[1].Price != 101 || trades[1].RestingID != s2 {
		t.Errorf("second trade must hit 101, got %+v", trades[1])
	}
	if trades[0].Seq >= trades[1].Seq {
		t.Errorf("trade sequence must be strictly increasing: %+v", trades)
	}
}

func TestBetterPriceBeatsEarlierArrival(t *testing.T) {
	ob := newOrderBook("test")

	// older order at the worse price, newer order at the better price
	worse, _ := ob.newOrder(SELL, 102, 5)
	better, _ := ob.newOrder(SELL, 101, 5)
	ob.newOrder(BUY, 102, 5)

	trades := ob.trades()
	if len(trades) != 1 || trades[0].RestingID != better {
		t.Fatalf("better price must trade first, got %+v", trades)
	}
	if _, ok := ob.orders[worse]; !ok {
		t.Errorf("worse-priced order must still rest")
	}
}

func TestInvalidOrderRejected(t *testing.T) {
	ob := newOrderBook("test")

	cases := []struct {
		side  Side
		price int64
		qty   int64
	}{
		{BUY, 0, 10},
		{BUY, -5, 10},
		{SELL, 100, 0},
		{SELL, 100, -1},
		{Side("HOLD"), 100, 10},
	}
	for _, c := range cases {
		if _, err := ob.newOrder(c.side, c.price, c.qty); !errors.Is(err, ErrInvalidOrder) {
			t.Errorf("expected ErrInvalidOrder for %+v, got %v", c, err)
		}
	}

	if len(ob.restingOrderIDs()) != 0 || ob.tradeCount() != 0 {
		t.Errorf("rejected orders must not mutate the book")
	}
}

func TestConservation(t *testing.T) {
	ob := newOrderBook("test")

	ob.newOrder(SELL, 100, 7)
	ob.newOrder(SELL, 101, 9)
	buyID, _ := ob.newOrder(BUY, 101, 20)

	var traded int64
	for _, tr := range ob.trades() {
		traded += tr.Qty
	}
	buy := ob.orders[buyID]
	if buy == nil {
		t.Fatalf("buy remainder should rest")
	}
	if traded+buy.Qty != 20 {
		t.Errorf("traded %d + remainder %d must equal submitted 20", traded, buy.Qty)
	}
}

func TestRegistryBookConsistency(t *testing.T) {
	ob := newOrderBook("test")

	for i := 0; i < 50; i++ {
		side := BUY
		price := int64(95 + i%5)
		if i%2 == 0 {
			side = SELL
			price = int64(105 - i%5)
		}
		ob.newOrder(side, price, int64(1+i%7))
	}

	// every registry entry must be reachable by scanning the sides,
	// with no zero-qty stragglers
	seen := make(map[int64]bool)
	scan := func(side *bookSide) {
		side.eachBestToWorst(func(lvl *priceLevel) bool {
			var lvlQty int64
			count := 0
			for o := lvl.front(); o != nil; o = o.next {
				if o.Qty <= 0 {
					t.Errorf("order %d resting with qty %d", o.ID, o.Qty)
				}
				if o.Price != lvl.price {
					t.Errorf("order %d price %d in level %d", o.ID, o.Price, lvl.price)
				}
				seen[o.ID] = true
				lvlQty += o.Qty
				count++
			}
			if lvlQty != lvl.totalQty || count != lvl.orderCount {
				t.Errorf("level %d aggregate mismatch: qty %d/%d count %d/%d",
					lvl.price, lvlQty, lvl.totalQty, count, lvl.orderCount)
			}
			if count == 0 {
				t.Errorf("empty level %d present in side", lvl.price)
			}
			return true
		})
	}
	scan(ob.bids)
	scan(ob.asks)

	if len(seen) != len(ob.orders) {
		t.Fatalf("registry has %d ids, sides have %d", len(ob.orders), len(seen))
	}
	for id := range ob.orders {
		if !seen[id] {
			t.Errorf("registry id %d not found in any side", id)
		}
	}
}

func TestSnapshotSortedBestToWorst(t *testing.T) {
	ob := newOrderBook("test")

	ob.newOrder(BUY, 98, 5)
	ob.newOrder(BUY, 99, 5)
	ob.newOrder(BUY, 99, 3)
	ob.newOrder(SELL, 101, 4)
	ob.newOrder(SELL, 103, 4)

	snap := ob.snapshot()
	if len(snap.Bids) != 2 || len(snap.Asks) != 2 {
		t.Fatalf("unexpected snapshot shape: %+v", snap)
	}
	if snap.Bids[0].Price != 99 || snap.Bids[1].Price != 98 {
		t.Errorf("bids must be high to low: %+v", snap.Bids)
	}
	if snap.Asks[0].Price != 101 || snap.Asks[1].Price != 103 {
		t.Errorf("asks must be low to high: %+v", snap.Asks)
	}
	if snap.Bids[0].Qty != 8 || snap.Bids[0].OrderCount != 2 {
		t.Errorf("level 99 must aggregate to 8 across 2 orders: %+v", snap.Bids[0])
	}
}

func TestHighVolumeOrders(t *testing.T) {
	ob := newOrderBook("test")

	num := 10_000
	for i := 0; i < num; i++ {
		side := BUY
		if i%2 == 0 {
			side = SELL
		}
		if _, err := ob.newOrder(side, 100, 10); err != nil {
			t.Fatalf("order %d rejected: %v", i, err)
		}
	}

	if n := ob.tradeCount(); n != num/2 {
		t.Errorf("expected %d trades, got %d", num/2, n)
	}
	if len(ob.restingOrderIDs()) != 0 {
		t.Errorf("book should be flat after paired flow")
	}
}

func TestManagerRoutesPerSymbol(t *testing.T) {
	obm := NewOrderBookManager()

	var matched []Trade
	obm.RegisterTradeCallback(func(symbol string, trades []Trade) {
		if symbol != "ABC" {
			t.Errorf("unexpected symbol %s", symbol)
		}
		matched = append(matched, trades...)
	})

	obm.NewOrder("ABC", SELL, 100, 10)
	obm.NewOrder("XYZ", BUY, 100, 10) // different book, no cross
	obm.NewOrder("ABC", BUY, 100, 10)

	if len(matched) != 1 {
		t.Fatalf("expected 1 trade via callback, got %d", len(matched))
	}
	if obm.TradeCount("XYZ") != 0 {
		t.Errorf("XYZ book must be untouched")
	}
}

func BenchmarkOrderBookMatch(b *testing.B) {
	ob := newOrderBook("test")

	for i := 0; i < 10_000; i++ {
		ob.newOrder(SELL, int64(100+i%5), 10)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ob.newOrder(BUY, 101, 10)
	}
}

func BenchmarkCancelOrder(b *testing.B) {
	ob := newOrderBook("test")

	ids := make([]int64, b.N)
	for i := 0; i < b.N; i++ {
		id, _ := ob.newOrder(BUY, int64(1+i%1000), 10)
		ids[i] = id
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ob.cancelOrder(ids[i])
	}
}
