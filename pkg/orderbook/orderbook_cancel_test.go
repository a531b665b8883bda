package orderbook

import "testing"

func TestCancelOrder(t *testing.T) {
	ob := newOrderBook("test")

	id, _ := ob.newOrder(BUY, 100, 10)

	if !ob.cancelOrder(id) {
		t.Fatalf("expected cancel success")
	}
	if _, ok := ob.orders[id]; ok {
		t.Fatalf("order should be removed from registry")
	}
	if ob.bids.len() != 0 {
		t.Fatalf("emptied level should be removed from the side")
	}
}

func TestCancelIdempotence(t *testing.T) {
	ob := newOrderBook("test")

	id, _ := ob.newOrder(BUY, 100, 10)

	if !ob.cancelOrder(id) {
		t.Fatalf("first cancel must succeed")
	}
	if ob.cancelOrder(id) {
		t.Fatalf("second cancel must return false")
	}
}

func TestCancelUnknownID(t *testing.T) {
	ob := newOrderBook("test")

	if ob.cancelOrder(42) {
		t.Fatalf("cancel of unknown id must return false")
	}
	if len(ob.restingOrderIDs()) != 0 {
		t.Fatalf("no state change expected")
	}
}

func TestCancelFilledOrder(t *testing.T) {
	ob := newOrderBook("test")

	sellID, _ := ob.newOrder(SELL, 100, 10)
	ob.newOrder(BUY, 100, 10)

	// order fully matched before the cancel arrives: soft false
	if ob.cancelOrder(sellID) {
		t.Fatalf("cancel after full fill must return false")
	}
}

func TestCancelMiddleOfQueue(t *testing.T) {
	ob := newOrderBook("test")

	s1, _ := ob.newOrder(SELL, 100, 5)
	s2, _ := ob.newOrder(SELL, 100, 5)
	s3, _ := ob.newOrder(SELL, 100, 5)

	if !ob.cancelOrder(s2) {
		t.Fatalf("expected cancel success")
	}

	ob.newOrder(BUY, 100, 10)
	trades := ob.trades()
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}
	if trades[0].RestingID != s1 || trades[1].RestingID != s3 {
		t.Errorf("queue must skip the cancelled order: %+v", trades)
	}
}

func TestCancelThenRestOpposite(t *testing.T) {
	ob := newOrderBook("test")

	buyID, _ := ob.newOrder(BUY, 99, 5)
	ob.cancelOrder(buyID)
	sellID, _ := ob.newOrder(SELL, 99, 5)

	if ob.tradeCount() != 0 {
		t.Fatalf("cancelled liquidity must not trade")
	}
	if _, ok := ob.orders[sellID]; !ok {
		t.Errorf("sell should rest after the cancel emptied 99")
	}
}

func TestCancelUpdatesAggregates(t *testing.T) {
	ob := newOrderBook("test")

	ob.newOrder(BUY, 100, 10)
	id, _ := ob.newOrder(BUY, 100, 7)

	ob.cancelOrder(id)

	snap := ob.snapshot()
	if len(snap.Bids) != 1 {
		t.Fatalf("expected one bid level, got %+v", snap.Bids)
	}
	if snap.Bids[0].Qty != 10 || snap.Bids[0].OrderCount != 1 {
		t.Errorf("aggregates must reflect the cancel: %+v", snap.Bids[0])
	}
}
