package orderbook

import "testing"

func TestTradeTapeConcurrentReads(t *testing.T) {
	ob := newOrderBook("test")

	pairs := 2_000
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < pairs; i++ {
			ob.newOrder(SELL, 100, 1)
			ob.newOrder(BUY, 100, 1)
		}
	}()

	// readers may race the writer but must only ever see a growing
	// prefix of the tape, never a gap or a reordering
	prevLen := 0
	for writing := true; writing; {
		select {
		case <-done:
			writing = false
		default:
		}

		trades := ob.trades()
		if len(trades) < prevLen {
			t.Fatalf("tape shrank from %d to %d", prevLen, len(trades))
		}
		for i, tr := range trades {
			if tr.Seq != uint64(i+1) {
				t.Fatalf("position %d holds seq %d", i, tr.Seq)
			}
		}
		if n := ob.tradeCount(); n < len(trades) {
			t.Fatalf("count %d behind a snapshot of %d", n, len(trades))
		}
		prevLen = len(trades)
	}

	if n := ob.tradeCount(); n != pairs {
		t.Fatalf("expected %d trades after paired flow, got %d", pairs, n)
	}
}
