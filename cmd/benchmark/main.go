package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gammazero/deque"
	"github.com/joripage/lob-engine/pkg/orderbook"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

const (
	numEvents   = 100_000
	seedOrders  = 100
	symbol      = "ABC"
	centerTicks = 10_000 // $100.00 at a $0.01 tick
	rangeTicks  = 50     // +/- $0.50
	minQty      = 10
	maxQty      = 100
)

type benchEvent struct {
	cancel bool
	side   orderbook.Side
	price  int64
	qty    int64
}

func randomNewOrder() benchEvent {
	side := orderbook.BUY
	if rand.Intn(2) == 0 {
		side = orderbook.SELL
	}
	return benchEvent{
		side:  side,
		price: centerTicks + int64(rand.Intn(2*rangeTicks+1)) - rangeTicks,
		qty:   int64(rand.Intn(maxQty-minQty+1) + minQty),
	}
}

func generateEvents() []benchEvent {
	events := make([]benchEvent, 0, numEvents)

	// pre-seed the book
	for i := 0; i < seedOrders; i++ {
		events = append(events, randomNewOrder())
	}

	// 80% new orders, 20% cancellations
	for i := 0; i < numEvents-seedOrders; i++ {
		if rand.Float64() < 0.8 {
			events = append(events, randomNewOrder())
		} else {
			events = append(events, benchEvent{cancel: true})
		}
	}
	return events
}

func main() {
	rand.Seed(time.Now().UnixNano())

	obm := orderbook.NewOrderBookManager()
	events := generateEvents()

	var totalNewOrders, totalCancels int
	var pendingCancels deque.Deque[int64]
	latenciesUs := make([]float64, 0, numEvents)

	start := time.Now()

	for _, ev := range events {
		evStart := time.Now()
		if ev.cancel {
			if pendingCancels.Len() > 0 {
				// cancel one of the oldest placed orders
				id := pendingCancels.PopFront()
				if obm.CancelOrder(symbol, id) {
					totalCancels++
				}
			}
		} else {
			id, err := obm.NewOrder(symbol, ev.side, ev.price, ev.qty)
			if err != nil {
				continue
			}
			totalNewOrders++
			if _, resting := obm.RestingOrder(symbol, id); resting {
				pendingCancels.PushBack(id)
			}
		}
		latenciesUs = append(latenciesUs, float64(time.Since(evStart).Nanoseconds())/1000)
	}

	elapsed := time.Since(start)
	totalProcessed := totalNewOrders + totalCancels

	displayBook(obm.Snapshot(symbol))

	p50, _ := stats.Median(latenciesUs)
	p95, _ := stats.Percentile(latenciesUs, 95)
	p99, _ := stats.Percentile(latenciesUs, 99)

	fmt.Println("========================================")
	fmt.Println("      PERFORMANCE TEST RESULTS")
	fmt.Println("========================================")
	fmt.Printf("Total Events Processed: %d\n", totalProcessed)
	fmt.Printf("  - New Orders:       %d\n", totalNewOrders)
	fmt.Printf("  - Cancellations:    %d\n", totalCancels)
	fmt.Printf("Total Trades Executed: %d\n", obm.TradeCount(symbol))
	fmt.Printf("Total Execution Time: %.4f seconds\n", elapsed.Seconds())
	fmt.Println("----------------------------------------")
	fmt.Printf("Throughput: %.0f events/second\n", float64(totalProcessed)/elapsed.Seconds())
	fmt.Printf("Latency p50/p95/p99: %.2f / %.2f / %.2f us\n", p50, p95, p99)
	fmt.Println("========================================")
}

func displayBook(snap orderbook.BookSnapshot) {
	tick := decimal.NewFromFloat(0.01)

	fmt.Println("\n--- ASK SIDE (Sellers) ---")
	// asks come best-first; print worst-first so the touch sits in the middle
	for i := len(snap.Asks) - 1; i >= 0; i-- {
		lvl := snap.Asks[i]
		fmt.Printf("  ASK: $%s | Qty: %d | (%d orders)\n",
			orderbook.TicksToPrice(lvl.Price, tick), lvl.Qty, lvl.OrderCount)
	}
	fmt.Println("--------------------------")
	for _, lvl := range snap.Bids {
		fmt.Printf("  BID: $%s | Qty: %d | (%d orders)\n",
			orderbook.TicksToPrice(lvl.Price, tick), lvl.Qty, lvl.OrderCount)
	}
	fmt.Println("--- BID SIDE (Buyers) ---")
}
