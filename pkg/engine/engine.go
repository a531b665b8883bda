package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	eventstore "github.com/joripage/lob-engine/pkg/engine/event_store"
	"github.com/joripage/lob-engine/pkg/engine/model"
	riskrule "github.com/joripage/lob-engine/pkg/engine/risk_rule"
	"github.com/joripage/lob-engine/pkg/orderbook"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Config struct {
	// DefaultTickSize applies to symbols without an explicit entry.
	DefaultTickSize decimal.Decimal
	TickSizes       map[string]decimal.Decimal

	// QueueSize bounds the inbound event channel.
	QueueSize int
}

type event struct {
	add    *model.AddOrder
	cancel *model.CancelOrder

	// result channels, buffered size 1
	addResult    chan addResult
	cancelResult chan bool
}

type addResult struct {
	orderID int64
	err     error
}

// Engine fronts the order book manager with a single-writer loop: many
// producers enqueue events, exactly one goroutine drains them and drives
// the book. Each event runs to completion before the next is taken, so
// price-time priority and the trade tape are linearized against one
// global sequence.
type Engine struct {
	books      *orderbook.OrderBookManager
	eventstore eventstore.EventStore
	gateway    OrderGateway
	publisher  EventPublisher
	tickRule   *riskrule.TickSizeRule
	rules      []riskrule.RiskRule

	orders  sync.Map // orderID -> *model.Order
	pending []orderbook.Trade // touched only by the run loop

	events chan event
	stopCh chan struct{}
	doneCh chan struct{}
}

func New(cfg *Config, gateway OrderGateway, publisher EventPublisher) *Engine {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 1024
	}
	tickRule := riskrule.NewTickSizeRule(cfg.DefaultTickSize, cfg.TickSizes)

	e := &Engine{
		books:      orderbook.NewOrderBookManager(),
		eventstore: eventstore.NewInMemoryEventStore(),
		gateway:    gateway,
		publisher:  publisher,
		tickRule:   tickRule,
		rules:      []riskrule.RiskRule{tickRule},
		events:     make(chan event, queueSize),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}

	// the book invokes this synchronously inside NewOrder, on the run
	// loop goroutine; trades are stashed and processed once the id of
	// the aggressor is known
	e.books.RegisterTradeCallback(func(_ string, trades []orderbook.Trade) {
		e.pending = append(e.pending, trades...)
	})

	return e
}

func (e *Engine) AddRiskRule(rule riskrule.RiskRule) {
	e.rules = append(e.rules, rule)
}

func (e *Engine) Books() *orderbook.OrderBookManager {
	return e.books
}

func (e *Engine) EventStore() eventstore.EventStore {
	return e.eventstore
}

// TickFor exposes the symbol's tick size for display collaborators.
func (e *Engine) TickFor(symbol string) decimal.Decimal {
	return e.tickRule.TickFor(symbol)
}

// Start launches the writer goroutine. Producers may call SubmitNewOrder
// and SubmitCancel concurrently from any goroutine.
func (e *Engine) Start(ctx context.Context) {
	if e.gateway != nil {
		if err := e.gateway.Start(ctx); err != nil {
			zap.S().Errorw("order gateway start failed", "err", err)
		}
	}
	go e.run(ctx)
}

func (e *Engine) Stop() {
	close(e.stopCh)
	<-e.doneCh
}

func (e *Engine) run(ctx context.Context) {
	defer close(e.doneCh)
	for {
		select {
		case ev := <-e.events:
			if ev.add != nil {
				id, err := e.addOrder(ctx, ev.add)
				ev.addResult <- addResult{orderID: id, err: err}
			} else if ev.cancel != nil {
				ev.cancelResult <- e.cancelOrder(ctx, ev.cancel)
			}
		case <-e.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// SubmitNewOrder enqueues a new order and waits for the writer loop to
// process it. The returned id is assigned even when the order fills
// completely on arrival.
func (e *Engine) SubmitNewOrder(ctx context.Context, add *model.AddOrder) (int64, error) {
	ev := event{add: add, addResult: make(chan addResult, 1)}
	select {
	case e.events <- ev:
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	select {
	case res := <-ev.addResult:
		return res.orderID, res.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// SubmitCancel enqueues a cancel. False is a normal outcome: the order
// may have filled or been cancelled before this event was processed.
func (e *Engine) SubmitCancel(ctx context.Context, cancel *model.CancelOrder) (bool, error) {
	ev := event{cancel: cancel, cancelResult: make(chan bool, 1)}
	select {
	case e.events <- ev:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	select {
	case ok := <-ev.cancelResult:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (e *Engine) addOrder(ctx context.Context, add *model.AddOrder) (int64, error) {
	for _, rule := range e.rules {
		if err := rule.Check(add); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrRejected, err)
		}
	}

	tick := e.tickRule.TickFor(add.Symbol)
	priceTicks, err := orderbook.PriceToTicks(add.Price, tick)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	if !add.Quantity.IsInteger() || add.Quantity.Sign() <= 0 {
		return 0, fmt.Errorf("%w: quantity %s", ErrRejected, add.Quantity)
	}

	order := &model.Order{}
	order.UpdateAddOrder(add)

	e.pending = e.pending[:0]
	orderID, err := e.books.NewOrder(add.Symbol, orderbook.Side(add.Side), priceTicks, add.Quantity.IntPart())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	order.OrderID = orderID
	e.orders.Store(orderID, order)

	now := time.Now()
	e.recordEvent(ctx, *order, now)
	e.report(ctx, *order)

	e.processTrades(ctx, add.Symbol, tick, e.pending)
	e.pending = e.pending[:0]

	return orderID, nil
}

func (e *Engine) cancelOrder(ctx context.Context, cancel *model.CancelOrder) bool {
	order, err := e.GetOrder(cancel.OrderID)
	if err != nil {
		return false
	}
	if !order.CanCancel() {
		return false
	}

	if !e.books.CancelOrder(order.Symbol, order.OrderID) {
		// already resolved inside the book; expected when a fill raced
		// this cancel through the queue
		return false
	}
	order.MarkCanceled()

	now := time.Now()
	e.recordEvent(ctx, *order, now)
	e.report(ctx, *order)
	e.orders.Delete(order.OrderID)

	return true
}

func (e *Engine) processTrades(ctx context.Context, symbol string, tick decimal.Decimal, trades []orderbook.Trade) {
	now := time.Now()
	for _, tr := range trades {
		price := orderbook.TicksToPrice(tr.Price, tick)
		qty := decimal.NewFromInt(tr.Qty)

		for _, orderID := range []int64{tr.AggressorID, tr.RestingID} {
			order, err := e.GetOrder(orderID)
			if err != nil {
				zap.S().Warnw("trade references unknown order", "order_id", orderID, "seq", tr.Seq)
				continue
			}
			order.ApplyFill(qty, price)
			e.recordEvent(ctx, *order, now)
			e.report(ctx, *order)
			if order.IsEnd() {
				e.orders.Delete(orderID)
			}
		}

		if e.publisher != nil {
			ev := &model.TradeEvent{
				Symbol:      symbol,
				Seq:         tr.Seq,
				Price:       price,
				Qty:         qty,
				AggressorID: tr.AggressorID,
				RestingID:   tr.RestingID,
				Timestamp:   now,
			}
			if err := e.publisher.PublishTrade(ctx, ev); err != nil {
				zap.S().Warnw("trade publish failed", "seq", tr.Seq, "err", err)
			}
		}
	}
}

// recordEvent stores one lifecycle event and forwards it to the order
// event feed for persistence downstream.
func (e *Engine) recordEvent(ctx context.Context, order model.Order, now time.Time) {
	ev := model.NewOrderEvent(order, now)
	e.eventstore.AddEvent(ev)
	if e.publisher != nil {
		if err := e.publisher.PublishOrderEvent(ctx, ev); err != nil {
			zap.S().Warnw("order event publish failed", "event_id", ev.EventID, "err", err)
		}
	}
}

func (e *Engine) report(ctx context.Context, order model.Order) {
	if e.gateway != nil {
		e.gateway.OnOrderReport(ctx, order)
	}
}

// GetOrder returns the live engine-side view of an order, or an error if
// it has already reached a terminal state and been dropped.
func (e *Engine) GetOrder(orderID int64) (*model.Order, error) {
	v, ok := e.orders.Load(orderID)
	if !ok {
		return nil, errOrderNotFound
	}
	return v.(*model.Order), nil
}
