package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderEvent is one row of an order's lifecycle history.
type OrderEvent struct {
	EventID   string
	OrderID   int64
	Symbol    string
	ExecType  OrderExecType
	Status    OrderStatus
	Qty       decimal.Decimal
	Price     decimal.Decimal
	Timestamp time.Time
}

func NewOrderEvent(order Order, ts time.Time) *OrderEvent {
	return &OrderEvent{
		EventID:   NewEventID(order.OrderID, order.Status, ts),
		OrderID:   order.OrderID,
		Symbol:    order.Symbol,
		ExecType:  order.ExecType,
		Status:    order.Status,
		Qty:       order.LastQuantity,
		Price:     order.LastPrice,
		Timestamp: ts,
	}
}

func NewEventID(orderID int64, status OrderStatus, ts time.Time) string {
	return fmt.Sprintf("%d-%s-%d", orderID, status, ts.UnixNano())
}

// TradeEvent is the published form of one execution, priced back in
// decimals for downstream consumers.
type TradeEvent struct {
	Symbol      string
	Seq         uint64
	Price       decimal.Decimal
	Qty         decimal.Decimal
	AggressorID int64
	RestingID   int64
	Timestamp   time.Time
}
