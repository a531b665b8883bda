package engine

import (
	"context"

	"github.com/joripage/lob-engine/pkg/engine/model"
)

// OrderGateway is the client-facing collaborator. The engine pushes
// execution reports to it and never blocks on it for matching
// correctness.
type OrderGateway interface {
	Start(ctx context.Context) error

	// engine to client
	OnOrderReport(ctx context.Context, order model.Order)
}

// EventPublisher feeds executed trades and order lifecycle events to
// downstream consumers (market data, persistence workers).
type EventPublisher interface {
	PublishTrade(ctx context.Context, trade *model.TradeEvent) error
	PublishOrderEvent(ctx context.Context, ev *model.OrderEvent) error
}
