package eventstore

import "github.com/joripage/lob-engine/pkg/engine/model"

type EventStore interface {
	AddEvent(ev *model.OrderEvent)
	Events(orderID int64) []*model.OrderEvent
	LatestStatus(orderID int64) model.OrderStatus
	DeleteByOrderID(orderID int64)
}
