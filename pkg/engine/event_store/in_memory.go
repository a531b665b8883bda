package eventstore

import (
	"sync"

	"github.com/joripage/lob-engine/pkg/engine/model"
)

type InMemoryEventStore struct {
	mu           sync.RWMutex
	orders       map[int64][]*model.OrderEvent
	latestStatus map[int64]model.OrderStatus
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		orders:       make(map[int64][]*model.OrderEvent),
		latestStatus: make(map[int64]model.OrderStatus),
	}
}

func (s *InMemoryEventStore) AddEvent(ev *model.OrderEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[ev.OrderID] = append(s.orders[ev.OrderID], ev)
	s.latestStatus[ev.OrderID] = ev.Status
}

func (s *InMemoryEventStore) Events(orderID int64) []*model.OrderEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	evs := s.orders[orderID]
	out := make([]*model.OrderEvent, len(evs))
	copy(out, evs)
	return out
}

func (s *InMemoryEventStore) LatestStatus(orderID int64) model.OrderStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.latestStatus[orderID]
}

func (s *InMemoryEventStore) DeleteByOrderID(orderID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.orders, orderID)
	delete(s.latestStatus, orderID)
}
