package engine

import (
	"context"

	"github.com/joripage/lob-engine/pkg/engine/model"
	kafkawrapper "github.com/joripage/lob-engine/pkg/kafka_wrapper"
)

// KafkaEventPublisher pushes executed trades and order lifecycle events
// onto Kafka topics, keyed by symbol so one symbol's records stay
// ordered within a partition.
type KafkaEventPublisher struct {
	producer        *kafkawrapper.Producer
	tradeTopic      string
	orderEventTopic string
}

func NewKafkaEventPublisher(producer *kafkawrapper.Producer, tradeTopic, orderEventTopic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer:        producer,
		tradeTopic:      tradeTopic,
		orderEventTopic: orderEventTopic,
	}
}

func (p *KafkaEventPublisher) PublishTrade(ctx context.Context, trade *model.TradeEvent) error {
	return p.producer.PublishJSON(ctx, p.tradeTopic, trade.Symbol, trade)
}

func (p *KafkaEventPublisher) PublishOrderEvent(ctx context.Context, ev *model.OrderEvent) error {
	return p.producer.PublishJSON(ctx, p.orderEventTopic, ev.Symbol, ev)
}
