package worker

import (
	"context"
	"encoding/json"

	"github.com/joripage/lob-engine/pkg/engine/model"
	"github.com/joripage/lob-engine/pkg/engine/repo"
	kafkawrapper "github.com/joripage/lob-engine/pkg/kafka_wrapper"
	"go.uber.org/zap"
)

// Worker drains the trade and order event feeds into the database. It
// is a downstream collaborator: matching never waits on it.
type Worker struct {
	orderEvent repo.IOrderEvent
	trade      repo.ITrade
}

func NewWorker(repo repo.IRepo) *Worker {
	return &Worker{
		orderEvent: repo.OrderEvent(),
		trade:      repo.Trade(),
	}
}

func (w *Worker) StartTradeConsumer(ctx context.Context, cg *kafkawrapper.ConsumerGroup) error {
	return cg.Run(ctx, w.handleTrades)
}

func (w *Worker) StartOrderEventConsumer(ctx context.Context, cg *kafkawrapper.ConsumerGroup) error {
	return cg.Run(ctx, w.handleOrderEvents)
}

func (w *Worker) handleTrades(ctx context.Context, msgs []kafkawrapper.Message) error {
	records := make([]*model.TradeEvent, 0, len(msgs))
	for _, msg := range msgs {
		var ev model.TradeEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			zap.S().Warnw("skip undecodable trade message", "offset", msg.Offset, "err", err)
			continue
		}
		records = append(records, &ev)
	}
	if len(records) == 0 {
		return nil
	}
	_, err := w.trade.BulkCreate(ctx, records)
	return err
}

func (w *Worker) handleOrderEvents(ctx context.Context, msgs []kafkawrapper.Message) error {
	records := make([]*model.OrderEvent, 0, len(msgs))
	for _, msg := range msgs {
		var ev model.OrderEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			zap.S().Warnw("skip undecodable order event message", "offset", msg.Offset, "err", err)
			continue
		}
		records = append(records, &ev)
	}
	if len(records) == 0 {
		return nil
	}
	_, err := w.orderEvent.BulkCreate(ctx, records)
	return err
}
