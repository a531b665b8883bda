package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joripage/lob-engine/config"
	"github.com/joripage/lob-engine/pkg/engine"
	"github.com/joripage/lob-engine/pkg/engine/model"
	redis_wrapper "github.com/joripage/lob-engine/pkg/infra/redis"
	kafkawrapper "github.com/joripage/lob-engine/pkg/kafka_wrapper"
	"github.com/joripage/lob-engine/pkg/logging"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// logGateway reports executions to the log; a real client gateway plugs
// in via the same interface.
type logGateway struct{}

func (g *logGateway) Start(ctx context.Context) error { return nil }

func (g *logGateway) OnOrderReport(ctx context.Context, order model.Order) {
	zap.S().Debugw("order report",
		"order_id", order.OrderID,
		"symbol", order.Symbol,
		"status", order.Status,
		"exec_type", order.ExecType,
		"leaves", order.LeavesQuantity,
	)
}

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	logging.NewLogger(logging.INFO)

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	go func() {
		http.ListenAndServe("localhost:6060", nil)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	var publisher engine.EventPublisher
	if cfg.Kafka != nil {
		producer := kafkawrapper.NewProducer(kafkawrapper.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
		})
		defer producer.Close()
		publisher = engine.NewKafkaEventPublisher(producer, cfg.Kafka.TradeTopic, cfg.Kafka.OrderEventTopic)
	}

	eng := engine.New(engineConfig(cfg.Engine), &logGateway{}, publisher)
	eng.Start(ctx)

	if cfg.Redis != nil && cfg.Engine != nil && len(cfg.Engine.SnapshotSymbols) > 0 {
		rdb, err := redis_wrapper.InitRedis(cfg.Redis)
		if err != nil {
			zap.S().Errorw("redis init failed, snapshots disabled", "err", err)
		} else {
			go publishSnapshots(ctx, rdb, eng, cfg.Engine.SnapshotSymbols)
		}
	}

	fmt.Println("Matching engine started. Press Ctrl+C to exit.")

	<-sigs
	fmt.Println("Shutting down...")

	cancel()
	eng.Stop()

	fmt.Println("Exited cleanly.")
}

func engineConfig(cfg *config.EngineConfig) *engine.Config {
	out := &engine.Config{
		DefaultTickSize: decimal.NewFromFloat(0.01),
		TickSizes:       make(map[string]decimal.Decimal),
	}
	if cfg == nil {
		return out
	}
	out.QueueSize = cfg.QueueSize
	if cfg.DefaultTickSize != "" {
		out.DefaultTickSize = decimal.RequireFromString(cfg.DefaultTickSize)
	}
	for symbol, tick := range cfg.TickSizes {
		out.TickSizes[symbol] = decimal.RequireFromString(tick)
	}
	return out
}

// publishSnapshots pushes per-symbol book snapshots to redis once a
// second for display collaborators.
func publishSnapshots(ctx context.Context, rdb *redis.Client, eng *engine.Engine, symbols []string) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, symbol := range symbols {
				snap := eng.Books().Snapshot(symbol)
				payload, err := json.Marshal(snap)
				if err != nil {
					continue
				}
				key := fmt.Sprintf("book:%s", symbol)
				if err := rdb.Set(ctx, key, payload, 0).Err(); err != nil {
					zap.S().Warnw("snapshot publish failed", "symbol", symbol, "err", err)
				}
			}
		case <-ctx.Done():
			return
		}
	}
}
